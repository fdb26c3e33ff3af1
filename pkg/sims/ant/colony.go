package ant

import (
	"image/color"
	"strconv"

	"native-automata/pkg/core"
)

// Config controls an ant or turmite colony.
type Config struct {
	Width  int
	Height int
	Edge   core.EdgeMode
	Ants   int
	// Rule is the turmite rule string. It is ignored by plain ants.
	Rule string
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Width: 128, Height: 128, Edge: core.EdgeWrap, Ants: 4, Rule: DefaultTurmiteRule}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["edge"]; ok {
		if parsed, err := core.ParseEdgeMode(v); err == nil {
			c.Edge = parsed
		}
	}
	if v, ok := cfg["ants"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Ants = parsed
		}
	}
	if v, ok := cfg["rule"]; ok {
		c.Rule = NormalizeRule(v)
	}
	return c
}

var antPalette = []color.RGBA{
	{R: 255, G: 80, B: 80, A: 255},
	{R: 80, G: 200, B: 255, A: 255},
	{R: 255, G: 210, B: 60, A: 255},
	{R: 140, G: 255, B: 120, A: 255},
	{R: 230, G: 120, B: 255, A: 255},
}

// Colony is a stateful group of walkers sharing one grid.
type Colony struct {
	name    string
	cfg     Config
	turmite bool
	grid    core.ByteGrid
	agents  []core.Agent
	changed bool
}

// NewAnts returns a Langton's ant colony.
func NewAnts(cfg Config) *Colony {
	return &Colony{name: "ants", cfg: cfg, grid: core.NewGrid[uint8](cfg.Width, cfg.Height)}
}

// NewTurmites returns a turmite colony driven by cfg.Rule.
func NewTurmites(cfg Config) *Colony {
	cfg.Rule = NormalizeRule(cfg.Rule)
	return &Colony{name: "turmites", cfg: cfg, turmite: true, grid: core.NewGrid[uint8](cfg.Width, cfg.Height)}
}

// Name returns the simulation identifier.
func (c *Colony) Name() string { return c.name }

// Size reports the grid dimensions.
func (c *Colony) Size() core.Size { return c.grid.Size() }

// Cells exposes the trail grid.
func (c *Colony) Cells() []uint8 { return c.grid.Cells }

// Agents exposes the surviving walkers.
func (c *Colony) Agents() []core.Agent { return c.agents }

// SetAgents replaces the walkers, for callers that place them by hand.
func (c *Colony) SetAgents(agents []core.Agent) { c.agents = agents }

// Changed reports whether the last Step moved or removed anything.
func (c *Colony) Changed() bool { return c.changed }

// Reset clears the trail grid and scatters fresh walkers.
func (c *Colony) Reset(seed int64) {
	for i := range c.grid.Cells {
		c.grid.Cells[i] = 0
	}
	rng := core.NewRNG(seed).Source()
	c.agents = core.RandomAgents(rng, c.grid.Size(), c.cfg.Ants, antPalette)
	c.changed = true
}

// Step moves every walker once.
func (c *Colony) Step() {
	var res Result
	if c.turmite {
		res = StepTurmites(c.grid, c.cfg.Edge, c.agents, c.cfg.Rule)
	} else {
		res = StepAnts(c.grid, c.cfg.Edge, c.agents)
	}
	c.grid = res.Grid
	c.agents = res.Agents
	c.changed = res.Changed
}

// Parameters reports the active configuration.
func (c *Colony) Parameters() core.ParameterSnapshot {
	params := []core.Parameter{
		core.IntParam("w", "Width", c.grid.W),
		core.IntParam("h", "Height", c.grid.H),
		core.IntParam("edge", "Edge mode", int(c.cfg.Edge)),
		core.IntParam("ants", "Agents", c.cfg.Ants),
		core.IntParam("alive", "Agents alive", len(c.agents)),
	}
	if c.turmite {
		params = append(params, core.StringParam("rule", "Rule", c.cfg.Rule))
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{Name: c.name, Params: params}}}
}

// ParameterControls lists the HUD-adjustable values.
func (c *Colony) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{core.EdgeControl()}
}

// SetIntParameter updates integer parameters at runtime.
func (c *Colony) SetIntParameter(key string, value int) bool {
	if key != "edge" {
		return false
	}
	c.cfg.Edge = core.EdgeMode(value)
	return true
}

func init() {
	core.Register("ants", func(cfg map[string]string) core.Sim {
		return NewAnts(FromMap(cfg))
	})
	core.Register("turmites", func(cfg map[string]string) core.Sim {
		return NewTurmites(FromMap(cfg))
	})
}
