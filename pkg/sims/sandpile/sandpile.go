package sandpile

import (
	"image/color"
	"strconv"

	"native-automata/pkg/core"
)

// Config controls the sandpile simulation.
type Config struct {
	Width  int
	Height int
	Edge   core.EdgeMode
	// Drop is the number of grains added to the centre cell whenever the
	// pile is stable.
	Drop int
	// Max seeds Reset with random heights in [0, Max).
	Max int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Width: 128, Height: 128, Edge: core.EdgeFalloff, Drop: 1, Max: 4}
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
	if v, ok := cfg["drop"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Drop = parsed
		}
	}
	if v, ok := cfg["max"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Max = parsed
		}
	}
	return c
}

// Pile is a stateful sandpile that alternates between dropping grains and
// toppling.
type Pile struct {
	cfg     Config
	grid    core.HeightGrid
	display []uint8
	changed bool
}

// New returns a sandpile with default settings and the given dimensions.
func New(w, h int) *Pile {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a sandpile configured from the provided options.
func NewWithConfig(cfg Config) *Pile {
	g := core.NewGrid[int32](cfg.Width, cfg.Height)
	return &Pile{cfg: cfg, grid: g, display: make([]uint8, len(g.Cells))}
}

// Name returns the simulation identifier.
func (p *Pile) Name() string { return "sandpile" }

// Size reports the grid dimensions.
func (p *Pile) Size() core.Size { return p.grid.Size() }

// Cells exposes heights clamped to the palette range.
func (p *Pile) Cells() []uint8 { return p.display }

// Heights exposes the raw height grid.
func (p *Pile) Heights() core.HeightGrid { return p.grid }

// Changed reports whether the last Step dropped or toppled anything.
func (p *Pile) Changed() bool { return p.changed }

// Reset scatters random heights below Max.
func (p *Pile) Reset(seed int64) {
	rng := core.NewRNG(seed).Source()
	for i := range p.grid.Cells {
		p.grid.Cells[i] = 0
		if p.cfg.Max > 0 {
			p.grid.Cells[i] = int32(rng.IntN(p.cfg.Max))
		}
	}
	p.changed = true
	p.rebuildDisplay()
}

// Step runs one toppling wave, or drops grains on the centre when the pile
// is stable.
func (p *Pile) Step() {
	res := Step(p.grid, p.cfg.Edge)
	if res.Changed {
		p.grid = res.Grid
		p.changed = true
	} else if p.cfg.Drop > 0 {
		p.grid = p.grid.Clone()
		p.grid.Cells[p.grid.Index(p.grid.W/2, p.grid.H/2)] += int32(p.cfg.Drop)
		p.changed = true
	} else {
		p.changed = false
	}
	p.rebuildDisplay()
}

func (p *Pile) rebuildDisplay() {
	for i, h := range p.grid.Cells {
		switch {
		case h <= 0:
			p.display[i] = 0
		case h >= Threshold:
			p.display[i] = Threshold
		default:
			p.display[i] = uint8(h)
		}
	}
}

var palette = []color.RGBA{
	{R: 12, G: 12, B: 24, A: 255},
	{R: 40, G: 90, B: 170, A: 255},
	{R: 230, G: 200, B: 80, A: 255},
	{R: 200, G: 80, B: 40, A: 255},
	{R: 255, G: 255, B: 255, A: 255},
}

// Palette maps display heights 0..4 to colors.
func (p *Pile) Palette() []color.RGBA { return palette }

// Parameters reports the active configuration.
func (p *Pile) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Sandpile",
		Params: []core.Parameter{
			core.IntParam("w", "Width", p.grid.W),
			core.IntParam("h", "Height", p.grid.H),
			core.IntParam("edge", "Edge mode", int(p.cfg.Edge)),
			core.IntParam("drop", "Grains per drop", p.cfg.Drop),
			core.IntParam("max", "Seed height max", p.cfg.Max),
		},
	}}}
}

// ParameterControls lists the HUD-adjustable values.
func (p *Pile) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		core.EdgeControl(),
		{Key: "drop", Label: "Grains per drop", Type: core.ParamTypeInt, Step: 1, HasMin: true, Min: 0, HasMax: true, Max: 64},
	}
}

// SetIntParameter updates integer parameters at runtime.
func (p *Pile) SetIntParameter(key string, value int) bool {
	switch key {
	case "edge":
		p.cfg.Edge = core.EdgeMode(value)
	case "drop":
		if value < 0 {
			return false
		}
		p.cfg.Drop = value
	default:
		return false
	}
	return true
}

func init() {
	core.Register("sandpile", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
