package elementary

import (
	"strconv"

	"native-automata/pkg/core"
)

// Config holds parameters for the elementary cellular automaton.
type Config struct {
	Width  int
	Height int
	Rule   uint8
	Edge   core.EdgeMode
	// Wrap restarts the sweep at the top once the bottom row is written.
	Wrap bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 256, Height: 256, Rule: 110, Edge: core.EdgeWrap}
}

// FromMap populates a Config from a string map.
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
	if v, ok := cfg["rule"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 255 {
			c.Rule = uint8(parsed)
		}
	}
	if v, ok := cfg["edge"]; ok {
		if parsed, err := core.ParseEdgeMode(v); err == nil {
			c.Edge = parsed
		}
	}
	if v, ok := cfg["wrap"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Wrap = parsed
		}
	}
	return c
}

// Elementary implements a one-dimensional Wolfram code swept down the grid,
// one row per tick.
type Elementary struct {
	cfg     Config
	grid    core.ByteGrid
	row     int
	changed bool
}

// New creates an automaton with the given dimensions and rule.
func New(w, h int, rule uint8) *Elementary {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Rule = rule
	return NewWithConfig(cfg)
}

// NewWithConfig creates an automaton from the provided options.
func NewWithConfig(cfg Config) *Elementary {
	return &Elementary{cfg: cfg, grid: core.NewGrid[uint8](cfg.Width, cfg.Height), row: 1}
}

// Name returns the simulation identifier.
func (e *Elementary) Name() string { return "elementary" }

// Size returns the simulation grid dimensions.
func (e *Elementary) Size() core.Size { return e.grid.Size() }

// Cells exposes the render buffer.
func (e *Elementary) Cells() []uint8 { return e.grid.Cells }

// Row returns the next row the sweep will write.
func (e *Elementary) Row() int { return e.row }

// Changed reports whether the last Step wrote a row.
func (e *Elementary) Changed() bool { return e.changed }

// Reset clears the grid and seeds the top row with a single active cell.
func (e *Elementary) Reset(seed int64) {
	for i := range e.grid.Cells {
		e.grid.Cells[i] = 0
	}
	e.grid.Cells[e.grid.W/2] = 1
	e.row = 1
	e.changed = true
}

// Step writes the next row of the sweep.
func (e *Elementary) Step() {
	res := StepRow(e.grid, e.cfg.Rule, e.row, e.cfg.Edge, e.cfg.Wrap)
	e.grid = res.Grid
	e.row = res.Row
	e.changed = res.Changed
}

// Parameters reports the active configuration.
func (e *Elementary) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Elementary",
		Params: []core.Parameter{
			core.IntParam("w", "Width", e.grid.W),
			core.IntParam("h", "Height", e.grid.H),
			core.IntParam("rule", "Rule", int(e.cfg.Rule)),
			core.IntParam("edge", "Edge mode", int(e.cfg.Edge)),
			core.BoolParam("wrap", "Wrap rows", e.cfg.Wrap),
			core.IntParam("row", "Row", e.row),
		},
	}}}
}

// ParameterControls lists the HUD-adjustable values.
func (e *Elementary) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "rule", Label: "Rule", Type: core.ParamTypeInt, Step: 1, HasMin: true, Min: 0, HasMax: true, Max: 255},
		core.EdgeControl(),
	}
}

// SetIntParameter updates integer parameters at runtime.
func (e *Elementary) SetIntParameter(key string, value int) bool {
	switch key {
	case "rule":
		if value < 0 || value > 255 {
			return false
		}
		e.cfg.Rule = uint8(value)
	case "edge":
		e.cfg.Edge = core.EdgeMode(value)
	default:
		return false
	}
	return true
}

func init() {
	core.Register("elementary", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
