package life

import (
	"native-automata/pkg/core"
)

// Life runs a Life-like totalistic automaton under a configurable edge mode.
type Life struct {
	cfg     Config
	grid    core.ByteGrid
	changed bool
}

// New returns a Conway simulation with the provided dimensions.
func New(w, h int) *Life {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a simulation configured from the provided options.
func NewWithConfig(cfg Config) *Life {
	return &Life{cfg: cfg, grid: core.NewGrid[uint8](cfg.Width, cfg.Height)}
}

// Name returns the simulation identifier.
func (l *Life) Name() string { return "life" }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return l.grid.Size() }

// Cells exposes the current grid values.
func (l *Life) Cells() []uint8 { return l.grid.Cells }

// Changed reports whether the last Step altered any cell.
func (l *Life) Changed() bool { return l.changed }

// Reset randomizes the board using the provided seed.
func (l *Life) Reset(seed int64) {
	rng := core.NewRNG(seed).Source()
	core.FillDensity(rng, l.grid.Cells, l.cfg.Density)
	l.changed = true
}

// Step advances the simulation by one generation.
func (l *Life) Step() {
	res := Step(l.grid, l.cfg.Rule, l.cfg.Edge)
	l.grid = res.Grid
	l.changed = res.Changed
}

// Parameters reports the active configuration.
func (l *Life) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Life",
		Params: []core.Parameter{
			core.IntParam("w", "Width", l.grid.W),
			core.IntParam("h", "Height", l.grid.H),
			core.StringParam("rule", "Rule", l.cfg.Rule.String()),
			core.IntParam("edge", "Edge mode", int(l.cfg.Edge)),
			core.FloatParam("density", "Seed density", l.cfg.Density),
		},
	}}}
}

// ParameterControls lists the HUD-adjustable values.
func (l *Life) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{core.EdgeControl()}
}

// SetIntParameter updates integer parameters at runtime.
func (l *Life) SetIntParameter(key string, value int) bool {
	if key != "edge" {
		return false
	}
	l.cfg.Edge = core.EdgeMode(value)
	return true
}

func init() {
	core.Register("life", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
