// Package ant implements multi-agent grid walkers: Langton's ant and
// rule-string turmites.
package ant

import (
	"strings"
	"unicode/utf8"

	"native-automata/pkg/core"
)

// Result is the outcome of one agent step.
type Result struct {
	Grid    core.ByteGrid
	Agents  []core.Agent
	Changed bool
}

// turnFunc decides the new heading and cell value from the cell under an
// agent.
type turnFunc func(dir core.Direction, cell uint8) (core.Direction, uint8)

// StepAnts advances every ant by one move. On a live cell an ant turns
// clockwise and clears it, otherwise it turns counter-clockwise and sets it.
func StepAnts(g core.ByteGrid, mode core.EdgeMode, agents []core.Agent) Result {
	return walk(g, mode, agents, func(dir core.Direction, cell uint8) (core.Direction, uint8) {
		if cell == 1 {
			return dir.Clockwise(), 0
		}
		return dir.CounterClockwise(), 1
	})
}

// DefaultTurmiteRule replaces rule strings shorter than two characters.
const DefaultTurmiteRule = "RL"

// StepTurmites advances every turmite by one move. The turn is looked up in
// rule by the value of the cell under the turmite (clamped to the rule
// length, counted in characters): 'R' turns clockwise, anything else
// counter-clockwise. The cell is then flipped.
//
// "LR" reproduces Langton's ant exactly; the default "RL" walks its mirror
// image.
func StepTurmites(g core.ByteGrid, mode core.EdgeMode, agents []core.Agent, rule string) Result {
	turns := []rune(NormalizeRule(rule))
	return walk(g, mode, agents, func(dir core.Direction, cell uint8) (core.Direction, uint8) {
		idx := min(int(cell), len(turns)-1)
		next := 1 - cell
		if turns[idx] == 'R' {
			return dir.Clockwise(), next
		}
		return dir.CounterClockwise(), next
	})
}

// NormalizeRule upper-cases a turmite rule and falls back to
// DefaultTurmiteRule when it has fewer than two characters.
func NormalizeRule(rule string) string {
	rule = strings.ToUpper(rule)
	if utf8.RuneCountInString(rule) < 2 {
		return DefaultTurmiteRule
	}
	return rule
}

// walk moves agents one at a time over a single copy of the grid, so later
// agents see the writes of earlier ones.
//
// Agents already off the grid are dropped. After turning, an agent steps one
// cell: wrap wraps both axes, bounce reverses the heading and steps the other
// way (clamped) when the step would leave the grid, and falloff drops the
// agent. Survivors keep their order and color.
func walk(g core.ByteGrid, mode core.EdgeMode, agents []core.Agent, turn turnFunc) Result {
	if !g.Valid() || len(agents) == 0 {
		return Result{Grid: g, Agents: agents}
	}

	next := g.Clone()
	cells := next.Cells
	out := make([]core.Agent, 0, len(agents))
	changed := false

	for _, a := range agents {
		pos := a.Pos
		if !g.In(pos.X, pos.Y) {
			changed = true
			continue
		}

		idx := next.Index(pos.X, pos.Y)
		current := cells[idx]
		dir, value := turn(a.Dir.Normalize(), current)
		cells[idx] = value

		step := pos.Add(dir.Delta())
		switch mode {
		case core.EdgeWrap:
			step.X, step.Y = g.Wrap(step.X, step.Y)
		case core.EdgeBounce:
			if !g.In(step.X, step.Y) {
				dir = dir.Reverse()
				step = pos.Add(dir.Delta())
				step.X = core.ClampAxis(step.X, g.W)
				step.Y = core.ClampAxis(step.Y, g.H)
			}
		default:
			if !g.In(step.X, step.Y) {
				changed = true
				continue
			}
		}

		if step != pos || dir != a.Dir || cells[idx] != current {
			changed = true
		}
		out = append(out, core.Agent{Pos: step, Dir: dir, Color: a.Color})
	}

	return Result{Grid: next, Agents: out, Changed: changed}
}
