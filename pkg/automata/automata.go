// Package automata exposes the steppers over flat, caller-owned buffers and
// parallel agent slices, for hosts that keep their state in that shape.
//
// Every function is pure: inputs are never modified and nothing is retained
// between calls. Malformed input (non-positive dimensions, a buffer whose
// length is not width*height, no agents) yields the input back with
// Changed=false.
//
// Parallel agent slices are combined with core.ZipAgents: the agent count is
// the shorter of positions and directions, missing colors default to opaque
// white, and trailing entries of longer slices are not reported back.
package automata

import (
	"image"
	"image/color"

	"native-automata/pkg/core"
	"native-automata/pkg/sims/ant"
	"native-automata/pkg/sims/elementary"
	"native-automata/pkg/sims/life"
	"native-automata/pkg/sims/sandpile"
)

// GridResult carries the next buffer of a grid stepper.
type GridResult[T core.Cell] struct {
	Cells   []T
	Changed bool
}

// WolframResult carries the next buffer and row cursor of a row sweep.
type WolframResult struct {
	Cells   []uint8
	Row     int
	Changed bool
}

// AgentsResult carries the next buffer and surviving agents.
type AgentsResult struct {
	Cells      []uint8
	Positions  []image.Point
	Directions []int
	Colors     []color.RGBA
	Changed    bool
}

// StepTotalistic advances a Life-like automaton by one generation.
func StepTotalistic(cells []uint8, width, height int, birth, survive []int, mode core.EdgeMode) GridResult[uint8] {
	res := life.Step(core.Grid[uint8]{W: width, H: height, Cells: cells}, life.NewRule(birth, survive), mode)
	return GridResult[uint8]{Cells: res.Grid.Cells, Changed: res.Changed}
}

// StepSandpile performs one toppling wave.
func StepSandpile(cells []int32, width, height int, mode core.EdgeMode) GridResult[int32] {
	res := sandpile.Step(core.Grid[int32]{W: width, H: height, Cells: cells}, mode)
	return GridResult[int32]{Cells: res.Grid.Cells, Changed: res.Changed}
}

// StepWolfram writes one row of an elementary automaton sweep.
func StepWolfram(cells []uint8, width, height int, rule uint8, row int, mode core.EdgeMode, wrapRows bool) WolframResult {
	res := elementary.StepRow(core.Grid[uint8]{W: width, H: height, Cells: cells}, rule, row, mode, wrapRows)
	return WolframResult{Cells: res.Grid.Cells, Row: res.Row, Changed: res.Changed}
}

// StepAnts moves every ant once.
func StepAnts(cells []uint8, width, height int, mode core.EdgeMode, positions []image.Point, directions []int, colors []color.RGBA) AgentsResult {
	g := core.Grid[uint8]{W: width, H: height, Cells: cells}
	agents := core.ZipAgents(positions, directions, colors)
	if !g.Valid() || len(agents) == 0 {
		return passThrough(cells, positions, directions, colors)
	}
	return agentsResult(ant.StepAnts(g, mode, agents))
}

// StepTurmites moves every turmite once using rule.
func StepTurmites(cells []uint8, width, height int, mode core.EdgeMode, positions []image.Point, directions []int, colors []color.RGBA, rule string) AgentsResult {
	g := core.Grid[uint8]{W: width, H: height, Cells: cells}
	agents := core.ZipAgents(positions, directions, colors)
	if !g.Valid() || len(agents) == 0 {
		return passThrough(cells, positions, directions, colors)
	}
	return agentsResult(ant.StepTurmites(g, mode, agents, rule))
}

// passThrough hands the caller's slices back untouched.
func passThrough(cells []uint8, positions []image.Point, directions []int, colors []color.RGBA) AgentsResult {
	return AgentsResult{Cells: cells, Positions: positions, Directions: directions, Colors: colors}
}

func agentsResult(res ant.Result) AgentsResult {
	positions, directions, colors := core.SplitAgents(res.Agents)
	return AgentsResult{
		Cells:      res.Grid.Cells,
		Positions:  positions,
		Directions: directions,
		Colors:     colors,
		Changed:    res.Changed,
	}
}
