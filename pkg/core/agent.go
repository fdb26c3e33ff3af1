package core

import (
	"image"
	"image/color"
)

// Direction is one of the four cardinal headings, ordered clockwise from up.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// DirCount is the number of headings.
const DirCount = 4

var dirDeltas = [DirCount]image.Point{
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
}

// Normalize maps any integer heading into [0, DirCount).
func (d Direction) Normalize() Direction {
	return Direction(WrapAxis(int(d), DirCount))
}

// Clockwise turns right by a quarter.
func (d Direction) Clockwise() Direction { return (d.Normalize() + 1) % DirCount }

// CounterClockwise turns left by a quarter.
func (d Direction) CounterClockwise() Direction {
	return (d.Normalize() + DirCount - 1) % DirCount
}

// Reverse turns around.
func (d Direction) Reverse() Direction { return (d.Normalize() + 2) % DirCount }

// Delta returns the unit step for the heading.
func (d Direction) Delta() image.Point { return dirDeltas[d.Normalize()] }

// DefaultAgentColor is used when a caller supplies no color for an agent.
var DefaultAgentColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Agent is a walker that reads and writes grid cells. Color is cosmetic.
type Agent struct {
	Pos   image.Point
	Dir   Direction
	Color color.RGBA
}

// ZipAgents combines parallel agent collections into agent records.
//
// The effective agent count is the shorter of positions and directions;
// trailing entries of the longer slice are dropped. Colors may be shorter
// still, in which case the missing entries default to opaque white. Extra
// colors are ignored.
func ZipAgents(positions []image.Point, directions []int, colors []color.RGBA) []Agent {
	n := min(len(positions), len(directions))
	agents := make([]Agent, n)
	for i := 0; i < n; i++ {
		c := DefaultAgentColor
		if i < len(colors) {
			c = colors[i]
		}
		agents[i] = Agent{Pos: positions[i], Dir: Direction(directions[i]), Color: c}
	}
	return agents
}

// SplitAgents is the inverse of ZipAgents.
func SplitAgents(agents []Agent) ([]image.Point, []int, []color.RGBA) {
	positions := make([]image.Point, len(agents))
	directions := make([]int, len(agents))
	colors := make([]color.RGBA, len(agents))
	for i, a := range agents {
		positions[i] = a.Pos
		directions[i] = int(a.Dir)
		colors[i] = a.Color
	}
	return positions, directions, colors
}
