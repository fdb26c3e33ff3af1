// Package sandpile implements the abelian sandpile model, one toppling wave
// per call.
package sandpile

import "native-automata/pkg/core"

// Threshold is the height at which a cell topples.
const Threshold = 4

var deposits = [core.DirCount]core.Direction{core.DirUp, core.DirRight, core.DirDown, core.DirLeft}

// Step performs exactly one toppling wave. Cells at or above Threshold in the
// input topple once each, in row-major order: they lose Threshold grains and
// send one to each cardinal neighbor. Cells pushed over the threshold by this
// wave wait for the next call.
//
// Under wrap the total is conserved. Under bounce each axis is clamped
// independently, so several deposits can land on the same edge cell. Under
// falloff (and unknown modes) deposits outside the grid are lost.
func Step(g core.HeightGrid, mode core.EdgeMode) core.Result[int32] {
	if !g.Valid() {
		return core.Unchanged(g)
	}

	var topple []int
	for idx, height := range g.Cells {
		if height >= Threshold {
			topple = append(topple, idx)
		}
	}
	if len(topple) == 0 {
		return core.Unchanged(g)
	}

	next := g.Clone()
	dst := next.Cells
	for _, idx := range topple {
		y := idx / g.W
		x := idx - y*g.W
		dst[idx] -= Threshold
		for _, dir := range deposits {
			d := dir.Delta()
			nx, ny := x+d.X, y+d.Y
			switch mode {
			case core.EdgeWrap:
				nx = core.WrapAxis(nx, g.W)
				ny = core.WrapAxis(ny, g.H)
			case core.EdgeBounce:
				nx = core.ClampAxis(nx, g.W)
				ny = core.ClampAxis(ny, g.H)
			default:
				if !g.In(nx, ny) {
					continue
				}
			}
			dst[ny*g.W+nx]++
		}
	}
	return core.Result[int32]{Grid: next, Changed: true}
}

// Total returns the number of grains on the grid.
func Total(g core.HeightGrid) int64 {
	var sum int64
	for _, h := range g.Cells {
		sum += int64(h)
	}
	return sum
}
