package life

import "native-automata/pkg/core"

// Step computes the next generation of a binary grid under rule and the given
// edge mode. The input grid is never modified. Invalid grids come back
// unchanged.
func Step(g core.ByteGrid, rule Rule, mode core.EdgeMode) core.Result[uint8] {
	if !g.Valid() {
		return core.Unchanged(g)
	}
	next := core.Grid[uint8]{W: g.W, H: g.H, Cells: make([]uint8, len(g.Cells))}

	var changed bool
	switch mode {
	case core.EdgeWrap:
		changed = stepResolved(g, next, rule, core.WrapAxis)
	case core.EdgeBounce:
		// Adjacent coordinates are at most one cell out, where clamping and
		// single reflection agree.
		changed = stepResolved(g, next, rule, core.ClampAxis)
	default:
		changed = stepBounded(g, next, rule)
	}
	return core.Result[uint8]{Grid: next, Changed: changed}
}

// stepResolved precomputes the neighbor rows and columns once per row so the
// inner loop is branch free.
func stepResolved(src, dst core.ByteGrid, rule Rule, resolve func(v, max int) int) bool {
	w, h := src.W, src.H
	s := src.Cells
	changed := false
	for y := 0; y < h; y++ {
		row := y * w
		up := resolve(y-1, h) * w
		down := resolve(y+1, h) * w
		for x := 0; x < w; x++ {
			left := resolve(x-1, w)
			right := resolve(x+1, w)
			neighbors := int(s[up+left]) + int(s[up+x]) + int(s[up+right]) +
				int(s[row+left]) + int(s[row+right]) +
				int(s[down+left]) + int(s[down+x]) + int(s[down+right])
			v := rule.next(s[row+x], neighbors)
			dst.Cells[row+x] = v
			if v != s[row+x] {
				changed = true
			}
		}
	}
	return changed
}

// stepBounded skips neighbors outside the grid.
func stepBounded(src, dst core.ByteGrid, rule Rule) bool {
	w, h := src.W, src.H
	s := src.Cells
	changed := false
	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			neighbors := 0
			for dy := -1; dy <= 1; dy++ {
				ny := y + dy
				if ny < 0 || ny >= h {
					continue
				}
				for dx := -1; dx <= 1; dx++ {
					nx := x + dx
					if dx == 0 && dy == 0 {
						continue
					}
					if nx < 0 || nx >= w {
						continue
					}
					neighbors += int(s[ny*w+nx])
				}
			}
			v := rule.next(s[row+x], neighbors)
			dst.Cells[row+x] = v
			if v != s[row+x] {
				changed = true
			}
		}
	}
	return changed
}

// next applies the rule to one cell. Only a value of exactly 1 is alive.
func (r Rule) next(cur uint8, neighbors int) uint8 {
	if neighbors < 0 || neighbors > 8 {
		return 0
	}
	if cur == 1 {
		if r.Survive[neighbors] {
			return 1
		}
		return 0
	}
	if r.Birth[neighbors] {
		return 1
	}
	return 0
}
