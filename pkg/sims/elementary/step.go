package elementary

import "native-automata/pkg/core"

// RowResult is the outcome of one row sweep.
type RowResult struct {
	Grid    core.ByteGrid
	Row     int
	Changed bool
}

// StepRow treats the grid as a stack of one-dimensional generations and
// writes the generation for the cursor row from the row above it.
//
// With wrapRows the cursor is taken modulo the height, the row above row 0 is
// the bottom row, and the returned cursor wraps. Without it a cursor at or
// past the bottom is a no-op that hands the cursor back unchanged, and row 0
// reads from itself. Horizontal neighbors follow mode regardless of wrapRows.
//
// Changed reports progress rather than a content diff: it is true for every
// call that writes a row, even when the row is identical to what was there.
func StepRow(g core.ByteGrid, rule uint8, row int, mode core.EdgeMode, wrapRows bool) RowResult {
	if !g.Valid() {
		return RowResult{Grid: g, Row: row}
	}

	cur := row
	if wrapRows {
		cur = core.WrapAxis(cur, g.H)
	}
	if cur >= g.H {
		return RowResult{Grid: g, Row: cur}
	}
	if cur < 0 {
		cur = 0
	}

	src := cur - 1
	if cur <= 0 {
		src = 0
		if wrapRows {
			src = g.H - 1
		}
	}

	next := g.Clone()
	base := cur * g.W
	for x := 0; x < g.W; x++ {
		left := core.Sample(g, x-1, src, mode)
		center := core.Sample(g, x, src, mode)
		right := core.Sample(g, x+1, src, mode)
		key := (left << 2) | (center << 1) | right
		next.Cells[base+x] = (rule >> key) & 1
	}

	nextRow := cur + 1
	if wrapRows {
		nextRow %= g.H
	}
	return RowResult{Grid: next, Row: nextRow, Changed: true}
}
