package core

import (
	"fmt"
	"strings"
)

// EdgeMode selects how coordinates outside the grid are resolved.
type EdgeMode int

const (
	// EdgeWrap joins opposite edges (toroidal topology).
	EdgeWrap EdgeMode = iota
	// EdgeBounce reflects coordinates back into the grid.
	EdgeBounce
	// EdgeFalloff treats everything outside the grid as absent. Unknown modes
	// behave the same way.
	EdgeFalloff
)

// String returns the configuration name of the mode.
func (m EdgeMode) String() string {
	switch m {
	case EdgeWrap:
		return "wrap"
	case EdgeBounce:
		return "bounce"
	case EdgeFalloff:
		return "falloff"
	default:
		return fmt.Sprintf("edge(%d)", int(m))
	}
}

// ParseEdgeMode converts a configuration name or numeric value into an EdgeMode.
func ParseEdgeMode(s string) (EdgeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wrap", "torus", "0":
		return EdgeWrap, nil
	case "bounce", "reflect", "1":
		return EdgeBounce, nil
	case "falloff", "none", "2":
		return EdgeFalloff, nil
	}
	return EdgeFalloff, fmt.Errorf("unknown edge mode %q", s)
}

// WrapAxis maps v into [0, max) using Euclidean modulo.
func WrapAxis(v, max int) int {
	m := v % max
	if m < 0 {
		m += max
	}
	return m
}

// ClampAxis limits v to [0, max-1].
func ClampAxis(v, max int) int {
	if v < 0 {
		return 0
	}
	if v >= max {
		return max - 1
	}
	return v
}

// BounceAxis reflects v off the nearest edge. Only a single reflection is
// exact; anything further out is clamped.
func BounceAxis(v, max int) int {
	if v < 0 {
		return ClampAxis(-v-1, max)
	}
	if v >= max {
		return ClampAxis(max-(v-max)-1, max)
	}
	return v
}

// Sample reads the cell at (x, y), resolving out-of-range coordinates with
// the given edge mode. Under falloff the zero value is returned.
func Sample[T Cell](g Grid[T], x, y int, mode EdgeMode) T {
	if g.In(x, y) {
		return g.Cells[y*g.W+x]
	}
	switch mode {
	case EdgeWrap:
		return g.Cells[WrapAxis(y, g.H)*g.W+WrapAxis(x, g.W)]
	case EdgeBounce:
		return g.Cells[BounceAxis(y, g.H)*g.W+BounceAxis(x, g.W)]
	default:
		var zero T
		return zero
	}
}
