package core

// Cell constrains the value types a Grid can hold: binary states and
// sandpile heights.
type Cell interface {
	~uint8 | ~int32
}

// Grid stores a 2D grid of cell values in row-major order.
type Grid[T Cell] struct {
	W, H  int
	Cells []T
}

// ByteGrid holds binary (0/1) cells.
type ByteGrid = Grid[uint8]

// HeightGrid holds non-negative sandpile heights.
type HeightGrid = Grid[int32]

// NewGrid allocates a zeroed grid with the given dimensions.
func NewGrid[T Cell](w, h int) Grid[T] {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return Grid[T]{W: w, H: h, Cells: make([]T, w*h)}
}

// Valid reports whether the dimensions are positive and match the buffer.
func (g Grid[T]) Valid() bool {
	return g.W > 0 && g.H > 0 && len(g.Cells) == g.W*g.H
}

// Size returns the grid dimensions.
func (g Grid[T]) Size() Size { return Size{W: g.W, H: g.H} }

// Index returns the linear slice index for coordinates (x, y).
func (g Grid[T]) Index(x, y int) int { return y*g.W + x }

// In reports whether (x, y) lies inside the grid.
func (g Grid[T]) In(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Clone returns a copy with its own backing slice.
func (g Grid[T]) Clone() Grid[T] {
	return Grid[T]{W: g.W, H: g.H, Cells: append([]T(nil), g.Cells...)}
}

// Wrap applies toroidal wrapping to the provided coordinates.
func (g Grid[T]) Wrap(x, y int) (int, int) {
	return WrapAxis(x, g.W), WrapAxis(y, g.H)
}

// Result is the outcome of one grid stepper call.
type Result[T Cell] struct {
	Grid    Grid[T]
	Changed bool
}

// Unchanged returns g as a no-op result.
func Unchanged[T Cell](g Grid[T]) Result[T] {
	return Result[T]{Grid: g}
}
