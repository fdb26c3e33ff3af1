package core

import (
	"image"
	"image/color"
	"math/rand/v2"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// FillBinary fills the buffer with 0/1 values using the RNG.
func FillBinary(r *rand.Rand, buf []uint8) {
	for i := range buf {
		buf[i] = uint8(r.IntN(2))
	}
}

// FillDensity sets each cell to 1 with probability density.
func FillDensity(r *rand.Rand, buf []uint8, density float64) {
	for i := range buf {
		buf[i] = 0
		if r.Float64() < density {
			buf[i] = 1
		}
	}
}

// RandomAgents places n agents at random cells with random headings, cycling
// through palette for their colors.
func RandomAgents(r *rand.Rand, size Size, n int, palette []color.RGBA) []Agent {
	if n <= 0 || size.W <= 0 || size.H <= 0 {
		return nil
	}
	agents := make([]Agent, n)
	for i := range agents {
		c := DefaultAgentColor
		if len(palette) > 0 {
			c = palette[i%len(palette)]
		}
		agents[i] = Agent{
			Pos:   image.Pt(r.IntN(size.W), r.IntN(size.H)),
			Dir:   Direction(r.IntN(DirCount)),
			Color: c,
		}
	}
	return agents
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
