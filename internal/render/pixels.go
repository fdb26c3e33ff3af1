// Package render turns cell buffers into pixels.
package render

import (
	"image"
	"image/color"

	"native-automata/pkg/core"
)

// Colors used for binary grids when a sim provides no palette.
var (
	On  color.Color = color.White
	Off color.Color = color.Black
)

// fillBinaryRGBA converts binary cell data (0/1) into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	onPx := rgba(on)
	offPx := rgba(off)
	for i, c := range cells {
		px := offPx
		if c != 0 {
			px = onPx
		}
		copy(buf[i*4:i*4+4], px[:])
	}
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette.
// Values past the end of the palette use its last entry. When the palette is
// empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:len(cells)*4])
		return
	}
	last := len(palette) - 1
	for i, c := range cells {
		col := palette[min(int(c), last)]
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

func rgba(c color.Color) [4]byte {
	r, g, b, a := c.RGBA()
	return [4]byte{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

// Fill writes cells into buf (4 bytes per cell), through palette when it is
// non-empty and as on/off pixels otherwise.
func Fill(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) > 0 {
		fillPaletteRGBA(buf, cells, palette)
		return
	}
	fillBinaryRGBA(buf, cells, On, Off)
}

// Frame renders a w*h cell buffer into a new image. It returns nil when the
// buffer does not match the dimensions.
func Frame(cells []uint8, w, h int, palette []color.RGBA) *image.RGBA {
	if w <= 0 || h <= 0 || len(cells) != w*h {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	Fill(img.Pix, cells, palette)
	return img
}

// DrawAgents paints each agent's color on its cell. Agents outside the image
// are skipped.
func DrawAgents(img *image.RGBA, agents []core.Agent) {
	if img == nil {
		return
	}
	for _, a := range agents {
		if !a.Pos.In(img.Rect) {
			continue
		}
		img.SetRGBA(a.Pos.X, a.Pos.Y, a.Color)
	}
}
