package render

import (
	"image"
	"image/color"
	"testing"

	"native-automata/pkg/core"
)

func TestFrameBinary(t *testing.T) {
	img := Frame([]uint8{0, 1, 1, 0}, 2, 2, nil)
	if img == nil {
		t.Fatal("expected an image")
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("live cell pixel %v", got)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("dead cell pixel %v", got)
	}
}

func TestFramePaletteClampsToLastEntry(t *testing.T) {
	palette := []color.RGBA{{R: 1, A: 255}, {G: 2, A: 255}}
	img := Frame([]uint8{0, 1, 9}, 3, 1, palette)
	if got := img.RGBAAt(2, 0); got != palette[1] {
		t.Fatalf("out-of-range value pixel %v, expected %v", got, palette[1])
	}
}

func TestFrameRejectsMismatch(t *testing.T) {
	if Frame([]uint8{1, 2, 3}, 2, 2, nil) != nil {
		t.Fatal("mismatched buffer must not render")
	}
}

func TestDrawAgents(t *testing.T) {
	img := Frame(make([]uint8, 9), 3, 3, nil)
	red := color.RGBA{R: 255, A: 255}
	DrawAgents(img, []core.Agent{
		{Pos: image.Pt(1, 2), Color: red},
		{Pos: image.Pt(5, 5), Color: red},
	})
	if got := img.RGBAAt(1, 2); got != red {
		t.Fatalf("agent pixel %v", got)
	}
}
