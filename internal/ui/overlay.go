//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"native-automata/pkg/core"
	"native-automata/pkg/sims/sandpile"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type heightsProvider interface {
	Heights() core.HeightGrid
}

type rowProvider interface {
	Row() int
}

// Overlay draws optional debugging visuals on top of the base simulation.
type Overlay struct {
	sim          core.Sim
	scale        int
	showAgents   bool
	showCursor   bool
	showUnstable bool

	maskImg *ebiten.Image
	maskBuf []byte
	pixel   *ebiten.Image
}

// NewOverlay constructs a new overlay instance. Agent headings are shown by
// default.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale, showAgents: true, showCursor: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles layers from the number keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showAgents = !o.showAgents
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showCursor = !o.showCursor
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showUnstable = !o.showUnstable
	}
}

// Draw renders the enabled layers onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}

	if o.showUnstable {
		if provider, ok := o.sim.(heightsProvider); ok {
			o.drawUnstable(screen, provider.Heights(), scale)
		}
	}
	if o.showCursor {
		if provider, ok := o.sim.(rowProvider); ok {
			row := provider.Row()
			if row >= 0 && row < size.H {
				y := (float64(row) + 0.5) * float64(scale)
				o.drawLine(screen, 0, y, float64(size.W*scale), y, float64(scale), color.RGBA{R: 255, G: 200, B: 60, A: 110})
			}
		}
	}
	if o.showAgents {
		if provider, ok := o.sim.(core.AgentProvider); ok {
			o.drawAgents(screen, provider.Agents(), scale)
		}
	}
}

func (o *Overlay) drawAgents(screen *ebiten.Image, agents []core.Agent, scale int) {
	const headAngle = math.Pi / 6
	length := math.Max(float64(scale)*2.5, 4)
	thickness := math.Max(float64(scale)*0.5, 1)
	for _, a := range agents {
		cx := (float64(a.Pos.X) + 0.5) * float64(scale)
		cy := (float64(a.Pos.Y) + 0.5) * float64(scale)
		d := a.Dir.Delta()
		tipX := cx + float64(d.X)*length
		tipY := cy + float64(d.Y)*length
		col := a.Color
		col.A = 220
		o.drawPoint(screen, cx, cy, thickness*2, col)
		o.drawLine(screen, cx, cy, tipX, tipY, thickness, col)

		head := length * 0.4
		angle := math.Atan2(float64(d.Y), float64(d.X))
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle+headAngle)*head, tipY-math.Sin(angle+headAngle)*head, thickness, col)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle-headAngle)*head, tipY-math.Sin(angle-headAngle)*head, thickness, col)
	}
}

// drawUnstable tints every cell that will topple on the next step.
func (o *Overlay) drawUnstable(screen *ebiten.Image, g core.HeightGrid, scale int) {
	if !g.Valid() {
		return
	}
	total := g.W * g.H
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != g.W || o.maskImg.Bounds().Dy() != g.H {
		o.maskImg = ebiten.NewImage(g.W, g.H)
		o.maskBuf = make([]byte, 4*total)
	}
	tint := color.RGBA{R: 255, G: 60, B: 40, A: 0}
	for i, h := range g.Cells {
		base := i * 4
		if h < sandpile.Threshold {
			o.maskBuf[base+0] = 0
			o.maskBuf[base+1] = 0
			o.maskBuf[base+2] = 0
			o.maskBuf[base+3] = 0
			continue
		}
		excess := clamp01(float64(h-sandpile.Threshold+1) / sandpile.Threshold)
		alpha := uint8(math.Round(90 + 110*excess))
		// Premultiplied.
		o.maskBuf[base+0] = scaleColorComponent(tint.R, float64(alpha)/255)
		o.maskBuf[base+1] = scaleColorComponent(tint.G, float64(alpha)/255)
		o.maskBuf[base+2] = scaleColorComponent(tint.B, float64(alpha)/255)
		o.maskBuf[base+3] = alpha
	}
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.maskImg, op)
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func scaleColorComponent(value uint8, factor float64) uint8 {
	scaled := math.Round(float64(value) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}
