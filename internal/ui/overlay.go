//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"mad-grid/internal/core"
)

var layerKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

var layerTints = []color.RGBA{
	{R: 64, G: 164, B: 223},
	{R: 255, G: 120, B: 40},
	{R: 120, G: 220, B: 90},
	{R: 220, G: 80, B: 200},
}

// Overlay highlights the occupancy of single layers. Digit keys 1-9 toggle
// layers 0-8.
type Overlay struct {
	sim     core.Scenario
	scale   int
	show    []bool
	maskImg *ebiten.Image
	maskBuf []byte
}

// NewOverlay constructs an overlay for the scenario.
func NewOverlay(sim core.Scenario, scale int) *Overlay {
	return &Overlay{sim: sim, scale: scale, show: make([]bool, sim.Board().LayerCount())}
}

// Update handles the layer toggle keys.
func (o *Overlay) Update() {
	for i, k := range layerKeys {
		if i < len(o.show) && inpututil.IsKeyJustPressed(k) {
			o.show[i] = !o.show[i]
		}
	}
}

// Draw tints every occupied cell of the enabled layers.
func (o *Overlay) Draw(screen *ebiten.Image) {
	b := o.sim.Board()
	w, h := b.Width(), b.Height()
	total := w * h
	if total == 0 {
		return
	}
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != w || o.maskImg.Bounds().Dy() != h {
		o.maskImg = ebiten.NewImage(w, h)
		o.maskBuf = make([]byte, 4*total)
	}
	for layer, on := range o.show {
		if on {
			o.drawMask(screen, LayerMask(b, layer), layerTints[layer%len(layerTints)])
		}
	}
}

func (o *Overlay) drawMask(screen *ebiten.Image, mask []float32, tint color.RGBA) {
	if len(mask)*4 != len(o.maskBuf) {
		return
	}
	const maxAlpha = 140.0
	for i, v := range mask {
		base := i * 4
		if v <= 0 {
			clear(o.maskBuf[base : base+4])
			continue
		}
		// Premultiplied alpha.
		a := maxAlpha * math.Min(float64(v), 1)
		o.maskBuf[base+0] = uint8(float64(tint.R) * a / 255)
		o.maskBuf[base+1] = uint8(float64(tint.G) * a / 255)
		o.maskBuf[base+2] = uint8(float64(tint.B) * a / 255)
		o.maskBuf[base+3] = uint8(a)
	}
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	scale := max(o.scale, 1)
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.maskImg, op)
}
