package ecology

import (
	"image/color"

	"mad-grid/pkg/board"
)

var dirt = color.NRGBA{R: 70, G: 52, B: 32, A: 255}

func registerPalette(b *board.Board) {
	b.AddColor(StateRock, toRGBA(color.NRGBA{R: 130, G: 130, B: 130, A: 255}))
	b.AddColor(StateGrass, toRGBA(blendColors(dirt, color.NRGBA{R: 70, G: 160, B: 80, A: 255}, 0.75)))
	b.AddColor(StateGrazer, toRGBA(color.NRGBA{R: 235, G: 215, B: 130, A: 255}))
	b.AddColor(StateHungry, toRGBA(blendColors(color.NRGBA{R: 235, G: 215, B: 130, A: 255}, color.NRGBA{R: 255, G: 90, B: 40, A: 255}, 0.6)))
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func blendColors(base, overlay color.NRGBA, overlayWeight float64) color.NRGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	br, bg, bb, ba := float64(base.R), float64(base.G), float64(base.B), float64(base.A)
	or, og, ob, oa := float64(overlay.R), float64(overlay.G), float64(overlay.B), float64(overlay.A)
	w := overlayWeight
	inv := 1 - w
	return color.NRGBA{
		R: uint8(br*inv + or*w + 0.5),
		G: uint8(bg*inv + og*w + 0.5),
		B: uint8(bb*inv + ob*w + 0.5),
		A: uint8(ba*inv + oa*w + 0.5),
	}
}
