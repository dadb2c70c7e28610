//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"mad-grid/internal/core"
	"mad-grid/pkg/board"
)

// GridPainter uploads a rasterised board into a single ebiten image.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	grid *core.ByteGrid
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, grid: core.NewByteGrid(w, h), buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit rasterises b with its current palette and draws it scaled onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, b *board.Board, background color.RGBA, scale int) {
	if b.Width() != gp.w || b.Height() != gp.h {
		return
	}
	p := NewPalette(b, background)
	Rasterize(b, p, gp.grid)
	fillPaletteRGBA(gp.buf, gp.grid.Cells(), p.Colors)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
