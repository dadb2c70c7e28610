// Package render turns board layers into pixels and text.
package render

import (
	"image"
	"image/color"
	"maps"
	"slices"
	"strings"

	"mad-grid/internal/core"
	"mad-grid/pkg/board"
	pcore "mad-grid/pkg/core"
)

// Palette maps board states to raster indices. Index 0 is the background.
type Palette struct {
	States []string
	Colors []color.RGBA
	index  map[string]uint8
}

// NewPalette builds a palette from the board's registered colors, ordered by
// state name. At most 255 states are indexed; the rest share the last slot.
func NewPalette(b *board.Board, background color.RGBA) *Palette {
	colors := b.Colors()
	names := slices.Sorted(maps.Keys(colors))
	p := &Palette{
		Colors: []color.RGBA{background},
		index:  make(map[string]uint8, len(names)),
	}
	for _, name := range names {
		if len(p.Colors) > 255 {
			break
		}
		p.index[name] = uint8(len(p.Colors))
		p.States = append(p.States, name)
		p.Colors = append(p.Colors, colors[name])
	}
	return p
}

// Index returns the raster value for state, or the last slot when unknown.
func (p *Palette) Index(state string) uint8 {
	if i, ok := p.index[state]; ok {
		return i
	}
	return uint8(len(p.Colors) - 1)
}

// Rasterize writes, for every cell, the palette index of the agent on the
// highest occupied layer. Empty cells get 0.
func Rasterize(b *board.Board, p *Palette, g *core.ByteGrid) {
	g.Clear()
	for y := 0; y < min(g.H, b.Height()); y++ {
		for x := 0; x < min(g.W, b.Width()); x++ {
			if a := top(b, pcore.P(x, y)); a.Valid() {
				g.Set(x, y, p.Index(a.State()))
			}
		}
	}
}

// Image renders the board into an RGBA image, one pixel per cell.
func Image(b *board.Board, background color.RGBA) *image.RGBA {
	p := NewPalette(b, background)
	g := core.NewByteGrid(b.Width(), b.Height())
	Rasterize(b, p, g)
	img := image.NewRGBA(image.Rect(0, 0, g.W, g.H))
	fillPaletteRGBA(img.Pix, g.Cells(), p.Colors)
	return img
}

// DefaultGlyphs are used by Text for the built-in states.
var DefaultGlyphs = map[string]byte{
	board.StateAlive: '#',
	board.StateDead:  '.',
	board.StateNone:  ' ',
}

// Text draws the board as one line per row, row 0 first. Each cell shows the
// glyph of the agent on the highest occupied layer; states without a glyph
// use their first letter and empty cells a space.
func Text(b *board.Board, glyphs map[string]byte) string {
	if glyphs == nil {
		glyphs = DefaultGlyphs
	}
	var sb strings.Builder
	sb.Grow((b.Width() + 1) * b.Height())
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			sb.WriteByte(glyph(top(b, pcore.P(x, y)), glyphs))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func glyph(a board.Agent, glyphs map[string]byte) byte {
	if !a.Valid() {
		return ' '
	}
	state := a.State()
	if g, ok := glyphs[state]; ok {
		return g
	}
	if state == "" {
		return '?'
	}
	return state[0]
}

func top(b *board.Board, p pcore.Pos) board.Agent {
	for layer := b.LayerCount() - 1; layer >= 0; layer-- {
		a, err := b.Get(p, layer, false)
		if err == nil && a.Valid() {
			return a
		}
	}
	return board.Agent{}
}
