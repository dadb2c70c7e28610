package render

import (
	"image/color"
	"io"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mad-grid/internal/core"
	"mad-grid/internal/sims/elementary"
	"mad-grid/pkg/board"
	pcore "mad-grid/pkg/core"
)

func quiet() board.Option {
	return board.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func layeredBoard(t *testing.T) *board.Board {
	t.Helper()
	b := board.New(4, 2, 2, quiet())
	b.AddColor("Rock", color.RGBA{R: 130, G: 130, B: 130, A: 255})
	b.AddColor("Grass", color.RGBA{G: 160, A: 255})
	for _, p := range []board.Placement{
		{Pos: pcore.P(0, 0), Layer: 0, State: "Rock"},
		{Pos: pcore.P(1, 0), Layer: 0, State: "Rock"},
		{Pos: pcore.P(1, 0), Layer: 1, State: "Grass"},
		{Pos: pcore.P(2, 1), Layer: 1, State: "Grass"},
		{Pos: pcore.P(3, 1), Layer: 0, State: board.StateAlive},
	} {
		_, err := b.Add(p, false)
		require.NoError(t, err)
	}
	return b
}

func TestTextElementaryRule90(t *testing.T) {
	e := elementary.New(elementary.Config{Width: 9, Height: 5, Rule: 90}, quiet())
	require.NoError(t, e.Reset(0))
	for i := 0; i < 6; i++ {
		require.NoError(t, e.Board().Step())
	}
	golden(t).Assert(t, "elementary_rule90", []byte(Text(e.Board(), nil)))
}

func TestTextTopLayerWins(t *testing.T) {
	golden(t).Assert(t, "layers", []byte(Text(layeredBoard(t), nil)))
}

func TestPaletteAndRasterize(t *testing.T) {
	b := layeredBoard(t)
	bg := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	p := NewPalette(b, bg)
	assert.Equal(t, []string{board.StateAlive, board.StateDead, "Grass", board.StateNone, "Rock"}, p.States)
	assert.Equal(t, bg, p.Colors[0])
	assert.Equal(t, uint8(5), p.Index("Rock"))
	assert.Equal(t, uint8(5), p.Index("Unknown"))

	g := core.NewByteGrid(4, 2)
	g.Set(3, 0, 9)
	Rasterize(b, p, g)
	assert.Equal(t, []uint8{5, 3, 0, 0, 0, 0, 3, 1}, g.Cells())
}

func TestImage(t *testing.T) {
	b := layeredBoard(t)
	bg := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	img := Image(b, bg)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
	assert.Equal(t, bg, img.RGBAAt(2, 0))
	assert.Equal(t, color.RGBA{G: 160, A: 255}, img.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{R: 150, G: 255, B: 150, A: 255}, img.RGBAAt(3, 1))
}

func TestFillPaletteRGBA(t *testing.T) {
	buf := []byte{9, 9, 9, 9, 9, 9, 9, 9}
	fillPaletteRGBA(buf, []uint8{0, 1}, nil)
	assert.Equal(t, make([]byte, 8), buf)

	pal := []color.RGBA{{R: 10, A: 255}, {G: 20, A: 255}}
	fillPaletteRGBA(buf, []uint8{1, 7}, pal)
	assert.Equal(t, []byte{0, 20, 0, 255, 0, 20, 0, 255}, buf)
}
