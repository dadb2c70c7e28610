package elementary

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mad-grid/pkg/board"
	pcore "mad-grid/pkg/core"
)

func rows(t *testing.T, b *board.Board) []string {
	t.Helper()
	out := make([]string, b.Height())
	for y := 0; y < b.Height(); y++ {
		var sb strings.Builder
		for x := 0; x < b.Width(); x++ {
			a, err := b.Get(pcore.P(x, y), 0, false)
			require.NoError(t, err)
			if a.State() == board.StateAlive {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		out[y] = sb.String()
	}
	return out
}

func TestRule90FromSingleCell(t *testing.T) {
	e := New(Config{Width: 9, Height: 5, Rule: 90}, board.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, e.Reset(0))
	assert.Equal(t, "....#....", rows(t, e.Board())[4])

	require.NoError(t, e.Board().Step())
	got := rows(t, e.Board())
	assert.Equal(t, "...#.#...", got[3])
	assert.Equal(t, ".........", got[2])

	for i := 0; i < 5; i++ {
		require.NoError(t, e.Board().Step())
	}
	assert.Equal(t, []string{
		"#.......#",
		".#.#.#.#.",
		"..#...#..",
		"...#.#...",
		"....#....",
	}, rows(t, e.Board()))
}

func TestRule30(t *testing.T) {
	e := New(Config{Width: 7, Height: 3, Rule: 30})
	require.NoError(t, e.Reset(0))
	require.NoError(t, e.Board().Step())
	require.NoError(t, e.Board().Step())
	assert.Equal(t, []string{
		".##..#.",
		"..###..",
		"...#...",
	}, rows(t, e.Board()))
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{"rule": "30", "density": "0"})
	assert.Equal(t, uint8(30), c.Rule)
	assert.Equal(t, 0.0, c.Density)
	c = FromMap(map[string]string{"rule": "256"})
	assert.Equal(t, uint8(90), c.Rule)
}
