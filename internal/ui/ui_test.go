package ui

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mad-grid/internal/sims/walkers"
	"mad-grid/pkg/board"
	pcore "mad-grid/pkg/core"
)

func quiet() board.Option {
	return board.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestTitle(t *testing.T) {
	w := walkers.New(walkers.DefaultConfig(), quiet())
	assert.Equal(t, "Walkers", Title(w))
	assert.Equal(t, "Board", Title(nil))
}

func TestPanelLines(t *testing.T) {
	w := walkers.New(walkers.Config{Width: 3, Height: 2, Laps: 1}, quiet())
	require.NoError(t, w.Reset(1))
	require.NoError(t, w.Board().Step())

	lines := PanelLines(w)
	assert.Equal(t, "step 1 (running)", lines[0])
	assert.Contains(t, lines, "Alive           2")
	assert.Contains(t, lines, "blocked         0")
	assert.Contains(t, lines, "World")
	assert.Contains(t, lines, " laps           1")

	require.NoError(t, w.Board().Step())
	require.NoError(t, w.Board().Step())
	assert.Equal(t, "step 3 (halted)", PanelLines(w)[0])
}

func TestLayerMask(t *testing.T) {
	b := board.New(3, 2, 2, quiet())
	_, err := b.Add(board.Placement{Pos: pcore.P(1, 0), Layer: 1, State: "Grass"}, false)
	require.NoError(t, err)
	_, err = b.Add(board.Placement{Pos: pcore.P(2, 1), Layer: 0, State: "Rock"}, false)
	require.NoError(t, err)

	assert.Equal(t, []float32{0, 1, 0, 0, 0, 0}, LayerMask(b, 1))
	assert.Equal(t, []float32{0, 0, 0, 0, 0, 1}, LayerMask(b, 0))
	assert.Nil(t, LayerMask(b, 2))
}
