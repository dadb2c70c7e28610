package briansbrain

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mad-grid/pkg/board"
	pcore "mad-grid/pkg/core"
)

func stateAt(t *testing.T, b *board.Board, x, y int) string {
	t.Helper()
	a, err := b.Get(pcore.P(x, y), 0, false)
	require.NoError(t, err)
	return a.State()
}

func TestCycle(t *testing.T) {
	br := New(Config{Width: 6, Height: 6, Density: 0}, board.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, br.Reset(1))
	b := br.Board()
	assert.Equal(t, 36, b.CensusOf(board.StateDead))

	// Two adjacent firing cells ignite the cells that touch both.
	for _, p := range []pcore.Pos{pcore.P(2, 2), pcore.P(3, 2)} {
		a, err := b.Get(p, 0, false)
		require.NoError(t, err)
		a.SetState(StateOn)
		require.NoError(t, a.Commit())
	}
	require.Equal(t, 2, b.CensusOf(StateOn))

	require.NoError(t, b.Step())
	assert.Equal(t, StateDying, stateAt(t, b, 2, 2))
	assert.Equal(t, StateDying, stateAt(t, b, 3, 2))
	for _, p := range [][2]int{{2, 1}, {3, 1}, {2, 3}, {3, 3}} {
		assert.Equal(t, StateOn, stateAt(t, b, p[0], p[1]), "cell %v", p)
	}
	assert.Equal(t, 4, b.CensusOf(StateOn))
	assert.Equal(t, 2, b.CensusOf(StateDying))

	require.NoError(t, b.Step())
	assert.Equal(t, board.StateDead, stateAt(t, b, 2, 2))
	assert.Equal(t, StateDying, stateAt(t, b, 2, 1))
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{"w": "12", "density": "0.3"})
	assert.Equal(t, 12, c.Width)
	assert.Equal(t, 128, c.Height)
	assert.Equal(t, 0.3, c.Density)
}
