package ecology

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mad-grid/pkg/board"
	pcore "mad-grid/pkg/core"
)

func quiet() board.Option {
	return board.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func bare(w, h, grazers, starve int) Config {
	return Config{Width: w, Height: h, Seed: 5, Params: Params{Grazers: grazers, StarveTicks: starve}}
}

func TestCollisionRules(t *testing.T) {
	w := New(4, 4, quiet())
	rules := w.Board().CollisionMap()
	got, err := rules.Get(LayerGrazer, LayerRock)
	require.NoError(t, err)
	assert.Equal(t, pcore.CollisionSolid, got)
	got, err = rules.Get(LayerGrazer, LayerGrass)
	require.NoError(t, err)
	assert.Equal(t, pcore.CollisionTrigger, got)
	got, err = rules.Get(LayerRock, LayerGrazer)
	require.NoError(t, err)
	assert.Equal(t, pcore.CollisionNone, got)
	assert.Equal(t, []string{
		board.StageUpdateAgents, board.StageUpdateAgentsEnd, board.StageScheduledDelete, "regrow", "observe",
	}, w.Board().StageNames())
}

func TestUndersizedCollisionMapPanics(t *testing.T) {
	assert.Panics(t, func() { New(4, 4, quiet(), board.WithCollisions(&pcore.CollisionMap{})) })
	assert.Panics(t, func() { New(4, 4, quiet(), board.WithCollisions(pcore.NewCollisionMap(2))) })
	assert.NotPanics(t, func() { New(4, 4, quiet(), board.WithCollisions(pcore.NewCollisionMap(3))) })
}

func TestResetDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 32, 24
	cfg.Params.RockChance = 0.2
	cfg.Params.GrassPatchCount = 6
	w := NewWithConfig(cfg, quiet())

	require.NoError(t, w.Reset(0))
	first := w.Board().Census()
	require.NoError(t, w.Reset(0))
	assert.Equal(t, first, w.Board().Census())
	assert.Positive(t, first[StateRock])
	assert.Positive(t, first[StateGrass])
	assert.Equal(t, cfg.Params.Grazers, first[StateGrazer])
}

func TestGrassNeverOnRock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 20, 20
	cfg.Params.RockChance = 0.3
	cfg.Params.GrassPatchCount = 20
	w := NewWithConfig(cfg, quiet())
	require.NoError(t, w.Reset(9))
	for i := 0; i < 5; i++ {
		require.NoError(t, w.Board().Step())
	}
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			p := pcore.P(x, y)
			if w.occupied(p, LayerRock) {
				assert.False(t, w.occupied(p, LayerGrass), "grass on rock at %s", p)
				assert.False(t, w.occupied(p, LayerGrazer), "grazer on rock at %s", p)
			}
		}
	}
}

func TestGrazerEatsAndStarves(t *testing.T) {
	w := NewWithConfig(bare(1, 1, 1, 3), quiet())
	require.NoError(t, w.Reset(1))
	b := w.Board()
	_, err := b.Add(board.Placement{Pos: pcore.P(0, 0), Layer: LayerGrass, State: StateGrass}, false)
	require.NoError(t, err)

	require.NoError(t, b.Step())
	assert.Equal(t, 0, b.CensusOf(StateGrass))
	eaten, _ := b.Value("eaten")
	assert.Equal(t, 1.0, eaten)
	assert.True(t, b.Running())

	for i := 0; i < 2; i++ {
		require.NoError(t, b.Step())
		assert.True(t, b.Running())
	}
	require.NoError(t, b.Step())
	assert.False(t, b.Running())
	starved, _ := b.Value("starved")
	assert.Equal(t, 1.0, starved)
	assert.Equal(t, 0, b.CensusOf(StateHungry))
	assert.Empty(t, b.Agents())
}

func TestRockBlocksGrazer(t *testing.T) {
	w := NewWithConfig(bare(2, 1, 0, 100), quiet())
	require.NoError(t, w.Reset(1))
	b := w.Board()
	_, err := b.Add(board.Placement{Pos: pcore.P(1, 0), Layer: LayerRock, State: StateRock}, false)
	require.NoError(t, err)
	g, err := b.Add(board.Placement{Pos: pcore.P(0, 0), Layer: LayerGrazer, State: StateGrazer, Behavior: &grazer{w: w}}, false)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, b.Step())
		assert.Equal(t, pcore.P(0, 0), g.Pos())
	}
}

func TestRegrowSpreadsFromNeighbors(t *testing.T) {
	cfg := bare(3, 3, 0, 10)
	cfg.Params.GrassSpreadChance = 1
	cfg.Params.GrassNeighborThreshold = 1
	w := NewWithConfig(cfg, quiet())
	require.NoError(t, w.Reset(1))
	b := w.Board()
	_, err := b.Add(board.Placement{Pos: pcore.P(1, 1), Layer: LayerGrass, State: StateGrass}, false)
	require.NoError(t, err)
	_, err = b.Add(board.Placement{Pos: pcore.P(0, 0), Layer: LayerRock, State: StateRock}, false)
	require.NoError(t, err)

	require.NoError(t, w.regrow(b))
	assert.Equal(t, 8, b.CensusOf(StateGrass))
	assert.False(t, w.occupied(pcore.P(0, 0), LayerGrass))
}

func TestHaltsWithoutGrazers(t *testing.T) {
	w := NewWithConfig(bare(4, 4, 0, 10), quiet())
	require.NoError(t, w.Reset(1))
	assert.False(t, w.Board().Running())
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{
		"w":                      "40",
		"seed":                   "-7",
		"grass_patch_radius_min": "6",
		"grass_patch_radius_max": "3",
		"grazers":                "0",
		"starve_ticks":           "0",
	})
	assert.Equal(t, 40, c.Width)
	assert.Equal(t, int64(-7), c.Seed)
	assert.Equal(t, 6, c.Params.GrassPatchRadiusMax)
	assert.Equal(t, 0, c.Params.Grazers)
	assert.Equal(t, DefaultConfig().Params.StarveTicks, c.Params.StarveTicks)

	snap := NewWithConfig(c).Parameters().Map()
	assert.Equal(t, "40", snap["w"])
	assert.Equal(t, "-7", snap["seed"])
}
