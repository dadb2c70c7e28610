package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mad-grid/internal/core"
	pcore "mad-grid/pkg/core"
)

func TestLoad(t *testing.T) {
	f, err := Load("testdata/ecology.yaml")
	require.NoError(t, err)
	assert.Equal(t, "ecology", f.Scenario)
	assert.Equal(t, int64(7), f.Seed)
	assert.Equal(t, 120, f.Steps)
	assert.Equal(t, map[string]string{"w": "48", "h": "32", "grazers": "25", "rock_chance": "0.1"}, f.Params)
	require.Len(t, f.Collisions, 1)
	assert.Equal(t, CollisionRule{Src: 2, Dst: 1, Type: "solid"}, f.Collisions[0])

	require.NotNil(t, f.Sweep)
	assert.Equal(t, []string{"16x16", "32x24"}, f.Sweep.Sizes)
	assert.Equal(t, 2, f.Sweep.Repetitions)
	assert.Equal(t, 200, f.Sweep.MaxSteps)
	assert.Equal(t, []string{"8", "16", "32"}, f.Sweep.Params["starve_ticks"])
}

func TestLoadRejectsInvalidFiles(t *testing.T) {
	_, err := Load("testdata/bad_size.yaml")
	assert.ErrorContains(t, err, "invalid run file")

	_, err = Load("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"missing scenario": "steps: 10\n",
		"negative steps":   "scenario: life\nsteps: -1\n",
		"unknown key":      "scenario: life\ncolour: red\n",
		"bad collision":    "scenario: life\ncollisions: [{src: 0, dst: 1, type: sticky}]\n",
		"nested param":     "scenario: life\nparams: {w: [1, 2]}\n",
		"empty sweep list": "scenario: life\nsweep: {params: {w: []}}\n",
		"not yaml":         "scenario: [\n",
		"empty":            "",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestApply(t *testing.T) {
	f := File{Collisions: []CollisionRule{{Src: 1, Dst: 0, Type: "trigger"}}}
	m := pcore.NewCollisionMap(2)
	require.NoError(t, f.Apply(m))
	got, err := m.Get(1, 0)
	require.NoError(t, err)
	assert.Equal(t, pcore.CollisionTrigger, got)

	f.Collisions = []CollisionRule{{Src: 5, Dst: 0, Type: "solid"}}
	assert.True(t, pcore.IsOutOfRange(f.Apply(m)))

	f.Collisions = []CollisionRule{{Src: 0, Dst: 0, Type: "sticky"}}
	assert.True(t, pcore.IsInvalidArgument(f.Apply(m)))
}

func TestParseSize(t *testing.T) {
	s, err := ParseSize(" 32x16 ")
	require.NoError(t, err)
	assert.Equal(t, core.Size{W: 32, H: 16}, s)
	for _, bad := range []string{"32", "0x4", "4x", "ax4"} {
		_, err := ParseSize(bad)
		assert.True(t, pcore.IsInvalidArgument(err), bad)
	}
}

func TestParseOverrides(t *testing.T) {
	got, err := ParseOverrides([]string{"w=10", " density = 0.3", "empty="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"w": "10", "density": "0.3", "empty": ""}, got)

	_, err = ParseOverrides([]string{"novalue"})
	assert.Error(t, err)
	_, err = ParseOverrides([]string{"=3"})
	assert.Error(t, err)
}
