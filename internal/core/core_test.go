package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mad-grid/pkg/board"
)

type stubScenario struct{ b *board.Board }

func (s stubScenario) Name() string                  { return "stub" }
func (s stubScenario) Size() Size                    { return Size{W: 1, H: 1} }
func (s stubScenario) Board() *board.Board           { return s.b }
func (s stubScenario) Parameters() ParameterSnapshot { return ParameterSnapshot{} }

func (s stubScenario) Reset(int64) error {
	s.b.Reset()
	return nil
}

func TestRegistry(t *testing.T) {
	Register("", func(map[string]string) Scenario { return nil })
	Register("nil-factory", nil)
	Register("zz-stub", func(map[string]string) Scenario { return stubScenario{b: board.New(1, 1, 1)} })

	assert.NotContains(t, Scenarios(), "")
	assert.NotContains(t, Scenarios(), "nil-factory")
	assert.Contains(t, Names(), "zz-stub")

	s, err := New("zz-stub", nil)
	require.NoError(t, err)
	assert.Equal(t, "stub", s.Name())

	_, err = New("missing", nil)
	assert.ErrorContains(t, err, "unknown scenario")
}

func TestByteGrid(t *testing.T) {
	g := NewByteGrid(0, 3)
	assert.Equal(t, 1, g.W)
	g = NewByteGrid(4, 3)
	g.Set(3, 2, 7)
	assert.Equal(t, uint8(7), g.At(3, 2))
	assert.Equal(t, uint8(7), g.Cells()[11])
	g.Clear()
	assert.Equal(t, uint8(0), g.At(3, 2))
}

func TestFixedStep(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return clock }

	assert.Equal(t, 100*time.Millisecond, fs.Interval())
	assert.True(t, fs.ShouldStep(), "first tick is due immediately")
	assert.False(t, fs.ShouldStep())
	assert.Equal(t, 100*time.Millisecond, fs.Remaining())

	clock = clock.Add(40 * time.Millisecond)
	assert.False(t, fs.ShouldStep())
	assert.Equal(t, 60*time.Millisecond, fs.Remaining())

	clock = clock.Add(60 * time.Millisecond)
	assert.True(t, fs.ShouldStep())

	fs.SetTPS(0)
	assert.Equal(t, time.Second/60, fs.Interval())
}

func TestParameterSnapshotMap(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "World", Params: []Parameter{IntParam("w", "Width", 32), Int64Param("seed", "Seed", -4)}},
		{Name: "Rules", Params: []Parameter{FloatParam("p", "Chance", 0.125), BoolParam("wrap", "Wrap", true)}},
	}}
	assert.Equal(t, map[string]string{"w": "32", "seed": "-4", "p": "0.125", "wrap": "true"}, snap.Map())
}

func TestParseHelpers(t *testing.T) {
	cfg := map[string]string{"w": "12", "zero": "0", "neg": "-3", "bad": "x", "seed": "-9", "p": "0.5", "q": "-1", "wrap": "false"}

	n := 5
	IntFrom(cfg, "w", &n, true)
	assert.Equal(t, 12, n)
	IntFrom(cfg, "zero", &n, true)
	assert.Equal(t, 12, n)
	IntFrom(cfg, "zero", &n, false)
	assert.Equal(t, 0, n)
	IntFrom(cfg, "neg", &n, false)
	IntFrom(cfg, "bad", &n, false)
	IntFrom(cfg, "missing", &n, false)
	assert.Equal(t, 0, n)

	var seed int64
	Int64From(cfg, "seed", &seed)
	assert.Equal(t, int64(-9), seed)

	f := 1.0
	FloatFrom(cfg, "p", &f)
	assert.Equal(t, 0.5, f)
	FloatFrom(cfg, "q", &f)
	assert.Equal(t, 0.5, f)

	wrap := true
	BoolFrom(cfg, "wrap", &wrap)
	assert.False(t, wrap)
}
