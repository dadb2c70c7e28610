package results

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mad-grid/internal/core"
)

func sampleRow(run int) Row {
	return Row{
		RunID:   "run-" + string(rune('a'+run)),
		Run:     run,
		Size:    core.Size{W: 16, H: 8},
		Steps:   40 + run,
		Seconds: 0.5,
		Data:    map[string]string{"starve_ticks": "8", "grazers": "10"},
		Values:  map[string]float64{"grass": 12, "eaten": 3.5},
		States:  map[string]int{"Grass": 12, "Grazer": 4},
	}
}

func TestColumns(t *testing.T) {
	cols := sampleRow(0).Columns()
	assert.Equal(t, []string{
		"run_id", "run", "size", "steps", "seconds",
		"data.grazers", "data.starve_ticks",
		"values.eaten", "values.grass",
		"state.Grass", "state.Grazer",
	}, cols)
}

func TestField(t *testing.T) {
	r := sampleRow(1)
	assert.Equal(t, "16x8", r.Field("size"))
	assert.Equal(t, "41", r.Field("steps"))
	assert.Equal(t, "0.500000", r.Field("seconds"))
	assert.Equal(t, "8", r.Field("data.starve_ticks"))
	assert.Equal(t, "3.5", r.Field("values.eaten"))
	assert.Equal(t, "4", r.Field("state.Grazer"))
	assert.Equal(t, "", r.Field("state.Missing"))
	assert.Equal(t, "", r.Field("bogus"))
}

func TestCSVHeaderCoversEveryRow(t *testing.T) {
	var buf bytes.Buffer
	c := NewCSV(&buf)
	require.NoError(t, c.Write(sampleRow(0)))

	second := sampleRow(1)
	delete(second.States, "Grazer")
	second.States["Extra"] = 9
	second.Values["late"] = 2
	require.NoError(t, c.Write(second))
	assert.Empty(t, buf.String(), "rows are held until Close")
	require.NoError(t, c.Close())

	want := "run_id,run,size,steps,seconds,data.grazers,data.starve_ticks,values.eaten,values.grass,values.late,state.Extra,state.Grass,state.Grazer\n" +
		"run-a,0,16x8,40,0.500000,10,8,3.5,12,,,12,4\n" +
		"run-b,1,16x8,41,0.500000,10,8,3.5,12,2,9,12,\n"
	assert.Equal(t, want, buf.String())
}

func TestUnionColumns(t *testing.T) {
	a := Row{States: map[string]int{"B": 1}}
	b := Row{States: map[string]int{"A": 1}, Data: map[string]string{"k": "v"}}
	assert.Equal(t, []string{"run_id", "run", "size", "steps", "seconds", "data.k", "state.A", "state.B"}, UnionColumns([]Row{a, b}))
}

func TestCSVCloseWithoutRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSV(&buf).Close())
	assert.Empty(t, buf.String())
}

func TestCreateCSVRoundTrip(t *testing.T) {
	for _, name := range []string{"out.csv", "out.csv.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			c, err := CreateCSV(path)
			require.NoError(t, err)
			require.NoError(t, c.Write(sampleRow(0)))
			require.NoError(t, c.Write(sampleRow(2)))
			require.NoError(t, c.Close())

			recs, err := ReadCSV(path)
			require.NoError(t, err)
			require.Len(t, recs, 3)
			assert.Equal(t, "run_id", recs[0][0])
			assert.Equal(t, "run-c", recs[2][0])
			assert.Equal(t, "42", recs[2][3])
		})
	}
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := OpenSQLite(path, "sweep-1")
	require.NoError(t, err)

	require.NoError(t, s.Write(sampleRow(0)))
	require.NoError(t, s.Write(sampleRow(1)))
	assert.Error(t, s.Write(sampleRow(1)), "duplicate run id")

	n, err := s.CountRuns()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	v, ok, err := s.Metric("run-b", "state", "Grazer")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "4", v)

	v, ok, err = s.Metric("run-a", "values", "eaten")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "3.5", v)

	_, ok, err = s.Metric("run-a", "data", "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, s.Close())

	// Reopening keeps earlier rows.
	s, err = OpenSQLite(path, "sweep-1")
	require.NoError(t, err)
	defer s.Close()
	n, err = s.CountRuns()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

type memSink struct {
	rows   []Row
	closed bool
}

func (m *memSink) Write(r Row) error {
	m.rows = append(m.rows, r)
	return nil
}

func (m *memSink) Close() error {
	m.closed = true
	return nil
}

func TestMulti(t *testing.T) {
	a, b := &memSink{}, &memSink{}
	m := Multi{a, b}
	require.NoError(t, m.Write(sampleRow(0)))
	require.NoError(t, m.Close())
	assert.Len(t, a.rows, 1)
	assert.Len(t, b.rows, 1)
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}
