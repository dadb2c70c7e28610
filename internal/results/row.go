// Package results records one row per finished sweep run.
package results

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"mad-grid/internal/core"
)

// Row is the outcome of a single run.
type Row struct {
	RunID   string
	Run     int
	Size    core.Size
	Steps   int
	Seconds float64
	// Data holds the parameter values the run was built with.
	Data   map[string]string
	Values map[string]float64
	States map[string]int
}

// Sink receives rows as runs finish. Implementations need not be safe for
// concurrent use; the sweep runner writes from a single goroutine.
type Sink interface {
	Write(r Row) error
	Close() error
}

var fixedColumns = []string{"run_id", "run", "size", "steps", "seconds"}

// Columns lists the flat column names for r: the fixed columns followed by
// data.*, values.* and state.* keys, each group sorted.
func (r Row) Columns() []string {
	cols := slices.Clone(fixedColumns)
	for _, k := range slices.Sorted(maps.Keys(r.Data)) {
		cols = append(cols, "data."+k)
	}
	for _, k := range slices.Sorted(maps.Keys(r.Values)) {
		cols = append(cols, "values."+k)
	}
	for _, k := range slices.Sorted(maps.Keys(r.States)) {
		cols = append(cols, "state."+k)
	}
	return cols
}

// UnionColumns lists the columns of every row merged, in Columns order.
func UnionColumns(rows []Row) []string {
	all := Row{Data: map[string]string{}, Values: map[string]float64{}, States: map[string]int{}}
	for _, r := range rows {
		for k := range r.Data {
			all.Data[k] = ""
		}
		for k := range r.Values {
			all.Values[k] = 0
		}
		for k := range r.States {
			all.States[k] = 0
		}
	}
	return all.Columns()
}

// Field returns the formatted value of a column, or "" when r has none.
func (r Row) Field(col string) string {
	switch col {
	case "run_id":
		return r.RunID
	case "run":
		return strconv.Itoa(r.Run)
	case "size":
		return strconv.Itoa(r.Size.W) + "x" + strconv.Itoa(r.Size.H)
	case "steps":
		return strconv.Itoa(r.Steps)
	case "seconds":
		return strconv.FormatFloat(r.Seconds, 'f', 6, 64)
	}
	if k, ok := strings.CutPrefix(col, "data."); ok {
		return r.Data[k]
	}
	if k, ok := strings.CutPrefix(col, "values."); ok {
		if v, ok := r.Values[k]; ok {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
		return ""
	}
	if k, ok := strings.CutPrefix(col, "state."); ok {
		if v, ok := r.States[k]; ok {
			return strconv.Itoa(v)
		}
	}
	return ""
}
