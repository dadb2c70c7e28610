package ui

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"mad-grid/internal/core"
	"mad-grid/pkg/board"
	pcore "mad-grid/pkg/core"
)

// Title returns the panel heading for a scenario.
func Title(s core.Scenario) string {
	if s == nil || s.Name() == "" {
		return "Board"
	}
	name := s.Name()
	return strings.ToUpper(name[:1]) + name[1:]
}

// PanelLines lists what the HUD shows below the title: the step counter and
// run status, the census of live states, run values and the scenario
// parameters.
func PanelLines(s core.Scenario) []string {
	b := s.Board()
	status := "running"
	if !b.Running() {
		status = "halted"
	}
	lines := []string{fmt.Sprintf("step %d (%s)", b.StepCount(), status), ""}

	census := b.Census()
	for _, k := range slices.Sorted(maps.Keys(census)) {
		if census[k] > 0 {
			lines = append(lines, fmt.Sprintf("%-10s %6d", k, census[k]))
		}
	}
	if values := b.Values(); len(values) > 0 {
		lines = append(lines, "")
		for _, k := range slices.Sorted(maps.Keys(values)) {
			lines = append(lines, fmt.Sprintf("%-10s %6g", k, values[k]))
		}
	}
	for _, g := range s.Parameters().Groups {
		lines = append(lines, "", g.Name)
		for _, p := range g.Params {
			lines = append(lines, fmt.Sprintf(" %-9s %6s", p.Key, p.Value))
		}
	}
	return lines
}

// LayerMask returns 1 for every cell occupied on layer and 0 elsewhere,
// row-major. An invalid layer yields nil.
func LayerMask(b *board.Board, layer int) []float32 {
	if layer < 0 || layer >= b.LayerCount() {
		return nil
	}
	w, h := b.Width(), b.Height()
	mask := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if a, err := b.Get(pcore.P(x, y), layer, false); err == nil && a.Valid() {
				mask[y*w+x] = 1
			}
		}
	}
	return mask
}
