package board

import "maps"

// SetValue stores a named run value, for example a tunable a rule reads each
// tick or a metric a custom stage records.
func (b *Board) SetValue(key string, v float64) { b.values[key] = v }

// Value returns a named run value.
func (b *Board) Value(key string) (float64, bool) {
	v, ok := b.values[key]
	return v, ok
}

// Values returns a copy of every run value.
func (b *Board) Values() map[string]float64 { return maps.Clone(b.values) }

// Halt marks the run as finished. Stepping still works; drivers that loop
// while Running stop.
func (b *Board) Halt() { b.halted = true }

// Running reports whether Halt has been called since the last Reset.
func (b *Board) Running() bool { return !b.halted }
