package board

import (
	"image/color"
	"maps"

	"mad-grid/pkg/core"
)

// States registered on every new board.
const (
	StateDead  = "Dead"
	StateAlive = "Alive"
	StateNone  = "None"
)

// AddColor registers a state with its display color. A new state starts with
// a census count of zero; re-registering keeps the current count.
func (b *Board) AddColor(name string, c color.RGBA) {
	name = core.CanonicalState(name)
	b.palette[name] = c
	if _, ok := b.census[name]; !ok {
		b.census[name] = 0
	}
}

// UpdateColor moves one census count from oldState to newState. An
// unregistered state is registered with a random color first. A count never
// drops below zero.
func (b *Board) UpdateColor(oldState, newState string) {
	oldState = core.CanonicalState(oldState)
	newState = core.CanonicalState(newState)
	b.ensureColor(oldState)
	b.ensureColor(newState)
	if b.census[oldState] > 0 {
		b.census[oldState]--
	}
	b.census[newState]++
}

// Color returns the color registered for a state.
func (b *Board) Color(name string) (color.RGBA, bool) {
	c, ok := b.palette[core.CanonicalState(name)]
	return c, ok
}

// Colors returns a copy of the palette.
func (b *Board) Colors() map[string]color.RGBA { return maps.Clone(b.palette) }

// Census returns a copy of the per-state agent counts.
func (b *Board) Census() map[string]int { return maps.Clone(b.census) }

// CensusOf returns the number of agents currently in state name.
func (b *Board) CensusOf(name string) int { return b.census[core.CanonicalState(name)] }

// RandomColor draws a color from the board's seeded generator.
func (b *Board) RandomColor() color.RGBA { return b.rng.Color() }

func (b *Board) ensureColor(state string) {
	if _, ok := b.palette[state]; ok {
		return
	}
	c := b.rng.Color()
	b.log.Warn("state missing from color map, registering random color",
		"state", state,
		"r", c.R, "g", c.G, "b", c.B)
	b.AddColor(state, c)
}
