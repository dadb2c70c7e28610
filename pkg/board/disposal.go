package board

import "mad-grid/pkg/core"

// Released is what remains of an agent once the board lets go of it.
type Released struct {
	ID       ID
	Pos      core.Pos
	Layer    int
	State    string
	Behavior Behavior
}

func (r *record) released() Released {
	return Released{ID: r.id, Pos: r.pos, Layer: r.layer, State: r.state, Behavior: r.behavior}
}

// Disposer takes ownership of agents purged from a board.
type Disposer interface {
	Dispose(r Released)
}

// DisposerFunc adapts a function to the Disposer interface.
type DisposerFunc func(Released)

// Dispose calls f(r).
func (f DisposerFunc) Dispose(r Released) { f(r) }

// DropDisposer discards released agents.
type DropDisposer struct{}

// Dispose does nothing.
func (DropDisposer) Dispose(Released) {}

// Registry is a caller-owned Disposer that keeps released agents until drained.
type Registry struct {
	released []Released
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// Dispose records r.
func (g *Registry) Dispose(r Released) { g.released = append(g.released, r) }

// Len returns the number of agents held.
func (g *Registry) Len() int { return len(g.released) }

// Drain returns the held agents in release order and empties the registry.
func (g *Registry) Drain() []Released {
	out := g.released
	g.released = nil
	return out
}
