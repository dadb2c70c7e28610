package board

import (
	"fmt"
	"slices"
	"sync/atomic"

	"mad-grid/pkg/core"
)

// ID identifies an agent. IDs are unique within the process and never reused.
type ID int64

var lastID atomic.Int64

func nextID() ID { return ID(lastID.Add(1)) }

// Behavior is the steppable capability. Placements without a Behavior are
// static: they occupy the grid but are never stepped.
type Behavior interface {
	// Step is the decision phase. Implementations read the board and stage
	// changes through a.SetPos and a.SetState.
	Step(a Agent) error
}

// BehaviorFunc adapts a plain function to the Behavior interface.
type BehaviorFunc func(a Agent) error

// Step calls f(a).
func (f BehaviorFunc) Step(a Agent) error { return f(a) }

// Committer replaces the default commit phase for a Behavior. Implementations
// may call a.Commit to run the default.
type Committer interface {
	StepEnd(a Agent) error
}

// Placement describes an agent to be added to the board.
type Placement struct {
	Pos      core.Pos
	Layer    int
	State    string
	Behavior Behavior
}

type record struct {
	id        ID
	pos       core.Pos
	layer     int
	state     string
	behavior  Behavior
	steppable bool

	posNext   *core.Pos
	stateNext *string
	onUpdate  []func(Agent)
}

// Agent is a non-owning handle to an agent on a board. The zero value refers
// to no agent. Handles are comparable and cheap to copy.
type Agent struct {
	b  *Board
	id ID
}

func (a Agent) rec() *record {
	if a.b == nil || a.id == 0 {
		return nil
	}
	return a.b.agents[a.id]
}

// Valid reports whether the handle resolves to an agent still registered on
// its board. Agents pending deletion remain valid until they are purged.
func (a Agent) Valid() bool { return a.rec() != nil }

// ID returns the agent identifier, or 0 for the zero handle.
func (a Agent) ID() ID { return a.id }

// Board returns the board the handle belongs to.
func (a Agent) Board() *Board { return a.b }

// Pos returns the committed position.
func (a Agent) Pos() core.Pos {
	if r := a.rec(); r != nil {
		return r.pos
	}
	return core.Pos{}
}

// Layer returns the layer the agent occupies.
func (a Agent) Layer() int {
	if r := a.rec(); r != nil {
		return r.layer
	}
	return 0
}

// State returns the committed state.
func (a Agent) State() string {
	if r := a.rec(); r != nil {
		return r.state
	}
	return ""
}

// Behavior returns the behavior supplied at placement, nil for static agents.
func (a Agent) Behavior() Behavior {
	if r := a.rec(); r != nil {
		return r.behavior
	}
	return nil
}

// Steppable reports whether the agent is in the board's active list.
func (a Agent) Steppable() bool {
	r := a.rec()
	return r != nil && r.steppable
}

// Pending reports whether the agent is scheduled for deletion.
func (a Agent) Pending() bool {
	if !a.Valid() {
		return false
	}
	return slices.Contains(a.b.pending, a.id)
}

// Kill schedules the agent for deletion at the next scheduled_delete stage.
// Killing an agent twice is a no-op.
func (a Agent) Kill() {
	if a.b != nil {
		a.b.Remove(a)
	}
}

// CheckCollisions reports whether any layer at search collides with this
// agent's layer using type t. The agent's own layer counts as solid when
// search is a cell other than the one it stands on and that cell is occupied.
func (a Agent) CheckCollisions(t core.CollisionType, search core.Pos) (bool, error) {
	r := a.rec()
	if r == nil {
		return false, nil
	}
	includeSelf := search != r.pos
	hits, err := a.b.CollisionsAt(search, r.layer, includeSelf)
	if err != nil {
		return false, err
	}
	for _, c := range hits {
		if c.Type == t {
			return true, nil
		}
	}
	return false, nil
}

// SetPos stages a move to p. It is applied during the commit phase.
func (a Agent) SetPos(p core.Pos) {
	if r := a.rec(); r != nil {
		r.posNext = &p
	}
}

// SetState stages a state change. Unknown states are registered in the board
// palette with a random color.
func (a Agent) SetState(state string) {
	r := a.rec()
	if r == nil {
		return
	}
	state = core.CanonicalState(state)
	a.b.ensureColor(state)
	r.stateNext = &state
}

// StagedPos returns the position staged for the current tick, if any.
func (a Agent) StagedPos() (core.Pos, bool) {
	if r := a.rec(); r != nil && r.posNext != nil {
		return *r.posNext, true
	}
	return core.Pos{}, false
}

// StagedState returns the state staged for the current tick, if any.
func (a Agent) StagedState() (string, bool) {
	if r := a.rec(); r != nil && r.stateNext != nil {
		return *r.stateNext, true
	}
	return "", false
}

// OnUpdate registers fn to run after every commit that changed the agent.
func (a Agent) OnUpdate(fn func(Agent)) {
	if r := a.rec(); r != nil && fn != nil {
		r.onUpdate = append(r.onUpdate, fn)
	}
}

// ChangeLayer moves the agent to another layer, relocating its grid slot.
func (a Agent) ChangeLayer(layer int) error {
	if a.b == nil {
		return nil
	}
	return a.b.MoveLayer(a, layer)
}

// Commit applies staged changes. A staged move into a cell with a solid
// collision is dropped with a warning; the position stays unchanged. A staged
// move off the board returns an error.
func (a Agent) Commit() error {
	r := a.rec()
	if r == nil {
		return nil
	}
	b := a.b
	updated := false

	if r.posNext != nil {
		next := *r.posNext
		r.posNext = nil

		blocked, err := a.CheckCollisions(core.CollisionSolid, next)
		if err != nil {
			return fmt.Errorf("agent %d move %s -> %s: %w", r.id, r.pos, next, err)
		}
		if blocked {
			b.log.Warn("move blocked by solid collision",
				"agent", r.id,
				"from", r.pos.String(),
				"to", next.String())
		} else {
			b.Move(a, r.pos, next)
			updated = true
		}
	}

	if r.stateNext != nil {
		next := *r.stateNext
		r.stateNext = nil
		b.UpdateColor(r.state, next)
		r.state = next
		updated = true
	}

	if updated {
		for _, fn := range slices.Clone(r.onUpdate) {
			fn(a)
		}
	}
	return nil
}

// Neighbors returns the (2*radius+1)^2 cells around the agent, scanning rows
// from y+radius down to y-radius and each row from x-radius to x+radius. The
// agent itself sits at the center. Empty or off-board cells are zero handles.
// A layer of -1 selects the agent's own layer.
func (a Agent) Neighbors(radius int, wrap bool, layer int) ([]Agent, error) {
	r := a.rec()
	if r == nil || radius < 0 {
		return nil, nil
	}
	if layer == -1 {
		layer = r.layer
	}
	side := 2*radius + 1
	out := make([]Agent, 0, side*side)
	for y := r.pos.Y + radius; y >= r.pos.Y-radius; y-- {
		for x := r.pos.X - radius; x <= r.pos.X+radius; x++ {
			n, err := a.b.Get(core.P(x, y), layer, wrap)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
	}
	return out, nil
}

func (a Agent) String() string {
	r := a.rec()
	if r == nil {
		return fmt.Sprintf("Agent(id: %d, released)", a.id)
	}
	return fmt.Sprintf("Agent(id: %d, pos: %s, layer: %d, state: %s)", r.id, r.pos, r.layer, r.state)
}

// StepError wraps a failure raised by a single agent's Step.
type StepError struct {
	AgentID ID
	Err     error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("agent %d step: %v", e.AgentID, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
