package board

import (
	"fmt"
	"image/color"
	"log/slog"
	"maps"
	"slices"
	"time"

	"mad-grid/pkg/core"
)

// Board is a width*height grid with independent occupancy layers.
type Board struct {
	width, height, layers int

	cells   [][]ID
	agents  map[ID]*record
	active  []ID
	pending []ID

	collisions *core.CollisionMap

	palette map[string]color.RGBA
	census  map[string]int

	stages   []Stage
	onAdd    []func(Agent)
	onDelete []func(Agent)
	onReset  []func(*Board)

	disposer Disposer
	rng      *core.RNG
	log      *slog.Logger

	stepCount int
	values    map[string]float64
	halted    bool
}

// Option configures a Board at construction time.
type Option func(*Board)

// WithSeed seeds the generator used for random palette colors.
func WithSeed(seed int64) Option {
	return func(b *Board) { b.rng = core.NewRNG(seed) }
}

// WithLogger sets the logger used for warnings and step diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.log = l
		}
	}
}

// WithDisposer selects what happens to agents once they are purged.
// The default drops them.
func WithDisposer(d Disposer) Option {
	return func(b *Board) {
		if d != nil {
			b.disposer = d
		}
	}
}

// WithCollisions installs a collision map instead of an empty one sized to
// the layer count.
func WithCollisions(m *core.CollisionMap) Option {
	return func(b *Board) {
		if m != nil {
			b.collisions = m
		}
	}
}

// New allocates a board. Non-positive dimensions are clamped to 1.
func New(width, height, layers int, opts ...Option) *Board {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	if layers <= 0 {
		layers = 1
	}
	b := &Board{
		width:      width,
		height:     height,
		layers:     layers,
		cells:      make([][]ID, layers),
		agents:     make(map[ID]*record),
		collisions: core.NewCollisionMap(layers),
		palette:    make(map[string]color.RGBA),
		census:     make(map[string]int),
		disposer:   DropDisposer{},
		rng:        core.NewRNG(1),
		log:        slog.Default(),
		values:     make(map[string]float64),
	}
	for i := range b.cells {
		b.cells[i] = make([]ID, width*height)
	}
	b.AddColor(StateDead, color.RGBA{R: 100, G: 100, B: 100, A: 255})
	b.AddColor(StateAlive, color.RGBA{R: 150, G: 255, B: 150, A: 255})
	b.AddColor(StateNone, color.RGBA{A: 255})

	b.stages = []Stage{
		{Name: StageUpdateAgents, Run: UpdateAgents},
		{Name: StageUpdateAgentsEnd, Run: UpdateAgentsEnd},
		{Name: StageScheduledDelete, Run: ScheduledDelete},
	}

	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// LayerCount returns the number of layers.
func (b *Board) LayerCount() int { return b.layers }

// StepCount returns the number of completed ticks since the last reset.
func (b *Board) StepCount() int { return b.stepCount }

// Len returns the number of registered agents, static ones included.
func (b *Board) Len() int { return len(b.agents) }

// CollisionMap returns the layer collision rules. The map may be edited in place.
func (b *Board) CollisionMap() *core.CollisionMap { return b.collisions }

// SetCollisionMap replaces the layer collision rules. A nil map disables
// collision rules entirely.
func (b *Board) SetCollisionMap(m *core.CollisionMap) {
	if m == nil {
		m = &core.CollisionMap{}
	}
	b.collisions = m
}

// Agents returns handles for the steppable agents in stepping order.
func (b *Board) Agents() []Agent {
	out := make([]Agent, 0, len(b.active))
	for _, id := range b.active {
		out = append(out, Agent{b: b, id: id})
	}
	return out
}

// Get returns the agent at pos on layer. An off-board pos yields the zero
// handle unless wrap is set, in which case the coordinates wrap toroidally.
// An invalid layer is an error.
func (b *Board) Get(pos core.Pos, layer int, wrap bool) (Agent, error) {
	if layer < 0 || layer >= b.layers {
		return Agent{}, b.rangeErr("get", nil, layer)
	}
	if !pos.In(b.width, b.height) {
		if !wrap {
			return Agent{}, nil
		}
		pos = pos.Wrap(b.width, b.height)
	}
	id := b.cells[layer][pos.ToIndex(b.width)]
	if id == 0 {
		return Agent{}, nil
	}
	return Agent{b: b, id: id}, nil
}

// Add places a new agent. Placing onto an occupied cell fails with
// ErrInvalidArgument unless allowOverriding is set, in which case the previous
// occupant is scheduled for deletion and the new agent takes the cell.
func (b *Board) Add(p Placement, allowOverriding bool) (Agent, error) {
	if p.Layer < 0 || p.Layer >= b.layers {
		return Agent{}, b.rangeErr("add", &p.Pos, p.Layer)
	}
	if !p.Pos.In(b.width, b.height) {
		return Agent{}, b.rangeErr("add", &p.Pos, p.Layer)
	}
	idx := p.Pos.ToIndex(b.width)
	if prev := b.cells[p.Layer][idx]; prev != 0 {
		if !allowOverriding {
			pos := p.Pos
			return Agent{}, &core.BoardError{
				Op:    "add",
				Code:  core.CodeOccupied,
				Pos:   &pos,
				Layer: p.Layer,
				Err:   fmt.Errorf("%w: cell already occupied by agent %d", core.ErrInvalidArgument, prev),
			}
		}
		b.Remove(Agent{b: b, id: prev})
	}

	state := core.CanonicalState(p.State)
	b.ensureColor(state)

	r := &record{
		id:        nextID(),
		pos:       p.Pos,
		layer:     p.Layer,
		state:     state,
		behavior:  p.Behavior,
		steppable: p.Behavior != nil,
	}
	b.agents[r.id] = r
	if r.steppable {
		b.active = append(b.active, r.id)
	}
	b.cells[p.Layer][idx] = r.id
	b.census[state]++

	a := Agent{b: b, id: r.id}
	for _, fn := range slices.Clone(b.onAdd) {
		fn(a)
	}
	return a, nil
}

// Move relocates a on its layer from one cell to another without checking
// bounds or collisions; callers validate first. The previous cell is cleared
// only if it still holds a.
func (b *Board) Move(a Agent, from, to core.Pos) {
	r := a.rec()
	if r == nil || a.b != b {
		return
	}
	cells := b.cells[r.layer]
	if fi := from.ToIndex(b.width); cells[fi] == r.id {
		cells[fi] = 0
	}
	cells[to.ToIndex(b.width)] = r.id
	r.pos = to
}

// MoveLayer relocates a's grid slot to another layer and updates its layer.
// A destination slot held by another agent fails with ErrInvalidArgument and
// leaves both agents in place.
func (b *Board) MoveLayer(a Agent, layer int) error {
	r := a.rec()
	if r == nil || a.b != b {
		return nil
	}
	if layer < 0 || layer >= b.layers {
		return b.rangeErr("move layer", &r.pos, layer)
	}
	idx := r.pos.ToIndex(b.width)
	if other := b.cells[layer][idx]; other != 0 && other != r.id {
		pos := r.pos
		return &core.BoardError{
			Op:    "move layer",
			Code:  core.CodeOccupied,
			Pos:   &pos,
			Layer: layer,
			Err:   fmt.Errorf("%w: cell already occupied by agent %d", core.ErrInvalidArgument, other),
		}
	}
	if b.cells[r.layer][idx] == r.id {
		b.cells[r.layer][idx] = 0
	}
	b.cells[layer][idx] = r.id
	r.layer = layer
	return nil
}

// Remove schedules a for deletion. The agent stays on the grid until the
// scheduled_delete stage runs. Removing a pending agent again is a no-op.
func (b *Board) Remove(a Agent) {
	if a.b != b || !a.Valid() {
		return
	}
	for _, id := range b.pending {
		if id == a.id {
			return
		}
	}
	b.pending = append(b.pending, a.id)
}

// Collision is the outcome of a collision query on one layer.
type Collision struct {
	Type  core.CollisionType
	Agent Agent
}

// CollisionsAt reports, for every layer, how an agent acting from layer would
// collide at pos. The acting layer itself is solid when includeSelf is set and
// the cell is occupied; it never consults the rule table.
func (b *Board) CollisionsAt(pos core.Pos, layer int, includeSelf bool) (map[int]Collision, error) {
	if !pos.In(b.width, b.height) {
		return nil, b.rangeErr("collisions", &pos, layer)
	}
	idx := pos.ToIndex(b.width)
	out := make(map[int]Collision, b.layers)
	for l := 0; l < b.layers; l++ {
		id := b.cells[l][idx]
		if l == layer {
			if includeSelf && id != 0 {
				out[l] = Collision{Type: core.CollisionSolid, Agent: Agent{b: b, id: id}}
			} else {
				out[l] = Collision{}
			}
			continue
		}
		if id == 0 {
			out[l] = Collision{}
			continue
		}
		t, err := b.collisions.Get(layer, l)
		if err != nil {
			return nil, err
		}
		out[l] = Collision{Type: t, Agent: Agent{b: b, id: id}}
	}
	return out, nil
}

// Reset empties the board: grid, active list, pending deletions and census
// counts. Registered agents are handed to the disposer without on_delete
// hooks. Collision rules, palette colors, stages and hooks are kept. The
// on_reset hooks run last.
func (b *Board) Reset() {
	for _, layer := range b.cells {
		clear(layer)
	}
	b.stepCount = 0
	b.active = b.active[:0]
	b.pending = b.pending[:0]
	for k := range b.census {
		b.census[k] = 0
	}
	ids := slices.Sorted(maps.Keys(b.agents))
	released := b.agents
	b.agents = make(map[ID]*record)
	for _, id := range ids {
		b.disposer.Dispose(released[id].released())
	}
	b.halted = false

	for _, fn := range slices.Clone(b.onReset) {
		fn(b)
	}
}

// Step runs every stage in order and then advances the step counter. The
// first stage error aborts the tick and is returned; the counter is left as is.
func (b *Board) Step() error {
	start := time.Now()
	for _, st := range slices.Clone(b.stages) {
		t0 := time.Now()
		if err := st.Run(b); err != nil {
			return fmt.Errorf("step %d: stage %s: %w", b.stepCount, st.Name, err)
		}
		b.log.Debug("stage done", "stage", st.Name, "step", b.stepCount, "took", time.Since(t0))
	}
	b.stepCount++
	b.log.Debug("step done", "step", b.stepCount, "agents", len(b.active), "took", time.Since(start))
	return nil
}

func (b *Board) rangeErr(op string, pos *core.Pos, layer int) error {
	var p *core.Pos
	if pos != nil {
		cp := *pos
		p = &cp
	}
	return &core.BoardError{Op: op, Code: core.CodeOutOfRange, Pos: p, Layer: layer, Err: core.ErrOutOfRange}
}
