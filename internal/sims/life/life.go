package life

import (
	"mad-grid/internal/core"
	"mad-grid/pkg/board"
	pcore "mad-grid/pkg/core"
)

// Config holds parameters for the Game of Life scenario.
type Config struct {
	Width   int
	Height  int
	Density float64
	Wrap    bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 64, Height: 64, Density: 0.5, Wrap: true}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	core.IntFrom(cfg, "w", &c.Width, true)
	core.IntFrom(cfg, "h", &c.Height, true)
	core.FloatFrom(cfg, "density", &c.Density)
	core.BoolFrom(cfg, "wrap", &c.Wrap)
	return c
}

// Life implements Conway's Game of Life with one agent per cell.
type Life struct {
	cfg   Config
	b     *board.Board
	cells cell
}

// New returns a Life scenario on a fresh single-layer board.
func New(cfg Config, opts ...board.Option) *Life {
	l := &Life{cfg: cfg, cells: cell{wrap: cfg.Wrap}}
	l.b = board.New(cfg.Width, cfg.Height, 1, opts...)
	return l
}

// Name returns the scenario identifier.
func (l *Life) Name() string { return "life" }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return core.Size{W: l.b.Width(), H: l.b.Height()} }

// Board exposes the underlying board.
func (l *Life) Board() *board.Board { return l.b }

// Reset fills every cell, each alive with probability Density.
func (l *Life) Reset(seed int64) error {
	rng := pcore.NewRNG(seed)
	var alive []pcore.Pos
	for y := 0; y < l.b.Height(); y++ {
		for x := 0; x < l.b.Width(); x++ {
			if rng.Chance(l.cfg.Density) {
				alive = append(alive, pcore.P(x, y))
			}
		}
	}
	return l.Seed(alive)
}

// Seed resets the board with exactly the given cells alive.
func (l *Life) Seed(alive []pcore.Pos) error {
	l.b.Reset()
	on := make(map[pcore.Pos]bool, len(alive))
	for _, p := range alive {
		on[p] = true
	}
	for y := 0; y < l.b.Height(); y++ {
		for x := 0; x < l.b.Width(); x++ {
			p := pcore.P(x, y)
			state := board.StateDead
			if on[p] {
				state = board.StateAlive
			}
			if _, err := l.b.Add(board.Placement{Pos: p, State: state, Behavior: l.cells}, false); err != nil {
				return err
			}
		}
	}
	return nil
}

// Parameters exposes the current configuration.
func (l *Life) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", l.cfg.Width),
				core.IntParam("h", "Height", l.cfg.Height),
				core.BoolParam("wrap", "Wrap edges", l.cfg.Wrap),
			},
		},
		{
			Name:   "Seeding",
			Params: []core.Parameter{core.FloatParam("density", "Initial density", l.cfg.Density)},
		},
	}}
}

// cell applies B3/S23 to the Moore neighbourhood.
type cell struct {
	wrap bool
}

func (c cell) Step(a board.Agent) error {
	ns, err := a.Neighbors(1, c.wrap, -1)
	if err != nil {
		return err
	}
	neighbors := 0
	for i, n := range ns {
		if i != 4 && n.State() == board.StateAlive {
			neighbors++
		}
	}
	alive := a.State() == board.StateAlive
	next := alive
	switch {
	case alive && (neighbors < 2 || neighbors > 3):
		next = false
	case !alive && neighbors == 3:
		next = true
	}
	if next != alive {
		if next {
			a.SetState(board.StateAlive)
		} else {
			a.SetState(board.StateDead)
		}
	}
	return nil
}

func init() {
	core.Register("life", func(cfg map[string]string) core.Scenario {
		return New(FromMap(cfg))
	})
}
