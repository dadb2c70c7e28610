package elementary

import (
	"mad-grid/internal/core"
	"mad-grid/pkg/board"
	pcore "mad-grid/pkg/core"
)

// Config holds parameters for the elementary cellular automaton.
type Config struct {
	Width  int
	Height int
	Rule   uint8
	// Density is the chance a seed-row cell starts alive. Zero seeds a single
	// cell in the middle of the row.
	Density float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 64, Height: 64, Rule: 90, Density: 0.1}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	core.IntFrom(cfg, "w", &c.Width, true)
	core.IntFrom(cfg, "h", &c.Height, true)
	rule := -1
	core.IntFrom(cfg, "rule", &rule, false)
	if rule >= 0 && rule <= 255 {
		c.Rule = uint8(rule)
	}
	core.FloatFrom(cfg, "density", &c.Density)
	return c
}

// Elementary projects a one-dimensional Wolfram code onto the board. The last
// row is the seed; every other row applies the rule to the three cells in the
// row above it, so generation k settles on row Height-1-k after k ticks.
type Elementary struct {
	cfg Config
	b   *board.Board
}

// New creates an automaton with the given configuration.
func New(cfg Config, opts ...board.Option) *Elementary {
	return &Elementary{cfg: cfg, b: board.New(cfg.Width, cfg.Height, 1, opts...)}
}

// Name returns the scenario identifier.
func (e *Elementary) Name() string { return "elementary" }

// Size returns the grid dimensions.
func (e *Elementary) Size() core.Size { return core.Size{W: e.b.Width(), H: e.b.Height()} }

// Board exposes the underlying board.
func (e *Elementary) Board() *board.Board { return e.b }

// Reset clears the board and seeds the last row.
func (e *Elementary) Reset(seed int64) error {
	e.b.Reset()
	rng := pcore.NewRNG(seed)
	w, h := e.b.Width(), e.b.Height()
	c := cell{rule: e.cfg.Rule, seedRow: h - 1}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			state := board.StateDead
			if y == h-1 {
				if e.cfg.Density <= 0 {
					if x == w/2 {
						state = board.StateAlive
					}
				} else if rng.Chance(e.cfg.Density) {
					state = board.StateAlive
				}
			}
			if _, err := e.b.Add(board.Placement{Pos: pcore.P(x, y), State: state, Behavior: c}, false); err != nil {
				return err
			}
		}
	}
	return nil
}

// Parameters exposes the current configuration.
func (e *Elementary) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", e.cfg.Width),
				core.IntParam("h", "Height", e.cfg.Height),
			},
		},
		{
			Name: "Rule",
			Params: []core.Parameter{
				core.IntParam("rule", "Wolfram code", int(e.cfg.Rule)),
				core.FloatParam("density", "Seed row density", e.cfg.Density),
			},
		},
	}}
}

type cell struct {
	rule    uint8
	seedRow int
}

func (c cell) Step(a board.Agent) error {
	if a.Pos().Y == c.seedRow {
		return nil
	}
	ns, err := a.Neighbors(1, true, -1)
	if err != nil {
		return err
	}
	idx := bit(ns[0])<<2 | bit(ns[1])<<1 | bit(ns[2])
	next := board.StateDead
	if (c.rule>>idx)&1 == 1 {
		next = board.StateAlive
	}
	if next != a.State() {
		a.SetState(next)
	}
	return nil
}

func bit(a board.Agent) uint8 {
	if a.State() == board.StateAlive {
		return 1
	}
	return 0
}

func init() {
	core.Register("elementary", func(cfg map[string]string) core.Scenario {
		return New(FromMap(cfg))
	})
}
