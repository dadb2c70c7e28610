// Package walkers runs one walker per row stepping right with wrap-around.
// Optional static obstacles on the same layer block them.
package walkers

import (
	"mad-grid/internal/core"
	"mad-grid/pkg/board"
	pcore "mad-grid/pkg/core"
)

// StateObstacle marks the static blockers.
const StateObstacle = "Obstacle"

// Config holds parameters for the walkers scenario.
type Config struct {
	Width     int
	Height    int
	Obstacles int
	// Laps is how many full board widths to walk before halting.
	Laps int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 10, Height: 10, Laps: 1}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	core.IntFrom(cfg, "w", &c.Width, true)
	core.IntFrom(cfg, "h", &c.Height, true)
	core.IntFrom(cfg, "obstacles", &c.Obstacles, false)
	core.IntFrom(cfg, "laps", &c.Laps, true)
	return c
}

// Walkers is the scenario.
type Walkers struct {
	cfg     Config
	b       *board.Board
	blocked int
}

// New creates the scenario and installs its tally stage.
func New(cfg Config, opts ...board.Option) *Walkers {
	w := &Walkers{cfg: cfg, b: board.New(cfg.Width, cfg.Height, 1, opts...)}
	w.b.AddColor(StateObstacle, w.b.RandomColor())
	w.b.AddStage("tally", w.tally)
	w.b.OnReset(func(*board.Board) { w.blocked = 0 })
	return w
}

// Name returns the scenario identifier.
func (w *Walkers) Name() string { return "walkers" }

// Size returns the grid dimensions.
func (w *Walkers) Size() core.Size { return core.Size{W: w.b.Width(), H: w.b.Height()} }

// Board exposes the underlying board.
func (w *Walkers) Board() *board.Board { return w.b }

// Reset places one walker at x=0 on every row and scatters obstacles away
// from the first column.
func (w *Walkers) Reset(seed int64) error {
	w.b.Reset()
	for y := 0; y < w.b.Height(); y++ {
		if _, err := w.b.Add(board.Placement{Pos: pcore.P(0, y), State: board.StateAlive, Behavior: &walker{w: w}}, false); err != nil {
			return err
		}
	}
	if w.b.Width() < 2 {
		return nil
	}
	rng := pcore.NewRNG(seed)
	for placed, tries := 0, 0; placed < w.cfg.Obstacles && tries < w.cfg.Obstacles*16; tries++ {
		p := pcore.P(1+rng.IntN(w.b.Width()-1), rng.IntN(w.b.Height()))
		if _, err := w.b.Add(board.Placement{Pos: p, State: StateObstacle}, false); err == nil {
			placed++
		}
	}
	return nil
}

// Parameters exposes the current configuration.
func (w *Walkers) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "World",
		Params: []core.Parameter{
			core.IntParam("w", "Width", w.cfg.Width),
			core.IntParam("h", "Height", w.cfg.Height),
			core.IntParam("obstacles", "Obstacles", w.cfg.Obstacles),
			core.IntParam("laps", "Laps", w.cfg.Laps),
		},
	}}}
}

func (w *Walkers) tally(b *board.Board) error {
	b.SetValue("blocked", float64(w.blocked))
	if b.StepCount()+1 >= w.cfg.Laps*b.Width() {
		b.Halt()
	}
	return nil
}

type walker struct {
	w *Walkers
}

func (wk *walker) Step(a board.Agent) error {
	p := a.Pos()
	a.SetPos(pcore.P(p.X+1, p.Y).Wrap(a.Board().Width(), a.Board().Height()))
	return nil
}

func (wk *walker) StepEnd(a board.Agent) error {
	want, staged := a.StagedPos()
	if err := a.Commit(); err != nil {
		return err
	}
	if staged && a.Pos() != want {
		wk.w.blocked++
	}
	return nil
}

func init() {
	core.Register("walkers", func(cfg map[string]string) core.Scenario {
		return New(FromMap(cfg))
	})
}
