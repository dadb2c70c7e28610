package briansbrain

import (
	"image/color"

	"mad-grid/internal/core"
	"mad-grid/pkg/board"
	pcore "mad-grid/pkg/core"
)

// Cell states. Resting cells use board.StateDead.
const (
	StateOn    = "On"
	StateDying = "Dying"
)

// Config holds parameters for Brian's Brain.
type Config struct {
	Width   int
	Height  int
	Density float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 128, Height: 128, Density: 0.125}
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
	return c
}

// Brain implements Brian's Brain with one agent per cell.
type Brain struct {
	cfg Config
	b   *board.Board
}

// New creates a Brain scenario.
func New(cfg Config, opts ...board.Option) *Brain {
	b := board.New(cfg.Width, cfg.Height, 1, opts...)
	b.AddColor(StateOn, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	b.AddColor(StateDying, color.RGBA{R: 60, G: 90, B: 220, A: 255})
	return &Brain{cfg: cfg, b: b}
}

// Name identifies the scenario.
func (br *Brain) Name() string { return "briansbrain" }

// Size returns the grid dimensions.
func (br *Brain) Size() core.Size { return core.Size{W: br.b.Width(), H: br.b.Height()} }

// Board exposes the underlying board.
func (br *Brain) Board() *board.Board { return br.b }

// Reset randomizes cells into resting or firing states.
func (br *Brain) Reset(seed int64) error {
	br.b.Reset()
	rng := pcore.NewRNG(seed)
	for y := 0; y < br.b.Height(); y++ {
		for x := 0; x < br.b.Width(); x++ {
			state := board.StateDead
			if rng.Chance(br.cfg.Density) {
				state = StateOn
			}
			if _, err := br.b.Add(board.Placement{Pos: pcore.P(x, y), State: state, Behavior: neuron{}}, false); err != nil {
				return err
			}
		}
	}
	return nil
}

// Parameters exposes the current configuration.
func (br *Brain) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "World",
		Params: []core.Parameter{
			core.IntParam("w", "Width", br.cfg.Width),
			core.IntParam("h", "Height", br.cfg.Height),
			core.FloatParam("density", "Initial firing density", br.cfg.Density),
		},
	}}}
}

type neuron struct{}

func (neuron) Step(a board.Agent) error {
	switch a.State() {
	case StateOn:
		a.SetState(StateDying)
	case StateDying:
		a.SetState(board.StateDead)
	default:
		ns, err := a.Neighbors(1, true, -1)
		if err != nil {
			return err
		}
		firing := 0
		for i, n := range ns {
			if i != 4 && n.State() == StateOn {
				firing++
			}
		}
		if firing == 2 {
			a.SetState(StateOn)
		}
	}
	return nil
}

func init() {
	core.Register("briansbrain", func(cfg map[string]string) core.Scenario {
		return New(FromMap(cfg))
	})
}
