package ecology

import (
	"fmt"

	"mad-grid/internal/core"
	"mad-grid/pkg/board"
	pcore "mad-grid/pkg/core"
)

// Board layers.
const (
	LayerRock = iota
	LayerGrass
	LayerGrazer
	layerCount
)

// Agent states.
const (
	StateRock   = "Rock"
	StateGrass  = "Grass"
	StateGrazer = "Grazer"
	StateHungry = "Hungry"
)

var directions = [...]pcore.Pos{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}

// World is a three-layer ecology: static rock, static grass and wandering
// grazers. Rock is solid to grazers; grass triggers and is eaten.
type World struct {
	cfg Config
	b   *board.Board
	rng *pcore.RNG

	eaten   int
	starved int
}

// New returns an ecology scenario with the provided dimensions using defaults.
func New(w, h int, opts ...board.Option) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg, opts...)
}

// NewWithConfig returns an ecology world configured from the provided options.
// It panics when a supplied collision map cannot hold the three layers.
func NewWithConfig(cfg Config, opts ...board.Option) *World {
	w := &World{
		cfg: cfg,
		b:   board.New(cfg.Width, cfg.Height, layerCount, opts...),
		rng: pcore.NewRNG(cfg.Seed),
	}
	rules := w.b.CollisionMap()
	if err := rules.Add(pcore.CollisionSolid, LayerGrazer, LayerRock); err != nil {
		panic(fmt.Sprintf("ecology: collision map too small for %d layers: %v", layerCount, err))
	}
	if err := rules.Add(pcore.CollisionTrigger, LayerGrazer, LayerGrass); err != nil {
		panic(fmt.Sprintf("ecology: collision map too small for %d layers: %v", layerCount, err))
	}
	registerPalette(w.b)

	w.b.AddStage("regrow", w.regrow)
	w.b.AddStage("observe", w.observe)
	w.b.OnDelete(func(a board.Agent) {
		if a.Layer() == LayerGrazer {
			w.starved++
		}
	})
	w.b.OnReset(func(*board.Board) {
		w.eaten = 0
		w.starved = 0
	})
	return w
}

// Name returns the scenario identifier.
func (w *World) Name() string { return "ecology" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.b.Width(), H: w.b.Height()} }

// Board exposes the underlying board.
func (w *World) Board() *board.Board { return w.b }

// Reset prepares the initial world using deterministic randomness. A zero
// seed falls back to the configured one.
func (w *World) Reset(seed int64) error {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng = pcore.NewRNG(effective)
	w.b.Reset()

	if err := w.sprinkleRock(); err != nil {
		return err
	}
	if err := w.seedGrassPatches(); err != nil {
		return err
	}
	if err := w.placeGrazers(); err != nil {
		return err
	}
	return w.observe(w.b)
}

func (w *World) occupied(p pcore.Pos, layer int) bool {
	a, err := w.b.Get(p, layer, false)
	return err == nil && a.Valid()
}

func (w *World) sprinkleRock() error {
	if w.cfg.Params.RockChance <= 0 {
		return nil
	}
	for y := 0; y < w.b.Height(); y++ {
		for x := 0; x < w.b.Width(); x++ {
			if !w.rng.Chance(w.cfg.Params.RockChance) {
				continue
			}
			if _, err := w.b.Add(board.Placement{Pos: pcore.P(x, y), Layer: LayerRock, State: StateRock}, false); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *World) seedGrassPatches() error {
	count := w.cfg.Params.GrassPatchCount
	if count <= 0 {
		return nil
	}
	minR := max(w.cfg.Params.GrassPatchRadiusMin, 0)
	maxR := max(w.cfg.Params.GrassPatchRadiusMax, minR)
	den := w.cfg.Params.GrassPatchDensity
	if den <= 0 {
		den = 1
	}
	width, height := w.b.Width(), w.b.Height()
	for p := 0; p < count; p++ {
		cx := w.rng.IntN(width)
		cy := w.rng.IntN(height)
		radius := minR + w.rng.IntN(maxR-minR+1)
		r2 := radius * radius
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				pos := pcore.P(cx+dx, cy+dy)
				if !pos.In(width, height) || dx*dx+dy*dy > r2 {
					continue
				}
				if w.rng.Float64() > den {
					continue
				}
				if err := w.plantGrass(pos); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (w *World) plantGrass(p pcore.Pos) error {
	if w.occupied(p, LayerRock) || w.occupied(p, LayerGrass) {
		return nil
	}
	_, err := w.b.Add(board.Placement{Pos: p, Layer: LayerGrass, State: StateGrass}, false)
	return err
}

func (w *World) placeGrazers() error {
	want := w.cfg.Params.Grazers
	width, height := w.b.Width(), w.b.Height()
	for placed, tries := 0, 0; placed < want && tries < want*16; tries++ {
		p := pcore.P(w.rng.IntN(width), w.rng.IntN(height))
		if w.occupied(p, LayerRock) || w.occupied(p, LayerGrazer) {
			continue
		}
		g := &grazer{w: w}
		if _, err := w.b.Add(board.Placement{Pos: p, Layer: LayerGrazer, State: StateGrazer, Behavior: g}, false); err != nil {
			return err
		}
		placed++
	}
	return nil
}

// regrow spreads grass onto bare, rock-free cells with enough grass around
// them. Counts are taken before any cell changes.
func (w *World) regrow(b *board.Board) error {
	p := w.cfg.Params
	if p.GrassSpreadChance <= 0 {
		return nil
	}
	width, height := b.Width(), b.Height()
	grass := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			grass[y*width+x] = w.occupied(pcore.P(x, y), LayerGrass)
		}
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if grass[y*width+x] {
				continue
			}
			neighbors := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if (dx == 0 && dy == 0) || nx < 0 || nx >= width || ny < 0 || ny >= height {
						continue
					}
					if grass[ny*width+nx] {
						neighbors++
					}
				}
			}
			if neighbors < p.GrassNeighborThreshold || !w.rng.Chance(p.GrassSpreadChance) {
				continue
			}
			if err := w.plantGrass(pcore.P(x, y)); err != nil {
				return err
			}
		}
	}
	return nil
}

// observe publishes population values and halts once every grazer is gone.
func (w *World) observe(b *board.Board) error {
	grazers := b.CensusOf(StateGrazer) + b.CensusOf(StateHungry)
	b.SetValue("grass", float64(b.CensusOf(StateGrass)))
	b.SetValue("grazers", float64(grazers))
	b.SetValue("eaten", float64(w.eaten))
	b.SetValue("starved", float64(w.starved))
	if grazers == 0 {
		b.Halt()
	}
	return nil
}

type grazer struct {
	w      *World
	hunger int
}

func (g *grazer) Step(a board.Agent) error {
	b := a.Board()
	dir := directions[g.w.rng.IntN(len(directions))]
	a.SetPos(a.Pos().Add(dir).Wrap(b.Width(), b.Height()))

	state := StateGrazer
	if g.hunger*2 >= g.w.cfg.Params.StarveTicks {
		state = StateHungry
	}
	if state != a.State() {
		a.SetState(state)
	}
	return nil
}

func (g *grazer) StepEnd(a board.Agent) error {
	if err := a.Commit(); err != nil {
		return err
	}
	onGrass, err := a.CheckCollisions(pcore.CollisionTrigger, a.Pos())
	if err != nil {
		return err
	}
	if onGrass {
		grass, err := a.Board().Get(a.Pos(), LayerGrass, false)
		if err != nil {
			return err
		}
		if !grass.Pending() {
			grass.Kill()
			g.w.eaten++
			g.hunger = 0
			return nil
		}
	}
	g.hunger++
	if g.hunger >= g.w.cfg.Params.StarveTicks {
		a.Kill()
	}
	return nil
}

func init() {
	core.Register("ecology", func(cfg map[string]string) core.Scenario {
		return NewWithConfig(FromMap(cfg))
	})
}
