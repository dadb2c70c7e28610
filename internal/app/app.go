//go:build ebiten

package app

import (
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"mad-grid/internal/core"
	"mad-grid/internal/render"
	"mad-grid/internal/ui"
)

// Game adapts a scenario to the ebiten.Game interface.
type Game struct {
	sim     core.Scenario
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	log     *slog.Logger

	background color.RGBA

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the scenario. A panel width of 0 hides the HUD.
func New(sim core.Scenario, scale, panel int, seed int64) *Game {
	size := sim.Size()
	return &Game{
		sim:        sim,
		painter:    render.NewGridPainter(size.W, size.H),
		overlay:    ui.NewOverlay(sim, scale),
		hud:        ui.NewHUD(sim, panel),
		log:        slog.Default(),
		background: color.RGBA{A: 255},
		scale:      scale,
		seed:       seed,
	}
}

// Reset reinitializes the scenario with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	if err := g.sim.Reset(seed); err != nil {
		g.log.Error("reset failed", "scenario", g.sim.Name(), "seed", seed, "err", err)
		g.paused = true
	}
	g.tickOnce = false
}

// Update handles per-frame input and advances the board.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()
	g.hud.Update()

	b := g.sim.Board()
	if (!g.paused && b.Running()) || g.tickOnce {
		g.tickOnce = false
		if err := b.Step(); err != nil {
			g.log.Error("step failed", "scenario", g.sim.Name(), "step", b.StepCount(), "err", err)
			g.paused = true
		}
	}
	return nil
}

// Draw renders the board, overlay and panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Board(), g.background, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
