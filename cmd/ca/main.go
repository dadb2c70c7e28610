//go:build ebiten

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"

	"mad-grid/internal/app"
	"mad-grid/internal/core"
	_ "mad-grid/internal/sims/briansbrain"
	_ "mad-grid/internal/sims/ecology"
	_ "mad-grid/internal/sims/elementary"
	_ "mad-grid/internal/sims/life"
	_ "mad-grid/internal/sims/walkers"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(pflag.CommandLine)
	pflag.Parse()

	params, err := cfg.Params()
	if err != nil {
		fatal(err)
	}
	sim, err := core.New(cfg.Scenario, params)
	if err != nil {
		fatal(err)
	}
	if err := sim.Reset(cfg.Seed); err != nil {
		fatal(err)
	}

	game := app.New(sim, cfg.Scale, cfg.Panel, cfg.Seed)
	size := sim.Size()

	ebiten.SetWindowTitle("mad-grid: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		fatal(err)
	}
	slog.Info("viewer closed", "scenario", sim.Name(), "size", fmt.Sprintf("%dx%d", size.W, size.H))
}

func fatal(err error) {
	slog.Error("viewer", "err", err)
	os.Exit(1)
}
