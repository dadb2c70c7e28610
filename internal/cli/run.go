package cli

import (
	"context"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mad-grid/internal/config"
	"mad-grid/internal/core"
	"mad-grid/internal/render"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	File  string
	Steps int
	TPS   int
	Seed  int64
	Set   []string
	Print bool
	PNG   string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "Run one scenario headless",
		Long: `Run a scenario until it halts or the step limit is reached.

The scenario comes from the argument or from a run file. Flags given on the
command line override values from the file.

Example:
  mad-grid run life --steps 50 --set w=32 --set h=16 --print
  mad-grid run --file ecology.yaml --tps 10`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "YAML run file")
	cmd.Flags().IntVar(&opts.Steps, "steps", 100, "maximum ticks to run")
	cmd.Flags().IntVar(&opts.TPS, "tps", 0, "ticks per second, 0 runs unpaced")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 1, "random seed for the initial population")
	cmd.Flags().StringArrayVar(&opts.Set, "set", nil, "scenario parameter override key=value (repeatable)")
	cmd.Flags().BoolVar(&opts.Print, "print", false, "print the final board as text")
	cmd.Flags().StringVar(&opts.PNG, "png", "", "write the final board as a PNG image")

	return cmd
}

func runScenario(cmd *cobra.Command, opts *RunOptions, args []string) error {
	log := opts.Logger()

	var file config.File
	if opts.File != "" {
		f, err := config.Load(opts.File)
		if err != nil {
			return wrapExit(ExitCommandError, "load run file", err)
		}
		file = f
		if !cmd.Flags().Changed("steps") && f.Steps > 0 {
			opts.Steps = f.Steps
		}
		if !cmd.Flags().Changed("tps") && f.TPS > 0 {
			opts.TPS = f.TPS
		}
		if !cmd.Flags().Changed("seed") && f.Seed != 0 {
			opts.Seed = f.Seed
		}
	}
	if len(args) == 1 {
		file.Scenario = args[0]
	}
	if file.Scenario == "" {
		return wrapExit(ExitCommandError, "run", fmt.Errorf("no scenario given (available: %v)", core.Names()))
	}

	overrides, err := config.ParseOverrides(opts.Set)
	if err != nil {
		return wrapExit(ExitCommandError, "run", err)
	}
	params := maps.Clone(file.Params)
	if params == nil {
		params = make(map[string]string)
	}
	maps.Copy(params, overrides)

	s, err := core.New(file.Scenario, params)
	if err != nil {
		return wrapExit(ExitCommandError, "run", err)
	}
	b := s.Board()
	if err := file.Apply(b.CollisionMap()); err != nil {
		return wrapExit(ExitCommandError, "run", err)
	}
	if err := s.Reset(opts.Seed); err != nil {
		return wrapExit(ExitFailure, "reset", err)
	}

	ctx, cancel := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info("run start", "scenario", s.Name(), "size", fmt.Sprintf("%dx%d", s.Size().W, s.Size().H),
		"seed", opts.Seed, "steps", opts.Steps, "tps", opts.TPS)

	var pace *core.FixedStep
	if opts.TPS > 0 {
		pace = core.NewFixedStep(opts.TPS)
	}
	start := time.Now()
	for b.Running() && b.StepCount() < opts.Steps {
		if pace != nil {
			if err := waitTick(ctx, pace); err != nil {
				log.Info("run interrupted", "step", b.StepCount())
				break
			}
		} else if ctx.Err() != nil {
			log.Info("run interrupted", "step", b.StepCount())
			break
		}
		if err := b.Step(); err != nil {
			return wrapExit(ExitFailure, "step", err)
		}
		if log.Enabled(ctx, slog.LevelDebug) {
			log.Debug("tick", "step", b.StepCount(), "census", censusAttr(b.Census()))
		}
	}
	log.Info("run done", "scenario", s.Name(), "steps", b.StepCount(), "halted", !b.Running(),
		"took", time.Since(start).Round(time.Millisecond))

	out := cmd.OutOrStdout()
	writeSummary(out, s)
	if opts.Print {
		fmt.Fprint(out, render.Text(b, render.DefaultGlyphs))
	}
	if opts.PNG != "" {
		if err := writePNG(opts.PNG, s); err != nil {
			return wrapExit(ExitFailure, "write png", err)
		}
		log.Info("image written", "path", opts.PNG)
	}
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func waitTick(ctx context.Context, pace *core.FixedStep) error {
	for !pace.ShouldStep() {
		t := time.NewTimer(pace.Remaining())
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	return ctx.Err()
}

func censusAttr(census map[string]int) slog.Value {
	attrs := make([]slog.Attr, 0, len(census))
	for _, k := range slices.Sorted(maps.Keys(census)) {
		if census[k] > 0 {
			attrs = append(attrs, slog.Int(k, census[k]))
		}
	}
	return slog.GroupValue(attrs...)
}

func writeSummary(w io.Writer, s core.Scenario) {
	b := s.Board()
	fmt.Fprintf(w, "%s: %d steps\n", s.Name(), b.StepCount())
	census := b.Census()
	for _, k := range slices.Sorted(maps.Keys(census)) {
		if census[k] > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", k, census[k])
		}
	}
	values := b.Values()
	for _, k := range slices.Sorted(maps.Keys(values)) {
		fmt.Fprintf(w, "  %-12s %g\n", k, values[k])
	}
}

func writePNG(path string, s core.Scenario) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	img := render.Image(s.Board(), color.RGBA{A: 255})
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
