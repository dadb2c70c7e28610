package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mad-grid/internal/config"
	"mad-grid/internal/results"
	"mad-grid/internal/sweep"
)

// SweepOptions holds flags for the sweep command.
type SweepOptions struct {
	*RootOptions
	File     string
	Out      string
	Database string
	Workers  int
	MaxSteps int
}

// NewSweepCommand creates the sweep command.
func NewSweepCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SweepOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run a scenario over a parameter grid",
		Long: `Run every combination of the sweep block in a run file: parameter
values, board sizes and repetitions. Each run gets its own board and steps
until the scenario halts or max_steps is reached.

Rows go to a CSV file (compressed when the name ends in .zst), a SQLite
database, or both.

Example:
  mad-grid sweep --file ecology.yaml --out runs.csv.zst
  mad-grid sweep --file ecology.yaml --db runs.db --workers 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "YAML run file with a sweep block (required)")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "CSV output path")
	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite output path")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "worker goroutines, 0 uses the file or CPU count")
	cmd.Flags().IntVar(&opts.MaxSteps, "max-steps", 0, "tick limit per run, 0 uses the file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runSweep(cmd *cobra.Command, opts *SweepOptions) error {
	log := opts.Logger()

	if opts.Out == "" && opts.Database == "" {
		return wrapExit(ExitCommandError, "sweep", errors.New("set --out, --db or both"))
	}
	f, err := config.Load(opts.File)
	if err != nil {
		return wrapExit(ExitCommandError, "load run file", err)
	}
	plan, err := sweep.FromFile(f)
	if err != nil {
		return wrapExit(ExitCommandError, "sweep", err)
	}
	if opts.Workers > 0 {
		plan.Workers = opts.Workers
	}
	if opts.MaxSteps > 0 {
		plan.MaxSteps = opts.MaxSteps
	}

	if plan.ID, err = sweep.NewID(); err != nil {
		return wrapExit(ExitFailure, "sweep", err)
	}
	sink, err := openSinks(opts, plan.ID)
	if err != nil {
		return wrapExit(ExitCommandError, "open output", err)
	}
	defer func() {
		if err := sink.Close(); err != nil {
			log.Error("close output", "err", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sum, err := sweep.Run(ctx, plan, sink, log)
	fmt.Fprintf(cmd.OutOrStdout(), "sweep %s: %d runs, %d failed in %s\n",
		plan.ID, sum.Runs, sum.Failed, sum.Elapsed.Round(time.Millisecond))
	if err != nil {
		return wrapExit(ExitFailure, "sweep", err)
	}
	return nil
}

func openSinks(opts *SweepOptions, sweepID string) (results.Sink, error) {
	var sinks results.Multi
	if opts.Out != "" {
		c, err := results.CreateCSV(opts.Out)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, c)
	}
	if opts.Database != "" {
		db, err := results.OpenSQLite(opts.Database, sweepID)
		if err != nil {
			_ = sinks.Close()
			return nil, err
		}
		sinks = append(sinks, db)
	}
	return sinks, nil
}
