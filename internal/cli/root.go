// Package cli holds the mad-grid command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	// Scenario registrations.
	_ "mad-grid/internal/sims/briansbrain"
	_ "mad-grid/internal/sims/ecology"
	_ "mad-grid/internal/sims/elementary"
	_ "mad-grid/internal/sims/life"
	_ "mad-grid/internal/sims/walkers"
)

// Exit codes.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // a run or sweep failed
	ExitCommandError = 2 // bad flags, files or scenario names
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

func wrapExit(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// ExitCode extracts the exit code from err. Errors that are not an
// ExitError map to ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// RootOptions holds global flags.
type RootOptions struct {
	Verbose bool
	// LogOutput receives log records. Defaults to the command's stderr.
	LogOutput io.Writer

	logger *slog.Logger
}

// Logger returns the logger configured for this invocation.
func (o *RootOptions) Logger() *slog.Logger {
	if o.logger == nil {
		return slog.Default()
	}
	return o.logger
}

func (o *RootOptions) setupLogging(cmd *cobra.Command) {
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	out := o.LogOutput
	if out == nil {
		out = cmd.ErrOrStderr()
	}
	o.logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(o.logger)
}

// NewRootCommand creates the mad-grid root command.
func NewRootCommand() *cobra.Command {
	return newRoot(&RootOptions{})
}

func newRoot(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mad-grid",
		Short: "Multi-layer grid agent simulations",
		Long: `mad-grid steps rule sets of agents on layered grids.

Scenarios run headless with "run", over parameter grids with "sweep", and
"list" shows what is available.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.setupLogging(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewSweepCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	return cmd
}
