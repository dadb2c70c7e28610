package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"mad-grid/internal/core"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list [scenario]",
		Short: "List scenarios and their parameters",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := core.Names()
			if len(args) == 1 {
				names = args[:1]
			}
			out := cmd.OutOrStdout()
			for _, name := range names {
				s, err := core.New(name, nil)
				if err != nil {
					return wrapExit(ExitCommandError, "list", err)
				}
				fmt.Fprintf(out, "%s (%dx%d)\n", name, s.Size().W, s.Size().H)
				for _, g := range s.Parameters().Groups {
					fmt.Fprintf(out, "  %s\n", g.Name)
					for _, p := range g.Params {
						fmt.Fprintf(out, "    %-16s %-8s %s\n", p.Key, p.Value, p.Label)
					}
				}
			}
			return nil
		},
	}
}
