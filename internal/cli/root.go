// Package cli wires the cobra command tree for the branchsync tool.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/branchops/branchsync/internal/console"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the branchsync CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "branchsync",
		Short: "Propagate commits from a source branch to derived branches",
		Long: "branchsync replays the commits a set of derived branches are missing\n" +
			"from a source branch, resolves replay conflicts per a configurable\n" +
			"policy, and publishes the results in one batch.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			console.SetVerbose(opts.Verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false,
		"emit detailed step-by-step diagnostics")

	cmd.AddCommand(NewSyncCommand(opts))
	cmd.AddCommand(NewScaffoldCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}
