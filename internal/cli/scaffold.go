package cli

import (
	fsb "github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/spf13/cobra"

	"github.com/branchops/branchsync/internal/console"
	"github.com/branchops/branchsync/internal/scaffold"
)

// NewScaffoldCommand creates the scaffold command, which materializes the
// embedded FastAPI project template into a new directory.
func NewScaffoldCommand(root *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "scaffold <project-name>",
		Short: "Create a new FastAPI clean-architecture project from the template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if err := scaffold.Create(fsb.NewOSFS(output), name); err != nil {
				return err
			}

			console.Success("project %q created", name)
			console.Info("next steps:")
			for _, step := range scaffold.NextSteps(name) {
				console.Info("  %s", step)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", ".",
		"directory to create the project in")

	return cmd
}
