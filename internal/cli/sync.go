package cli

import (
	"errors"
	"fmt"
	"os"

	fsb "github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/spf13/cobra"

	"github.com/branchops/branchsync/internal/config"
	"github.com/branchops/branchsync/internal/console"
	"github.com/branchops/branchsync/internal/orchestrator"
	"github.com/branchops/branchsync/vcs"
)

// syncFlags holds the per-invocation overrides for the sync command.
type syncFlags struct {
	dryRun    bool
	noPush    bool
	branches  []string
	source    string
	remote    string
	conflicts string
}

// NewSyncCommand creates the sync command, the tool's main entry point.
func NewSyncCommand(root *RootOptions) *cobra.Command {
	flags := &syncFlags{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Replay missing source commits onto target branches and publish them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false,
		"compute and report without mutating anything")
	cmd.Flags().BoolVar(&flags.noPush, "no-push", false,
		"perform replay but skip the push phase")
	cmd.Flags().StringSliceVar(&flags.branches, "branches", nil,
		"restrict targets to this explicit comma-separated list")
	cmd.Flags().StringVar(&flags.source, "source", "",
		"source branch (overrides config)")
	cmd.Flags().StringVar(&flags.remote, "remote", "",
		"remote name (overrides config)")
	cmd.Flags().StringVar(&flags.conflicts, "conflicts", "",
		"conflict policy: ours or fail (overrides config)")

	return cmd
}

// runSync resolves configuration, opens the repository at the working
// directory, and executes the sync run.
func runSync(cmd *cobra.Command, flags *syncFlags) error {
	workdir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cannot determine working directory: %w", err)
	}

	cfg, err := config.Load(workdir)
	if err != nil {
		return err
	}

	if flags.source != "" {
		cfg.Source = flags.source
	}
	if flags.remote != "" {
		cfg.Remote = flags.remote
	}
	if flags.conflicts != "" {
		cfg.ConflictPolicy = flags.conflicts
	}

	policy, err := vcs.ParseConflictPolicy(cfg.ConflictPolicy)
	if err != nil {
		return err
	}

	opts := &vcs.Options{FS: fsb.NewOSFS(workdir)}
	if token := os.Getenv(cfg.TokenEnv); token != "" {
		opts.Auth = vcs.NewTokenAuth(token)
	}

	repo, err := vcs.Open(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("not a git repository (run branchsync from the repository root): %w", err)
	}

	runner := orchestrator.New(repo, orchestrator.Options{
		Source:   cfg.Source,
		Remote:   cfg.Remote,
		Branches: flags.branches,
		DryRun:   flags.dryRun,
		NoPush:   flags.noPush,
		Policy:   policy,
		Committer: vcs.Signature{
			Name:  cfg.Committer.Name,
			Email: cfg.Committer.Email,
		},
	})

	summary, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	summary.Render(console.Output())

	if summary.HasFailures() {
		return errors.New("one or more branches failed")
	}

	return nil
}
