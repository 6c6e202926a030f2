// Package orchestrator implements the branch synchronization run: target
// discovery, per-branch commit replay with conflict handling, batch
// publishing, and the final per-branch report.
package orchestrator

import (
	"context"

	"github.com/branchops/branchsync/vcs"
)

// Backend is the version-control operation set the orchestrator consumes.
// The real implementation is *vcs.Repo; tests drive the state machine with
// an in-memory fake so no repository is needed.
type Backend interface {
	// IsClean reports whether the working tree has no uncommitted changes.
	IsClean(ctx context.Context) (bool, error)

	// CurrentBranch returns the name of the active branch.
	CurrentBranch(ctx context.Context) (string, error)

	// BranchExists reports whether a local branch exists.
	BranchExists(ctx context.Context, name string) (bool, error)

	// HasRemote reports whether the named remote is configured.
	HasRemote(ctx context.Context, remote string) (bool, error)

	// HasRemoteBranch reports whether a branch has a remote-tracking
	// counterpart under the remote.
	HasRemoteBranch(ctx context.Context, remote, name string) (bool, error)

	// RemoteBranches lists branch names tracked under the remote.
	RemoteBranches(ctx context.Context, remote string) ([]string, error)

	// Fetch updates remote-tracking state. vcs.ErrAlreadyUpToDate is not a
	// failure.
	Fetch(ctx context.Context, remote string) error

	// Tip resolves a revision to its commit hash.
	Tip(ctx context.Context, rev string) (string, error)

	// Deficit returns the commits reachable from sourceRev but not from
	// targetRev, oldest-first.
	Deficit(ctx context.Context, sourceRev, targetRev string) ([]vcs.Commit, error)

	// CheckoutBranch makes an existing local branch active.
	CheckoutBranch(ctx context.Context, name string) error

	// CheckoutTracking creates a local branch from its remote-tracking
	// counterpart and makes it active.
	CheckoutTracking(ctx context.Context, remote, name string) error

	// CreateBranchAt creates a local branch at the given revision and makes
	// it active.
	CreateBranchAt(ctx context.Context, name, startRev string) error

	// Pick replays one commit onto the active branch.
	Pick(ctx context.Context, c vcs.Commit, opts vcs.PickOpts) (*vcs.PickResult, error)

	// Push publishes the named local branches to the remote.
	// vcs.ErrAlreadyUpToDate is not a failure.
	Push(ctx context.Context, remote string, branches []string) error
}

// The go-git facade satisfies the backend contract.
var _ Backend = (*vcs.Repo)(nil)
