package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/branchops/branchsync/internal/console"
	"github.com/branchops/branchsync/vcs"
)

// Options configures a sync run.
type Options struct {
	// Source is the authoritative branch commits are replayed from.
	Source string

	// Remote is the remote the targets are discovered on and published to.
	Remote string

	// Branches restricts the run to an explicit target list. Empty means
	// auto discovery: every remote branch except the source.
	Branches []string

	// DryRun computes and reports without mutating anything.
	DryRun bool

	// NoPush performs replay but skips the push phase.
	NoPush bool

	// Policy selects the replay conflict handling.
	Policy vcs.ConflictPolicy

	// Committer identifies the committer of replay commits.
	Committer vcs.Signature
}

// Runner executes the branch synchronization workflow: validate
// preconditions, discover targets, replay each target's commit deficit,
// restore the source branch, publish, summarize.
type Runner struct {
	backend Backend
	opts    Options
}

// New creates a Runner over the given backend.
func New(backend Backend, opts Options) *Runner {
	if opts.Source == "" {
		opts.Source = "main"
	}
	if opts.Remote == "" {
		opts.Remote = vcs.DefaultRemoteName
	}
	return &Runner{backend: backend, opts: opts}
}

// Run executes the sync. The returned Summary always reflects every
// processed branch; the error is non-nil only when a precondition failed
// and the run aborted before touching any target.
//
// Branches are processed strictly sequentially: the working tree is a
// single shared resource, so only one branch is ever active.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	if err := r.checkPreconditions(ctx); err != nil {
		return nil, err
	}

	sourceTip, err := r.backend.Tip(ctx, r.opts.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source tip: %w", err)
	}
	console.Verbose("source %s at %.8s", r.opts.Source, sourceTip)

	targets, err := r.discoverTargets(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Source:    r.opts.Source,
		SourceTip: sourceTip,
		DryRun:    r.opts.DryRun,
	}

	if len(targets) == 0 {
		console.Info("no target branches to process")
		return summary, nil
	}

	console.Banner("syncing %d branch(es) from %s", len(targets), r.opts.Source)

	for _, target := range targets {
		result := r.syncBranch(ctx, target)
		summary.Results = append(summary.Results, result)
	}

	r.restoreSource(ctx)

	r.pushPhase(ctx, summary)

	return summary, nil
}

// checkPreconditions aborts the run before any mutation when the working
// tree is dirty, the source branch is missing, or the remote is not
// reachable.
func (r *Runner) checkPreconditions(ctx context.Context) error {
	clean, err := r.backend.IsClean(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect working tree: %w", err)
	}
	if !clean {
		return vcs.WrapError(vcs.ErrDirtyWorktree, "commit or stash your changes and re-run")
	}

	exists, err := r.backend.BranchExists(ctx, r.opts.Source)
	if err != nil {
		return fmt.Errorf("failed to look up source branch: %w", err)
	}
	if !exists {
		return vcs.WrapErrorf(vcs.ErrBranchMissing,
			"source branch %q not found; check the source setting", r.opts.Source)
	}

	hasRemote, err := r.backend.HasRemote(ctx, r.opts.Remote)
	if err != nil {
		return fmt.Errorf("failed to look up remote: %w", err)
	}
	if !hasRemote {
		return vcs.WrapErrorf(vcs.ErrResolveFailed,
			"remote %q is not configured; add it or change the remote setting", r.opts.Remote)
	}

	console.Verbose("fetching %s", r.opts.Remote)
	if err := r.backend.Fetch(ctx, r.opts.Remote); err != nil && !errors.Is(err, vcs.ErrAlreadyUpToDate) {
		return fmt.Errorf("remote %q is not reachable: %w", r.opts.Remote, err)
	}

	return nil
}

// syncBranch runs the replay state machine for one target branch:
// selected -> checked-out -> replaying -> terminal status.
func (r *Runner) syncBranch(ctx context.Context, target string) *BranchResult {
	result := &BranchResult{Branch: target, Status: StatusPending}

	hasRemote, err := r.backend.HasRemoteBranch(ctx, r.opts.Remote, target)
	if err != nil {
		return r.fail(result, "", err)
	}

	if !hasRemote {
		return r.createFromSource(ctx, result)
	}

	// The deficit is computed against the tip replay will land on: the
	// local branch when it exists, otherwise the remote-tracking ref.
	targetRev := r.opts.Remote + "/" + target
	hasLocal, err := r.backend.BranchExists(ctx, target)
	if err != nil {
		return r.fail(result, "", err)
	}
	if hasLocal {
		targetRev = target
	}

	deficit, err := r.backend.Deficit(ctx, r.opts.Source, targetRev)
	if err != nil {
		return r.fail(result, "", err)
	}
	result.Deficit = deficit

	if len(deficit) == 0 {
		result.Status = StatusUpToDate
		console.Success("%s: up to date", target)
		return result
	}

	console.Info("%s: %d commit(s) behind %s", target, len(deficit), r.opts.Source)

	if r.opts.DryRun {
		for _, c := range deficit {
			console.Verbose("  would replay %s %s", c.ShortHash(), c.Subject)
		}
		return result
	}

	if hasLocal {
		err = r.backend.CheckoutBranch(ctx, target)
	} else {
		err = r.backend.CheckoutTracking(ctx, r.opts.Remote, target)
	}
	if err != nil {
		return r.fail(result, "", err)
	}

	return r.replay(ctx, result)
}

// replay applies the branch's deficit in order. The first commit that
// cannot be applied fails the branch; no later commit is attempted and the
// working tree is left exactly as the failed apply left it, for inspection.
func (r *Runner) replay(ctx context.Context, result *BranchResult) *BranchResult {
	conflicted := false

	for _, c := range result.Deficit {
		pick, err := r.backend.Pick(ctx, c, vcs.PickOpts{
			Policy:    r.opts.Policy,
			Committer: r.opts.Committer,
		})
		if err != nil {
			console.ErrorPrint("%s: replay of %s failed: %v", result.Branch, c.ShortHash(), err)
			return r.fail(result, c.Hash, err)
		}

		result.Replayed = append(result.Replayed, ReplayedCommit{
			Source:    c,
			NewHash:   pick.Hash,
			Conflicts: pick.Conflicts,
		})

		switch {
		case len(pick.Conflicts) > 0:
			conflicted = true
			for _, path := range pick.Conflicts {
				console.Warning("%s: conflict in %s: kept branch content, dropped changes from %s",
					result.Branch, path, c.ShortHash())
			}
		case pick.Hash == "":
			console.Verbose("  %s already applied", c.ShortHash())
		default:
			console.Verbose("  replayed %s %s", c.ShortHash(), c.Subject)
		}
	}

	if conflicted {
		result.Status = StatusConflictResolved
		console.Warning("%s: synced with conflicts resolved (%d file(s) kept at branch content)",
			result.Branch, result.conflictCount())
	} else {
		result.Status = StatusSynced
		console.Success("%s: synced (%d commit(s))", result.Branch, len(result.Replayed))
	}

	return result
}

// createFromSource handles targets with no remote counterpart: the branch
// is created directly at the source tip instead of being replayed commit
// by commit. Only an explicit --branches list can select such a target;
// auto discovery enumerates remote branches and never sees one.
func (r *Runner) createFromSource(ctx context.Context, result *BranchResult) *BranchResult {
	target := result.Branch

	hasLocal, err := r.backend.BranchExists(ctx, target)
	if err != nil {
		return r.fail(result, "", err)
	}

	if hasLocal {
		// Local-only branch: leave its history alone and let the push
		// phase publish it.
		result.Status = StatusCreated
		result.Note = "local branch, not on remote yet"
		console.Info("%s: skip replay — local branch will be published", target)
		return result
	}

	result.Note = "created from " + r.opts.Source
	console.Info("%s: no remote counterpart, skip — create from source", target)

	if r.opts.DryRun {
		result.Status = StatusCreated
		return result
	}

	if err := r.backend.CreateBranchAt(ctx, target, r.opts.Source); err != nil {
		return r.fail(result, "", err)
	}

	result.Status = StatusCreated
	console.Success("%s: created at %s tip", target, r.opts.Source)
	return result
}

// restoreSource makes the source branch active again after the replay
// phase. Failing to restore does not undo completed work; it is surfaced
// as a warning.
func (r *Runner) restoreSource(ctx context.Context) {
	if r.opts.DryRun {
		return
	}

	current, err := r.backend.CurrentBranch(ctx)
	if err == nil && current == r.opts.Source {
		return
	}

	if err := r.backend.CheckoutBranch(ctx, r.opts.Source); err != nil {
		console.Warning("could not restore %s as the active branch: %v", r.opts.Source, err)
	}
}

// pushPhase publishes every non-failed branch after all branches have been
// processed, so one branch's replay failure never leaves earlier branches
// unpublished. Per-branch push failures are surfaced, not rolled back.
func (r *Runner) pushPhase(ctx context.Context, summary *Summary) {
	if r.opts.DryRun || r.opts.NoPush {
		if r.opts.NoPush && !r.opts.DryRun {
			console.Info("push phase skipped (--no-push)")
		}
		return
	}

	// Only branches whose local tip changed have anything to publish.
	// Up-to-date branches are left untouched end to end.
	var publishable []*BranchResult
	for _, result := range summary.Results {
		if result.mutated() {
			publishable = append(publishable, result)
		}
	}

	if len(publishable) == 0 {
		return
	}

	console.Banner("pushing %d branch(es) to %s", len(publishable), r.opts.Remote)

	for _, result := range publishable {
		err := r.backend.Push(ctx, r.opts.Remote, []string{result.Branch})
		if err != nil && !errors.Is(err, vcs.ErrAlreadyUpToDate) {
			result.PushErr = err
			console.ErrorPrint("%s: push failed: %v", result.Branch, err)
			continue
		}
		result.Pushed = true
		console.Verbose("  pushed %s", result.Branch)
	}
}

// fail records a terminal branch failure. The run continues with the
// remaining branches; the failed branch is excluded from the push phase.
func (r *Runner) fail(result *BranchResult, commitHash string, err error) *BranchResult {
	result.Status = StatusFailed
	result.FailedCommit = commitHash
	result.Err = err
	return result
}
