package orchestrator

import "github.com/branchops/branchsync/vcs"

// Status is the terminal (or pending) state of one target branch within a
// sync run.
type Status int8

const (
	// StatusPending means the branch has a deficit that was not applied,
	// which only happens in dry-run mode.
	StatusPending Status = iota

	// StatusUpToDate means the branch already contains every source commit.
	// No checkout, replay, or mutation happened.
	StatusUpToDate

	// StatusSynced means every deficit commit was applied cleanly.
	StatusSynced

	// StatusConflictResolved means the deficit was applied but at least one
	// commit needed the conflict policy to complete.
	StatusConflictResolved

	// StatusCreated means the branch had no remote counterpart and was
	// created directly from the source tip instead of being replayed.
	StatusCreated

	// StatusFailed means replay stopped on this branch; the recorded commit
	// could not be applied and no later deficit commit was attempted.
	StatusFailed
)

// String returns the status label used in log lines and the summary table.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusUpToDate:
		return "up-to-date"
	case StatusSynced:
		return "synced"
	case StatusConflictResolved:
		return "conflict-resolved"
	case StatusCreated:
		return "created"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ReplayedCommit records the outcome of replaying one deficit commit.
type ReplayedCommit struct {
	// Source is the commit that was replayed.
	Source vcs.Commit

	// NewHash is the replay commit's identifier. Empty when the change was
	// already present on the target and no commit was created.
	NewHash string

	// Conflicts lists files kept at the target's content; the source
	// commit's changes to them were dropped.
	Conflicts []string
}

// BranchResult is the per-branch record of a sync run.
type BranchResult struct {
	// Branch is the target branch name.
	Branch string

	// Status is the branch's terminal state.
	Status Status

	// Deficit is the ordered commit sequence the branch was missing.
	Deficit []vcs.Commit

	// Replayed records the commits applied to the branch, in order.
	Replayed []ReplayedCommit

	// FailedCommit is the hash of the commit whose replay caused the
	// terminal failure, when Status is StatusFailed.
	FailedCommit string

	// Err is the error that failed the branch, when Status is StatusFailed.
	Err error

	// Pushed reports whether the push phase published this branch.
	Pushed bool

	// PushErr is the per-branch push failure, if any.
	PushErr error

	// Note carries a human-readable detail for the summary (for example
	// why a branch was created rather than replayed).
	Note string
}

// mutated reports whether the branch's local tip changed during the run.
func (b *BranchResult) mutated() bool {
	switch b.Status {
	case StatusSynced, StatusConflictResolved, StatusCreated:
		return true
	default:
		return false
	}
}

// conflictCount totals the files dropped by conflict resolution across the
// branch's replayed commits.
func (b *BranchResult) conflictCount() int {
	n := 0
	for _, rc := range b.Replayed {
		n += len(rc.Conflicts)
	}
	return n
}
