// Package vcs provides sentinel errors for the backend operations.
// All errors can be checked using errors.Is() for programmatic handling.
package vcs

import (
	"errors"
	"fmt"
)

// Common sentinel errors that can be checked with errors.Is().
// These wrap underlying go-git errors while providing a stable API for consumers.

// ErrAlreadyUpToDate is returned when a fetch or push results in no changes
// because the local and remote states are already synchronized.
var ErrAlreadyUpToDate = errors.New("already up to date")

// ErrAuthRequired is returned when an operation requires authentication
// but no credentials were provided or available.
var ErrAuthRequired = errors.New("authentication required")

// ErrBranchExists is returned when attempting to create a branch that already exists.
var ErrBranchExists = errors.New("branch already exists")

// ErrBranchMissing is returned when attempting to operate on a local branch
// that does not exist.
var ErrBranchMissing = errors.New("branch does not exist")

// ErrRemoteBranchMissing is returned when a branch has no remote-tracking
// counterpart under the requested remote.
var ErrRemoteBranchMissing = errors.New("remote branch does not exist")

// ErrDirtyWorktree is returned when an operation requires a clean working
// tree but uncommitted changes are present.
var ErrDirtyWorktree = errors.New("working tree has uncommitted changes")

// ErrReplayConflict is returned by Pick when the replayed commit conflicts
// with the target branch content and the policy forbids automatic resolution.
var ErrReplayConflict = errors.New("replay conflict")

// ErrNotFastForward is returned when a push cannot be performed as a
// fast-forward update of the remote ref.
var ErrNotFastForward = errors.New("not a fast-forward")

// ErrInvalidRef is returned when a reference name or revision specification
// is malformed or invalid according to git's reference naming rules.
var ErrInvalidRef = errors.New("invalid reference")

// ErrResolveFailed is returned when a revision specification cannot be resolved
// to a valid commit hash (e.g., branch/tag doesn't exist, invalid SHA).
var ErrResolveFailed = errors.New("cannot resolve revision")

// WrapError wraps an error with additional context while preserving
// the ability to check against sentinel errors using errors.Is().
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// WrapErrorf wraps an error with formatted additional context while preserving
// the ability to check against sentinel errors using errors.Is().
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
