// Package vcs provides a narrow facade over go-git for branch synchronization.
// This file contains worktree state queries.
package vcs

import (
	"context"
	"errors"
	"os"
)

// IsClean reports whether the working tree has no uncommitted changes,
// staged or unstaged. Untracked files count as dirty, matching the
// precondition the sync run enforces before touching any branch.
func (r *Repo) IsClean(ctx context.Context) (bool, error) {
	if r.worktree == nil {
		return false, WrapError(ErrInvalidRef, "repository has no worktree")
	}

	status, err := r.worktree.Status()
	if err != nil {
		return false, WrapError(err, "failed to get worktree status")
	}

	return status.IsClean(), nil
}

// isNotExist reports whether an error indicates a missing file, unwrapping
// the path errors billy filesystems return.
func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist) || os.IsNotExist(err)
}
