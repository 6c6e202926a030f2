// Package vcs provides branch management operations for the sync workflow.
// This file contains checkout, creation, and branch existence queries.
package vcs

import (
	"context"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// CurrentBranch returns the name of the currently checked out branch.
// It returns an error if HEAD is in a detached state.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", WrapError(err, "failed to get HEAD reference")
	}

	// Detached HEAD has no branch name
	if !head.Name().IsBranch() {
		return "", WrapError(ErrResolveFailed, "HEAD is detached")
	}

	return head.Name().Short(), nil
}

// BranchExists reports whether a local branch with the given name exists.
func (r *Repo) BranchExists(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, WrapError(ErrInvalidRef, "branch name cannot be empty")
	}

	_, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), true)
	if err != nil {
		if err == plumbing.ErrReferenceNotFound {
			return false, nil
		}
		return false, WrapError(err, "failed to look up branch reference")
	}

	return true, nil
}

// CheckoutBranch makes the named local branch the active working branch.
// The branch must already exist; callers that need create-and-track
// semantics use CheckoutTracking instead.
func (r *Repo) CheckoutBranch(ctx context.Context, name string) error {
	if name == "" {
		return WrapError(ErrInvalidRef, "branch name cannot be empty")
	}

	branchRef := plumbing.NewBranchReferenceName(name)
	if _, err := r.repo.Reference(branchRef, true); err != nil {
		return WrapError(ErrBranchMissing, "cannot checkout "+name)
	}

	err := r.worktree.Checkout(&git.CheckoutOptions{Branch: branchRef})
	if err != nil {
		return WrapErrorf(err, "failed to checkout branch %q", name)
	}

	return nil
}

// CheckoutTracking creates a local branch from its remote-tracking
// counterpart and checks it out. It is used for target branches that exist
// on the remote but have never been checked out locally.
func (r *Repo) CheckoutTracking(ctx context.Context, remote, name string) error {
	if remote == "" {
		remote = DefaultRemoteName
	}

	if name == "" {
		return WrapError(ErrInvalidRef, "branch name cannot be empty")
	}

	remoteRef, err := r.repo.Reference(plumbing.NewRemoteReferenceName(remote, name), true)
	if err != nil {
		return WrapErrorf(ErrRemoteBranchMissing, "no %s/%s", remote, name)
	}

	branchRef := plumbing.NewBranchReferenceName(name)
	newRef := plumbing.NewHashReference(branchRef, remoteRef.Hash())
	if err := r.repo.Storer.SetReference(newRef); err != nil {
		return WrapErrorf(err, "failed to create local branch %q", name)
	}

	err = r.worktree.Checkout(&git.CheckoutOptions{Branch: branchRef})
	if err != nil {
		return WrapErrorf(err, "failed to checkout branch %q", name)
	}

	return nil
}

// CreateBranchAt creates a local branch pointing at the given revision and
// checks it out. It is used for target branches that exist neither locally
// nor on the remote: instead of replaying history commit by commit, the
// branch is created directly from the source tip.
func (r *Repo) CreateBranchAt(ctx context.Context, name, startRev string) error {
	if name == "" {
		return WrapError(ErrInvalidRef, "branch name cannot be empty")
	}

	if startRev == "" {
		return WrapError(ErrInvalidRef, "start revision cannot be empty")
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(startRev))
	if err != nil {
		return WrapErrorf(ErrResolveFailed, "failed to resolve %q", startRev)
	}

	branchRef := plumbing.NewBranchReferenceName(name)
	if _, err := r.repo.Reference(branchRef, true); err == nil {
		return WrapError(ErrBranchExists, name)
	}

	newRef := plumbing.NewHashReference(branchRef, *hash)
	if err := r.repo.Storer.SetReference(newRef); err != nil {
		return WrapErrorf(err, "failed to create branch %q", name)
	}

	err = r.worktree.Checkout(&git.CheckoutOptions{Branch: branchRef})
	if err != nil {
		return WrapErrorf(err, "failed to checkout branch %q", name)
	}

	return nil
}
