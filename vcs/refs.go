// Package vcs provides a narrow facade over go-git for branch synchronization.
// This file contains reference queries: remote branch listing and tip resolution.
package vcs

import (
	"context"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// Tip resolves a revision specification to its current commit hash.
// The revision can be any valid git revision syntax (branch name, remote
// branch, tag, HEAD, commit SHA).
func (r *Repo) Tip(ctx context.Context, rev string) (string, error) {
	if rev == "" {
		return "", WrapError(ErrInvalidRef, "revision cannot be empty")
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return "", WrapErrorf(ErrResolveFailed, "failed to resolve %q", rev)
	}

	return hash.String(), nil
}

// RemoteBranches lists the branch names tracked under the given remote,
// sorted alphabetically. The remote HEAD pointer is excluded.
func (r *Repo) RemoteBranches(ctx context.Context, remote string) ([]string, error) {
	if remote == "" {
		remote = DefaultRemoteName
	}

	refs, err := r.repo.References()
	if err != nil {
		return nil, WrapError(err, "failed to get references")
	}

	prefix := "refs/remotes/" + remote + "/"

	var branches []string
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().String()
		if !strings.HasPrefix(name, prefix) {
			return nil
		}

		short := strings.TrimPrefix(name, prefix)
		if short == "HEAD" {
			return nil
		}

		branches = append(branches, short)
		return nil
	})
	if err != nil {
		return nil, WrapError(err, "failed to iterate references")
	}

	sort.Strings(branches)

	return branches, nil
}

// HasRemoteBranch reports whether the named branch has a remote-tracking
// counterpart under the given remote.
func (r *Repo) HasRemoteBranch(ctx context.Context, remote, name string) (bool, error) {
	if remote == "" {
		remote = DefaultRemoteName
	}

	if name == "" {
		return false, WrapError(ErrInvalidRef, "branch name cannot be empty")
	}

	_, err := r.repo.Reference(plumbing.NewRemoteReferenceName(remote, name), true)
	if err != nil {
		if err == plumbing.ErrReferenceNotFound {
			return false, nil
		}
		return false, WrapError(err, "failed to look up remote branch reference")
	}

	return true, nil
}
