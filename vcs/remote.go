// Package vcs provides a narrow facade over go-git for branch synchronization.
// This file contains remote operations (fetch, push).
package vcs

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// HasRemote reports whether the named remote is configured.
func (r *Repo) HasRemote(ctx context.Context, remote string) (bool, error) {
	if remote == "" {
		remote = DefaultRemoteName
	}

	_, err := r.repo.Remote(remote)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return false, nil
		}
		return false, WrapError(err, "failed to look up remote")
	}

	return true, nil
}

// Fetch updates remote-tracking state from the specified remote.
// Returns ErrAlreadyUpToDate if there are no changes to fetch.
func (r *Repo) Fetch(ctx context.Context, remote string) error {
	if remote == "" {
		remote = DefaultRemoteName
	}

	fetchOpts := &git.FetchOptions{
		RemoteName: remote,
	}

	authMethod, err := r.authFor(remote)
	if err != nil {
		return err
	}
	fetchOpts.Auth = authMethod

	err = r.repo.Fetch(fetchOpts)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return WrapErrorf(ErrResolveFailed, "remote %q not found", remote)
		}
		if errors.Is(err, git.NoErrAlreadyUpToDate) {
			return ErrAlreadyUpToDate
		}
		return WrapError(err, "failed to fetch from remote")
	}

	return nil
}

// Push publishes the named local branches to the specified remote.
// Returns ErrAlreadyUpToDate if the remote already has every tip.
// Returns ErrNotFastForward if the push would overwrite remote changes.
func (r *Repo) Push(ctx context.Context, remote string, branches []string) error {
	if remote == "" {
		remote = DefaultRemoteName
	}

	if len(branches) == 0 {
		return nil
	}

	refSpecs := make([]config.RefSpec, 0, len(branches))
	for _, b := range branches {
		if b == "" {
			return WrapError(ErrInvalidRef, "branch name cannot be empty")
		}
		refSpecs = append(refSpecs, config.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", b, b)))
	}

	pushOpts := &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   refSpecs,
	}

	authMethod, err := r.authFor(remote)
	if err != nil {
		return err
	}
	pushOpts.Auth = authMethod

	err = r.repo.Push(pushOpts)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return WrapErrorf(ErrResolveFailed, "remote %q not found", remote)
		}
		if errors.Is(err, git.NoErrAlreadyUpToDate) {
			return ErrAlreadyUpToDate
		}
		if errors.Is(err, git.ErrNonFastForwardUpdate) {
			return ErrNotFastForward
		}
		return WrapError(err, "failed to push to remote")
	}

	return nil
}

// authFor resolves the auth method for the remote's first URL, if an
// AuthProvider is configured.
func (r *Repo) authFor(remote string) (transport.AuthMethod, error) {
	if r.options.Auth == nil {
		return nil, nil
	}

	remoteConfig, err := r.repo.Remote(remote)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return nil, WrapErrorf(ErrResolveFailed, "remote %q not found", remote)
		}
		return nil, WrapError(err, "failed to get remote configuration")
	}

	authMethod, err := r.options.Auth.Method(remoteConfig.Config().URLs[0])
	if err != nil {
		return nil, WrapError(ErrAuthRequired, "failed to get authentication method")
	}

	return authMethod, nil
}
