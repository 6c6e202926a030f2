// Package vcs provides a narrow facade over go-git for branch synchronization.
// This file contains deficit computation between two branch tips.
package vcs

import (
	"context"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Commit is the orchestrator-facing view of a commit selected for replay.
type Commit struct {
	// Hash is the full content-addressed identifier of the commit.
	Hash string

	// Subject is the first line of the commit message.
	Subject string

	// Author is the original author's name.
	Author string

	// Email is the original author's email address.
	Email string

	// When is the original author timestamp.
	When time.Time
}

// ShortHash returns the abbreviated commit identifier used in log output.
func (c Commit) ShortHash() string {
	if len(c.Hash) < 8 {
		return c.Hash
	}
	return c.Hash[:8]
}

// Deficit computes the ordered sequence of commits reachable from the
// source revision but not from the target revision, relative to their
// merge base. The result is ordered oldest-first, which is the order the
// commits must be replayed in. A nil result means the target already
// contains every source commit.
//
// Unrelated histories (no merge base) yield the entire source history.
func (r *Repo) Deficit(ctx context.Context, sourceRev, targetRev string) ([]Commit, error) {
	sourceCommit, err := r.commitAt(sourceRev)
	if err != nil {
		return nil, err
	}

	targetCommit, err := r.commitAt(targetRev)
	if err != nil {
		return nil, err
	}

	bases, err := sourceCommit.MergeBase(targetCommit)
	if err != nil {
		return nil, WrapError(err, "failed to compute merge base")
	}

	ignore := make([]plumbing.Hash, 0, len(bases))
	for _, base := range bases {
		if base.Hash == sourceCommit.Hash {
			// Source is reachable from target: nothing to replay.
			return nil, nil
		}
		ignore = append(ignore, base.Hash)
	}

	// Walk the source side of history, cutting traversal at the merge base.
	iter := object.NewCommitPreorderIter(sourceCommit, nil, ignore)
	defer iter.Close()

	var deficit []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		deficit = append(deficit, Commit{
			Hash:    c.Hash.String(),
			Subject: messageSubject(c.Message),
			Author:  c.Author.Name,
			Email:   c.Author.Email,
			When:    c.Author.When,
		})
		return nil
	})
	if err != nil {
		return nil, WrapError(err, "failed to walk source history")
	}

	// The iterator yields newest-first; replay wants oldest-first.
	for i, j := 0, len(deficit)-1; i < j; i, j = i+1, j-1 {
		deficit[i], deficit[j] = deficit[j], deficit[i]
	}

	return deficit, nil
}

// commitAt resolves a revision and loads its commit object.
func (r *Repo) commitAt(rev string) (*object.Commit, error) {
	if rev == "" {
		return nil, WrapError(ErrInvalidRef, "revision cannot be empty")
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, WrapErrorf(ErrResolveFailed, "failed to resolve %q", rev)
	}

	commit, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, WrapErrorf(ErrResolveFailed, "no commit at %q", rev)
	}

	return commit, nil
}

// messageSubject extracts the first line of a commit message.
func messageSubject(msg string) string {
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return strings.TrimSpace(msg[:i])
	}
	return strings.TrimSpace(msg)
}
