// Package vcs provides a narrow facade over go-git for branch synchronization.
// This file contains commit replay (cherry-pick) onto the active branch.
package vcs

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// ConflictPolicy selects how Pick treats files that conflict with the
// target branch content.
type ConflictPolicy int8

const (
	// PolicyOurs keeps the target branch's current content for every
	// conflicting file, discarding the incoming commit's changes to those
	// files. The dropped paths are reported in the PickResult.
	PolicyOurs ConflictPolicy = iota

	// PolicyFail refuses to resolve: Pick returns ErrReplayConflict
	// without mutating the worktree.
	PolicyFail
)

// String returns a human-readable string representation of the ConflictPolicy.
func (p ConflictPolicy) String() string {
	switch p {
	case PolicyOurs:
		return "ours"
	case PolicyFail:
		return "fail"
	default:
		return "unknown"
	}
}

// ParseConflictPolicy converts a configuration value to a ConflictPolicy.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch s {
	case "", "ours":
		return PolicyOurs, nil
	case "fail":
		return PolicyFail, nil
	default:
		return PolicyOurs, WrapErrorf(ErrInvalidRef, "unknown conflict policy %q", s)
	}
}

// PickOpts configures a single commit replay.
type PickOpts struct {
	// Policy selects the conflict handling behavior.
	Policy ConflictPolicy

	// Committer identifies the committer of the replay commit. The original
	// author is preserved. If zero, the original author is used as committer.
	Committer Signature
}

// PickResult reports the outcome of replaying one commit.
type PickResult struct {
	// Hash is the identifier of the replay commit. Empty when the pick
	// produced no new commit because every change was already present.
	Hash string

	// Applied lists the files whose incoming changes landed cleanly.
	Applied []string

	// Conflicts lists the files kept at the target branch's content under
	// PolicyOurs. The incoming commit's changes to these files were dropped.
	Conflicts []string
}

// fileContent is a file's content on one side of the three-way comparison.
// Absent files are distinguished from empty ones.
type fileContent struct {
	text   string
	exists bool
}

func (fc fileContent) equal(other fileContent) bool {
	return fc.exists == other.exists && fc.text == other.text
}

// fileOutcome is the planned action for a single path touched by the
// replayed commit.
type fileOutcome struct {
	path     string
	incoming fileContent // write when exists, delete when not
	conflict bool
}

// Pick replays the change introduced by a single commit onto the active
// branch, with file-level three-way semantics: for every file the commit
// touches, the file's content at the commit's parent is the base, the
// commit's content is the incoming side, and the active branch's worktree
// content is ours.
//
// Files whose current content matches the base receive the incoming change.
// Files already at the incoming content are left alone. Anything else is a
// conflict, handled per the policy. Under PolicyFail, a conflicting pick
// returns ErrReplayConflict before any mutation; the pick is all or nothing.
//
// A pick whose changes are all already present produces no new commit.
func (r *Repo) Pick(ctx context.Context, c Commit, opts PickOpts) (*PickResult, error) {
	if r.worktree == nil {
		return nil, WrapError(ErrInvalidRef, "cannot pick without a worktree")
	}

	commit, err := r.repo.CommitObject(plumbing.NewHash(c.Hash))
	if err != nil {
		return nil, WrapErrorf(ErrResolveFailed, "no commit %q", c.Hash)
	}

	outcomes, err := r.planPick(commit)
	if err != nil {
		return nil, err
	}

	result := &PickResult{}
	for _, o := range outcomes {
		if o.conflict {
			result.Conflicts = append(result.Conflicts, o.path)
		}
	}

	if len(result.Conflicts) > 0 && opts.Policy == PolicyFail {
		return result, WrapErrorf(ErrReplayConflict, "commit %s conflicts on %d file(s)",
			c.ShortHash(), len(result.Conflicts))
	}

	// Apply the clean side. Conflicting files keep the worktree content,
	// which is already in place; nothing to write for them.
	for _, o := range outcomes {
		if o.conflict {
			continue
		}
		if err := r.applyOutcome(o); err != nil {
			return result, err
		}
		result.Applied = append(result.Applied, o.path)
	}

	if len(result.Applied) == 0 {
		// Every change was already present on the target; replaying would
		// create an empty commit, so none is created.
		return result, nil
	}

	hash, err := r.commitReplay(commit, opts.Committer)
	if err != nil {
		return result, err
	}
	result.Hash = hash

	return result, nil
}

// planPick computes the per-file outcomes for replaying the commit onto
// the current worktree. It performs no mutation.
func (r *Repo) planPick(commit *object.Commit) ([]fileOutcome, error) {
	commitTree, err := commit.Tree()
	if err != nil {
		return nil, WrapError(err, "failed to load commit tree")
	}

	// Root commits diff against the empty tree.
	var parentTree *object.Tree
	if commit.NumParents() > 0 {
		parent, parentErr := commit.Parent(0)
		if parentErr != nil {
			return nil, WrapError(parentErr, "failed to load parent commit")
		}
		parentTree, err = parent.Tree()
		if err != nil {
			return nil, WrapError(err, "failed to load parent tree")
		}
	}

	changes, err := object.DiffTree(parentTree, commitTree)
	if err != nil {
		return nil, WrapError(err, "failed to diff commit against parent")
	}

	// A rename contributes a deletion at the old path and a write at the
	// new one; plain changes contribute a single outcome.
	paths := map[string]fileContent{}
	var order []string
	record := func(path string, incoming fileContent) {
		if _, seen := paths[path]; !seen {
			order = append(order, path)
		}
		paths[path] = incoming
	}

	for _, change := range changes {
		action, actionErr := change.Action()
		if actionErr != nil {
			return nil, WrapError(actionErr, "failed to classify change")
		}

		from, to := change.From.Name, change.To.Name

		if from != "" && (action == merkletrie.Delete || from != to) {
			record(from, fileContent{})
		}

		if to != "" && action != merkletrie.Delete {
			incoming, contentErr := treeContent(commitTree, to)
			if contentErr != nil {
				return nil, contentErr
			}
			record(to, incoming)
		}
	}

	sort.Strings(order)

	outcomes := make([]fileOutcome, 0, len(order))
	for _, path := range order {
		incoming := paths[path]

		base, err := treeContent(parentTree, path)
		if err != nil {
			return nil, err
		}

		current, err := r.worktreeContent(path)
		if err != nil {
			return nil, err
		}

		switch {
		case current.equal(incoming):
			// Already applied on the target; nothing to do.
		case current.equal(base):
			outcomes = append(outcomes, fileOutcome{path: path, incoming: incoming})
		default:
			outcomes = append(outcomes, fileOutcome{path: path, incoming: incoming, conflict: true})
		}
	}

	return outcomes, nil
}

// applyOutcome writes or deletes one file and stages the change.
func (r *Repo) applyOutcome(o fileOutcome) error {
	wtFS := r.worktree.Filesystem

	if !o.incoming.exists {
		if _, err := r.worktree.Remove(o.path); err != nil {
			return WrapErrorf(err, "failed to remove %q", o.path)
		}
		return nil
	}

	if dir := filepath.Dir(o.path); dir != "." {
		if err := wtFS.MkdirAll(dir, 0o755); err != nil {
			return WrapErrorf(err, "failed to create directory %q", dir)
		}
	}

	if err := util.WriteFile(wtFS, o.path, []byte(o.incoming.text), 0o644); err != nil {
		return WrapErrorf(err, "failed to write %q", o.path)
	}

	if _, err := r.worktree.Add(o.path); err != nil {
		return WrapErrorf(err, "failed to stage %q", o.path)
	}

	return nil
}

// commitReplay creates the replay commit, preserving the original message
// and author.
func (r *Repo) commitReplay(original *object.Commit, committer Signature) (string, error) {
	if committer.Name == "" {
		committer = Signature{
			Name:  original.Author.Name,
			Email: original.Author.Email,
		}
	}
	if committer.When.IsZero() {
		committer.When = time.Now()
	}

	hash, err := r.worktree.Commit(original.Message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  original.Author.Name,
			Email: original.Author.Email,
			When:  original.Author.When,
		},
		Committer: &object.Signature{
			Name:  committer.Name,
			Email: committer.Email,
			When:  committer.When,
		},
	})
	if err != nil {
		return "", WrapErrorf(err, "failed to commit replay of %s", original.Hash.String()[:8])
	}

	return hash.String(), nil
}

// treeContent reads a file's content from a tree. A nil tree (root commit
// base) has no files.
func treeContent(tree *object.Tree, path string) (fileContent, error) {
	if tree == nil {
		return fileContent{}, nil
	}

	file, err := tree.File(path)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return fileContent{}, nil
		}
		return fileContent{}, WrapErrorf(err, "failed to read %q from tree", path)
	}

	text, err := file.Contents()
	if err != nil {
		return fileContent{}, WrapErrorf(err, "failed to read contents of %q", path)
	}

	return fileContent{text: text, exists: true}, nil
}

// worktreeContent reads a file's content from the active worktree.
func (r *Repo) worktreeContent(path string) (fileContent, error) {
	data, err := util.ReadFile(r.worktree.Filesystem, path)
	if err != nil {
		// billy surfaces missing files as os.ErrNotExist from the
		// underlying filesystem.
		if isNotExist(err) {
			return fileContent{}, nil
		}
		return fileContent{}, fmt.Errorf("failed to read worktree file %q: %w", path, err)
	}

	return fileContent{text: string(data), exists: true}, nil
}
