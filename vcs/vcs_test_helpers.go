package vcs

import (
	"context"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
	fsb "github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/stretchr/testify/require"
)

// testRepo holds a repository built over an in-memory filesystem plus the
// helpers the tests drive it with.
type testRepo struct {
	repo  *Repo
	fs    fs.Filesystem
	ctx   context.Context
	clock time.Time
}

// setupTestRepo creates an empty repository over an in-memory filesystem.
func setupTestRepo(t *testing.T) *testRepo {
	t.Helper()

	memFS := fsb.NewInMemoryFS()

	repo, err := Init(context.Background(), &Options{FS: memFS})
	require.NoError(t, err, "failed to initialize test repository")

	return &testRepo{
		repo:  repo,
		fs:    memFS,
		ctx:   context.Background(),
		clock: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// commitFile writes one file, stages it, and commits. Returns the commit hash.
func (tr *testRepo) commitFile(t *testing.T, path, content, msg string) string {
	t.Helper()

	err := tr.fs.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err, "failed to write %s", path)

	_, err = tr.repo.worktree.Add(path)
	require.NoError(t, err, "failed to stage %s", path)

	return tr.commit(t, msg)
}

// deleteFile removes one file, stages the deletion, and commits.
func (tr *testRepo) deleteFile(t *testing.T, path, msg string) string {
	t.Helper()

	_, err := tr.repo.worktree.Remove(path)
	require.NoError(t, err, "failed to remove %s", path)

	return tr.commit(t, msg)
}

// commit creates a commit from the staged state with a deterministic,
// strictly increasing timestamp.
func (tr *testRepo) commit(t *testing.T, msg string) string {
	t.Helper()

	tr.clock = tr.clock.Add(time.Minute)
	sig := &object.Signature{Name: "Test Author", Email: "test@example.com", When: tr.clock}

	hash, err := tr.repo.worktree.Commit(msg, &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err, "failed to commit %q", msg)

	return hash.String()
}

// createBranch creates a branch at the current HEAD without checking it out.
func (tr *testRepo) createBranch(t *testing.T, name string) {
	t.Helper()

	head, err := tr.repo.repo.Head()
	require.NoError(t, err, "failed to get HEAD")

	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), head.Hash())
	require.NoError(t, tr.repo.repo.Storer.SetReference(ref), "failed to create branch %s", name)
}

// checkout switches the worktree to an existing local branch.
func (tr *testRepo) checkout(t *testing.T, name string) {
	t.Helper()

	err := tr.repo.worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
	})
	require.NoError(t, err, "failed to checkout %s", name)
}

// createRemoteRef records a remote-tracking ref for a branch at the given
// hash (or current HEAD when hash is empty), simulating a fetched remote.
func (tr *testRepo) createRemoteRef(t *testing.T, remote, name, hash string) {
	t.Helper()

	h := plumbing.NewHash(hash)
	if hash == "" {
		head, err := tr.repo.repo.Head()
		require.NoError(t, err, "failed to get HEAD")
		h = head.Hash()
	}

	ref := plumbing.NewHashReference(plumbing.NewRemoteReferenceName(remote, name), h)
	require.NoError(t, tr.repo.repo.Storer.SetReference(ref), "failed to create remote ref")
}

// tip resolves a revision to its hash, failing the test on error.
func (tr *testRepo) tip(t *testing.T, rev string) string {
	t.Helper()

	hash, err := tr.repo.Tip(tr.ctx, rev)
	require.NoError(t, err, "failed to resolve %s", rev)

	return hash
}

// readFile returns a worktree file's content.
func (tr *testRepo) readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := tr.fs.ReadFile(path)
	require.NoError(t, err, "failed to read %s", path)

	return string(data)
}
