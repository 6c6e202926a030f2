package vcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTip(t *testing.T) {
	tr := setupTestRepo(t)
	first := tr.commitFile(t, "README.md", "readme", "initial commit")
	second := tr.commitFile(t, "README.md", "readme v2", "update readme")

	t.Run("resolves a branch name", func(t *testing.T) {
		hash, err := tr.repo.Tip(tr.ctx, "master")
		require.NoError(t, err)
		assert.Equal(t, second, hash)
	})

	t.Run("resolves HEAD", func(t *testing.T) {
		hash, err := tr.repo.Tip(tr.ctx, "HEAD")
		require.NoError(t, err)
		assert.Equal(t, second, hash)
	})

	t.Run("resolves a raw hash", func(t *testing.T) {
		hash, err := tr.repo.Tip(tr.ctx, first)
		require.NoError(t, err)
		assert.Equal(t, first, hash)
	})

	t.Run("fails for an unknown revision", func(t *testing.T) {
		_, err := tr.repo.Tip(tr.ctx, "no-such-rev")
		assert.ErrorIs(t, err, ErrResolveFailed)
	})
}

func TestRemoteBranches(t *testing.T) {
	t.Run("lists remote-tracking branches sorted", func(t *testing.T) {
		tr := setupTestRepo(t)
		tr.commitFile(t, "README.md", "readme", "initial commit")
		tr.createRemoteRef(t, "origin", "main", "")
		tr.createRemoteRef(t, "origin", "template/react", "")
		tr.createRemoteRef(t, "origin", "template/go", "")
		tr.createRemoteRef(t, "upstream", "main", "")

		branches, err := tr.repo.RemoteBranches(tr.ctx, "origin")
		require.NoError(t, err)
		assert.Equal(t, []string{"main", "template/go", "template/react"}, branches)
	})

	t.Run("excludes the remote HEAD pointer", func(t *testing.T) {
		tr := setupTestRepo(t)
		tr.commitFile(t, "README.md", "readme", "initial commit")
		tr.createRemoteRef(t, "origin", "main", "")
		tr.createRemoteRef(t, "origin", "HEAD", "")

		branches, err := tr.repo.RemoteBranches(tr.ctx, "origin")
		require.NoError(t, err)
		assert.Equal(t, []string{"main"}, branches)
	})

	t.Run("returns empty when nothing was fetched", func(t *testing.T) {
		tr := setupTestRepo(t)
		tr.commitFile(t, "README.md", "readme", "initial commit")

		branches, err := tr.repo.RemoteBranches(tr.ctx, "origin")
		require.NoError(t, err)
		assert.Empty(t, branches)
	})
}

func TestHasRemoteBranch(t *testing.T) {
	tr := setupTestRepo(t)
	tr.commitFile(t, "README.md", "readme", "initial commit")
	tr.createRemoteRef(t, "origin", "develop", "")

	got, err := tr.repo.HasRemoteBranch(tr.ctx, "origin", "develop")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = tr.repo.HasRemoteBranch(tr.ctx, "origin", "release")
	require.NoError(t, err)
	assert.False(t, got)
}
