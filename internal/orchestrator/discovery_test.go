package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverTargets(t *testing.T) {
	t.Run("auto mode lists remote branches except the source", func(t *testing.T) {
		backend := newFakeBackend()
		backend.remoteBranches["origin"] = []string{"main", "template/go", "template/react"}

		runner := New(backend, Options{})
		targets, err := runner.discoverTargets(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"template/go", "template/react"}, targets)
	})

	t.Run("explicit mode keeps the caller's list verbatim", func(t *testing.T) {
		backend := newFakeBackend()

		runner := New(backend, Options{Branches: []string{"a", "b"}})
		targets, err := runner.discoverTargets(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, targets)

		// Explicit mode never consults the remote.
		assert.False(t, backend.called("RemoteBranches"))
	})

	t.Run("explicit mode trims, dedups, and drops the source", func(t *testing.T) {
		backend := newFakeBackend()

		runner := New(backend, Options{
			Branches: []string{" a ", "", "b", "a", "main"},
		})
		targets, err := runner.discoverTargets(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, targets)
	})

	t.Run("auto mode with only the source yields nothing", func(t *testing.T) {
		backend := newFakeBackend()
		backend.remoteBranches["origin"] = []string{"main"}

		runner := New(backend, Options{})
		targets, err := runner.discoverTargets(context.Background())
		require.NoError(t, err)
		assert.Empty(t, targets)
	})
}
