package vcs

import (
	"context"
	"testing"

	fsb "github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "valid options", opts: Options{FS: fsb.NewInMemoryFS()}},
		{name: "missing filesystem", opts: Options{}, wantErr: true},
		{
			name:    "negative cache size",
			opts:    Options{FS: fsb.NewInMemoryFS(), StorerCacheSize: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestOptionsApplyDefaults(t *testing.T) {
	opts := Options{FS: fsb.NewInMemoryFS()}
	opts.applyDefaults()

	assert.Equal(t, DefaultWorkdir, opts.Workdir)
	assert.Equal(t, DefaultStorerCacheSize, opts.StorerCacheSize)
}

func TestInit(t *testing.T) {
	t.Run("creates a working repository", func(t *testing.T) {
		tr := setupTestRepo(t)
		hash := tr.commitFile(t, "README.md", "readme", "initial commit")
		assert.Equal(t, hash, tr.tip(t, "HEAD"))
	})

	t.Run("rejects invalid options", func(t *testing.T) {
		_, err := Init(context.Background(), &Options{})
		assert.Error(t, err)
	})
}

func TestOpen(t *testing.T) {
	t.Run("reopens an initialized repository", func(t *testing.T) {
		memFS := fsb.NewInMemoryFS()

		_, err := Init(context.Background(), &Options{FS: memFS})
		require.NoError(t, err)

		reopened, err := Open(context.Background(), &Options{FS: memFS})
		require.NoError(t, err)
		assert.NotNil(t, reopened)
	})

	t.Run("fails when no repository exists", func(t *testing.T) {
		_, err := Open(context.Background(), &Options{FS: fsb.NewInMemoryFS()})
		assert.Error(t, err)
	})
}

func TestIsClean(t *testing.T) {
	tr := setupTestRepo(t)
	tr.commitFile(t, "README.md", "readme", "initial commit")

	clean, err := tr.repo.IsClean(tr.ctx)
	require.NoError(t, err)
	assert.True(t, clean)

	require.NoError(t, tr.fs.WriteFile("dirty.txt", []byte("uncommitted"), 0o644))

	clean, err = tr.repo.IsClean(tr.ctx)
	require.NoError(t, err)
	assert.False(t, clean)
}
