// Package vcs provides a narrow facade over go-git for branch synchronization.
// This file contains repository discovery/creation and shared types.
package vcs

import (
	"context"
	"fmt"
	"time"

	gobilly "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/input-output-hk/catalyst-forge-libs/fs"

	"github.com/branchops/branchsync/vcs/internal/fsbridge"
)

const (
	// DefaultStorerCacheSize is the default size for the LRU object cache.
	DefaultStorerCacheSize = 1000

	// DefaultWorkdir is the default worktree directory name.
	DefaultWorkdir = "."

	// DefaultRemoteName is the default remote name used for operations.
	DefaultRemoteName = "origin"
)

// Options configures repository discovery/creation.
type Options struct {
	// FS is the REQUIRED native filesystem root (OS or in-memory).
	// All repository state lives within this filesystem.
	FS fs.Filesystem

	// Workdir is the path within FS for the worktree root.
	// Defaults to "." (current directory in FS).
	Workdir string

	// StorerCacheSize sets the LRU objects cache entries.
	// Defaults to DefaultStorerCacheSize.
	StorerCacheSize int

	// Auth is an optional provider that resolves per-URL AuthMethod.
	// If nil, no authentication will be available for network operations.
	Auth AuthProvider
}

// Validate checks that the Options are properly configured.
// It returns an error if required fields are missing or invalid.
func (o *Options) Validate() error {
	if o.FS == nil {
		return WrapError(ErrInvalidRef, "FS is required")
	}

	if o.StorerCacheSize < 0 {
		return WrapError(ErrInvalidRef, "StorerCacheSize cannot be negative")
	}

	return nil
}

// applyDefaults sets default values for any unset fields in Options.
func (o *Options) applyDefaults() {
	if o.Workdir == "" {
		o.Workdir = DefaultWorkdir
	}

	if o.StorerCacheSize == 0 {
		o.StorerCacheSize = DefaultStorerCacheSize
	}
}

// AuthProvider resolves authentication methods for network operations.
// Implementations should handle different URL schemes and credential sources.
type AuthProvider interface {
	// Method returns the appropriate transport.AuthMethod for the given remote URL.
	// Returns nil if no authentication is needed/available for this URL.
	// Returns an error if authentication cannot be resolved for the URL.
	Method(remoteURL string) (transport.AuthMethod, error)
}

// Signature identifies the author or committer of a replayed commit.
type Signature struct {
	// Name is the author's or committer's name.
	Name string

	// Email is the author's or committer's email address.
	Email string

	// When is the timestamp for the signature.
	When time.Time
}

// Repo represents an open git repository and provides the backend
// operations consumed by the sync orchestrator. It wraps a go-git
// Repository and Worktree, operating exclusively through the project's
// filesystem abstraction.
type Repo struct {
	repo     *git.Repository
	worktree *git.Worktree
	fs       fs.Filesystem
	options  Options
}

// open prepares the storage and worktree filesystems for a repository
// rooted at opts.Workdir and hands them to the given go-git constructor.
func open(
	opts *Options,
	construct func(*filesystem.Storage, gobilly.Filesystem) (*git.Repository, error),
) (*Repo, error) {
	if err := opts.Validate(); err != nil {
		return nil, WrapError(err, "invalid options")
	}

	opts.applyDefaults()

	billyFS, err := fsbridge.ToBillyFilesystem(opts.FS)
	if err != nil {
		return nil, fmt.Errorf("filesystem conversion failed: %w", err)
	}

	// Chroot to the workdir to scope the repository location
	scopedFS, err := billyFS.Chroot(opts.Workdir)
	if err != nil {
		return nil, fmt.Errorf("failed to chroot to workdir %q: %w", opts.Workdir, err)
	}

	// Repository metadata lives in the .git subdirectory, the worktree at the root
	dotGitFS, err := scopedFS.Chroot(".git")
	if err != nil {
		return nil, fmt.Errorf("failed to access .git directory: %w", err)
	}

	storage := fsbridge.NewStorage(dotGitFS, opts.StorerCacheSize)

	repo, err := construct(storage, scopedFS)
	if err != nil {
		return nil, err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, WrapError(err, "failed to get worktree")
	}

	return &Repo{
		repo:     repo,
		worktree: worktree,
		fs:       opts.FS,
		options:  *opts,
	}, nil
}

// Init creates a new non-bare git repository at the specified location.
func Init(ctx context.Context, opts *Options) (*Repo, error) {
	return open(opts, func(s *filesystem.Storage, wt gobilly.Filesystem) (*git.Repository, error) {
		repo, err := git.Init(s, wt)
		if err != nil {
			return nil, WrapError(err, "failed to initialize repository")
		}
		return repo, nil
	})
}

// Open discovers and opens an existing git repository.
// The repository must already exist at the specified workdir within the
// filesystem; both the .git directory and the worktree must be present.
func Open(ctx context.Context, opts *Options) (*Repo, error) {
	return open(opts, func(s *filesystem.Storage, wt gobilly.Filesystem) (*git.Repository, error) {
		repo, err := git.Open(s, wt)
		if err != nil {
			return nil, WrapError(err, "failed to open repository")
		}
		return repo, nil
	})
}
