// Package fsbridge adapts the fs.Filesystem abstraction to what go-git
// consumes: a billy.Filesystem plus a filesystem-backed object storage.
package fsbridge

import (
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
	fsb "github.com/input-output-hk/catalyst-forge-libs/fs/billy"
)

// ToBillyFilesystem converts an fs.Filesystem to a billy.Filesystem.
// The passed filesystem must be a billy-backed FS from the fs/billy
// package; anything else cannot host a git repository.
//
//nolint:ireturn // returns interface as required by billy.Filesystem consumers
func ToBillyFilesystem(fsys fs.Filesystem) (billy.Filesystem, error) {
	billyFS, ok := fsys.(*fsb.FS)
	if !ok {
		return nil, fmt.Errorf("filesystem must be a billy-backed FS from fs/billy, got %T", fsys)
	}

	return billyFS.Raw(), nil
}

// NewStorage creates a git object storage over the given filesystem with an
// LRU object cache of the given size.
func NewStorage(billyFS billy.Filesystem, cacheSize int) *filesystem.Storage {
	if cacheSize <= 0 {
		cacheSize = 100
	}

	objCache := cache.NewObjectLRU(cache.FileSize(cacheSize))
	return filesystem.NewStorage(billyFS, objCache)
}
