package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/branchops/branchsync/vcs"
)

// fakeBackend is an in-memory Backend that records every operation so the
// tests can assert both outcomes and which operations ran.
type fakeBackend struct {
	dirty          bool
	fetchErr       error
	current        string
	localBranches  map[string]bool
	remotes        map[string]bool
	remoteBranches map[string][]string

	// deficits is keyed by the target revision the orchestrator asks about
	// (the local branch name, or "<remote>/<branch>" when no local exists).
	deficits map[string][]vcs.Commit

	pickResults map[string]*vcs.PickResult
	pickErrs    map[string]error
	pushErrs    map[string]error

	calls []string
}

// newFakeBackend builds a clean repository on "main" with an "origin"
// remote configured.
func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		current:        "main",
		localBranches:  map[string]bool{"main": true},
		remotes:        map[string]bool{"origin": true},
		remoteBranches: map[string][]string{},
		deficits:       map[string][]vcs.Commit{},
		pickResults:    map[string]*vcs.PickResult{},
		pickErrs:       map[string]error{},
		pushErrs:       map[string]error{},
	}
}

func (f *fakeBackend) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

// called reports whether any recorded call starts with the given prefix.
func (f *fakeBackend) called(prefix string) bool {
	for _, call := range f.calls {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}

// callsWith returns the recorded calls starting with the given prefix.
func (f *fakeBackend) callsWith(prefix string) []string {
	var matched []string
	for _, call := range f.calls {
		if strings.HasPrefix(call, prefix) {
			matched = append(matched, call)
		}
	}
	return matched
}

func (f *fakeBackend) IsClean(ctx context.Context) (bool, error) {
	f.record("IsClean")
	return !f.dirty, nil
}

func (f *fakeBackend) CurrentBranch(ctx context.Context) (string, error) {
	f.record("CurrentBranch")
	return f.current, nil
}

func (f *fakeBackend) BranchExists(ctx context.Context, name string) (bool, error) {
	f.record("BranchExists %s", name)
	return f.localBranches[name], nil
}

func (f *fakeBackend) HasRemote(ctx context.Context, remote string) (bool, error) {
	f.record("HasRemote %s", remote)
	return f.remotes[remote], nil
}

func (f *fakeBackend) HasRemoteBranch(ctx context.Context, remote, name string) (bool, error) {
	f.record("HasRemoteBranch %s %s", remote, name)
	for _, b := range f.remoteBranches[remote] {
		if b == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBackend) RemoteBranches(ctx context.Context, remote string) ([]string, error) {
	f.record("RemoteBranches %s", remote)
	return f.remoteBranches[remote], nil
}

func (f *fakeBackend) Fetch(ctx context.Context, remote string) error {
	f.record("Fetch %s", remote)
	return f.fetchErr
}

func (f *fakeBackend) Tip(ctx context.Context, rev string) (string, error) {
	f.record("Tip %s", rev)
	return "tip-of-" + rev, nil
}

func (f *fakeBackend) Deficit(ctx context.Context, sourceRev, targetRev string) ([]vcs.Commit, error) {
	f.record("Deficit %s %s", sourceRev, targetRev)
	return f.deficits[targetRev], nil
}

func (f *fakeBackend) CheckoutBranch(ctx context.Context, name string) error {
	f.record("CheckoutBranch %s", name)
	if !f.localBranches[name] {
		return vcs.ErrBranchMissing
	}
	f.current = name
	return nil
}

func (f *fakeBackend) CheckoutTracking(ctx context.Context, remote, name string) error {
	f.record("CheckoutTracking %s %s", remote, name)
	f.localBranches[name] = true
	f.current = name
	return nil
}

func (f *fakeBackend) CreateBranchAt(ctx context.Context, name, startRev string) error {
	f.record("CreateBranchAt %s %s", name, startRev)
	f.localBranches[name] = true
	f.current = name
	return nil
}

func (f *fakeBackend) Pick(ctx context.Context, c vcs.Commit, opts vcs.PickOpts) (*vcs.PickResult, error) {
	f.record("Pick %s %s", f.current, c.Hash)
	if err := f.pickErrs[c.Hash]; err != nil {
		return nil, err
	}
	if result, ok := f.pickResults[c.Hash]; ok {
		return result, nil
	}
	return &vcs.PickResult{Hash: "replayed-" + c.Hash, Applied: []string{"file.txt"}}, nil
}

func (f *fakeBackend) Push(ctx context.Context, remote string, branches []string) error {
	f.record("Push %s %s", remote, strings.Join(branches, ","))
	for _, b := range branches {
		if err := f.pushErrs[b]; err != nil {
			return err
		}
	}
	return nil
}

var _ Backend = (*fakeBackend)(nil)
