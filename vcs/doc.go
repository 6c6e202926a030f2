// Package vcs is a narrow, task-oriented facade over go-git for the
// branch synchronization workflow. It exposes exactly the operations the
// sync orchestrator consumes: worktree cleanliness, branch and remote ref
// queries, fetch, deficit computation between two tips, replaying a single
// commit onto the active branch, and refspec pushes.
//
// The package operates exclusively through the fs.Filesystem abstraction,
// so every operation works identically against an on-disk repository and
// an in-memory one. Tests construct real repositories over the in-memory
// filesystem instead of mocking go-git.
//
// All failures are classified with sentinel errors that can be checked
// using errors.Is().
package vcs
