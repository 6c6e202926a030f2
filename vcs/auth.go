// Package vcs provides a narrow facade over go-git for branch synchronization.
// This file wires the auth providers into the public API.
package vcs

import (
	"github.com/branchops/branchsync/vcs/internal/auth"
)

// NewTokenAuth returns an AuthProvider that presents the given access token
// for HTTPS remotes. Non-HTTPS remotes receive no credentials.
//
//nolint:ireturn // constructor intentionally returns the AuthProvider interface
func NewTokenAuth(token string) AuthProvider {
	return auth.NewTokenProvider(token)
}
