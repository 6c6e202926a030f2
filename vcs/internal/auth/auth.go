// Package auth provides authentication helpers for remote operations.
// The sync CLI authenticates with an access token over HTTPS; this package
// wraps go-git's basic auth with scheme and host checks.
package auth

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

// TokenProvider resolves HTTPS token authentication for matching remotes.
// Most git providers (GitHub, GitLab, Bitbucket) accept the token as the
// basic-auth password.
type TokenProvider struct {
	auth *http.BasicAuth

	// AllowedHosts restricts authentication to specific host patterns.
	// If empty, authentication is offered for all HTTPS URLs.
	// Supports a single "*" wildcard, e.g. "*.github.com".
	AllowedHosts []string
}

// NewTokenProvider creates a provider that presents the given token.
func NewTokenProvider(token string) *TokenProvider {
	return &TokenProvider{
		auth: &http.BasicAuth{
			Username: "token", // some providers require a non-empty username
			Password: token,
		},
	}
}

// WithAllowedHosts restricts the provider to remotes on matching hosts.
func (p *TokenProvider) WithAllowedHosts(hosts ...string) *TokenProvider {
	p.AllowedHosts = hosts
	return p
}

// Method returns the authentication method for the given remote URL.
// Non-HTTPS URLs and restricted hosts get no credentials.
//
//nolint:ireturn // go-git requires returning transport.AuthMethod interface
func (p *TokenProvider) Method(remoteURL string) (transport.AuthMethod, error) {
	parsedURL, err := url.Parse(remoteURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	if parsedURL.Scheme != "https" {
		return nil, nil
	}

	if len(p.AllowedHosts) > 0 && !p.isHostAllowed(parsedURL.Host) {
		return nil, nil
	}

	return p.auth, nil
}

// isHostAllowed checks the host against the configured patterns.
func (p *TokenProvider) isHostAllowed(host string) bool {
	for _, pattern := range p.AllowedHosts {
		if matchesPattern(host, pattern) {
			return true
		}
	}
	return false
}

// matchesPattern checks if a host matches a pattern with one "*" wildcard.
func matchesPattern(host, pattern string) bool {
	if host == pattern {
		return true
	}

	if strings.Count(pattern, "*") != 1 {
		return false
	}

	if strings.HasPrefix(pattern, "*.") {
		suffix := strings.TrimPrefix(pattern, "*.")
		return strings.HasSuffix(host, suffix) || host == suffix
	}

	if strings.HasSuffix(pattern, ".*") {
		prefix := strings.TrimSuffix(pattern, ".*")
		return strings.HasPrefix(host, prefix+".")
	}

	return false
}
