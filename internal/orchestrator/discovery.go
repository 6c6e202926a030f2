package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// discoverTargets produces the target branch set for this run.
//
// Explicit mode uses exactly the caller-supplied list, whether or not the
// branches exist anywhere yet. Auto mode enumerates the remote's branches.
// The source branch is never a target.
func (r *Runner) discoverTargets(ctx context.Context) ([]string, error) {
	if len(r.opts.Branches) > 0 {
		names := lo.FilterMap(r.opts.Branches, func(name string, _ int) (string, bool) {
			trimmed := strings.TrimSpace(name)
			return trimmed, trimmed != "" && trimmed != r.opts.Source
		})
		return lo.Uniq(names), nil
	}

	remote, err := r.backend.RemoteBranches(ctx, r.opts.Remote)
	if err != nil {
		return nil, fmt.Errorf("failed to list remote branches: %w", err)
	}

	return lo.Filter(remote, func(name string, _ int) bool {
		return name != r.opts.Source
	}), nil
}
