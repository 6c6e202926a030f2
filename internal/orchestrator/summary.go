package orchestrator

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leodido/go-conventionalcommits"
	"github.com/leodido/go-conventionalcommits/parser"
)

// Summary is the final record of a sync run: one result per processed
// target branch, in discovery order.
type Summary struct {
	// Source is the branch commits were replayed from.
	Source string

	// SourceTip is the commit hash the source branch pointed at during
	// the run.
	SourceTip string

	// Results holds the per-branch outcomes.
	Results []*BranchResult

	// DryRun reports whether the run mutated anything.
	DryRun bool
}

// HasFailures reports whether any branch failed replay or push. It drives
// the process exit code: a run with failures exits non-zero even when the
// other branches were published.
func (s *Summary) HasFailures() bool {
	for _, result := range s.Results {
		if result.Status == StatusFailed || result.PushErr != nil {
			return true
		}
	}
	return false
}

// Counts returns the number of branches per terminal bucket.
func (s *Summary) Counts() (synced, upToDate, created, failed int) {
	for _, result := range s.Results {
		switch result.Status {
		case StatusSynced, StatusConflictResolved:
			synced++
		case StatusUpToDate:
			upToDate++
		case StatusCreated:
			created++
		case StatusFailed:
			failed++
		}
	}
	return synced, upToDate, created, failed
}

// Render writes the per-branch table and the closing counts.
func (s *Summary) Render(w io.Writer) {
	if s.SourceTip != "" {
		fmt.Fprintf(w, "source: %s @ %.8s\n", s.Source, s.SourceTip)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"BRANCH", "STATUS", "REPLAYED", "CONFLICTS", "DETAIL"})

	for _, result := range s.Results {
		detail := result.Note
		switch {
		case result.Status == StatusFailed && result.Err != nil:
			detail = result.Err.Error()
			if result.FailedCommit != "" {
				detail = fmt.Sprintf("at %.8s: %v", result.FailedCommit, result.Err)
			}
		case result.PushErr != nil:
			detail = fmt.Sprintf("push failed: %v", result.PushErr)
		case result.Status == StatusPending:
			detail = fmt.Sprintf("%d commit(s) to replay", len(result.Deficit))
		}

		t.AppendRow(table.Row{
			result.Branch,
			result.Status.String(),
			len(result.Replayed),
			result.conflictCount(),
			detail,
		})
	}

	t.AppendSeparator()
	t.Render()

	synced, upToDate, created, failed := s.Counts()
	label := "sync complete"
	if s.DryRun {
		label = "dry run"
	}
	fmt.Fprintf(w, "%s: %d synced, %d up to date, %d created, %d failed\n",
		label, synced, upToDate, created, failed)

	s.renderCommitKinds(w)
}

// renderCommitKinds prints the conventional-commit breakdown of the
// replayed commits. The repository this tool ships with mandates
// conventional commit messages, so drift is worth surfacing in the sync
// log.
func (s *Summary) renderCommitKinds(w io.Writer) {
	kinds, plain := s.classifyReplayed()
	if len(kinds) == 0 && len(plain) == 0 {
		return
	}

	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(w, "  %s: %d\n", name, kinds[name])
	}

	for _, subject := range plain {
		fmt.Fprintf(w, "  not conventional: %q\n", subject)
	}
}

// classifyReplayed buckets replayed commit subjects by conventional-commit
// type and collects the subjects that do not parse as conventional.
func (s *Summary) classifyReplayed() (map[string]int, []string) {
	machine := parser.NewMachine(conventionalcommits.WithTypes(conventionalcommits.TypesConventional))

	kinds := map[string]int{}
	var plain []string

	for _, result := range s.Results {
		for _, rc := range result.Replayed {
			msg, err := machine.Parse([]byte(rc.Source.Subject))
			if err != nil {
				plain = append(plain, rc.Source.Subject)
				continue
			}
			if cc, ok := msg.(*conventionalcommits.ConventionalCommit); ok {
				kinds[cc.Type]++
			}
		}
	}

	return kinds, plain
}
