package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusPending, "pending"},
		{StatusUpToDate, "up-to-date"},
		{StatusSynced, "synced"},
		{StatusConflictResolved, "conflict-resolved"},
		{StatusCreated, "created"},
		{StatusFailed, "failed"},
		{Status(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
		})
	}
}

func TestBranchResultMutated(t *testing.T) {
	assert.True(t, (&BranchResult{Status: StatusSynced}).mutated())
	assert.True(t, (&BranchResult{Status: StatusConflictResolved}).mutated())
	assert.True(t, (&BranchResult{Status: StatusCreated}).mutated())
	assert.False(t, (&BranchResult{Status: StatusUpToDate}).mutated())
	assert.False(t, (&BranchResult{Status: StatusPending}).mutated())
	assert.False(t, (&BranchResult{Status: StatusFailed}).mutated())
}

func TestBranchResultConflictCount(t *testing.T) {
	result := &BranchResult{Replayed: []ReplayedCommit{
		{Conflicts: []string{"a.txt", "b.txt"}},
		{},
		{Conflicts: []string{"c.txt"}},
	}}
	assert.Equal(t, 3, result.conflictCount())

	assert.Zero(t, (&BranchResult{}).conflictCount())
}
