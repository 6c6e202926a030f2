package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	assert.Equal(t, "branchsync", cmd.Use)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "sync")
	assert.Contains(t, names, "scaffold")
	assert.Contains(t, names, "version")

	flag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, flag)
	assert.Equal(t, "v", flag.Shorthand)
}

func TestSyncCommandFlags(t *testing.T) {
	cmd := NewSyncCommand(&RootOptions{})

	for _, name := range []string{"dry-run", "no-push", "branches", "source", "remote", "conflicts"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %s", name)
	}

	// sync takes no positional arguments.
	assert.Error(t, cmd.Args(cmd, []string{"unexpected"}))
}

func TestScaffoldCommandArgs(t *testing.T) {
	cmd := NewScaffoldCommand(&RootOptions{})

	assert.Error(t, cmd.Args(cmd, nil))
	assert.NoError(t, cmd.Args(cmd, []string{"myapp"}))
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.Run(cmd, nil)

	assert.Contains(t, buf.String(), "branchsync "+Version)
}
