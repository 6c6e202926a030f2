package console

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture redirects console output into a buffer for one test.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		SetVerbose(false)
	})

	return &buf
}

func TestLevels(t *testing.T) {
	buf := capture(t)

	Info("fetching %s", "origin")
	Success("%s: synced", "develop")
	Warning("conflict in %s", "config.yaml")
	ErrorPrint("push failed: %v", "rejected")

	output := buf.String()
	assert.Contains(t, output, "fetching origin")
	assert.Contains(t, output, "develop: synced")
	assert.Contains(t, output, "conflict in config.yaml")
	assert.Contains(t, output, "push failed: rejected")
}

func TestVerboseGate(t *testing.T) {
	buf := capture(t)

	Verbose("hidden detail")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Verbose("visible detail")
	assert.Contains(t, buf.String(), "visible detail")
}

func TestBanner(t *testing.T) {
	buf := capture(t)

	Banner("syncing %d branch(es)", 3)
	assert.Contains(t, buf.String(), "==> syncing 3 branch(es)")
}
