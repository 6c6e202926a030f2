// Package console provides the colored progress log for the CLI: leveled
// message helpers, section banners, and a verbose gate.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/TwiN/go-color"
)

var (
	out     io.Writer = os.Stdout
	verbose bool
)

// SetOutput redirects console output. Tests point it at a buffer or discard.
func SetOutput(w io.Writer) {
	out = w
}

// Output returns the current console writer.
//
//nolint:ireturn // accessor returns the configured io.Writer
func Output() io.Writer {
	return out
}

// SetVerbose toggles verbose diagnostics.
func SetVerbose(v bool) {
	verbose = v
}

// Verbose logs a step-by-step diagnostic. Printed only in verbose mode.
func Verbose(message string, vars ...any) {
	if !verbose {
		return
	}
	fmt.Fprintf(out, color.Ize(color.Gray, message+"\n"), vars...)
}

// Info logs an informational message.
func Info(message string, vars ...any) {
	fmt.Fprintf(out, color.Ize(color.Cyan, message+"\n"), vars...)
}

// Success logs a success message.
func Success(message string, vars ...any) {
	fmt.Fprintf(out, color.Ize(color.Green, message+"\n"), vars...)
}

// Warning logs a warning message.
func Warning(message string, vars ...any) {
	fmt.Fprintf(out, color.Ize(color.Yellow, message+"\n"), vars...)
}

// ErrorPrint logs an error message.
func ErrorPrint(message string, vars ...any) {
	fmt.Fprintf(out, color.Ize(color.Red, message+"\n"), vars...)
}

// Banner prints a section header separating the run's phases.
func Banner(message string, vars ...any) {
	fmt.Fprintf(out, color.Ize(color.Bold, "\n==> "+message+"\n"), vars...)
}
