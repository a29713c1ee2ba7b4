// Package errors renders command failures for the terminal.
package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/taskflow/internal/logger"
	"github.com/julianstephens/taskflow/internal/storage"
)

var hints = []struct {
	target error
	hint   string
}{
	{storage.ErrNotInitialized, "run 'taskflow init' to create the database"},
	{storage.ErrNotFound, "run 'taskflow habit list' or 'taskflow task list' to see valid IDs"},
}

// Hint returns a follow-up suggestion for well-known errors, or "".
func Hint(err error) string {
	for _, h := range hints {
		if stderrors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

// Formatf is Format for a message without an underlying error.
func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// Fatal logs err, prints it to stderr and exits with code 1. A nil err is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(stderr, Format(err))
	exit(1)
}

func Fatalf(format string, args ...any) {
	logger.Error("Command execution failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintln(stderr, Formatf(format, args...))
	exit(1)
}
