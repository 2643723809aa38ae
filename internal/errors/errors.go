package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/tracklit/internal/logger"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrAlreadyRunning    = errors.New("timer already running")
	ErrNotRunning        = errors.New("timer not running")
	ErrWrongActivityType = errors.New("wrong activity type")
)

// Is, As and New re-export the standard helpers so callers need only one errors import
var (
	Is  = errors.Is
	As  = errors.As
	New = errors.New
)

// NotFound wraps ErrNotFound with the kind and identifier that was missing
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

// Invalid wraps ErrInvalidInput with a formatted reason
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// ExitCode maps an error to a process exit status. Input errors exit 2.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrWrongActivityType):
		return 2
	default:
		return 1
	}
}

// Fatal logs an error and exits with ExitCode(err)
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(ExitCode(err))
	}
}

// Fatalf logs and formats an error message, then exits with status 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
