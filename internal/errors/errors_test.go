package errors

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "simple error", err: New("something went wrong"), expected: "Error: something went wrong"},
		{name: "wrapped sentinel", err: NotFound("activity", "abc"), expected: `Error: activity "abc": not found`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, got, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	if got := Formatf("failed to load %s", "store"); got != "Error: failed to load store" {
		t.Errorf("Formatf() = %q", got)
	}
}

func TestSentinelWrapping(t *testing.T) {
	if !Is(NotFound("goal", "g1"), ErrNotFound) {
		t.Errorf("NotFound() should wrap ErrNotFound")
	}
	err := Invalid("target must be positive, got %d", -1)
	if !Is(err, ErrInvalidInput) {
		t.Errorf("Invalid() should wrap ErrInvalidInput")
	}
	if !strings.Contains(err.Error(), "got -1") {
		t.Errorf("Invalid() message = %q", err.Error())
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: nil, want: 0},
		{err: Invalid("bad"), want: 2},
		{err: fmt.Errorf("start: %w", ErrWrongActivityType), want: 2},
		{err: ErrAlreadyRunning, want: 1},
		{err: New("boom"), want: 1},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

// TestFatal runs Fatal in a subprocess and checks its exit status and stderr
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(Invalid("no such period"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	e, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("Fatal() did not exit with error: %v", err)
	}
	if e.ExitCode() != 2 {
		t.Errorf("Fatal() exit code = %d, want 2", e.ExitCode())
	}
	if !strings.Contains(stderr.String(), "Error: invalid input: no such period") {
		t.Errorf("Fatal() stderr = %q", stderr.String())
	}
}

func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")
	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}

func TestFatalf(t *testing.T) {
	if os.Getenv("GO_TEST_FATALF") == "1" {
		Fatalf("connection to %s:%d failed", "localhost", 5432)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatalf")
	cmd.Env = append(os.Environ(), "GO_TEST_FATALF=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	e, ok := err.(*exec.ExitError)
	if !ok || e.ExitCode() != 1 {
		t.Fatalf("Fatalf() exit = %v, want status 1", err)
	}
	if !strings.Contains(stderr.String(), "Error: connection to localhost:5432 failed") {
		t.Errorf("Fatalf() stderr = %q", stderr.String())
	}
}
