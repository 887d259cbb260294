package executor

import (
	"bytes"
	"context"
	"io"
	"os/exec"
)

// ProcessRunner launches plugin processes. The executor goes through it for
// every JSON-stdio call so tests can substitute a mock.
type ProcessRunner interface {
	// Run executes path with args, feeding stdin, and returns what the
	// process wrote to stdout and stderr.
	Run(ctx context.Context, path string, args []string, stdin io.Reader) (stdout, stderr []byte, err error)
}

// RealProcessRunner implements ProcessRunner using os/exec.
type RealProcessRunner struct{}

// NewRealProcessRunner creates a new real process runner.
func NewRealProcessRunner() *RealProcessRunner {
	return &RealProcessRunner{}
}

// Run executes a real external process. The process is killed when ctx ends.
func (r *RealProcessRunner) Run(ctx context.Context, path string, args []string, stdin io.Reader) ([]byte, []byte, error) {
	// #nosec G204 -- path comes from the user's plugin configuration
	cmd := exec.CommandContext(ctx, path, args...)
	if stdin != nil {
		cmd.Stdin = stdin
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
