package executor

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"
)

// MockProcessRunner is a mock implementation of ProcessRunner for testing.
type MockProcessRunner struct {
	// RunFunc allows tests to provide custom behavior.
	RunFunc func(ctx context.Context, path string, args []string, stdin []byte) (stdout, stderr []byte, err error)

	// Delay simulates slow process execution.
	Delay time.Duration

	// ShouldTimeout blocks until the context is cancelled.
	ShouldTimeout bool

	mu        sync.Mutex
	callCount int
	lastPath  string
	lastArgs  []string
	lastStdin []byte
}

// Run executes the mock behavior.
func (m *MockProcessRunner) Run(ctx context.Context, path string, args []string, stdin io.Reader) ([]byte, []byte, error) {
	var input []byte
	if stdin != nil {
		var err error
		if input, err = io.ReadAll(stdin); err != nil {
			return nil, nil, err
		}
	}

	m.mu.Lock()
	m.callCount++
	m.lastPath = path
	m.lastArgs = args
	m.lastStdin = input
	m.mu.Unlock()

	if m.ShouldTimeout {
		<-ctx.Done()
		return nil, nil, ctx.Err()
	}

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}

	if m.RunFunc != nil {
		return m.RunFunc(ctx, path, args, input)
	}

	return []byte("{}"), nil, nil
}

// CallCount returns how many times Run was called.
func (m *MockProcessRunner) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastCall returns the path, args and stdin of the most recent Run.
func (m *MockProcessRunner) LastCall() (path string, args []string, stdin []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastPath, m.lastArgs, m.lastStdin
}

// NewMockProcessRunner creates a new mock process runner.
func NewMockProcessRunner() *MockProcessRunner {
	return &MockProcessRunner{}
}

// NewPluginMockProcessRunner creates a mock that answers --plugin-info with
// info and every other call with stdout.
func NewPluginMockProcessRunner(info string, stdout []byte) *MockProcessRunner {
	return &MockProcessRunner{
		RunFunc: func(_ context.Context, _ string, args []string, _ []byte) ([]byte, []byte, error) {
			if len(args) > 0 && args[0] == "--plugin-info" {
				return []byte(info), nil, nil
			}
			return stdout, nil, nil
		},
	}
}

// NewErrorMockProcessRunner creates a mock that fails every call after
// answering --plugin-info with info.
func NewErrorMockProcessRunner(info, errMsg string) *MockProcessRunner {
	return &MockProcessRunner{
		RunFunc: func(_ context.Context, _ string, args []string, _ []byte) ([]byte, []byte, error) {
			if len(args) > 0 && args[0] == "--plugin-info" {
				return []byte(info), nil, nil
			}
			return nil, []byte(errMsg), errors.New("exit status 2")
		},
	}
}
