package discovery

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// Runner executes an external command in dir and returns its stdout.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// OSRunner implements Runner with os/exec.
type OSRunner struct{}

// NewOSRunner creates a new OSRunner
func NewOSRunner() *OSRunner {
	return &OSRunner{}
}

func (r *OSRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg != "" {
			return nil, fmt.Errorf("%s %s failed: %w: %s", name, strings.Join(args, " "), err, errMsg)
		}
		return nil, fmt.Errorf("%s %s failed: %w", name, strings.Join(args, " "), err)
	}

	return stdout.Bytes(), nil
}

// MockRunner implements Runner for tests.
type MockRunner struct {
	mu    sync.Mutex
	calls [][]string

	// Output is returned when Hook is nil
	Output []byte

	// Err is returned when Hook is nil
	Err error

	// Hook, when set, decides the result of each call
	Hook func(ctx context.Context, call int) ([]byte, error)
}

// NewMockRunner creates a MockRunner that returns output.
func NewMockRunner(output string) *MockRunner {
	return &MockRunner{Output: []byte(output)}
}

func (r *MockRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	r.mu.Lock()
	r.calls = append(r.calls, append([]string{dir, name}, args...))
	call := len(r.calls)
	hook := r.Hook
	r.mu.Unlock()

	if hook != nil {
		return hook(ctx, call)
	}
	return r.Output, r.Err
}

// Calls returns every recorded invocation as {dir, name, args...}.
func (r *MockRunner) Calls() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([][]string, len(r.calls))
	copy(out, r.calls)
	return out
}
