package agenda

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

var (
	// ErrEngineUnavailable means the engine binary could not be found.
	ErrEngineUnavailable = errors.New("outline engine unavailable")

	// ErrEngineTimeout means the engine ran past its deadline.
	ErrEngineTimeout = errors.New("outline engine timed out")
)

// Engine runs commands against an external outline-processing engine and
// returns their textual output. The canonical implementation drives emacs
// org-mode in batch mode.
type Engine interface {
	Run(ctx context.Context, command string) (string, error)
}

// EmacsEngine invokes emacs in batch mode with org loaded. argv is built
// directly; no shell is ever involved.
type EmacsEngine struct {
	binary  string
	timeout time.Duration
}

// NewEmacsEngine creates an engine for the given binary and per-invocation
// timeout.
func NewEmacsEngine(binary string, timeout time.Duration) *EmacsEngine {
	return &EmacsEngine{binary: binary, timeout: timeout}
}

// Run evaluates one org command and returns the resulting buffer text.
// Failures come back as structured errors the caller can inspect; they are
// never folded into the output string.
func (e *EmacsEngine) Run(ctx context.Context, command string) (string, error) {
	execCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	eval := fmt.Sprintf("(progn (require 'org) %s (princ (buffer-string)))", command)
	cmd := exec.CommandContext(execCtx, e.binary, "--batch", "--eval", eval)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if execCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w after %s", ErrEngineTimeout, e.timeout)
		}
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s not found", ErrEngineUnavailable, e.binary)
		}
		if stderr.Len() > 0 {
			return "", fmt.Errorf("engine failed: %s", stderr.String())
		}
		return "", fmt.Errorf("engine failed: %w", err)
	}

	return stdout.String(), nil
}
