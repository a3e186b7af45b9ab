package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"syscall"
	"time"
)

// DefaultTimeout is the wall-clock limit for one execution.
const DefaultTimeout = 5 * time.Second

// waitDelay bounds how long Wait blocks on I/O after the process is killed.
const waitDelay = time.Second

// Execution describes how a single process run ended.
type Execution struct {
	ExitCode int
	TimedOut bool
	// Limit is the timeout that applied to the run.
	Limit    time.Duration
	Duration time.Duration
}

// ProcessExecutor runs the compiled binary as a child process.
type ProcessExecutor struct {
	// Dir is the child's working directory, where the channel files live.
	Dir string
	// Stderr receives the child's standard error. Nil discards it.
	// Standard output is always discarded.
	Stderr io.Writer
	// Timeout is the wall-clock limit. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Execute runs binary and waits for it to finish or time out. A timed out
// process is killed. The returned error is non-nil only when the process
// could not be run or ctx itself was cancelled.
func (e *ProcessExecutor) Execute(ctx context.Context, binary string) (Execution, error) {
	limit := e.Timeout
	if limit <= 0 {
		limit = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()

	cmd := exec.CommandContext(runCtx, binary)
	cmd.Dir = e.Dir
	cmd.Stderr = e.Stderr
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err := cmd.Run()
	result := Execution{Limit: limit, Duration: time.Since(start)}

	if err == nil {
		return result, nil
	}
	if ctx.Err() != nil {
		return result, ctx.Err()
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitCode(exitErr)
		return result, nil
	}
	return result, fmt.Errorf("running %s: %w", binary, err)
}

// exitCode returns the process exit status, or the negated signal number
// when the process was killed by a signal.
func exitCode(err *exec.ExitError) int {
	if ws, ok := err.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return -int(ws.Signal())
	}
	return err.ExitCode()
}
