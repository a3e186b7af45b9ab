// Package runner executes a compiled program against fixture pairs one at
// a time and classifies each outcome.
package runner

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"martianoff/lama/internal/content"
	"martianoff/lama/internal/judge"
)

// Channel is the file pair shared between the harness and the program.
type Channel interface {
	Stage(inputPath string) error
	OutputExists() (bool, error)
	Output() string
	Reset() error
}

// Executor runs the compiled program once.
type Executor interface {
	Execute(ctx context.Context, binary string) (Execution, error)
}

// Runner runs test cases sequentially through a single Channel.
type Runner struct {
	channel  Channel
	executor Executor
	logger   *zap.Logger
}

// New constructs a Runner.
func New(channel Channel, executor Executor, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{channel: channel, executor: executor, logger: logger}
}

// Run executes every test in order. onResult, when non-nil, is invoked
// after each test. If ctx is cancelled, or the channel cannot be cleared
// after a test, Run stops and returns the results collected so far
// together with the error.
func (r *Runner) Run(ctx context.Context, binary string, tests []judge.TestCase, onResult func(judge.TestResult)) ([]judge.TestResult, error) {
	results := make([]judge.TestResult, 0, len(tests))

	for _, tc := range tests {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result, resetErr := r.RunTest(ctx, binary, tc)
		if err := ctx.Err(); err != nil {
			return results, err
		}

		results = append(results, result)
		if onResult != nil {
			onResult(result)
		}
		if resetErr != nil {
			return results, resetErr
		}
	}

	return results, nil
}

// RunTest stages the test input, executes binary and compares its output.
// Both channel files are removed before RunTest returns; the error is
// non-nil only when that removal fails.
func (r *Runner) RunTest(ctx context.Context, binary string, tc judge.TestCase) (judge.TestResult, error) {
	result := r.runTest(ctx, binary, tc)
	if err := r.channel.Reset(); err != nil {
		return result, fmt.Errorf("resetting channel after test %d: %w", tc.Ordinal, err)
	}
	return result, nil
}

func (r *Runner) runTest(ctx context.Context, binary string, tc judge.TestCase) judge.TestResult {
	log := r.logger.With(zap.Int("test", tc.Ordinal))
	result := judge.TestResult{Case: tc}

	if err := r.channel.Stage(tc.InputPath); err != nil {
		return execError(result, err)
	}

	run, err := r.executor.Execute(ctx, binary)
	result.Duration = run.Duration
	if err != nil {
		return execError(result, err)
	}
	log.Debug("executed",
		zap.Int("exit_code", run.ExitCode),
		zap.Bool("timed_out", run.TimedOut),
		zap.Duration("duration", run.Duration))

	if run.TimedOut {
		result.Status = judge.StatusTimeout
		result.Timeout = run.Limit
		return result
	}

	if run.ExitCode != 0 {
		result.Status = judge.StatusNonZeroExit
		result.ExitCode = run.ExitCode
		return result
	}

	exists, err := r.channel.OutputExists()
	if err != nil {
		return execError(result, fmt.Errorf("checking output: %w", err))
	}
	if !exists {
		result.Status = judge.StatusNoOutput
		return result
	}

	equal, err := content.Equal(r.channel.Output(), tc.ExpectedOutputPath)
	if err != nil {
		return execError(result, fmt.Errorf("comparing output: %w", err))
	}
	if equal {
		result.Status = judge.StatusPassed
	} else {
		result.Status = judge.StatusMismatch
	}
	return result
}

func execError(result judge.TestResult, err error) judge.TestResult {
	result.Status = judge.StatusExecError
	result.Err = err
	return result
}
