// Package evaluate runs a full evaluation: discover fixtures, compile the
// program once, run every test through the channel files and report.
package evaluate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"martianoff/lama/internal/build"
	"martianoff/lama/internal/channel"
	"martianoff/lama/internal/fixture"
	"martianoff/lama/internal/judge"
	"martianoff/lama/internal/report"
	"martianoff/lama/internal/runner"
	"martianoff/lama/lamaerr"
)

// Compiler builds the program under test.
type Compiler interface {
	Compile(ctx context.Context, source string) (*build.Program, error)
}

// Options describes one evaluation.
type Options struct {
	// Source is the single source file of the program under test.
	Source string
	// TestDir is a local directory of input.K / output.K pairs.
	TestDir string
	// Workdir holds the channel files and is the program's working
	// directory. Defaults to the current directory.
	Workdir string
	// Timeout limits each execution. Zero means runner.DefaultTimeout.
	Timeout time.Duration
	// ProgramStderr receives the program's standard error. Nil discards it.
	ProgramStderr io.Writer
}

// Outcome is the result of a completed evaluation.
type Outcome struct {
	Results []judge.TestResult
	Summary judge.Summary
}

// Evaluator wires the compiler, channel, runner and reporter together.
type Evaluator struct {
	compiler Compiler
	reporter *report.Reporter
	logger   *zap.Logger
}

// New constructs an Evaluator.
func New(compiler Compiler, reporter *report.Reporter, logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{compiler: compiler, reporter: reporter, logger: logger}
}

// ProgramName derives the channel file base name from the directory that
// contains source.
func ProgramName(source string) (string, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", err
	}
	return filepath.Base(filepath.Dir(abs)), nil
}

// ValidateSource checks that source is a regular file.
func ValidateSource(source string) error {
	if info, err := os.Stat(source); err != nil || !info.Mode().IsRegular() {
		return lamaerr.NewInvalidArguments("invalid source file or test directory")
	}
	return nil
}

// Validate checks that source is a file and testDir a directory.
func Validate(source, testDir string) error {
	if err := ValidateSource(source); err != nil {
		return err
	}
	if info, err := os.Stat(testDir); err != nil || !info.IsDir() {
		return lamaerr.NewInvalidArguments("invalid source file or test directory")
	}
	return nil
}

// Evaluate runs the evaluation described by opts.
//
// Compilation happens only after at least one test was discovered. Once
// compilation succeeds the original channel files are backed up and
// cleared. The backups and the compiled binary are released when Evaluate
// returns, whether it completes, fails or is interrupted.
func (e *Evaluator) Evaluate(ctx context.Context, opts Options) (*Outcome, error) {
	if err := Validate(opts.Source, opts.TestDir); err != nil {
		return nil, err
	}

	name, err := ProgramName(opts.Source)
	if err != nil {
		return nil, lamaerr.NewInvalidArguments(fmt.Sprintf("resolving source path: %v", err))
	}

	workdir := opts.Workdir
	if workdir == "" {
		if workdir, err = os.Getwd(); err != nil {
			return nil, lamaerr.NewInvalidArguments(fmt.Sprintf("resolving working directory: %v", err))
		}
	}

	tests, err := fixture.Discover(opts.TestDir)
	if err != nil {
		return nil, err
	}
	e.reporter.SetOrdinalWidth(fixture.MaxOrdinalWidth(tests))
	e.logger.Debug("discovered tests", zap.Int("count", len(tests)), zap.String("dir", opts.TestDir))

	program, err := e.compiler.Compile(ctx, opts.Source)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := program.Remove(); err != nil {
			e.logger.Warn("failed to remove compiled binary", zap.Error(err))
		}
	}()

	ch := channel.ForProgram(workdir, name)
	guard, err := channel.Acquire(ch.Paths()...)
	if err != nil {
		return nil, fmt.Errorf("protecting channel files: %w", err)
	}
	defer func() {
		if err := guard.Release(); err != nil {
			e.logger.Warn("failed to restore channel files", zap.Error(err))
		}
	}()
	if err := ch.Reset(); err != nil {
		return nil, fmt.Errorf("clearing channel files: %w", err)
	}

	executor := &runner.ProcessExecutor{
		Dir:     workdir,
		Stderr:  opts.ProgramStderr,
		Timeout: opts.Timeout,
	}

	binary, err := filepath.Abs(program.Binary)
	if err != nil {
		return nil, err
	}

	r := runner.New(ch, executor, e.logger)
	results, err := r.Run(ctx, binary, tests, e.reporter.Result)
	if err != nil {
		if ctx.Err() != nil {
			return nil, lamaerr.NewInterrupted(err)
		}
		return nil, fmt.Errorf("running tests: %w", err)
	}

	outcome := &Outcome{Results: results, Summary: judge.Summarize(results)}
	e.reporter.Summary(outcome.Summary)
	return outcome, nil
}
