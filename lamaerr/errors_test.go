package lamaerr_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"martianoff/lama/lamaerr"

	"github.com/stretchr/testify/assert"
)

func TestInvalidArguments(t *testing.T) {
	err := lamaerr.NewInvalidArguments("invalid source file or test directory")
	assert.Equal(t, lamaerr.TypeInvalidArguments, err.Type())
	assert.Equal(t, "[InvalidArguments] invalid source file or test directory", err.Error())
}

func TestNoTestsFound(t *testing.T) {
	err := lamaerr.NewNoTestsFound("tests/")
	assert.Equal(t, lamaerr.TypeNoTests, err.Type())
	assert.Equal(t, "[NoTestsFound] no tests found in tests/", err.Error())
}

func TestCompilationError(t *testing.T) {
	err := lamaerr.NewCompilationError("main.cpp", 1)
	assert.Equal(t, lamaerr.TypeCompilation, err.Type())
	assert.Equal(t, 1, err.ExitCode)
	assert.Equal(t, "[CompilationFailure] main.cpp: compiler exited with status 1", err.Error())
}

func TestCompilationErrorCause(t *testing.T) {
	cause := errors.New("executable file not found")
	err := lamaerr.NewCompilationErrorCause("main.cpp", cause)
	assert.Equal(t, -1, err.ExitCode)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "main.cpp: executable file not found")
}

func TestDuplicateOrdinal(t *testing.T) {
	err := lamaerr.NewDuplicateOrdinal(1, "input.1", "input.01")
	assert.Equal(t, lamaerr.TypeDuplicateOrdinal, err.Type())
	assert.Equal(t, "[DuplicateOrdinal] ordinal 1 used by both input.1 and input.01", err.Error())
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "no tests found in d", lamaerr.NewNoTestsFound("d").Message())
	assert.Equal(t, "compilation error", lamaerr.NewCompilationError("a.cpp", 1).Message())
	assert.Equal(t, "ordinal 3 used by both input.3 and input.03", lamaerr.NewDuplicateOrdinal(3, "input.3", "input.03").Message())
	assert.Equal(t, "fetching fixtures from u: boom", lamaerr.NewFetchFailure("u", errors.New("boom")).Message())
}

func TestFetchFailureUnwraps(t *testing.T) {
	cause := errors.New("repository not found")
	err := lamaerr.NewFetchFailure("https://example.com/tests.git", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "repository not found")
}

func TestIsTypeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("discover: %w", lamaerr.NewNoTestsFound("x"))
	assert.True(t, lamaerr.IsType(err, lamaerr.TypeNoTests))
	assert.False(t, lamaerr.IsType(err, lamaerr.TypeCompilation))
	assert.False(t, lamaerr.IsType(errors.New("plain"), lamaerr.TypeNoTests))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, lamaerr.ExitOK},
		{"invalid", lamaerr.NewInvalidArguments("x"), lamaerr.ExitInvalidArgs},
		{"compile", lamaerr.NewCompilationError("a.cpp", 1), lamaerr.ExitCompilation},
		{"no tests", lamaerr.NewNoTestsFound("d"), lamaerr.ExitNoTests},
		{"duplicate", lamaerr.NewDuplicateOrdinal(2, "a", "b"), lamaerr.ExitNoTests},
		{"fetch", lamaerr.NewFetchFailure("u", errors.New("x")), lamaerr.ExitFetch},
		{"interrupted", lamaerr.NewInterrupted(context.Canceled), lamaerr.ExitInterrupted},
		{"wrapped", fmt.Errorf("run: %w", lamaerr.NewCompilationError("a.cpp", 1)), lamaerr.ExitCompilation},
		{"unknown", errors.New("boom"), lamaerr.ExitInvalidArgs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lamaerr.ExitCode(tt.err))
		})
	}
}
