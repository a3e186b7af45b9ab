// Package lamaerr defines the run-fatal errors reported by the lama harness.
//
// Per-test failures are not errors; they are judge.Status values.
package lamaerr

import (
	"errors"
	"fmt"
)

// ErrorType defines the category of the error.
type ErrorType string

const (
	TypeInvalidArguments ErrorType = "InvalidArguments"
	TypeCompilation      ErrorType = "CompilationFailure"
	TypeNoTests          ErrorType = "NoTestsFound"
	TypeDuplicateOrdinal ErrorType = "DuplicateOrdinal"
	TypeFetch            ErrorType = "FetchFailure"
	TypeInterrupted      ErrorType = "Interrupted"
)

// Process exit codes for each error category.
const (
	ExitOK          = 0
	ExitInvalidArgs = 1
	ExitCompilation = 2
	ExitNoTests     = 3
	ExitFetch       = 4
	ExitInterrupted = 130
)

// LamaError is the interface for all run-fatal harness errors.
type LamaError interface {
	error
	Type() ErrorType
	// Message is the text shown to the user, without the type tag.
	Message() string
}

// BaseError provides common fields for lama errors.
type BaseError struct {
	Msg     string
	ErrType ErrorType
	Cause   error
}

func (e *BaseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.ErrType, e.Msg, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.ErrType, e.Msg)
}

func (e *BaseError) Type() ErrorType {
	return e.ErrType
}

func (e *BaseError) Message() string {
	if e.Cause != nil {
		return e.Msg + ": " + e.Cause.Error()
	}
	return e.Msg
}

func (e *BaseError) Unwrap() error {
	return e.Cause
}

// CompilationError is returned when the program under test does not compile.
type CompilationError struct {
	BaseError
	Source   string
	ExitCode int
}

func (e *CompilationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.ErrType, e.Source, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: compiler exited with status %d", e.ErrType, e.Source, e.ExitCode)
}

func (e *CompilationError) Message() string {
	return "compilation error"
}

// DuplicateOrdinalError is returned when two input fixtures resolve to the same ordinal.
type DuplicateOrdinalError struct {
	BaseError
	Ordinal int
	First   string
	Second  string
}

func (e *DuplicateOrdinalError) Error() string {
	return fmt.Sprintf("[%s] %s", e.ErrType, e.Message())
}

func (e *DuplicateOrdinalError) Message() string {
	return fmt.Sprintf("ordinal %d used by both %s and %s", e.Ordinal, e.First, e.Second)
}

// NewInvalidArguments creates an error for unusable command-line input.
func NewInvalidArguments(msg string) *BaseError {
	return &BaseError{Msg: msg, ErrType: TypeInvalidArguments}
}

// NewNoTestsFound creates an error for a fixture directory without any usable pair.
func NewNoTestsFound(dir string) *BaseError {
	return &BaseError{Msg: "no tests found in " + dir, ErrType: TypeNoTests}
}

// NewFetchFailure wraps an error raised while resolving a fixture source.
func NewFetchFailure(source string, cause error) *BaseError {
	return &BaseError{Msg: "fetching fixtures from " + source, ErrType: TypeFetch, Cause: cause}
}

// NewInterrupted wraps the context error that stopped a run.
func NewInterrupted(cause error) *BaseError {
	return &BaseError{Msg: "evaluation interrupted", ErrType: TypeInterrupted, Cause: cause}
}

// NewCompilationError creates a CompilationError for a compiler that ran and failed.
func NewCompilationError(source string, exitCode int) *CompilationError {
	return &CompilationError{
		BaseError: BaseError{Msg: "compilation failed", ErrType: TypeCompilation},
		Source:    source,
		ExitCode:  exitCode,
	}
}

// NewCompilationErrorCause creates a CompilationError for a compiler that could not run at all.
func NewCompilationErrorCause(source string, cause error) *CompilationError {
	return &CompilationError{
		BaseError: BaseError{Msg: "compilation failed", ErrType: TypeCompilation, Cause: cause},
		Source:    source,
		ExitCode:  -1,
	}
}

// NewDuplicateOrdinal creates a DuplicateOrdinalError.
func NewDuplicateOrdinal(ordinal int, first, second string) *DuplicateOrdinalError {
	return &DuplicateOrdinalError{
		BaseError: BaseError{Msg: "duplicate ordinal", ErrType: TypeDuplicateOrdinal},
		Ordinal:   ordinal,
		First:     first,
		Second:    second,
	}
}

// IsType reports whether err, or any error it wraps, is a LamaError of type t.
func IsType(err error, t ErrorType) bool {
	var le LamaError
	if errors.As(err, &le) {
		return le.Type() == t
	}
	return false
}

// ExitCode maps an error returned by an evaluation to a process exit code.
// Unknown errors map to ExitInvalidArgs.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var le LamaError
	if !errors.As(err, &le) {
		return ExitInvalidArgs
	}
	switch le.Type() {
	case TypeCompilation:
		return ExitCompilation
	case TypeNoTests, TypeDuplicateOrdinal:
		return ExitNoTests
	case TypeFetch:
		return ExitFetch
	case TypeInterrupted:
		return ExitInterrupted
	default:
		return ExitInvalidArgs
	}
}
