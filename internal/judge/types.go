// Package judge holds the values passed between fixture discovery, the
// runner and the reporter.
package judge

import (
	"strconv"
	"time"
)

// TestCase is a matched input/expected-output fixture pair.
// Ordinal identifies the case within a run.
type TestCase struct {
	Ordinal            int
	InputPath          string
	ExpectedOutputPath string
}

// Status classifies the outcome of a single test.
type Status string

const (
	StatusPassed      Status = "passed"
	StatusNonZeroExit Status = "non_zero_exit"
	StatusTimeout     Status = "timeout"
	StatusNoOutput    Status = "no_output"
	StatusMismatch    Status = "mismatch"
	StatusExecError   Status = "exec_error"
)

// TestResult captures the outcome of executing a single TestCase.
type TestResult struct {
	Case     TestCase
	Status   Status
	ExitCode int
	Duration time.Duration
	// Timeout is the limit that was exceeded, set only for StatusTimeout.
	Timeout time.Duration
	// Err is set for StatusExecError.
	Err error
}

// Passed reports whether the test passed.
func (r TestResult) Passed() bool {
	return r.Status == StatusPassed
}

// Reason returns a short human readable explanation for a failed result.
func (r TestResult) Reason() string {
	switch r.Status {
	case StatusNonZeroExit:
		return "program exited with return code " + strconv.Itoa(r.ExitCode)
	case StatusTimeout:
		return "program timed out after " + r.Timeout.String()
	case StatusNoOutput:
		return "no output file generated"
	case StatusMismatch:
		return "output mismatch"
	case StatusExecError:
		if r.Err != nil {
			return r.Err.Error()
		}
		return "execution error"
	default:
		return ""
	}
}

// Summary is the aggregate of a run.
type Summary struct {
	Passed int
	Total  int
}

// Summarize tallies results.
func Summarize(results []TestResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Passed() {
			s.Passed++
		}
	}
	return s
}

// Failed returns the number of tests that did not pass.
func (s Summary) Failed() int {
	return s.Total - s.Passed
}

// Percent returns floor(Passed/Total*100). A zero Total yields 0.
func (s Summary) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return s.Passed * 100 / s.Total
}
