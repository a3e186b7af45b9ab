package judge

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	results := []TestResult{
		{Case: TestCase{Ordinal: 1}, Status: StatusPassed},
		{Case: TestCase{Ordinal: 2}, Status: StatusMismatch},
		{Case: TestCase{Ordinal: 3}, Status: StatusPassed},
	}

	s := Summarize(results)
	assert.Equal(t, 2, s.Passed)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Failed())
	assert.Equal(t, 66, s.Percent())
}

func TestSummaryPercentFloors(t *testing.T) {
	assert.Equal(t, 100, Summary{Passed: 1, Total: 1}.Percent())
	assert.Equal(t, 0, Summary{Passed: 0, Total: 3}.Percent())
	assert.Equal(t, 99, Summary{Passed: 199, Total: 200}.Percent())
	assert.Equal(t, 0, Summary{}.Percent())
}

func TestReason(t *testing.T) {
	assert.Equal(t, "", TestResult{Status: StatusPassed}.Reason())
	assert.Equal(t, "program exited with return code 2", TestResult{Status: StatusNonZeroExit, ExitCode: 2}.Reason())
	assert.Equal(t, "program timed out after 5s", TestResult{Status: StatusTimeout, Timeout: 5 * time.Second}.Reason())
	assert.Equal(t, "no output file generated", TestResult{Status: StatusNoOutput}.Reason())
	assert.Equal(t, "output mismatch", TestResult{Status: StatusMismatch}.Reason())
	assert.Equal(t, "staging input: denied", TestResult{Status: StatusExecError, Err: errors.New("staging input: denied")}.Reason())
}
