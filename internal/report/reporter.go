// Package report renders per-test lines and the run summary.
package report

import (
	"fmt"
	"io"
	"strings"

	"martianoff/lama/internal/judge"
)

// Options controls rendering.
type Options struct {
	// Color enables ANSI colors.
	Color bool
	// Concise suppresses the per-test lines.
	Concise bool
}

// Reporter writes human readable results to an io.Writer.
type Reporter struct {
	out     io.Writer
	colors  palette
	concise bool
	width   int
}

// NewReporter constructs a Reporter.
func NewReporter(out io.Writer, opts Options) *Reporter {
	return &Reporter{
		out:     out,
		colors:  palette{enabled: opts.Color},
		concise: opts.Concise,
		width:   1,
	}
}

// SetOrdinalWidth sets the column width ordinals are right-aligned to.
func (r *Reporter) SetOrdinalWidth(width int) {
	if width > 0 {
		r.width = width
	}
}

// Result writes the line for a single test.
func (r *Reporter) Result(result judge.TestResult) {
	if r.concise {
		return
	}
	fmt.Fprintf(r.out, "Evaluating test %*s: \t%s\n",
		r.width+1, fmt.Sprintf("#%d", result.Case.Ordinal), r.label(result))
}

func (r *Reporter) label(result judge.TestResult) string {
	if result.Passed() {
		return r.colors.green("PASSED")
	}
	label := r.colors.red("FAILED")
	if reason := result.Reason(); reason != "" {
		label += ": " + reason
	}
	return label
}

// Summary writes the final TOTAL line.
func (r *Reporter) Summary(s judge.Summary) {
	fmt.Fprintf(r.out, "TOTAL: %s (%s, %s)\n",
		r.colors.green(fmt.Sprintf("%3d%%", s.Percent())),
		r.colors.green(fmt.Sprintf("%d tests passed", s.Passed)),
		r.colors.red(fmt.Sprintf("%d tests failed", s.Failed())))
}

// Error writes a fatal message in red.
func (r *Reporter) Error(msg string) {
	fmt.Fprintln(r.out, r.colors.red(strings.TrimSpace(msg)))
}
