// Package fixture discovers input/expected-output pairs in a test directory.
package fixture

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"martianoff/lama/internal/judge"
	"martianoff/lama/lamaerr"
)

// Name templates. The token stands where the placeholder is.
const (
	InputTemplate  = "input.{}"
	OutputTemplate = "output.{}"
	placeholder    = "{}"
)

// FormatName fills the template's placeholder with token.
func FormatName(template, token string) string {
	return strings.Replace(template, placeholder, token, 1)
}

// ParseToken is the inverse of FormatName. It returns false when name does
// not match the template exactly or the token would be empty.
func ParseToken(template, name string) (string, bool) {
	prefix, suffix, found := strings.Cut(template, placeholder)
	if !found {
		return "", false
	}
	if len(name) <= len(prefix)+len(suffix) {
		return "", false
	}
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, suffix) {
		return "", false
	}
	return name[len(prefix) : len(name)-len(suffix)], true
}

// Discover returns the test cases found in dir, sorted by ordinal.
//
// Files that do not match the input template, whose token is not a
// non-negative base-10 integer, or that lack an output companion are
// skipped. An empty result is reported as a NoTestsFound error and two
// inputs with the same ordinal as a DuplicateOrdinal error.
func Discover(dir string) ([]judge.TestCase, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading test directory: %w", err)
	}

	var tests []judge.TestCase
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		token, ok := ParseToken(InputTemplate, entry.Name())
		if !ok {
			continue
		}

		expected := filepath.Join(dir, FormatName(OutputTemplate, token))
		if !isFile(expected) {
			continue
		}

		ordinal, err := strconv.Atoi(token)
		if err != nil || ordinal < 0 {
			continue
		}

		tests = append(tests, judge.TestCase{
			Ordinal:            ordinal,
			InputPath:          filepath.Join(dir, entry.Name()),
			ExpectedOutputPath: expected,
		})
	}

	if len(tests) == 0 {
		return nil, lamaerr.NewNoTestsFound(dir)
	}

	sort.SliceStable(tests, func(i, j int) bool {
		return tests[i].Ordinal < tests[j].Ordinal
	})

	for i := 1; i < len(tests); i++ {
		if tests[i].Ordinal == tests[i-1].Ordinal {
			return nil, lamaerr.NewDuplicateOrdinal(
				tests[i].Ordinal,
				filepath.Base(tests[i-1].InputPath),
				filepath.Base(tests[i].InputPath),
			)
		}
	}

	return tests, nil
}

// MaxOrdinalWidth returns the number of decimal digits of the largest
// ordinal. tests must be sorted and non-empty.
func MaxOrdinalWidth(tests []judge.TestCase) int {
	return len(strconv.Itoa(tests[len(tests)-1].Ordinal))
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
