// Package content normalizes program output for comparison against
// expected fixtures.
package content

import (
	"fmt"
	"os"
	"strings"
)

// Normalize collapses every run of ASCII spaces into a single space and
// trims surrounding whitespace. Tabs and line breaks inside the text are
// kept.
func Normalize(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))

	prevSpace := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		sb.WriteByte(c)
	}

	return strings.TrimSpace(sb.String())
}

// Comparable reads a file and returns its normalized content.
func Comparable(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return Normalize(string(data)), nil
}

// Equal reports whether two files have the same normalized content.
func Equal(pathA, pathB string) (bool, error) {
	a, err := Comparable(pathA)
	if err != nil {
		return false, err
	}
	b, err := Comparable(pathB)
	if err != nil {
		return false, err
	}
	return a == b, nil
}
