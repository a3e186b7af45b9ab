package report

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ColorMode selects when ANSI colors are emitted.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

const (
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
	ansiReset = "\033[0m"
)

// ParseColorMode validates a --color flag value.
func ParseColorMode(raw string) (ColorMode, error) {
	switch mode := ColorMode(raw); mode {
	case ColorAuto, ColorAlways, ColorNever:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", raw)
	}
}

// UseColor resolves mode for w. In auto mode colors are used only when w is
// a terminal and NO_COLOR is unset.
func UseColor(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type palette struct {
	enabled bool
}

func (p palette) paint(color, s string) string {
	if !p.enabled {
		return s
	}
	return color + s + ansiReset
}

func (p palette) green(s string) string { return p.paint(ansiGreen, s) }
func (p palette) red(s string) string   { return p.paint(ansiRed, s) }
