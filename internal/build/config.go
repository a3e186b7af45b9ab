// Package build compiles the program under test.
package build

import (
	"io"
	"os"
	"runtime"
)

// DefaultFlags is the fixed judge flag set: optimize, silence warnings,
// enable the memory and undefined-behavior sanitizers and define LAMA_JUDGE
// so the program switches to file based I/O.
var DefaultFlags = []string{
	"-O2",
	"-pipe",
	"-w",
	"-fsanitize=address,signed-integer-overflow,undefined",
	"-DLAMA_JUDGE",
}

// Config holds configuration for the compiler invocation.
type Config struct {
	// Compiler is the compiler executable.
	// Defaults to $LAMA_CXX, or g++.
	Compiler string

	// Flags are passed before the source file.
	// Defaults to DefaultFlags.
	Flags []string

	// OutputName is the binary file name, placed next to the source.
	// Defaults to a.out (a.exe on Windows).
	OutputName string

	// Stdout and Stderr receive the compiler's own output.
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns the default compiler configuration.
func DefaultConfig() *Config {
	return &Config{
		Compiler:   defaultCompiler(),
		Flags:      append([]string(nil), DefaultFlags...),
		OutputName: defaultOutputName(),
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

// defaultCompiler uses LAMA_CXX if set, otherwise g++.
func defaultCompiler() string {
	if cxx := os.Getenv("LAMA_CXX"); cxx != "" {
		return cxx
	}
	return "g++"
}

func defaultOutputName() string {
	if runtime.GOOS == "windows" {
		return "a.exe"
	}
	return "a.out"
}
