package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"martianoff/lama/lamaerr"
)

// Program is a compiled program under test.
type Program struct {
	Source string
	Binary string
}

// Remove deletes the compiled binary. A missing binary is not an error.
func (p *Program) Remove() error {
	if err := os.Remove(p.Binary); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", p.Binary, err)
	}
	return nil
}

// Compiler turns a single source file into a Program.
type Compiler struct {
	config *Config
	logger *zap.Logger
}

// NewCompiler creates a Compiler. A nil config uses DefaultConfig.
func NewCompiler(config *Config, logger *zap.Logger) *Compiler {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Compiler{config: config, logger: logger}
}

// BinaryPath returns where the binary for source is written.
func (c *Compiler) BinaryPath(source string) string {
	return filepath.Join(filepath.Dir(source), c.config.OutputName)
}

// Args returns the compiler arguments for source.
func (c *Compiler) Args(source string) []string {
	args := make([]string, 0, len(c.config.Flags)+3)
	args = append(args, c.config.Flags...)
	return append(args, source, "-o", c.BinaryPath(source))
}

// Compile runs the compiler on source. Any failure, including a compiler
// that cannot be started or that exits cleanly without producing a binary,
// is reported as a CompilationError.
func (c *Compiler) Compile(ctx context.Context, source string) (*Program, error) {
	args := c.Args(source)
	c.logger.Debug("compiling",
		zap.String("compiler", c.config.Compiler),
		zap.String("args", strings.Join(args, " ")))

	cmd := exec.CommandContext(ctx, c.config.Compiler, args...)
	cmd.Stdout = c.config.Stdout
	cmd.Stderr = c.config.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			c.logger.Debug("compiler failed", zap.Int("exit_code", exitErr.ExitCode()))
			return nil, lamaerr.NewCompilationError(source, exitErr.ExitCode())
		}
		if ctx.Err() != nil {
			return nil, lamaerr.NewInterrupted(ctx.Err())
		}
		return nil, lamaerr.NewCompilationErrorCause(source, err)
	}

	binary := c.BinaryPath(source)
	if _, err := os.Stat(binary); err != nil {
		return nil, lamaerr.NewCompilationErrorCause(source, fmt.Errorf("compiler produced no binary at %s", binary))
	}

	c.logger.Debug("compiled", zap.String("binary", binary))
	return &Program{Source: source, Binary: binary}, nil
}
