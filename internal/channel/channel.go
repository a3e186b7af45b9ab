package channel

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Channel is the input/output file pair of one program under test.
type Channel struct {
	InputPath  string
	OutputPath string
}

// ForProgram returns the channel of the named program inside dir:
// <dir>/<name>.in and <dir>/<name>.out.
func ForProgram(dir, name string) *Channel {
	return &Channel{
		InputPath:  filepath.Join(dir, name+".in"),
		OutputPath: filepath.Join(dir, name+".out"),
	}
}

// Paths returns both channel paths, input first.
func (c *Channel) Paths() []string {
	return []string{c.InputPath, c.OutputPath}
}

// Stage copies the fixture at inputPath onto the input channel.
func (c *Channel) Stage(inputPath string) error {
	if err := copyFile(inputPath, c.InputPath, 0644); err != nil {
		return fmt.Errorf("staging %s: %w", inputPath, err)
	}
	return nil
}

// Output returns the output channel path.
func (c *Channel) Output() string {
	return c.OutputPath
}

// OutputExists reports whether the program produced an output file.
func (c *Channel) OutputExists() (bool, error) {
	_, err := os.Stat(c.OutputPath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Reset deletes both channel files. Files that do not exist are ignored.
func (c *Channel) Reset() error {
	var errs []error
	for _, path := range c.Paths() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
