// Package channel manages the fixed-name files through which the program
// under test reads its input and writes its output.
package channel

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// BackupSuffix is appended to a channel path to form its backup path.
const BackupSuffix = ".old"

// BackupPath returns the path used to preserve a pre-existing file at path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// Backup copies path to its backup location, overwriting any prior backup.
// It is a no-op when path does not exist.
func Backup(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("backing up %s: %w", path, err)
	}
	if err := copyFile(path, BackupPath(path), info.Mode().Perm()); err != nil {
		return fmt.Errorf("backing up %s: %w", path, err)
	}
	return nil
}

// Restore moves the backup of path back into place. It is a no-op when no
// backup exists.
func Restore(path string) error {
	backup := BackupPath(path)
	if _, err := os.Stat(backup); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("restoring %s: %w", path, err)
	}
	if err := os.Rename(backup, path); err != nil {
		return fmt.Errorf("restoring %s: %w", path, err)
	}
	return nil
}

// Guard holds backups of a set of channel paths for the duration of a run.
type Guard struct {
	paths []string
	once  sync.Once
	err   error
}

// Acquire backs up every path. If any backup fails the ones already taken
// are restored and the error is returned.
func Acquire(paths ...string) (*Guard, error) {
	g := &Guard{}
	for _, path := range paths {
		if err := Backup(path); err != nil {
			_ = g.Release()
			return nil, err
		}
		g.paths = append(g.paths, path)
	}
	return g, nil
}

// Release restores every guarded path. Only the first call has an effect;
// later calls return the same error.
func (g *Guard) Release() error {
	g.once.Do(func() {
		var errs []error
		for _, path := range g.paths {
			if err := Restore(path); err != nil {
				errs = append(errs, err)
			}
		}
		g.err = errors.Join(errs...)
	})
	return g.err
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
