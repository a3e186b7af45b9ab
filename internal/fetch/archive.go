package fetch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/txtar"
)

// ExtractArchive writes the files of a txtar bundle into dir.
// File names must be relative and stay inside dir.
func ExtractArchive(archivePath, dir string) error {
	archive, err := txtar.ParseFile(archivePath)
	if err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}

	for _, f := range archive.Files {
		name := filepath.Clean(filepath.FromSlash(f.Name))
		if filepath.IsAbs(name) || name == ".." || strings.HasPrefix(name, ".."+string(filepath.Separator)) {
			return fmt.Errorf("archive entry %q escapes the extraction directory", f.Name)
		}

		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, f.Data, 0644); err != nil {
			return err
		}
	}

	return nil
}
