package fetch

import (
	"bufio"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// HashDir computes a hash of every file in dir except git metadata and the
// cache marker. The hash is deterministic regardless of file system ordering.
func HashDir(dir string) (string, error) {
	h := sha256.New()

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if relPath == markerFile {
			return nil
		}
		files = append(files, relPath)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to walk directory: %w", err)
	}

	sort.Strings(files)

	for _, relPath := range files {
		content, err := os.ReadFile(filepath.Join(dir, relPath))
		if err != nil {
			return "", fmt.Errorf("failed to read file %s: %w", relPath, err)
		}
		h.Write([]byte(filepath.ToSlash(relPath)))
		h.Write([]byte{0})
		h.Write(content)
		h.Write([]byte{0})
	}

	return "h1:" + base64.StdEncoding.EncodeToString(h.Sum(nil)), nil
}

// readMarker parses the key=value lines of a checkout's marker file.
func readMarker(dir string) (map[string]string, error) {
	f, err := os.Open(filepath.Join(dir, markerFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fields := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if ok {
			fields[key] = value
		}
	}
	return fields, scanner.Err()
}

// HashMismatchError is returned when a cached checkout no longer matches
// the hash recorded when it was fetched.
type HashMismatchError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *HashMismatchError) Error() string {
	return fmt.Sprintf("hash mismatch for %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// Verify checks a cached checkout against the hash in its marker.
func Verify(dir string) error {
	fields, err := readMarker(dir)
	if err != nil {
		return err
	}
	actual, err := HashDir(dir)
	if err != nil {
		return err
	}
	if expected := fields["hash"]; actual != expected {
		return &HashMismatchError{Path: dir, Expected: expected, Actual: actual}
	}
	return nil
}
