package fetch

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Size returns the total size in bytes of the files in the cache.
func (c *Config) Size() (int64, error) {
	var total int64
	err := filepath.WalkDir(c.CacheDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if os.IsNotExist(err) {
		return 0, nil
	}
	return total, err
}

// Clean removes every cached checkout and returns the number of bytes freed.
func (c *Config) Clean() (int64, error) {
	size, err := c.Size()
	if err != nil {
		return 0, err
	}
	if err := os.RemoveAll(c.CacheDir); err != nil {
		return 0, err
	}
	return size, nil
}
