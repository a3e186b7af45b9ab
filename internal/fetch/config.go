// Package fetch resolves a test-directory argument into a local directory
// of fixtures. Besides plain directories it accepts txtar bundles and git
// remotes, which are cloned into a local cache.
package fetch

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
)

// Config holds configuration for the fixture cache.
type Config struct {
	// CacheDir is where cloned fixture repositories are kept.
	// Defaults to $LAMA_CACHE, or ~/.lama/fixtures
	CacheDir string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{CacheDir: defaultCacheDir()}
}

func defaultCacheDir() string {
	if dir := os.Getenv("LAMA_CACHE"); dir != "" {
		return dir
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".lama", "fixtures")
	}

	return filepath.Join(homeDir, ".lama", "fixtures")
}

// EnsureDirs creates the cache directory if it doesn't exist.
func (c *Config) EnsureDirs() error {
	return os.MkdirAll(c.CacheDir, 0755)
}

// CheckoutPath returns where the given remote and ref are checked out.
// Format: CacheDir/<hash of url#ref>
func (c *Config) CheckoutPath(url, ref string) string {
	return filepath.Join(c.CacheDir, computeHash(url+"#"+ref))
}

// IsCached returns true if the remote and ref are already checked out.
func (c *Config) IsCached(url, ref string) bool {
	info, err := os.Stat(filepath.Join(c.CheckoutPath(url, ref), markerFile))
	return err == nil && info.Mode().IsRegular()
}

// computeHash returns the first 12 hex characters of the SHA-256 of s.
func computeHash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])[:12]
}
