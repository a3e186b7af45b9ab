package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"
)

// markerFile records the origin of a cached checkout. Its presence marks
// the checkout as complete.
const markerFile = ".lama-source"

// GitFetcher clones fixture repositories into the cache.
type GitFetcher struct {
	config *Config
	logger *zap.Logger
}

// NewGitFetcher creates a new GitFetcher. A nil config uses DefaultConfig.
func NewGitFetcher(config *Config, logger *zap.Logger) *GitFetcher {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GitFetcher{config: config, logger: logger}
}

// Fetch returns a local checkout of url at ref, cloning it unless it is
// already cached. refresh discards any cached checkout first.
func (f *GitFetcher) Fetch(ctx context.Context, url, ref string, refresh bool) (string, error) {
	dest := f.config.CheckoutPath(url, ref)
	log := f.logger.With(zap.String("url", url), zap.String("ref", ref), zap.String("path", dest))

	if refresh {
		if err := os.RemoveAll(dest); err != nil {
			return "", fmt.Errorf("discarding cached checkout: %w", err)
		}
	} else if f.config.IsCached(url, ref) {
		err := Verify(dest)
		if err == nil {
			log.Debug("using cached fixtures")
			return dest, nil
		}
		log.Warn("cached fixtures failed verification, fetching again", zap.Error(err))
	}

	if err := f.config.EnsureDirs(); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	// Clone next to the final location so the rename below stays on one filesystem.
	tempDir, err := os.MkdirTemp(f.config.CacheDir, "clone-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	log.Debug("cloning fixtures")
	opts := &git.CloneOptions{URL: url}
	if ref == "" {
		opts.Depth = 1
	} else {
		opts.Tags = git.AllTags
	}
	repo, err := git.PlainCloneContext(ctx, tempDir, false, opts)
	if err != nil {
		return "", fmt.Errorf("failed to clone repository %s: %w", url, err)
	}

	if ref != "" {
		if err := checkoutRef(repo, ref); err != nil {
			return "", fmt.Errorf("failed to checkout %s: %w", ref, err)
		}
	}

	hash, err := HashDir(tempDir)
	if err != nil {
		return "", fmt.Errorf("failed to compute hash: %w", err)
	}
	marker := fmt.Sprintf("url=%s\nref=%s\nfetched=%s\nhash=%s\n", url, ref, time.Now().Format(time.RFC3339), hash)
	if err := os.WriteFile(filepath.Join(tempDir, markerFile), []byte(marker), 0644); err != nil {
		return "", fmt.Errorf("writing cache marker: %w", err)
	}

	if err := os.RemoveAll(dest); err != nil {
		return "", err
	}
	if err := os.Rename(tempDir, dest); err != nil {
		return "", fmt.Errorf("failed to store in cache: %w", err)
	}

	return dest, nil
}

// checkoutRef checks out ref as a tag, then a remote branch, then a commit.
func checkoutRef(repo *git.Repository, ref string) error {
	worktree, err := repo.Worktree()
	if err != nil {
		return err
	}

	candidates := []plumbing.Revision{
		plumbing.Revision(plumbing.NewTagReferenceName(ref)),
		plumbing.Revision(plumbing.NewRemoteReferenceName("origin", ref)),
		plumbing.Revision(ref),
	}
	for _, rev := range candidates {
		hash, err := repo.ResolveRevision(rev)
		if err != nil {
			continue
		}
		return worktree.Checkout(&git.CheckoutOptions{Hash: *hash})
	}

	return fmt.Errorf("ref not found: %s", ref)
}
