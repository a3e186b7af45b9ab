package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"martianoff/lama/lamaerr"
)

// Resolved is a local fixture directory. Cleanup removes any temporary
// files created to produce it and is always safe to call.
type Resolved struct {
	Dir     string
	Source  Source
	Cleanup func()
}

// Resolver turns test-directory arguments into local directories.
type Resolver struct {
	fetcher *GitFetcher
	logger  *zap.Logger
	// Refresh forces git sources to be cloned again.
	Refresh bool
}

// NewResolver creates a Resolver backed by fetcher.
func NewResolver(fetcher *GitFetcher, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{fetcher: fetcher, logger: logger}
}

// Resolve returns the directory holding the fixtures named by raw. subdir,
// when non-empty, selects a directory inside the resolved location.
//
// Plain directories are returned as given without validation; callers
// check that the result is a directory.
func (r *Resolver) Resolve(ctx context.Context, raw, subdir string) (*Resolved, error) {
	src := ParseSource(raw)
	resolved := &Resolved{Source: src, Cleanup: func() {}}

	switch src.Kind {
	case KindArchive:
		tmp, err := os.MkdirTemp("", "lama-fixtures-*")
		if err != nil {
			return nil, fmt.Errorf("failed to create temp directory: %w", err)
		}
		resolved.Cleanup = func() { _ = os.RemoveAll(tmp) }
		if err := ExtractArchive(src.Location, tmp); err != nil {
			resolved.Cleanup()
			return nil, lamaerr.NewFetchFailure(src.String(), err)
		}
		resolved.Dir = tmp

	case KindGit:
		dir, err := r.fetcher.Fetch(ctx, src.Location, src.Ref, r.Refresh)
		if err != nil {
			if ctx.Err() != nil {
				return nil, lamaerr.NewInterrupted(ctx.Err())
			}
			return nil, lamaerr.NewFetchFailure(src.String(), err)
		}
		resolved.Dir = dir

	default:
		resolved.Dir = src.Location
	}

	if subdir != "" {
		resolved.Dir = filepath.Join(resolved.Dir, filepath.FromSlash(subdir))
	}

	r.logger.Debug("resolved fixtures",
		zap.Stringer("kind", src.Kind),
		zap.String("source", src.String()),
		zap.String("dir", resolved.Dir))
	return resolved, nil
}
