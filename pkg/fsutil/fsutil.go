// Package fsutil reads markdown sources and writes rendered output safely.
// Sources are snapshotted so a render can tell whether its input changed
// underneath it, and outputs are written atomically.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	ErrNilSource        = errors.New("nil source")
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIsDirectory      = errors.New("path is a directory")
	ErrOutsideRoot      = errors.New("path escapes output root")
)

// Source is a markdown file as it was read.
type Source struct {
	Path    string
	Content []byte
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
	Hash    [32]byte
}

// ReadSource reads path and records enough metadata to detect later changes.
func ReadSource(ctx context.Context, path string) (*Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, classify(path, err)
	}

	return &Source{
		Path:    path,
		Content: content,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}

// Stale reports whether the file on disk no longer matches src. A deleted
// file is stale. Mod time and size are compared first; the content hash is
// only consulted when they agree.
func (src *Source) Stale(ctx context.Context) (bool, error) {
	if src == nil {
		return false, ErrNilSource
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check source: %w", err)
	}

	stat, err := os.Stat(src.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", src.Path, err)
	}
	if !stat.ModTime().Equal(src.ModTime) || stat.Size() != src.Size {
		return true, nil
	}

	content, err := os.ReadFile(src.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", src.Path, err)
	}
	return sha256.Sum256(content) != src.Hash, nil
}
