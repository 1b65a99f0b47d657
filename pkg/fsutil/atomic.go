package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileMode is the permission mode of written outputs.
const DefaultFileMode os.FileMode = 0o644

const dirMode os.FileMode = 0o755

// WriteAtomic writes content to path through a temp file in the same
// directory and a rename, so readers never observe a partial file. On error
// the temp file is removed and any existing file is left untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

// ReadExisting returns the content of a previously written output, or nil
// when there is none.
func ReadExisting(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		return content, nil
	case errors.Is(err, os.ErrNotExist):
		return nil, nil
	default:
		return nil, fmt.Errorf("read existing output: %w", err)
	}
}

// WriteOutput writes a rendered document to path, creating parent
// directories. It returns false without touching the file when the existing
// content is already identical.
func WriteOutput(ctx context.Context, path string, content []byte) (bool, error) {
	existing, err := ReadExisting(path)
	if err != nil {
		return false, err
	}
	if existing != nil && bytes.Equal(existing, content) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return false, fmt.Errorf("create output directory: %w", err)
	}
	if err := WriteAtomic(ctx, path, content, DefaultFileMode); err != nil {
		return false, err
	}
	return true, nil
}

// OutputPath maps a source file below root to its output under outDir, with
// the markdown extension replaced by ext. Sources outside root are placed
// by base name.
func OutputPath(root, source, outDir, ext string) (string, error) {
	rel, err := filepath.Rel(root, source)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(source)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ext

	out := filepath.Join(outDir, rel)
	back, err := filepath.Rel(outDir, out)
	if err != nil || back == ".." || strings.HasPrefix(back, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, source)
	}
	return out, nil
}
