package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/gomdview/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("overwrites and leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out.html")
		if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		if err := fsutil.WriteAtomic(context.Background(), path, []byte("<p>new</p>"), 0); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if string(got) != "<p>new</p>" {
			t.Errorf("content = %q", got)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if info.Mode().Perm() != fsutil.DefaultFileMode {
			t.Errorf("mode = %o, want %o", info.Mode().Perm(), fsutil.DefaultFileMode)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("readdir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("directory has %d entries, want 1", len(entries))
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "out.html")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := fsutil.WriteAtomic(ctx, filepath.Join(t.TempDir(), "out"), []byte("x"), 0)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestWriteOutput(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "site", "docs", "guide.html")

	written, err := fsutil.WriteOutput(ctx, path, []byte("a"))
	if err != nil || !written {
		t.Fatalf("first WriteOutput() = %v, %v; want true, nil", written, err)
	}

	written, err = fsutil.WriteOutput(ctx, path, []byte("a"))
	if err != nil || written {
		t.Errorf("unchanged WriteOutput() = %v, %v; want false, nil", written, err)
	}

	written, err = fsutil.WriteOutput(ctx, path, []byte("b"))
	if err != nil || !written {
		t.Errorf("changed WriteOutput() = %v, %v; want true, nil", written, err)
	}
}

func TestReadExisting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	got, err := fsutil.ReadExisting(filepath.Join(dir, "missing.html"))
	if err != nil || got != nil {
		t.Fatalf("ReadExisting(missing) = %q, %v; want nil, nil", got, err)
	}

	path := filepath.Join(dir, "page.html")
	if err := os.WriteFile(path, []byte("<p>x</p>"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err = fsutil.ReadExisting(path)
	if err != nil || string(got) != "<p>x</p>" {
		t.Errorf("ReadExisting() = %q, %v; want <p>x</p>, nil", got, err)
	}

	if _, err := fsutil.ReadExisting(dir); err == nil {
		t.Error("ReadExisting(directory) succeeded; want error")
	}
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	root := filepath.FromSlash("/work")
	out := filepath.FromSlash("/work/site")

	tests := []struct {
		name   string
		source string
		ext    string
		want   string
	}{
		{"top level", "/work/README.md", ".html", "/work/site/README.html"},
		{"nested", "/work/docs/guide.markdown", ".txt", "/work/site/docs/guide.txt"},
		{"outside root", "/elsewhere/notes.md", ".html", "/work/site/notes.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fsutil.OutputPath(root, filepath.FromSlash(tt.source), out, tt.ext)
			if err != nil {
				t.Fatalf("OutputPath() error = %v", err)
			}
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("OutputPath() = %q, want %q", got, filepath.FromSlash(tt.want))
			}
		})
	}
}
