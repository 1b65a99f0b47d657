package fsutil_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/gomdview/pkg/fsutil"
)

func FuzzWriteOutputReadSource(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("# hello\n"))
	f.Add([]byte("<p>a</p>\n<p>b</p>\n"))
	f.Add([]byte("\x00\x01\x02\x03"))
	f.Add(make([]byte, 1024))

	f.Fuzz(func(t *testing.T, content []byte) {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "out", "doc.md")

		if _, err := fsutil.WriteOutput(ctx, path, content); err != nil {
			t.Fatalf("WriteOutput failed: %v", err)
		}

		src, err := fsutil.ReadSource(ctx, path)
		if err != nil {
			t.Fatalf("ReadSource failed: %v", err)
		}
		if !bytes.Equal(src.Content, content) {
			t.Errorf("content mismatch: got %d bytes, want %d", len(src.Content), len(content))
		}

		stale, err := src.Stale(ctx)
		if err != nil {
			t.Fatalf("Stale failed: %v", err)
		}
		if stale {
			t.Error("freshly read source reported stale")
		}

		if _, err := os.Stat(path); err != nil {
			t.Fatalf("stat: %v", err)
		}
	})
}
