package reporter

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer receives rendered documents, JSON reports and diffs
	// (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter receives failures, traces and summaries of the text
	// format (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the report format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowTrace prints the render trace of each document.
	ShowTrace bool

	// ShowSummary prints a detailed summary block instead of a single line.
	ShowSummary bool

	// Duration is the run time shown in the detailed summary.
	Duration time.Duration

	// Compact uses minified JSON.
	Compact bool

	// WorkingDir is the directory to make displayed paths relative to.
	// Paths outside it are kept as-is.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatText,
		Color:       "auto",
	}
}

// displayPath makes path relative to the working directory when it lies below it.
func (o Options) displayPath(path string) string {
	if o.WorkingDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(o.WorkingDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}
