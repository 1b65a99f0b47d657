// Package reporter writes the outcome of a render run: rendered documents,
// failures and summaries as text, a machine-readable JSON report, or diffs
// of outdated outputs.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gomdview/pkg/runner"
)

// Reporter formats and writes render results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of problem files (failed or outdated) and any
	// write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func problems(result *runner.Result) int {
	if result == nil {
		return 0
	}
	return result.Stats.FilesErrored + result.Stats.FilesOutdated
}
