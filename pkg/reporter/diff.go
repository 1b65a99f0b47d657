package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gomdview/internal/ui/pretty"
	"github.com/yaklabco/gomdview/pkg/runner"
)

// DiffReporter writes the outputs a check run found outdated as git-style
// unified diffs, followed by a diffstat line.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	if result == nil {
		return 0, nil
	}

	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	var files, additions, deletions int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprint(bw, r.styles.FormatFailureAs(r.opts.displayPath(file.Path), file.Path, file.Error))
			continue
		}
		if !file.Diff.HasChanges() {
			continue
		}

		files++
		additions += file.Diff.Additions
		deletions += file.Diff.Deletions
		fmt.Fprint(bw, r.styles.FormatDiff(file.Diff, r.opts.displayPath(file.Diff.Path)))
	}

	if files > 0 {
		fmt.Fprint(bw, r.styles.FormatDiffStat(files, additions, deletions))
	}

	return problems(result), nil
}
