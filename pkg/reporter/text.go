package reporter

import (
	"bufio"
	"context"
	"fmt"
	"time"

	"github.com/yaklabco/gomdview/internal/ui/pretty"
	"github.com/yaklabco/gomdview/pkg/runner"
)

// TextReporter writes rendered documents to Writer and failures, traces and
// the summary to ErrorWriter.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewTextReporter creates a new text reporter. Styling follows ErrorWriter,
// where all decorated output goes.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.ErrorWriter)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	out := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	errOut := bufio.NewWriterSize(r.opts.ErrorWriter, bufWriterSize)
	defer func() {
		if flushErr := out.Flush(); err == nil {
			err = flushErr
		}
		if flushErr := errOut.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	multiple := len(result.Files) > 1
	toDisk := false

	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)

		if file.Error != nil {
			fmt.Fprint(errOut, r.styles.FormatFailureAs(path, file.Path, file.Error))
			continue
		}
		if file.Output == nil {
			continue
		}

		if r.opts.ShowTrace {
			for _, line := range file.Output.Trace {
				fmt.Fprintln(errOut, r.styles.Dim.Render("trace "+path+": "+line))
			}
		}
		if file.OutputPath != "" {
			toDisk = true
			continue
		}

		if multiple {
			fmt.Fprintln(out, r.styles.FormatFileHeader(path))
		}
		if _, err := out.Write(file.Output.Content); err != nil {
			return 0, fmt.Errorf("write output: %w", err)
		}
	}

	switch {
	case r.opts.ShowSummary:
		fmt.Fprint(errOut, r.styles.FormatSummary(result.Stats, formatDuration(r.opts.Duration)))
	case toDisk || result.Stats.FilesDiscovered != 1 || result.HasFailures():
		fmt.Fprint(errOut, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return problems(result), nil
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	return d.Round(time.Millisecond).String()
}
