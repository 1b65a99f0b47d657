package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yaklabco/gomdview/internal/ui/pretty"
	"github.com/yaklabco/gomdview/pkg/runner"
)

// ReportVersion is the current JSON report format version.
const ReportVersion = "1.0.0"

// File statuses in JSON reports.
const (
	StatusRendered  = "rendered"
	StatusWritten   = "written"
	StatusUnchanged = "unchanged"
	StatusOutdated  = "outdated"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path   string `json:"path"`
	Status string `json:"status"`

	// Output is the written output path.
	Output string `json:"output,omitempty"`

	// Content is the rendered document when it was not written to disk.
	Content string `json:"content,omitempty"`

	Bytes       int        `json:"bytes,omitempty"`
	Frontmatter *string    `json:"frontmatter,omitempty"`
	Trace       []string   `json:"trace,omitempty"`
	Additions   int        `json:"additions,omitempty"`
	Deletions   int        `json:"deletions,omitempty"`
	Error       *JSONError `json:"error,omitempty"`
}

// JSONError describes a failed file.
type JSONError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int `json:"filesDiscovered"`
	FilesRendered   int `json:"filesRendered"`
	FilesWritten    int `json:"filesWritten"`
	FilesUnchanged  int `json:"filesUnchanged"`
	FilesOutdated   int `json:"filesOutdated"`
	FilesSkipped    int `json:"filesSkipped"`
	FilesErrored    int `json:"filesErrored"`
	BytesRendered   int `json:"bytesRendered"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(r.buildOutput(result)); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return problems(result), nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: ReportVersion,
		Files:   make([]JSONFileResult, 0),
	}
	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesRendered:   stats.FilesRendered,
		FilesWritten:    stats.FilesWritten,
		FilesUnchanged:  stats.FilesUnchanged,
		FilesOutdated:   stats.FilesOutdated,
		FilesSkipped:    stats.FilesSkipped,
		FilesErrored:    stats.FilesErrored,
		BytesRendered:   stats.BytesRendered,
	}

	for _, file := range result.Files {
		output.Files = append(output.Files, r.fileResult(file))
	}
	return output
}

func (r *JSONReporter) fileResult(file runner.FileOutcome) JSONFileResult {
	res := JSONFileResult{Path: r.opts.displayPath(file.Path)}

	switch {
	case file.Error != nil:
		kind, msg := pretty.Classify(file.Error)
		msg = strings.TrimPrefix(msg, file.Path+": ")
		res.Status = StatusFailed
		res.Error = &JSONError{Kind: kind, Message: msg}
		return res
	case file.Skipped:
		res.Status = StatusSkipped
		return res
	}

	if out := file.Output; out != nil {
		res.Bytes = len(out.Content)
		res.Trace = out.Trace
		if out.HasFrontmatter {
			fm := out.Frontmatter
			res.Frontmatter = &fm
		}
		if file.OutputPath == "" {
			res.Content = string(out.Content)
		}
	}

	res.Output = r.opts.displayPath(file.OutputPath)
	switch {
	case file.OutputPath == "":
		res.Status = StatusRendered
	case file.Diff != nil:
		res.Status = StatusOutdated
		res.Additions = file.Diff.Additions
		res.Deletions = file.Diff.Deletions
	case file.Written:
		res.Status = StatusWritten
	default:
		res.Status = StatusUnchanged
	}
	return res
}
