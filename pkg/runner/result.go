package runner

import "github.com/yaklabco/gomdview/pkg/diff"

// Output is the rendered form of one source plus what the pass captured.
type Output struct {
	Content []byte

	Frontmatter    string
	HasFrontmatter bool

	// Trace is set when the pass ran in debug mode.
	Trace []string
}

// FileOutcome is the result of rendering one file.
type FileOutcome struct {
	// Path is the source file path.
	Path string

	// Output is nil when Error is set or the file was skipped.
	Output *Output

	// OutputPath is where the output was written, if an output directory
	// was configured.
	OutputPath string

	// Written is false when the output on disk was already up to date.
	Written bool

	// Skipped is set when the source changed while it was being rendered.
	Skipped bool

	// Diff is set in check mode when the output on disk is missing or stale.
	Diff *diff.Diff

	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesRendered   int
	FilesSkipped    int
	FilesErrored    int
	FilesWritten    int
	FilesUnchanged  int
	FilesOutdated   int
	BytesRendered   int
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by path.
	Files []FileOutcome

	Stats Stats
}

// HasFailures reports whether any file failed to render.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasOutdated reports whether a check run found outputs that would change.
func (r *Result) HasOutdated() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesOutdated > 0
}

// Errors returns the per-file errors in path order.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, f := range r.Files {
		if f.Error != nil {
			errs = append(errs, f.Error)
		}
	}
	return errs
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
		return
	case outcome.Skipped:
		r.Stats.FilesSkipped++
		return
	}

	r.Stats.FilesRendered++
	if outcome.Output != nil {
		r.Stats.BytesRendered += len(outcome.Output.Content)
	}
	if outcome.OutputPath == "" {
		return
	}
	switch {
	case outcome.Diff != nil:
		r.Stats.FilesOutdated++
	case outcome.Written:
		r.Stats.FilesWritten++
	default:
		r.Stats.FilesUnchanged++
	}
}
