package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/yaklabco/gomdview/internal/logging"
	"github.com/yaklabco/gomdview/pkg/diff"
	"github.com/yaklabco/gomdview/pkg/fsutil"
)

// Renderer renders one markdown source.
type Renderer interface {
	RenderFile(ctx context.Context, src *fsutil.Source) (*Output, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, src *fsutil.Source) (*Output, error)

// RenderFile implements Renderer.
func (f RendererFunc) RenderFile(ctx context.Context, src *fsutil.Source) (*Output, error) {
	return f(ctx, src)
}

// Factory creates a Renderer. Each worker owns one renderer, so renderers
// that keep per-pass state need no locking across files.
type Factory func() (Renderer, error)

// Runner orchestrates multi-file rendering.
type Runner struct {
	newRenderer Factory
}

// New creates a Runner that renders with renderers from factory.
func New(factory Factory) *Runner {
	return &Runner{newRenderer: factory}
}

// Run discovers files under opts.Paths and renders them with a worker pool.
// Outcomes are returned in path order regardless of completion order. A
// failing file does not stop the run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	opts.WorkingDir = workDir
	if opts.OutputDir != "" && !filepath.IsAbs(opts.OutputDir) {
		opts.OutputDir = filepath.Join(workDir, opts.OutputDir)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	renderers := make([]Renderer, jobs)
	for i := range renderers {
		renderer, err := r.newRenderer()
		if err != nil {
			return nil, fmt.Errorf("create renderer: %w", err)
		}
		renderers[i] = renderer
	}

	logging.FromContext(ctx).Debug("rendering files",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldJobs, jobs,
	)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for _, renderer := range renderers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, renderer, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

func worker(
	ctx context.Context,
	renderer Renderer,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	opts Options,
) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := renderOne(ctx, renderer, path, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

func renderOne(ctx context.Context, renderer Renderer, path string, opts Options) FileOutcome {
	ctx, logger := logging.WithDocument(ctx, path)
	outcome := FileOutcome{Path: path}

	src, err := fsutil.ReadSource(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	out, err := renderer.RenderFile(ctx, src)
	if err != nil {
		outcome.Error = fmt.Errorf("%s: %w", path, err)
		return outcome
	}

	stale, err := src.Stale(ctx)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	if stale {
		logger.Warn("source changed during render, skipping")
		outcome.Skipped = true
		return outcome
	}
	outcome.Output = out

	if opts.OutputDir == "" {
		logger.Debug("rendered", logging.FieldBytes, len(out.Content))
		return outcome
	}

	dest, err := fsutil.OutputPath(opts.WorkingDir, path, opts.OutputDir, opts.OutputExt)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.OutputPath = dest

	if opts.Check {
		existing, err := fsutil.ReadExisting(dest)
		if err != nil {
			outcome.Error = fmt.Errorf("%s: %w", dest, err)
			return outcome
		}
		outcome.Diff = diff.Compute(dest, existing, out.Content)
		logger.Debug("checked", logging.FieldOutput, dest, logging.FieldOutdated, outcome.Diff != nil)
		return outcome
	}

	written, err := fsutil.WriteOutput(ctx, dest, out.Content)
	if err != nil {
		outcome.Error = fmt.Errorf("%s: %w", dest, err)
		return outcome
	}
	outcome.Written = written

	logger.Debug("rendered", logging.FieldOutput, dest, logging.FieldBytes, len(out.Content))
	return outcome
}
