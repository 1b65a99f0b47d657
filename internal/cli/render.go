package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gomdview/internal/configloader"
	"github.com/yaklabco/gomdview/internal/logging"
	"github.com/yaklabco/gomdview/internal/ui/pretty"
	"github.com/yaklabco/gomdview/pkg/config"
	"github.com/yaklabco/gomdview/pkg/fsutil"
	"github.com/yaklabco/gomdview/pkg/reporter"
	"github.com/yaklabco/gomdview/pkg/runner"
	"github.com/yaklabco/gomdview/pkg/termview"
)

// ErrRenderFailed is returned when at least one document failed to render.
var ErrRenderFailed = errors.New("render failed")

// ErrOutputsOutdated is returned by a check run that found outputs on disk
// differing from a fresh render.
var ErrOutputsOutdated = errors.New("outputs are outdated")

// ErrInvalidUsage marks flag combinations and values the command rejects.
var ErrInvalidUsage = errors.New("invalid usage")

var errCheckNeedsOut = fmt.Errorf("%w: --check requires --out", ErrInvalidUsage)

// stdinPath is the path argument that reads a document from standard input.
const stdinPath = "-"

type renderFlags struct {
	format      string
	flavor      string
	frontmatter string
	theme       string
	ignore      []string
	summary     bool
	check       bool
	report      string
}

func newRenderCommand() *cobra.Command {
	var cfg config.Config
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [paths...]",
		Short: "Render Markdown files",
		Long:  renderLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, &cfg, flags)
		},
	}

	addRenderFlags(cmd, &cfg, flags)

	return cmd
}

const renderLongDescription = `Render Markdown files for the terminal or as HTML.

By default, renders all .md and .markdown files in the current directory
and subdirectories to standard output. Specify paths to render specific
files or directories, or "-" to read a document from standard input.

Embedded components such as <Counter initial="3"/>, <box> and
<Callout kind="note"> are rendered by the built-in component registry.

Examples:
  gomdview render README.md                 # Render for the terminal
  gomdview render --format html doc.md      # Print an HTML fragment
  gomdview render --format page -o site/    # Write standalone pages
  gomdview render --format html --select h2 # Only the level 2 headings
  gomdview render --format page -o site/ --check  # Diff outdated pages
  gomdview render --report json docs/       # Machine readable run report
  cat notes.md | gomdview render -          # Render standard input`

func addRenderFlags(cmd *cobra.Command, cfg *config.Config, flags *renderFlags) {
	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatTerm), "output format: term, html, page")
	cmd.Flags().StringVar(&flags.flavor, "flavor", string(config.FlavorGFM), "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringVarP(&cfg.Output, "out", "o", "", "directory receiving one output file per input")
	cmd.Flags().StringVar(&cfg.Select, "select", "", "CSS selector limiting HTML output to matching elements")
	cmd.Flags().StringVar(&flags.frontmatter, "frontmatter", string(config.FrontmatterHide),
		"frontmatter handling: hide, show, validate")
	cmd.Flags().BoolVar(&cfg.Trace, "trace", false, "print the render trace of each document to stderr")
	cmd.Flags().BoolVar(&cfg.HeadingIDs, "heading-ids", false, "add id attributes to HTML headings")
	cmd.Flags().BoolVar(&cfg.TOC, "toc", false, "prepend a table of contents to standalone pages")
	cmd.Flags().BoolVar(&cfg.Wikilinks, "wikilinks", false, "enable [[wikilinks]]")
	cmd.Flags().BoolVar(&cfg.HardLineBreaks, "hard-breaks", false, "render soft line breaks as hard breaks")
	cmd.Flags().BoolVar(&cfg.Typographer, "typographer", false, "use typographic quotes and dashes")
	cmd.Flags().BoolVar(&cfg.Linkify, "linkify", false, "turn bare URLs into links")
	cmd.Flags().StringVar(&flags.theme, "theme", "", "code highlighting theme (see 'gomdview themes')")
	cmd.Flags().BoolVar(&cfg.Highlight.Disabled, "no-highlight", false, "disable code highlighting")
	cmd.Flags().BoolVar(&cfg.Highlight.Classes, "highlight-classes", false, "emit highlight CSS classes instead of inline styles")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().IntVar(&cfg.Width, "width", 0, "terminal layout width (0 = detect)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a detailed summary to stderr")
	cmd.Flags().BoolVar(&flags.check, "check", false, "compare outputs in --out instead of writing them")
	cmd.Flags().StringVar(&flags.report, "report", "", "report format: text, json, diff (default text, diff with --check)")
}

func runRender(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *renderFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	// Only values explicitly provided on the command line override config files.
	if cmd.Flags().Changed("format") {
		cliCfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("flavor") {
		cliCfg.Flavor = config.Flavor(flags.flavor)
	}
	if cmd.Flags().Changed("frontmatter") {
		cliCfg.Frontmatter = config.FrontmatterMode(flags.frontmatter)
	}
	cliCfg.Highlight.Theme = flags.theme
	cliCfg.Ignore = flags.ignore

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return &ConfigError{Err: err}
	}
	cfg := loadResult.Config

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.ErrOrStderr()))

	for _, warning := range loadResult.Warnings {
		fmt.Fprint(cmd.ErrOrStderr(), styles.FormatWarning(warning))
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}
	logger.Debug("configuration resolved",
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldFormat, cfg.Format,
		logging.FieldTheme, cfg.Highlight.Theme,
		logging.FieldJobs, cfg.Jobs,
	)

	if flags.check && cfg.Output == "" {
		return errCheckNeedsOut
	}
	reportFormat, err := reportFormatFor(flags)
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	settings := renderSettings{
		cfg:   cfg,
		width: layoutWidth(cfg.Width, stdout),
		color: cfg.Output == "" && reportFormat == reporter.FormatText && pretty.IsColorEnabled(colorMode, stdout),
		out:   stdout,
	}

	start := time.Now()
	var result *runner.Result
	if len(args) == 1 && args[0] == stdinPath {
		result, err = renderStdin(ctx, cmd.InOrStdin(), settings)
	} else {
		result, err = runner.New(newRendererFactory(settings)).Run(ctx, runner.Options{
			Paths:        args,
			WorkingDir:   workDir,
			ExcludeGlobs: cfg.Ignore,
			Jobs:         cfg.Jobs,
			OutputDir:    cfg.Output,
			OutputExt:    cfg.Format.Extension(),
			Check:        flags.check,
		})
	}
	if err != nil {
		return errors.Join(errors.New("render run failed"), err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      stdout,
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      reportFormat,
		Color:       colorMode,
		ShowTrace:   cfg.Trace,
		ShowSummary: flags.summary,
		Duration:    time.Since(start),
		WorkingDir:  workDir,
	})
	if err != nil {
		return err
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	logger.Debug("render finished",
		logging.FieldFilesRendered, result.Stats.FilesRendered,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
	)

	switch {
	case result.HasFailures():
		return ErrRenderFailed
	case result.HasOutdated():
		return ErrOutputsOutdated
	}
	return nil
}

func reportFormatFor(flags *renderFlags) (reporter.Format, error) {
	if flags.report == "" && flags.check {
		return reporter.FormatDiff, nil
	}
	format, err := reporter.ParseFormat(flags.report)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}
	return format, nil
}

// renderStdin renders standard input as a single in-memory document.
func renderStdin(ctx context.Context, in io.Reader, settings renderSettings) (*runner.Result, error) {
	content, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}

	renderer, err := newRendererFactory(settings)()
	if err != nil {
		return nil, err
	}

	outcome := runner.FileOutcome{Path: stdinPath}
	result := &runner.Result{Stats: runner.Stats{FilesDiscovered: 1}}
	outcome.Output, outcome.Error = renderer.RenderFile(ctx, &fsutil.Source{Path: stdinPath, Content: content})
	if outcome.Error != nil {
		outcome.Output = nil
		result.Stats.FilesErrored++
	} else {
		result.Stats.FilesRendered++
		result.Stats.BytesRendered += len(outcome.Output.Content)
	}
	result.Files = append(result.Files, outcome)
	return result, nil
}

// layoutWidth resolves the terminal layout width: an explicit width wins,
// then the size of the output terminal, then the default.
func layoutWidth(configured int, out io.Writer) int {
	if configured > 0 {
		return configured
	}
	if f, ok := out.(*os.File); ok && pretty.IsTerminal(f) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 { //nolint:gosec // fd fits in int
			return width
		}
	}
	return termview.DefaultWidth
}
