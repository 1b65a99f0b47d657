// Package config defines the configuration types for gomdview.
// These types are plain data structures; loading and merging live in
// internal/configloader.
package config

import (
	"github.com/yaklabco/gomdview/pkg/view"
)

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	return f == FlavorCommonMark || f == FlavorGFM
}

// OutputFormat selects the render target.
type OutputFormat string

const (
	// FormatHTML writes an HTML fragment.
	FormatHTML OutputFormat = "html"
	// FormatPage writes a standalone HTML document.
	FormatPage OutputFormat = "page"
	// FormatTerm writes styled text for a terminal.
	FormatTerm OutputFormat = "term"
)

// FrontmatterMode controls what happens to a document's frontmatter.
type FrontmatterMode string

const (
	// FrontmatterHide drops the frontmatter from the output.
	FrontmatterHide FrontmatterMode = "hide"
	// FrontmatterShow prints the frontmatter before the rendered document.
	FrontmatterShow FrontmatterMode = "show"
	// FrontmatterValidate fails documents whose frontmatter is not valid YAML.
	FrontmatterValidate FrontmatterMode = "validate"
)

// IsValid returns true if the frontmatter mode is known.
func (m FrontmatterMode) IsValid() bool {
	switch m {
	case FrontmatterHide, FrontmatterShow, FrontmatterValidate:
		return true
	default:
		return false
	}
}

// HighlightConfig configures code block highlighting.
type HighlightConfig struct {
	// Disabled turns highlighting off.
	Disabled bool `mapstructure:"disabled" yaml:"disabled"`

	// Theme is a chroma style name.
	Theme string `mapstructure:"theme" yaml:"theme"`

	// Classes emits CSS classes instead of inline styles (HTML only).
	Classes bool `mapstructure:"classes" yaml:"classes"`

	// Stylesheet is the URL of the stylesheet for class-based highlighting.
	Stylesheet string `mapstructure:"stylesheet" yaml:"stylesheet"`

	// Integrity is the subresource integrity hash of Stylesheet.
	Integrity string `mapstructure:"integrity" yaml:"integrity"`
}

// Config is the root configuration structure for gomdview.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `mapstructure:"flavor" yaml:"flavor"`

	// Wikilinks enables [[target]] and [[target|label]] links.
	Wikilinks bool `mapstructure:"wikilinks" yaml:"wikilinks"`

	// HardLineBreaks renders soft line breaks as hard breaks.
	HardLineBreaks bool `mapstructure:"hard_line_breaks" yaml:"hard_line_breaks"`

	// Typographer replaces quotes and dashes with typographic punctuation.
	Typographer bool `mapstructure:"typographer" yaml:"typographer"`

	// Linkify turns bare URLs into links.
	Linkify bool `mapstructure:"linkify" yaml:"linkify"`

	// Frontmatter controls frontmatter handling.
	Frontmatter FrontmatterMode `mapstructure:"frontmatter" yaml:"frontmatter"`

	// Highlight configures code block highlighting.
	Highlight HighlightConfig `mapstructure:"highlight" yaml:"highlight"`

	// HeadingIDs adds GitHub-style id attributes to headings in HTML output.
	HeadingIDs bool `mapstructure:"heading_ids" yaml:"heading_ids"`

	// Width is the terminal layout width. 0 uses the terminal's width.
	Width int `mapstructure:"width" yaml:"width"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Format selects the render target.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// Output is a directory that receives one rendered file per input.
	Output string `mapstructure:"-" yaml:"-"`

	// Select is a CSS selector applied to HTML output.
	Select string `mapstructure:"-" yaml:"-"`

	// Trace prints the render trace of each document.
	Trace bool `mapstructure:"-" yaml:"-"`

	// TOC prepends a table of contents to standalone pages.
	TOC bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:      FlavorGFM,
		Frontmatter: FrontmatterHide,
		Highlight: HighlightConfig{
			Theme: view.DefaultTheme,
		},
		Format: FormatTerm,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// RenderingOptions converts the configuration into the options of a render pass.
func (c *Config) RenderingOptions() view.Options {
	opts := view.DefaultOptions()
	if c == nil {
		return opts
	}

	if c.Flavor == FlavorCommonMark {
		opts.Parse.Flavor = view.FlavorCommonMark
	}
	opts.Parse.Typographer = c.Typographer
	opts.Parse.Linkify = c.Linkify
	opts.Wikilinks = c.Wikilinks
	opts.HardLineBreaks = c.HardLineBreaks
	opts.Debug = c.Trace

	if c.Highlight.Theme != "" {
		opts.Theme = c.Highlight.Theme
	}
	opts.Highlight = view.HighlightOptions{
		Disabled:   c.Highlight.Disabled,
		Classes:    c.Highlight.Classes,
		Stylesheet: c.Highlight.Stylesheet,
		Integrity:  c.Highlight.Integrity,
	}
	return opts
}
