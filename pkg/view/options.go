package view

// Markdown flavors understood by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// DefaultTheme is the highlighting style used when none is configured.
const DefaultTheme = "github"

// Options configures a render pass.
type Options struct {
	// Wikilinks enables [[target]] and [[target|label]] links.
	Wikilinks bool

	// HardLineBreaks renders soft line breaks as hard breaks.
	HardLineBreaks bool

	// Theme is the syntax highlighting style name.
	Theme string

	// Highlight controls how code blocks are highlighted.
	Highlight HighlightOptions

	// Parse holds options passed through to the parser.
	Parse ParseOptions

	// Debug enables the per-pass render trace.
	Debug bool
}

// HighlightOptions controls code block highlighting.
type HighlightOptions struct {
	// Disabled renders code blocks as plain text.
	Disabled bool

	// Classes emits CSS classes instead of inline styles.
	Classes bool

	// Stylesheet is mounted once per pass when Classes is set.
	Stylesheet string

	// Integrity is the subresource integrity hash of Stylesheet.
	Integrity string
}

// ParseOptions are passed through to the parser.
type ParseOptions struct {
	Flavor      string
	Typographer bool
	Linkify     bool
}

// DefaultOptions returns GFM parsing with inline-styled highlighting.
func DefaultOptions() Options {
	return Options{
		Theme: DefaultTheme,
		Parse: ParseOptions{Flavor: FlavorGFM},
	}
}

// ThemeOrDefault returns Theme, or DefaultTheme when unset.
func (o Options) ThemeOrDefault() string {
	if o.Theme == "" {
		return DefaultTheme
	}
	return o.Theme
}
