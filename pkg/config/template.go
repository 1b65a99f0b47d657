package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every setting and lists the available themes.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// Themes are the highlighting theme names listed by a full template.
	Themes []string

	// Components are the component names listed by a full template.
	Components []string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate(opts), nil
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	return []byte(DefaultTemplateHeader() + `

# Markdown flavor: commonmark or gfm
flavor: gfm

# Enable [[wikilinks]]
# wikilinks: false

# Code highlighting theme
# highlight:
#   theme: github

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"
`)
}

// generateFullTemplate creates a template documenting every setting.
func generateFullTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(`# gomdview configuration - Full Template
# See: https://github.com/yaklabco/gomdview
#
# Uncomment and modify settings as needed.

# Markdown flavor: commonmark or gfm
flavor: gfm

# Enable [[target]] and [[target|label]] links
wikilinks: false

# Render every line break in a paragraph as a hard break
hard_line_breaks: false

# Replace straight quotes and dashes with typographic punctuation
typographer: false

# Turn bare URLs into links
linkify: false

# Add GitHub-style id attributes to headings in HTML output
heading_ids: false

# Frontmatter handling: hide, show, or validate
frontmatter: hide

# Terminal layout width (0 = detect)
width: 0

# Code block highlighting
highlight:
  disabled: false
  theme: github
  # Emit CSS classes instead of inline styles (HTML output only)
  classes: false
  # Stylesheet mounted once per document when classes is true
  # stylesheet: "/assets/chroma.css"
  # integrity: "sha384-..."

# File patterns to ignore (glob patterns)
ignore:
  - "vendor/**"
  - "node_modules/**"
  - ".git/**"
`)

	if len(opts.Themes) > 0 {
		fmt.Fprintf(&buf, "\n# Available themes:\n#   %s\n",
			wrapComment(strings.Join(opts.Themes, ", "), commentWrapWidth))
	}
	if len(opts.Components) > 0 {
		fmt.Fprintf(&buf, "\n# Built-in components:\n#   %s\n",
			wrapComment(strings.Join(opts.Components, ", "), commentWrapWidth))
	}

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n#   ")
}

// templateToJSON renders the default configuration as JSON.
func templateToJSON() ([]byte, error) {
	defaults := NewConfig()
	cfg := map[string]any{
		"flavor":           defaults.Flavor,
		"wikilinks":        defaults.Wikilinks,
		"hard_line_breaks": defaults.HardLineBreaks,
		"typographer":      defaults.Typographer,
		"linkify":          defaults.Linkify,
		"frontmatter":      defaults.Frontmatter,
		"heading_ids":      defaults.HeadingIDs,
		"width":            defaults.Width,
		"highlight": map[string]any{
			"disabled": defaults.Highlight.Disabled,
			"theme":    defaults.Highlight.Theme,
			"classes":  defaults.Highlight.Classes,
		},
		"ignore": []string{"vendor/**", "node_modules/**", ".git/**"},
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gomdview configuration
# See: https://github.com/yaklabco/gomdview`
}
