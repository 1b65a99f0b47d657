package goldmark

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomdview/pkg/mdast"
)

// ErrUnsupportedFrontmatter is returned when decoding a frontmatter format
// that has no decoder.
var ErrUnsupportedFrontmatter = errors.New("unsupported frontmatter format")

// extractFrontmatter detects a frontmatter block at the very start of content.
// YAML blocks are delimited by "---" and closed by "---" or "...";
// TOML blocks are delimited by "+++".
// It returns nil when content does not start with a complete block.
func extractFrontmatter(content []byte) *mdast.Frontmatter {
	lines := mdast.BuildLines(content)
	if len(lines) < 2 {
		return nil
	}

	first := lineText(content, lines[0])
	var format mdast.FrontmatterFormat
	var closers []string
	switch string(first) {
	case "---":
		format, closers = mdast.FrontmatterYAML, []string{"---", "..."}
	case "+++":
		format, closers = mdast.FrontmatterTOML, []string{"+++"}
	default:
		return nil
	}

	for i := 1; i < len(lines); i++ {
		text := string(lineText(content, lines[i]))
		for _, closer := range closers {
			if text != closer {
				continue
			}
			body := content[lines[0].EndOffset:lines[i].StartOffset]
			return &mdast.Frontmatter{
				Format: format,
				Text:   string(body),
				Range:  mdast.NewRange(0, lines[i].EndOffset),
			}
		}
	}

	return nil
}

// blankRange returns a copy of content with every byte in r replaced by a
// space, except line feeds. Offsets of everything else are unchanged.
func blankRange(content []byte, r mdast.SourceRange) []byte {
	out := make([]byte, len(content))
	copy(out, content)
	for i := r.StartOffset; i < r.EndOffset; i++ {
		if out[i] != '\n' {
			out[i] = ' '
		}
	}
	return out
}

func lineText(content []byte, line mdast.LineInfo) []byte {
	return bytes.TrimRight(content[line.StartOffset:line.NewlineStart], " \t")
}

// DecodeFrontmatter unmarshals the frontmatter body into v.
// Only YAML frontmatter can be decoded; TOML yields ErrUnsupportedFrontmatter.
func DecodeFrontmatter(fm *mdast.Frontmatter, v any) error {
	if fm == nil {
		return nil
	}
	if fm.Format != mdast.FrontmatterYAML {
		return fmt.Errorf("%w: %s", ErrUnsupportedFrontmatter, fm.Format)
	}
	if err := yaml.Unmarshal([]byte(fm.Text), v); err != nil {
		return fmt.Errorf("decode frontmatter: %w", err)
	}
	return nil
}
