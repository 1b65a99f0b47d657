package markdown

import (
	"context"

	"github.com/yaklabco/gomdview/pkg/mdast"
	goldmarkparser "github.com/yaklabco/gomdview/pkg/parser/goldmark"
	"github.com/yaklabco/gomdview/pkg/view"
)

// Parser parses Markdown content into a Snapshot.
//
// Implementations must be:
//   - deterministic for a given (options, path, content) tuple,
//   - side-effect free (no I/O, no global state mutation).
type Parser interface {
	// Parse converts raw Markdown bytes into a Snapshot whose nodes all carry
	// byte ranges within content. No partial snapshot is returned on error.
	Parse(ctx context.Context, path string, content []byte) (*mdast.Snapshot, error)
}

// NewParser returns the goldmark-backed parser configured from opts.
// A tag is treated as a component when isComponent reports true for its name
// or when it is not a known HTML element.
func NewParser(opts view.Options, isComponent func(name string) bool) Parser {
	return goldmarkparser.New(opts.Parse.Flavor,
		goldmarkparser.WithWikilinks(opts.Wikilinks),
		goldmarkparser.WithTypographer(opts.Parse.Typographer),
		goldmarkparser.WithLinkify(opts.Parse.Linkify),
		goldmarkparser.WithComponentMatcher(func(name string) bool {
			if isComponent != nil && isComponent(name) {
				return true
			}
			return !goldmarkparser.IsHTMLElement(name)
		}),
	)
}
