// Package goldmark parses Markdown into mdast snapshots using the goldmark library.
//
// Besides CommonMark and GFM it recognizes:
//   - component tags: HTML-like tags whose name is not a known HTML element
//     (or that the caller declares as components), with their content grouped
//     as children
//   - wikilinks: [[target]] and [[target|label]]
//   - YAML ("---") and TOML ("+++") frontmatter at the start of the source
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gomdview/pkg/mdast"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser turns Markdown source into mdast snapshots.
// A Parser is safe for concurrent use.
type Parser struct {
	flavor      string
	md          goldmark.Markdown
	isComponent func(name string) bool
}

type settings struct {
	wikilinks   bool
	typographer bool
	linkify     bool
	isComponent func(name string) bool
}

// Option configures a Parser.
type Option func(*settings)

// WithWikilinks enables [[target]] and [[target|label]] links.
func WithWikilinks(enabled bool) Option {
	return func(s *settings) { s.wikilinks = enabled }
}

// WithTypographer enables smart quotes, dashes and ellipses.
func WithTypographer(enabled bool) Option {
	return func(s *settings) { s.typographer = enabled }
}

// WithLinkify enables bare URL detection. GFM always has it.
func WithLinkify(enabled bool) Option {
	return func(s *settings) { s.linkify = enabled }
}

// WithComponentMatcher sets the predicate that decides whether a tag name
// denotes a component. The default treats every name that is not a known
// HTML element as a component.
func WithComponentMatcher(match func(name string) bool) Option {
	return func(s *settings) { s.isComponent = match }
}

// New creates a new goldmark-based parser for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "commonmark".
func New(flavor string, opts ...Option) *Parser {
	cfg := settings{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.isComponent == nil {
		cfg.isComponent = func(name string) bool { return !IsHTMLElement(name) }
	}

	f := flavorOrDefault(flavor)
	return &Parser{
		flavor:      f,
		md:          newGoldmarkInstance(f, cfg),
		isComponent: cfg.isComponent,
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse converts raw Markdown bytes into a fully-populated Snapshot.
//
// The method:
//  1. Copies the content and builds the line index.
//  2. Extracts frontmatter and blanks it out for the Markdown parser.
//  3. Parses with goldmark and maps the result to mdast with byte ranges.
//  4. Groups component open/close tags into component nodes.
//  5. Checks that every node range lies inside the content.
//
// Returns nil and an error if parsing fails or ctx is cancelled.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot := mdast.NewSnapshot(path, copyContent(content))

	work := snapshot.Content
	if fm := extractFrontmatter(work); fm != nil {
		snapshot.Frontmatter = fm
		work = blankRange(work, fm.Range)
	}

	gmDoc := p.md.Parser().Parse(text.NewReader(work))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	state := newGroupState()
	snapshot.Root = p.newMapper(work, state).mapDocument(gmDoc)
	groupComponents(snapshot.Root, state)
	mdast.SetFile(snapshot.Root, snapshot)

	if err := validateRanges(snapshot); err != nil {
		return nil, err
	}

	return snapshot, nil
}

func (p *Parser) newMapper(src []byte, state *groupState) *mapper {
	return &mapper{
		src:         src,
		isComponent: p.isComponent,
		state:       state,
		reparse: func(outer []byte, segs []text.Segment) []*mdast.Node {
			return p.reparse(outer, segs, state)
		},
	}
}

// reparse parses the concatenated segments as a standalone document and
// translates the resulting ranges back to outer coordinates.
func (p *Parser) reparse(outer []byte, segs []text.Segment, state *groupState) []*mdast.Node {
	var buf []byte
	var offsets offsetMap
	for _, seg := range segs {
		offsets.add(len(buf), seg.Start)
		buf = append(buf, outer[seg.Start:seg.Stop]...)
	}

	root := p.newMapper(buf, state).mapDocument(p.md.Parser().Parse(text.NewReader(buf)))

	for n := range mdast.All(root) {
		n.Range = offsets.rangeToGlobal(n.Range)
	}

	return root.Children()
}

// validateRanges reports the first node whose range falls outside the content.
func validateRanges(snapshot *mdast.Snapshot) error {
	bad := mdast.FindFirst(snapshot.Root, func(n *mdast.Node) bool {
		return !snapshot.Valid(n.Range)
	})
	if bad != nil {
		return fmt.Errorf("invalid source range %s for %s node in %q", bad.Range, bad.Kind, snapshot.Path)
	}
	return nil
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string, cfg settings) goldmark.Markdown {
	var exts []goldmark.Extender

	switch flavor {
	case FlavorGFM:
		exts = append(exts, extension.GFM)
	case FlavorCommonMark:
		if cfg.linkify {
			exts = append(exts, extension.Linkify)
		}
	}
	if cfg.typographer {
		exts = append(exts, extension.Typographer)
	}
	if cfg.wikilinks {
		exts = append(exts, &wikilinkExtension{})
	}

	return goldmark.New(goldmark.WithExtensions(exts...))
}

// copyContent creates a copy of the content slice to ensure immutability.
func copyContent(content []byte) []byte {
	if content == nil {
		return []byte{}
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
