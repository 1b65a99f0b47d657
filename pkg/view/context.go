// Package view defines the protocol a markdown render pass drives to build
// views of an arbitrary type, independent of any particular output target.
package view

import (
	"fmt"

	"github.com/yaklabco/gomdview/pkg/component"
	"github.com/yaklabco/gomdview/pkg/mdast"
)

// RenderContext is implemented by an output target. V is the view type the
// target produces and E is its platform event type.
//
// Every method that takes views receives children that are already rendered;
// a render pass never hands markdown source to the context.
type RenderContext[V, E any] interface {
	// ElementWithAttributes wraps inside in a structural element of the given kind.
	ElementWithAttributes(kind ElementKind, inside V, attrs ElementAttributes[E]) V

	// SpanWithRawContent emits raw HTML inside a span. Sanitizing is the caller's concern.
	SpanWithRawContent(html string, attrs ElementAttributes[E]) V

	// HorizontalRule emits a thematic break.
	HorizontalRule(attrs ElementAttributes[E]) V

	// LineBreak emits a hard line break.
	LineBreak() V

	// Fragment concatenates children without a wrapping element.
	Fragment(children []V) V

	// Link wraps inside in a hyperlink to href.
	Link(inside V, href string) V

	// Image emits an image.
	Image(src, alt string) V

	// Text emits plain text.
	Text(s string) V

	// Checkbox emits a read-only task list checkbox.
	Checkbox(checked bool, attrs ElementAttributes[E]) V

	// MountExternalResource injects a stylesheet-like resource. Best effort.
	MountExternalResource(rel, href, integrity, crossorigin string)

	// Options returns the options for the pass. Read once per pass.
	Options() Options

	// MakeHandler returns a click handler attributing events to rng.
	MakeHandler(rng mdast.SourceRange, stopPropagation bool) Handler[E]

	// CaptureFrontmatter hands raw frontmatter text to the host. Last write wins.
	CaptureFrontmatter(text string)

	// HasCustomComponent reports whether a component called name is registered.
	HasCustomComponent(name string) bool

	// RenderCustomComponent invokes the registered component called name.
	RenderCustomComponent(name string, props component.Props[V]) (V, error)

	// HasLinkOverride reports whether links are rendered by a host callback.
	HasLinkOverride() bool

	// RenderLinkOverride renders a link or image through the host callback.
	RenderLinkOverride(link LinkDescription[V]) (V, error)
}

// TraceReporter is optionally implemented by a RenderContext that wants the
// debug trace of each pass. Implementations should ignore a trace equal to
// the previous one.
type TraceReporter interface {
	ReportRenderTrace(lines []string)
}

// LinkDescription describes a link or image for default rendering and for
// link overrides.
type LinkDescription[V any] struct {
	// URL is the destination. Wikilinks carry their target here.
	URL string

	// Title is the optional link title.
	Title string

	// Content is the rendered link text, or the rendered alt text for images.
	Content V

	// Image is true for ![alt](src).
	Image bool

	// Wikilink is true for [[target]] and [[target|label]].
	Wikilink bool

	// Range is the byte span of the construct in the source.
	Range mdast.SourceRange
}

// LinkOverrideError wraps a failure reported by a link override callback.
type LinkOverrideError struct {
	URL string
	Err error
}

func (e *LinkOverrideError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("link override failed: %v", e.Err)
	}
	return fmt.Sprintf("link override failed for %q: %v", e.URL, e.Err)
}

func (e *LinkOverrideError) Unwrap() error {
	return e.Err
}
