package markdown_test

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomdview/pkg/component"
	"github.com/yaklabco/gomdview/pkg/mdast"
	"github.com/yaklabco/gomdview/pkg/view"
)

// fakeEvent is the platform event of fakeContext.
type fakeEvent struct{}

// fakeContext renders views as compact HTML-like strings and records every
// side effect.
type fakeContext struct {
	opts         view.Options
	registry     *component.Registry[string]
	linkOverride func(view.LinkDescription[string]) (string, error)

	handlers    []mdast.SourceRange
	mounts      []string
	frontmatter []string
	traces      [][]string
}

var _ view.RenderContext[string, fakeEvent] = (*fakeContext)(nil)

func newFakeContext(entries ...component.Entry[string]) *fakeContext {
	opts := view.DefaultOptions()
	opts.Highlight.Disabled = true
	return &fakeContext{opts: opts, registry: component.NewRegistry(entries...)}
}

func decorate(attrs view.ElementAttributes[fakeEvent]) string {
	var b strings.Builder
	if c := attrs.Class(); c != "" {
		fmt.Fprintf(&b, " class=%q", c)
	}
	if attrs.Style != "" {
		fmt.Fprintf(&b, " style=%q", attrs.Style)
	}
	return b.String()
}

func (f *fakeContext) ElementWithAttributes(kind view.ElementKind, inside string, attrs view.ElementAttributes[fakeEvent]) string {
	tag := view.TagName(kind)
	open := tag
	if ol, ok := kind.(view.Ol); ok {
		open = fmt.Sprintf("%s start=%d", tag, ol.Start)
	}
	return fmt.Sprintf("<%s%s>%s</%s>", open, decorate(attrs), inside, tag)
}

func (f *fakeContext) SpanWithRawContent(html string, _ view.ElementAttributes[fakeEvent]) string {
	return "{raw:" + html + "}"
}

func (f *fakeContext) HorizontalRule(view.ElementAttributes[fakeEvent]) string { return "<hr>" }
func (f *fakeContext) LineBreak() string                                      { return "<br>" }
func (f *fakeContext) Fragment(children []string) string                      { return strings.Join(children, "") }
func (f *fakeContext) Text(s string) string                                   { return s }

func (f *fakeContext) Link(inside, href string) string {
	return fmt.Sprintf("<a href=%q>%s</a>", href, inside)
}

func (f *fakeContext) Image(src, alt string) string {
	return fmt.Sprintf("<img src=%q alt=%q>", src, alt)
}

func (f *fakeContext) Checkbox(checked bool, _ view.ElementAttributes[fakeEvent]) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

func (f *fakeContext) MountExternalResource(rel, href, integrity, crossorigin string) {
	f.mounts = append(f.mounts, strings.Join([]string{rel, href, integrity, crossorigin}, " "))
}

func (f *fakeContext) Options() view.Options { return f.opts }

func (f *fakeContext) MakeHandler(rng mdast.SourceRange, stop bool) view.Handler[fakeEvent] {
	f.handlers = append(f.handlers, rng)
	return view.NewHandler[fakeEvent](rng, stop, nil)
}

func (f *fakeContext) CaptureFrontmatter(text string) {
	f.frontmatter = append(f.frontmatter, text)
}

func (f *fakeContext) HasCustomComponent(name string) bool { return f.registry.Has(name) }

func (f *fakeContext) RenderCustomComponent(name string, props component.Props[string]) (string, error) {
	fn, ok := f.registry.Lookup(name)
	if !ok {
		return "", component.UnknownComponent(name)
	}
	return fn(props)
}

func (f *fakeContext) HasLinkOverride() bool { return f.linkOverride != nil }

func (f *fakeContext) RenderLinkOverride(link view.LinkDescription[string]) (string, error) {
	return f.linkOverride(link)
}

func (f *fakeContext) ReportRenderTrace(lines []string) {
	f.traces = append(f.traces, lines)
}

// counter mirrors the Counter component: an optional int "initial", default 0.
func counter(props component.Props[string]) (string, error) {
	n, err := component.OptionalOr(props.Attrs, "initial", 0)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("counter:%d", n), nil
}

func box(props component.Props[string]) (string, error) {
	return `<div style="border: 2px solid blue">` + props.Children + "</div>", nil
}
