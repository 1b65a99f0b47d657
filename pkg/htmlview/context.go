package htmlview

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/gomdview/pkg/component"
	"github.com/yaklabco/gomdview/pkg/mdast"
	"github.com/yaklabco/gomdview/pkg/view"
)

// ElementWithAttributes implements view.RenderContext.
func (h *Host) ElementWithAttributes(kind view.ElementKind, inside *html.Node, attrs view.ElementAttributes[*Event]) *html.Node {
	n := newElement(view.TagName(kind))
	if ol, ok := kind.(view.Ol); ok {
		setAttr(n, "start", strconv.Itoa(ol.Start))
	}
	h.decorate(n, attrs)
	appendView(n, inside)
	return n
}

// SpanWithRawContent implements view.RenderContext. The raw HTML is parsed
// in the context of a span element.
func (h *Host) SpanWithRawContent(raw string, attrs view.ElementAttributes[*Event]) *html.Node {
	span := newElement("span")
	h.decorate(span, attrs)

	nodes, err := html.ParseFragment(strings.NewReader(raw), newElement("span"))
	if err != nil {
		span.AppendChild(&html.Node{Type: html.TextNode, Data: raw})
		return span
	}
	for _, n := range nodes {
		span.AppendChild(n)
	}
	return span
}

// HorizontalRule implements view.RenderContext.
func (h *Host) HorizontalRule(attrs view.ElementAttributes[*Event]) *html.Node {
	hr := newElement("hr")
	h.decorate(hr, attrs)
	return hr
}

// LineBreak implements view.RenderContext.
func (h *Host) LineBreak() *html.Node {
	return newElement("br")
}

// Fragment implements view.RenderContext. Fragments are document nodes;
// appending a fragment moves its children.
func (h *Host) Fragment(children []*html.Node) *html.Node {
	frag := NewFragment()
	for _, child := range children {
		appendView(frag, child)
	}
	return frag
}

// Link implements view.RenderContext.
func (h *Host) Link(inside *html.Node, href string) *html.Node {
	a := newElement("a")
	setAttr(a, "href", href)
	appendView(a, inside)
	return a
}

// Image implements view.RenderContext.
func (h *Host) Image(src, alt string) *html.Node {
	img := newElement("img")
	setAttr(img, "src", src)
	setAttr(img, "alt", alt)
	return img
}

// Text implements view.RenderContext.
func (h *Host) Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Checkbox implements view.RenderContext.
func (h *Host) Checkbox(checked bool, attrs view.ElementAttributes[*Event]) *html.Node {
	input := newElement("input")
	setAttr(input, "type", "checkbox")
	if checked {
		setAttr(input, "checked", "")
	}
	h.decorate(input, attrs)
	return input
}

// MountExternalResource implements view.RenderContext. Mounting the same
// resource twice is a no-op.
func (h *Host) MountExternalResource(rel, href, integrity, crossorigin string) {
	res := Resource{Rel: rel, Href: href, Integrity: integrity, CrossOrigin: crossorigin}

	h.mu.Lock()
	defer h.mu.Unlock()
	if slices.Contains(h.resources, res) {
		return
	}
	h.resources = append(h.resources, res)
}

// Options implements view.RenderContext.
func (h *Host) Options() view.Options {
	return h.Config().Options
}

// MakeHandler implements view.RenderContext. The click callback is looked up
// when the handler fires, not when it is made.
func (h *Host) MakeHandler(rng mdast.SourceRange, stopPropagation bool) view.Handler[*Event] {
	return view.NewHandler(rng, stopPropagation, h.currentOnClick)
}

// CaptureFrontmatter implements view.RenderContext.
func (h *Host) CaptureFrontmatter(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frontmatter = text
	h.hasFrontmatter = true
}

// HasCustomComponent implements view.RenderContext.
func (h *Host) HasCustomComponent(name string) bool {
	return h.Config().Components.Has(name)
}

// RenderCustomComponent implements view.RenderContext.
func (h *Host) RenderCustomComponent(name string, props component.Props[*html.Node]) (*html.Node, error) {
	fn, ok := h.Config().Components.Lookup(name)
	if !ok {
		return nil, component.UnknownComponent(name)
	}
	return fn(props)
}

// HasLinkOverride implements view.RenderContext.
func (h *Host) HasLinkOverride() bool {
	override := h.Config().LinkOverride
	return override != nil && override.render != nil
}

// RenderLinkOverride implements view.RenderContext.
func (h *Host) RenderLinkOverride(link view.LinkDescription[*html.Node]) (*html.Node, error) {
	override := h.Config().LinkOverride
	if override == nil || override.render == nil {
		if link.Image {
			return h.Image(link.URL, TextContent(link.Content)), nil
		}
		return h.Link(link.Content, link.URL), nil
	}
	return override.render(link)
}

// ReportRenderTrace implements view.TraceReporter. A trace equal to the
// stored one is ignored.
func (h *Host) ReportRenderTrace(lines []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.traceUpdates > 0 && slices.Equal(h.trace, lines) {
		return
	}
	h.trace = slices.Clone(lines)
	h.traceUpdates++
}

// decorate applies classes, style and click handler to n.
func (h *Host) decorate(n *html.Node, attrs view.ElementAttributes[*Event]) {
	if class := attrs.Class(); class != "" {
		setAttr(n, "class", class)
	}
	if style := NormalizeStyle(attrs.Style); style != "" {
		setAttr(n, "style", style)
	}
	if attrs.OnClick != nil {
		h.mu.Lock()
		h.handlers[n] = attrs.OnClick
		h.mu.Unlock()
	}
}

// NewFragment returns an empty fragment node.
func NewFragment() *html.Node {
	return &html.Node{Type: html.DocumentNode}
}

// IsFragment reports whether n is a fragment.
func IsFragment(n *html.Node) bool {
	return n != nil && n.Type == html.DocumentNode
}

// Element builds an element with attributes and children. Fragment children
// are flattened.
func Element(tag string, attrs []html.Attribute, children ...*html.Node) *html.Node {
	n := newElement(tag)
	n.Attr = append(n.Attr, attrs...)
	for _, child := range children {
		appendView(n, child)
	}
	return n
}

func newElement(tag string) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// appendView appends child to parent, moving a fragment's children.
func appendView(parent, child *html.Node) {
	if child == nil {
		return
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	if !IsFragment(child) {
		parent.AppendChild(child)
		return
	}
	for c := child.FirstChild; c != nil; {
		next := c.NextSibling
		child.RemoveChild(c)
		parent.AppendChild(c)
		c = next
	}
}

// TextContent concatenates the text nodes under n.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(TextContent(c))
	}
	return b.String()
}
