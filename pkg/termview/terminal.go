// Package termview renders markdown for terminals. A Terminal builds a tree
// of Nodes through view.RenderContext, and Layout turns the tree into
// word-wrapped, lipgloss-styled text.
package termview

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"

	"github.com/yaklabco/gomdview/pkg/component"
	"github.com/yaklabco/gomdview/pkg/markdown"
	"github.com/yaklabco/gomdview/pkg/mdast"
	"github.com/yaklabco/gomdview/pkg/view"
)

// Registry is a component registry producing terminal nodes.
type Registry = component.Registry[*Node]

// LinkFunc renders a link or image in place of the default rendering.
type LinkFunc func(link view.LinkDescription[*Node]) (*Node, error)

// Config configures a Terminal.
type Config struct {
	Options    view.Options
	Components *Registry
	Links      LinkFunc

	// Width is the layout width in cells. Zero selects DefaultWidth.
	Width int

	// Renderer binds styles to an output. Nil selects the lipgloss default.
	Renderer *lipgloss.Renderer
}

// ClickFunc receives attributed click events.
type ClickFunc func(event view.MouseEvent[*Event])

// Terminal is the terminal render target.
type Terminal struct {
	mu sync.RWMutex

	config         Config
	styles         *Styles
	onClick        ClickFunc
	frontmatter    string
	hasFrontmatter bool
	trace          []string
	traceUpdates   int
}

var _ view.RenderContext[*Node, *Event] = (*Terminal)(nil)

// New returns a terminal target.
func New(config Config) *Terminal {
	r := config.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Terminal{config: config, styles: DefaultStyles(r)}
}

// SetComponents replaces the component registry.
func (t *Terminal) SetComponents(reg *Registry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.config.Components = reg
}

// SetOnClick replaces the click callback.
func (t *Terminal) SetOnClick(fn ClickFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onClick = fn
}

// Styles returns the styles used by Layout.
func (t *Terminal) Styles() *Styles {
	return t.styles
}

// Frontmatter returns the frontmatter captured by the latest pass.
func (t *Terminal) Frontmatter() (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.frontmatter, t.hasFrontmatter
}

// Trace returns the trace of the latest debug pass.
func (t *Terminal) Trace() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.trace)
}

// Render renders source into a node tree.
func (t *Terminal) Render(ctx context.Context, source []byte) (*Node, error) {
	t.mu.Lock()
	t.frontmatter, t.hasFrontmatter = "", false
	t.mu.Unlock()

	return markdown.Render[*Node, *Event](ctx, t, source)
}

// RenderString renders source and lays it out at the configured width.
func (t *Terminal) RenderString(ctx context.Context, source []byte) (string, error) {
	root, err := t.Render(ctx, source)
	if err != nil {
		return "", err
	}
	return Layout(root, t.width(), t.styles), nil
}

func (t *Terminal) width() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.config.Width
}

func (t *Terminal) currentConfig() Config {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.config
}

func (t *Terminal) currentOnClick() func(view.MouseEvent[*Event]) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.onClick == nil {
		return nil
	}
	return t.onClick
}

// ElementWithAttributes implements view.RenderContext.
func (t *Terminal) ElementWithAttributes(kind view.ElementKind, inside *Node, attrs view.ElementAttributes[*Event]) *Node {
	_ = view.TagName(kind) // panics on an out-of-range heading
	n := decorate(&Node{Kind: KindElement, Element: kind}, attrs)
	n.Append(inside)
	return n
}

// SpanWithRawContent implements view.RenderContext. Markup is dropped and
// only the text of the HTML is kept.
func (t *Terminal) SpanWithRawContent(raw string, attrs view.ElementAttributes[*Event]) *Node {
	return decorate(&Node{Kind: KindRaw, Text: htmlText(raw)}, attrs)
}

// HorizontalRule implements view.RenderContext.
func (t *Terminal) HorizontalRule(attrs view.ElementAttributes[*Event]) *Node {
	return decorate(&Node{Kind: KindRule}, attrs)
}

// LineBreak implements view.RenderContext.
func (t *Terminal) LineBreak() *Node {
	return &Node{Kind: KindBreak}
}

// Fragment implements view.RenderContext.
func (t *Terminal) Fragment(children []*Node) *Node {
	frag := newFragment()
	for _, child := range children {
		frag.Append(child)
	}
	return frag
}

// Link implements view.RenderContext.
func (t *Terminal) Link(inside *Node, href string) *Node {
	n := &Node{Kind: KindLink, Text: href}
	n.Append(inside)
	return n
}

// Image implements view.RenderContext.
func (t *Terminal) Image(src, alt string) *Node {
	return &Node{Kind: KindImage, Text: src, Alt: alt}
}

// Text implements view.RenderContext.
func (t *Terminal) Text(s string) *Node {
	return &Node{Kind: KindText, Text: s}
}

// Checkbox implements view.RenderContext.
func (t *Terminal) Checkbox(checked bool, attrs view.ElementAttributes[*Event]) *Node {
	return decorate(&Node{Kind: KindCheckbox, Checked: checked}, attrs)
}

// MountExternalResource implements view.RenderContext. Terminals have no
// use for stylesheets.
func (t *Terminal) MountExternalResource(_, _, _, _ string) {}

// Options implements view.RenderContext. Class-based highlighting is turned
// off because a terminal has no stylesheet to resolve the classes.
func (t *Terminal) Options() view.Options {
	opts := t.currentConfig().Options
	opts.Highlight.Classes = false
	opts.Highlight.Stylesheet = ""
	return opts
}

// MakeHandler implements view.RenderContext.
func (t *Terminal) MakeHandler(rng mdast.SourceRange, stopPropagation bool) view.Handler[*Event] {
	return view.NewHandler(rng, stopPropagation, t.currentOnClick)
}

// CaptureFrontmatter implements view.RenderContext.
func (t *Terminal) CaptureFrontmatter(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.frontmatter = text
	t.hasFrontmatter = true
}

// HasCustomComponent implements view.RenderContext.
func (t *Terminal) HasCustomComponent(name string) bool {
	return t.currentConfig().Components.Has(name)
}

// RenderCustomComponent implements view.RenderContext.
func (t *Terminal) RenderCustomComponent(name string, props component.Props[*Node]) (*Node, error) {
	fn, ok := t.currentConfig().Components.Lookup(name)
	if !ok {
		return nil, component.UnknownComponent(name)
	}
	return fn(props)
}

// HasLinkOverride implements view.RenderContext.
func (t *Terminal) HasLinkOverride() bool {
	return t.currentConfig().Links != nil
}

// RenderLinkOverride implements view.RenderContext.
func (t *Terminal) RenderLinkOverride(link view.LinkDescription[*Node]) (*Node, error) {
	links := t.currentConfig().Links
	if links == nil {
		if link.Image {
			return t.Image(link.URL, PlainText(link.Content)), nil
		}
		return t.Link(link.Content, link.URL), nil
	}
	return links(link)
}

// ReportRenderTrace implements view.TraceReporter.
func (t *Terminal) ReportRenderTrace(lines []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.traceUpdates > 0 && slices.Equal(t.trace, lines) {
		return
	}
	t.trace = slices.Clone(lines)
	t.traceUpdates++
}

func decorate(n *Node, attrs view.ElementAttributes[*Event]) *Node {
	n.Classes = slices.Clone(attrs.Classes)
	n.Style = attrs.Style
	n.handler = attrs.OnClick
	return n
}

// htmlText extracts the text of an HTML snippet. <br> becomes a newline.
func htmlText(raw string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(raw))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "br" {
				b.WriteByte('\n')
			}
		}
	}
}
