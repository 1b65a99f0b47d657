// Package markdown drives a view.RenderContext over a parsed document.
//
// A render pass is synchronous and strictly post-order: every node's children
// are rendered before the node itself, and the first error from a component
// or a link override aborts the pass without returning a partial view.
package markdown

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gomdview/internal/logging"
	"github.com/yaklabco/gomdview/pkg/component"
	"github.com/yaklabco/gomdview/pkg/highlight"
	"github.com/yaklabco/gomdview/pkg/mdast"
	"github.com/yaklabco/gomdview/pkg/view"
)

// Render parses source with the options of rc and renders it.
func Render[V, E any](ctx context.Context, rc view.RenderContext[V, E], source []byte) (V, error) {
	var zero V

	opts := rc.Options()
	snapshot, err := NewParser(opts, rc.HasCustomComponent).Parse(ctx, "", source)
	if err != nil {
		return zero, fmt.Errorf("parse markdown: %w", err)
	}
	return renderSnapshot(ctx, rc, opts, snapshot)
}

// RenderSnapshot renders an already parsed document. The snapshot must have
// been parsed with a component matcher that agrees with rc.
func RenderSnapshot[V, E any](ctx context.Context, rc view.RenderContext[V, E], snapshot *mdast.Snapshot) (V, error) {
	return renderSnapshot(ctx, rc, rc.Options(), snapshot)
}

func renderSnapshot[V, E any](
	ctx context.Context,
	rc view.RenderContext[V, E],
	opts view.Options,
	snapshot *mdast.Snapshot,
) (V, error) {
	var zero V
	if snapshot == nil || snapshot.Root == nil {
		return zero, errors.New("render: nil snapshot")
	}

	p := newPass(ctx, rc, opts, snapshot)

	if fm := snapshot.Frontmatter; fm != nil {
		p.logger.Debug("capturing frontmatter", logging.FieldFormat, fm.Format, logging.FieldRange, fm.Range)
		rc.CaptureFrontmatter(fm.Text)
	}
	p.mountStylesheet()

	root, err := p.render(snapshot.Root)
	if err != nil {
		p.logger.Debug("render failed", logging.FieldError, err)
		return zero, err
	}

	if opts.Debug {
		if reporter, ok := rc.(view.TraceReporter); ok {
			reporter.ReportRenderTrace(p.trace)
		}
	}
	return root, nil
}

// pass holds the state of one render.
type pass[V, E any] struct {
	rc          view.RenderContext[V, E]
	opts        view.Options
	snapshot    *mdast.Snapshot
	highlighter *highlight.Highlighter
	logger      *log.Logger
	trace       []string
}

func newPass[V, E any](
	ctx context.Context,
	rc view.RenderContext[V, E],
	opts view.Options,
	snapshot *mdast.Snapshot,
) *pass[V, E] {
	p := &pass[V, E]{
		rc:       rc,
		opts:     opts,
		snapshot: snapshot,
		logger:   logging.FromContext(ctx),
	}

	if !opts.Highlight.Disabled {
		h, err := highlight.New(opts.ThemeOrDefault(), opts.Highlight.Classes)
		if err != nil {
			p.logger.Warn("code highlighting disabled", logging.FieldError, err)
		} else {
			p.highlighter = h
		}
	}
	return p
}

// mountStylesheet mounts the highlight stylesheet once per pass.
func (p *pass[V, E]) mountStylesheet() {
	hl := p.opts.Highlight
	if p.highlighter == nil || !hl.Classes || hl.Stylesheet == "" {
		return
	}
	p.rc.MountExternalResource("stylesheet", hl.Stylesheet, hl.Integrity, "anonymous")
}

// render renders n and records it in the trace.
func (p *pass[V, E]) render(n *mdast.Node) (V, error) {
	v, err := p.node(n)
	if err != nil {
		return v, err
	}
	if p.opts.Debug {
		p.trace = append(p.trace, fmt.Sprintf("%s %s", n.Kind, n.Range))
	}
	return v, nil
}

// children renders the children of n into one fragment.
func (p *pass[V, E]) children(n *mdast.Node) (V, error) {
	views := make([]V, 0)
	for child := n.FirstChild; child != nil; child = child.Next {
		v, err := p.render(child)
		if err != nil {
			var zero V
			return zero, err
		}
		views = append(views, v)
	}
	return p.rc.Fragment(views), nil
}

// element wraps the rendered children of n in kind.
func (p *pass[V, E]) element(kind view.ElementKind, n *mdast.Node) (V, error) {
	return p.styledElement(kind, n, "")
}

func (p *pass[V, E]) styledElement(kind view.ElementKind, n *mdast.Node, style string) (V, error) {
	inside, err := p.children(n)
	if err != nil {
		return inside, err
	}
	attrs := p.attrs(n)
	attrs.Style = style
	return p.rc.ElementWithAttributes(kind, inside, attrs), nil
}

// attrs makes n clickable, reporting its source range.
func (p *pass[V, E]) attrs(n *mdast.Node) view.ElementAttributes[E] {
	return view.ElementAttributes[E]{OnClick: p.rc.MakeHandler(n.Range, true)}
}

//nolint:cyclop,funlen // one case per node kind
func (p *pass[V, E]) node(n *mdast.Node) (V, error) {
	switch n.Kind {
	case mdast.NodeDocument, mdast.NodeRaw:
		if n.Kind == mdast.NodeRaw && !n.HasChildren() {
			return p.rc.Text(n.Literal()), nil
		}
		return p.children(n)

	case mdast.NodeParagraph:
		return p.element(view.Paragraph{}, n)

	case mdast.NodeHeading:
		return p.element(view.Heading{Level: n.Block.HeadingLevel}, n)

	case mdast.NodeList:
		if list := n.Block.List; list != nil && list.Ordered {
			return p.element(view.Ol{Start: list.StartNumber}, n)
		}
		return p.element(view.Ul{}, n)

	case mdast.NodeListItem:
		return p.element(view.Li{}, n)

	case mdast.NodeBlockquote:
		return p.element(view.BlockQuote{}, n)

	case mdast.NodeCodeBlock:
		return p.codeBlock(n), nil

	case mdast.NodeThematicBreak:
		return p.rc.HorizontalRule(p.attrs(n)), nil

	case mdast.NodeHTMLBlock:
		return p.rc.SpanWithRawContent(n.Block.Literal, p.attrs(n)), nil

	case mdast.NodeTable:
		return p.element(view.Table{}, n)

	case mdast.NodeTableHead:
		return p.element(view.Thead{}, n)

	case mdast.NodeTableRow:
		return p.element(view.Trow{}, n)

	case mdast.NodeTableCell:
		var style string
		if n.Block != nil && n.Block.Align != mdast.AlignNone {
			style = "text-align: " + n.Block.Align.String()
		}
		return p.styledElement(view.Tcell{}, n, style)

	case mdast.NodeText:
		return p.rc.Text(n.Literal()), nil

	case mdast.NodeEmphasis:
		return p.element(view.Italics{}, n)

	case mdast.NodeStrong:
		return p.element(view.Bold{}, n)

	case mdast.NodeStrikethrough:
		return p.element(view.Strikethrough{}, n)

	case mdast.NodeCodeSpan:
		return p.rc.ElementWithAttributes(view.Code{}, p.rc.Text(n.Literal()), p.attrs(n)), nil

	case mdast.NodeLink:
		return p.link(n, false)

	case mdast.NodeImage:
		return p.link(n, true)

	case mdast.NodeSoftBreak:
		if p.opts.HardLineBreaks {
			return p.rc.LineBreak(), nil
		}
		return p.rc.Text(" "), nil

	case mdast.NodeHardBreak:
		return p.rc.LineBreak(), nil

	case mdast.NodeHTMLInline:
		return p.rc.SpanWithRawContent(n.Literal(), p.attrs(n)), nil

	case mdast.NodeTaskCheckbox:
		// The parser consumes the space after the marker.
		return p.rc.Fragment([]V{p.rc.Checkbox(n.Inline.Checked, p.attrs(n)), p.rc.Text(" ")}), nil

	case mdast.NodeComponent:
		return p.component(n)

	default:
		panic(fmt.Sprintf("markdown: unhandled node kind %s", n.Kind))
	}
}

// component dispatches a component occurrence to the registry.
func (p *pass[V, E]) component(n *mdast.Node) (V, error) {
	var zero V
	tag := n.Component

	children, err := p.children(n)
	if err != nil {
		return zero, err
	}

	if !p.rc.HasCustomComponent(tag.Name) {
		return zero, component.UnknownComponent(tag.Name)
	}

	p.logger.Debug("rendering component",
		logging.FieldComponent, tag.Name,
		logging.FieldRange, n.Range)

	props := component.Props[V]{
		Name:        tag.Name,
		Attrs:       append(component.Attrs(nil), tag.Attrs...),
		Children:    children,
		SelfClosing: tag.SelfClosing,
		Range:       n.Range,
	}
	return p.rc.RenderCustomComponent(tag.Name, props)
}

// link renders a link or image, through the host override when one is set.
func (p *pass[V, E]) link(n *mdast.Node, image bool) (V, error) {
	var zero V

	content, err := p.children(n)
	if err != nil {
		return zero, err
	}

	attrs := n.Inline.Link
	desc := view.LinkDescription[V]{
		URL:      attrs.Destination,
		Title:    attrs.Title,
		Content:  content,
		Image:    image,
		Wikilink: attrs.ReferenceStyle == mdast.RefStyleWikilink,
		Range:    n.Range,
	}

	if p.rc.HasLinkOverride() {
		v, err := p.rc.RenderLinkOverride(desc)
		if err != nil {
			var overrideErr *view.LinkOverrideError
			if errors.As(err, &overrideErr) {
				return zero, err
			}
			return zero, &view.LinkOverrideError{URL: desc.URL, Err: err}
		}
		return v, nil
	}

	if image {
		return p.rc.Image(desc.URL, plainText(n)), nil
	}
	return p.rc.Link(content, desc.URL), nil
}

// codeBlock renders a code block as Pre(Code(...)), highlighting when enabled.
func (p *pass[V, E]) codeBlock(n *mdast.Node) V {
	code := n.Block.Literal
	var lang string
	if n.Block.CodeBlock != nil {
		lang = n.Block.CodeBlock.Language()
	}

	codeAttrs := view.ElementAttributes[E]{}
	if lang != "" {
		codeAttrs.Classes = []string{"language-" + lang}
	}
	preAttrs := p.attrs(n)

	inside := p.rc.Text(code)
	if p.highlighter != nil {
		if tokens, err := p.highlighter.Tokens(lang, code); err != nil {
			p.logger.Debug("highlight failed", logging.FieldLanguage, lang, logging.FieldError, err)
		} else {
			inside = p.tokens(tokens)
			if p.highlighter.Classes() {
				preAttrs.Classes = []string{highlight.ClassPrefix}
			}
			preAttrs.Style = p.highlighter.ContainerStyle()
		}
	}

	return p.rc.ElementWithAttributes(view.Pre{},
		p.rc.ElementWithAttributes(view.Code{}, inside, codeAttrs),
		preAttrs)
}

func (p *pass[V, E]) tokens(tokens []highlight.Token) V {
	views := make([]V, 0, len(tokens))
	for _, tok := range tokens {
		text := p.rc.Text(tok.Text)
		if tok.Class == "" && tok.Style == "" {
			views = append(views, text)
			continue
		}
		attrs := view.ElementAttributes[E]{Style: tok.Style}
		if tok.Class != "" {
			attrs.Classes = []string{tok.Class}
		}
		views = append(views, p.rc.ElementWithAttributes(view.Span{}, text, attrs))
	}
	return p.rc.Fragment(views)
}

// plainText concatenates the text under n, for image alt text.
func plainText(n *mdast.Node) string {
	var b strings.Builder
	for child := range mdast.All(n) {
		switch child.Kind {
		case mdast.NodeText, mdast.NodeCodeSpan:
			b.WriteString(child.Literal())
		case mdast.NodeSoftBreak, mdast.NodeHardBreak:
			b.WriteByte(' ')
		}
	}
	return b.String()
}
