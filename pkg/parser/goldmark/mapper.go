package goldmark

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"

	"github.com/yaklabco/gomdview/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Node tree with byte ranges.
//
// Each map call takes a cursor, the end offset of the previously mapped
// sibling, and returns the cursor to use for the next sibling. Nodes goldmark
// records no segment for are located by searching forward from the cursor.
type mapper struct {
	src         []byte
	isComponent func(name string) bool
	state       *groupState

	// reparse parses a run of HTML block lines as Markdown and returns
	// top-level nodes with ranges in src coordinates.
	reparse func(src []byte, segs []text.Segment) []*mdast.Node
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	doc := mdast.NewDocument()
	doc.Range = mdast.NewRange(0, len(m.src))
	m.mapBlocks(gmDoc, doc, 0)
	return doc
}

func (m *mapper) mapBlocks(gmParent ast.Node, parent *mdast.Node, cursor int) int {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		cursor = m.mapBlock(child, parent, cursor)
	}
	return cursor
}

func (m *mapper) mapInlines(gmParent ast.Node, parent *mdast.Node, cursor int) int {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		cursor = m.mapInline(child, parent, cursor)
	}
	return cursor
}

func appendNode(parent, node *mdast.Node) int {
	mdast.AppendChild(parent, node)
	return node.Range.EndOffset
}

// mapBlock appends the nodes for a goldmark block to parent.
//
//nolint:cyclop,funlen // one case per goldmark block kind
func (m *mapper) mapBlock(gmNode ast.Node, parent *mdast.Node, cursor int) int {
	switch gmn := gmNode.(type) {
	case *ast.Paragraph:
		node := mdast.NewNode(mdast.NodeParagraph)
		node.Range = m.leafRange(gmn, cursor)
		m.mapInlines(gmn, node, node.Range.StartOffset)
		return appendNode(parent, node)

	case *ast.TextBlock:
		// Tight list item content: inlines go straight into the item.
		rng := m.leafRange(gmn, cursor)
		end := m.mapInlines(gmn, parent, rng.StartOffset)
		return max(end, rng.EndOffset)

	case *ast.Heading:
		node := mdast.NewNode(mdast.NodeHeading)
		node.Block = &mdast.BlockAttrs{HeadingLevel: gmn.Level}
		node.Range = m.headingRange(gmn, cursor)
		m.mapInlines(gmn, node, node.Range.StartOffset)
		return appendNode(parent, node)

	case *ast.ThematicBreak:
		node := mdast.NewNode(mdast.NodeThematicBreak)
		node.Range = m.restOfLine(m.nextContent(cursor))
		return appendNode(parent, node)

	case *ast.FencedCodeBlock:
		return appendNode(parent, m.mapFencedCodeBlock(gmn, cursor))

	case *ast.CodeBlock:
		node := mdast.NewNode(mdast.NodeCodeBlock)
		node.Block = &mdast.BlockAttrs{
			CodeBlock: &mdast.CodeBlockAttrs{},
			Literal:   m.linesLiteral(gmn.Lines()),
		}
		node.Range = m.leafRange(gmn, cursor)
		return appendNode(parent, node)

	case *ast.HTMLBlock:
		return m.mapHTMLBlock(gmn, parent, cursor)

	case *ast.Blockquote:
		node := mdast.NewNode(mdast.NodeBlockquote)
		m.mapBlocks(gmn, node, cursor)
		if rng, ok := union(node); ok {
			node.Range = mdast.NewRange(m.quoteMarkerStart(rng.StartOffset), rng.EndOffset)
		} else {
			start := m.nextContent(cursor)
			if i := bytes.IndexByte(m.src[cursor:], '>'); i >= 0 {
				start = cursor + i
			}
			node.Range = m.restOfLine(start)
		}
		return appendNode(parent, node)

	case *ast.List:
		node := mdast.NewNode(mdast.NodeList)
		node.Block = &mdast.BlockAttrs{List: &mdast.ListAttrs{
			Ordered:     gmn.IsOrdered(),
			StartNumber: gmn.Start,
			Tight:       gmn.IsTight,
		}}
		m.mapBlocks(gmn, node, cursor)
		if rng, ok := union(node); ok {
			node.Range = rng
		} else {
			node.Range = mdast.NewRange(cursor, cursor)
		}
		return appendNode(parent, node)

	case *ast.ListItem:
		node := mdast.NewNode(mdast.NodeListItem)
		m.mapBlocks(gmn, node, cursor)
		if rng, ok := union(node); ok {
			node.Range = mdast.NewRange(m.listMarkerStart(rng.StartOffset), rng.EndOffset)
		} else {
			node.Range = m.restOfLine(m.nextContent(cursor))
		}
		return appendNode(parent, node)

	case *east.Table:
		node := mdast.NewNode(mdast.NodeTable)
		m.mapBlocks(gmn, node, cursor)
		if rng, ok := union(node); ok {
			node.Range = rng
		} else {
			node.Range = mdast.NewRange(cursor, cursor)
		}
		return appendNode(parent, node)

	case *east.TableHeader:
		head := mdast.NewNode(mdast.NodeTableHead)
		row := m.mapTableRow(gmn, cursor)
		head.Range = row.Range
		mdast.AppendChild(head, row)
		return appendNode(parent, head)

	case *east.TableRow:
		return appendNode(parent, m.mapTableRow(gmn, cursor))

	case *east.TableCell:
		node := mdast.NewNode(mdast.NodeTableCell)
		node.Block = &mdast.BlockAttrs{Align: mapAlignment(gmn.Alignment)}
		node.Range = m.leafRange(gmn, cursor)
		m.mapInlines(gmn, node, node.Range.StartOffset)
		return appendNode(parent, node)

	default:
		node := mdast.NewNode(mdast.NodeRaw)
		if gmNode.Type() == ast.TypeBlock {
			node.Range = m.leafRange(gmNode, cursor)
			node.Block = &mdast.BlockAttrs{Literal: m.linesLiteral(gmNode.Lines())}
		} else {
			node.Range = mdast.NewRange(cursor, cursor)
		}
		return appendNode(parent, node)
	}
}

// leafRange is the trimmed union of a block's lines, or an empty range at
// the next content after cursor when the block has none.
func (m *mapper) leafRange(gmNode ast.Node, cursor int) mdast.SourceRange {
	if rng, ok := m.segmentsRange(gmNode.Lines()); ok {
		return rng
	}
	start := m.nextContent(cursor)
	return mdast.NewRange(start, start)
}

func (m *mapper) linesLiteral(lines *text.Segments) string {
	var buf strings.Builder
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(m.src))
	}
	return buf.String()
}

// headingRange covers the '#' markers of ATX headings and the underline
// of setext headings.
func (m *mapper) headingRange(heading *ast.Heading, cursor int) mdast.SourceRange {
	content, ok := m.segmentsRange(heading.Lines())
	if !ok {
		return m.restOfLine(m.nextContent(cursor))
	}

	p := m.skipSpaceBack(content.StartOffset)
	if p > 0 && m.src[p-1] == '#' {
		for p > 0 && m.src[p-1] == '#' {
			p--
		}
		return mdast.NewRange(p, m.trimRight(p, m.lineEnd(content.StartOffset)))
	}

	// Setext: the underline is the next line.
	underline := m.afterLineFeed(content.EndOffset)
	return mdast.NewRange(content.StartOffset, m.trimRight(content.StartOffset, m.lineEnd(underline)))
}

func (m *mapper) mapFencedCodeBlock(block *ast.FencedCodeBlock, cursor int) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)
	attrs := &mdast.CodeBlockAttrs{Fenced: true}
	if block.Info != nil {
		attrs.Info = strings.TrimSpace(string(block.Info.Segment.Value(m.src)))
	}
	node.Block = &mdast.BlockAttrs{
		CodeBlock: attrs,
		Literal:   m.linesLiteral(block.Lines()),
	}

	// Locate the opening fence line.
	lines := block.Lines()
	var openLine int
	switch {
	case block.Info != nil:
		openLine = m.lineStart(block.Info.Segment.Start)
	case lines.Len() > 0:
		openLine = m.lineStart(max(m.lineStart(lines.At(0).Start)-1, 0))
	default:
		openLine = m.lineStart(m.nextContent(cursor))
	}

	openEnd := m.lineEnd(openLine)
	line := m.src[openLine:openEnd]
	fenceAt := bytes.Index(line, []byte("```"))
	if tilde := bytes.Index(line, []byte("~~~")); tilde >= 0 && (fenceAt < 0 || tilde < fenceAt) {
		fenceAt = tilde
	}
	if fenceAt < 0 {
		fenceAt = 0
	}
	start := openLine + fenceAt
	fenceChar := m.src[min(start, len(m.src)-1)]
	fenceLen := m.runForward(start, fenceChar, len(m.src))

	contentEnd := m.afterLineFeed(openEnd)
	if lines.Len() > 0 {
		contentEnd = lines.At(lines.Len() - 1).Stop
	}

	// A closing fence is optional; unterminated blocks end with their content.
	end := m.trimRight(start, min(contentEnd, len(m.src)))
	if contentEnd < len(m.src) {
		closeAt := contentEnd
		for closeAt < len(m.src) && (m.src[closeAt] == ' ' || m.src[closeAt] == '\t' || m.src[closeAt] == '>') {
			closeAt++
		}
		if m.runForward(closeAt, fenceChar, len(m.src)) >= fenceLen && fenceLen >= 3 {
			end = m.trimRight(start, m.lineEnd(closeAt))
		}
	}
	if end < start {
		end = start
	}

	node.Range = mdast.NewRange(start, end)
	return node
}

func (m *mapper) mapTableRow(gmRow ast.Node, cursor int) *mdast.Node {
	row := mdast.NewNode(mdast.NodeTableRow)
	m.mapBlocks(gmRow, row, cursor)
	rng, ok := union(row)
	if !ok {
		start := m.nextContent(cursor)
		rng = mdast.NewRange(start, start)
	}

	// Rows span their whole line, pipes included.
	start := m.lineStart(rng.StartOffset)
	for start < rng.StartOffset && (m.src[start] == ' ' || m.src[start] == '\t' || m.src[start] == '>') {
		start++
	}
	row.Range = mdast.NewRange(start, max(rng.EndOffset, m.trimRight(start, m.lineEnd(rng.EndOffset))))
	return row
}

func mapAlignment(a east.Alignment) mdast.Alignment {
	switch a {
	case east.AlignLeft:
		return mdast.AlignLeft
	case east.AlignCenter:
		return mdast.AlignCenter
	case east.AlignRight:
		return mdast.AlignRight
	default:
		return mdast.AlignNone
	}
}

// mapHTMLBlock appends an HTML block to parent. Lines that hold exactly one
// component tag become component markers, and the lines between them are
// parsed again as Markdown.
func (m *mapper) mapHTMLBlock(block *ast.HTMLBlock, parent *mdast.Node, cursor int) int {
	var segs []text.Segment
	lines := block.Lines()
	for i := range lines.Len() {
		segs = append(segs, lines.At(i))
	}
	if block.HasClosure() {
		segs = append(segs, block.ClosureLine)
	}
	if len(segs) == 0 {
		return cursor
	}

	rng := mdast.NewRange(segs[0].Start, m.trimRight(segs[0].Start, segs[len(segs)-1].Stop))

	tags := make([]*componentTag, len(segs))
	hasComponent := false
	for i, seg := range segs {
		if tag, ok := parseTag(string(m.src[seg.Start:seg.Stop])); ok && m.isComponent(tag.name) {
			tags[i] = &tag
			hasComponent = true
		}
	}

	if !hasComponent {
		node := mdast.NewNode(mdast.NodeHTMLBlock)
		node.Range = rng
		var literal strings.Builder
		for _, seg := range segs {
			literal.Write(seg.Value(m.src))
		}
		node.Block = &mdast.BlockAttrs{Literal: literal.String()}
		return appendNode(parent, node)
	}

	var chunk []text.Segment
	flush := func() {
		if len(chunk) > 0 && !m.allBlank(chunk) {
			for _, node := range m.reparse(m.src, chunk) {
				mdast.AppendChild(parent, node)
			}
		}
		chunk = nil
	}

	for i, seg := range segs {
		if tags[i] == nil {
			chunk = append(chunk, seg)
			continue
		}
		flush()
		start := seg.Start
		for start < seg.Stop && isBlank(m.src[start]) {
			start++
		}
		mdast.AppendChild(parent, m.newMarker(*tags[i], mdast.NewRange(start, m.trimRight(start, seg.Stop))))
	}
	flush()

	return rng.EndOffset
}

func (m *mapper) allBlank(segs []text.Segment) bool {
	for _, seg := range segs {
		if len(bytes.TrimSpace(m.src[seg.Start:seg.Stop])) > 0 {
			return false
		}
	}
	return true
}

// newMarker creates the component node for a single tag. Open and close
// markers are matched up later by groupComponents.
func (m *mapper) newMarker(tag componentTag, rng mdast.SourceRange) *mdast.Node {
	node := mdast.NewNode(mdast.NodeComponent)
	node.Range = rng
	node.Component = &mdast.ComponentAttrs{
		Name:        tag.name,
		Attrs:       tag.attrs,
		SelfClosing: tag.kind == tagSelfClose,
	}
	if tag.kind == tagClose {
		m.state.closers[node] = true
	}
	return node
}

// mapInline appends the nodes for a goldmark inline to parent.
//
//nolint:cyclop,funlen // one case per goldmark inline kind
func (m *mapper) mapInline(gmNode ast.Node, parent *mdast.Node, cursor int) int {
	switch gmn := gmNode.(type) {
	case *ast.Text:
		return m.mapText(gmn, parent, cursor)

	case *ast.String:
		value := html.UnescapeString(string(gmn.Value))
		return appendNode(parent, mdast.NewText([]byte(value), m.findTypographic(value, cursor)))

	case *ast.Emphasis:
		kind := mdast.NodeEmphasis
		if gmn.Level >= 2 {
			kind = mdast.NodeStrong
		}
		node := mdast.NewNode(kind)
		m.mapInlines(gmn, node, cursor)
		node.Range = mdast.NewRange(cursor, cursor)
		if rng, ok := union(node); ok {
			node.Range = m.delimiterRun(rng, gmn.Level, "*_")
		}
		return appendNode(parent, node)

	case *east.Strikethrough:
		node := mdast.NewNode(mdast.NodeStrikethrough)
		m.mapInlines(gmn, node, cursor)
		node.Range = mdast.NewRange(cursor, cursor)
		if rng, ok := union(node); ok {
			node.Range = m.delimiterRun(rng, 2, "~")
		}
		return appendNode(parent, node)

	case *ast.CodeSpan:
		return appendNode(parent, m.mapCodeSpan(gmn, cursor))

	case *ast.Link:
		node := mdast.NewNode(mdast.NodeLink)
		node.Inline = &mdast.InlineAttrs{Link: &mdast.LinkAttrs{
			Destination: string(gmn.Destination),
			Title:       string(gmn.Title),
		}}
		m.mapInlines(gmn, node, cursor)
		node.Range, node.Inline.Link.ReferenceStyle = m.linkRange(node, cursor, []byte("["))
		return appendNode(parent, node)

	case *ast.Image:
		node := mdast.NewNode(mdast.NodeImage)
		node.Inline = &mdast.InlineAttrs{Link: &mdast.LinkAttrs{
			Destination: string(gmn.Destination),
			Title:       string(gmn.Title),
		}}
		m.mapInlines(gmn, node, cursor)
		node.Range, node.Inline.Link.ReferenceStyle = m.linkRange(node, cursor, []byte("!["))
		return appendNode(parent, node)

	case *ast.AutoLink:
		return appendNode(parent, m.mapAutoLink(gmn, cursor))

	case *wikilinkNode:
		node := mdast.NewNode(mdast.NodeLink)
		node.Inline = &mdast.InlineAttrs{Link: &mdast.LinkAttrs{
			Destination:    string(gmn.Target),
			ReferenceStyle: mdast.RefStyleWikilink,
		}}
		node.Range = mdast.NewRange(gmn.Start, gmn.Stop)
		m.mapInlines(gmn, node, gmn.Start)
		return appendNode(parent, node)

	case *ast.RawHTML:
		return appendNode(parent, m.mapRawHTML(gmn, cursor))

	case *east.TaskCheckBox:
		node := mdast.NewNode(mdast.NodeTaskCheckbox)
		node.Inline = &mdast.InlineAttrs{Checked: gmn.IsChecked}
		node.Range = mdast.NewRange(cursor, cursor)
		if i := bytes.IndexByte(m.src[cursor:], '['); i >= 0 && cursor+i+3 <= len(m.src) {
			node.Range = mdast.NewRange(cursor+i, cursor+i+3)
		}
		return appendNode(parent, node)

	default:
		node := mdast.NewNode(mdast.NodeRaw)
		m.mapInlines(gmNode, node, cursor)
		node.Range = mdast.NewRange(cursor, cursor)
		if rng, ok := union(node); ok {
			node.Range = rng
		}
		return appendNode(parent, node)
	}
}

// mapText emits the text run followed by a break node when the line ends
// in a soft or hard break.
func (m *mapper) mapText(textNode *ast.Text, parent *mdast.Node, cursor int) int {
	seg := textNode.Segment
	end := cursor
	if seg.Len() > 0 {
		end = appendNode(parent, mdast.NewText(seg.Value(m.src), mdast.NewRange(seg.Start, seg.Stop)))
	}

	var breakKind mdast.NodeKind
	switch {
	case textNode.HardLineBreak():
		breakKind = mdast.NodeHardBreak
	case textNode.SoftLineBreak():
		breakKind = mdast.NodeSoftBreak
	default:
		return end
	}

	node := mdast.NewNode(breakKind)
	node.Range = mdast.NewRange(seg.Stop, m.afterLineFeed(seg.Stop))
	return appendNode(parent, node)
}

// typographicSources maps typographer output back to the source punctuation.
var typographicSources = map[string]string{
	"‘": "'", "’": "'",
	"“": `"`, "”": `"`,
	"–": "--", "—": "---",
	"…": "...",
	"«": "<<", "»": ">>",
}

func (m *mapper) findTypographic(value string, cursor int) mdast.SourceRange {
	needle := value
	if src, ok := typographicSources[value]; ok {
		needle = src
	}
	if i := bytes.Index(m.src[cursor:], []byte(needle)); i >= 0 && needle != "" {
		return mdast.NewRange(cursor+i, cursor+i+len(needle))
	}
	return mdast.NewRange(cursor, cursor)
}

func (m *mapper) mapCodeSpan(codeSpan *ast.CodeSpan, cursor int) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeSpan)

	var code []byte
	rng := mdast.NewRange(cursor, cursor)
	first := true
	for child := codeSpan.FirstChild(); child != nil; child = child.NextSibling() {
		textNode, ok := child.(*ast.Text)
		if !ok {
			continue
		}
		code = append(code, textNode.Segment.Value(m.src)...)
		segRange := mdast.NewRange(textNode.Segment.Start, textNode.Segment.Stop)
		if first {
			rng, first = segRange, false
		} else {
			rng = rng.Union(segRange)
		}
	}
	code = bytes.ReplaceAll(code, []byte("\r\n"), []byte(" "))
	code = bytes.ReplaceAll(code, []byte("\n"), []byte(" "))

	node.Inline = &mdast.InlineAttrs{Text: code}
	if first {
		if i := bytes.IndexByte(m.src[cursor:], '`'); i >= 0 {
			rng = mdast.NewRange(cursor+i, cursor+i)
		}
	}
	node.Range = m.codeSpanRange(rng)
	return node
}

// linkRange covers "[label](dest)", "[label][ref]", "[label][]" and "[label]"
// forms; open is "[" for links and "![" for images.
func (m *mapper) linkRange(node *mdast.Node, cursor int, open []byte) (mdast.SourceRange, mdast.ReferenceStyle) {
	var start, labelEnd int
	if label, ok := union(node); ok {
		start = label.StartOffset - len(open)
		if start < 0 || !bytes.HasPrefix(m.src[start:], open) {
			start = label.StartOffset
			if cursor <= label.StartOffset {
				if i := bytes.LastIndex(m.src[cursor:label.StartOffset], open); i >= 0 {
					start = cursor + i
				}
			}
		}
		labelEnd = label.EndOffset
	} else {
		i := bytes.Index(m.src[cursor:], open)
		if i < 0 {
			return mdast.NewRange(cursor, cursor), mdast.RefStyleInline
		}
		start = cursor + i
		labelEnd = start + len(open)
	}

	closeAt := bytes.IndexByte(m.src[labelEnd:], ']')
	if closeAt < 0 {
		return mdast.NewRange(start, labelEnd), mdast.RefStyleInline
	}
	p := labelEnd + closeAt + 1

	switch {
	case p < len(m.src) && m.src[p] == '(':
		return mdast.NewRange(start, m.closingParen(p)), mdast.RefStyleInline
	case p < len(m.src) && m.src[p] == '[':
		if j := bytes.IndexByte(m.src[p:], ']'); j >= 0 {
			return mdast.NewRange(start, p+j+1), mdast.RefStyleReference
		}
	}
	return mdast.NewRange(start, p), mdast.RefStyleReference
}

func (m *mapper) mapAutoLink(link *ast.AutoLink, cursor int) *mdast.Node {
	node := mdast.NewNode(mdast.NodeLink)
	node.Inline = &mdast.InlineAttrs{Link: &mdast.LinkAttrs{
		Destination:    string(link.URL(m.src)),
		ReferenceStyle: mdast.RefStyleAutolink,
	}}

	label := link.Label(m.src)
	labelRange := mdast.NewRange(cursor, cursor)
	if i := bytes.Index(m.src[cursor:], label); i >= 0 && len(label) > 0 {
		labelRange = mdast.NewRange(cursor+i, cursor+i+len(label))
	}
	mdast.AppendChild(node, mdast.NewText(append([]byte(nil), label...), labelRange))

	node.Range = labelRange
	if s, e := labelRange.StartOffset, labelRange.EndOffset; s > 0 && e < len(m.src) &&
		m.src[s-1] == '<' && m.src[e] == '>' {
		node.Range = mdast.NewRange(s-1, e+1)
	}
	return node
}

func (m *mapper) mapRawHTML(raw *ast.RawHTML, cursor int) *mdast.Node {
	var literal []byte
	rng := mdast.NewRange(cursor, cursor)
	for i := range raw.Segments.Len() {
		seg := raw.Segments.At(i)
		literal = append(literal, seg.Value(m.src)...)
		if i == 0 {
			rng = mdast.NewRange(seg.Start, seg.Stop)
		} else {
			rng = rng.Union(mdast.NewRange(seg.Start, seg.Stop))
		}
	}

	if tag, ok := parseTag(string(literal)); ok && m.isComponent(tag.name) {
		return m.newMarker(tag, rng)
	}

	node := mdast.NewNode(mdast.NodeHTMLInline)
	node.Inline = &mdast.InlineAttrs{Text: literal}
	node.Range = rng
	return node
}
