package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindWikilink is the goldmark node kind of a [[target|label]] link.
var KindWikilink = ast.NewNodeKind("Wikilink")

// wikilinkNode is a [[target]] or [[target|label]] link.
// Its single Text child covers the label, or the target when there is no label.
type wikilinkNode struct {
	ast.BaseInline

	Target []byte

	// Start and Stop bound the whole "[[...]]" run in the source.
	Start int
	Stop  int
}

// Kind implements ast.Node.
func (n *wikilinkNode) Kind() ast.NodeKind {
	return KindWikilink
}

// Dump implements ast.Node.
func (n *wikilinkNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Target": string(n.Target)}, nil)
}

type wikilinkParser struct{}

// Trigger implements parser.InlineParser.
func (p *wikilinkParser) Trigger() []byte {
	return []byte{'['}
}

// Parse implements parser.InlineParser.
func (p *wikilinkParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, seg := block.PeekLine()
	if len(line) < 5 || line[0] != '[' || line[1] != '[' {
		return nil
	}

	end := bytes.Index(line[2:], []byte("]]"))
	if end <= 0 {
		return nil
	}
	inner := line[2 : 2+end]
	if bytes.ContainsAny(inner, "[]\n") {
		return nil
	}

	target, labelOffset, label := inner, 0, inner
	if pipe := bytes.IndexByte(inner, '|'); pipe >= 0 {
		target = inner[:pipe]
		labelOffset = pipe + 1
		label = inner[pipe+1:]
	}
	target = bytes.TrimSpace(target)
	if len(target) == 0 {
		return nil
	}
	if len(bytes.TrimSpace(label)) == 0 {
		labelOffset, label = 0, inner
	}

	node := &wikilinkNode{
		Target: append([]byte(nil), target...),
		Start:  seg.Start,
		Stop:   seg.Start + end + 4,
	}
	labelStart := seg.Start + 2 + labelOffset
	node.AppendChild(node, ast.NewTextSegment(text.NewSegment(labelStart, labelStart+len(label))))

	block.Advance(end + 4)
	return node
}

// wikilinkExtension registers the wikilink inline parser ahead of the
// standard link parser.
type wikilinkExtension struct{}

// Extend implements goldmark.Extender.
func (e *wikilinkExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&wikilinkParser{}, 199),
	))
}
