package termview

import (
	"strings"

	"github.com/yaklabco/gomdview/pkg/view"
)

// Kind classifies a terminal view node.
type Kind int

// Node kinds.
const (
	KindFragment Kind = iota
	KindText
	KindElement
	KindBreak
	KindRule
	KindRaw
	KindLink
	KindImage
	KindCheckbox
)

// Node is a terminal view. Nodes form a tree that is laid out into styled
// lines by Layout.
type Node struct {
	Kind Kind

	// Element is set for KindElement.
	Element view.ElementKind

	// Text holds the text of KindText and KindRaw nodes, the destination of
	// KindLink and the source of KindImage.
	Text string

	// Alt is the alternative text of KindImage.
	Alt string

	// Checked is the state of KindCheckbox.
	Checked bool

	Classes []string
	Style   string

	Parent   *Node
	Children []*Node

	handler view.Handler[*Event]
}

// Interactive reports whether the node has a click handler.
func (n *Node) Interactive() bool {
	return n.handler != nil
}

// HasClass reports whether the node carries class.
func (n *Node) HasClass(class string) bool {
	for _, c := range n.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// Append adds child under n. Fragment children are moved.
func (n *Node) Append(child *Node) {
	if child == nil {
		return
	}
	if child.Kind != KindFragment {
		child.Parent = n
		n.Children = append(n.Children, child)
		return
	}
	for _, c := range child.Children {
		c.Parent = n
		n.Children = append(n.Children, c)
	}
	child.Children = nil
}

// Find returns the nodes under root, root included, for which match is
// true, in document order.
func Find(root *Node, match func(*Node) bool) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		if match(n) {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// ByClass matches element nodes carrying class.
func ByClass(class string) func(*Node) bool {
	return func(n *Node) bool {
		return n.Kind == KindElement && n.HasClass(class)
	}
}

// PlainText concatenates the text under n without styling.
func PlainText(n *Node) string {
	var b strings.Builder
	var walk func(*Node)
	walk = func(n *Node) {
		switch n.Kind {
		case KindText, KindRaw:
			b.WriteString(n.Text)
		case KindBreak:
			b.WriteByte('\n')
		case KindImage:
			b.WriteString(n.Alt)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return b.String()
}

func newFragment() *Node {
	return &Node{Kind: KindFragment}
}

func isBlock(n *Node) bool {
	switch n.Kind {
	case KindRule:
		return true
	case KindElement:
		switch n.Element.(type) {
		case view.Div, view.Paragraph, view.BlockQuote, view.Ul, view.Ol, view.Li,
			view.Heading, view.Table, view.Thead, view.Trow, view.Tcell, view.Pre:
			return true
		}
	}
	return false
}
