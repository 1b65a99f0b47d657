package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdview/pkg/mdast"
)

func kinds(parent *mdast.Node) []mdast.NodeKind {
	var out []mdast.NodeKind
	for _, child := range parent.Children() {
		out = append(out, child.Kind)
	}
	return out
}

func TestAppendChild(t *testing.T) {
	t.Parallel()

	parent := mdast.NewDocument()
	first := mdast.NewNode(mdast.NodeParagraph)
	second := mdast.NewNode(mdast.NodeHeading)

	mdast.AppendChild(parent, first)
	mdast.AppendChild(parent, second)

	assert.Same(t, first, parent.FirstChild)
	assert.Same(t, second, parent.LastChild)
	assert.Same(t, second, first.Next)
	assert.Same(t, first, second.Prev)
	assert.Same(t, parent, second.Parent)
	assert.True(t, parent.HasChildren())

	other := mdast.NewDocument()
	mdast.AppendChild(other, first)
	assert.Equal(t, []mdast.NodeKind{mdast.NodeHeading}, kinds(parent))
	assert.Same(t, other, first.Parent)
	assert.Nil(t, second.Prev)
}

func TestInsertBeforeAndRemove(t *testing.T) {
	t.Parallel()

	parent := mdast.NewDocument()
	a := mdast.NewNode(mdast.NodeParagraph)
	b := mdast.NewNode(mdast.NodeHeading)
	mdast.AppendChild(parent, a)
	mdast.AppendChild(parent, b)

	mdast.InsertBefore(a, mdast.NewNode(mdast.NodeCodeBlock))
	mdast.InsertBefore(b, mdast.NewNode(mdast.NodeTable))
	assert.Equal(t, []mdast.NodeKind{
		mdast.NodeCodeBlock, mdast.NodeParagraph, mdast.NodeTable, mdast.NodeHeading,
	}, kinds(parent))

	mdast.RemoveChild(parent, b)
	assert.Nil(t, b.Parent)
	assert.Equal(t, mdast.NodeTable, parent.LastChild.Kind)

	// Not a child: no-op.
	mdast.RemoveChild(parent, b)
	assert.Len(t, parent.Children(), 3)
}

func TestReplaceWithChildren(t *testing.T) {
	t.Parallel()

	doc := mdast.NewDocument()
	wrapper := mdast.NewNode(mdast.NodeHTMLBlock)
	mdast.AppendChild(doc, mdast.NewNode(mdast.NodeHeading))
	mdast.AppendChild(doc, wrapper)
	mdast.AppendChild(doc, mdast.NewNode(mdast.NodeThematicBreak))
	mdast.AppendChild(wrapper, mdast.NewNode(mdast.NodeParagraph))
	mdast.AppendChild(wrapper, mdast.NewNode(mdast.NodeList))

	mdast.ReplaceWithChildren(wrapper)

	assert.Equal(t, []mdast.NodeKind{
		mdast.NodeHeading, mdast.NodeParagraph, mdast.NodeList, mdast.NodeThematicBreak,
	}, kinds(doc))
	assert.Nil(t, wrapper.Parent)
	assert.Nil(t, wrapper.FirstChild)
}

func TestSetFile(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()
	snapshot := mdast.NewSnapshot("doc.md", nil)
	mdast.SetFile(doc, snapshot)

	require.NoError(t, mdast.Walk(doc, func(n *mdast.Node) error {
		assert.Same(t, snapshot, n.File)
		return nil
	}))
}
