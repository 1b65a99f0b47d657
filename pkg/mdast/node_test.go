package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdview/pkg/mdast"
)

func TestNodeKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Document", mdast.NodeDocument.String())
	assert.Equal(t, "TaskCheckbox", mdast.NodeTaskCheckbox.String())
	assert.Equal(t, "Component", mdast.NodeComponent.String())
	assert.Equal(t, "NodeKind(?)", mdast.NodeKind(999).String())
}

func TestNode_Level(t *testing.T) {
	t.Parallel()

	for _, kind := range []mdast.NodeKind{
		mdast.NodeDocument, mdast.NodeHeading, mdast.NodeTable, mdast.NodeTableCell,
	} {
		node := mdast.NewNode(kind)
		assert.True(t, node.IsBlock(), kind.String())
		assert.False(t, node.IsInline(), kind.String())
	}

	for _, kind := range []mdast.NodeKind{
		mdast.NodeText, mdast.NodeStrikethrough, mdast.NodeImage, mdast.NodeTaskCheckbox,
	} {
		node := mdast.NewNode(kind)
		assert.True(t, node.IsInline(), kind.String())
		assert.False(t, node.IsBlock(), kind.String())
	}

	component := mdast.NewNode(mdast.NodeComponent)
	assert.False(t, component.IsBlock())
	assert.False(t, component.IsInline())
}

func TestNode_TextAndPosition(t *testing.T) {
	t.Parallel()

	snapshot := mdast.NewSnapshot("doc.md", []byte("hello\nworld"))
	node := mdast.NewText([]byte("world"), mdast.NewRange(6, 11))

	assert.Nil(t, node.Text())
	assert.False(t, node.SourcePosition().IsValid())

	node.File = snapshot
	assert.Equal(t, "world", string(node.Text()))
	assert.Equal(t, "world", node.Literal())
	assert.Equal(t, "2:1-2:5", node.SourcePosition().String())

	node.Range = mdast.NewRange(6, 40)
	assert.Nil(t, node.Text())
}

func TestSourceRange(t *testing.T) {
	t.Parallel()

	rng := mdast.NewRange(2, 6)
	assert.Equal(t, 4, rng.Len())
	assert.True(t, rng.Contains(2))
	assert.False(t, rng.Contains(6))
	assert.True(t, rng.Within(6))
	assert.False(t, rng.Within(5))
	assert.False(t, mdast.NewRange(3, 1).Within(10))
	assert.Equal(t, mdast.NewRange(0, 6), rng.Union(mdast.NewRange(0, 1)))
	assert.Equal(t, "2..6", rng.String())
	assert.True(t, mdast.NewRange(4, 4).IsEmpty())
}

func TestCodeBlockAttrs_Language(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "go", (&mdast.CodeBlockAttrs{Info: "go title=main.go"}).Language())
	assert.Equal(t, "rust", (&mdast.CodeBlockAttrs{Info: "rust"}).Language())
	assert.Empty(t, (&mdast.CodeBlockAttrs{}).Language())
}

func TestAlignment_String(t *testing.T) {
	t.Parallel()

	assert.Empty(t, mdast.AlignNone.String())
	assert.Equal(t, "center", mdast.AlignCenter.String())
	assert.Equal(t, "right", mdast.AlignRight.String())
}
