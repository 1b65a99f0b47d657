package goldmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdview/pkg/mdast"
)

func TestComponents_SelfClosingBlock(t *testing.T) {
	t.Parallel()

	src := "## Counter\n<Counter initial=\"5\"/>\n\n<Counter/>\n"
	snapshot := parse(t, New(FlavorGFM), src)

	components := mdast.FindByKind(snapshot.Root, mdast.NodeComponent)
	require.Len(t, components, 2)

	first := components[0]
	assert.Equal(t, "Counter", first.Component.Name)
	assert.True(t, first.Component.SelfClosing)
	assert.Equal(t, []mdast.Attribute{{Name: "initial", Value: "5"}}, first.Component.Attrs)
	assert.Equal(t, `<Counter initial="5"/>`, string(first.Text()))
	assert.False(t, first.HasChildren())

	assert.Empty(t, components[1].Component.Attrs)
	assert.Equal(t, "<Counter/>", string(components[1].Text()))
}

func TestComponents_BlockWithMarkdownChildren(t *testing.T) {
	t.Parallel()

	src := "<box>\n\n**I am in a blue box !**\n\n</box>\n"
	snapshot := parse(t, New(FlavorGFM), src)

	require.Equal(t, []mdast.NodeKind{mdast.NodeComponent}, childKinds(snapshot.Root))
	box := snapshot.Root.FirstChild
	assert.Equal(t, "box", box.Component.Name)
	assert.False(t, box.Component.SelfClosing)
	assert.Equal(t, "<box>\n\n**I am in a blue box !**\n\n</box>", string(box.Text()))

	require.Equal(t, []mdast.NodeKind{mdast.NodeParagraph}, childKinds(box))
	strong := firstOf(t, box, mdast.NodeStrong)
	assert.Equal(t, "**I am in a blue box !**", string(strong.Text()))
}

func TestComponents_ContiguousHTMLBlockIsReparsed(t *testing.T) {
	t.Parallel()

	src := "<Box>\n*hi* there\n</Box>\n"
	snapshot := parse(t, New(FlavorGFM), src)

	require.Equal(t, []mdast.NodeKind{mdast.NodeComponent}, childKinds(snapshot.Root))
	box := snapshot.Root.FirstChild
	assert.Equal(t, "<Box>\n*hi* there\n</Box>", string(box.Text()))

	para := firstOf(t, box, mdast.NodeParagraph)
	assert.Equal(t, "*hi* there", string(para.Text()))
	assert.Equal(t, "*hi*", string(firstOf(t, para, mdast.NodeEmphasis).Text()))
}

func TestComponents_Inline(t *testing.T) {
	t.Parallel()

	src := "Click <Badge tone=\"info\">new *thing*</Badge> now"
	snapshot := parse(t, New(FlavorGFM), src)

	para := firstOf(t, snapshot.Root, mdast.NodeParagraph)
	require.Equal(t, []mdast.NodeKind{mdast.NodeText, mdast.NodeComponent, mdast.NodeText}, childKinds(para))

	badge := para.Children()[1]
	assert.Equal(t, "Badge", badge.Component.Name)
	assert.Equal(t, []mdast.Attribute{{Name: "tone", Value: "info"}}, badge.Component.Attrs)
	assert.Equal(t, `<Badge tone="info">new *thing*</Badge>`, string(badge.Text()))
	assert.Equal(t, []mdast.NodeKind{mdast.NodeText, mdast.NodeEmphasis}, childKinds(badge))
}

func TestComponents_Nested(t *testing.T) {
	t.Parallel()

	src := "<Outer>\n\n<Inner>\n\ntext\n\n</Inner>\n\n<Leaf/>\n\n</Outer>\n"
	snapshot := parse(t, New(FlavorGFM), src)

	require.Equal(t, []mdast.NodeKind{mdast.NodeComponent}, childKinds(snapshot.Root))
	outer := snapshot.Root.FirstChild
	require.Equal(t, []mdast.NodeKind{mdast.NodeComponent, mdast.NodeComponent}, childKinds(outer))

	inner := outer.FirstChild
	assert.Equal(t, "Inner", inner.Component.Name)
	assert.Equal(t, []mdast.NodeKind{mdast.NodeParagraph}, childKinds(inner))
	assert.Equal(t, "Leaf", outer.LastChild.Component.Name)
}

func TestComponents_UnclosedAndStray(t *testing.T) {
	t.Parallel()

	snapshot := parse(t, New(FlavorGFM), "<Box>\n\ntext\n")
	require.Equal(t, []mdast.NodeKind{mdast.NodeComponent, mdast.NodeParagraph}, childKinds(snapshot.Root))
	assert.False(t, snapshot.Root.FirstChild.HasChildren())

	snapshot = parse(t, New(FlavorGFM), "text\n\n</Box>\n")
	assert.Equal(t, []mdast.NodeKind{mdast.NodeParagraph}, childKinds(snapshot.Root))

	// Names match case-sensitively.
	snapshot = parse(t, New(FlavorGFM), "<Box>\n\ntext\n\n</box>\n")
	assert.Equal(t, []mdast.NodeKind{mdast.NodeComponent, mdast.NodeParagraph}, childKinds(snapshot.Root))
}

func TestComponents_HTMLStaysRaw(t *testing.T) {
	t.Parallel()

	snapshot := parse(t, New(FlavorGFM), "<details>\n<summary>More</summary>\n</details>\n")
	require.Equal(t, []mdast.NodeKind{mdast.NodeHTMLBlock}, childKinds(snapshot.Root))
	assert.Equal(t, "<details>\n<summary>More</summary>\n</details>\n", snapshot.Root.FirstChild.Block.Literal)
}

func TestComponents_InsideBlockquote(t *testing.T) {
	t.Parallel()

	src := "> <Note>\n> quoted\n> </Note>\n"
	snapshot := parse(t, New(FlavorGFM), src)

	quote := firstOf(t, snapshot.Root, mdast.NodeBlockquote)
	require.Equal(t, []mdast.NodeKind{mdast.NodeComponent}, childKinds(quote))
	note := quote.FirstChild
	assert.Equal(t, "<Note>\n> quoted\n> </Note>", string(note.Text()))
	assert.Equal(t, "quoted", string(firstOf(t, note, mdast.NodeParagraph).Text()))
}

func TestGroupComponents_Direct(t *testing.T) {
	t.Parallel()

	state := newGroupState()
	marker := func(name string, kind tagKind, start int) *mdast.Node {
		m := &mapper{state: state}
		return m.newMarker(componentTag{kind: kind, name: name}, mdast.NewRange(start, start+1))
	}

	parent := mdast.NewDocument()
	open := marker("A", tagOpen, 0)
	mdast.AppendChild(parent, open)
	mdast.AppendChild(parent, marker("B", tagOpen, 2))
	mdast.AppendChild(parent, mdast.NewText([]byte("x"), mdast.NewRange(4, 5)))
	mdast.AppendChild(parent, marker("A", tagClose, 6))

	groupComponents(parent, state)

	require.Equal(t, []mdast.NodeKind{mdast.NodeComponent}, childKinds(parent))
	assert.Equal(t, mdast.NewRange(0, 7), open.Range)
	assert.Equal(t, []mdast.NodeKind{mdast.NodeComponent, mdast.NodeText}, childKinds(open))
	assert.False(t, open.FirstChild.HasChildren())
}
