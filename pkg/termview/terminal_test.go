package termview_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdview/pkg/builtin"
	"github.com/yaklabco/gomdview/pkg/component"
	"github.com/yaklabco/gomdview/pkg/termview"
	"github.com/yaklabco/gomdview/pkg/view"
)

func plainRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return r
}

func newTerminal(width int) *termview.Terminal {
	opts := view.DefaultOptions()
	opts.Highlight.Disabled = true
	term := termview.New(termview.Config{Options: opts, Width: width, Renderer: plainRenderer()})
	term.SetComponents(builtin.Registry[*termview.Node, *termview.Event](term))
	return term
}

func renderString(t *testing.T, term *termview.Terminal, src string) string {
	t.Helper()

	out, err := term.RenderString(context.Background(), []byte(src))
	require.NoError(t, err)
	return out
}

func TestRenderString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		width int
		src   string
		want  string
	}{
		{
			name: "heading and paragraph",
			src:  "# Title\n\nHello *world* and `code`.\n",
			want: "# Title\n\nHello world and code.",
		},
		{
			name:  "word wrap",
			width: 7,
			src:   "one two three\n",
			want:  "one two\nthree",
		},
		{
			name: "block quote",
			src:  "> quoted\n",
			want: "│ quoted",
		},
		{
			name: "lists",
			src:  "- a\n- b\n\n3. x\n4. y\n",
			want: "• a\n• b\n\n3. x\n4. y",
		},
		{
			name: "nested list",
			src:  "- a\n  - b\n",
			want: "• a\n  • b",
		},
		{
			name: "task list",
			src:  "- [x] done\n- [ ] todo\n",
			want: "• [x] done\n• [ ] todo",
		},
		{
			name: "table",
			src:  "| a | bb |\n|---|---:|\n| 1 | 2 |\n",
			want: "a │ bb\n──┼───\n1 │  2",
		},
		{
			name:  "rule",
			width: 5,
			src:   "---\n",
			want:  "─────",
		},
		{
			name: "code block",
			src:  "```\nfoo\n  bar\n```\n",
			want: "  foo\n    bar",
		},
		{
			name: "raw html keeps text",
			src:  "<div class=\"note\">\nhi\n</div>\n",
			want: "hi",
		},
		{
			name: "links",
			src:  "[label](https://x.io) <https://y.io>\n",
			want: "label <https://x.io> https://y.io",
		},
		{
			name: "image",
			src:  "![logo](l.png)\n",
			want: "[image: logo]",
		},
		{
			name: "hard break",
			src:  "one\\\ntwo\n",
			want: "one\ntwo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, renderString(t, newTerminal(tt.width), tt.src))
		})
	}
}

func TestRenderString_Highlighted(t *testing.T) {
	t.Parallel()

	opts := view.DefaultOptions()
	opts.Highlight.Classes = true
	term := termview.New(termview.Config{Options: opts, Renderer: plainRenderer()})
	assert.False(t, term.Options().Highlight.Classes)

	root, err := term.Render(context.Background(), []byte("```go\nfunc main() {}\n```\n"))
	require.NoError(t, err)

	styled := termview.Find(root, func(n *termview.Node) bool { return n.Style != "" })
	assert.NotEmpty(t, styled, "tokens carry inline styles")
	assert.Equal(t, "  func main() {}", termview.Layout(root, 40, term.Styles()))
}

func TestCounter(t *testing.T) {
	t.Parallel()

	src := "<Counter initial=\"5\"/>\n"
	term := newTerminal(0)

	root, err := term.Render(context.Background(), []byte(src))
	require.NoError(t, err)
	assert.Equal(t, "[-]5[+]", termview.Layout(root, 0, term.Styles()))

	values := termview.Find(root, termview.ByClass("counter-value"))
	require.Len(t, values, 1)
	assert.Equal(t, "5", termview.PlainText(values[0]))

	var got []view.MouseEvent[*termview.Event]
	term.SetOnClick(func(e view.MouseEvent[*termview.Event]) { got = append(got, e) })

	plus := termview.Find(root, termview.ByClass("counter-increment"))
	require.Len(t, plus, 1)
	assert.True(t, plus[0].Interactive())
	require.True(t, termview.Click(plus[0].Children[0]))
	require.Len(t, got, 1)
	assert.Equal(t, `<Counter initial="5"/>`, src[got[0].Position.StartOffset:got[0].Position.EndOffset])
	assert.Same(t, plus[0], got[0].Event.Current)

	_, err = term.Render(context.Background(), []byte(`<Counter initial="a"/>`))
	require.ErrorIs(t, err, component.ErrAttributeParse)
}

func TestBox(t *testing.T) {
	t.Parallel()

	out := renderString(t, newTerminal(0), "<box>\n\nin box\n\n</box>\n")
	assert.Equal(t, "┌──────┐\n│in box│\n└──────┘", out)
}

func TestCallout(t *testing.T) {
	t.Parallel()

	out := renderString(t, newTerminal(0), "<Callout kind=\"note\">\n\nRead *this*.\n\n</Callout>\n")
	assert.Equal(t, "Note\n\nRead this.", out)
}

func TestTerminal_Frontmatter(t *testing.T) {
	t.Parallel()

	term := newTerminal(0)
	out := renderString(t, term, "---\ntitle: x\n---\nbody\n")
	assert.Equal(t, "body", out)

	fm, ok := term.Frontmatter()
	assert.True(t, ok)
	assert.Equal(t, "title: x\n", fm)
}

func TestTerminal_FrontmatterClearedByNextPass(t *testing.T) {
	t.Parallel()

	term := newTerminal(0)
	renderString(t, term, "---\ntitle: x\n---\nbody\n")
	renderString(t, term, "body\n")

	_, ok := term.Frontmatter()
	assert.False(t, ok)
}

func TestTerminal_LinkOverride(t *testing.T) {
	t.Parallel()

	opts := view.DefaultOptions()
	opts.Wikilinks = true
	var term *termview.Terminal
	term = termview.New(termview.Config{
		Options:  opts,
		Renderer: plainRenderer(),
		Links: func(link view.LinkDescription[*termview.Node]) (*termview.Node, error) {
			if !link.Wikilink {
				return term.Link(link.Content, link.URL), nil
			}
			return term.Text("{" + strings.ToUpper(link.URL) + "}"), nil
		},
	})

	assert.Equal(t, "see {HOME}", renderString(t, term, "see [[home]]\n"))
}

func TestTerminal_UnknownComponent(t *testing.T) {
	t.Parallel()

	_, err := newTerminal(0).Render(context.Background(), []byte("<Widget/>"))
	require.ErrorIs(t, err, component.ErrUnknownComponent)
}

func TestLayout_Nil(t *testing.T) {
	t.Parallel()

	assert.Empty(t, termview.Layout(nil, 10, nil))
}
