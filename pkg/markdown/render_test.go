package markdown_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdview/pkg/component"
	"github.com/yaklabco/gomdview/pkg/markdown"
	"github.com/yaklabco/gomdview/pkg/mdast"
	"github.com/yaklabco/gomdview/pkg/view"
)

func render(t *testing.T, rc *fakeContext, src string) string {
	t.Helper()

	out, err := markdown.Render(context.Background(), rc, []byte(src))
	require.NoError(t, err)
	return out
}

func TestRender_Structure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"heading and emphasis", "# Hi\n\nSome *em* and **b**", "<h1>Hi</h1><p>Some <i>em</i> and <b>b</b></p>"},
		{"ordered list start", "3. a\n4. b\n", "<ol start=3><li>a</li><li>b</li></ol>"},
		{"bullet list", "- a\n- b\n", "<ul><li>a</li><li>b</li></ul>"},
		{"blockquote", "> q\n", "<blockquote><p>q</p></blockquote>"},
		{"thematic break", "a\n\n---\n\nb", "<p>a</p><hr><p>b</p>"},
		{"strikethrough", "~~old~~", "<p><s>old</s></p>"},
		{"code span", "use `x`", "<p>use <code>x</code></p>"},
		{"plain code block", "```\nx := 1\n```\n", "<pre><code>x := 1\n</code></pre>"},
		{"fenced language class", "```go\nx\n```\n", `<pre><code class="language-go">x` + "\n</code></pre>"},
		{"default link", `[t](/u "T")`, `<p><a href="/u">t</a></p>`},
		{"image alt text", "![alt *x*](i.png)", `<p><img src="i.png" alt="alt x"></p>`},
		{"inline html", "a <span>b</span>", "<p>a {raw:<span>}b{raw:</span>}</p>"},
		{"html block", "<div>\nhi\n</div>\n", "{raw:<div>\nhi\n</div>\n}"},
		{"soft break", "a\nb", "<p>a b</p>"},
		{"empty document", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, render(t, newFakeContext(), tt.src))
		})
	}
}

func TestRender_HeadingLevelsDistinct(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for level := 1; level <= 6; level++ {
		out := render(t, newFakeContext(), strings.Repeat("#", level)+" x")
		assert.Equal(t, fmt.Sprintf("<h%d>x</h%d>", level, level), out)
		assert.False(t, seen[out])
		seen[out] = true
	}
}

func TestRender_HardLineBreaks(t *testing.T) {
	t.Parallel()

	rc := newFakeContext()
	rc.opts.HardLineBreaks = true
	assert.Equal(t, "<p>a<br>b</p>", render(t, rc, "a\nb"))
}

func TestRender_TaskListAndTable(t *testing.T) {
	t.Parallel()

	out := render(t, newFakeContext(), "- [x] done\n- [ ] todo\n")
	assert.True(t, strings.HasPrefix(out, "<ul><li>[x]"), out)
	assert.Contains(t, out, "<li>[x] done</li>")
	assert.Contains(t, out, "<li>[ ] todo</li>")

	out = render(t, newFakeContext(), "| a | b |\n|---|:-:|\n| 1 | 2 |\n")
	assert.Equal(t,
		`<table><thead><tr><td>a</td><td style="text-align: center">b</td></tr></thead>`+
			`<tr><td>1</td><td style="text-align: center">2</td></tr></table>`,
		out)
}

func TestRender_CounterScenario(t *testing.T) {
	t.Parallel()

	newRC := func() *fakeContext {
		return newFakeContext(component.NewEntry("Counter", counter))
	}

	assert.Equal(t, "counter:5", render(t, newRC(), `<Counter initial="5"/>`))
	assert.Equal(t, "counter:0", render(t, newRC(), `<Counter/>`))

	out, err := markdown.Render(context.Background(), newRC(), []byte(`<Counter initial="a"/>`))
	require.ErrorIs(t, err, component.ErrAttributeParse)
	assert.Empty(t, out)

	var ce *component.CreationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "initial", ce.Name)
	assert.Equal(t, "a", ce.Value)
}

func TestRender_ExampleDocument(t *testing.T) {
	t.Parallel()

	src := "## Here is a counter:\n<Counter initial=\"5\"/>\n\n<Counter/>\n\n" +
		"## Here is a Box:\n<box>\n\n**I am in a blue box !**\n\n</box>\n"
	rc := newFakeContext(component.NewEntry("Counter", counter), component.NewEntry("box", box))

	assert.Equal(t,
		"<h2>Here is a counter:</h2>counter:5counter:0"+
			"<h2>Here is a Box:</h2>"+`<div style="border: 2px solid blue"><p><b>I am in a blue box !</b></p></div>`,
		render(t, rc, src))
}

func TestRender_ComponentProps(t *testing.T) {
	t.Parallel()

	var got []component.Props[string]
	capture := func(props component.Props[string]) (string, error) {
		got = append(got, props)
		return "[" + props.Children + "]", nil
	}

	src := "<Callout kind=\"warn\" title=\"T\" kind=\"x\">\n\nbody\n\n</Callout>\n\nText <Badge n=\"1\"/> end"
	rc := newFakeContext(component.NewEntry("Callout", capture), component.NewEntry("Badge", capture))

	out := render(t, rc, src)
	assert.Equal(t, "[<p>body</p>]<p>Text [] end</p>", out)

	require.Len(t, got, 2)
	callout := got[0]
	assert.Equal(t, "Callout", callout.Name)
	assert.Equal(t, component.Attrs{
		{Name: "kind", Value: "warn"},
		{Name: "title", Value: "T"},
		{Name: "kind", Value: "x"},
	}, callout.Attrs)
	assert.Equal(t, "<p>body</p>", callout.Children)
	assert.False(t, callout.SelfClosing)
	assert.Equal(t, "<Callout kind=\"warn\" title=\"T\" kind=\"x\">\n\nbody\n\n</Callout>",
		src[callout.Range.StartOffset:callout.Range.EndOffset])

	badge := got[1]
	assert.True(t, badge.SelfClosing)
	assert.Empty(t, badge.Children)
	assert.Equal(t, `<Badge n="1"/>`, src[badge.Range.StartOffset:badge.Range.EndOffset])
}

func TestRender_UnknownComponent(t *testing.T) {
	t.Parallel()

	rc := newFakeContext(component.NewEntry("Counter", counter))
	out, err := markdown.Render(context.Background(), rc, []byte("# Title\n\n<Nope/>\n"))

	require.ErrorIs(t, err, component.ErrUnknownComponent)
	assert.Empty(t, out)
	var ce *component.CreationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "Nope", ce.Name)
}

func TestRender_ComponentErrorPropagatesUnchanged(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	rc := newFakeContext(component.NewEntry("Fail", func(component.Props[string]) (string, error) {
		return "", boom
	}))

	_, err := markdown.Render(context.Background(), rc, []byte("<Fail/>"))
	assert.Same(t, boom, err)
}

func TestRender_NestedComponentFailureAborts(t *testing.T) {
	t.Parallel()

	rc := newFakeContext(component.NewEntry("box", box))
	out, err := markdown.Render(context.Background(), rc, []byte("<box>\n\n<Missing/>\n\n</box>\n"))

	require.ErrorIs(t, err, component.ErrUnknownComponent)
	assert.Empty(t, out)
}

func TestRender_LinkOverride(t *testing.T) {
	t.Parallel()

	var got []view.LinkDescription[string]
	rc := newFakeContext()
	rc.opts.Wikilinks = true
	rc.linkOverride = func(link view.LinkDescription[string]) (string, error) {
		got = append(got, link)
		return fmt.Sprintf("LINK(%s|%s|%s)", link.URL, link.Title, link.Content), nil
	}

	src := `[t](/u "T") ![i](p.png) [[Page|label]]`
	out := render(t, rc, src)
	assert.Equal(t, "<p>LINK(/u|T|t) LINK(p.png||i) LINK(Page||label)</p>", out)

	require.Len(t, got, 3)
	assert.False(t, got[0].Image)
	assert.True(t, got[1].Image)
	assert.True(t, got[2].Wikilink)
	assert.Equal(t, "[[Page|label]]", src[got[2].Range.StartOffset:got[2].Range.EndOffset])
}

func TestRender_LinkOverrideError(t *testing.T) {
	t.Parallel()

	cause := errors.New("no route")
	rc := newFakeContext()
	rc.linkOverride = func(view.LinkDescription[string]) (string, error) { return "", cause }

	out, err := markdown.Render(context.Background(), rc, []byte("see [x](/y)"))
	assert.Empty(t, out)

	var overrideErr *view.LinkOverrideError
	require.ErrorAs(t, err, &overrideErr)
	assert.Equal(t, "/y", overrideErr.URL)
	assert.ErrorIs(t, err, cause)
}

func TestRender_Frontmatter(t *testing.T) {
	t.Parallel()

	rc := newFakeContext()
	out := render(t, rc, "---\ntitle: x\n---\n# H\n")

	assert.Equal(t, "<h1>H</h1>", out)
	assert.Equal(t, []string{"title: x\n"}, rc.frontmatter)

	rc = newFakeContext()
	render(t, rc, "# none\n")
	assert.Empty(t, rc.frontmatter)
}

func TestRender_HandlerRanges(t *testing.T) {
	t.Parallel()

	src := "Para *one*\n\n- item\n\n```\ncode\n```\n"
	rc := newFakeContext()
	render(t, rc, src)

	require.NotEmpty(t, rc.handlers)
	for _, rng := range rc.handlers {
		assert.True(t, rng.Within(len(src)), "range %s", rng)
	}

	spans := make([]string, 0, len(rc.handlers))
	for _, rng := range rc.handlers {
		spans = append(spans, src[rng.StartOffset:rng.EndOffset])
	}
	assert.Contains(t, spans, "Para *one*")
	assert.Contains(t, spans, "*one*")
	assert.Contains(t, spans, "- item")
	assert.Contains(t, spans, "```\ncode\n```")
}

func TestRender_HighlightStylesheetMountedOnce(t *testing.T) {
	t.Parallel()

	rc := newFakeContext()
	rc.opts.Highlight = view.HighlightOptions{Classes: true, Stylesheet: "https://cdn.example/hl.css", Integrity: "sha384-x"}

	out := render(t, rc, "```go\nfunc a() {}\n```\n\n```go\nfunc b() {}\n```\n")

	assert.Equal(t, []string{"stylesheet https://cdn.example/hl.css sha384-x anonymous"}, rc.mounts)
	assert.Equal(t, 2, strings.Count(out, `<pre class="chroma">`))
	assert.Contains(t, out, `<span class="kd">func</span>`)
}

func TestRender_HighlightInline(t *testing.T) {
	t.Parallel()

	rc := newFakeContext()
	rc.opts.Highlight = view.HighlightOptions{}
	rc.opts.Theme = "monokai"

	out := render(t, rc, "```go\nfunc main() {}\n```\n")
	assert.True(t, strings.HasPrefix(out, `<pre style="`), out)
	assert.Contains(t, out, `<code class="language-go">`)
	assert.Contains(t, out, `<span style="color: #`)
	assert.Empty(t, rc.mounts)
}

func TestRender_UnknownThemeFallsBackToPlainCode(t *testing.T) {
	t.Parallel()

	rc := newFakeContext()
	rc.opts.Highlight = view.HighlightOptions{}
	rc.opts.Theme = "no-such-theme"

	out := render(t, rc, "```go\nx\n```\n")
	assert.Equal(t, `<pre><code class="language-go">x`+"\n</code></pre>", out)
}

func TestRender_Trace(t *testing.T) {
	t.Parallel()

	rc := newFakeContext()
	render(t, rc, "hi")
	assert.Empty(t, rc.traces)

	rc.opts.Debug = true
	render(t, rc, "hi")
	require.Len(t, rc.traces, 1)
	assert.Equal(t, []string{"Text 0..2", "Paragraph 0..2", "Document 0..2"}, rc.traces[0])
}

func TestRenderSnapshot(t *testing.T) {
	t.Parallel()

	rc := newFakeContext()
	parser := markdown.NewParser(rc.opts, rc.HasCustomComponent)
	snapshot, err := parser.Parse(context.Background(), "doc.md", []byte("*x*"))
	require.NoError(t, err)

	out, err := markdown.RenderSnapshot(context.Background(), rc, snapshot)
	require.NoError(t, err)
	assert.Equal(t, "<p><i>x</i></p>", out)

	_, err = markdown.RenderSnapshot(context.Background(), rc, &mdast.Snapshot{})
	assert.Error(t, err)
}
