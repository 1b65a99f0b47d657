package htmlview_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/yaklabco/gomdview/pkg/component"
	"github.com/yaklabco/gomdview/pkg/htmlview"
	"github.com/yaklabco/gomdview/pkg/mdast"
	"github.com/yaklabco/gomdview/pkg/view"
)

func plainOptions() view.Options {
	opts := view.DefaultOptions()
	opts.Highlight.Disabled = true
	return opts
}

func newHost() *htmlview.Host {
	return htmlview.NewHost(htmlview.Config{Options: plainOptions()})
}

func renderNode(t *testing.T, host *htmlview.Host, src string) *html.Node {
	t.Helper()

	root, err := host.Render(context.Background(), []byte(src))
	require.NoError(t, err)
	require.True(t, htmlview.IsFragment(root))
	return root
}

func selectOne(t *testing.T, root *html.Node, selector string) *html.Node {
	t.Helper()

	nodes, err := htmlview.Select(root, selector)
	require.NoError(t, err)
	require.Len(t, nodes, 1, selector)
	return nodes[0]
}

func TestHost_RenderString(t *testing.T) {
	t.Parallel()

	out, err := newHost().RenderString(context.Background(), []byte("# Hi\n\n*x* & y"))
	require.NoError(t, err)
	assert.Equal(t, "<h1>Hi</h1><p><i>x</i> &amp; y</p>", out)
}

func TestHost_Structure(t *testing.T) {
	t.Parallel()

	src := "3. one\n4. two\n\n| a | b |\n|---|--:|\n| 1 | 2 |\n\n- [x] done\n\n---\n\n![logo](l.png)\n"
	root := renderNode(t, newHost(), src)

	ol := selectOne(t, root, "ol")
	start, _ := htmlview.Attr(ol, "start")
	assert.Equal(t, "3", start)

	items, err := htmlview.Select(root, "ol > li")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "two", htmlview.TextContent(items[1]))

	cell := selectOne(t, root, "thead tr td:nth-child(2)")
	style, _ := htmlview.Attr(cell, "style")
	assert.Equal(t, "text-align: right;", style)

	box := selectOne(t, root, "li > input[type=checkbox]")
	_, checked := htmlview.Attr(box, "checked")
	assert.True(t, checked)
	assert.Equal(t, " done", htmlview.TextContent(box.Parent))

	selectOne(t, root, "hr")
	img := selectOne(t, root, "img")
	alt, _ := htmlview.Attr(img, "alt")
	assert.Equal(t, "logo", alt)
}

func TestHost_RawHTMLIsParsed(t *testing.T) {
	t.Parallel()

	root := renderNode(t, newHost(), "<div class=\"note\">\nhi\n</div>\n")
	div := selectOne(t, root, "span > div.note")
	assert.Contains(t, htmlview.TextContent(div), "hi")
}

func TestHost_Fragment(t *testing.T) {
	t.Parallel()

	host := newHost()

	empty := host.Fragment(nil)
	assert.True(t, htmlview.IsFragment(empty))
	assert.Nil(t, empty.FirstChild)

	a, b := host.Text("a"), host.Text("b")
	frag := host.Fragment([]*html.Node{a, b})
	assert.Same(t, a, frag.FirstChild)
	assert.Same(t, b, frag.LastChild)
	assert.Same(t, b, a.NextSibling)

	// Nested fragments are flattened.
	outer := host.Fragment([]*html.Node{frag, host.Text("c")})
	assert.Equal(t, "abc", htmlview.TextContent(outer))
	assert.Nil(t, frag.FirstChild)
}

func TestHost_ClickAttribution(t *testing.T) {
	t.Parallel()

	src := "Para *em* end"
	host := newHost()
	root := renderNode(t, host, src)

	em := selectOne(t, root, "p > i")

	// No callback yet: handlers still run but report nowhere.
	assert.True(t, host.Click(em))

	var got []view.MouseEvent[*htmlview.Event]
	host.SetOnClick(func(e view.MouseEvent[*htmlview.Event]) { got = append(got, e) })

	require.True(t, host.Click(em.FirstChild))
	require.Len(t, got, 1, "propagation stops at the innermost handler")
	assert.Equal(t, mdast.NewRange(5, 9), got[0].Position)
	assert.Equal(t, "*em*", src[got[0].Position.StartOffset:got[0].Position.EndOffset])
	assert.Same(t, em.FirstChild, got[0].Event.Target)
	assert.Same(t, em, got[0].Event.Current)
	assert.True(t, got[0].Event.PropagationStopped())

	p := selectOne(t, root, "p")
	host.Click(p)
	require.Len(t, got, 2)
	assert.Equal(t, src, src[got[1].Position.StartOffset:got[1].Position.EndOffset])

	assert.False(t, host.Click(host.Text("detached")))
}

func TestHost_Frontmatter(t *testing.T) {
	t.Parallel()

	host := newHost()
	_, ok := host.Frontmatter()
	assert.False(t, ok)

	renderNode(t, host, "---\ntitle: one\n---\nbody\n")
	fm, ok := host.Frontmatter()
	assert.True(t, ok)
	assert.Equal(t, "title: one\n", fm)

	host.CaptureFrontmatter("first")
	host.CaptureFrontmatter("second")
	fm, _ = host.Frontmatter()
	assert.Equal(t, "second", fm)
}

func TestHost_FrontmatterClearedByNextPass(t *testing.T) {
	t.Parallel()

	host := newHost()
	renderNode(t, host, "---\ntitle: one\n---\nbody\n")
	renderNode(t, host, "no frontmatter\n")

	fm, ok := host.Frontmatter()
	assert.False(t, ok)
	assert.Empty(t, fm)
}

func TestHost_FailedPassDropsHandlers(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var partial *html.Node
	host := newHost()
	host.SetComponents(component.NewRegistry(component.NewEntry("grab",
		func(props component.Props[*html.Node]) (*html.Node, error) {
			partial = props.Children
			return nil, boom
		})))

	_, err := host.Render(context.Background(), []byte("<grab>\n\ninside *x*\n\n</grab>\n"))
	require.ErrorIs(t, err, boom)

	require.NotNil(t, partial)
	p := partial.FirstChild
	require.NotNil(t, p)
	assert.Equal(t, "p", p.Data)
	assert.False(t, host.Click(p))
}

func TestConfig_Equal(t *testing.T) {
	t.Parallel()

	fn := func(component.Props[*html.Node]) (*html.Node, error) { return nil, nil }
	regA := component.NewRegistry(component.NewEntry("x", fn))
	regB := component.NewRegistry(component.NewEntry("x", fn))
	override := htmlview.NewLinkOverride(func(view.LinkDescription[*html.Node]) (*html.Node, error) { return nil, nil })

	base := htmlview.Config{Options: plainOptions(), Components: regA, LinkOverride: override}

	assert.True(t, base.Equal(base))
	assert.False(t, base.Equal(htmlview.Config{Options: plainOptions(), Components: regB, LinkOverride: override}))
	assert.False(t, base.Equal(htmlview.Config{Options: plainOptions(), Components: regA}))

	changed := base
	changed.Options.Wikilinks = true
	assert.False(t, base.Equal(changed))

	host := htmlview.NewHost(base)
	assert.False(t, host.SetConfig(base))
	assert.True(t, host.SetConfig(changed))
	assert.True(t, host.Config().Options.Wikilinks)
}

func TestHost_TraceDeduplicated(t *testing.T) {
	t.Parallel()

	opts := plainOptions()
	opts.Debug = true
	host := htmlview.NewHost(htmlview.Config{Options: opts})

	renderNode(t, host, "hi")
	renderNode(t, host, "hi")
	assert.Equal(t, 1, host.TraceUpdates())
	assert.Equal(t, []string{"Text 0..2", "Paragraph 0..2", "Document 0..2"}, host.Trace())

	renderNode(t, host, "yo!")
	assert.Equal(t, 2, host.TraceUpdates())
}

func TestHost_StylesheetResource(t *testing.T) {
	t.Parallel()

	opts := view.DefaultOptions()
	opts.Highlight = view.HighlightOptions{Classes: true, Stylesheet: "/hl.css", Integrity: "sha384-abc"}
	host := htmlview.NewHost(htmlview.Config{Options: opts})

	src := "```go\nfunc main() {}\n```\n"
	root := renderNode(t, host, src)
	renderNode(t, host, src)

	assert.Equal(t, []htmlview.Resource{{
		Rel: "stylesheet", Href: "/hl.css", Integrity: "sha384-abc", CrossOrigin: "anonymous",
	}}, host.Resources())

	selectOne(t, root, "pre.chroma > code.language-go")
	kw := selectOne(t, root, "code span.kd")
	assert.Equal(t, "func", htmlview.TextContent(kw))
}

func TestHost_LinkOverride(t *testing.T) {
	t.Parallel()

	host := newHost()
	host.SetLinkOverride(htmlview.NewLinkOverride(func(link view.LinkDescription[*html.Node]) (*html.Node, error) {
		if link.URL == "bad" {
			return nil, errors.New("refused")
		}
		return htmlview.Element("a",
			[]html.Attribute{{Key: "href", Val: "/wiki/" + link.URL}, {Key: "class", Val: "internal"}},
			link.Content), nil
	}))

	root := renderNode(t, host, "[label](Home)")
	a := selectOne(t, root, "a.internal")
	href, _ := htmlview.Attr(a, "href")
	assert.Equal(t, "/wiki/Home", href)
	assert.Equal(t, "label", htmlview.TextContent(a))

	_, err := host.Render(context.Background(), []byte("[x](bad)"))
	var overrideErr *view.LinkOverrideError
	require.ErrorAs(t, err, &overrideErr)

	host.SetLinkOverride(nil)
	root = renderNode(t, host, "[label](Home)")
	a = selectOne(t, root, "a")
	href, _ = htmlview.Attr(a, "href")
	assert.Equal(t, "Home", href)
}

func TestHost_UnknownComponent(t *testing.T) {
	t.Parallel()

	root, err := newHost().Render(context.Background(), []byte("<Widget/>"))
	require.ErrorIs(t, err, component.ErrUnknownComponent)
	assert.Nil(t, root)
}

func TestNormalizeStyle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "color: red; font-weight: bold;", htmlview.NormalizeStyle("color:red;font-weight : bold"))
	assert.Empty(t, htmlview.NormalizeStyle("  "))

	v, ok := htmlview.StyleProperty("border: 2px solid blue", "border")
	assert.True(t, ok)
	assert.Equal(t, "2px solid blue", v)
}

func TestNormalizeStyle_Unterminated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, style, property, want string
	}{
		{"single", "text-align: right", "text-align", "right"},
		{"shorthand", "border: 2px solid blue", "border", "2px solid blue"},
		{"last of several", "color: #000000; font-weight: bold", "font-weight", "bold"},
		{"important", "color: red !important", "color", "red"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := htmlview.StyleProperty(tt.style, tt.property)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, htmlview.NormalizeStyle(tt.style), tt.property+": "+tt.want)
		})
	}
}

func TestSelect_InvalidSelector(t *testing.T) {
	t.Parallel()

	_, err := htmlview.Select(htmlview.NewFragment(), "p[")
	assert.Error(t, err)
}

func TestPage(t *testing.T) {
	t.Parallel()

	host := newHost()
	body := renderNode(t, host, "# Doc")
	page := htmlview.Page(body, htmlview.PageOptions{
		Title:     "Doc",
		CSS:       ".chroma{}",
		Resources: []htmlview.Resource{{Rel: "stylesheet", Href: "/a.css"}},
	})

	out, err := htmlview.Serialize(page)
	require.NoError(t, err)
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "<title>Doc</title>")
	assert.Contains(t, out, `<link rel="stylesheet" href="/a.css" type="text/css"/>`)
	assert.Contains(t, out, "<style>.chroma{}</style>")
	assert.Contains(t, out, "<body><h1>Doc</h1></body>")
}
