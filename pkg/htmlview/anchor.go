package htmlview

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// headingSelector matches every heading level.
const headingSelector = "h1, h2, h3, h4, h5, h6"

// Heading is a heading of a rendered document.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// Slugger generates unique GitHub-style anchor IDs for one document.
type Slugger struct {
	used map[string]bool
}

// NewSlugger returns a slugger with no IDs taken.
func NewSlugger() *Slugger {
	return &Slugger{used: make(map[string]bool)}
}

// Reserve marks id as taken so generated IDs never collide with it.
func (s *Slugger) Reserve(id string) {
	s.used[id] = true
}

// Slug returns the anchor for text, suffixed "-1", "-2", ... when the plain
// anchor is already taken.
func (s *Slugger) Slug(text string) string {
	base := Slug(text)
	if base == "" {
		base = "section"
	}
	id := base
	for n := 1; s.used[id]; n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	s.used[id] = true
	return id
}

// Slug converts heading text to a GitHub-compatible anchor: lowercase,
// letters, digits, hyphens and underscores kept, spaces turned into single
// hyphens, everything else dropped.
func Slug(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	prevHyphen := false
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_':
			b.WriteRune(r)
			prevHyphen = false
		case r == '-' || unicode.IsSpace(r):
			if !prevHyphen && b.Len() > 0 {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// AddHeadingIDs sets an id on every heading under root that lacks one and
// returns all headings in document order. Existing ids are kept and reserved.
func AddHeadingIDs(root *html.Node) []Heading {
	nodes, err := Select(root, headingSelector)
	if err != nil {
		return nil
	}

	slugger := NewSlugger()
	for _, n := range nodes {
		if id, ok := Attr(n, "id"); ok {
			slugger.Reserve(id)
		}
	}

	headings := make([]Heading, 0, len(nodes))
	for _, n := range nodes {
		text := strings.TrimSpace(TextContent(n))
		id, ok := Attr(n, "id")
		if !ok {
			id = slugger.Slug(text)
			setAttr(n, "id", id)
		}
		headings = append(headings, Heading{Level: headingLevel(n), ID: id, Text: text})
	}
	return headings
}

func headingLevel(n *html.Node) int {
	switch n.DataAtom {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	default:
		return 6
	}
}

// TableOfContents builds a nav element listing links to headings. Each item
// carries a "toc-h<level>" class for indentation by stylesheets.
func TableOfContents(headings []Heading) *html.Node {
	list := newElement("ul")
	for _, h := range headings {
		a := Element("a", []html.Attribute{{Key: "href", Val: "#" + h.ID}}, &html.Node{Type: html.TextNode, Data: h.Text})
		li := Element("li", []html.Attribute{{Key: "class", Val: "toc-h" + strconv.Itoa(h.Level)}}, a)
		list.AppendChild(li)
	}
	return Element("nav", []html.Attribute{{Key: "class", Val: "toc"}}, list)
}
