package htmlview

import (
	"golang.org/x/net/html"
)

// PageOptions configures a standalone HTML page.
type PageOptions struct {
	Title string

	// CSS is inlined into a <style> element in the head.
	CSS string

	// Resources are emitted as <link> elements in the head.
	Resources []Resource
}

// Page wraps a rendered fragment into a complete HTML document.
func Page(body *html.Node, opts PageOptions) *html.Node {
	head := Element("head", nil,
		Element("meta", []html.Attribute{{Key: "charset", Val: "utf-8"}}),
	)
	if opts.Title != "" {
		head.AppendChild(Element("title", nil, &html.Node{Type: html.TextNode, Data: opts.Title}))
	}
	for _, res := range opts.Resources {
		attrs := []html.Attribute{{Key: "rel", Val: res.Rel}, {Key: "href", Val: res.Href}}
		if res.Rel == "stylesheet" {
			attrs = append(attrs, html.Attribute{Key: "type", Val: "text/css"})
		}
		if res.Integrity != "" {
			attrs = append(attrs, html.Attribute{Key: "integrity", Val: res.Integrity})
		}
		if res.CrossOrigin != "" {
			attrs = append(attrs, html.Attribute{Key: "crossorigin", Val: res.CrossOrigin})
		}
		head.AppendChild(Element("link", attrs))
	}
	if opts.CSS != "" {
		head.AppendChild(Element("style", nil, &html.Node{Type: html.RawNode, Data: opts.CSS}))
	}

	doc := NewFragment()
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(Element("html", nil, head, Element("body", nil, body)))
	return doc
}
