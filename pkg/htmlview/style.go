package htmlview

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

// NormalizeStyle reformats an inline style declaration list as
// "prop: value;" pairs separated by single spaces. Input douceur cannot
// parse is returned trimmed.
func NormalizeStyle(style string) string {
	style = strings.TrimSpace(style)
	if style == "" {
		return ""
	}
	decls, err := parseDeclarations(style)
	if err != nil || len(decls) == 0 {
		return style
	}
	parts := make([]string, len(decls))
	for i, decl := range decls {
		parts[i] = decl.String()
	}
	return strings.Join(parts, " ")
}

// StyleProperty returns the value of property in an inline style.
func StyleProperty(style, property string) (string, bool) {
	decls, err := parseDeclarations(style)
	if err != nil {
		return "", false
	}
	for _, decl := range decls {
		if strings.EqualFold(decl.Property, property) {
			return decl.Value, true
		}
	}
	return "", false
}

// parseDeclarations parses a declaration list. douceur drops the value of a
// final declaration that has no terminating semicolon, so one is added.
func parseDeclarations(style string) ([]*css.Declaration, error) {
	style = strings.TrimSpace(style)
	if style != "" && !strings.HasSuffix(style, ";") {
		style += ";"
	}
	return parser.ParseDeclarations(style)
}

// Select returns the nodes under root matching a CSS selector.
func Select(root *html.Node, selector string) ([]*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	return sel.MatchAll(root), nil
}

// Attr returns the value of an attribute of n.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
