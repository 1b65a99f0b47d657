package view

import (
	"fmt"
	"strings"
)

// ElementKind is the closed set of structural nodes a render pass can emit.
// The set is sealed: only the types in this file implement it.
type ElementKind interface {
	elementKind()
}

type (
	// Div is a generic block container.
	Div struct{}
	// Span is a generic inline container.
	Span struct{}
	// Paragraph is a paragraph.
	Paragraph struct{}
	// BlockQuote is a block quote.
	BlockQuote struct{}
	// Ul is an unordered list.
	Ul struct{}
	// Ol is an ordered list whose first item is numbered Start.
	Ol struct{ Start int }
	// Li is a list item.
	Li struct{}
	// Heading is a heading of Level 1 through 6.
	Heading struct{ Level int }
	// Table is a table.
	Table struct{}
	// Thead is a table header section.
	Thead struct{}
	// Trow is a table row.
	Trow struct{}
	// Tcell is a table cell.
	Tcell struct{}
	// Italics is emphasised text.
	Italics struct{}
	// Bold is strongly emphasised text.
	Bold struct{}
	// Strikethrough is struck-out text.
	Strikethrough struct{}
	// Pre is a preformatted block.
	Pre struct{}
	// Code is inline or block code.
	Code struct{}
)

func (Div) elementKind()           {}
func (Span) elementKind()          {}
func (Paragraph) elementKind()     {}
func (BlockQuote) elementKind()    {}
func (Ul) elementKind()            {}
func (Ol) elementKind()            {}
func (Li) elementKind()            {}
func (Heading) elementKind()       {}
func (Table) elementKind()         {}
func (Thead) elementKind()         {}
func (Trow) elementKind()          {}
func (Tcell) elementKind()         {}
func (Italics) elementKind()       {}
func (Bold) elementKind()          {}
func (Strikethrough) elementKind() {}
func (Pre) elementKind()           {}
func (Code) elementKind()          {}

// Tag returns the HTML tag name for the heading level.
// It panics when Level is outside 1..6: the parser never produces such a heading.
func (h Heading) Tag() string {
	if h.Level < 1 || h.Level > 6 {
		panic(fmt.Sprintf("view: heading level %d out of range 1..6", h.Level))
	}
	return fmt.Sprintf("h%d", h.Level)
}

// TagName returns the HTML tag name for kind.
func TagName(kind ElementKind) string {
	switch k := kind.(type) {
	case Div:
		return "div"
	case Span:
		return "span"
	case Paragraph:
		return "p"
	case BlockQuote:
		return "blockquote"
	case Ul:
		return "ul"
	case Ol:
		return "ol"
	case Li:
		return "li"
	case Heading:
		return k.Tag()
	case Table:
		return "table"
	case Thead:
		return "thead"
	case Trow:
		return "tr"
	case Tcell:
		return "td"
	case Italics:
		return "i"
	case Bold:
		return "b"
	case Strikethrough:
		return "s"
	case Pre:
		return "pre"
	case Code:
		return "code"
	default:
		panic(fmt.Sprintf("view: unhandled element kind %T", kind))
	}
}

// Handler is an interaction callback attached to an emitted element.
type Handler[E any] func(event E)

// ElementAttributes decorates an element.
type ElementAttributes[E any] struct {
	// Classes are joined with single spaces.
	Classes []string

	// Style is an inline style declaration list. Empty means none.
	Style string

	// OnClick is nil when the element is not interactive.
	OnClick Handler[E]
}

// Class returns the classes joined for a class attribute.
func (a ElementAttributes[E]) Class() string {
	return strings.Join(a.Classes, " ")
}
