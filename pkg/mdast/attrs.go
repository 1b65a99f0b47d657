package mdast

// BlockAttrs holds attributes for block-level nodes.
type BlockAttrs struct {
	// HeadingLevel is the heading level (1-6) for NodeHeading.
	HeadingLevel int

	// List holds list-specific attributes for NodeList.
	List *ListAttrs

	// CodeBlock holds code block attributes for NodeCodeBlock.
	CodeBlock *CodeBlockAttrs

	// Align is the column alignment for NodeTableCell.
	Align Alignment

	// Literal is the verbatim body of NodeCodeBlock and NodeHTMLBlock.
	Literal string
}

// ListAttrs holds attributes for list nodes.
type ListAttrs struct {
	// Ordered is true for ordered lists (1., 2., etc.).
	Ordered bool

	// StartNumber is the starting number for ordered lists.
	StartNumber int

	// Tight is true if this is a tight list (no blank lines between items).
	Tight bool
}

// CodeBlockAttrs holds attributes for code block nodes.
type CodeBlockAttrs struct {
	// Info is the info string (language identifier, etc.).
	Info string

	// Fenced is false for indented code blocks.
	Fenced bool
}

// Language returns the first word of the info string.
func (c *CodeBlockAttrs) Language() string {
	for i := 0; i < len(c.Info); i++ {
		if c.Info[i] == ' ' || c.Info[i] == '\t' {
			return c.Info[:i]
		}
	}
	return c.Info
}

// Alignment is the horizontal alignment of a table column.
type Alignment uint8

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// String returns the CSS text-align keyword, or "" for AlignNone.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return ""
	}
}

// InlineAttrs holds attributes for inline-level nodes.
type InlineAttrs struct {
	// Text holds the text content for NodeText, NodeCodeSpan and NodeHTMLInline.
	Text []byte

	// Link holds link attributes for NodeLink and NodeImage.
	Link *LinkAttrs

	// Checked is the state of a NodeTaskCheckbox.
	Checked bool
}

// ReferenceStyle indicates the syntax style of a link or image reference.
type ReferenceStyle uint8

const (
	// RefStyleInline represents inline links: [text](url) or ![alt](url).
	RefStyleInline ReferenceStyle = iota

	// RefStyleReference represents any reference form: [text][label], [label][] or [label].
	RefStyleReference

	// RefStyleAutolink represents autolinks: <https://example.com>.
	RefStyleAutolink

	// RefStyleWikilink represents wikilinks: [[Target]] or [[Target|label]].
	RefStyleWikilink
)

// String returns a human-readable name for the reference style.
func (s ReferenceStyle) String() string {
	switch s {
	case RefStyleInline:
		return "inline"
	case RefStyleReference:
		return "reference"
	case RefStyleAutolink:
		return "autolink"
	case RefStyleWikilink:
		return "wikilink"
	default:
		return "unknown"
	}
}

// LinkAttrs holds attributes for link and image nodes.
type LinkAttrs struct {
	// Destination is the link URL.
	Destination string

	// Title is the optional link title.
	Title string

	// ReferenceStyle indicates the syntax style used.
	ReferenceStyle ReferenceStyle
}

// Attribute is a single name/value pair written on a component tag.
// A bare attribute (no "=") carries the value "true".
type Attribute struct {
	Name  string
	Value string
}

// ComponentAttrs describes a custom component tag.
type ComponentAttrs struct {
	// Name is the tag name with its original case.
	Name string

	// Attrs are the tag attributes in source order, duplicates included.
	Attrs []Attribute

	// SelfClosing is true for <Name ... /> tags.
	SelfClosing bool
}
