// Package mdast provides the Markdown syntax tree consumed by the render pass.
// It defines:
// - Snapshot: the parsed source with its line index and tree root
// - Node: structural and inline nodes, each tagged with its source byte range
// - Frontmatter: the raw metadata block stripped from the top of the source
package mdast

// Snapshot is an immutable view of a parsed Markdown source.
// It holds the raw content, line metadata, the optional frontmatter and the AST root.
type Snapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full source bytes, frontmatter included.
	Content []byte

	// Lines contains metadata for each line in the source.
	Lines []LineInfo

	// Frontmatter is the metadata block at the top of the source, if any.
	Frontmatter *Frontmatter

	// Root is the AST root node (Document).
	Root *Node
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// FrontmatterFormat identifies the syntax of a frontmatter block.
type FrontmatterFormat string

const (
	// FrontmatterYAML is delimited by "---" lines.
	FrontmatterYAML FrontmatterFormat = "yaml"

	// FrontmatterTOML is delimited by "+++" lines.
	FrontmatterTOML FrontmatterFormat = "toml"
)

// Frontmatter is a metadata block found at the very start of a source.
type Frontmatter struct {
	// Format is the delimiter-derived syntax of the block.
	Format FrontmatterFormat

	// Text is the raw, unparsed body between the delimiters.
	Text string

	// Range covers the whole block, delimiters included.
	Range SourceRange
}

// NewSnapshot creates a new Snapshot from content.
// It builds the line index but does not parse (that requires a parser).
func NewSnapshot(path string, content []byte) *Snapshot {
	return &Snapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// Valid reports whether r lies inside the snapshot content.
func (f *Snapshot) Valid(r SourceRange) bool {
	return r.Within(len(f.Content))
}
