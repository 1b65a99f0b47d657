package mdast

import "fmt"

// SourceRange represents a half-open byte range in the source content.
type SourceRange struct {
	// StartOffset is the byte index where the range begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the range ends (exclusive).
	EndOffset int
}

// NewRange returns the range [start, end).
func NewRange(start, end int) SourceRange {
	return SourceRange{StartOffset: start, EndOffset: end}
}

// Len returns the length of the range in bytes.
func (r SourceRange) Len() int {
	return r.EndOffset - r.StartOffset
}

// IsEmpty returns true if the range has zero length.
func (r SourceRange) IsEmpty() bool {
	return r.StartOffset == r.EndOffset
}

// Contains returns true if the given offset is within this range.
func (r SourceRange) Contains(offset int) bool {
	return offset >= r.StartOffset && offset < r.EndOffset
}

// Within reports whether 0 <= start <= end <= size.
func (r SourceRange) Within(size int) bool {
	return r.StartOffset >= 0 && r.StartOffset <= r.EndOffset && r.EndOffset <= size
}

// Union returns the smallest range covering both r and other.
func (r SourceRange) Union(other SourceRange) SourceRange {
	return SourceRange{
		StartOffset: min(r.StartOffset, other.StartOffset),
		EndOffset:   max(r.EndOffset, other.EndOffset),
	}
}

// String formats the range as "start..end".
func (r SourceRange) String() string {
	return fmt.Sprintf("%d..%d", r.StartOffset, r.EndOffset)
}

// Position represents a 1-based line and column in a file.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// SourcePosition represents a range in terms of line/column positions.
type SourcePosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Start returns the start position.
func (sp SourcePosition) Start() Position {
	return Position{Line: sp.StartLine, Column: sp.StartColumn}
}

// End returns the end position.
func (sp SourcePosition) End() Position {
	return Position{Line: sp.EndLine, Column: sp.EndColumn}
}

// IsValid returns true if both start and end positions are valid.
func (sp SourcePosition) IsValid() bool {
	return sp.StartLine > 0 && sp.StartColumn > 0 &&
		sp.EndLine > 0 && sp.EndColumn > 0
}

// String formats the position as "line:col-line:col".
func (sp SourcePosition) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", sp.StartLine, sp.StartColumn, sp.EndLine, sp.EndColumn)
}

// SourceRange returns the byte range for this node.
func (n *Node) SourceRange() SourceRange {
	return n.Range
}

// SourcePosition returns the line/column range for this node.
// Returns an invalid position if the node has no associated file.
func (n *Node) SourcePosition() SourcePosition {
	if n.File == nil {
		return SourcePosition{}
	}
	return n.File.Position(n.Range)
}

// Text returns the source text for this node.
// Returns nil if the node has no associated file.
func (n *Node) Text() []byte {
	if n.File == nil || !n.Range.Within(len(n.File.Content)) {
		return nil
	}
	return n.File.Content[n.Range.StartOffset:n.Range.EndOffset]
}
