package mdast

import (
	"bytes"
	"slices"
)

// BuildLines indexes the lines of content. LF and CRLF endings are
// recognised; the final line is always present, even when empty.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	lines := make([]LineInfo, 0, bytes.Count(content, []byte{'\n'})+1)
	start := 0
	for {
		nl := bytes.IndexByte(content[start:], '\n')
		if nl < 0 {
			break
		}
		end := start + nl + 1
		text := end - 1
		if text > start && content[text-1] == '\r' {
			text--
		}
		lines = append(lines, LineInfo{StartOffset: start, NewlineStart: text, EndOffset: end})
		start = end
	}
	return append(lines, LineInfo{StartOffset: start, NewlineStart: len(content), EndOffset: len(content)})
}

// LineCount returns the number of indexed lines.
func (f *Snapshot) LineCount() int {
	return len(f.Lines)
}

// LineAt maps a byte offset to a 1-based line and byte column. Offsets at
// or past the end land on the last line; negative offsets give (0, 0).
func (f *Snapshot) LineAt(offset int) (int, int) {
	if offset < 0 || len(f.Lines) == 0 {
		return 0, 0
	}

	idx, _ := slices.BinarySearchFunc(f.Lines, offset, func(l LineInfo, off int) int {
		if l.EndOffset <= off {
			return -1
		}
		return 1
	})
	idx = min(idx, len(f.Lines)-1)
	return idx + 1, offset - f.Lines[idx].StartOffset + 1
}

// Offset is the inverse of LineAt. A column may point one past the line's
// last byte.
func (f *Snapshot) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(f.Lines) || col < 1 {
		return 0, false
	}
	l := f.Lines[line-1]
	offset := l.StartOffset + col - 1
	if offset > l.EndOffset {
		return 0, false
	}
	return offset, true
}

// LineContent returns a 1-based line without its line ending, or nil.
func (f *Snapshot) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}
	l := f.Lines[line-1]
	return f.Content[l.StartOffset:l.NewlineStart]
}

// Position maps a byte range to line/column positions; the end refers to
// the last byte of a non-empty range.
func (f *Snapshot) Position(r SourceRange) SourcePosition {
	last := r.EndOffset
	if last > r.StartOffset {
		last--
	}
	var pos SourcePosition
	pos.StartLine, pos.StartColumn = f.LineAt(r.StartOffset)
	pos.EndLine, pos.EndColumn = f.LineAt(last)
	return pos
}
