package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gomdview/pkg/mdast"
)

// Byte-offset helpers used by the mapper. goldmark only records segments
// for leaf content, so container and delimiter ranges are recovered by
// scanning the source around those segments.

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// segmentsRange returns the union of segs with trailing whitespace trimmed.
func (m *mapper) segmentsRange(segs *text.Segments) (mdast.SourceRange, bool) {
	if segs == nil || segs.Len() == 0 {
		return mdast.SourceRange{}, false
	}
	start := segs.At(0).Start
	end := segs.At(segs.Len() - 1).Stop
	return mdast.NewRange(start, m.trimRight(start, end)), true
}

// trimRight moves end back over whitespace, never before start.
func (m *mapper) trimRight(start, end int) int {
	end = min(end, len(m.src))
	for end > start && isBlank(m.src[end-1]) {
		end--
	}
	return end
}

// lineStart returns the offset of the first byte of the line containing off.
func (m *mapper) lineStart(off int) int {
	off = min(off, len(m.src))
	if i := bytes.LastIndexByte(m.src[:off], '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

// lineEnd returns the offset of the line feed ending the line containing off,
// or len(src) for the last line.
func (m *mapper) lineEnd(off int) int {
	off = min(off, len(m.src))
	if i := bytes.IndexByte(m.src[off:], '\n'); i >= 0 {
		return off + i
	}
	return len(m.src)
}

// nextContent skips whitespace and blockquote markers from off.
func (m *mapper) nextContent(off int) int {
	for off < len(m.src) && (isBlank(m.src[off]) || m.src[off] == '>') {
		off++
	}
	return off
}

// restOfLine returns the range from off to the end of its line, trimmed.
func (m *mapper) restOfLine(off int) mdast.SourceRange {
	off = min(off, len(m.src))
	return mdast.NewRange(off, m.trimRight(off, m.lineEnd(off)))
}

// afterLineFeed returns the offset just past the next line feed at or after off.
func (m *mapper) afterLineFeed(off int) int {
	end := m.lineEnd(off)
	if end < len(m.src) {
		end++
	}
	return end
}

// quoteMarkerStart moves back from off over indentation and one '>'.
func (m *mapper) quoteMarkerStart(off int) int {
	p := m.skipSpaceBack(off)
	if p > 0 && m.src[p-1] == '>' {
		return p - 1
	}
	return off
}

// listMarkerStart moves back from off over indentation and one list marker
// ("-", "+", "*", "1." or "1)").
func (m *mapper) listMarkerStart(off int) int {
	p := m.skipSpaceBack(off)
	if p == 0 {
		return off
	}
	switch c := m.src[p-1]; {
	case c == '-' || c == '+' || c == '*':
		return p - 1
	case c == '.' || c == ')':
		q := p - 1
		for q > 0 && m.src[q-1] >= '0' && m.src[q-1] <= '9' {
			q--
		}
		if q < p-1 {
			return q
		}
	}
	return off
}

func (m *mapper) skipSpaceBack(off int) int {
	for off > 0 && (m.src[off-1] == ' ' || m.src[off-1] == '\t') {
		off--
	}
	return off
}

// runBack counts up to limit bytes equal to c immediately before off.
func (m *mapper) runBack(off int, c byte, limit int) int {
	n := 0
	for n < limit && off-n-1 >= 0 && m.src[off-n-1] == c {
		n++
	}
	return n
}

// runForward counts up to limit bytes equal to c starting at off.
func (m *mapper) runForward(off int, c byte, limit int) int {
	n := 0
	for n < limit && off+n < len(m.src) && m.src[off+n] == c {
		n++
	}
	return n
}

// delimiterRun extends inner outward over a matching emphasis delimiter run
// of at most width bytes on each side.
func (m *mapper) delimiterRun(inner mdast.SourceRange, width int, delims string) mdast.SourceRange {
	for i := range len(delims) {
		c := delims[i]
		left := m.runBack(inner.StartOffset, c, width)
		if left == 0 {
			continue
		}
		right := m.runForward(inner.EndOffset, c, width)
		return mdast.NewRange(inner.StartOffset-left, inner.EndOffset+right)
	}
	return inner
}

// codeSpanRange extends inner outward over one optional padding space
// and the backtick run on each side.
func (m *mapper) codeSpanRange(inner mdast.SourceRange) mdast.SourceRange {
	start := inner.StartOffset
	if start > 0 && m.src[start-1] == ' ' && start > 1 && m.src[start-2] == '`' {
		start--
	}
	for start > 0 && m.src[start-1] == '`' {
		start--
	}

	end := inner.EndOffset
	if end < len(m.src) && m.src[end] == ' ' && end+1 < len(m.src) && m.src[end+1] == '`' {
		end++
	}
	for end < len(m.src) && m.src[end] == '`' {
		end++
	}
	return mdast.NewRange(start, end)
}

// closingParen returns the offset just past the ')' matching the '(' at open.
// Quoted titles and backslash escapes are skipped.
func (m *mapper) closingParen(open int) int {
	depth := 0
	var quote byte
	for i := open; i < len(m.src); i++ {
		c := m.src[i]
		switch {
		case c == '\\':
			i++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case (c == '"' || c == '\'') && i > open && isBlank(m.src[i-1]):
			quote = c
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(m.src)
}

// union returns the smallest range covering every child of n.
func union(n *mdast.Node) (mdast.SourceRange, bool) {
	if n.FirstChild == nil {
		return mdast.SourceRange{}, false
	}
	rng := n.FirstChild.Range
	for child := n.FirstChild.Next; child != nil; child = child.Next {
		rng = rng.Union(child.Range)
	}
	return rng, true
}

// offsetMap translates offsets in a buffer built by concatenating source
// segments back to offsets in the source.
type offsetMap struct {
	local  []int
	global []int
}

func (o *offsetMap) add(local, global int) {
	o.local = append(o.local, local)
	o.global = append(o.global, global)
}

func (o *offsetMap) toGlobal(off int) int {
	i := len(o.local) - 1
	for i > 0 && o.local[i] > off {
		i--
	}
	return o.global[i] + off - o.local[i]
}

func (o *offsetMap) rangeToGlobal(r mdast.SourceRange) mdast.SourceRange {
	start := o.toGlobal(r.StartOffset)
	if r.IsEmpty() {
		return mdast.NewRange(start, start)
	}
	return mdast.NewRange(start, o.toGlobal(r.EndOffset-1)+1)
}
