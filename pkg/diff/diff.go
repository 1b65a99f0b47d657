// Package diff computes line-based unified diffs between a previously
// written output and a freshly rendered one.
package diff

import (
	"fmt"
	"strings"
)

// Diff is a unified diff between an old and a new version of a file.
type Diff struct {
	// Path is the file path used in the diff headers.
	Path string

	// Hunks contains the changed regions with surrounding context.
	Hunks []Hunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// Hunk is one "@@ -a,b +c,d @@" section.
type Hunk struct {
	// OldStart is the 1-based first line of the hunk in the old version.
	OldStart int
	OldCount int

	// NewStart is the 1-based first line of the hunk in the new version.
	NewStart int
	NewCount int

	Lines []Line
}

// Line is a single line of a hunk.
type Line struct {
	Kind    LineKind
	Content string
}

// LineKind classifies a hunk line.
type LineKind int

const (
	// LineContext is unchanged.
	LineContext LineKind = iota

	// LineAdd exists only in the new version.
	LineAdd

	// LineRemove exists only in the old version.
	LineRemove
)

// Prefix returns the unified diff prefix character of the kind.
func (k LineKind) Prefix() string {
	switch k {
	case LineAdd:
		return "+"
	case LineRemove:
		return "-"
	default:
		return " "
	}
}

// ContextLines is the number of unchanged lines shown around a change.
const ContextLines = 3

// Compute returns the diff from old to new, or nil when they hold the same lines.
func Compute(path string, old, new []byte) *Diff {
	oldLines := splitLines(old)
	newLines := splitLines(new)

	ops := editScript(oldLines, newLines)
	hunks := group(ops)
	if len(hunks) == 0 {
		return nil
	}

	d := &Diff{Path: path, Hunks: hunks}
	for _, op := range ops {
		switch op.Kind {
		case LineAdd:
			d.Additions++
		case LineRemove:
			d.Deletions++
		}
	}
	return d
}

// HasChanges reports whether d contains any hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String returns the diff in unified format with "---" and "+++" headers.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n", path)
	fmt.Fprintf(&b, "+++ b/%s\n", path)
	for _, h := range d.Hunks {
		b.WriteString(h.Header())
		b.WriteString("\n")
		for _, line := range h.Lines {
			b.WriteString(line.Kind.Prefix())
			b.WriteString(line.Content)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Header returns the "@@ -a,b +c,d @@" line of the hunk.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
}

// splitLines splits content into lines without their terminators.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.Split(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// editScript returns the shortest sequence of context, remove and add
// operations turning a into b. Removals precede additions within a change.
func editScript(a, b []string) []Line {
	// lcs[i][j] is the length of the longest common subsequence of a[i:] and b[j:].
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]Line, 0, max(len(a), len(b)))
	var adds []Line
	flush := func() {
		ops = append(ops, adds...)
		adds = adds[:0]
	}

	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i < len(a) && j < len(b) && a[i] == b[j]:
			flush()
			ops = append(ops, Line{Kind: LineContext, Content: a[i]})
			i++
			j++
		case j < len(b) && (i == len(a) || lcs[i][j+1] >= lcs[i+1][j]):
			adds = append(adds, Line{Kind: LineAdd, Content: b[j]})
			j++
		default:
			ops = append(ops, Line{Kind: LineRemove, Content: a[i]})
			i++
		}
	}
	flush()
	return ops
}

// group splits an edit script into hunks with ContextLines of context.
// Changes separated by at most twice the context share a hunk.
func group(ops []Line) []Hunk {
	var hunks []Hunk

	oldLine, newLine := 1, 1
	for start := 0; start < len(ops); {
		// Find the next change.
		first := start
		for first < len(ops) && ops[first].Kind == LineContext {
			first++
		}
		if first == len(ops) {
			break
		}

		// Extend over changes whose gap fits inside shared context.
		last := first
		for k := first; k < len(ops); k++ {
			if ops[k].Kind != LineContext {
				last = k
				continue
			}
			if k-last > 2*ContextLines {
				break
			}
		}

		from := max(start, first-ContextLines)
		to := min(len(ops), last+1+ContextLines)

		// Everything before from is context.
		oldLine += from - start
		newLine += from - start

		h := Hunk{OldStart: oldLine, NewStart: newLine, Lines: ops[from:to]}
		for _, op := range h.Lines {
			if op.Kind != LineAdd {
				h.OldCount++
				oldLine++
			}
			if op.Kind != LineRemove {
				h.NewCount++
				newLine++
			}
		}
		// An empty side is addressed by the line before it.
		if h.OldCount == 0 {
			h.OldStart--
		}
		if h.NewCount == 0 {
			h.NewStart--
		}
		hunks = append(hunks, h)
		start = to
	}
	return hunks
}
