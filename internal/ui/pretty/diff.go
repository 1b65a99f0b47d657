package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomdview/pkg/diff"
)

// FormatDiff formats a diff git-style under displayPath, one styled line per
// diff line, followed by a blank line.
func (s *Styles) FormatDiff(d *diff.Diff, displayPath string) string {
	if !d.HasChanges() {
		return ""
	}

	var b strings.Builder
	line := func(style func(...string) string, text string) {
		b.WriteString(style(text))
		b.WriteString("\n")
	}

	line(s.DiffHeader.Render, fmt.Sprintf("diff --git a/%s b/%s", displayPath, displayPath))
	line(s.DiffRemove.Render, "--- a/"+displayPath)
	line(s.DiffAdd.Render, "+++ b/"+displayPath)
	for _, h := range d.Hunks {
		line(s.DiffHunk.Render, h.Header())
		for _, l := range h.Lines {
			switch l.Kind {
			case diff.LineAdd:
				line(s.DiffAdd.Render, "+"+l.Content)
			case diff.LineRemove:
				line(s.DiffRemove.Render, "-"+l.Content)
			default:
				line(s.DiffContext.Render, " "+l.Content)
			}
		}
	}
	b.WriteString("\n")
	return b.String()
}

// FormatDiffStat formats "N files changed, A insertions(+), D deletions(-)".
func (s *Styles) FormatDiffStat(files, additions, deletions int) string {
	parts := []string{fmt.Sprintf("%d %s changed", files, plural(files))}
	if additions > 0 {
		parts = append(parts, s.DiffAdd.Render(fmt.Sprintf("%d %s(+)", additions, pluralWord(additions, "insertion"))))
	}
	if deletions > 0 {
		parts = append(parts, s.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deletions, pluralWord(deletions, "deletion"))))
	}
	return strings.Join(parts, ", ") + "\n"
}

func pluralWord(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
