package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdview/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Rendered 3 files (2 written, 1 unchanged), 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Warning.Render("No markdown files found") + "\n"
	}

	line := fmt.Sprintf("Rendered %d %s", stats.FilesRendered, plural(stats.FilesRendered))
	if stats.FilesErrored == 0 && stats.FilesSkipped == 0 {
		line = s.Success.Render(line)
	}

	var detail []string
	if stats.FilesWritten > 0 {
		detail = append(detail, fmt.Sprintf("%d written", stats.FilesWritten))
	}
	if stats.FilesUnchanged > 0 {
		detail = append(detail, fmt.Sprintf("%d unchanged", stats.FilesUnchanged))
	}
	if stats.FilesOutdated > 0 {
		detail = append(detail, fmt.Sprintf("%d outdated", stats.FilesOutdated))
	}
	if len(detail) > 0 {
		line += s.Dim.Render(" (" + strings.Join(detail, ", ") + ")")
	}

	parts := []string{line}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}
	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats, duration string) string {
	var builder strings.Builder

	row := func(label, value string) {
		builder.WriteString(fmt.Sprintf("  %-18s %s\n", label+":", value))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files found", s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)))
	row("Files rendered", s.SummaryValue.Render(strconv.Itoa(stats.FilesRendered)))
	if stats.FilesWritten+stats.FilesUnchanged > 0 {
		row("Outputs written", s.Success.Render(strconv.Itoa(stats.FilesWritten)))
		row("Outputs unchanged", s.SummaryValue.Render(strconv.Itoa(stats.FilesUnchanged)))
	}
	if stats.FilesOutdated > 0 {
		row("Outputs outdated", s.Warning.Render(strconv.Itoa(stats.FilesOutdated)))
	}
	if stats.FilesSkipped > 0 {
		row("Files skipped", s.Warning.Render(strconv.Itoa(stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		row("Files failed", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}
	row("Bytes rendered", s.SummaryValue.Render(strconv.Itoa(stats.BytesRendered)))
	if duration != "" {
		row("Duration", s.Dim.Render(duration))
	}

	builder.WriteString("\n")
	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Render failed"))
	} else {
		builder.WriteString(s.Success.Render("Render succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
