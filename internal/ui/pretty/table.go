package pretty

import (
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"
)

const (
	tableGap         = "  "
	heavySeparator   = "="
	defaultTermWidth = 100
	ellipsis         = "..."
)

// Table is a simple column table. The first column is styled as a key and
// the last column absorbs any width reduction.
type Table struct {
	Headers []string
	Rows    [][]string
}

// FormatTable renders table within width cells. Zero selects a default width.
func (s *Styles) FormatTable(table Table, width int) string {
	if len(table.Rows) == 0 {
		return ""
	}
	if width <= 0 {
		width = defaultTermWidth
	}

	cols := len(table.Headers)
	widths := make([]int, cols)
	for i, h := range table.Headers {
		widths[i] = ansi.PrintableRuneWidth(h)
	}
	for _, row := range table.Rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], ansi.PrintableRuneWidth(row[i]))
		}
	}

	total := 1 + (cols-1)*len(tableGap)
	for _, w := range widths {
		total += w
	}
	if excess := total - width; excess > 0 && cols > 0 {
		last := cols - 1
		widths[last] = max(len(ellipsis)+1, widths[last]-excess)
		total -= excess
	}

	var builder strings.Builder
	line := func(cells []string, styleCell func(i int, cell string) string) {
		parts := make([]string, cols)
		for i := range cols {
			var cell string
			if i < len(cells) {
				cell = cells[i]
			}
			if ansi.PrintableRuneWidth(cell) > widths[i] {
				cell = truncate.StringWithTail(cell, uint(widths[i]), ellipsis) //nolint:gosec // widths are positive
			}
			if i < cols-1 {
				cell = padding.String(cell, uint(widths[i])) //nolint:gosec // widths are positive
			}
			parts[i] = styleCell(i, cell)
		}
		builder.WriteString(strings.TrimRight(" "+strings.Join(parts, tableGap), " "))
		builder.WriteString("\n")
	}

	line(table.Headers, func(_ int, cell string) string { return s.TableHeader.Render(cell) })
	builder.WriteString(s.TableSeparator.Render(strings.Repeat(heavySeparator, min(total, width))))
	builder.WriteString("\n")
	for _, row := range table.Rows {
		line(row, func(i int, cell string) string {
			if i == 0 {
				return s.TableKey.Render(cell)
			}
			return cell
		})
	}

	return builder.String()
}
