package termview

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/yaklabco/gomdview/pkg/view"
)

// DefaultWidth is the layout width used when none is configured.
const DefaultWidth = 80

const codeIndent = 2

type layout struct {
	styles *Styles
	width  int
}

// Layout lays root out into lines at most width cells wide. Code blocks are
// hard-wrapped, tables are not wrapped.
func Layout(root *Node, width int, styles *Styles) string {
	if root == nil {
		return ""
	}
	if width <= 0 {
		width = DefaultWidth
	}
	l := &layout{styles: styles, width: width}

	children := []*Node{root}
	if root.Kind == KindFragment {
		children = root.Children
	}
	lines := l.flow(children, width, true)
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

// flow lays out a mixed list of inline and block nodes. Consecutive inline
// nodes are joined and word-wrapped; spaced separates blocks with a blank line.
func (l *layout) flow(children []*Node, width int, spaced bool) []string {
	var out []string
	var run strings.Builder

	add := func(lines []string) {
		if len(lines) == 0 {
			return
		}
		if spaced && len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, lines...)
	}
	flush := func() {
		text := strings.TrimSpace(run.String())
		run.Reset()
		if text != "" {
			add(l.wrap(text, width))
		}
	}

	for _, child := range children {
		if isBlock(child) {
			flush()
			add(l.block(child, width))
			continue
		}
		run.WriteString(l.inline(child))
	}
	flush()
	return out
}

func (l *layout) wrap(text string, width int) []string {
	return strings.Split(wordwrap.String(text, width), "\n")
}

func (l *layout) block(n *Node, width int) []string {
	if n.Kind == KindRule {
		return []string{l.styles.Rule.Render(strings.Repeat("─", width))}
	}

	switch kind := n.Element.(type) {
	case view.Heading:
		lines := l.wrap(strings.Repeat("#", kind.Level)+" "+l.inlines(n.Children), width)
		for i, line := range lines {
			lines[i] = l.styles.Heading.Render(line)
		}
		return lines

	case view.BlockQuote:
		lines := l.flow(n.Children, max(width-2, 1), true)
		bar := l.styles.Quote.Render("│ ")
		for i, line := range lines {
			lines[i] = bar + line
		}
		return lines

	case view.Ul, view.Ol:
		return l.list(n, width)

	case view.Table:
		return l.table(n)

	case view.Pre:
		return l.pre(n, width)

	case view.Div:
		return l.div(n, width)

	default:
		return l.flow(n.Children, width, false)
	}
}

func (l *layout) list(n *Node, width int) []string {
	ol, ordered := n.Element.(view.Ol)

	var out []string
	for i, item := range n.Children {
		marker := "• "
		if ordered {
			marker = strconv.Itoa(ol.Start+i) + ". "
		}
		pad := strings.Repeat(" ", ansi.PrintableRuneWidth(marker))

		content := []*Node{item}
		if _, ok := item.Element.(view.Li); ok && item.Kind == KindElement {
			content = item.Children
		}
		lines := l.flow(content, max(width-len(pad), 1), false)
		if len(lines) == 0 {
			lines = []string{""}
		}
		for j, line := range lines {
			if j == 0 {
				out = append(out, marker+line)
			} else {
				out = append(out, pad+line)
			}
		}
	}
	return out
}

type tableRow struct {
	cells  []string
	aligns []string
	header bool
}

func (l *layout) table(n *Node) []string {
	var rows []tableRow

	var collect func(n *Node, header bool)
	collect = func(n *Node, header bool) {
		if hasCells(n) {
			row := tableRow{header: header}
			for _, cell := range n.Children {
				row.cells = append(row.cells, strings.ReplaceAll(l.inlines(cell.Children), "\n", " "))
				row.aligns = append(row.aligns, cssProperty(cell.Style, "text-align"))
			}
			rows = append(rows, row)
			return
		}
		for _, child := range n.Children {
			_, isHead := child.Element.(view.Thead)
			collect(child, header || isHead)
		}
	}
	collect(n, false)

	var widths []int
	for _, row := range rows {
		for i, cell := range row.cells {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], ansi.PrintableRuneWidth(cell))
		}
	}

	sep := l.styles.TableBorder.Render(" │ ")
	out := make([]string, 0, len(rows)+1)
	for i, row := range rows {
		parts := make([]string, len(widths))
		for col, w := range widths {
			var cell, align string
			if col < len(row.cells) {
				cell, align = row.cells[col], row.aligns[col]
			}
			parts[col] = alignCell(cell, w, align)
			if row.header {
				parts[col] = l.styles.TableHeader.Render(parts[col])
			}
		}
		out = append(out, strings.Join(parts, sep))

		if row.header && (i+1 == len(rows) || !rows[i+1].header) {
			rules := make([]string, len(widths))
			for col, w := range widths {
				rules[col] = strings.Repeat("─", w)
			}
			out = append(out, l.styles.TableBorder.Render(strings.Join(rules, "─┼─")))
		}
	}
	return out
}

func hasCells(n *Node) bool {
	for _, child := range n.Children {
		if _, ok := child.Element.(view.Tcell); ok && child.Kind == KindElement {
			return true
		}
	}
	return false
}

func alignCell(cell string, width int, align string) string {
	gap := width - ansi.PrintableRuneWidth(cell)
	if gap <= 0 {
		return cell
	}
	switch align {
	case "right":
		return strings.Repeat(" ", gap) + cell
	case "center":
		left := gap / 2
		return strings.Repeat(" ", left) + cell + strings.Repeat(" ", gap-left)
	default:
		return padding.String(cell, uint(width)) //nolint:gosec // width is positive
	}
}

// pre lays out a code block without word wrapping. The Code element inside
// is not styled as inline code so highlighting shows through.
func (l *layout) pre(n *Node, width int) []string {
	var b strings.Builder
	for _, child := range n.Children {
		if _, ok := child.Element.(view.Code); ok && child.Kind == KindElement {
			b.WriteString(l.inlines(child.Children))
			continue
		}
		b.WriteString(l.inline(child))
	}
	code := strings.TrimRight(b.String(), "\n")
	code = wrap.String(code, max(width-codeIndent, 1))
	return strings.Split(indent.String(code, codeIndent), "\n")
}

func (l *layout) div(n *Node, width int) []string {
	if n.Style == "" {
		return l.flow(n.Children, width, true)
	}
	st := cssStyle(l.styles.Plain, n.Style)
	lines := l.flow(n.Children, max(width-st.GetHorizontalFrameSize(), 1), true)
	if len(lines) == 0 {
		lines = []string{""}
	}
	return strings.Split(st.Render(strings.Join(lines, "\n")), "\n")
}

func (l *layout) inlines(children []*Node) string {
	var b strings.Builder
	for _, child := range children {
		b.WriteString(l.inline(child))
	}
	return b.String()
}

func (l *layout) inline(n *Node) string {
	switch n.Kind {
	case KindText, KindRaw:
		return n.Text
	case KindBreak:
		return "\n"
	case KindFragment:
		return l.inlines(n.Children)
	case KindCheckbox:
		if n.Checked {
			return "[x]"
		}
		return "[ ]"
	case KindImage:
		label := "image"
		if n.Alt != "" {
			label += ": " + n.Alt
		}
		return l.styles.Dim.Render("[" + label + "]")
	case KindLink:
		out := renderLines(l.styles.Link, l.inlines(n.Children))
		if n.Text != "" && PlainText(n) != n.Text {
			out += " " + l.styles.Dim.Render("<"+n.Text+">")
		}
		return out
	}

	if isBlock(n) {
		return "\n" + strings.Join(l.block(n, l.width), "\n") + "\n"
	}

	inner := l.inlines(n.Children)
	var st lipgloss.Style
	switch n.Element.(type) {
	case view.Italics:
		st = l.styles.Italic
	case view.Bold:
		st = l.styles.Bold
	case view.Strikethrough:
		st = l.styles.Strikethrough
	case view.Code:
		st = l.styles.Code
	default:
		if n.Interactive() {
			return renderLines(cssStyle(l.styles.Button, n.Style), "["+inner+"]")
		}
		if n.Style == "" {
			return inner
		}
		st = l.styles.Plain
	}
	return renderLines(cssStyle(st, n.Style), inner)
}
