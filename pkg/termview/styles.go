package termview

import (
	"strconv"
	"strings"

	"github.com/aymerick/douceur/parser"
	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles used to lay out a document.
type Styles struct {
	Plain         lipgloss.Style
	Heading       lipgloss.Style
	Bold          lipgloss.Style
	Italic        lipgloss.Style
	Strikethrough lipgloss.Style
	Code          lipgloss.Style
	Link          lipgloss.Style
	Quote         lipgloss.Style
	Rule          lipgloss.Style
	TableHeader   lipgloss.Style
	TableBorder   lipgloss.Style
	Dim           lipgloss.Style
	Button        lipgloss.Style
}

// DefaultStyles returns the styles bound to r.
func DefaultStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Plain:         r.NewStyle(),
		Heading:       r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Bold:          r.NewStyle().Bold(true),
		Italic:        r.NewStyle().Italic(true),
		Strikethrough: r.NewStyle().Strikethrough(true),
		Code:          r.NewStyle().Foreground(lipgloss.Color("11")),
		Link:          r.NewStyle().Underline(true).Foreground(lipgloss.Color("14")),
		Quote:         r.NewStyle().Foreground(lipgloss.Color("8")),
		Rule:          r.NewStyle().Foreground(lipgloss.Color("8")),
		TableHeader:   r.NewStyle().Bold(true),
		TableBorder:   r.NewStyle().Foreground(lipgloss.Color("8")),
		Dim:           r.NewStyle().Foreground(lipgloss.Color("8")),
		Button:        r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
	}
}

//nolint:gochecknoglobals // read-only lookup table
var namedColors = map[string]string{
	"black":   "0",
	"red":     "9",
	"green":   "10",
	"yellow":  "11",
	"blue":    "12",
	"magenta": "13",
	"cyan":    "14",
	"white":   "15",
	"gray":    "8",
	"grey":    "8",
}

// cssColor converts a CSS color to a lipgloss color. Only hex colors and the
// basic named colors are understood.
func cssColor(value string) (lipgloss.Color, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if strings.HasPrefix(value, "#") {
		return lipgloss.Color(value), true
	}
	if ansi, ok := namedColors[value]; ok {
		return lipgloss.Color(ansi), true
	}
	return "", false
}

// cssStyle applies the subset of an inline CSS declaration list a terminal
// can show on top of base.
func cssStyle(base lipgloss.Style, css string) lipgloss.Style {
	if strings.TrimSpace(css) == "" {
		return base
	}
	decls, err := parser.ParseDeclarations(terminated(css))
	if err != nil {
		return base
	}
	st := base
	for _, decl := range decls {
		value := strings.ToLower(strings.TrimSpace(decl.Value))
		switch strings.ToLower(decl.Property) {
		case "color":
			if c, ok := cssColor(value); ok {
				st = st.Foreground(c)
			}
		case "background", "background-color":
			if c, ok := cssColor(value); ok {
				st = st.Background(c)
			}
		case "font-weight":
			st = st.Bold(isBoldWeight(value))
		case "font-style":
			st = st.Italic(value == "italic" || value == "oblique")
		case "text-decoration":
			st = st.Underline(strings.Contains(value, "underline")).
				Strikethrough(strings.Contains(value, "line-through"))
		case "border":
			st = st.Border(lipgloss.NormalBorder())
			fields := strings.Fields(value)
			if len(fields) > 0 {
				if c, ok := cssColor(fields[len(fields)-1]); ok {
					st = st.BorderForeground(c)
				}
			}
		}
	}
	return st
}

func isBoldWeight(value string) bool {
	if value == "bold" || value == "bolder" {
		return true
	}
	weight, err := strconv.Atoi(value)
	return err == nil && weight >= 600
}

// terminated ends a declaration list with a semicolon. douceur leaves the
// final value empty without one.
func terminated(css string) string {
	css = strings.TrimSpace(css)
	if css == "" || strings.HasSuffix(css, ";") {
		return css
	}
	return css + ";"
}

// cssProperty returns one property of an inline CSS declaration list.
func cssProperty(css, property string) string {
	decls, err := parser.ParseDeclarations(terminated(css))
	if err != nil {
		return ""
	}
	for _, decl := range decls {
		if strings.EqualFold(decl.Property, property) {
			return strings.ToLower(strings.TrimSpace(decl.Value))
		}
	}
	return ""
}

// renderLines styles each line of s on its own so multi-line text is not
// padded into a block.
func renderLines(st lipgloss.Style, s string) string {
	if !strings.Contains(s, "\n") {
		return st.Render(s)
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = st.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
