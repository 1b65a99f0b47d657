// Package highlight turns code block content into styled tokens that any
// view target can render. Styles come from chroma themes; the language is
// resolved from the fence tag or detected from the content.
package highlight

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/yaklabco/gomdview/pkg/langdetect"
)

// ClassPrefix is the class set on the container of class-highlighted code.
const ClassPrefix = "chroma"

// ErrUnknownTheme is returned for a theme name chroma does not know.
var ErrUnknownTheme = errors.New("unknown highlight theme")

// Token is a run of code with its presentation.
type Token struct {
	Text string

	// Class is the chroma short class name, set in class mode.
	Class string

	// Style is an inline CSS declaration list, set in inline mode.
	Style string
}

// Highlighter tokenizes code for one theme.
type Highlighter struct {
	theme   string
	style   *chroma.Style
	classes bool
}

// New returns a highlighter for the named chroma theme. When classes is set,
// tokens carry class names and CSS returns the matching stylesheet;
// otherwise tokens carry inline styles.
func New(theme string, classes bool) (*Highlighter, error) {
	style, ok := styles.Registry[theme]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, theme)
	}
	return &Highlighter{theme: theme, style: style, classes: classes}, nil
}

// ThemeExists reports whether chroma knows the named theme.
func ThemeExists(name string) bool {
	_, ok := styles.Registry[name]
	return ok
}

// Themes lists the available theme names.
func Themes() []string {
	return styles.Names()
}

// Theme returns the theme name.
func (h *Highlighter) Theme() string { return h.theme }

// Classes reports whether tokens carry class names.
func (h *Highlighter) Classes() bool { return h.classes }

// Language resolves the chroma lexer name for a block.
// A fence tag known to either go-enry or chroma wins over content detection.
func Language(fenceLang, code string) string {
	fenceLang = strings.TrimSpace(fenceLang)
	if lang, ok := langdetect.FromFence(fenceLang); ok {
		if lexer := lexers.Get(lang); lexer != nil {
			return lexer.Config().Name
		}
	}
	if fenceLang != "" {
		if lexer := lexers.Get(fenceLang); lexer != nil {
			return lexer.Config().Name
		}
	}
	if lexer := lexers.Get(langdetect.Detect([]byte(code))); lexer != nil {
		return lexer.Config().Name
	}
	return langdetect.Text
}

// Tokens splits code into styled tokens. Adjacent tokens of the same type are merged.
func (h *Highlighter) Tokens(fenceLang, code string) ([]Token, error) {
	lexer := lexers.Get(Language(fenceLang, code))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil, fmt.Errorf("tokenise %s: %w", lexer.Config().Name, err)
	}

	var out []Token
	for tok := it(); tok != chroma.EOF; tok = it() {
		if tok.Value == "" {
			continue
		}
		out = append(out, h.token(tok))
	}
	return out, nil
}

func (h *Highlighter) token(tok chroma.Token) Token {
	if h.classes {
		return Token{Text: tok.Value, Class: chroma.StandardTypes[tok.Type]}
	}
	return Token{Text: tok.Value, Style: css(h.style.Get(tok.Type), false)}
}

// ContainerStyle is the inline style for the block container in inline mode.
func (h *Highlighter) ContainerStyle() string {
	if h.classes {
		return ""
	}
	return css(h.style.Get(chroma.Background), true)
}

// CSS returns the stylesheet for class mode.
func (h *Highlighter) CSS() (string, error) {
	var b strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&b, h.style); err != nil {
		return "", fmt.Errorf("write css for %s: %w", h.theme, err)
	}
	return b.String(), nil
}

func css(entry chroma.StyleEntry, background bool) string {
	var decls []string
	if entry.Colour.IsSet() {
		decls = append(decls, "color: "+entry.Colour.String())
	}
	if background && entry.Background.IsSet() {
		decls = append(decls, "background-color: "+entry.Background.String())
	}
	if entry.Bold == chroma.Yes {
		decls = append(decls, "font-weight: bold")
	}
	if entry.Italic == chroma.Yes {
		decls = append(decls, "font-style: italic")
	}
	if entry.Underline == chroma.Yes {
		decls = append(decls, "text-decoration: underline")
	}
	return strings.Join(decls, "; ")
}
