package highlight_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdview/pkg/highlight"
)

func TestNew_UnknownTheme(t *testing.T) {
	t.Parallel()

	_, err := highlight.New("no-such-theme", false)
	require.ErrorIs(t, err, highlight.ErrUnknownTheme)

	assert.True(t, highlight.ThemeExists("github"))
	assert.False(t, highlight.ThemeExists("no-such-theme"))
	assert.Contains(t, highlight.Themes(), "monokai")
}

func TestLanguage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Go", highlight.Language("go", ""))
	assert.Equal(t, "Go", highlight.Language("golang", ""))
	assert.Equal(t, "Go", highlight.Language("", "package main\n"))
	assert.Equal(t, "Rust", highlight.Language("rust", "package main\n"))
}

func TestTokens_RoundTripText(t *testing.T) {
	t.Parallel()

	h, err := highlight.New("github", false)
	require.NoError(t, err)

	code := "package main\n\nfunc main() {}\n"
	tokens, err := h.Tokens("go", code)
	require.NoError(t, err)
	require.NotEmpty(t, tokens)

	var b strings.Builder
	styled := 0
	for _, tok := range tokens {
		b.WriteString(tok.Text)
		assert.Empty(t, tok.Class)
		if tok.Style != "" {
			styled++
		}
	}
	assert.Equal(t, code, b.String())
	assert.Positive(t, styled)
}

func TestTokens_Classes(t *testing.T) {
	t.Parallel()

	h, err := highlight.New("monokai", true)
	require.NoError(t, err)
	assert.True(t, h.Classes())
	assert.Empty(t, h.ContainerStyle())

	tokens, err := h.Tokens("go", "func main() {}")
	require.NoError(t, err)

	classes := make(map[string]bool)
	for _, tok := range tokens {
		assert.Empty(t, tok.Style)
		classes[tok.Class] = true
	}
	// "func" is a declaration keyword.
	assert.True(t, classes["kd"])

	css, err := h.CSS()
	require.NoError(t, err)
	assert.Contains(t, css, ".chroma")
}

func TestContainerStyle_Inline(t *testing.T) {
	t.Parallel()

	h, err := highlight.New("monokai", false)
	require.NoError(t, err)
	assert.Equal(t, "monokai", h.Theme())
	assert.Contains(t, h.ContainerStyle(), "background-color: #")
}
