package diff_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdview/pkg/diff"
)

func TestCompute_NoChanges(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		old, new []byte
	}{
		{"nil", nil, nil},
		{"empty", []byte{}, []byte{}},
		{"identical", []byte("hello\nworld\n"), []byte("hello\nworld\n")},
		{"missing final newline", []byte("hello\nworld"), []byte("hello\nworld\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := diff.Compute("out.html", tt.old, tt.new)
			assert.Nil(t, d)
			assert.False(t, d.HasChanges())
			assert.Empty(t, d.String())
		})
	}
}

func TestCompute_SingleLineChange(t *testing.T) {
	t.Parallel()

	d := diff.Compute("out.html", []byte("hello\nworld\n"), []byte("hello\nearth\n"))

	require.True(t, d.HasChanges())
	assert.Equal(t, 1, d.Additions)
	assert.Equal(t, 1, d.Deletions)
	assert.Equal(t, "--- a/out.html\n+++ b/out.html\n@@ -1,2 +1,2 @@\n hello\n-world\n+earth\n", d.String())
}

func TestCompute_NewFile(t *testing.T) {
	t.Parallel()

	d := diff.Compute("/site/index.html", nil, []byte("<h1>A</h1>\n<p>b</p>\n"))

	require.NotNil(t, d)
	assert.Equal(t, 2, d.Additions)
	assert.Zero(t, d.Deletions)
	require.Len(t, d.Hunks, 1)
	assert.Equal(t, "@@ -0,0 +1,2 @@", d.Hunks[0].Header())
	assert.True(t, strings.HasPrefix(d.String(), "--- a/site/index.html\n+++ b/site/index.html\n"))
}

func TestCompute_RemovedContent(t *testing.T) {
	t.Parallel()

	d := diff.Compute("out.txt", []byte("a\nb\nc\n"), []byte("a\nc\n"))

	require.NotNil(t, d)
	require.Len(t, d.Hunks, 1)
	assert.Equal(t, "@@ -1,3 +1,2 @@", d.Hunks[0].Header())
	assert.Equal(t, []diff.Line{
		{Kind: diff.LineContext, Content: "a"},
		{Kind: diff.LineRemove, Content: "b"},
		{Kind: diff.LineContext, Content: "c"},
	}, d.Hunks[0].Lines)
}

func numbered(n int, change map[int]string) []byte {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		if s, ok := change[i]; ok {
			b.WriteString(s + "\n")
			continue
		}
		fmt.Fprintf(&b, "line %d\n", i)
	}
	return []byte(b.String())
}

func TestCompute_Hunks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		change  map[int]string
		headers []string
	}{
		{
			name:    "context is clipped at the start",
			change:  map[int]string{2: "two"},
			headers: []string{"@@ -1,5 +1,5 @@"},
		},
		{
			name:    "distant changes get separate hunks",
			change:  map[int]string{5: "five", 15: "fifteen"},
			headers: []string{"@@ -2,7 +2,7 @@", "@@ -12,7 +12,7 @@"},
		},
		{
			name:    "close changes share a hunk",
			change:  map[int]string{5: "five", 11: "eleven"},
			headers: []string{"@@ -2,13 +2,13 @@"},
		},
		{
			name:    "context is clipped at the end",
			change:  map[int]string{20: "twenty"},
			headers: []string{"@@ -17,4 +17,4 @@"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := diff.Compute("f", numbered(20, nil), numbered(20, tt.change))
			require.NotNil(t, d)

			headers := make([]string, len(d.Hunks))
			for i, h := range d.Hunks {
				headers[i] = h.Header()
			}
			assert.Equal(t, tt.headers, headers)
			assert.Equal(t, len(tt.change), d.Additions)
			assert.Equal(t, len(tt.change), d.Deletions)
		})
	}
}

func TestLineKind_Prefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, " ", diff.LineContext.Prefix())
	assert.Equal(t, "+", diff.LineAdd.Prefix())
	assert.Equal(t, "-", diff.LineRemove.Prefix())
}
