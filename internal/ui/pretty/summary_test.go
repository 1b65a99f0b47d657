package pretty_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdview/internal/ui/pretty"
	"github.com/yaklabco/gomdview/pkg/component"
	"github.com/yaklabco/gomdview/pkg/diff"
	"github.com/yaklabco/gomdview/pkg/fsutil"
	"github.com/yaklabco/gomdview/pkg/runner"
	"github.com/yaklabco/gomdview/pkg/view"
)

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name: "nothing found",
			want: "No markdown files found\n",
		},
		{
			name:  "single file in memory",
			stats: runner.Stats{FilesDiscovered: 1, FilesRendered: 1},
			want:  "Rendered 1 file\n",
		},
		{
			name:  "outputs",
			stats: runner.Stats{FilesDiscovered: 3, FilesRendered: 3, FilesWritten: 2, FilesUnchanged: 1},
			want:  "Rendered 3 files (2 written, 1 unchanged)\n",
		},
		{
			name:  "failures and skips",
			stats: runner.Stats{FilesDiscovered: 4, FilesRendered: 2, FilesSkipped: 1, FilesErrored: 1},
			want:  "Rendered 2 files, 1 skipped, 1 failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{
		FilesDiscovered: 5,
		FilesRendered:   4,
		FilesErrored:    1,
		FilesWritten:    4,
		BytesRendered:   1200,
	}, "12ms")

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files found:")
	assert.Contains(t, result, "Outputs written:")
	assert.Contains(t, result, "Files failed:")
	assert.Contains(t, result, "1200")
	assert.Contains(t, result, "12ms")
	assert.Contains(t, result, "Render failed")

	ok := styles.FormatSummary(runner.Stats{FilesDiscovered: 1, FilesRendered: 1}, "")
	assert.Contains(t, ok, "Render succeeded")
	assert.NotContains(t, ok, "Outputs written:")
	assert.NotContains(t, ok, "Duration:")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		label string
		msg   string
	}{
		{
			name:  "component error behind a path prefix",
			err:   fmt.Errorf("doc.md: %w", component.AttributeParse("initial", "a", nil)),
			label: pretty.LabelComponent,
			msg:   `invalid value "a" for attribute "initial"`,
		},
		{
			name:  "link override",
			err:   &view.LinkOverrideError{URL: "x", Err: errors.New("boom")},
			label: pretty.LabelLink,
			msg:   `link override failed for "x": boom`,
		},
		{
			name:  "file",
			err:   fmt.Errorf("%w: doc.md", fsutil.ErrNotFound),
			label: pretty.LabelFile,
			msg:   "file not found: doc.md",
		},
		{
			name:  "other",
			err:   errors.New("parse failed"),
			label: pretty.LabelRender,
			msg:   "parse failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, msg := pretty.Classify(tt.err)
			assert.Equal(t, tt.label, label)
			assert.Equal(t, tt.msg, msg)
		})
	}
}

func TestFormatFailure(t *testing.T) {
	styles := pretty.NewStyles(false)

	got := styles.FormatFailure("doc.md", fmt.Errorf("doc.md: %w", errors.New("bad")))
	assert.Equal(t, "  ✗ doc.md  [render]  bad\n", got)

	assert.Equal(t, "warning careful\n", styles.FormatWarning("careful"))
	assert.Equal(t, "==> a.md <==", styles.FormatFileHeader("a.md"))
}

func TestFormatDiff(t *testing.T) {
	t.Parallel()

	s := pretty.NewStyles(false)
	d := diff.Compute("/abs/out.html", []byte("a\nb\n"), []byte("a\nc\n"))

	assert.Equal(t, "diff --git a/out.html b/out.html\n"+
		"--- a/out.html\n"+
		"+++ b/out.html\n"+
		"@@ -1,2 +1,2 @@\n"+
		" a\n"+
		"-b\n"+
		"+c\n\n", s.FormatDiff(d, "out.html"))
	assert.Empty(t, s.FormatDiff(nil, "x"))
}

func TestFormatDiffStat(t *testing.T) {
	t.Parallel()

	s := pretty.NewStyles(false)
	assert.Equal(t, "1 file changed, 1 insertion(+)\n", s.FormatDiffStat(1, 1, 0))
	assert.Equal(t, "2 files changed, 3 insertions(+), 2 deletions(-)\n", s.FormatDiffStat(2, 3, 2))
}
