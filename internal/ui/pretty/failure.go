package pretty

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/gomdview/pkg/component"
	"github.com/yaklabco/gomdview/pkg/fsutil"
	"github.com/yaklabco/gomdview/pkg/view"
)

// Failure labels.
const (
	LabelComponent = "component"
	LabelLink      = "link"
	LabelFile      = "file"
	LabelRender    = "render"
)

// Classify returns the failure label for a render error and the most
// specific message available.
func Classify(err error) (string, string) {
	var creation *component.CreationError
	if errors.As(err, &creation) {
		return LabelComponent, creation.Error()
	}
	var link *view.LinkOverrideError
	if errors.As(err, &link) {
		return LabelLink, link.Error()
	}
	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, fsutil.ErrPermissionDenied) ||
		errors.Is(err, fsutil.ErrIsDirectory) || errors.Is(err, fsutil.ErrOutsideRoot) {
		return LabelFile, err.Error()
	}
	return LabelRender, err.Error()
}

// FormatFailure formats a file that failed to render.
func (s *Styles) FormatFailure(path string, err error) string {
	return s.FormatFailureAs(path, path, err)
}

// FormatFailureAs formats a failure of source shown under display. A
// leading "source: " is removed from the message.
func (s *Styles) FormatFailureAs(display, source string, err error) string {
	label, msg := Classify(err)
	msg = strings.TrimPrefix(msg, source+": ")
	return fmt.Sprintf("  %s %s  %s  %s\n",
		s.Failure.Render("✗"),
		s.FilePath.Render(display),
		s.Label.Render("["+label+"]"),
		s.Message.Render(msg),
	)
}

// FormatWarning formats a non-fatal notice such as a config warning.
func (s *Styles) FormatWarning(msg string) string {
	return s.Warning.Render("warning") + " " + s.Message.Render(msg) + "\n"
}

// FormatFileHeader formats a file header separating outputs of several files.
func (s *Styles) FormatFileHeader(path string) string {
	return s.Dim.Render("==> ") + s.FilePath.Render(path) + s.Dim.Render(" <==")
}
