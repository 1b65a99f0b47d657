package configloader

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"

	"github.com/yaklabco/gomdview/pkg/config"
	"github.com/yaklabco/gomdview/pkg/highlight"
	"github.com/yaklabco/gomdview/pkg/runner"
)

// maxWidth bounds the terminal layout width.
const maxWidth = 1000

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "highlight.theme").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings. Empty fields are
// not checked so partial configurations validate.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !cfg.Flavor.IsValid() {
		result.fail("flavor", cfg.Flavor, "invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor)
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: html, page, term", cfg.Format)
	}

	if cfg.Frontmatter != "" && !cfg.Frontmatter.IsValid() {
		result.fail("frontmatter", cfg.Frontmatter,
			"invalid frontmatter mode %q; must be one of: hide, show, validate", cfg.Frontmatter)
	}

	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if cfg.Width < 0 || cfg.Width > maxWidth {
		result.fail("width", cfg.Width, "width must be between 0 and %d", maxWidth)
	}

	validateHighlight(cfg, result)

	if cfg.Select != "" {
		if _, err := cascadia.Compile(cfg.Select); err != nil {
			result.fail("select", cfg.Select, "invalid selector: %v", err)
		}
		if cfg.Format == config.FormatTerm {
			result.warn("select", cfg.Select, "selector is ignored for term output")
		}
	}

	if cfg.TOC && cfg.Format != config.FormatPage {
		result.warn("toc", cfg.TOC, "table of contents is only added to page output")
	}

	validateIgnorePatterns(cfg, result)

	return result
}

func validateHighlight(cfg *config.Config, result *ValidationResult) {
	hl := cfg.Highlight

	if hl.Theme != "" && !highlight.ThemeExists(hl.Theme) {
		result.fail("highlight.theme", hl.Theme, "unknown theme %q; run 'gomdview themes' to list themes", hl.Theme)
	}
	if hl.Integrity != "" && hl.Stylesheet == "" {
		result.warn("highlight.integrity", hl.Integrity, "integrity has no effect without a stylesheet")
	}
	if hl.Stylesheet != "" && !hl.Classes {
		result.warn("highlight.stylesheet", hl.Stylesheet, "stylesheet is only mounted when classes is true")
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := runner.CompileGlob(pattern); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "%v", err)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
