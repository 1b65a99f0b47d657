package config

import (
	"fmt"
	"strings"
)

// OutputFormats lists the supported output formats.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatHTML, FormatPage, FormatTerm}
}

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatHTML, FormatPage, FormatTerm:
		return true
	default:
		return false
	}
}

// Extension returns the file extension used when writing the format to a
// directory.
func (f OutputFormat) Extension() string {
	switch f {
	case FormatHTML, FormatPage:
		return ".html"
	default:
		return ".txt"
	}
}

// ParseOutputFormat parses a format name case-insensitively.
func ParseOutputFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("invalid format %q; must be one of: html, page, term", s)
	}
	return f, nil
}
