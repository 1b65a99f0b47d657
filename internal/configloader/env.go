package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdview/pkg/config"
)

// envVarPrefix is the prefix for all gomdview environment variables.
const envVarPrefix = "GOMDVIEW_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines an environment variable to config field mapping.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FLAVOR":               {"flavor", envTypeString, "Markdown flavor: commonmark or gfm"},
	"FORMAT":               {"format", envTypeString, "Output format: html, page, or term"},
	"FRONTMATTER":          {"frontmatter", envTypeString, "Frontmatter handling: hide, show, or validate"},
	"WIKILINKS":            {"wikilinks", envTypeBool, "Enable [[wikilinks]]: true or false"},
	"HARD_LINE_BREAKS":     {"hard_line_breaks", envTypeBool, "Render soft breaks as hard breaks: true or false"},
	"TYPOGRAPHER":          {"typographer", envTypeBool, "Typographic punctuation: true or false"},
	"LINKIFY":              {"linkify", envTypeBool, "Turn bare URLs into links: true or false"},
	"HEADING_IDS":          {"heading_ids", envTypeBool, "Add id attributes to HTML headings: true or false"},
	"JOBS":                 {"jobs", envTypeInt, "Number of parallel workers (0 = auto)"},
	"WIDTH":                {"width", envTypeInt, "Terminal layout width (0 = detect)"},
	"HIGHLIGHT_DISABLED":   {"highlight.disabled", envTypeBool, "Disable code highlighting: true or false"},
	"HIGHLIGHT_THEME":      {"highlight.theme", envTypeString, "Code highlighting theme"},
	"HIGHLIGHT_CLASSES":    {"highlight.classes", envTypeBool, "Emit CSS classes for highlighting: true or false"},
	"HIGHLIGHT_STYLESHEET": {"highlight.stylesheet", envTypeString, "Stylesheet URL for class-based highlighting"},
	"IGNORE":               {"ignore", envTypeSlice, "Comma-separated list of ignore patterns"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOMDVIEW_ (e.g., GOMDVIEW_FLAVOR).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "frontmatter":
		cfg.Frontmatter = config.FrontmatterMode(value)
	case "highlight.theme":
		cfg.Highlight.Theme = value
	case "highlight.stylesheet":
		cfg.Highlight.Stylesheet = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "wikilinks":
		cfg.Wikilinks = value
	case "hard_line_breaks":
		cfg.HardLineBreaks = value
	case "typographer":
		cfg.Typographer = value
	case "linkify":
		cfg.Linkify = value
	case "heading_ids":
		cfg.HeadingIDs = value
	case "highlight.disabled":
		cfg.Highlight.Disabled = value
	case "highlight.classes":
		cfg.Highlight.Classes = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "width":
		cfg.Width = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// EnvVar describes a supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns the supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Description: mapping.description})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
