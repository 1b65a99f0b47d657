package configloader

import "github.com/yaklabco/gomdview/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Booleans: only true overrides, so a layer cannot unset a lower one
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Frontmatter != "" {
		result.Frontmatter = override.Frontmatter
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Select != "" {
		result.Select = override.Select
	}

	if override.Wikilinks {
		result.Wikilinks = true
	}
	if override.HardLineBreaks {
		result.HardLineBreaks = true
	}
	if override.Typographer {
		result.Typographer = true
	}
	if override.Linkify {
		result.Linkify = true
	}
	if override.Trace {
		result.Trace = true
	}
	if override.HeadingIDs {
		result.HeadingIDs = true
	}
	if override.TOC {
		result.TOC = true
	}

	result.Highlight = mergeHighlight(base.Highlight, override.Highlight)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

func mergeHighlight(base, override config.HighlightConfig) config.HighlightConfig {
	result := base
	if override.Disabled {
		result.Disabled = true
	}
	if override.Classes {
		result.Classes = true
	}
	if override.Theme != "" {
		result.Theme = override.Theme
	}
	if override.Stylesheet != "" {
		result.Stylesheet = override.Stylesheet
	}
	if override.Integrity != "" {
		result.Integrity = override.Integrity
	}
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
