package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdview/pkg/config"
)

func TestGenerateTemplate(t *testing.T) {
	t.Run("minimal template parses to defaults", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)
		assert.Contains(t, string(data), config.DefaultTemplateHeader())

		cfg, err := config.Parse(data)
		require.NoError(t, err)
		assert.Equal(t, config.FlavorGFM, cfg.Flavor)
	})

	t.Run("full template parses and lists themes", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{
			Full:       true,
			Themes:     []string{"dracula", "github"},
			Components: []string{"Callout", "Counter", "box"},
		})
		require.NoError(t, err)
		assert.Contains(t, string(data), "#   dracula, github")
		assert.Contains(t, string(data), "#   Callout, Counter, box")

		cfg, err := config.Parse(data)
		require.NoError(t, err)
		assert.Equal(t, config.FrontmatterHide, cfg.Frontmatter)
		assert.Equal(t, "github", cfg.Highlight.Theme)
		assert.Len(t, cfg.Ignore, 3)
	})

	t.Run("json", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "gfm", decoded["flavor"])
	})
}
