// Package cli provides the Cobra command structure for gomdview.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdview/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gomdview command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gomdview",
		Short: "Render Markdown with embedded components",
		Long: `gomdview renders CommonMark and GitHub Flavored Markdown (GFM) documents
for the terminal or as HTML.

Documents may embed components written as HTML-like tags, such as
<Counter initial="3"/> or <box>...</box>, which are rendered by a
component registry. Code blocks are syntax highlighted, frontmatter is
captured and can be shown or validated, and whole directory trees can be
rendered in parallel.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newComponentsCommand())
	rootCmd.AddCommand(newThemesCommand())
	rootCmd.AddCommand(newEnvCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter("color").ApplyToCommand(rootCmd)

	return rootCmd
}
