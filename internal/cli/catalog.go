package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdview/internal/configloader"
	"github.com/yaklabco/gomdview/internal/ui/pretty"
	"github.com/yaklabco/gomdview/pkg/builtin"
	"github.com/yaklabco/gomdview/pkg/highlight"
)

const (
	listFormatTable = "table"
	listFormatJSON  = "json"
)

func listStyles(cmd *cobra.Command) *pretty.Styles {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	return pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func checkListFormat(format string) error {
	if format != listFormatTable && format != listFormatJSON {
		return fmt.Errorf("invalid format %q: must be table or json", format)
	}
	return nil
}

func newComponentsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "components",
		Short: "List the built-in components",
		Long: `List the components that documents can embed as HTML-like tags,
with their attributes.

Examples:
  gomdview components                 # Table of components
  gomdview components --format json   # Machine readable catalog`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkListFormat(format); err != nil {
				return err
			}
			catalog := builtin.Catalog()
			if format == listFormatJSON {
				return writeJSON(cmd.OutOrStdout(), catalog)
			}

			table := pretty.Table{Headers: []string{"NAME", "ATTRIBUTES", "DESCRIPTION"}}
			for _, info := range catalog {
				table.Rows = append(table.Rows, []string{info.Name, describeAttributes(info), info.Summary})
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), listStyles(cmd).FormatTable(table, 0))
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", listFormatTable, "output format: table or json")
	return cmd
}

// describeAttributes renders attributes as "kind*:string title:string=...".
// A trailing "*" marks a required attribute.
func describeAttributes(info builtin.Info) string {
	if len(info.Attributes) == 0 {
		if info.SelfClosing {
			return "-"
		}
		return "children"
	}
	parts := make([]string, 0, len(info.Attributes))
	for _, attr := range info.Attributes {
		part := attr.Name
		if attr.Required {
			part += "*"
		}
		part += ":" + attr.Type
		if attr.Default != "" {
			part += "=" + attr.Default
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " ")
}

func newThemesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List code highlighting themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkListFormat(format); err != nil {
				return err
			}
			themes := highlight.Themes()
			if format == listFormatJSON {
				return writeJSON(cmd.OutOrStdout(), themes)
			}
			for _, theme := range themes {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), theme); err != nil {
					return fmt.Errorf("write theme: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", listFormatTable, "output format: table or json")
	return cmd
}

func newEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List supported environment variables",
		Long: `List the environment variables that override configuration files.
Command line flags take precedence over environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := pretty.Table{Headers: []string{"VARIABLE", "DESCRIPTION"}}
			for _, v := range configloader.ListEnvVars() {
				table.Rows = append(table.Rows, []string{v.Name, v.Description})
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), listStyles(cmd).FormatTable(table, 0))
			return err
		},
	}
}
