package cli

import (
	"strings"
	"text/template"

	"github.com/muesli/reflow/padding"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gomdview/internal/ui/pretty"
)

const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ command .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (pad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{if or .Runnable .HasSubCommands}}{{ command .CommandPath }}{{if .Version}} {{ dim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ trimLines . }}

{{end}}` + usageTemplate

// HelpFormatter renders cobra help and usage text with the CLI palette.
// Color is decided when help is printed, from the --color flag and the
// command's output stream.
type HelpFormatter struct {
	colorFlag string
}

// NewHelpFormatter returns a formatter reading the color mode from the
// named persistent flag.
func NewHelpFormatter(colorFlag string) *HelpFormatter {
	return &HelpFormatter{colorFlag: colorFlag}
}

// ApplyToCommand installs the help and usage functions on cmd. Subcommands
// inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return h.execute(c, usageTemplate)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := h.execute(c, helpTemplate); err != nil {
			c.PrintErrln(err)
		}
	})
}

func (h *HelpFormatter) execute(cmd *cobra.Command, text string) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(h.colorMode(cmd), cmd.OutOrStdout()))

	tmpl, err := template.New("help").Funcs(template.FuncMap{
		"heading":    styles.SummaryTitle.Render,
		"command":    styles.TableKey.Render,
		"subcommand": styles.Success.UnsetBold().Render,
		"dim":        styles.Dim.Render,
		"join":       strings.Join,
		"pad":        pad,
		"trimLines":  trimLines,
		"flags": func(set *pflag.FlagSet) string {
			return styleFlags(styles, set.FlagUsages())
		},
	}).Parse(text)
	if err != nil {
		return err
	}
	return tmpl.Execute(cmd.OutOrStdout(), cmd)
}

func (h *HelpFormatter) colorMode(cmd *cobra.Command) string {
	if f := cmd.Flags().Lookup(h.colorFlag); f != nil {
		return f.Value.String()
	}
	if f := cmd.InheritedFlags().Lookup(h.colorFlag); f != nil {
		return f.Value.String()
	}
	return "auto"
}

// styleFlags colors the flag names of pflag's usage block. Each line is
// "  -o, --out string   description"; the flag column ends at the first
// run of two or more spaces.
func styleFlags(styles *pretty.Styles, usages string) string {
	lines := strings.Split(strings.TrimSuffix(usages, "\n"), "\n")
	for i, line := range lines {
		body := strings.TrimLeft(line, " ")
		indent := line[:len(line)-len(body)]

		cut := strings.Index(body, "  ")
		if cut < 0 {
			continue
		}
		names, desc := body[:cut], strings.TrimLeft(body[cut:], " ")
		gap := body[cut : len(body)-len(desc)]

		tokens := strings.Fields(names)
		for j, tok := range tokens {
			if strings.HasPrefix(tok, "-") {
				comma := strings.HasSuffix(tok, ",")
				tokens[j] = styles.Info.UnsetBold().Render(strings.TrimSuffix(tok, ","))
				if comma {
					tokens[j] += ","
				}
				continue
			}
			tokens[j] = styles.Dim.Render(tok)
		}
		lines[i] = indent + strings.Join(tokens, " ") + gap + desc
	}
	return strings.Join(lines, "\n")
}

func pad(s string, width int) string {
	return padding.String(s, uint(max(width, 0))) //nolint:gosec // width is non-negative
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
