// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/persephone/persephone/pkg/eagri"
	"github.com/persephone/persephone/pkg/types"
)

// newCodesCommand creates the `persephone codes` command.
func newCodesCommand(app *App) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "codes [kind]",
		Short: "List the code tables",
		Long: `List the code tables used in reports.

Input files use the wire code (first column). Pass a kind such as crop-type
or unit to show a single table.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tables := eagri.CodeTables()
			if len(args) == 1 {
				table, ok := findCodeTable(tables, args[0])
				if !ok {
					return &ExitError{
						Code: types.ExitInvalidInput,
						Err:  fmt.Errorf("unknown code table %q (valid: %s)", args[0], strings.Join(codeTableKinds(tables), ", ")),
					}
				}
				tables = []eagri.CodeTable{table}
			}

			md := codesMarkdown(tables)
			if raw {
				fmt.Fprint(app.stdout, md)
				return nil
			}
			out, err := glamour.Render(md, app.glamourStyle())
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "markdown", false, "print markdown without rendering it")

	return cmd
}

// kindSlug turns "crop type" into "crop-type".
func kindSlug(kind string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(kind)), " ", "-")
}

func findCodeTable(tables []eagri.CodeTable, name string) (eagri.CodeTable, bool) {
	want := kindSlug(name)
	for _, t := range tables {
		if kindSlug(t.Kind) == want || strings.EqualFold(t.Field, name) {
			return t, true
		}
	}
	return eagri.CodeTable{}, false
}

func codeTableKinds(tables []eagri.CodeTable) []string {
	kinds := make([]string, 0, len(tables))
	for _, t := range tables {
		kinds = append(kinds, kindSlug(t.Kind))
	}
	return kinds
}

func codesMarkdown(tables []eagri.CodeTable) string {
	var sb strings.Builder
	for i, t := range tables {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "## %s (`%s`)\n\n", t.Kind, t.Field)
		sb.WriteString("| Code | Name | Description |\n")
		sb.WriteString("|------|------|-------------|\n")
		for _, c := range t.Codes {
			fmt.Fprintf(&sb, "| `%s` | %s | %s |\n", c.Value, c.Name, c.Description)
		}
	}
	return sb.String()
}
