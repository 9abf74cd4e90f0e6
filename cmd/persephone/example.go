// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/persephone/persephone/internal/input"
	"github.com/persephone/persephone/internal/sample"
	"github.com/persephone/persephone/pkg/document"
	"github.com/persephone/persephone/pkg/types"
)

const exampleHeader = `# EH_PEH02A statistics report: two fields, two fertilizer applications,
# grain and straw harvests and one grazing season.
# Build it with: persephone build request report.yaml
`

// newExampleCommand creates the `persephone example` command.
func newExampleCommand(app *App) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print a complete example report",
		Long: `Print a complete example report.

With --format yaml (the default) the report is printed as an input file for
'persephone build request'. With --format xml the document built from it is
printed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "yaml", "yml":
				fmt.Fprint(app.stdout, exampleHeader)
				return input.EncodeRequest(app.stdout, sample.Request(), input.FormatYAML)
			case "xml":
				doc, err := document.BuildRequest(sample.Request())
				if err != nil {
					return err
				}
				return app.writeOutput("", doc)
			default:
				return &ExitError{
					Code: types.ExitInvalidInput,
					Err:  fmt.Errorf("unknown example format %q (valid: yaml, xml)", format),
				}
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "output format (yaml or xml)")

	return cmd
}
