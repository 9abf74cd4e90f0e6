// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newValidateCommand creates the `persephone validate` command.
func newValidateCommand(app *App) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a report file without building a document",
		Long: `Check a report file without building a document.

The file must match the report schema and use known codes. Audit findings,
such as a field without areas or a harvest that names an unknown cultivation,
are listed as warnings. In strict mode they fail validation.

Exit codes:
  0  valid
  2  the file cannot be read as a report or holds unknown codes
  3  strict mode and the audit reported findings`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			req, err := app.loadRequest(path)
			if err != nil {
				return err
			}

			fmt.Fprintf(app.stdout, "%s %s matches the report schema\n", successIcon, CmdStyle.Render(path))

			findings := req.Audit()
			if err := app.audit(findings, strictMode(cmd, app, strict)); err != nil {
				return err
			}
			if len(findings) == 0 {
				fmt.Fprintf(app.stdout, "%s no audit findings\n", successIcon)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when the audit reports findings (default from build.strict)")

	return cmd
}
