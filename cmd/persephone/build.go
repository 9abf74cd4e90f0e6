// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/persephone/persephone/internal/input"
	"github.com/persephone/persephone/internal/issue"
	"github.com/persephone/persephone/internal/watch"
	"github.com/persephone/persephone/pkg/document"
	"github.com/persephone/persephone/pkg/eagri"
	"github.com/persephone/persephone/pkg/types"
)

type (
	buildRequestOptions struct {
		output   string
		callMode string
		strict   bool
		watch    bool
	}

	buildResponseOptions struct {
		output  string
		guid    string
		newGUID bool
	}
)

// newBuildCommand creates the `persephone build` command tree.
func newBuildCommand(app *App) *cobra.Command {
	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build EH_PEH02A XML documents",
		Long: `Build EH_PEH02A XML documents.

The document is printed to stdout unless -o names an output file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	buildCmd.AddCommand(newBuildRequestCommand(app))
	buildCmd.AddCommand(newBuildResponseCommand(app))

	return buildCmd
}

func newBuildRequestCommand(app *App) *cobra.Command {
	opts := &buildRequestOptions{}
	cmd := &cobra.Command{
		Use:   "request <file>",
		Short: "Build a request document from a report file",
		Long: `Build a request document from a report file.

The report is read from a .cue, .json, .yaml/.yml or .toml file. Codes are
checked before the document is built; audit findings are printed as warnings,
or fail the build in strict mode.

Examples:
  persephone build request report.yaml
  persephone build request report.toml --call-mode P -o request.xml
  persephone build request report.cue --strict
  persephone build request report.yaml -o request.xml --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuildRequest(cmd, app, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the document to this file")
	cmd.Flags().StringVar(&opts.callMode, "call-mode", "", "call mode to set on the request (P or T)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when the audit reports findings (default from build.strict)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "rebuild whenever the report file changes")

	return cmd
}

func runBuildRequest(cmd *cobra.Command, app *App, path string, opts *buildRequestOptions) error {
	if opts.watch {
		return watchBuildRequest(cmd, app, path, opts)
	}
	return buildRequestOnce(cmd, app, path, opts)
}

// watchBuildRequest builds once, then rebuilds on every change of the report
// file until the command context is canceled. Failed builds are reported and
// do not stop watching.
func watchBuildRequest(cmd *cobra.Command, app *App, path string, opts *buildRequestOptions) error {
	rebuild := func() error {
		err := buildRequestOnce(cmd, app, path, opts)
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil
		}
		return err
	}
	if err := rebuild(); err != nil {
		return err
	}

	w, err := watch.New(watch.Config{
		Dir:      filepath.Dir(path),
		Patterns: []string{watch.QuoteMeta(filepath.Base(path))},
		Stderr:   app.stderr,
		OnChange: func(context.Context, []string) error {
			slog.Debug("report changed, rebuilding", "path", path)
			return rebuild()
		},
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stderr, "%s Watching %s (press Ctrl+C to stop)\n", successIcon, CmdStyle.Render(path))
	return w.Run(cmd.Context())
}

func buildRequestOnce(cmd *cobra.Command, app *App, path string, opts *buildRequestOptions) error {
	req, err := app.loadRequest(path)
	if err != nil {
		return err
	}

	if err := app.applyCallMode(req, opts.callMode); err != nil {
		return err
	}

	if err := app.audit(req.Audit(), strictMode(cmd, app, opts.strict)); err != nil {
		return err
	}

	doc, err := document.BuildRequest(*req)
	if err != nil {
		code, issueID := classifyBuildError(err)
		return app.fail(issue.NewErrorContext().
			WithOperation("build request document").
			WithResource(path).
			WithIssue(issueID).
			Wrap(err).
			BuildError(), code, 0)
	}

	return app.writeOutput(opts.output, doc)
}

// applyCallMode sets the request call mode from --call-mode, or from
// build.default_call_mode when the request has none.
func (a *App) applyCallMode(req *eagri.Request, flagValue string) error {
	if flagValue != "" {
		mode, err := eagri.ParseCallMode(flagValue)
		if err != nil {
			return a.fail(err, types.ExitInvalidInput, issue.InvalidCodeId)
		}
		req.CallMode = mode
		return nil
	}
	if req.CallMode == "" && a.cfg != nil && a.cfg.Build.DefaultCallMode != "" {
		req.CallMode = a.cfg.Build.DefaultCallMode
	}
	return nil
}

func newBuildResponseCommand(app *App) *cobra.Command {
	opts := &buildResponseOptions{}
	cmd := &cobra.Command{
		Use:   "response [file]",
		Short: "Build a response document carrying a submission GUID",
		Long: `Build a response document carrying a submission GUID.

The GUID comes from --guid, from a response file holding a "guid" field, or
is generated with --new-guid.

Examples:
  persephone build response --guid 12345678-1234-1234-1234-123456789012
  persephone build response --new-guid -o response.xml
  persephone build response response.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuildResponse(app, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the document to this file")
	cmd.Flags().StringVar(&opts.guid, "guid", "", "submission GUID")
	cmd.Flags().BoolVar(&opts.newGUID, "new-guid", false, "generate a random submission GUID")
	cmd.MarkFlagsMutuallyExclusive("guid", "new-guid")

	return cmd
}

func runBuildResponse(app *App, args []string, opts *buildResponseOptions) error {
	var resp eagri.Response
	switch {
	case len(args) == 1 && (opts.guid != "" || opts.newGUID):
		return errors.New("a response file cannot be combined with --guid or --new-guid")
	case len(args) == 1:
		loaded, err := input.LoadResponse(args[0])
		if err != nil {
			code, issueID := classifyInputError(err)
			return app.fail(issue.NewErrorContext().
				WithOperation("load response").
				WithResource(args[0]).
				WithIssue(issueID).
				Wrap(err).
				BuildError(), code, 0)
		}
		resp = *loaded
	case opts.newGUID:
		resp.GUID = types.NewSubmissionGUID()
	case opts.guid != "":
		resp.GUID = types.SubmissionGUID(opts.guid)
	default:
		return errors.New("one of --guid, --new-guid or a response file is required")
	}

	// A non-canonical GUID is passed through as issued.
	printFindings(app, resp.Audit())

	doc, err := document.BuildResponse(resp)
	if err != nil {
		code, issueID := classifyBuildError(err)
		return app.fail(issue.NewErrorContext().
			WithOperation("build response document").
			WithIssue(issueID).
			Wrap(err).
			BuildError(), code, 0)
	}

	return app.writeOutput(opts.output, doc)
}

// loadRequest reads a report file and reports failures to the user.
func (a *App) loadRequest(path string) (*eagri.Request, error) {
	req, err := input.LoadRequest(path)
	if err != nil {
		code, issueID := classifyInputError(err)
		return nil, a.fail(issue.NewErrorContext().
			WithOperation("load report").
			WithResource(path).
			WithIssue(issueID).
			Wrap(err).
			BuildError(), code, 0)
	}
	return req, nil
}

// strictMode returns --strict when given on the command line, else build.strict.
func strictMode(cmd *cobra.Command, app *App, flagValue bool) bool {
	if cmd.Flags().Changed("strict") {
		return flagValue
	}
	return app.cfg != nil && app.cfg.Build.Strict
}

// audit prints findings and fails in strict mode when there are any.
func (a *App) audit(findings []eagri.Finding, strict bool) error {
	printFindings(a, findings)
	if !strict || len(findings) == 0 {
		return nil
	}
	return a.fail(fmt.Errorf("strict mode: %d audit finding(s)", len(findings)), types.ExitAuditFailed, issue.StrictAuditFailedId)
}

func printFindings(app *App, findings []eagri.Finding) {
	if len(findings) == 0 {
		return
	}
	fmt.Fprintf(app.stderr, "%s %d audit finding(s):\n", warningIcon, len(findings))
	for i, f := range findings {
		if f.Path != "" {
			fmt.Fprintf(app.stderr, "  %d. %s %s\n", i+1, CmdStyle.Render(f.Path), f.Message)
		} else {
			fmt.Fprintf(app.stderr, "  %d. %s\n", i+1, f.Message)
		}
	}
}
