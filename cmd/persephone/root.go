// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for persephone.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/persephone/persephone/internal/issue"
	"github.com/persephone/persephone/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the persephone command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "persephone",
		Short: "Build eAGRI EH_PEH02A fertilizer and crop reports",
		Long: TitleStyle.Render("persephone") + SubtitleStyle.Render(" - eAGRI EH_PEH02A document builder") + `

persephone turns a fertilizer, crop, harvest and grazing report written as
CUE, JSON, YAML or TOML into the EH_PEH02A XML request expected by the
Czech Ministry of Agriculture's eAGRI services.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Write a starting report:  persephone example > report.yaml
  2. Edit it and check it:     persephone validate report.yaml
  3. Build the request:        persephone build request report.yaml -o request.xml

` + SubtitleStyle.Render("Examples:") + `
  persephone codes crop-type         List crop type codes
  persephone build response --new-guid
  persephone config show             Show current configuration`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(app.stderr, app.verbose)
			if err := app.loadConfig(cmd.Context()); err != nil {
				fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, app.verbose))
			}
			// ui.verbose may have switched verbose on.
			setupLogging(app.stderr, app.verbose)
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.configFile, "config", "", "config file (default is $HOME/.config/persephone/config.cue)")

	rootCmd.AddCommand(newBuildCommand(app))
	rootCmd.AddCommand(newValidateCommand(app))
	rootCmd.AddCommand(newExampleCommand(app))
	rootCmd.AddCommand(newCodesCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// setupLogging routes slog through a charm logger on w.
func setupLogging(w io.Writer, verbose bool) {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "persephone",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	slog.SetDefault(slog.New(logger))
}

// Execute runs the CLI and exits with the code carried by the returned error.
// This is called by main.main().
func Execute() {
	os.Exit(run(context.Background(), os.Args[1:], NewApp(Dependencies{})))
}

// run executes the command tree with args and returns the process exit code.
func run(ctx context.Context, args []string, app *App) int {
	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs(args)

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler),
	)
	return int(exitCodeOf(err))
}

// errorHandler prints errors that no command rendered itself.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

func exitCodeOf(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return types.ExitFailure
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
