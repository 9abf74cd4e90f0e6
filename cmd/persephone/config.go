// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/persephone/persephone/internal/config"
	"github.com/persephone/persephone/internal/issue"
	"github.com/persephone/persephone/pkg/types"
)

// newConfigCommand creates the `persephone config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage persephone configuration",
		Long: `Manage persephone configuration.

Configuration is stored in:
  - Linux: ~/.config/persephone/config.cue
  - macOS: ~/Library/Application Support/persephone/config.cue
  - Windows: %APPDATA%\persephone\config.cue

Every key can be overridden with an environment variable such as
PERSEPHONE_BUILD_STRICT=true, or from a .env file next to config.cue.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigFilePath()
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.cfgErr != nil {
				return app.fail(app.cfgErr, types.ExitFailure, issue.ConfigLoadFailedId)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(app.cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(app *App) error {
	if app.cfgErr != nil {
		return app.fail(app.cfgErr, types.ExitFailure, issue.ConfigLoadFailedId)
	}
	cfg := app.cfg
	out := app.stdout

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	if app.cfgPath != "" {
		fmt.Fprintf(out, "%s: %s\n", CmdStyle.Render("Config file"), app.cfgPath)
	} else {
		fmt.Fprintf(out, "%s: %s\n", CmdStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", CmdStyle.Render("ui"))
	fmt.Fprintf(out, "  verbose: %s\n", SuccessStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	fmt.Fprintf(out, "  color_scheme: %s\n", SuccessStyle.Render(cfg.UI.ColorScheme.String()))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", CmdStyle.Render("build"))
	callMode := cfg.Build.DefaultCallMode.String()
	if callMode == "" {
		callMode = SubtitleStyle.Render("(keep request value)")
	} else {
		callMode = SuccessStyle.Render(callMode)
	}
	fmt.Fprintf(out, "  default_call_mode: %s\n", callMode)
	fmt.Fprintf(out, "  strict: %s\n", SuccessStyle.Render(fmt.Sprintf("%v", cfg.Build.Strict)))

	return nil
}

func initConfig(app *App) error {
	path, created, err := config.CreateDefaultConfig()
	if err != nil {
		return app.fail(issue.NewErrorContext().
			WithOperation("create configuration").
			WithSuggestion("Check that the configuration directory is writable").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError(), types.ExitFailure, 0)
	}

	if !created {
		fmt.Fprintf(app.stdout, "%s Config file already exists at %s\n", warningIcon, path)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s Created config file at %s\n", successIcon, path)
	return nil
}
