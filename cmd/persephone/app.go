// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/persephone/persephone/internal/config"
)

type (
	// App wires CLI services and shared dependencies. Every Cobra handler
	// receives an App and reads configuration and output streams from it.
	App struct {
		Config ConfigProvider
		stdout io.Writer
		stderr io.Writer

		// Set by the root command before any subcommand runs.
		cfg        *config.Config
		cfgPath    string
		cfgErr     error
		verbose    bool
		configFile string
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// sourceReporter is implemented by providers that can name the file they read.
	sourceReporter interface {
		LoadWithSource(ctx context.Context, opts config.LoadOptions) (*config.Config, string, error)
	}

	defaultConfigProvider struct {
		config.Provider
	}
)

// NewApp creates the CLI composition root.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = defaultConfigProvider{config.NewProvider()}
	}

	return &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}

// LoadWithSource reports the config file in use alongside the config.
func (defaultConfigProvider) LoadWithSource(ctx context.Context, opts config.LoadOptions) (*config.Config, string, error) {
	return config.LoadWithSource(ctx, opts)
}

// loadConfig loads configuration once per invocation. The --config flag is
// passed through; a failure falls back to defaults so that `config path` and
// `config init` still work next to a broken file.
func (a *App) loadConfig(ctx context.Context) error {
	if dir := os.Getenv(config.EnvPrefix + "_CONFIG_DIR"); dir != "" {
		config.SetConfigDirOverride(dir)
	}

	opts := config.LoadOptions{ConfigFilePath: a.configFile}
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if sr, ok := a.Config.(sourceReporter); ok {
		cfg, path, err = sr.LoadWithSource(ctx, opts)
	} else {
		cfg, err = a.Config.Load(ctx, opts)
	}
	if err != nil {
		a.cfg, a.cfgErr = config.DefaultConfig(), err
		return err
	}

	a.cfg, a.cfgPath = cfg, path
	if cfg.UI.Verbose {
		a.verbose = true
	}
	slog.Debug("configuration loaded", "path", path)
	return nil
}

// glamourStyle returns the markdown style for the configured color scheme.
func (a *App) glamourStyle() string {
	if a.cfg == nil {
		return config.ColorSchemeAuto.GlamourStyle()
	}
	return a.cfg.UI.ColorScheme.GlamourStyle()
}
