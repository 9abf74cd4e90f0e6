// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/persephone/persephone/internal/issue"
	"github.com/persephone/persephone/internal/testutil"
	"github.com/persephone/persephone/pkg/cueutil"
	"github.com/persephone/persephone/pkg/eagri"
	"github.com/persephone/persephone/pkg/platform"
)

// clearEnv unsets every override so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range keys {
		t.Cleanup(testutil.MustUnsetenv(t, EnvName(key)))
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	want := &Config{
		UI:    UIConfig{ColorScheme: ColorSchemeAuto},
		Build: BuildConfig{},
	}
	if diff := cmp.Diff(want, DefaultConfig()); diff != "" {
		t.Errorf("DefaultConfig() mismatch (-want +got):\n%s", diff)
	}
	if valid, errs := DefaultConfig().IsValid(); !valid {
		t.Errorf("DefaultConfig() is invalid: %v", errs)
	}
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != platform.Linux {
		t.Skip("XDG lookup is Linux-specific")
	}

	t.Cleanup(testutil.MustSetenv(t, "XDG_CONFIG_HOME", "/tmp/test-xdg-config"))
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if want := filepath.Join("/tmp/test-xdg-config", AppName); dir != want {
		t.Errorf("ConfigDir() = %s, want %s", dir, want)
	}

	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))
	t.Cleanup(testutil.MustUnsetenv(t, "XDG_CONFIG_HOME"))
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if want := filepath.Join(home, ".config", AppName); dir != want {
		t.Errorf("ConfigDir() = %s, want %s", dir, want)
	}
}

func TestConfigDirOverride(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	got, err := ConfigDir()
	if err != nil || got != dir {
		t.Errorf("ConfigDir() = %q, %v; want %q", got, err, dir)
	}
	path, err := ConfigFilePath()
	if err != nil || path != filepath.Join(dir, "config.cue") {
		t.Errorf("ConfigFilePath() = %q, %v", path, err)
	}
}

func TestEnvName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"ui.verbose":              "PERSEPHONE_UI_VERBOSE",
		"ui.color_scheme":         "PERSEPHONE_UI_COLOR_SCHEME",
		"build.default_call_mode": "PERSEPHONE_BUILD_DEFAULT_CALL_MODE",
		"build.strict":            "PERSEPHONE_BUILD_STRICT",
	}
	for key, want := range tests {
		if got := EnvName(key); got != want {
			t.Errorf("EnvName(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestLoad_DefaultsWhenNoConfigFile(t *testing.T) {
	clearEnv(t)

	cfg, path, err := LoadWithSource(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("LoadWithSource() error: %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want none", path)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FileEnvAndDotenvLayering(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), `
ui: color_scheme: "dark"
build: {
	default_call_mode: "T"
	strict:            false
}
`)
	testutil.MustWriteFile(t, filepath.Join(dir, ".env"), "PERSEPHONE_BUILD_STRICT=true\nPERSEPHONE_UI_COLOR_SCHEME=light\n")
	t.Cleanup(testutil.MustSetenv(t, "PERSEPHONE_UI_COLOR_SCHEME", "auto"))

	cfg, path, err := LoadWithSource(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("LoadWithSource() error: %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("resolved path = %q", path)
	}

	want := &Config{
		// The real environment beats both the file and the dotenv file.
		UI: UIConfig{ColorScheme: ColorSchemeAuto},
		Build: BuildConfig{
			DefaultCallMode: eagri.CallModeTest,
			Strict:          true,
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if _, set := os.LookupEnv("PERSEPHONE_BUILD_STRICT"); set {
		t.Error("dotenv values must not leak into the process environment")
	}
}

func TestLoad_ExplicitDotenvPath(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), "ci.env")
	testutil.MustWriteFile(t, envFile, "PERSEPHONE_BUILD_DEFAULT_CALL_MODE=P\nUNRELATED=1\n")

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir(), DotenvPath: envFile})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Build.DefaultCallMode != eagri.CallModeProduction {
		t.Errorf("DefaultCallMode = %q, want P", cfg.Build.DefaultCallMode)
	}
}

func TestLoad_CustomPath(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "custom.cue")
	testutil.MustWriteFile(t, path, "ui: verbose: true\n")

	cfg, resolved, err := LoadWithSource(context.Background(), LoadOptions{ConfigFilePath: path, ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("LoadWithSource() error: %v", err)
	}
	if resolved != path || !cfg.UI.Verbose {
		t.Errorf("got path %q verbose %v", resolved, cfg.UI.Verbose)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		env      map[string]string
		missing  bool
		sentinel error
	}{
		{name: "missing custom path", missing: true},
		{name: "invalid CUE syntax", file: "ui: {", sentinel: cueutil.ErrValidation},
		{name: "value outside schema", file: `ui: color_scheme: "neon"`, sentinel: cueutil.ErrValidation},
		{name: "unknown key", file: `container_engine: "podman"`, sentinel: cueutil.ErrValidation},
		{name: "bad env color scheme", env: map[string]string{"PERSEPHONE_UI_COLOR_SCHEME": "neon"}, sentinel: ErrInvalidColorScheme},
		{name: "bad env call mode", env: map[string]string{"PERSEPHONE_BUILD_DEFAULT_CALL_MODE": "X"}, sentinel: eagri.ErrInvalidEnumValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Cleanup(testutil.MustSetenv(t, k, v))
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.cue")
			if tt.file != "" {
				testutil.MustWriteFile(t, path, tt.file)
			}
			opts := LoadOptions{ConfigDirPath: dir}
			if tt.missing {
				opts.ConfigFilePath = filepath.Join(dir, "nope.cue")
			}

			_, err := NewProvider().Load(context.Background(), opts)
			if err == nil {
				t.Fatal("Load() expected error")
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("Load() error = %T, want *issue.ActionableError", err)
			}
			if ae.IssueID != issue.ConfigLoadFailedId {
				t.Errorf("IssueID = %d, want ConfigLoadFailedId", ae.IssueID)
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("Load() error = %v, want %v", err, tt.sentinel)
			}
		})
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewProvider().Load(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	clearEnv(t)
	dir := filepath.Join(t.TempDir(), "persephone")
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	path, created, err := CreateDefaultConfig()
	if err != nil || !created {
		t.Fatalf("CreateDefaultConfig() = %q, %v, %v", path, created, err)
	}

	// The generated file must round-trip through the loader unchanged.
	cfg, resolved, err := LoadWithSource(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("loading generated config: %v", err)
	}
	if resolved != path {
		t.Errorf("resolved = %q, want %q", resolved, path)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	testutil.MustWriteFile(t, path, "// edited\n")
	if _, created, err := CreateDefaultConfig(); err != nil || created {
		t.Errorf("second CreateDefaultConfig() created=%v err=%v, want existing file kept", created, err)
	}
	if data, _ := os.ReadFile(path); string(data) != "// edited\n" {
		t.Error("CreateDefaultConfig() overwrote an existing file")
	}
}

func TestGenerateCUE(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		UI:    UIConfig{Verbose: true, ColorScheme: ColorSchemeLight},
		Build: BuildConfig{DefaultCallMode: eagri.CallModeProduction, Strict: true},
	}
	out := GenerateCUE(cfg)
	for _, want := range []string{`color_scheme: "light"`, "verbose:      true", `default_call_mode: "P"`, "strict:            true"} {
		if !strings.Contains(out, want) {
			t.Errorf("GenerateCUE() missing %q:\n%s", want, out)
		}
	}

	result, err := cueutil.ParseAndDecode[Config](configSchema, []byte(out), "#Config")
	if err != nil {
		t.Fatalf("generated CUE does not match schema: %v", err)
	}
	if diff := cmp.Diff(cfg, result.Value); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestColorScheme(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   ColorScheme
		valid   bool
		glamour string
	}{
		{ColorSchemeAuto, true, "auto"},
		{ColorSchemeDark, true, "dark"},
		{ColorSchemeLight, true, "light"},
		{"", false, "auto"},
		{"neon", false, "auto"},
	}
	for _, tt := range tests {
		valid, errs := tt.value.IsValid()
		if valid != tt.valid {
			t.Errorf("ColorScheme(%q).IsValid() = %v, want %v", tt.value, valid, tt.valid)
		}
		if !valid && (len(errs) != 1 || !errors.Is(errs[0], ErrInvalidColorScheme)) {
			t.Errorf("ColorScheme(%q).IsValid() errors = %v", tt.value, errs)
		}
		if got := tt.value.GlamourStyle(); got != tt.glamour {
			t.Errorf("ColorScheme(%q).GlamourStyle() = %q, want %q", tt.value, got, tt.glamour)
		}
	}
}
