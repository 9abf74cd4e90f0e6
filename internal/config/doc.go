// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/persephone/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/persephone/config.cue on macOS, %APPDATA%\persephone\config.cue
// on Windows), validated against the embedded config_schema.cue, and overridden by
// PERSEPHONE_* environment variables. A .env file next to the config file, or one named
// explicitly, supplies environment values that are not already set.
package config
