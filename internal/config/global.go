// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride replaces the platform config directory. The CLI sets it
// from PERSEPHONE_CONFIG_DIR; tests use it because os.UserHomeDir() doesn't
// reliably respect HOME on all platforms.
var configDirOverride string

// Reset clears the config directory override.
func Reset() {
	configDirOverride = ""
}

// SetConfigDirOverride sets a custom config directory path.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}
