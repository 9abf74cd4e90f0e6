// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrReservedName is the sentinel error wrapped by ReservedNameError.
var ErrReservedName = errors.New("reserved file name")

type (
	// ReservedNameError is returned for an output path whose base name is a
	// Windows device name. Writing there would send the document to a
	// device instead of a file.
	ReservedNameError struct {
		Path string
	}
)

// windowsReservedNames are device names Windows reserves regardless of extension.
var windowsReservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"COM5": true, "COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true,
	"LPT5": true, "LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// Error implements the error interface.
func (e *ReservedNameError) Error() string {
	return fmt.Sprintf("%q is a reserved device name on Windows", filepath.Base(e.Path))
}

// Unwrap returns ErrReservedName for errors.Is() compatibility.
func (e *ReservedNameError) Unwrap() error { return ErrReservedName }

// IsWindowsReservedName reports whether name, ignoring case and extension,
// is a Windows device name.
func IsWindowsReservedName(name string) bool {
	upper := strings.ToUpper(name)
	if idx := strings.LastIndex(upper, "."); idx != -1 {
		upper = upper[:idx]
	}
	return windowsReservedNames[upper]
}

// CheckOutputPath rejects paths whose base name is reserved on goos.
func CheckOutputPath(goos, path string) error {
	if goos == Windows && IsWindowsReservedName(filepath.Base(path)) {
		return &ReservedNameError{Path: path}
	}
	return nil
}
