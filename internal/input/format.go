// SPDX-License-Identifier: MPL-2.0

package input

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// FormatCUE is CUE source. JSON is compiled by the same path.
	FormatCUE Format = "cue"
	// FormatJSON is JSON.
	FormatJSON Format = "json"
	// FormatYAML is YAML.
	FormatYAML Format = "yaml"
	// FormatTOML is TOML.
	FormatTOML Format = "toml"
)

// ErrUnsupportedFormat is the sentinel error wrapped by UnsupportedFormatError.
var ErrUnsupportedFormat = errors.New("unsupported input format")

type (
	// Format identifies the syntax of an input file.
	Format string

	// UnsupportedFormatError is returned when a file's format cannot be
	// determined or is not one of the supported formats.
	UnsupportedFormatError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported input format %q (supported: cue, json, yaml, toml)", e.Value)
}

// Unwrap returns ErrUnsupportedFormat for errors.Is() compatibility.
func (e *UnsupportedFormatError) Unwrap() error { return ErrUnsupportedFormat }

// String returns the string representation of the Format.
func (f Format) String() string { return string(f) }

// IsValid returns whether the Format is one of the supported formats.
func (f Format) IsValid() (bool, []error) {
	switch f {
	case FormatCUE, FormatJSON, FormatYAML, FormatTOML:
		return true, nil
	default:
		return false, []error{&UnsupportedFormatError{Value: string(f)}}
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "yml":
		return FormatYAML, nil
	case "cue", "json", "yaml", "toml":
		return Format(ext), nil
	default:
		return "", &UnsupportedFormatError{Value: filepath.Ext(path)}
	}
}
