// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

var (
	// ErrValidation is the sentinel error wrapped by ValidationError.
	ErrValidation = errors.New("schema validation failed")

	// ErrFileTooLarge is the sentinel error wrapped by FileTooLargeError.
	ErrFileTooLarge = errors.New("file too large")
)

type (
	// ValidationError reports every problem CUE found in one input, each
	// prefixed with the JSON path of the offending value.
	ValidationError struct {
		// FilePath is the file being validated.
		FilePath string

		// Issues are "<json-path>: <message>" lines, or bare messages when
		// CUE did not attach a path.
		Issues []string

		// Err is the underlying CUE error.
		Err error
	}

	// FileTooLargeError is returned when an input exceeds the size limit.
	FileTooLargeError struct {
		FilePath string
		Size     int64
		Limit    int64
	}
)

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("%s: %s", e.FilePath, e.Issues[0])
	}
	return fmt.Sprintf("%s: validation failed:\n  %s", e.FilePath, strings.Join(e.Issues, "\n  "))
}

// Unwrap returns ErrValidation and the CUE error.
func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, e.Err}
}

// Error implements the error interface.
func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("%s: file size %d bytes exceeds maximum %d bytes", e.FilePath, e.Size, e.Limit)
}

// Unwrap returns ErrFileTooLarge for errors.Is() compatibility.
func (e *FileTooLargeError) Unwrap() error { return ErrFileTooLarge }

// FormatError formats a CUE error with JSON path prefixes for clear error messages.
//
// Error format: <file-path>: <json-path>: <message>
//
// Examples:
//   - report.cue: fields[0].areas[1].area: conflicting values
//   - config.cue: build.default_call_mode: 2 errors in empty disjunction
//
// Non-CUE errors are wrapped with the file path and returned as-is.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrs := cueerrors.Errors(err)
	if len(cueErrs) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	issues := make([]string, 0, len(cueErrs))
	for _, e := range cueErrs {
		pathStr := formatPath(cueerrors.Path(e))
		msg := e.Error()

		// CUE sometimes includes the path in the message itself
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimPrefix(msg, pathStr)
			msg = strings.TrimPrefix(msg, ":")
			msg = strings.TrimSpace(msg)
		}

		if pathStr != "" {
			issues = append(issues, fmt.Sprintf("%s: %s", pathStr, msg))
		} else {
			issues = append(issues, msg)
		}
	}

	return &ValidationError{FilePath: filePath, Issues: issues, Err: err}
}

// formatPath converts a CUE error path to JSON-path notation for user-facing
// messages: ["fields", "0", "areas"] becomes "fields[0].areas".
func formatPath(path []string) string {
	if len(path) == 0 {
		return ""
	}

	var result strings.Builder
	for i, part := range path {
		isIndex := part != ""
		for _, c := range part {
			if c < '0' || c > '9' {
				isIndex = false
				break
			}
		}

		if isIndex && i > 0 {
			result.WriteString("[")
			result.WriteString(part)
			result.WriteString("]")
		} else {
			if i > 0 {
				result.WriteString(".")
			}
			result.WriteString(part)
		}
	}

	return result.String()
}

// CheckFileSize verifies that data does not exceed the specified maximum size.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return &FileTooLargeError{FilePath: filename, Size: int64(len(data)), Limit: maxSize}
	}
	return nil
}
