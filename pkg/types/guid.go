// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidSubmissionGUID is the sentinel error wrapped by InvalidSubmissionGUIDError.
var ErrInvalidSubmissionGUID = errors.New("invalid submission GUID")

type (
	// SubmissionGUID identifies an accepted submission (GuidPodani).
	// The reporting system issues it; values are passed through verbatim, so
	// only blank values are rejected.
	SubmissionGUID string

	// InvalidSubmissionGUIDError is returned when a SubmissionGUID is empty or
	// whitespace-only.
	InvalidSubmissionGUIDError struct {
		Value SubmissionGUID
	}
)

// NewSubmissionGUID returns a fresh random GUID in canonical UUID form.
func NewSubmissionGUID() SubmissionGUID {
	return SubmissionGUID(uuid.NewString())
}

// String returns the string representation of the SubmissionGUID.
func (g SubmissionGUID) String() string { return string(g) }

// IsValid returns whether the SubmissionGUID is usable.
func (g SubmissionGUID) IsValid() (bool, []error) {
	if strings.TrimSpace(string(g)) == "" {
		return false, []error{&InvalidSubmissionGUIDError{Value: g}}
	}
	return true, nil
}

// IsCanonical reports whether g parses as a UUID in 8-4-4-4-12 form.
func (g SubmissionGUID) IsCanonical() bool {
	if len(g) != 36 {
		return false
	}
	_, err := uuid.Parse(string(g))
	return err == nil
}

// Error implements the error interface for InvalidSubmissionGUIDError.
func (e *InvalidSubmissionGUIDError) Error() string {
	return fmt.Sprintf("invalid submission GUID: value must not be blank (got %q)", e.Value)
}

// Unwrap returns ErrInvalidSubmissionGUID for errors.Is() compatibility.
func (e *InvalidSubmissionGUIDError) Unwrap() error { return ErrInvalidSubmissionGUID }
