// SPDX-License-Identifier: MPL-2.0

package xmltree

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidName is the sentinel error wrapped by InvalidNameError.
	ErrInvalidName = errors.New("invalid element name")

	// ErrInvalidText is the sentinel error wrapped by InvalidTextError.
	ErrInvalidText = errors.New("invalid element text")

	// ErrMixedContent is the sentinel error wrapped by MixedContentError.
	ErrMixedContent = errors.New("element has both text and children")
)

type (
	// InvalidNameError is returned when an element name is not an XML name
	// this package can write.
	InvalidNameError struct {
		Name string
	}

	// InvalidTextError is returned when element text cannot be written in
	// UTF-8 encoded XML 1.0: it is not valid UTF-8 or contains a character
	// XML forbids.
	InvalidTextError struct {
		Element string
		Offset  int
		Reason  string
	}

	// MixedContentError is returned for an element with text and children.
	MixedContentError struct {
		Element string
	}
)

// Error implements the error interface.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid element name %q", e.Name)
}

// Unwrap returns ErrInvalidName for errors.Is() compatibility.
func (e *InvalidNameError) Unwrap() error { return ErrInvalidName }

// Error implements the error interface.
func (e *InvalidTextError) Error() string {
	return fmt.Sprintf("text of <%s> at byte %d: %s", e.Element, e.Offset, e.Reason)
}

// Unwrap returns ErrInvalidText for errors.Is() compatibility.
func (e *InvalidTextError) Unwrap() error { return ErrInvalidText }

// Error implements the error interface.
func (e *MixedContentError) Error() string {
	return fmt.Sprintf("element <%s> has both text and children", e.Element)
}

// Unwrap returns ErrMixedContent for errors.Is() compatibility.
func (e *MixedContentError) Unwrap() error { return ErrMixedContent }
