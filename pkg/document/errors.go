// SPDX-License-Identifier: MPL-2.0

package document

import (
	"errors"
	"fmt"
)

var (
	// ErrSerialization is the sentinel error wrapped by SerializationError.
	// It signals a bug in the builder rather than bad input.
	ErrSerialization = errors.New("serialization failure")

	// ErrEncoding is the sentinel error wrapped by EncodingError.
	ErrEncoding = errors.New("encoding failure")
)

type (
	// SerializationError is returned when the element tree cannot be built or
	// written, for example a value of an unsupported kind or an element name
	// the serializer rejects.
	SerializationError struct {
		Element string
		Reason  string
		Err     error
	}

	// EncodingError is returned when element text cannot be represented in a
	// UTF-8 XML 1.0 document.
	EncodingError struct {
		Element string
		Err     error
	}
)

// Error implements the error interface.
func (e *SerializationError) Error() string {
	msg := "serialization failure"
	if e.Element != "" {
		msg += " at <" + e.Element + ">"
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns ErrSerialization and the underlying cause, if any.
func (e *SerializationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSerialization}
	}
	return []error{ErrSerialization, e.Err}
}

// Error implements the error interface.
func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot encode <%s> as utf-8 XML: %v", e.Element, e.Err)
}

// Unwrap returns ErrEncoding and the underlying cause.
func (e *EncodingError) Unwrap() []error { return []error{ErrEncoding, e.Err} }
