// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// ErrInvalidDecimal is the sentinel error wrapped by InvalidDecimalError.
var ErrInvalidDecimal = errors.New("invalid decimal")

// roundingContext quantizes with round-half-to-even, the same rule as the
// reporting system's reference tooling. Precision bounds the number of
// significant digits a stored value may carry.
var roundingContext = &apd.Context{
	Precision:   100,
	MaxExponent: apd.MaxExponent,
	MinExponent: apd.MinExponent,
	Traps:       apd.DefaultTraps,
	Rounding:    apd.RoundHalfEven,
}

type (
	// Scale fixes the number of fractional digits of a Decimal.
	Scale interface {
		Places() int32
	}

	// Hundredths is the two-place scale used for areas and nutrient supplies.
	Hundredths struct{}

	// Thousandths is the three-place scale used for quantities and head counts.
	Thousandths struct{}

	// Decimal is a decimal number rounded to the places of its scale S.
	// Rounding happens once, when the value is created; a Decimal never holds
	// more fractional digits than S allows, and trailing zeros are kept
	// (10.5 at two places is "10.50").
	//
	// The zero value means "no value" and is reported by IsZero. A set Decimal
	// of numeric value zero is "0.00", which is not the zero value.
	Decimal[S Scale] struct {
		text string
	}

	// InvalidDecimalError is returned when input cannot be turned into a
	// finite decimal.
	InvalidDecimalError struct {
		Value  string
		Reason string
	}
)

type (
	// Decimal2 is a Decimal rounded to two places.
	Decimal2 = Decimal[Hundredths]

	// Decimal3 is a Decimal rounded to three places.
	Decimal3 = Decimal[Thousandths]
)

// Places returns 2.
func (Hundredths) Places() int32 { return 2 }

// Places returns 3.
func (Thousandths) Places() int32 { return 3 }

// Error implements the error interface.
func (e *InvalidDecimalError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid decimal %q", e.Value)
	}
	return fmt.Sprintf("invalid decimal %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidDecimal for errors.Is() compatibility.
func (e *InvalidDecimalError) Unwrap() error { return ErrInvalidDecimal }

// ParseDecimal parses s and rounds it to the places of S.
// Accepted forms are those of apd (e.g. "10.5", "-3", "1.25E+2").
func ParseDecimal[S Scale](s string) (Decimal[S], error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Decimal[S]{}, &InvalidDecimalError{Value: s, Reason: "empty value"}
	}
	x, _, err := apd.NewFromString(trimmed)
	if err != nil {
		return Decimal[S]{}, &InvalidDecimalError{Value: s, Reason: "not a number"}
	}
	return NewDecimal[S](x)
}

// NewDecimal rounds x to the places of S.
func NewDecimal[S Scale](x *apd.Decimal) (Decimal[S], error) {
	if x == nil {
		return Decimal[S]{}, &InvalidDecimalError{Reason: "nil value"}
	}
	if x.Form != apd.Finite {
		return Decimal[S]{}, &InvalidDecimalError{Value: x.String(), Reason: "not finite"}
	}
	var scale S
	var rounded apd.Decimal
	if _, err := roundingContext.Quantize(&rounded, x, -scale.Places()); err != nil {
		return Decimal[S]{}, &InvalidDecimalError{Value: x.String(), Reason: err.Error()}
	}
	if rounded.IsZero() {
		rounded.Negative = false
	}
	return Decimal[S]{text: rounded.Text('f')}, nil
}

// ParseDecimal2 parses s rounded to two places.
func ParseDecimal2(s string) (Decimal2, error) { return ParseDecimal[Hundredths](s) }

// ParseDecimal3 parses s rounded to three places.
func ParseDecimal3(s string) (Decimal3, error) { return ParseDecimal[Thousandths](s) }

// MustDecimal2 is like ParseDecimal2 but panics on error. Intended for fixtures.
func MustDecimal2(s string) Decimal2 { return must(ParseDecimal2(s)) }

// MustDecimal3 is like ParseDecimal3 but panics on error. Intended for fixtures.
func MustDecimal3(s string) Decimal3 { return must(ParseDecimal3(s)) }

func must[S Scale](d Decimal[S], err error) Decimal[S] {
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero reports whether d holds no value.
func (d Decimal[S]) IsZero() bool { return d.text == "" }

// Places returns the number of fractional digits d is rounded to.
func (d Decimal[S]) Places() int32 {
	var scale S
	return scale.Places()
}

// String returns the rounded value with all fractional digits, or "" when unset.
func (d Decimal[S]) String() string { return d.text }

// Equal reports whether d and other hold the same rounded value.
func (d Decimal[S]) Equal(other Decimal[S]) bool { return d.text == other.text }

// Apd returns a fresh apd.Decimal holding d's value, or nil when unset.
func (d Decimal[S]) Apd() *apd.Decimal {
	if d.IsZero() {
		return nil
	}
	x, _, err := apd.NewFromString(d.text)
	if err != nil {
		// d.text is always produced by apd.
		panic(err)
	}
	return x
}

// MarshalText implements encoding.TextMarshaler.
func (d Decimal[S]) MarshalText() ([]byte, error) {
	return []byte(d.text), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text leaves d unset.
func (d *Decimal[S]) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Decimal[S]{}
		return nil
	}
	parsed, err := ParseDecimal[S](string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UnmarshalJSON accepts a JSON number, a JSON string holding a number, or null.
func (d *Decimal[S]) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*d = Decimal[S]{}
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	return d.UnmarshalText([]byte(s))
}
