// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the only accepted text form of a Date.
const DateLayout = "2006-01-02"

// ErrInvalidDate is the sentinel error wrapped by InvalidDateError.
var ErrInvalidDate = errors.New("invalid date")

type (
	// Date is a calendar date without time of day or time zone.
	// The zero value means "no date" and is reported by IsZero.
	Date struct {
		year  int
		month time.Month
		day   int
	}

	// InvalidDateError is returned when text cannot be parsed as a Date.
	InvalidDateError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q (expected YYYY-MM-DD)", e.Value)
}

// Unwrap returns ErrInvalidDate for errors.Is() compatibility.
func (e *InvalidDateError) Unwrap() error { return ErrInvalidDate }

// NewDate returns the Date for the given calendar day. Out-of-range components
// are rejected rather than normalized (February 30 is an error).
func NewDate(year int, month time.Month, day int) (Date, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day || year < 1 || year > 9999 {
		return Date{}, &InvalidDateError{Value: fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)}
	}
	return Date{year: year, month: month, day: day}, nil
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, &InvalidDateError{Value: s}
	}
	if t.Year() < 1 {
		return Date{}, &InvalidDateError{Value: s}
	}
	return DateOf(t), nil
}

// MustParseDate is like ParseDate but panics on error. Intended for fixtures.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// IsZero reports whether d holds no date.
func (d Date) IsZero() bool { return d == Date{} }

// Year returns the year component.
func (d Date) Year() int { return d.year }

// Month returns the month component.
func (d Date) Month() time.Month { return d.month }

// Day returns the day-of-month component.
func (d Date) Day() int { return d.day }

// Equal reports whether d and other are the same day.
func (d Date) Equal(other Date) bool { return d == other }

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.compare(other) < 0 }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d.compare(other) > 0 }

func (d Date) compare(other Date) int {
	switch {
	case d.year != other.year:
		return d.year - other.year
	case d.month != other.month:
		return int(d.month) - int(other.month)
	default:
		return d.day - other.day
	}
}

// String returns the YYYY-MM-DD form, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text yields the zero Date.
func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
