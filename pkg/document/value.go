// SPDX-License-Identifier: MPL-2.0

package document

import (
	"fmt"
	"strconv"

	"github.com/persephone/persephone/pkg/types"
	"github.com/persephone/persephone/pkg/xmltree"
)

type (
	// value is the closed set of field kinds an element's text comes from.
	// A nil value means the field is absent.
	value interface {
		isValue()
	}

	textValue    string
	intValue     int
	boolValue    bool
	decimalValue string
	dateValue    types.Date
	codeValue    string

	// elementWriter appends elements and keeps the first error. Once an error
	// is recorded every further add is a no-op.
	elementWriter struct {
		err error
	}
)

func (textValue) isValue()    {}
func (intValue) isValue()     {}
func (boolValue) isValue()    {}
func (decimalValue) isValue() {}
func (dateValue) isValue()    {}
func (codeValue) isValue()    {}

func text(s string) value {
	if s == "" {
		return nil
	}
	return textValue(s)
}

func integer(i int) value { return intValue(i) }

func optInt(p *int) value {
	if p == nil {
		return nil
	}
	return intValue(*p)
}

func boolean(b bool) value { return boolValue(b) }

func optBool(p *bool) value {
	if p == nil {
		return nil
	}
	return boolValue(*p)
}

func decimal[S types.Scale](d types.Decimal[S]) value {
	if d.IsZero() {
		return nil
	}
	return decimalValue(d.String())
}

func date(d types.Date) value {
	if d.IsZero() {
		return nil
	}
	return dateValue(d)
}

func code[T ~string](c T) value {
	if c == "" {
		return nil
	}
	return codeValue(c)
}

// format is the single place where field values become element text.
func format(v value) (string, error) {
	switch v := v.(type) {
	case textValue:
		return string(v), nil
	case intValue:
		return strconv.Itoa(int(v)), nil
	case boolValue:
		return strconv.FormatBool(bool(v)), nil
	case decimalValue:
		return string(v), nil
	case dateValue:
		return types.Date(v).String(), nil
	case codeValue:
		return string(v), nil
	default:
		return "", fmt.Errorf("unsupported value kind %T", v)
	}
}

// add appends <tag>text</tag> to parent when v is present.
func (w *elementWriter) add(parent *xmltree.Element, tag string, v value) {
	if w.err != nil || v == nil {
		return
	}
	s, err := format(v)
	if err != nil {
		w.err = &SerializationError{Element: tag, Err: err}
		return
	}
	parent.AddText(tag, s)
}
