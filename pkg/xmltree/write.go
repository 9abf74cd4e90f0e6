// SPDX-License-Identifier: MPL-2.0

package xmltree

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Declaration is the first line of every document.
const Declaration = `<?xml version="1.0" encoding="utf-8"?>`

const indent = "  "

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// Marshal serializes the tree rooted at root. The whole tree is checked before
// anything is written, so an error never comes with partial output.
func Marshal(root *Element) ([]byte, error) {
	if root == nil {
		return nil, &InvalidNameError{}
	}
	if err := check(root); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(Declaration)
	buf.WriteByte('\n')
	write(&buf, root, 0)
	return buf.Bytes(), nil
}

// WriteTo serializes the tree rooted at root to w.
func WriteTo(w io.Writer, root *Element) (int64, error) {
	data, err := Marshal(root)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

func check(e *Element) error {
	if !validName(e.Name) {
		return &InvalidNameError{Name: e.Name}
	}
	if e.Text != "" && len(e.Children) > 0 {
		return &MixedContentError{Element: e.Name}
	}
	if err := checkText(e.Name, e.Text); err != nil {
		return err
	}
	for _, c := range e.Children {
		if c == nil {
			return fmt.Errorf("element <%s>: %w", e.Name, &InvalidNameError{})
		}
		if err := check(c); err != nil {
			return err
		}
	}
	return nil
}

func write(buf *bytes.Buffer, e *Element, depth int) {
	pad := strings.Repeat(indent, depth)
	buf.WriteString(pad)
	switch {
	case len(e.Children) > 0:
		buf.WriteString("<" + e.Name + ">\n")
		for _, c := range e.Children {
			write(buf, c, depth+1)
		}
		buf.WriteString(pad + "</" + e.Name + ">\n")
	case e.Text != "":
		buf.WriteString("<" + e.Name + ">")
		_, _ = textEscaper.WriteString(buf, e.Text)
		buf.WriteString("</" + e.Name + ">\n")
	default:
		buf.WriteString("<" + e.Name + "/>\n")
	}
}

// validName accepts ASCII XML names: a letter or underscore followed by
// letters, digits, underscores, hyphens or dots.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c == '_':
		case i > 0 && (c >= '0' && c <= '9' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return !strings.HasPrefix(strings.ToLower(name), "xml")
}

func checkText(element, text string) error {
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			return &InvalidTextError{Element: element, Offset: i, Reason: "invalid UTF-8"}
		}
		if !isXMLChar(r) {
			return &InvalidTextError{Element: element, Offset: i, Reason: fmt.Sprintf("character %U is not allowed in XML", r)}
		}
		i += size
	}
	return nil
}

// isXMLChar reports whether r is in the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}
