// SPDX-License-Identifier: MPL-2.0

package xmltree

// Element is a node of the tree. An element holds either text or children,
// never both.
type Element struct {
	Name     string
	Text     string
	Children []*Element
}

// New returns a root element.
func New(name string) *Element {
	return &Element{Name: name}
}

// AddChild appends an empty child element and returns it.
func (e *Element) AddChild(name string) *Element {
	child := &Element{Name: name}
	e.Children = append(e.Children, child)
	return child
}

// AddText appends a text-only child element and returns it.
func (e *Element) AddText(name, text string) *Element {
	child := &Element{Name: name, Text: text}
	e.Children = append(e.Children, child)
	return child
}

// Find returns the first direct child with the given name, or nil.
func (e *Element) Find(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}
