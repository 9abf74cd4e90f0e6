// SPDX-License-Identifier: MPL-2.0

// Package xmltree is a minimal element tree for attribute-free, namespace-free
// XML documents, with a serializer whose layout is fixed:
//
//	<?xml version="1.0" encoding="utf-8"?>
//	<Root>
//	  <Leaf>text</Leaf>
//	  <Empty/>
//	  <Branch>
//	    <Leaf>text</Leaf>
//	  </Branch>
//	</Root>
//
// Indentation is two spaces per level, every element sits on its own line,
// text-only elements keep their text on the element's line, and childless
// elements without text are self-closed. The output ends with a newline.
package xmltree
