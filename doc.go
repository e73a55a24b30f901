// Package jsondoc parses, navigates, prints and maps JSON documents.
//
// Documents are parsed into [ir.Node] trees, navigated with
// [element.Element], printed with package encode and converted to and from
// Go values with package gomap.  A [Tool] holds the settings these share;
// DefaultTool is the process wide instance used by the package level
// functions.
//
//	t := jsondoc.NewTool()
//	t.Indent = 2
//	el := t.Element(data)
//	name, ok, err := el.GetPath("users[0].name").AsString()
//	out, err := t.Print(map[string]any{"name": name})
//
// # Matching
//
// [Match] reports whether a document contains a pattern and [Trim] cuts a
// document down to the parts a pattern names.
//
// # Related Packages
//
//   - github.com/signadot/jsondoc/parse - parsing
//   - github.com/signadot/jsondoc/encode - printing
//   - github.com/signadot/jsondoc/element - navigation
//   - github.com/signadot/jsondoc/gomap - Go value mapping
package jsondoc
