// Package encode encodes IR nodes to JSON text.
//
// # Usage
//
//	node := ir.FromMap(map[string]*ir.Node{
//	    "name": ir.FromString("alice"),
//	    "age":  ir.FromInt(30),
//	})
//	err := encode.Encode(node, os.Stdout)
//
//	// Compact output, escaping everything outside ASCII
//	s, err := encode.EncodeString(node, encode.Formatted(false), encode.EncodeCharset(token.ASCII))
//
// Formatted output (the default) puts each member of a non-empty object or
// array on its own line, indented by Indent spaces (default 4) per level.
// Empty containers always encode as {} and [].
//
// A container which contains itself, directly or through descendants,
// cannot be encoded: Encode fails with a *CyclicStructureError.  The same
// container may however appear any number of times as long as no
// occurrence is nested inside another.
//
// # Related Packages
//
//   - github.com/signadot/jsondoc/ir - IR representation
//   - github.com/signadot/jsondoc/parse - Parse text to IR
package encode
