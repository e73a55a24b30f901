// Package codegen generates FromJSON methods from annotated constructors.
//
// A constructor function is annotated with a directive in its doc comment
// naming where its arguments come from:
//
//	//jsondoc:ctor keys=x,y
//	func NewPoint(x, y int) Point
//
//	//jsondoc:ctor array
//	func NewPair(a string, b int) (*Pair, error)
//
//	//jsondoc:ctor indices=2,0
//	func NewSpan(end, start int) Span
//
// For each annotated constructor the generated file declares a gomap.Ctor
// and a FromJSON method on the constructed type which runs it.  The number
// of keys or indices must match the number of parameters; mismatches are
// reported at generation time.
//
// Generated code appears in <package>_jsondoc_gen.go files.
//
// # Related Packages
//
//   - github.com/signadot/jsondoc/gomap - Ctor, Construct and the registry
//   - github.com/signadot/jsondoc/cmd/jsondoc-gen - the command line driver
package codegen
