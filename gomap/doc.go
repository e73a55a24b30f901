// Package gomap converts between Go values and document nodes.
//
// Serialization and deserialization consult, in order, the built-in
// conversions, conversion methods on the type itself and a [Registry] of
// user supplied functions keyed by exact type.  There is no struct
// reflection: a type either converts itself, is registered, or declares a
// constructor.
//
// # Conversion methods
//
// A type converts itself to a document by implementing [Serializable]:
//
//	func (p Point) ToJSON() (any, error) {
//		return map[string]int{"x": p.X, "y": p.Y}, nil
//	}
//
// and builds itself from a document by implementing [Deserializable] on its
// pointer:
//
//	func (p *Point) FromJSON(el element.Element) error
//
// # Constructors
//
// A constructor function reads its arguments from object keys or array
// indices:
//
//	c := gomap.Ctor2(gomap.Keys("x", "y"), func(x, y int) (Point, error) {
//		return Point{X: x, Y: y}, nil
//	})
//	err := gomap.DeclareCtor[Point](gomap.Default(), c)
//
// The number of keys or indices must match the function's parameters.  A
// mismatch is reported as an *IllegalArgumentError the first time the
// constructor is used, and the same error is returned on every later use.
//
// The jsondoc-gen command writes FromJSON methods for constructors
// annotated in source:
//
//	//jsondoc:ctor keys=x,y
//	func NewPoint(x, y int) Point
//
// # Usage
//
//	node, err := gomap.ToIR(v)
//	d, err := gomap.ToJSON(v, gomap.EncodeOptions(encode.Formatted(false)))
//	p, err := gomap.Deserialize[Point](nil, doc.GetPath("points[0]"))
//	err = gomap.FromJSON(data, &p)
//
// # Related Packages
//
//   - github.com/signadot/jsondoc/element - the navigation wrapper deserializers read from
//   - github.com/signadot/jsondoc/gomap/codegen - generation of FromJSON methods
package gomap
