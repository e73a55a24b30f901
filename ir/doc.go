// Package ir provides the value tree for JSON documents.
//
// # Overview
//
// All documents, whether parsed from text, built programmatically or
// produced by serializing Go values, are represented as trees of *Node.
//
// A Node is a tagged union: the Type field says which of the remaining
// fields carry the value.
//
//   - NullType: no value
//   - BoolType: Bool
//   - NumberType: Number, Int64, Float64
//   - StringType: String
//   - ArrayType: Values
//   - ObjectType: Fields and Values
//
// Each node records its Parent together with its ParentIndex and, inside
// objects, its ParentField.  Nodes built with the constructors and mutated
// with the methods of this package keep these links up to date.
//
// # Objects
//
// An object holds parallel slices: Fields[i] is a string node holding the
// key of Values[i].  Keys are unique and kept in insertion order.  Set on an
// existing key replaces the value in place.
//
// # Numbers
//
// A number keeps the literal text it was parsed from in Number, so any
// literal round trips exactly.  Int64 is set when the value is an integer
// representable as int64; Float64 is set when the value converts to a finite
// float64.  Decimal gives the exact value and the As accessors narrow it,
// failing with ErrNumberRange rather than truncating.
//
// # Creating Nodes
//
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "name", Val: ir.FromString("x")},
//	    {Key: "ids", Val: ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})},
//	})
//
// # Paths
//
// GetKPath navigates using the syntax of package kpath:
//
//	n, err := obj.GetKPath("ids[1]")
//
// A missing path gives (nil, nil).  Keys into a bool, number or string are
// a *TypeMismatchError and negative indices an *IndexError.
//
// # Related Packages
//
//   - github.com/signadot/jsondoc/parse - parses text into nodes
//   - github.com/signadot/jsondoc/encode - renders nodes as text
//   - github.com/signadot/jsondoc/element - optional navigation over nodes
package ir
