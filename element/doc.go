// Package element provides Element, an optional view of a value in a
// document.
//
// An Element is either present, holding a node which may be null, or
// absent.  An absent Element may carry a default node or a generator of
// default nodes.  Navigation never panics:
//
//	doc := element.Of(root)
//	name, ok, err := doc.GetPath("users[0].name").AsString()
//
// Navigating from an absent Element or from a present null yields an absent
// Element.  Keys and indices into a bool, number or string are a
// *ir.TypeMismatchError, negative indices an *ir.IndexError.  Errors stick:
// once an Element holds an error, every further navigation keeps it and
// every accessor returns it.
//
// # Fallbacks
//
// The Or family substitutes a fallback only when the Element is absent.  The
// NullOr family substitutes when the Element is absent or holds null:
//
//	doc := element.Of(mustParse(`{"a": null}`))
//	doc.Get("a").Or(ir.FromInt(5))      // present null
//	doc.Get("a").NullOr(ir.FromInt(5))  // present 5
//	doc.Get("b").Or(ir.FromInt(5))      // present 5
//
// Generators passed to OrGet, OrElseGet, AbsentGet and the NullOr
// counterparts run only when the fallback is needed, and are not
// memoized: an absent Element built with AbsentGet calls its generator on
// each accessor call.
package element
