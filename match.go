package jsondoc

import (
	"github.com/signadot/jsondoc/debug"
	"github.com/signadot/jsondoc/ir"
)

// Match reports whether doc contains pattern.
//
//   - a null pattern matches anything
//   - an object pattern matches an object holding each of its keys with a
//     matching value; other keys of doc are ignored
//   - an array pattern matches an array of the same length whose elements
//     match pairwise
//   - scalars match equal scalars, numbers by value
func Match(doc, pattern *ir.Node) bool {
	if debug.Match() {
		debug.Log("op", "match", "type", pattern.Type.String(), "path", doc.KPath())
	}
	if pattern.Type == ir.NullType {
		return true
	}
	if doc.Type != pattern.Type {
		return false
	}
	switch pattern.Type {
	case ir.ObjectType:
		return matchObject(doc, pattern)
	case ir.ArrayType:
		return matchArray(doc, pattern)
	}
	return ir.Compare(doc, pattern) == 0
}

func matchObject(doc, pattern *ir.Node) bool {
	for i, field := range pattern.Fields {
		child := doc.Get(field.String)
		if child == nil || !Match(child, pattern.Values[i]) {
			return false
		}
	}
	return true
}

func matchArray(doc, pattern *ir.Node) bool {
	if len(doc.Values) != len(pattern.Values) {
		return false
	}
	for i := range doc.Values {
		if !Match(doc.Values[i], pattern.Values[i]) {
			return false
		}
	}
	return true
}

// Trim returns a copy of doc holding only the parts named by pattern.
// Object keys absent from pattern are dropped.  Each element of an array
// pattern keeps the first unused matching element of doc, trimmed, in
// pattern order.
func Trim(pattern, doc *ir.Node) *ir.Node {
	switch {
	case pattern.Type == ir.ObjectType && doc.Type == ir.ObjectType:
		var kvs []ir.KeyVal
		for i, field := range doc.Fields {
			p := pattern.Get(field.String)
			if p == nil {
				continue
			}
			kvs = append(kvs, ir.KeyVal{Key: field.String, Val: Trim(p, doc.Values[i])})
		}
		return ir.FromKeyVals(kvs)
	case pattern.Type == ir.ArrayType && doc.Type == ir.ArrayType:
		var res []*ir.Node
		used := make([]bool, len(doc.Values))
		for _, p := range pattern.Values {
			for i, elt := range doc.Values {
				if used[i] || !Match(elt, p) {
					continue
				}
				res = append(res, Trim(p, elt))
				used[i] = true
				break
			}
		}
		return ir.FromSlice(res)
	}
	return doc.Clone()
}
