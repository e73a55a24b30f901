package libdiff

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/ir/kpath"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// arrayByIndex maps each element to a rune standing for its summary,
//
//  1. scalars summarize as type and value, containers as their type
//  2. the rune sequences are diffed
//  3. equal runs recurse element by element
//  4. a deletion run followed by an insertion run pairs up as replacements,
//     the excess being deleted or inserted
func (d *differ) arrayByIndex(path *kpath.KPath, from, to *ir.Node) {
	m := map[string]rune{}
	fromRunes := mapValues(m, from)
	toRunes := mapValues(m, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)

	fi, ti, ri := 0, 0, 0
	at := func(i int) *kpath.KPath {
		return path.Append(kpath.Idx(i))
	}
	for i := 0; i < len(diffs); i++ {
		n := utf8.RuneCountInString(diffs[i].Text)
		switch diffs[i].Type {
		case diffpatch.DiffEqual:
			for range n {
				d.node(at(ri), from.Values[fi], to.Values[ti])
				fi++
				ti++
				ri++
			}
		case diffpatch.DiffDelete:
			nIns := 0
			if i+1 < len(diffs) && diffs[i+1].Type == diffpatch.DiffInsert {
				nIns = utf8.RuneCountInString(diffs[i+1].Text)
				i++
			}
			for j := 0; j < max(n, nIns); j++ {
				switch {
				case j < n && j < nIns:
					d.replace(at(ri), from.Values[fi], to.Values[ti])
					fi++
					ti++
					ri++
				case j < n:
					d.add(Change{Op: Delete, Path: at(ri), From: from.Values[fi]})
					fi++
				default:
					d.add(Change{Op: Insert, Path: at(ri), To: to.Values[ti]})
					ti++
					ri++
				}
			}
		case diffpatch.DiffInsert:
			for range n {
				d.add(Change{Op: Insert, Path: at(ri), To: to.Values[ti]})
				ti++
				ri++
			}
		}
	}
}

func mapValues(m map[string]rune, node *ir.Node) []rune {
	rs := make([]rune, len(node.Values))
	for i, v := range node.Values {
		sum := summaryStr(v)
		r, ok := m[sum]
		if !ok {
			r = rune(len(m))
			m[sum] = r
		}
		rs[i] = r
	}
	return rs
}

func summaryStr(node *ir.Node) string {
	switch node.Type {
	case ir.BoolType:
		return node.Type.String() + "-" + strconv.FormatBool(node.Bool)
	case ir.StringType:
		if strings.Contains(node.String, "\n") {
			return node.Type.String() + "/m"
		}
		return node.Type.String() + "-" + node.String
	case ir.NumberType:
		if s, err := node.CanonicalNumber(); err == nil {
			return node.Type.String() + "-" + s
		}
		return node.Type.String() + "-" + node.Number
	}
	return node.Type.String()
}
