package libdiff

import (
	"github.com/signadot/jsondoc/debug"
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/ir/kpath"
)

// Diff returns the changes turning from into to, or nil when they are
// equal.  Numbers compare by value, so 1 and 1.0 are equal, and objects
// compare regardless of key order.
func Diff(from, to *ir.Node) []Change {
	d := &differ{}
	d.node(nil, from, to)
	if debug.Diff() {
		debug.Log("op", "diff", "changes", len(d.changes))
	}
	return d.changes
}

type differ struct {
	changes []Change
}

func (d *differ) add(c Change) {
	d.changes = append(d.changes, c)
}

func (d *differ) replace(path *kpath.KPath, from, to *ir.Node) {
	d.add(Change{Op: Replace, Path: path, From: from, To: to})
}

func (d *differ) node(path *kpath.KPath, from, to *ir.Node) {
	if from == nil {
		from = ir.Null()
	}
	if to == nil {
		to = ir.Null()
	}
	if from.Type != to.Type {
		d.replace(path, from, to)
		return
	}
	switch from.Type {
	case ir.NullType:
	case ir.BoolType:
		if from.Bool != to.Bool {
			d.replace(path, from, to)
		}
	case ir.NumberType:
		if ir.Compare(from, to) != 0 {
			d.replace(path, from, to)
		}
	case ir.StringType:
		d.str(path, from, to)
	case ir.ObjectType:
		d.object(path, from, to)
	case ir.ArrayType:
		d.arrayByIndex(path, from, to)
	}
}

// object deletes keys missing from to, then compares common keys, then
// inserts new keys in the order of to.
func (d *differ) object(path *kpath.KPath, from, to *ir.Node) {
	for i, f := range from.Fields {
		key := f.String
		sub := path.Append(kpath.Field(key))
		if !to.Has(key) {
			d.add(Change{Op: Delete, Path: sub, From: from.Values[i]})
			continue
		}
		d.node(sub, from.Values[i], to.Get(key))
	}
	for i, f := range to.Fields {
		if from.Has(f.String) {
			continue
		}
		d.add(Change{Op: Insert, Path: path.Append(kpath.Field(f.String)), To: to.Values[i]})
	}
}
