package ir

import (
	"fmt"
	"strconv"

	"github.com/signadot/jsondoc/ir/kpath"
)

// KPath returns the path of this node from the root of its tree, following
// Parent links.
//
// Examples:
//   - Root node → ""
//   - Object field "a" → "a"
//   - Array element at index 0 → "[0]"
//   - Mixed "a[0].b" → "a[0].b"
func (node *Node) KPath() string {
	var segs []*kpath.KPath
	seen := map[*Node]bool{}
	for x := node; x.Parent != nil && !seen[x]; x = x.Parent {
		seen[x] = true
		switch x.Parent.Type {
		case ObjectType:
			segs = append(segs, kpath.Field(x.ParentField))
		case ArrayType:
			segs = append(segs, kpath.Idx(x.ParentIndex))
		}
	}
	var res *kpath.KPath
	for _, seg := range segs {
		seg.Next = res
		res = seg
	}
	return res.String()
}

// Step resolves a single path segment against node.
//
//   - a key on an object is looked up; a missing key is absent
//   - an index on an array is looked up; out of range is absent
//   - an index on an object looks up its decimal text as a key
//   - a key on an array is absent
//   - anything on null is absent
//   - anything on a bool, number or string is a *TypeMismatchError
//   - a negative index is an *IndexError
//
// Absence is reported as (nil, nil).
func (node *Node) Step(seg *kpath.KPath) (*Node, error) {
	if seg.Index != nil && *seg.Index < 0 {
		return nil, &IndexError{Index: *seg.Index, Len: node.Len()}
	}
	switch node.Type {
	case NullType:
		return nil, nil
	case ObjectType:
		if seg.Field != nil {
			return node.Get(*seg.Field), nil
		}
		return node.Get(strconv.Itoa(*seg.Index)), nil
	case ArrayType:
		if seg.Field != nil {
			return nil, nil
		}
		return node.Index(*seg.Index), nil
	}
	return nil, mismatch("get "+seg.SegmentString(), "Object or Array", node)
}

// GetKPath navigates from node along the path kp.
//
// Example:
//
//	rootNode.GetKPath("a.b[0]") navigates to rootNode["a"]["b"][0]
//
// A path which does not exist yields (nil, nil).  The result is the node in
// the tree, not a copy.
func (node *Node) GetKPath(kp string) (*Node, error) {
	p, err := kpath.Parse(kp)
	if err != nil {
		return nil, err
	}
	return node.GetKPathSegs(p)
}

func (node *Node) GetKPathSegs(kp *kpath.KPath) (*Node, error) {
	res := node
	for ; kp != nil; kp = kp.Next {
		next, err := res.Step(kp)
		if err != nil {
			return nil, err
		}
		if next == nil {
			return nil, checkNegative(kp.Next)
		}
		res = next
	}
	return res, nil
}

// checkNegative reports an *IndexError for the first negative index of kp.
func checkNegative(kp *kpath.KPath) error {
	for ; kp != nil; kp = kp.Next {
		if kp.Index != nil && *kp.Index < 0 {
			return &IndexError{Index: *kp.Index}
		}
	}
	return nil
}

// SetKPath assigns v at the path kp below node.  Missing object keys along
// the way are created as empty objects; array elements must exist.
func (node *Node) SetKPath(kp string, v *Node) error {
	p, err := kpath.Parse(kp)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("%w: cannot set the root", ErrBadPath)
	}
	if err := checkNegative(p); err != nil {
		return err
	}
	cur := node
	for seg := p; seg.Next != nil; seg = seg.Next {
		next, err := cur.Step(seg)
		if err != nil {
			return err
		}
		if next == nil {
			if seg.Next.Index != nil || seg.Field == nil || cur.Type != ObjectType {
				return fmt.Errorf("%w: no value at %s", ErrIndex, prefixString(p, seg))
			}
			next = NewObject()
			cur.put(*seg.Field, next)
		}
		cur = next
	}
	last := p.Last()
	switch cur.Type {
	case ObjectType:
		key := last.SegmentString()
		if last.Index != nil {
			key = strconv.Itoa(*last.Index)
		}
		cur.put(key, v)
		return nil
	case ArrayType:
		if last.Index == nil {
			return mismatch("set "+last.SegmentString(), "Object", cur)
		}
		_, err := cur.Replace(*last.Index, v)
		return err
	}
	return mismatch("set "+last.SegmentString(), "Object or Array", cur)
}

func prefixString(p, upto *kpath.KPath) string {
	var res *kpath.KPath
	for seg := p; seg != nil; seg = seg.Next {
		if seg.Field != nil {
			res = res.Append(kpath.Field(*seg.Field))
		} else {
			res = res.Append(kpath.Idx(*seg.Index))
		}
		if seg == upto {
			break
		}
	}
	return res.String()
}
