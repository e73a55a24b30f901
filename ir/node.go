package ir

import (
	"maps"
	"slices"
)

type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []*Node
	Values      []*Node

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

// Clone returns a deep copy of y.  The copy shares no containers with y.
// The copy is detached: its Parent is nil.
func (y *Node) Clone() *Node {
	if y == nil {
		return nil
	}
	res := y.CloneTo(&Node{})
	res.Parent = nil
	return res
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.Type = y.Type
	dst.Values = nil
	dst.Fields = nil
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
	}
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
	}
	for i, yv := range y.Values {
		dstI := yv.CloneTo(&Node{})
		dstI.Parent = dst
		dstI.ParentIndex = i
		dst.Values[i] = dstI
	}
	for i, yf := range y.Fields {
		dstI := yf.CloneTo(&Node{})
		dstI.Parent = dst
		dstI.ParentIndex = i
		dst.Fields[i] = dstI
	}
	dst.String = y.String
	dst.Number = y.Number
	dst.Float64 = nil
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	dst.Int64 = nil
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	dst.Bool = y.Bool
	return dst
}

// ShallowClone copies the node and its container slices but not the
// member nodes: the result is a new container holding the same children.
func (y *Node) ShallowClone() *Node {
	if y == nil {
		return nil
	}
	res := *y
	res.Parent = nil
	res.Fields = slices.Clone(y.Fields)
	res.Values = slices.Clone(y.Values)
	return &res
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(v string) *Node {
	return FromStringAt(&Node{}, v)
}

func FromStringAt(p *Node, v string) *Node {
	p.Type = StringType
	p.String = v
	return p
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func NewObject() *Node {
	return &Node{Type: ObjectType, Fields: []*Node{}, Values: []*Node{}}
}

func NewArray() *Node {
	return &Node{Type: ArrayType, Values: []*Node{}}
}

func ToMap(node *Node) map[string]*Node {
	if node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i, field := range node.Fields {
		res[field.String] = node.Values[i]
	}
	return res
}

// FromMap builds an object with the keys of yMap in sorted order.
func FromMap(yMap map[string]*Node) *Node {
	res := NewObject()
	for _, key := range slices.Sorted(maps.Keys(yMap)) {
		res.put(key, yMap[key])
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals builds an object in the order of kvs.  A repeated key
// replaces the earlier value and keeps the earlier position.
func FromKeyVals(kvs []KeyVal) *Node {
	res := NewObject()
	for _, kv := range kvs {
		res.put(kv.Key, kv.Val)
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type:   ArrayType,
		Values: make([]*Node, len(ySlice)),
	}
	for i, y := range ySlice {
		if y == nil {
			y = Null()
		}
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
		y.ParentField = ""
	}
	return res
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

// Root follows parent links up from y.  If the links form a cycle, Root
// stops at the first node reached twice.
func (y *Node) Root() *Node {
	res := y
	seen := map[*Node]bool{}
	for res.Parent != nil && !seen[res] {
		seen[res] = true
		res = res.Parent
	}
	return res
}

func (y *Node) IsNull() bool {
	return y == nil || y.Type == NullType
}
