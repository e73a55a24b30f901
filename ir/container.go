package ir

import "slices"

func attach(parent, v *Node, i int, field string) *Node {
	if v == nil {
		v = Null()
	}
	v.Parent = parent
	v.ParentIndex = i
	v.ParentField = field
	return v
}

func (y *Node) fieldIndex(key string) int {
	for i, f := range y.Fields {
		if f.String == key {
			return i
		}
	}
	return -1
}

// put sets key without a type check.
func (y *Node) put(key string, v *Node) {
	if i := y.fieldIndex(key); i >= 0 {
		y.Values[i] = attach(y, v, i, key)
		return
	}
	i := len(y.Fields)
	y.Fields = append(y.Fields, attach(y, FromString(key), i, key))
	y.Values = append(y.Values, attach(y, v, i, key))
}

// Get returns the value of key in an object, or nil when y is not an object
// or has no such key.
func (y *Node) Get(key string) *Node {
	if y == nil || y.Type != ObjectType {
		return nil
	}
	if i := y.fieldIndex(key); i >= 0 {
		return y.Values[i]
	}
	return nil
}

// Has reports whether the object y has key.
func (y *Node) Has(key string) bool {
	return y != nil && y.Type == ObjectType && y.fieldIndex(key) >= 0
}

// Index returns element i of an array, or nil when y is not an array or i
// is out of range.
func (y *Node) Index(i int) *Node {
	if y == nil || y.Type != ArrayType || i < 0 || i >= len(y.Values) {
		return nil
	}
	return y.Values[i]
}

// Len is the number of members of an object or array, and 0 otherwise.
func (y *Node) Len() int {
	if y == nil {
		return 0
	}
	switch y.Type {
	case ObjectType, ArrayType:
		return len(y.Values)
	}
	return 0
}

// Keys returns the keys of an object in insertion order.
func (y *Node) Keys() []string {
	if y == nil || y.Type != ObjectType {
		return nil
	}
	res := make([]string, len(y.Fields))
	for i, f := range y.Fields {
		res[i] = f.String
	}
	return res
}

// Set sets key to v.  An existing key keeps its position.  A nil v is
// stored as null.
func (y *Node) Set(key string, v *Node) error {
	if y.Type != ObjectType {
		return mismatch("set "+key, "Object", y)
	}
	y.put(key, v)
	return nil
}

// Delete removes key, reporting whether it was present.
func (y *Node) Delete(key string) bool {
	if y == nil || y.Type != ObjectType {
		return false
	}
	i := y.fieldIndex(key)
	if i < 0 {
		return false
	}
	y.Fields = slices.Delete(y.Fields, i, i+1)
	y.Values = slices.Delete(y.Values, i, i+1)
	y.reindex(i)
	return true
}

func (y *Node) reindex(from int) {
	for j := from; j < len(y.Values); j++ {
		y.Values[j].ParentIndex = j
		if j < len(y.Fields) {
			y.Fields[j].ParentIndex = j
		}
	}
}

func (y *Node) expectArray(op string) error {
	if y.Type != ArrayType {
		return mismatch(op, "Array", y)
	}
	return nil
}

func (y *Node) Append(vs ...*Node) error {
	if err := y.expectArray("append"); err != nil {
		return err
	}
	for _, v := range vs {
		y.Values = append(y.Values, attach(y, v, len(y.Values), ""))
	}
	return nil
}

// Insert inserts v before element i; i == Len() appends.
func (y *Node) Insert(i int, v *Node) error {
	if err := y.expectArray("insert"); err != nil {
		return err
	}
	if i < 0 || i > len(y.Values) {
		return &IndexError{Index: i, Len: len(y.Values)}
	}
	y.Values = slices.Insert(y.Values, i, attach(y, v, i, ""))
	y.reindex(i)
	return nil
}

// Replace replaces element i with v and returns the old element.
func (y *Node) Replace(i int, v *Node) (*Node, error) {
	if err := y.expectArray("replace"); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(y.Values) {
		return nil, &IndexError{Index: i, Len: len(y.Values)}
	}
	old := y.Values[i]
	y.Values[i] = attach(y, v, i, "")
	return old, nil
}

// RemoveAt removes and returns element i.
func (y *Node) RemoveAt(i int) (*Node, error) {
	if err := y.expectArray("remove"); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(y.Values) {
		return nil, &IndexError{Index: i, Len: len(y.Values)}
	}
	old := y.Values[i]
	y.Values = slices.Delete(y.Values, i, i+1)
	y.reindex(i)
	return old, nil
}
