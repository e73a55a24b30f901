package ir

// ToAny converts y to plain Go values: nil, bool, string, []any,
// map[string]any and numbers as returned by Native.
func ToAny(y *Node) any {
	return toAny(y, map[*Node]bool{})
}

// toAny gives nil for a container found inside itself.
func toAny(y *Node, open map[*Node]bool) any {
	if y == nil {
		return nil
	}
	switch y.Type {
	case BoolType:
		return y.Bool
	case StringType:
		return y.String
	case NumberType:
		return y.Native()
	}
	if open[y] {
		return nil
	}
	open[y] = true
	defer delete(open, y)
	switch y.Type {
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = toAny(v, open)
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(y.Values))
		for i, f := range y.Fields {
			res[f.String] = toAny(y.Values[i], open)
		}
		return res
	}
	return nil
}

// Native returns the value of a number node as an int64 when it is an
// integer in range, otherwise as a float64 when that is finite, and
// otherwise as its literal text.
func (y *Node) Native() any {
	if i, err := y.AsInt64(); err == nil {
		return i
	}
	if f, err := y.AsFloat64(); err == nil {
		return f
	}
	if s, err := y.NumberText(); err == nil {
		return s
	}
	return y.Number
}
