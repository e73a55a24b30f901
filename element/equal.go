package element

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/signadot/jsondoc/ir"
)

// Equal compares e with another Element, a *ir.Node, nil, or a Go bool,
// string or number.
//
// Two Elements are equal when both are present with equal nodes, or both
// absent with equal defaults.  Against anything else e compares its
// effective value; missing and null both equal nil.  Elements holding
// errors equal nothing.
func (e Element) Equal(other any) bool {
	if e.err != nil {
		return false
	}
	if o, ok := other.(Element); ok {
		if o.err != nil || e.present != o.present {
			return false
		}
		return nodesEqual(e.effective(), o.effective())
	}
	n, ok := fromScalar(other)
	if !ok {
		return false
	}
	return nodesEqual(e.effective(), n)
}

func nodesEqual(a, b *ir.Node) bool {
	if a.IsNull() || b.IsNull() {
		return a.IsNull() && b.IsNull()
	}
	return ir.Equal(a, b)
}

// Hash is consistent with Equal between Elements.
func (e Element) Hash() uint64 {
	n := e.effective()
	if n.IsNull() {
		return 0
	}
	return n.Hash()
}

func fromScalar(v any) (*ir.Node, bool) {
	switch x := v.(type) {
	case nil:
		return nil, true
	case *ir.Node:
		return x, true
	case bool:
		return ir.FromBool(x), true
	case string:
		return ir.FromString(x), true
	case int:
		return ir.FromInt(int64(x)), true
	case int8:
		return ir.FromInt(int64(x)), true
	case int16:
		return ir.FromInt(int64(x)), true
	case int32:
		return ir.FromInt(int64(x)), true
	case int64:
		return ir.FromInt(x), true
	case uint:
		return ir.FromUint(uint64(x)), true
	case uint8:
		return ir.FromUint(uint64(x)), true
	case uint16:
		return ir.FromUint(uint64(x)), true
	case uint32:
		return ir.FromUint(uint64(x)), true
	case uint64:
		return ir.FromUint(x), true
	case float32:
		return ir.FromFloat(float64(x)), true
	case float64:
		return ir.FromFloat(x), true
	case decimal.Decimal:
		return ir.FromDecimal(x), true
	case json.Number:
		n, err := ir.FromNumber(string(x))
		return n, err == nil
	}
	return nil, false
}
