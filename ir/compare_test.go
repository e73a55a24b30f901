package ir

import (
	"testing"
)

func obj(kvs ...any) *Node {
	res := NewObject()
	for i := 0; i < len(kvs); i += 2 {
		res.put(kvs[i].(string), kvs[i+1].(*Node))
	}
	return res
}

func arr(vs ...*Node) *Node {
	return FromSlice(vs)
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Node
		expected int
	}{
		// Type Ranking: Null < Bool < Number < String < Array < Object
		{"Null < Bool", Null(), FromBool(false), -1},
		{"Bool < Number", FromBool(true), FromInt(1), -1},
		{"Number < String", FromInt(1), FromString("a"), -1},
		{"String < Array", FromString("a"), arr(), -1},
		{"Array < Object", arr(), NewObject(), -1},

		{"false < true", FromBool(false), FromBool(true), -1},
		{"true == true", FromBool(true), FromBool(true), 0},

		{"Int == Float", FromInt(1), FromFloat(1.0), 0},
		{"Int == Literal", FromInt(100), FromLiteral("1e2", true), 0},
		{"Literal < Literal", FromLiteral("1", false), FromLiteral("2", false), -1},
		{"big literals", FromLiteral("18446744073709551616", false), FromLiteral("18446744073709551617", false), -1},
		{"Float < Int", FromFloat(1.5), FromInt(2), -1},
		{"exact decimal", FromLiteral("0.1", true), FromLiteral("0.10", true), 0},
		{"huge exponent vs int", FromInt(1), FromLiteral("1e999999999", true), -1},
		{"huge exponents", FromLiteral("1e999999999", true), FromLiteral("2e999999999", true), -1},
		{"huge exponent forms", FromLiteral("1e999999999", true), FromLiteral("10e999999998", true), 0},
		{"negative huge exponent", FromLiteral("-1e999999999", true), FromInt(0), -1},
		{"tiny vs zero", FromInt(0), FromLiteral("1e-999999999", true), -1},
		{"negatives", FromLiteral("-2e999999999", true), FromLiteral("-1e999999999", true), -1},
		{"prefix digits", FromLiteral("1.2", true), FromLiteral("1.25", true), -1},

		{"String < String", FromString("a"), FromString("b"), -1},

		{"Empty Array == Empty Array", arr(), arr(), 0},
		{"Short Array < Long Array", arr(FromInt(1)), arr(FromInt(1), FromInt(2)), -1},
		{"Array Element Comparison", arr(FromInt(1)), arr(FromInt(2)), -1},

		{"Empty Object == Empty Object", NewObject(), NewObject(), 0},
		{"Short Object < Long Object", obj("a", FromInt(1)), obj("a", FromInt(1), "b", FromInt(2)), -1},
		{"Object Key Comparison", obj("a", FromInt(1)), obj("b", FromInt(1)), -1},
		{"Object Value Comparison", obj("a", FromInt(1)), obj("a", FromInt(2)), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.expected {
				t.Errorf("Compare() = %d, want %d", got, tt.expected)
			}
			if got := Compare(tt.b, tt.a); got != -tt.expected {
				t.Errorf("Compare() reversed = %d, want %d", got, -tt.expected)
			}
		})
	}
}

func TestEqualHash(t *testing.T) {
	tests := []struct {
		name  string
		a, b  *Node
		equal bool
	}{
		{"key order", obj("a", FromInt(1), "b", FromInt(2)), obj("b", FromInt(2), "a", FromInt(1)), true},
		{"nested key order", arr(obj("x", Null(), "y", FromBool(true))), arr(obj("y", FromBool(true), "x", Null())), true},
		{"number forms", FromLiteral("1.0", true), FromInt(1), true},
		{"huge exponent forms", FromLiteral("0.1e999999999", true), FromLiteral("100e999999996", true), true},
		{"huge exponent vs int", FromLiteral("1e999999999", true), FromInt(1), false},
		{"array order", arr(FromInt(1), FromInt(2)), arr(FromInt(2), FromInt(1)), false},
		{"different values", obj("a", FromInt(1)), obj("a", FromInt(2)), false},
		{"different keys", obj("a", FromInt(1)), obj("b", FromInt(1)), false},
		{"string vs number", FromString("1"), FromInt(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.equal {
				t.Fatalf("Equal() = %v, want %v", got, tt.equal)
			}
			if tt.equal && tt.a.Hash() != tt.b.Hash() {
				t.Errorf("equal nodes hash differently")
			}
		})
	}
}
