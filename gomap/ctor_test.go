package gomap

import (
	"errors"
	"fmt"
	"testing"

	"github.com/signadot/jsondoc/element"
	"github.com/signadot/jsondoc/ir"
)

type rect struct {
	Min, Max point
	Label    *string
}

func newRect(min, max point, label *string) (rect, error) {
	if max.X < min.X || max.Y < min.Y {
		return rect{}, fmt.Errorf("inverted rect")
	}
	return rect{Min: min, Max: max, Label: label}, nil
}

type pair struct {
	A string
	B int
}

func TestCtorKeys(t *testing.T) {
	r := NewRegistry()
	if err := DeclareCtor[rect](r, Ctor3(Keys("min", "max", "label"), newRect)); err != nil {
		t.Fatal(err)
	}
	got, err := Deserialize[rect](r, doc(t, `{"min":{"x":0,"y":0},"max":{"x":2,"y":3}}`))
	if err != nil {
		t.Fatal(err)
	}
	if got.Max != (point{2, 3}) || got.Label != nil {
		t.Errorf("got %+v", got)
	}

	_, err = Deserialize[rect](r, doc(t, `{"min":{"x":5,"y":0},"max":{"x":2,"y":3}}`))
	var ue *UnmarshalError
	if !errors.As(err, &ue) || ue.Message != "inverted rect" {
		t.Errorf("got %v", err)
	}

	_, err = Deserialize[rect](r, doc(t, `{"min":{"x":0,"y":0}}`))
	var ee *EmptyValueError
	if !errors.As(err, &ee) || ee.FieldPath != "max" {
		t.Errorf("got %v", err)
	}

	_, err = Deserialize[rect](r, doc(t, `[1]`))
	if !errors.Is(err, ir.ErrTypeMismatch) {
		t.Errorf("got %v", err)
	}
}

func TestCtorIndices(t *testing.T) {
	mk := func(a string, b int) (pair, error) { return pair{a, b}, nil }
	tests := []struct {
		name   string
		params Params
		in     string
		want   pair
	}{
		{"positional", Indices(), `["x",1]`, pair{"x", 1}},
		{"explicit", Indices(2, 0), `[7,"unused","y"]`, pair{"y", 7}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRegistry()
			if err := DeclareCtor[pair](r, Ctor2(tc.params, mk)); err != nil {
				t.Fatal(err)
			}
			got, err := Deserialize[pair](r, doc(t, tc.in))
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got %+v want %+v", got, tc.want)
			}
		})
	}
}

func TestCtorArityMismatch(t *testing.T) {
	calls := 0
	c := Ctor2(Keys("a", "b", "c"), func(a string, b int) (pair, error) {
		calls++
		return pair{a, b}, nil
	})
	r := NewRegistry()
	// declaring does not check
	if err := DeclareCtor[pair](r, c); err != nil {
		t.Fatal(err)
	}
	_, err1 := Deserialize[pair](r, doc(t, `{"a":"x","b":1,"c":2}`))
	if !errors.Is(err1, ErrIllegalArgument) {
		t.Fatalf("got %v", err1)
	}
	_, err2 := Deserialize[pair](r, doc(t, `{"a":"x","b":1,"c":2}`))
	if err1 != err2 {
		t.Errorf("check repeated: %v != %v", err1, err2)
	}
	if calls != 0 {
		t.Errorf("constructor called %d times", calls)
	}
}

func TestCtorBadParams(t *testing.T) {
	mk := func(a string, b int) (pair, error) { return pair{a, b}, nil }
	for _, p := range []Params{Keys("a", "a"), Indices(0, 0), Indices(-1, 0), Indices(1)} {
		t.Run(p.String(), func(t *testing.T) {
			_, err := Construct[pair](NewRegistry(), Ctor2(p, mk), doc(t, `{}`))
			if !errors.Is(err, ErrIllegalArgument) {
				t.Errorf("got %v", err)
			}
		})
	}
}

func TestDeclareCtorWrongType(t *testing.T) {
	c := Ctor1(Keys("a"), func(a string) (pair, error) { return pair{A: a}, nil })
	if err := DeclareCtor[rect](NewRegistry(), c); !errors.Is(err, ErrIllegalArgument) {
		t.Errorf("got %v", err)
	}
	if err := DeclareCtor[int](NewRegistry(), c); !errors.Is(err, ErrIllegalArgument) {
		t.Errorf("got %v", err)
	}
}

func TestConstructFromJSON(t *testing.T) {
	c := Ctor1(Keys("a"), func(a string) (pair, error) { return pair{A: a}, nil })
	got, err := Construct[pair](NewRegistry(), c, doc(t, `{"a":"z"}`))
	if err != nil {
		t.Fatal(err)
	}
	if got.A != "z" {
		t.Errorf("got %+v", got)
	}
	if _, err := Construct[pair](NewRegistry(), c, element.Absent()); !errors.Is(err, ErrEmptyValue) {
		t.Errorf("got %v", err)
	}
}
