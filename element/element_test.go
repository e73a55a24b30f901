package element

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/parse"
)

func doc(t *testing.T, s string) Element {
	t.Helper()
	n, err := parse.ParseString(s)
	if err != nil {
		t.Fatal(err)
	}
	return Of(n)
}

func TestPresence(t *testing.T) {
	obj := doc(t, `{"a": null}`)
	a := obj.Get("a")
	if !a.IsPresent() || a.IsNotNull() || !a.IsNull() {
		t.Errorf("a: present=%v notNull=%v", a.IsPresent(), a.IsNotNull())
	}
	b := obj.Get("b")
	if b.IsPresent() || !b.IsEmpty() || b.IsNotNull() {
		t.Errorf("b should be absent")
	}
	if !a.NullOr(ir.FromInt(5)).Equal(5) {
		t.Error("NullOr should substitute for null")
	}
	if !a.Or(ir.FromInt(5)).Equal(nil) {
		t.Error("Or should not substitute for null")
	}
	if !b.Or(ir.FromInt(5)).Equal(5) {
		t.Error("Or should substitute for absent")
	}
}

func TestGetPath(t *testing.T) {
	d := doc(t, `{"a":[1,2,{"b":3}]}`)
	if !d.GetPath("a[2].b").Equal(3) {
		t.Error("a[2].b")
	}
	c := d.GetPath("a[2].c")
	if c.IsPresent() || c.Err() != nil {
		t.Errorf("a[2].c should be absent, got %s", c)
	}
	tests := []struct {
		path    string
		present bool
		wantErr error
	}{
		{path: "a[9]"},
		{path: "a.b"},
		{path: "x.y.z"},
		{path: "a[0]", present: true},
		{path: "a[0].b", wantErr: ir.ErrTypeMismatch},
		{path: "a[0][0]", wantErr: ir.ErrTypeMismatch},
		{path: "a[-1]", wantErr: ir.ErrIndex},
		{path: "x[-1]", wantErr: ir.ErrIndex},
		{path: "a..b", wantErr: ir.ErrBadPath},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			e := d.GetPath(tc.path)
			if tc.wantErr != nil {
				if !errors.Is(e.Err(), tc.wantErr) {
					t.Fatalf("got %v", e.Err())
				}
				if _, _, err := e.AsString(); !errors.Is(err, tc.wantErr) {
					t.Errorf("accessor should surface the error, got %v", err)
				}
				return
			}
			if e.Err() != nil {
				t.Fatal(e.Err())
			}
			if e.IsPresent() != tc.present {
				t.Errorf("present=%v", e.IsPresent())
			}
		})
	}
}

func TestNegativeIndexFromAbsent(t *testing.T) {
	e := Absent().Index(-1)
	if !errors.Is(e.Err(), ir.ErrIndex) {
		t.Errorf("got %v", e.Err())
	}
	e = AbsentWith(ir.FromInt(1)).Index(-2).Get("x")
	if !errors.Is(e.Err(), ir.ErrIndex) {
		t.Errorf("error should stick, got %v", e.Err())
	}
}

func TestObjectIndexByKey(t *testing.T) {
	d := doc(t, `{"0": "zero", "x": {"1": true}}`)
	if !d.Index(0).Equal("zero") {
		t.Error("index on object should look up the decimal key")
	}
	if !d.GetPath("x[1]").Equal(true) {
		t.Error("x[1]")
	}
}

func TestNullNavigation(t *testing.T) {
	d := doc(t, `{"n": null}`)
	e := d.Get("n").Get("k")
	if e.IsPresent() || e.Err() != nil {
		t.Errorf("got %s", e)
	}
	e = d.Get("n").Index(3)
	if e.IsPresent() || e.Err() != nil {
		t.Errorf("got %s", e)
	}
}

func TestDefaultsPropagate(t *testing.T) {
	e := AbsentWith(ir.FromString("dflt")).Get("a").Index(2)
	s, ok, err := e.AsString()
	if err != nil || !ok || s != "dflt" {
		t.Errorf("got %q %v %v", s, ok, err)
	}
	// a structural miss on a present container is a fresh absent
	e = doc(t, `{}`).Get("a")
	if _, ok, _ := e.AsString(); ok {
		t.Error("fresh absent should have no default")
	}
}

func TestGeneratorsAreLazy(t *testing.T) {
	calls := 0
	gen := func() *ir.Node {
		calls++
		return ir.FromInt(int64(calls))
	}
	present := doc(t, `{"a": 1}`)
	present.Get("a").OrGet(gen)
	present.Get("a").NullOrGet(gen)
	if calls != 0 {
		t.Fatalf("generator called eagerly %d times", calls)
	}
	present.Get("b").OrGet(gen)
	if calls != 1 {
		t.Fatalf("got %d calls", calls)
	}

	calls = 0
	e := AbsentGet(gen)
	i1, _, _ := e.AsInt64()
	i2, _, _ := e.AsInt64()
	if calls != 2 || i1 != 1 || i2 != 2 {
		t.Errorf("generator should run once per accessor call without memoizing: calls=%d %d %d", calls, i1, i2)
	}
}

func TestOrFamily(t *testing.T) {
	d := doc(t, `{"null": null, "one": 1}`)
	five := ir.FromInt(5)
	fiveEl := func() Element { return Of(ir.FromInt(5)) }
	tests := []struct {
		name string
		e    Element
		want any
	}{
		{"Or absent", d.Get("x").Or(five), 5},
		{"Or null", d.Get("null").Or(five), nil},
		{"Or present", d.Get("one").Or(five), 1},
		{"OrElse absent", d.Get("x").OrElse(Of(five)), 5},
		{"OrElse null", d.Get("null").OrElse(Of(five)), nil},
		{"OrElseGet absent", d.Get("x").OrElseGet(fiveEl), 5},
		{"OrGet null", d.Get("null").OrGet(func() *ir.Node { return five }), nil},
		{"NullOr absent", d.Get("x").NullOr(five), 5},
		{"NullOr null", d.Get("null").NullOr(five), 5},
		{"NullOr present", d.Get("one").NullOr(five), 1},
		{"NullOrElse null", d.Get("null").NullOrElse(Of(five)), 5},
		{"NullOrElseGet null", d.Get("null").NullOrElseGet(fiveEl), 5},
		{"NullOrGet null", d.Get("null").NullOrGet(func() *ir.Node { return five }), 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !tc.e.Equal(tc.want) {
				t.Errorf("got %s want %v", tc.e, tc.want)
			}
		})
	}
}

func TestAccessors(t *testing.T) {
	d := doc(t, `{"s": "x", "b": true, "i": 42, "f": 1.5, "big": 1e30, "o": {"k": 1}, "a": [1, 2], "n": null}`)
	if s, ok, err := d.Get("s").AsString(); s != "x" || !ok || err != nil {
		t.Errorf("AsString %q %v %v", s, ok, err)
	}
	if b, ok, err := d.Get("b").AsBool(); !b || !ok || err != nil {
		t.Errorf("AsBool %v %v %v", b, ok, err)
	}
	if i, ok, err := d.Get("i").AsInt(); i != 42 || !ok || err != nil {
		t.Errorf("AsInt %v %v %v", i, ok, err)
	}
	if f, ok, err := d.Get("f").AsFloat64(); f != 1.5 || !ok || err != nil {
		t.Errorf("AsFloat64 %v %v %v", f, ok, err)
	}
	if _, _, err := d.Get("f").AsInt64(); !errors.Is(err, ir.ErrNumberRange) {
		t.Errorf("fractional AsInt64: %v", err)
	}
	if _, _, err := d.Get("big").AsInt64(); !errors.Is(err, ir.ErrNumberRange) {
		t.Errorf("big AsInt64: %v", err)
	}
	if _, _, err := d.Get("s").AsInt64(); !errors.Is(err, ir.ErrTypeMismatch) {
		t.Errorf("string AsInt64: %v", err)
	}
	if _, ok, err := d.Get("n").AsString(); ok || err != nil {
		t.Errorf("null AsString %v %v", ok, err)
	}
	if o, ok, err := d.Get("o").AsObject(); !ok || err != nil || o.Len() != 1 {
		t.Errorf("AsObject %v %v", ok, err)
	}
	if a, ok, err := d.Get("a").AsArray(); !ok || err != nil || len(a) != 2 {
		t.Errorf("AsArray %v %v", ok, err)
	}
	v, ok, err := d.Get("o").Value()
	if !ok || err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]any{"k": int64(1)}, v); diff != "" {
		t.Errorf("Value (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"s", "b", "i", "f", "big", "o", "a", "n"}, d.Keys()); diff != "" {
		t.Errorf("Keys (-want +got):\n%s", diff)
	}
	if len(d.Get("a").Elements()) != 2 {
		t.Error("Elements")
	}
}

func TestEquality(t *testing.T) {
	d := doc(t, `{"a": {"x": 1, "y": [true]}, "n": null}`)
	other := doc(t, `{"y": [true], "x": 1.0}`)
	if !d.Get("a").Equal(other) {
		t.Error("present elements with equal values")
	}
	if d.Get("a").Hash() != other.Hash() {
		t.Error("equal elements hash differently")
	}
	if !Absent().Equal(Absent()) || !AbsentWith(ir.FromInt(1)).Equal(AbsentWith(ir.FromInt(1))) {
		t.Error("absent elements")
	}
	if AbsentWith(ir.FromInt(1)).Equal(Of(ir.FromInt(1))) {
		t.Error("absent and present are never equal")
	}
	if !AbsentWith(ir.FromInt(1)).Equal(1) {
		t.Error("absent compares its default against raw values")
	}
	if !d.Get("n").Equal(nil) || !d.Get("missing").Equal(nil) {
		t.Error("null and missing equal nil")
	}
	if d.Get("a").Equal("x") || d.Get("a").Equal(struct{}{}) {
		t.Error("unexpected equality")
	}
	if !d.GetPath("a.x").Equal(uint8(1)) || !d.GetPath("a.x").Equal(1.0) {
		t.Error("numeric cross type equality")
	}
}

func TestString(t *testing.T) {
	if got := Of(ir.FromSlice([]*ir.Node{ir.FromInt(1)})).String(); got != "Present([1])" {
		t.Errorf("got %s", got)
	}
	if got := Absent().String(); got != "Absent" {
		t.Errorf("got %s", got)
	}
}
