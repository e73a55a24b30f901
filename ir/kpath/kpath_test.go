package kpath

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		segs    []string
		str     string
		wantErr error
	}{
		{in: "", segs: nil, str: ""},
		{in: "a", segs: []string{"a"}, str: "a"},
		{in: "a.b.c", segs: []string{"a", "b", "c"}, str: "a.b.c"},
		{in: "a[0][1]", segs: []string{"a", "[0]", "[1]"}, str: "a[0][1]"},
		{in: "[0].b", segs: []string{"[0]", "b"}, str: "[0].b"},
		{in: "a.0", segs: []string{"a", "[0]"}, str: "a[0]"},
		{in: "users[12].name", segs: []string{"users", "[12]", "name"}, str: "users[12].name"},
		{in: "a[-1]", segs: []string{"a", "[-1]"}, str: "a[-1]"},
		{in: "x1.y-z", segs: []string{"x1", "y-z"}, str: "x1.y-z"},
		{in: "a..b", wantErr: ErrBadPath},
		{in: "a.", wantErr: ErrBadPath},
		{in: "a[]", wantErr: ErrBadPath},
		{in: ".a", wantErr: ErrBadPath},
		{in: "a[99999999999999999999999]", wantErr: ErrIndex},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			kp, err := Parse(tc.in)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("got %v want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			segs := kp.Segments()
			if len(segs) != len(tc.segs) {
				t.Fatalf("got %d segments want %d", len(segs), len(tc.segs))
			}
			for i, seg := range segs {
				if got := seg.SegmentString(); got != tc.segs[i] {
					t.Errorf("segment %d: got %q want %q", i, got, tc.segs[i])
				}
			}
			if got := kp.String(); got != tc.str {
				t.Errorf("String() = %q want %q", got, tc.str)
			}
		})
	}
}

func TestParentLast(t *testing.T) {
	kp := MustParse("a[3].b")
	if got := kp.Parent().String(); got != "a[3]" {
		t.Errorf("parent %q", got)
	}
	if got := kp.Last().SegmentString(); got != "b" {
		t.Errorf("last %q", got)
	}
	if kp.Parent().Parent().Parent() != nil {
		t.Error("expected root")
	}
	if kp.String() != "a[3].b" {
		t.Errorf("Parent mutated receiver: %s", kp)
	}
}

func TestAppend(t *testing.T) {
	p := MustParse("a")
	q := p.Append(Idx(2)).Append(Field("c"))
	if got := q.String(); got != "a[2].c" {
		t.Errorf("got %q", got)
	}
	if p.String() != "a" {
		t.Errorf("Append mutated receiver: %s", p)
	}
	var root *KPath
	if got := root.Append(Field("x")).String(); got != "x" {
		t.Errorf("got %q", got)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"a", "a", 0},
		{"a", "b", -1},
		{"a", "a.b", -1},
		{"a[1]", "a[0]", 1},
		{"a[0]", "a.b", -1},
		{"", "a", -1},
	}
	for _, tc := range tests {
		t.Run(tc.a+"/"+tc.b, func(t *testing.T) {
			if got := MustParse(tc.a).Compare(MustParse(tc.b)); got != tc.want {
				t.Errorf("got %d want %d", got, tc.want)
			}
			if got := MustParse(tc.b).Compare(MustParse(tc.a)); got != -tc.want {
				t.Errorf("reverse got %d want %d", got, -tc.want)
			}
		})
	}
}

func TestIsPrefixOf(t *testing.T) {
	if !MustParse("a[0]").IsPrefixOf(MustParse("a[0].b")) {
		t.Error("a[0] should prefix a[0].b")
	}
	if MustParse("a[1]").IsPrefixOf(MustParse("a[0].b")) {
		t.Error("a[1] should not prefix a[0].b")
	}
	if MustParse("a.b.c").IsPrefixOf(MustParse("a.b")) {
		t.Error("longer path cannot be a prefix")
	}
}

func TestSplitJoin(t *testing.T) {
	first, rest, err := Split("a.b[0]")
	if err != nil || first != "a" || rest != "b[0]" {
		t.Errorf("Split got %q %q %v", first, rest, err)
	}
	parent, last, err := RSplit("a.b[0]")
	if err != nil || parent != "a.b" || last != "[0]" {
		t.Errorf("RSplit got %q %q %v", parent, last, err)
	}
	j, err := Join("a.b", "[0].c")
	if err != nil || j != "a.b[0].c" {
		t.Errorf("Join got %q %v", j, err)
	}
	if _, err := Join("a..", "b"); !errors.Is(err, ErrBadPath) {
		t.Errorf("got %v", err)
	}
}

func TestText(t *testing.T) {
	var kp KPath
	if err := kp.UnmarshalText([]byte("x[1].y")); err != nil {
		t.Fatal(err)
	}
	d, err := kp.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != "x[1].y" {
		t.Errorf("got %q", d)
	}
}
