package codegen

import (
	"strings"
	"testing"
)

func TestParseDirective(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "keys=a,b", want: "keys=a,b"},
		{in: " keys=a, b ", want: "keys=a,b"},
		{in: "array", want: "array"},
		{in: "indices=2,0", want: "indices=2,0"},
		{in: "keys=a,,b", wantErr: true},
		{in: "indices=x", wantErr: true},
		{in: "indices=-1", wantErr: true},
		{in: "fields=a", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			p, err := ParseDirective(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %s", p)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got := p.String(); got != tc.want {
				t.Errorf("got %s want %s", got, tc.want)
			}
		})
	}
}

const shapesSrc = `package shapes

import (
	"time"

	yml "github.com/goccy/go-yaml"
)

type Point struct{ X, Y int }

//jsondoc:ctor keys=x,y
func NewPoint(x, y int) Point { return Point{x, y} }

type Span struct {
	D    time.Duration
	Tags []string
}

// NewSpan builds a span.
//
//jsondoc:ctor indices=1,0
func NewSpan(tags []string, d time.Duration) (*Span, error) {
	return &Span{D: d, Tags: tags}, nil
}

type Pair struct {
	A string
	B int
}

//jsondoc:ctor array
func NewPair(string, int) Pair { return Pair{} }

type Doc struct{ M yml.MapSlice }

//jsondoc:ctor keys=m
func NewDoc(m yml.MapSlice) Doc { return Doc{m} }

//jsondoc:ctorx keys=a
func notAnnotated(a int) Point { return Point{} }

// helper is not a constructor.
func helper() {}
`

func TestExtractCtors(t *testing.T) {
	file, fset, err := ParseFile("shapes.go", shapesSrc)
	if err != nil {
		t.Fatal(err)
	}
	ctors, err := ExtractCtors(fset, file, "shapes.go")
	if err != nil {
		t.Fatal(err)
	}
	if len(ctors) != 4 {
		t.Fatalf("got %d ctors", len(ctors))
	}
	span := ctors[1]
	if span.Func != "NewSpan" || span.Type != "Span" || !span.Pointer || !span.ReturnsErr {
		t.Errorf("got %+v", span)
	}
	if got := strings.Join(span.ParamTypes, ";"); got != "[]string;time.Duration" {
		t.Errorf("param types %s", got)
	}
	if span.Imports["time"] != "time" || span.Line != 22 {
		t.Errorf("got imports %v line %d", span.Imports, span.Line)
	}
	pair := ctors[2]
	if got := strings.Join(pair.ParamNames, ","); got != "a0,a1" {
		t.Errorf("pair params %s", got)
	}
	if ctors[3].Imports["yml"] != "github.com/goccy/go-yaml" {
		t.Errorf("got imports %v", ctors[3].Imports)
	}
}

func TestExtractCtorErrors(t *testing.T) {
	tests := []struct {
		name string
		decl string
		want string
	}{
		{"arity", "//jsondoc:ctor keys=a\nfunc NewT(a, b int) T { return T{} }", "names 1 parameters"},
		{"indices arity", "//jsondoc:ctor indices=0,1,2\nfunc NewT(a, b int) T { return T{} }", "names 3 parameters"},
		{"method", "//jsondoc:ctor keys=a\nfunc (T) New(a int) T { return T{} }", "not a method"},
		{"variadic", "//jsondoc:ctor array\nfunc NewT(a ...int) T { return T{} }", "variadic"},
		{"no result", "//jsondoc:ctor keys=a\nfunc NewT(a int) {}", "no result"},
		{"predeclared", "//jsondoc:ctor keys=a\nfunc NewT(a int) int { return a }", "predeclared"},
		{"second result", "//jsondoc:ctor keys=a\nfunc NewT(a int) (T, int) { return T{}, 0 }", "must be error"},
		{"foreign result", "//jsondoc:ctor keys=a\nfunc NewT(a int) time.Time { return time.Time{} }", "not a type declared"},
		{"too many", "//jsondoc:ctor array\nfunc NewT(a, b, c, d, e int) T { return T{} }", "want 1 to 4"},
		{"none", "//jsondoc:ctor array\nfunc NewT() T { return T{} }", "want 1 to 4"},
		{"generic", "//jsondoc:ctor keys=a\nfunc NewT[X any](a X) T { return T{} }", "generic"},
		{"not imported", "//jsondoc:ctor keys=a\nfunc NewT(a foo.Bar) T { return T{} }", "foo not imported"},
		{"directive", "//jsondoc:ctor fields=a\nfunc NewT(a int) T { return T{} }", "unknown directive"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := "package p\n\nimport \"time\"\n\ntype T struct{}\n\nvar _ time.Time\n\n" + tc.decl + "\n"
			file, fset, err := ParseFile("p.go", src)
			if err != nil {
				t.Fatal(err)
			}
			_, err = ExtractCtors(fset, file, "p.go")
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("got %v want %q", err, tc.want)
			}
		})
	}
}
