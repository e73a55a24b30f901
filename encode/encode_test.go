package encode

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/parse"
	"github.com/signadot/jsondoc/token"
)

func sample() *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "name", Val: ir.FromString("alice")},
		{Key: "ids", Val: ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromFloat(2.5)})},
		{Key: "empty", Val: ir.NewObject()},
		{Key: "none", Val: ir.NewArray()},
		{Key: "ok", Val: ir.FromBool(true)},
		{Key: "nil", Val: ir.Null()},
	})
}

func TestFormatted(t *testing.T) {
	want := `{
    "name": "alice",
    "ids": [
        1,
        2.5
    ],
    "empty": {},
    "none": [],
    "ok": true,
    "nil": null
}`
	got, err := EncodeString(sample())
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestCompact(t *testing.T) {
	want := `{"name":"alice","ids":[1,2.5],"empty":{},"none":[],"ok":true,"nil":null}`
	got, err := EncodeString(sample(), Formatted(false))
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %s", got)
	}
}

func TestIndent(t *testing.T) {
	node := ir.FromSlice([]*ir.Node{ir.FromSlice([]*ir.Node{ir.Null()})})
	tests := []struct {
		indent int
		want   string
	}{
		{0, "[\n[\nnull\n]\n]"},
		{2, "[\n  [\n    null\n  ]\n]"},
	}
	for _, tc := range tests {
		got, err := EncodeString(node, Indent(tc.indent))
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.want {
			t.Errorf("indent %d: got %q", tc.indent, got)
		}
	}
	if _, err := EncodeString(node, Indent(-1)); !errors.Is(err, ErrEncoding) {
		t.Errorf("got %v", err)
	}
}

func TestDepth(t *testing.T) {
	node := ir.FromSlice([]*ir.Node{ir.Null()})
	tests := []struct {
		name    string
		opts    []EncodeOption
		want    string
		wantErr bool
	}{
		{"nested", []EncodeOption{Depth(1), Indent(2)}, "[\n    null\n  ]", false},
		{"negative", []EncodeOption{Depth(-1)}, "", true},
		{"negative compact", []EncodeOption{Depth(-3), Formatted(false)}, "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EncodeString(node, tc.opts...)
			if tc.wantErr {
				if !errors.Is(err, ErrEncoding) {
					t.Fatalf("got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		`{"a": [1, 2, {"b": 3}], "c": "x\ty", "d": {"e": null, "f": [[], {}]}}`,
		`[true, false, null, -0.5e-3, 12345678901234567890123]`,
		`"line1\nline2\"quoted\""`,
		`{"unicode": "é€😀", "ctl": "\u0001"}`,
		`42`,
	}
	for _, in := range inputs {
		node, err := parse.ParseString(in)
		if err != nil {
			t.Fatal(err)
		}
		for _, formatted := range []bool{true, false} {
			for _, cs := range []token.Charset{token.UTF8, token.ASCII} {
				s, err := EncodeString(node, Formatted(formatted), EncodeCharset(cs))
				if err != nil {
					t.Fatal(err)
				}
				back, err := parse.ParseString(s, parse.ParseAll(), parse.ParseStrict())
				if err != nil {
					t.Fatalf("%s: %v", s, err)
				}
				if !ir.Equal(node, back) {
					t.Errorf("round trip of %s changed the value: %s", in, s)
				}
				again, _ := EncodeString(node, Formatted(formatted), EncodeCharset(cs))
				if again != s {
					t.Errorf("encoding is not repeatable: %s then %s", s, again)
				}
			}
		}
	}
}

func TestEscaping(t *testing.T) {
	got := MustString(ir.FromString("line1\nline2\"quoted\""))
	if got != `"line1\nline2\"quoted\""` {
		t.Errorf("got %s", got)
	}
	got = MustString(ir.FromString("caf\u00e9 \x7f"), EncodeCharset(token.ASCII))
	if got != "\"caf\\u00e9 \\u007f\"" {
		t.Errorf("got %s", got)
	}
}

func TestCycle(t *testing.T) {
	o := ir.NewObject()
	inner := ir.NewArray()
	o.Set("list", inner)
	inner.Append(ir.FromInt(1), o)

	var buf bytes.Buffer
	err := Encode(o, &buf)
	var ce *CyclicStructureError
	if !errors.As(err, &ce) || !errors.Is(err, ErrCyclic) {
		t.Fatalf("got %v", err)
	}
	if ce.Path != "list[1]" {
		t.Errorf("got path %q", ce.Path)
	}
	if buf.Len() != 0 {
		t.Errorf("partial output written: %q", buf.String())
	}

	self := ir.NewObject()
	self.Set("self", self)
	if _, err := EncodeString(self, Formatted(false)); !errors.Is(err, ErrCyclic) {
		t.Fatalf("got %v", err)
	}
}

func TestSharedSiblings(t *testing.T) {
	shared := ir.FromSlice([]*ir.Node{ir.FromInt(1)})
	o := ir.NewObject()
	o.Set("a", shared)
	o.Set("b", shared)
	o.Set("c", ir.FromSlice([]*ir.Node{shared, shared}))
	got, err := EncodeString(o, Formatted(false))
	if err != nil {
		t.Fatal(err)
	}
	if got != `{"a":[1],"b":[1],"c":[[1],[1]]}` {
		t.Errorf("got %s", got)
	}
}

func TestNonFiniteNumber(t *testing.T) {
	n := ir.FromSlice([]*ir.Node{ir.FromFloat(1), ir.FromFloat(zero() / zero())})
	if _, err := EncodeString(n); !errors.Is(err, ErrEncoding) || !errors.Is(err, ir.ErrNumberRange) {
		t.Errorf("got %v", err)
	}
}

func zero() float64 { return 0 }

func TestTrailingNL(t *testing.T) {
	got := MustString(ir.FromInt(1), TrailingNL(true))
	if got != "1\n" {
		t.Errorf("got %q", got)
	}
}

func TestColors(t *testing.T) {
	old := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = old }()

	got := MustString(sample(), EncodeColors(NewColors()))
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected escape sequences in %q", got)
	}
	plain := MustString(sample(), EncodeColors(nil))
	if strings.Contains(plain, "\x1b[") {
		t.Errorf("unexpected escape sequences in %q", plain)
	}
}
