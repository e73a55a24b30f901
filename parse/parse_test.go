package parse

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/token"
)

type parseTest struct {
	in   string
	want *ir.Node
}

func kv(k string, v *ir.Node) ir.KeyVal { return ir.KeyVal{Key: k, Val: v} }

func TestParseOK(t *testing.T) {
	pts := []parseTest{
		{in: `null`, want: ir.Null()},
		{in: `true`, want: ir.FromBool(true)},
		{in: `false`, want: ir.FromBool(false)},
		{in: `22`, want: ir.FromInt(22)},
		{in: `-1.5e3`, want: ir.FromInt(-1500)},
		{in: `"hello"`, want: ir.FromString("hello")},
		{in: `"a\"b\\c\/\né"`, want: ir.FromString("a\"b\\c/\né")},
		{in: `[]`, want: ir.NewArray()},
		{in: `{}`, want: ir.NewObject()},
		{in: `[1,[2,[3]]]`, want: ir.FromSlice([]*ir.Node{
			ir.FromInt(1),
			ir.FromSlice([]*ir.Node{ir.FromInt(2), ir.FromSlice([]*ir.Node{ir.FromInt(3)})}),
		})},
		{in: ` { "a" : 1 , "b" : [ true , null ] } `, want: ir.FromKeyVals([]ir.KeyVal{
			kv("a", ir.FromInt(1)),
			kv("b", ir.FromSlice([]*ir.Node{ir.FromBool(true), ir.Null()})),
		})},
		{in: "{ // c\n \"a\": 1, }", want: ir.FromKeyVals([]ir.KeyVal{kv("a", ir.FromInt(1))})},
		{in: "[1, /* two */ 2,]", want: ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})},
		{in: "/* lead */ 7 // trail\n", want: ir.FromInt(7)},
		{in: `{"a": 1, "a": 2}`, want: ir.FromKeyVals([]ir.KeyVal{kv("a", ir.FromInt(2))})},
	}
	for _, pt := range pts {
		t.Run(pt.in, func(t *testing.T) {
			got, err := ParseString(pt.in)
			if err != nil {
				t.Fatal(err)
			}
			if !ir.Equal(got, pt.want) {
				t.Errorf("got %+v", got)
			}
		})
	}
}

func TestCommentsEquivalent(t *testing.T) {
	a, err := ParseString("{ // c\n \"a\": 1, }")
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseString(`{"a":1}`)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(a, b) {
		t.Error("comments and trailing comma changed the value")
	}
}

func TestKeyOrder(t *testing.T) {
	node, err := ParseString(`{"z": 1, "a": 2, "m": 3, "a": 4}`)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"z", "a", "m"}, node.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
}

func TestNumbersKeepText(t *testing.T) {
	node, err := ParseString(`[12345678901234567890123, 1.50, -0]`)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, v := range node.Values {
		s, err := v.NumberText()
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, s)
	}
	if diff := cmp.Diff([]string{"12345678901234567890123", "1.50", "-0"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		opts      []ParseOption
		err       error
		line, col int
		expected  string
	}{
		{name: "empty", in: "", err: token.ErrEOF, line: 1, col: 1},
		{name: "only whitespace", in: "  \n ", err: token.ErrEOF, line: 2, col: 2},
		{name: "only comment", in: "/* x */", err: token.ErrEOF, line: 1, col: 8},
		{name: "unterminated comment", in: "[1 /* x", err: token.ErrUnterminated, line: 1, col: 4},
		{name: "missing comma", in: "[1 2]", line: 1, col: 4, expected: "',' or ']'"},
		{name: "missing brace", in: "{\n\"a\": 1\n", line: 3, col: 1, expected: "',' or '}'"},
		{name: "missing colon", in: `{"a" 1}`, line: 1, col: 6, expected: "':'"},
		{name: "unquoted key", in: `{a: 1}`, line: 1, col: 2, expected: "string key"},
		{name: "double trailing comma", in: `[1,,]`, line: 1, col: 4},
		{name: "lone comma", in: `[,]`, line: 1, col: 2},
		{name: "bad literal", in: `tru`, line: 1, col: 1},
		{name: "bad character", in: `@`, line: 1, col: 1},
		{name: "single quote", in: `{'a': 1}`, line: 1, col: 2, expected: "string key"},
		{name: "bad escape", in: `"\q"`, err: token.ErrBadEscape},
		{name: "unterminated string", in: `"abc`, err: token.ErrUnterminated, line: 1, col: 1},
		{name: "leading zero", in: `01`, err: token.ErrNumberLeadingZero, line: 1, col: 1},
		{name: "trailing with ParseAll", in: `1 2`, opts: []ParseOption{ParseAll()}, err: token.ErrTrailing, line: 1, col: 3},
		{name: "strict comment", in: `[1 /* c */]`, opts: []ParseOption{ParseStrict()}, line: 1, col: 4, expected: "',' or ']'"},
		{name: "strict trailing comma", in: `[1,]`, opts: []ParseOption{ParseStrict()}, line: 1, col: 4},
		{name: "depth", in: `[[[1]]]`, opts: []ParseOption{ParseMaxDepth(2)}, err: ErrDepth, line: 1, col: 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			node, err := ParseString(tc.in, tc.opts...)
			if node != nil {
				t.Fatalf("failed parse returned a node")
			}
			if !errors.Is(err, token.ErrSyntax) {
				t.Fatalf("got %v, want a syntax error", err)
			}
			if tc.err != nil && !errors.Is(err, tc.err) {
				t.Fatalf("got %v want %v", err, tc.err)
			}
			var se *token.SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("got %T", err)
			}
			if tc.line != 0 && (se.Pos.Line != tc.line || se.Pos.Col != tc.col) {
				t.Errorf("got position %s, want %d:%d (%v)", se.Pos.Short(), tc.line, tc.col, err)
			}
			if tc.expected != "" && se.Expected != tc.expected {
				t.Errorf("got expected %q want %q", se.Expected, tc.expected)
			}
		})
	}
}

func TestEmptyMessage(t *testing.T) {
	_, err := ParseString("")
	if err == nil || !strings.Contains(err.Error(), "reached end of input during parsing") {
		t.Fatalf("got %v", err)
	}
}

func TestTrailingNotConsumed(t *testing.T) {
	r := token.NewStringReader(`{"a":1} [2]`)
	first, err := ParseFrom(r)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ParseFrom(r)
	if err != nil {
		t.Fatal(err)
	}
	if first.Type != ir.ObjectType || second.Type != ir.ArrayType {
		t.Errorf("got %s then %s", first.Type, second.Type)
	}
	if _, err := ParseFrom(r); !errors.Is(err, token.ErrEOF) {
		t.Errorf("got %v", err)
	}
}

func TestParseReader(t *testing.T) {
	in := `{"list": [1, 2, 3], "nested": {"deep": "value"}}`
	node, err := ParseReader(iotest.OneByteReader(strings.NewReader(in)), WithFilename("x.json"))
	if err != nil {
		t.Fatal(err)
	}
	v, err := node.GetKPath("nested.deep")
	if err != nil || v.String != "value" {
		t.Fatalf("got %v %v", v, err)
	}

	_, err = ParseReader(strings.NewReader(`{"a" 1}`), WithFilename("x.json"))
	var se *token.SyntaxError
	if !errors.As(err, &se) || se.Pos.Filename != "x.json" {
		t.Fatalf("got %v", err)
	}
}

func TestParsePositions(t *testing.T) {
	m := map[*ir.Node]*token.Pos{}
	node, err := ParseString("{\n  \"a\": [10, 20]\n}", ParsePositions(m))
	if err != nil {
		t.Fatal(err)
	}
	twenty, _ := node.GetKPath("a[1]")
	pos := m[twenty]
	if pos == nil {
		t.Fatal("no position recorded")
	}
	if pos.Line != 2 || pos.Col != 13 {
		t.Errorf("got %s", pos.Short())
	}
	if m[node].Line != 1 {
		t.Errorf("root at %s", m[node].Short())
	}
	key := m[node.Fields[0]]
	if key == nil || key.Line != 2 || key.Col != 3 {
		t.Errorf("key position %v", key)
	}
}

func TestValid(t *testing.T) {
	if !Valid([]byte(" [1] // ok\n")) {
		t.Error("expected valid")
	}
	if Valid([]byte("[1] x")) {
		t.Error("expected invalid")
	}
}
