package eval

import (
	"strings"
	"testing"

	"github.com/signadot/jsondoc/encode"
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/parse"
)

func mustParse(t *testing.T, s string) *ir.Node {
	t.Helper()
	n, err := parse.ParseString(s)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func compact(n *ir.Node) string {
	return encode.MustString(n, encode.Formatted(false))
}

func TestEval(t *testing.T) {
	doc := mustParse(t, `{"users":[{"name":"ann","age":40},{"name":"bob","age":30}],"limit":35}`)
	tests := []struct {
		expr string
		want string
	}{
		{`1 + 2`, `3`},
		{`getpath("users[0].name")`, `"ann"`},
		{`getpath("users[1].age") < getpath("limit")`, `true`},
		{`getpath("missing")`, `null`},
		{`haspath("users[2]")`, `false`},
		{`keys("users[0]")`, `["name","age"]`},
		{`map(doc.users, .name)`, `["ann","bob"]`},
		{`filter(doc.users, .age > threshold) | len()`, `1`},
		{`whereami()`, `""`},
		{`{"n": 1.5}`, `{"n":1.5}`},
	}
	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			got, err := Eval(tc.expr, doc, Env{"threshold": 35})
			if err != nil {
				t.Fatal(err)
			}
			if s := compact(got); s != tc.want {
				t.Errorf("got %s want %s", s, tc.want)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	doc := mustParse(t, `{"a":1}`)
	for _, src := range []string{`1 +`, `getpath("a..b")`, `nosuch(1)`} {
		t.Run(src, func(t *testing.T) {
			if _, err := Eval(src, doc, nil); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestEvalSelfContaining(t *testing.T) {
	obj, arr := ir.NewObject(), ir.NewArray()
	if err := obj.Set("a", arr); err != nil {
		t.Fatal(err)
	}
	if err := arr.Append(obj); err != nil {
		t.Fatal(err)
	}
	got, err := Eval(`haspath("[0].a")`, arr, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s := compact(got); s != "true" {
		t.Errorf("got %s", s)
	}
}

func TestExpandString(t *testing.T) {
	doc := mustParse(t, `{"name":"ann","ids":[1,2]}`)
	tests := []struct {
		in, want string
	}{
		{`plain`, `plain`},
		{`hi $[getpath("name")]!`, `hi ann!`},
		{`ids=$[getpath("ids")]`, `ids=[1,2]`},
		{`$[ "a\]" + "\]" ]`, `a]]`},
		{`cost: $5`, `cost: $5`},
		{`open $[1 + 1`, `open $[1 + 1`},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ExpandString(tc.in, doc, nil)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestExpand(t *testing.T) {
	doc := mustParse(t, `{"base":2,"n":"$[getpath(\"base\") * 10]","list":["$[ {\"k\": x} ]","v$[x]"]}`)
	if err := Expand(doc, Env{"x": 7}); err != nil {
		t.Fatal(err)
	}
	want := `{"base":2,"n":20,"list":[{"k":7},"v7"]}`
	if got := compact(doc); got != want {
		t.Errorf("got %s want %s", got, want)
	}
	inner := doc.Get("list").Index(0)
	if inner.Parent != doc.Get("list") || inner.Get("k").Parent != inner {
		t.Error("replacement not attached to the document")
	}
	if got := inner.Get("k").KPath(); got != "list[0].k" {
		t.Errorf("got path %q", got)
	}
}

func TestExpandError(t *testing.T) {
	doc := mustParse(t, `{"a":["$[1 +]"]}`)
	err := Expand(doc, nil)
	if err == nil || !strings.Contains(err.Error(), "a[0]") {
		t.Errorf("got %v", err)
	}
}
