package libdiff

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/jsondoc/encode"
	"github.com/signadot/jsondoc/parse"
)

func summarize(t *testing.T, from, to string) []string {
	t.Helper()
	a, err := parse.ParseString(from)
	if err != nil {
		t.Fatal(err)
	}
	b, err := parse.ParseString(to)
	if err != nil {
		t.Fatal(err)
	}
	var res []string
	for _, c := range Diff(a, b) {
		res = append(res, c.String())
	}
	return res
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     []string
	}{
		{name: "equal", from: `{"a":[1,2],"b":null}`, to: `{"b":null,"a":[1,2]}`},
		{name: "numbers by value", from: `[1, 2.50]`, to: `[1.0, 2.5]`},
		{name: "scalar", from: `1`, to: `2`, want: []string{"~ .: 1 -> 2"}},
		{name: "type change", from: `{"a":1}`, to: `{"a":"1"}`, want: []string{`~ a: 1 -> "1"`}},
		{
			name: "object keys",
			from: `{"a":1,"b":2,"c":{"d":true}}`,
			to:   `{"c":{"d":false},"a":1,"e":null}`,
			want: []string{
				"- b: 2",
				"~ c.d: true -> false",
				"+ e: null",
			},
		},
		{
			name: "array insert front",
			from: `[1,2,3]`,
			to:   `[0,1,2,3]`,
			want: []string{"+ [0]: 0"},
		},
		{
			name: "array delete and replace",
			from: `["a","b","c","d"]`,
			to:   `["a","x","d"]`,
			want: []string{
				`~ [1]: "b" -> "x"`,
				`- [2]: "c"`,
			},
		},
		{
			name: "array nested",
			from: `[{"id":1},{"id":2}]`,
			to:   `[{"id":1},{"id":3}]`,
			want: []string{"~ [1].id: 2 -> 3"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := summarize(t, tc.from, tc.to)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("changes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiffEdit(t *testing.T) {
	base := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 4)
	from, err := parse.ParseString(`{"s":` + `"` + base + `"}`)
	if err != nil {
		t.Fatal(err)
	}
	to, err := parse.ParseString(`{"s":` + `"` + base + `!"}`)
	if err != nil {
		t.Fatal(err)
	}
	changes := Diff(from, to)
	if len(changes) != 1 || changes[0].Op != Edit {
		t.Fatalf("got %v", changes)
	}
	if !strings.HasPrefix(changes[0].Patch, "@@ ") {
		t.Errorf("patch %q", changes[0].Patch)
	}
	out := encode.MustString(ToIR(changes), encode.Formatted(false))
	if !strings.HasPrefix(out, `[{"op":"edit","path":"s","patch":"@@ `) {
		t.Errorf("got %s", out)
	}
}

func TestToIR(t *testing.T) {
	from, _ := parse.ParseString(`{"a":[1]}`)
	to, _ := parse.ParseString(`{"a":[1,2],"b":"x"}`)
	got := encode.MustString(ToIR(Diff(from, to)), encode.Formatted(false))
	want := `[{"op":"insert","path":"a[1]","to":2},{"op":"insert","path":"b","to":"x"}]`
	if got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestUnified(t *testing.T) {
	from := "a\nb\nc\nd\ne\nf\ng\n"
	to := "a\nb\nC\nd\ne\nf\ng\nh\n"
	lines := Lines(from, to)
	if !Changed(lines) {
		t.Fatal("expected change")
	}
	var buf strings.Builder
	if err := Unified(&buf, lines, UnifiedOptions{FromName: "x", ToName: "x (formatted)", Context: 1}); err != nil {
		t.Fatal(err)
	}
	want := `--- x
+++ x (formatted)
@@ -2,3 +2,3 @@
 b
-c
+C
 d
@@ -7,1 +7,2 @@
 g
+h
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("unified mismatch (-want +got):\n%s", diff)
	}
	buf.Reset()
	if err := Unified(&buf, Lines(from, from), UnifiedOptions{}); err != nil || buf.Len() != 0 {
		t.Errorf("got %q %v", buf.String(), err)
	}
}
