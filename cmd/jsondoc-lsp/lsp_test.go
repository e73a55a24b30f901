package main

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.lsp.dev/protocol"
)

const sampleDoc = `{
  "name": "x",
  "n": 12,
  "ok": true
}
`

func TestSemanticTokens(t *testing.T) {
	doc := newDocument("file:///a.json", sampleDoc, 1)
	if doc.err != nil {
		t.Fatal(doc.err)
	}
	want := []uint32{
		1, 2, 6, tokProperty, 0,
		0, 8, 3, tokString, 0,
		1, 2, 3, tokProperty, 0,
		0, 5, 2, tokNumber, 0,
		1, 2, 4, tokProperty, 0,
		0, 6, 4, tokKeyword, 0,
	}
	if diff := cmp.Diff(want, collectSemanticTokens(doc, 0, ^uint32(0))); diff != "" {
		t.Errorf("full (-want +got):\n%s", diff)
	}
	want = []uint32{
		2, 2, 3, tokProperty, 0,
		0, 5, 2, tokNumber, 0,
	}
	if diff := cmp.Diff(want, collectSemanticTokens(doc, 2, 2)); diff != "" {
		t.Errorf("range (-want +got):\n%s", diff)
	}
}

func TestHover(t *testing.T) {
	doc := newDocument("file:///a.json", sampleDoc, 1)
	tests := []struct {
		name       string
		line, char uint32
		want       string
	}{
		{
			name: "key",
			line: 1, char: 4,
			want: "**Type:** string\n\n**Path:** `name`\n\n**Value:** `\"x\"`",
		},
		{
			name: "number",
			line: 2, char: 8,
			want: "**Type:** integer\n\n**Path:** `n`\n\n**Value:** `12`",
		},
		{
			name: "root",
			line: 0, char: 0,
			want: "**Type:** object\n\n**Path:** `.`\n\n**Value:** object with 3 keys",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			node := doc.nodeAt(tc.line, tc.char)
			if node == nil {
				t.Fatal("no node")
			}
			if got := hoverText(node); got != tc.want {
				t.Errorf("got %q want %q", got, tc.want)
			}
		})
	}
	if node := doc.nodeAt(1, 0); node != nil {
		t.Errorf("whitespace resolved to %s", node.KPath())
	}
}

func TestDiagnostics(t *testing.T) {
	doc := newDocument("file:///b.json", "{\n  \"a\" 1\n}", 1)
	ds := diagnostics(doc)
	if len(ds) != 1 {
		t.Fatalf("got %d diagnostics", len(ds))
	}
	d := ds[0]
	if d.Message != "expected ':', found '1'" {
		t.Errorf("message %q", d.Message)
	}
	want := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 6},
		End:   protocol.Position{Line: 1, Character: 7},
	}
	if d.Range != want {
		t.Errorf("range %+v", d.Range)
	}
	if ds := diagnostics(newDocument("file:///c.json", "[]", 1)); len(ds) != 0 {
		t.Errorf("got %v", ds)
	}
}

func TestCompletionUsesLastGood(t *testing.T) {
	s := newServer()
	ctx := context.Background()
	uri := protocol.DocumentURI("file:///d.json")
	err := s.DidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: `{"b": {"a": 1}, "c": [{"a": 2}]}`, Version: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	err = s.DidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument:   protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{{Text: `{"b": `}},
	})
	if err != nil {
		t.Fatal(err)
	}
	list, err := s.Completion(ctx, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, item := range list.Items {
		got = append(got, item.InsertText)
	}
	want := []string{"null", "true", "false", `"a"`, `"b"`, `"c"`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestFormat(t *testing.T) {
	doc := newDocument("file:///e.json", `{"a":[1, 2]}`, 1)
	got, err := format(doc, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"a\": [\n    1,\n    2\n  ]\n}\n"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}
