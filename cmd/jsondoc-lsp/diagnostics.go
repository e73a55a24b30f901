package main

import (
	"context"
	"errors"

	"github.com/signadot/jsondoc/debug"
	"github.com/signadot/jsondoc/token"
	"go.lsp.dev/protocol"
)

func (s *Server) publishDiagnostics(ctx context.Context, doc *document) {
	if s.conn == nil {
		return
	}
	err := s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(doc.uri),
		Diagnostics: diagnostics(doc),
	})
	if err != nil && debug.Parse() {
		debug.Log("op", "publish diagnostics", "uri", doc.uri, "err", err)
	}
}

// diagnostics reports the parse error of doc, if any, at the position
// where parsing stopped.
func diagnostics(doc *document) []protocol.Diagnostic {
	res := []protocol.Diagnostic{}
	if doc.err == nil {
		return res
	}
	d := protocol.Diagnostic{
		Severity: protocol.DiagnosticSeverityError,
		Message:  doc.err.Error(),
		Source:   lsName,
	}
	var se *token.SyntaxError
	if errors.As(doc.err, &se) {
		switch {
		case se.Expected != "" && se.Found != "":
			d.Message = "expected " + se.Expected + ", found " + se.Found
		case se.Expected != "":
			d.Message = "expected " + se.Expected
		case se.Err != nil:
			d.Message = se.Err.Error()
		}
		i := min(se.Pos.I, len(doc.content))
		start := protocol.Position{
			Line:      uint32(max(se.Pos.Line-1, 0)),
			Character: utf16Char(doc.content, i),
		}
		end := start
		end.Character++
		d.Range = protocol.Range{Start: start, End: end}
	}
	return append(res, d)
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := s.docs.put(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, doc)
	return nil
}

// DidChange handles full document sync: the last change holds the whole
// text.
func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	doc := s.docs.put(string(params.TextDocument.URI), text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, doc)
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}
