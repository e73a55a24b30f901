package main

import (
	"context"
	"strings"

	"github.com/signadot/jsondoc"
	"go.lsp.dev/protocol"
)

func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.node == nil {
		return nil, nil
	}
	formatted, err := format(doc, int(params.Options.TabSize))
	if err != nil || formatted == doc.content {
		return []protocol.TextEdit{}, nil
	}
	lines := strings.Count(doc.content, "\n")
	if len(doc.content) > 0 && doc.content[len(doc.content)-1] != '\n' {
		lines++
	}
	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   protocol.Position{Line: uint32(lines), Character: 0},
			},
			NewText: formatted,
		},
	}, nil
}

// format renders doc with tabSize spaces per level, ending with a newline.
func format(doc *document, tabSize int) (string, error) {
	tool := jsondoc.NewTool()
	if tabSize > 0 {
		tool.Indent = tabSize
	}
	res, err := tool.Print(doc.node)
	if err != nil {
		return "", err
	}
	return res + "\n", nil
}
