package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/signadot/jsondoc/encode"
	"github.com/signadot/jsondoc/ir"
	"go.lsp.dev/protocol"
)

const maxHoverValue = 60

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.node == nil {
		return nil, nil
	}
	node := doc.nodeAt(params.Position.Line, params.Position.Character)
	if node == nil {
		return nil, nil
	}
	sp := doc.tokenSpan(node, doc.positions[node])
	rng := protocol.Range{
		Start: protocol.Position{Line: sp.line, Character: sp.char},
		End:   protocol.Position{Line: sp.line, Character: sp.char + sp.length},
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hoverText(node),
		},
		Range: &rng,
	}, nil
}

// hoverText describes the value at node; on a key, the value of the
// member.
func hoverText(node *ir.Node) string {
	if isKey(node) {
		node = node.Parent.Values[node.ParentIndex]
	}
	path := node.KPath()
	if path == "" {
		path = "."
	}
	parts := []string{
		fmt.Sprintf("**Type:** %s", typeInfo(node)),
		fmt.Sprintf("**Path:** `%s`", path),
	}
	if v := valueInfo(node); v != "" {
		parts = append(parts, fmt.Sprintf("**Value:** %s", v))
	}
	return strings.Join(parts, "\n\n")
}

func typeInfo(node *ir.Node) string {
	switch node.Type {
	case ir.NumberType:
		if node.Int64 != nil {
			return "integer"
		}
		return "number"
	case ir.BoolType:
		return "boolean"
	}
	return strings.ToLower(node.Type.String())
}

func valueInfo(node *ir.Node) string {
	switch node.Type {
	case ir.ArrayType:
		return fmt.Sprintf("array with %d elements", len(node.Values))
	case ir.ObjectType:
		return fmt.Sprintf("object with %d keys", len(node.Fields))
	}
	v, err := encode.EncodeString(node, encode.Formatted(false))
	if err != nil {
		return ""
	}
	if r := []rune(v); len(r) > maxHoverValue {
		v = string(r[:maxHoverValue]) + "..."
	}
	return "`" + v + "`"
}
