package main

import (
	"context"
	"sort"

	"github.com/signadot/jsondoc/ir"
	"go.lsp.dev/protocol"
)

// semanticTokenTypes is the legend; a token's type is its index.
var semanticTokenTypes = []protocol.SemanticTokenTypes{
	protocol.SemanticTokenProperty,
	protocol.SemanticTokenString,
	protocol.SemanticTokenNumber,
	protocol.SemanticTokenKeyword,
}

const (
	tokProperty uint32 = iota
	tokString
	tokNumber
	tokKeyword
)

func tokenType(node *ir.Node) (uint32, bool) {
	if isKey(node) {
		return tokProperty, true
	}
	switch node.Type {
	case ir.StringType:
		return tokString, true
	case ir.NumberType:
		return tokNumber, true
	case ir.BoolType, ir.NullType:
		return tokKeyword, true
	}
	return 0, false
}

type tokenInfo struct {
	span
	typ uint32
}

// collectSemanticTokens encodes the tokens of doc on lines first through
// last as relative positions, five integers per token.
func collectSemanticTokens(doc *document, first, last uint32) []uint32 {
	var infos []tokenInfo
	for node, pos := range doc.positions {
		typ, ok := tokenType(node)
		if !ok {
			continue
		}
		sp := doc.tokenSpan(node, pos)
		if sp.line < first || sp.line > last || sp.length == 0 {
			continue
		}
		infos = append(infos, tokenInfo{span: sp, typ: typ})
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].line != infos[j].line {
			return infos[i].line < infos[j].line
		}
		return infos[i].char < infos[j].char
	})
	tokens := make([]uint32, 0, 5*len(infos))
	prevLine, prevChar := uint32(0), uint32(0)
	for _, ti := range infos {
		deltaLine := ti.line - prevLine
		deltaChar := ti.char
		if deltaLine == 0 {
			deltaChar = ti.char - prevChar
		}
		tokens = append(tokens, deltaLine, deltaChar, ti.length, ti.typ, 0)
		prevLine, prevChar = ti.line, ti.char
	}
	return tokens
}

func (s *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.node == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	return &protocol.SemanticTokens{
		Data: collectSemanticTokens(doc, 0, ^uint32(0)),
	}, nil
}

func (s *Server) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.node == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	return &protocol.SemanticTokens{
		Data: collectSemanticTokens(doc, params.Range.Start.Line, params.Range.End.Line),
	}, nil
}
