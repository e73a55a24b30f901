package main

import (
	"context"
	"slices"

	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/token"
	"go.lsp.dev/protocol"
)

// Completion offers the JSON literals and the keys used elsewhere in the
// document.  A document which does not parse offers keys from its last
// good parse.
func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	items := []protocol.CompletionItem{}
	for _, lit := range []string{"null", "true", "false"} {
		items = append(items, protocol.CompletionItem{
			Label:      lit,
			Kind:       protocol.CompletionItemKindKeyword,
			InsertText: lit,
		})
	}
	root := doc.node
	if root == nil {
		root = s.docs.lastGood(doc.uri)
	}
	for _, key := range documentKeys(root) {
		items = append(items, protocol.CompletionItem{
			Label:      key,
			Kind:       protocol.CompletionItemKindProperty,
			InsertText: token.Quote(key, token.UTF8),
		})
	}
	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// documentKeys lists the distinct object keys under root, sorted.
func documentKeys(root *ir.Node) []string {
	if root == nil {
		return nil
	}
	seen := map[string]bool{}
	root.Visit(func(node *ir.Node, isPost bool) (bool, error) {
		if !isPost && node.Type == ir.ObjectType {
			for _, f := range node.Fields {
				seen[f.String] = true
			}
		}
		return true, nil
	})
	res := make([]string, 0, len(seen))
	for k := range seen {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}
