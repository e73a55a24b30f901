package main

import (
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/parse"
	"github.com/signadot/jsondoc/token"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
	// good holds the last tree which parsed, per document
	good map[string]*ir.Node
}

func newDocumentStore() *documentStore {
	return &documentStore{
		docs: make(map[string]*document),
		good: make(map[string]*ir.Node),
	}
}

// document is an open text document.  When content does not parse, node
// is nil and err holds the parse error.
type document struct {
	uri       string
	content   string
	version   int32
	node      *ir.Node
	err       error
	positions map[*ir.Node]*token.Pos
}

func newDocument(uri, content string, version int32) *document {
	positions := make(map[*ir.Node]*token.Pos)
	node, err := parse.ParseString(content, parse.ParseAll(), parse.ParsePositions(positions))
	return &document{
		uri:       uri,
		content:   content,
		version:   version,
		node:      node,
		err:       err,
		positions: positions,
	}
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) *document {
	doc := newDocument(uri, content, version)
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[uri] = doc
	if doc.node != nil {
		ds.good[uri] = doc.node
	}
	return doc
}

func (ds *documentStore) lastGood(uri string) *ir.Node {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.good[uri]
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
	delete(ds.good, uri)
}

// span is the extent of a token on one line, in UTF-16 code units as
// counted by the protocol.
type span struct {
	line, char, length uint32
}

func (s span) contains(line, char uint32) bool {
	return line == s.line && char >= s.char && char < s.char+s.length
}

// utf16Char is the UTF-16 column of byte offset i in content.
func utf16Char(content string, i int) uint32 {
	start := i
	for start > 0 && content[start-1] != '\n' {
		start--
	}
	n := 0
	for _, r := range content[start:i] {
		n += utf16.RuneLen(r)
	}
	return uint32(n)
}

// tokenSpan locates the source token of node, which starts at pos.
// Containers span their opening bracket.
func (doc *document) tokenSpan(node *ir.Node, pos *token.Pos) span {
	s := span{line: uint32(pos.Line - 1), char: utf16Char(doc.content, pos.I)}
	end := scanToken(doc.content, pos.I, node.Type)
	for _, r := range doc.content[pos.I:end] {
		s.length += uint32(utf16.RuneLen(r))
	}
	return s
}

func scanToken(content string, i int, t ir.Type) int {
	if i >= len(content) {
		return i
	}
	switch t {
	case ir.ObjectType, ir.ArrayType:
		return i + 1
	case ir.StringType:
		j := i + 1
		for j < len(content) {
			switch content[j] {
			case '\\':
				j += 2
				continue
			case '"':
				return j + 1
			}
			j++
		}
		return len(content)
	}
	j := i
	for j < len(content) {
		r, sz := utf8.DecodeRuneInString(content[j:])
		if !isScalarRune(r) {
			break
		}
		j += sz
	}
	return j
}

func isScalarRune(r rune) bool {
	return r == '-' || r == '+' || r == '.' ||
		(r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isKey reports whether node is the key node of an object member.
func isKey(node *ir.Node) bool {
	p := node.Parent
	return p != nil && p.Type == ir.ObjectType &&
		node.ParentIndex < len(p.Fields) && p.Fields[node.ParentIndex] == node
}

// nodeAt returns the innermost node whose token contains the position.
func (doc *document) nodeAt(line, char uint32) *ir.Node {
	var best *ir.Node
	for node, pos := range doc.positions {
		if !doc.tokenSpan(node, pos).contains(line, char) {
			continue
		}
		if best == nil || doc.positions[best].I < pos.I {
			best = node
		}
	}
	return best
}
