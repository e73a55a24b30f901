package parse

import (
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/token"
)

const DefaultMaxDepth = 10000

type parseOpts struct {
	filename  string
	all       bool
	strict    bool
	maxDepth  int
	positions map[*ir.Node]*token.Pos
}

func newParseOpts(opts []ParseOption) *parseOpts {
	pOpts := &parseOpts{maxDepth: DefaultMaxDepth}
	for _, f := range opts {
		f(pOpts)
	}
	return pOpts
}

func (o *parseOpts) readerOpts() []token.ReaderOption {
	if o.filename == "" {
		return nil
	}
	return []token.ReaderOption{token.WithFilename(o.filename)}
}

type ParseOption func(*parseOpts)

// ParseAll requires the input to hold exactly one value, possibly
// surrounded by whitespace and comments.
func ParseAll() ParseOption {
	return func(o *parseOpts) { o.all = true }
}

// ParseStrict disables comments and trailing commas.
func ParseStrict() ParseOption {
	return func(o *parseOpts) { o.strict = true }
}

// ParseMaxDepth bounds the nesting of objects and arrays.  n <= 0 means
// no bound.
func ParseMaxDepth(n int) ParseOption {
	return func(o *parseOpts) { o.maxDepth = n }
}

// WithFilename names the input in error positions.  It has no effect on
// ParseFrom, whose reader is already constructed.
func WithFilename(name string) ParseOption {
	return func(o *parseOpts) { o.filename = name }
}

// ParsePositions records in m the start position of every parsed value
// and of every object key node.
func ParsePositions(m map[*ir.Node]*token.Pos) ParseOption {
	return func(o *parseOpts) {
		o.positions = m
	}
}

// GetPositions extracts the positions map from the provided options.
func GetPositions(opts ...ParseOption) map[*ir.Node]*token.Pos {
	return newParseOpts(opts).positions
}
