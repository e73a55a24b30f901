package parse

import (
	"io"
	"strings"

	"github.com/signadot/jsondoc/debug"
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/token"
)

func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := newParseOpts(opts)
	return parseFrom(token.NewBytesReader(d, pOpts.readerOpts()...), pOpts)
}

func ParseString(s string, opts ...ParseOption) (*ir.Node, error) {
	pOpts := newParseOpts(opts)
	return parseFrom(token.NewStringReader(s, pOpts.readerOpts()...), pOpts)
}

func ParseReader(r io.Reader, opts ...ParseOption) (*ir.Node, error) {
	pOpts := newParseOpts(opts)
	return parseFrom(token.NewReader(r, pOpts.readerOpts()...), pOpts)
}

// ParseFrom parses one value from r.  Unless ParseAll is given, the reader
// is left positioned just after the value, so that callers may parse a
// sequence of values from one reader.
func ParseFrom(r *token.Reader, opts ...ParseOption) (*ir.Node, error) {
	return parseFrom(r, newParseOpts(opts))
}

func parseFrom(r *token.Reader, opts *parseOpts) (*ir.Node, error) {
	p := &parser{r: r, opts: opts}
	res, err := p.top()
	if err != nil {
		if debug.Parse() {
			debug.Log("op", "parse", "err", err)
		}
		return nil, err
	}
	return res, nil
}

type parser struct {
	r     *token.Reader
	opts  *parseOpts
	depth int
}

func (p *parser) top() (*ir.Node, error) {
	if err := p.skip(); err != nil {
		return nil, err
	}
	res, err := p.value()
	if err != nil {
		return nil, err
	}
	if !p.opts.all {
		return res, nil
	}
	if err := p.skip(); err != nil {
		return nil, err
	}
	eof, err := p.r.AtEOF()
	if err != nil {
		return nil, err
	}
	if !eof {
		return nil, token.NewSyntaxErr(token.ErrTrailing, p.r.Pos())
	}
	return res, nil
}

func (p *parser) skip() error {
	if p.opts.strict {
		return p.r.SkipWhitespace()
	}
	return p.r.SkipWhitespaceAndComments()
}

func (p *parser) track(node *ir.Node, pos *token.Pos) {
	if p.opts.positions != nil && pos != nil {
		p.opts.positions[node] = pos
	}
}

func (p *parser) startPos() *token.Pos {
	if p.opts.positions == nil {
		return nil
	}
	pos := p.r.Pos()
	return &pos
}

func (p *parser) value() (*ir.Node, error) {
	c, err := p.r.Peek()
	if err != nil {
		return nil, err
	}
	pos := p.startPos()
	var res *ir.Node
	switch {
	case c == token.EOF:
		return nil, token.NewSyntaxErr(token.ErrEOF, p.r.Pos())
	case c == '{':
		res, err = p.object()
	case c == '[':
		res, err = p.array()
	case c == '"':
		var s string
		s, err = p.r.ReadQuoted()
		res = ir.FromString(s)
	case c == '-' || (c >= '0' && c <= '9'):
		var (
			lit     string
			isFloat bool
		)
		lit, isFloat, err = p.r.ReadNumber()
		res = ir.FromLiteral(lit, isFloat)
	default:
		res, err = p.literal(c)
	}
	if err != nil {
		return nil, err
	}
	p.track(res, pos)
	return res, nil
}

var literals = []struct {
	text string
	node func() *ir.Node
}{
	{"true", func() *ir.Node { return ir.FromBool(true) }},
	{"false", func() *ir.Node { return ir.FromBool(false) }},
	{"null", ir.Null},
}

func (p *parser) literal(c rune) (*ir.Node, error) {
	for _, lit := range literals {
		if c != rune(lit.text[0]) {
			continue
		}
		ok, err := p.r.Consume(lit.text)
		if err != nil {
			return nil, err
		}
		if ok {
			return lit.node(), nil
		}
		break
	}
	return nil, token.UnexpectedErr(unexpected(p.r, c), p.r.Pos())
}

// unexpected describes the input at the cursor for error messages.  Bare
// words are reported whole.
func unexpected(r *token.Reader, c rune) string {
	if !isWordRune(c) {
		return "character " + token.Describe(c)
	}
	m := r.Mark()
	defer r.Reset(m)
	b := &strings.Builder{}
	for b.Len() < 16 {
		c, err := r.Peek()
		if err != nil || !isWordRune(c) {
			break
		}
		if _, err := r.Advance(); err != nil {
			break
		}
		b.WriteRune(c)
	}
	return "word " + "`" + b.String() + "`"
}

func isWordRune(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (p *parser) enter() error {
	p.depth++
	if p.opts.maxDepth > 0 && p.depth > p.opts.maxDepth {
		return depthErr(p.opts.maxDepth, p.r.Pos())
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

// members parses the comma separated members of a container up to and
// including the closing delimiter close, calling member for each one.
func (p *parser) members(close byte, member func() error) error {
	if err := p.enter(); err != nil {
		return err
	}
	defer p.leave()
	// opening delimiter
	if _, err := p.r.Advance(); err != nil {
		return err
	}
	if err := p.skip(); err != nil {
		return err
	}
	closing := string([]byte{close})
	if ok, err := p.r.Consume(closing); err != nil || ok {
		return err
	}
	for {
		if err := member(); err != nil {
			return err
		}
		if err := p.skip(); err != nil {
			return err
		}
		ok, err := p.r.Consume(",")
		if err != nil {
			return err
		}
		if !ok {
			if ok, err := p.r.Consume(closing); err != nil || ok {
				return err
			}
			return expected("',' or '"+closing+"'", p.r)
		}
		if err := p.skip(); err != nil {
			return err
		}
		if p.opts.strict {
			continue
		}
		if ok, err := p.r.Consume(closing); err != nil || ok {
			return err
		}
	}
}

func (p *parser) object() (*ir.Node, error) {
	res := ir.NewObject()
	err := p.members('}', func() error {
		c, err := p.r.Peek()
		if err != nil {
			return err
		}
		if c != '"' {
			return expected("string key", p.r)
		}
		keyPos := p.startPos()
		key, err := p.r.ReadQuoted()
		if err != nil {
			return err
		}
		if err := p.skip(); err != nil {
			return err
		}
		if err := p.r.Expect(':'); err != nil {
			return err
		}
		if err := p.skip(); err != nil {
			return err
		}
		v, err := p.value()
		if err != nil {
			return err
		}
		if err := res.Set(key, v); err != nil {
			return err
		}
		// a repeated key keeps the position of its first occurrence
		if f := res.Fields[v.ParentIndex]; p.opts.positions != nil && p.opts.positions[f] == nil {
			p.track(f, keyPos)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (p *parser) array() (*ir.Node, error) {
	res := ir.NewArray()
	err := p.members(']', func() error {
		v, err := p.value()
		if err != nil {
			return err
		}
		return res.Append(v)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Valid reports whether d holds exactly one JSON value.
func Valid(d []byte, opts ...ParseOption) bool {
	_, err := Parse(d, append(opts, ParseAll())...)
	return err == nil
}
