package encode

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/jsondoc/debug"
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/ir/kpath"
	"github.com/signadot/jsondoc/token"
)

type EncState struct {
	depth, indent int
	formatted     bool
	trailingNL    bool
	charset       token.Charset

	// containers being encoded, outermost first, and the path to each
	// member being encoded.
	stack []*ir.Node
	path  []*kpath.KPath

	Color func(ir.Type, ColorAttr, string) string
}

func newEncState(opts []EncodeOption) *EncState {
	es := &EncState{
		indent:    DefaultIndent,
		formatted: true,
	}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// Encode writes node to w.  Nothing is written when encoding fails.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	if es.indent < 0 {
		return fmt.Errorf("%w: negative indent %d", ErrEncoding, es.indent)
	}
	if es.depth < 0 {
		return fmt.Errorf("%w: negative depth %d", ErrEncoding, es.depth)
	}
	buf := bytes.NewBuffer(nil)
	if err := encode(node, buf, es); err != nil {
		if debug.Encode() {
			debug.Log("op", "encode", "err", err)
		}
		return err
	}
	if es.trailingNL {
		buf.WriteByte('\n')
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func EncodeString(node *ir.Node, opts ...EncodeOption) (string, error) {
	buf := &strings.Builder{}
	if err := Encode(node, buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

func writeNL(buf *bytes.Buffer, es *EncState) {
	if !es.formatted {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(" ", es.indent*es.depth))
}

func (es *EncState) push(node *ir.Node) error {
	for _, anc := range es.stack {
		if anc == node {
			var p *kpath.KPath
			for _, seg := range es.path {
				p = p.Append(seg)
			}
			return &CyclicStructureError{Path: p.String()}
		}
	}
	es.stack = append(es.stack, node)
	return nil
}

func (es *EncState) pop() {
	es.stack = es.stack[:len(es.stack)-1]
}

func encode(node *ir.Node, buf *bytes.Buffer, es *EncState) error {
	if node == nil {
		node = ir.Null()
	}
	switch node.Type {
	case ir.NullType:
		buf.WriteString(es.color(ir.NullType, ValueColor, "null"))
	case ir.BoolType:
		s := "false"
		if node.Bool {
			s = "true"
		}
		buf.WriteString(es.color(ir.BoolType, ValueColor, s))
	case ir.NumberType:
		s, err := node.NumberText()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		buf.WriteString(es.color(ir.NumberType, ValueColor, s))
	case ir.StringType:
		buf.WriteString(es.color(ir.StringType, ValueColor, token.Quote(node.String, es.charset)))
	case ir.ArrayType:
		return encodeArray(node, buf, es)
	case ir.ObjectType:
		return encodeObject(node, buf, es)
	default:
		return fmt.Errorf("%w: unknown node type %s", ErrEncoding, node.Type)
	}
	return nil
}

func encodeArray(node *ir.Node, buf *bytes.Buffer, es *EncState) error {
	if err := es.push(node); err != nil {
		return err
	}
	defer es.pop()
	buf.WriteString(es.color(ir.ArrayType, SepColor, "["))
	if len(node.Values) == 0 {
		buf.WriteString(es.color(ir.ArrayType, SepColor, "]"))
		return nil
	}
	es.depth++
	for i, v := range node.Values {
		if i > 0 {
			buf.WriteString(es.color(ir.ArrayType, SepColor, ","))
		}
		writeNL(buf, es)
		es.path = append(es.path, kpath.Idx(i))
		err := encode(v, buf, es)
		es.path = es.path[:len(es.path)-1]
		if err != nil {
			return err
		}
	}
	es.depth--
	writeNL(buf, es)
	buf.WriteString(es.color(ir.ArrayType, SepColor, "]"))
	return nil
}

func encodeObject(node *ir.Node, buf *bytes.Buffer, es *EncState) error {
	if err := es.push(node); err != nil {
		return err
	}
	defer es.pop()
	buf.WriteString(es.color(ir.ObjectType, SepColor, "{"))
	if len(node.Values) == 0 {
		buf.WriteString(es.color(ir.ObjectType, SepColor, "}"))
		return nil
	}
	colon := ":"
	if es.formatted {
		colon = ": "
	}
	es.depth++
	for i, v := range node.Values {
		if i > 0 {
			buf.WriteString(es.color(ir.ObjectType, SepColor, ","))
		}
		writeNL(buf, es)
		key := node.Fields[i].String
		buf.WriteString(es.color(ir.ObjectType, FieldColor, token.Quote(key, es.charset)))
		buf.WriteString(es.color(ir.ObjectType, SepColor, colon))
		es.path = append(es.path, kpath.Field(key))
		err := encode(v, buf, es)
		es.path = es.path[:len(es.path)-1]
		if err != nil {
			return err
		}
	}
	es.depth--
	writeNL(buf, es)
	buf.WriteString(es.color(ir.ObjectType, SepColor, "}"))
	return nil
}
