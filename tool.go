package jsondoc

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"sync"

	"github.com/signadot/jsondoc/element"
	"github.com/signadot/jsondoc/encode"
	"github.com/signadot/jsondoc/gomap"
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/parse"
	"github.com/signadot/jsondoc/token"
)

// Tool carries the settings shared by parsing, printing and mapping.
// Fields are read at call time, so a Tool may be adjusted between calls.
type Tool struct {
	// Indent is the number of spaces per nesting level of formatted output
	Indent int

	// Formatted selects multi-line output
	Formatted bool

	// Charset is the output character set; characters outside it are
	// escaped
	Charset token.Charset

	// Registry holds user serializers and deserializers; nil means
	// gomap.Default()
	Registry *gomap.Registry

	// Colors, when set, colors printed output
	Colors *encode.Colors

	// ParseOptions are passed to every parse
	ParseOptions []parse.ParseOption
}

// NewTool returns a Tool with the default settings: indent 4, formatted,
// UTF-8.
func NewTool() *Tool {
	return &Tool{
		Indent:    encode.DefaultIndent,
		Formatted: true,
		Charset:   token.UTF8,
	}
}

var (
	defaultOnce sync.Once
	defaultTool *Tool
)

// DefaultTool returns the process wide Tool, created on first use.
func DefaultTool() *Tool {
	defaultOnce.Do(func() {
		defaultTool = NewTool()
	})
	return defaultTool
}

func (t *Tool) registry() *gomap.Registry {
	if t.Registry == nil {
		return gomap.Default()
	}
	return t.Registry
}

// EncodeOptions returns the encode options for the current settings.
func (t *Tool) EncodeOptions() ([]encode.EncodeOption, error) {
	if t.Indent < 0 {
		return nil, fmt.Errorf("%w: negative indent %d", gomap.ErrIllegalArgument, t.Indent)
	}
	return []encode.EncodeOption{
		encode.Indent(t.Indent),
		encode.Formatted(t.Formatted),
		encode.EncodeCharset(t.Charset),
		encode.EncodeColors(t.Colors),
	}, nil
}

func (t *Tool) Parse(d []byte) (*ir.Node, error) {
	return parse.Parse(d, t.ParseOptions...)
}

func (t *Tool) ParseString(s string) (*ir.Node, error) {
	return parse.ParseString(s, t.ParseOptions...)
}

// ParseReader parses a document from r.  Input after the document is not
// consumed unless parse.ParseAll is among the ParseOptions.
func (t *Tool) ParseReader(r io.Reader) (*ir.Node, error) {
	return parse.ParseReader(r, t.ParseOptions...)
}

// Element parses d and wraps the result.  A parse failure yields an
// errored Element.
func (t *Tool) Element(d []byte) element.Element {
	node, err := t.Parse(d)
	if err != nil {
		return element.Errored(err)
	}
	return element.Of(node)
}

// Print renders v.  Values other than *ir.Node and element.Element are
// serialized through the registry first.
func (t *Tool) Print(v any) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := t.PrintTo(buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PrintTo renders v to w.  Nothing is written if rendering fails.
func (t *Tool) PrintTo(w io.Writer, v any) error {
	opts, err := t.EncodeOptions()
	if err != nil {
		return err
	}
	node, err := t.Serialize(v)
	if err != nil {
		return err
	}
	return encode.Encode(node, w, opts...)
}

// Serialize converts v to a node.
func (t *Tool) Serialize(v any) (*ir.Node, error) {
	return t.registry().Serialize(v)
}

// Deserialize converts el to a value of type typ.
func (t *Tool) Deserialize(typ reflect.Type, el element.Element) (any, error) {
	return t.registry().DeserializeType(typ, el)
}

// DeserializeAs converts el to a T using the registry of t.
func DeserializeAs[T any](t *Tool, el element.Element) (T, error) {
	return gomap.Deserialize[T](t.registry(), el)
}

// Parse parses d with DefaultTool.
func Parse(d []byte) (*ir.Node, error) {
	return DefaultTool().Parse(d)
}

// Print renders v with DefaultTool.
func Print(v any) (string, error) {
	return DefaultTool().Print(v)
}
