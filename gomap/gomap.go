package gomap

import (
	"bytes"
	"reflect"

	"github.com/signadot/jsondoc/element"
	"github.com/signadot/jsondoc/encode"
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/parse"
)

// ToIR converts a Go value to a document node.
func ToIR(v any, opts ...MapOption) (*ir.Node, error) {
	return newMapConfig(opts).Registry.Serialize(v)
}

// ToJSON converts a Go value to JSON text.
func ToJSON(v any, opts ...MapOption) ([]byte, error) {
	cfg := newMapConfig(opts)
	node, err := cfg.Registry.Serialize(v)
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf, cfg.EncodeOptions...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromIR stores the value of node in the value pointed to by v, which must
// be a non-nil pointer.
func FromIR(node *ir.Node, v any, opts ...UnmapOption) error {
	return fromElement(element.Of(node), v, newUnmapConfig(opts))
}

// FromJSON parses data and stores the result in the value pointed to by v,
// which must be a non-nil pointer.
func FromJSON(data []byte, v any, opts ...UnmapOption) error {
	cfg := newUnmapConfig(opts)
	node, err := parse.Parse(data, cfg.ParseOptions...)
	if err != nil {
		return err
	}
	return fromElement(element.Of(node), v, cfg)
}

func fromElement(el element.Element, v any, cfg *unmapConfig) error {
	if v == nil {
		return &UnmarshalError{Message: "destination must be a non-nil pointer, got nil"}
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer || val.IsNil() {
		return &UnmarshalError{Message: "destination must be a non-nil pointer, got " + val.Type().String()}
	}
	res, err := cfg.Registry.decode(val.Type().Elem(), el, "")
	if err != nil {
		return err
	}
	val.Elem().Set(res)
	return nil
}
