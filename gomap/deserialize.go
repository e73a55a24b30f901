package gomap

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/signadot/jsondoc/debug"
	"github.com/signadot/jsondoc/element"
	"github.com/signadot/jsondoc/ir"
)

// Deserializable is implemented by types which build themselves from an
// Element.  It is called on a pointer to a zero value.
type Deserializable interface {
	FromJSON(element.Element) error
}

var deserializableType = reflect.TypeFor[Deserializable]()

// Deserialize converts el into a T using r, or the default registry if r is
// nil.
//
// Resolution order:
//  1. built-in types: bool, string, numeric types, *ir.Node, ir.Node,
//     element.Element, decimal.Decimal, json.Number and any
//  2. a deserializer registered for exactly T
//  3. a FromJSON method on *T
//  4. slices, arrays and maps with string keys, element by element
//  5. pointers, where null gives nil
//  6. a constructor declared for T
//  7. named types whose underlying type is a built-in kind
//
// Deserializing an absent Element without a default returns an
// *EmptyValueError.
func Deserialize[T any](r *Registry, el element.Element) (T, error) {
	var zero T
	if r == nil {
		r = Default()
	}
	v, err := r.decode(reflect.TypeFor[T](), el, "")
	if err != nil {
		return zero, err
	}
	res, _ := v.Interface().(T)
	return res, nil
}

// DeserializeType is Deserialize for a type known only at run time.
func (r *Registry) DeserializeType(t reflect.Type, el element.Element) (any, error) {
	if t == nil {
		return nil, &IllegalArgumentError{Message: "nil type"}
	}
	v, err := r.decode(t, el, "")
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// present returns the effective node of el.
func present(t reflect.Type, el element.Element, path string) (*ir.Node, error) {
	n, _, err := el.Node()
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, &EmptyValueError{Type: t, FieldPath: path}
	}
	return n, nil
}

func (r *Registry) decode(t reflect.Type, el element.Element, path string) (reflect.Value, error) {
	n, err := present(t, el, path)
	if err != nil {
		return reflect.Value{}, err
	}
	if debug.Registry() {
		debug.Log("op", "deserialize", "type", t.String(), "path", path, "node", n.Type.String())
	}
	if reserved[t] {
		return r.decodeReserved(t, el, n, path)
	}
	if f := r.deserializer(t); f != nil {
		res, err := f(element.Of(n))
		if err != nil {
			return reflect.Value{}, wrapUnmarshal(path, err)
		}
		return assignable(t, res, path)
	}
	if reflect.PointerTo(t).Implements(deserializableType) {
		p := reflect.New(t)
		if err := p.Interface().(Deserializable).FromJSON(element.Of(n)); err != nil {
			return reflect.Value{}, wrapUnmarshal(path, err)
		}
		return p.Elem(), nil
	}
	switch t.Kind() {
	case reflect.Slice:
		return r.decodeSlice(t, n, path)
	case reflect.Array:
		return r.decodeArray(t, n, path)
	case reflect.Map:
		return r.decodeMap(t, n, path)
	}
	if t.Kind() == reflect.Pointer {
		if n.Type == ir.NullType {
			return reflect.Zero(t), nil
		}
		elem, err := r.decode(t.Elem(), element.Of(n), path)
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(elem)
		return p, nil
	}
	if c := r.ctor(t); c != nil {
		res, err := c.construct(r, n, path)
		if err != nil {
			return reflect.Value{}, err
		}
		return assignable(t, res, path)
	}
	if isBasicKind(t.Kind()) {
		return decodeBasic(t, n, path)
	}
	return reflect.Value{}, &UnsupportedTypeError{Type: t, FieldPath: path}
}

func wrapUnmarshal(path string, err error) error {
	var ue *UnmarshalError
	if path == "" || errors.As(err, &ue) {
		return err
	}
	return &UnmarshalError{FieldPath: path, Message: err.Error(), Err: err}
}

func assignable(t reflect.Type, res any, path string) (reflect.Value, error) {
	if res == nil {
		return reflect.Zero(t), nil
	}
	v := reflect.ValueOf(res)
	if !v.Type().AssignableTo(t) {
		return reflect.Value{}, &UnmarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("deserializer for %s returned %s", t, v.Type()),
		}
	}
	return v, nil
}

func (r *Registry) decodeReserved(t reflect.Type, el element.Element, n *ir.Node, path string) (reflect.Value, error) {
	switch t {
	case reflect.TypeFor[*ir.Node]():
		return reflect.ValueOf(n), nil
	case reflect.TypeFor[ir.Node]():
		return reflect.ValueOf(*n), nil
	case reflect.TypeFor[element.Element]():
		return reflect.ValueOf(el), nil
	case reflect.TypeFor[any]():
		res := reflect.New(t).Elem()
		if v := ir.ToAny(n); v != nil {
			res.Set(reflect.ValueOf(v))
		}
		return res, nil
	case reflect.TypeFor[decimal.Decimal]():
		d, err := n.Decimal()
		if err != nil {
			return reflect.Value{}, wrapUnmarshal(path, err)
		}
		return reflect.ValueOf(d), nil
	case reflect.TypeFor[json.Number]():
		s, err := n.NumberText()
		if err != nil {
			return reflect.Value{}, wrapUnmarshal(path, err)
		}
		return reflect.ValueOf(json.Number(s)), nil
	}
	return decodeBasic(t, n, path)
}

func isBasicKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// decodeBasic converts a scalar node into a value of a basic kind,
// rejecting values which do not fit.  An int32 (rune) may also be read from
// a string holding exactly one character.
func decodeBasic(t reflect.Type, n *ir.Node, path string) (reflect.Value, error) {
	v := reflect.New(t).Elem()
	op := "deserialize " + t.String()
	switch t.Kind() {
	case reflect.Bool:
		if n.Type != ir.BoolType {
			return v, &ir.TypeMismatchError{Op: op, Expected: "Bool", Got: n.Type, Path: path}
		}
		v.SetBool(n.Bool)
	case reflect.String:
		if n.Type != ir.StringType {
			return v, &ir.TypeMismatchError{Op: op, Expected: "String", Got: n.Type, Path: path}
		}
		v.SetString(n.String)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if t.Kind() == reflect.Int32 && n.Type == ir.StringType {
			if utf8.RuneCountInString(n.String) != 1 {
				return v, &UnmarshalError{
					FieldPath: path,
					Message:   fmt.Sprintf("cannot read a character from %q", n.String),
					Err:       ir.ErrTypeMismatch,
				}
			}
			c, _ := utf8.DecodeRuneInString(n.String)
			v.SetInt(int64(c))
			return v, nil
		}
		i, err := n.AsInt64()
		if err != nil {
			return v, wrapUnmarshal(path, err)
		}
		if v.OverflowInt(i) {
			return v, rangeErr(t, n, path)
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, err := n.AsUint64()
		if err != nil {
			return v, wrapUnmarshal(path, err)
		}
		if v.OverflowUint(u) {
			return v, rangeErr(t, n, path)
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := n.AsFloat64()
		if err != nil {
			return v, wrapUnmarshal(path, err)
		}
		if v.OverflowFloat(f) {
			return v, rangeErr(t, n, path)
		}
		v.SetFloat(f)
	default:
		return v, &UnsupportedTypeError{Type: t, FieldPath: path}
	}
	return v, nil
}

func rangeErr(t reflect.Type, n *ir.Node, path string) error {
	text, _ := n.NumberText()
	return &UnmarshalError{
		FieldPath: path,
		Message:   fmt.Sprintf("%s does not fit in %s", text, t),
		Err:       ir.ErrNumberRange,
	}
}

func (r *Registry) decodeSlice(t reflect.Type, n *ir.Node, path string) (reflect.Value, error) {
	if n.Type == ir.NullType {
		return reflect.Zero(t), nil
	}
	if n.Type != ir.ArrayType {
		return reflect.Value{}, &ir.TypeMismatchError{Op: "deserialize " + t.String(), Expected: "Array", Got: n.Type, Path: path}
	}
	res := reflect.MakeSlice(t, len(n.Values), len(n.Values))
	for i, child := range n.Values {
		v, err := r.decode(t.Elem(), element.Of(child), joinIndex(path, i))
		if err != nil {
			return reflect.Value{}, err
		}
		res.Index(i).Set(v)
	}
	return res, nil
}

func (r *Registry) decodeArray(t reflect.Type, n *ir.Node, path string) (reflect.Value, error) {
	if n.Type != ir.ArrayType {
		return reflect.Value{}, &ir.TypeMismatchError{Op: "deserialize " + t.String(), Expected: "Array", Got: n.Type, Path: path}
	}
	if len(n.Values) != t.Len() {
		return reflect.Value{}, &UnmarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("array of length %d cannot fill %s", len(n.Values), t),
			Err:       ir.ErrIndex,
		}
	}
	res := reflect.New(t).Elem()
	for i, child := range n.Values {
		v, err := r.decode(t.Elem(), element.Of(child), joinIndex(path, i))
		if err != nil {
			return reflect.Value{}, err
		}
		res.Index(i).Set(v)
	}
	return res, nil
}

func (r *Registry) decodeMap(t reflect.Type, n *ir.Node, path string) (reflect.Value, error) {
	if t.Key().Kind() != reflect.String {
		return reflect.Value{}, &UnsupportedTypeError{Type: t, FieldPath: path}
	}
	if n.Type == ir.NullType {
		return reflect.Zero(t), nil
	}
	if n.Type != ir.ObjectType {
		return reflect.Value{}, &ir.TypeMismatchError{Op: "deserialize " + t.String(), Expected: "Object", Got: n.Type, Path: path}
	}
	res := reflect.MakeMapWithSize(t, len(n.Fields))
	for i, field := range n.Fields {
		v, err := r.decode(t.Elem(), element.Of(n.Values[i]), joinField(path, field.String))
		if err != nil {
			return reflect.Value{}, err
		}
		res.SetMapIndex(reflect.ValueOf(field.String).Convert(t.Key()), v)
	}
	return res, nil
}
