package gomap

import (
	"encoding"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/signadot/jsondoc/debug"
	"github.com/signadot/jsondoc/element"
	"github.com/signadot/jsondoc/encode"
	"github.com/signadot/jsondoc/ir"
)

// MaxSerializeDepth bounds the number of ToJSON and registered serializer
// conversions applied to a single value before it must reach a built-in
// type.
const MaxSerializeDepth = 8

// Serializable is implemented by types which convert themselves into a
// serializable value, such as an *ir.Node, a map or a built-in type.
type Serializable interface {
	ToJSON() (any, error)
}

var serializableType = reflect.TypeFor[Serializable]()

type visitKey struct {
	ptr uintptr
	t   reflect.Type
}

type serializer struct {
	r       *Registry
	visited map[visitKey]string
}

// Serialize converts v into a document node using r, or the default
// registry if r is nil.
//
// Resolution order for each value:
//  1. a ToJSON method, applied repeatedly while the result has one
//  2. built-in types: nil, *ir.Node, ir.Node, element.Element, bool,
//     numbers, strings, decimal.Decimal, json.Number, slices, arrays, maps
//     and pointers
//  3. a serializer registered for exactly the type of v
//  4. encoding.TextMarshaler
//
// Map keys which are not strings are converted with MarshalText when
// available and fmt otherwise; the resulting object has sorted keys.
// Values which reference themselves through pointers, maps or slices fail
// with an *encode.CyclicStructureError.
func (r *Registry) Serialize(v any) (*ir.Node, error) {
	if r == nil {
		r = Default()
	}
	s := &serializer{r: r, visited: map[visitKey]string{}}
	return s.value(v, "")
}

func (s *serializer) value(v any, path string) (*ir.Node, error) {
	return s.reduce(v, path, 0)
}

func (s *serializer) reduce(v any, path string, step int) (*ir.Node, error) {
	for ; ; step++ {
		if step > MaxSerializeDepth {
			return nil, &MarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("%T not reduced to a built-in type after %d conversions", v, MaxSerializeDepth),
				Err:       ErrNoConverge,
			}
		}
		if isNilPointer(v) {
			return ir.Null(), nil
		}
		if sv, ok := asSerializable(v); ok {
			if rv := reflect.ValueOf(v); isReference(rv) {
				// the result of ToJSON may hold v itself
				next := step + 1
				return s.visit(rv, path, func() (*ir.Node, error) {
					res, err := toJSON(sv, v, path)
					if err != nil {
						return nil, err
					}
					return s.reduce(res, path, next)
				})
			}
			res, err := toJSON(sv, v, path)
			if err != nil {
				return nil, err
			}
			v = res
			continue
		}
		if n, ok, err := s.builtin(v, path); ok {
			return n, err
		}
		if f := s.r.serializer(reflect.TypeOf(v)); f != nil {
			next, err := f(v)
			if err != nil {
				return nil, &MarshalError{FieldPath: path, Message: fmt.Sprintf("serializer for %T: %v", v, err), Err: err}
			}
			if debug.Registry() {
				debug.Log("op", "serialize", "via", "registry", "type", fmt.Sprintf("%T", v), "path", path)
			}
			v = next
			continue
		}
		if tm, ok := v.(encoding.TextMarshaler); ok {
			d, err := tm.MarshalText()
			if err != nil {
				return nil, &MarshalError{FieldPath: path, Message: err.Error(), Err: err}
			}
			return ir.FromString(string(d)), nil
		}
		return nil, &UnsupportedTypeError{Type: reflect.TypeOf(v), Serialize: true, FieldPath: path}
	}
}

func toJSON(sv Serializable, v any, path string) (any, error) {
	res, err := sv.ToJSON()
	if err != nil {
		return nil, &MarshalError{FieldPath: path, Message: fmt.Sprintf("ToJSON of %T: %v", v, err), Err: err}
	}
	if debug.Registry() {
		debug.Log("op", "serialize", "via", "ToJSON", "type", fmt.Sprintf("%T", v), "path", path)
	}
	return res, nil
}

// isReference reports whether rv can be reached again from inside itself.
func isReference(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map:
		return !rv.IsNil()
	case reflect.Slice:
		return rv.Len() > 0
	}
	return false
}

// detached returns n, or a copy of n when n already belongs to a document.
func detached(n *ir.Node) *ir.Node {
	if n == nil || n.Parent == nil {
		return n
	}
	return n.Clone()
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// asSerializable finds a ToJSON method on v, or on a pointer to a copy of
// v.
func asSerializable(v any) (Serializable, bool) {
	if sv, ok := v.(Serializable); ok {
		return sv, true
	}
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer || !reflect.PointerTo(rv.Type()).Implements(serializableType) {
		return nil, false
	}
	p := reflect.New(rv.Type())
	p.Elem().Set(rv)
	return p.Interface().(Serializable), true
}

func (s *serializer) builtin(v any, path string) (*ir.Node, bool, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), true, nil
	case *ir.Node:
		return detached(x), true, nil
	case ir.Node:
		return x.Clone(), true, nil
	case element.Element:
		n, _, err := x.Node()
		if err != nil {
			return nil, true, &MarshalError{FieldPath: path, Message: err.Error(), Err: err}
		}
		if n == nil {
			return ir.Null(), true, nil
		}
		return detached(n), true, nil
	case decimal.Decimal:
		return ir.FromDecimal(x), true, nil
	case json.Number:
		n, err := ir.FromNumber(string(x))
		if err != nil {
			return nil, true, &MarshalError{FieldPath: path, Message: err.Error(), Err: err}
		}
		return n, true, nil
	}
	rv := reflect.ValueOf(v)
	if !reserved[rv.Type()] && s.r.serializer(rv.Type()) != nil {
		return nil, false, nil
	}
	switch rv.Kind() {
	case reflect.Bool:
		return ir.FromBool(rv.Bool()), true, nil
	case reflect.String:
		return ir.FromString(rv.String()), true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(rv.Int()), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return ir.FromUint(rv.Uint()), true, nil
	case reflect.Float32, reflect.Float64:
		n, err := fromFloat(rv.Float(), rv.Type().Bits(), path)
		return n, true, err
	case reflect.Pointer:
		n, err := s.visit(rv, path, func() (*ir.Node, error) {
			return s.value(rv.Elem().Interface(), path)
		})
		return n, true, err
	case reflect.Slice:
		if rv.IsNil() {
			return ir.Null(), true, nil
		}
		if rv.Len() == 0 {
			return ir.NewArray(), true, nil
		}
		n, err := s.visit(rv, path, func() (*ir.Node, error) {
			return s.sequence(rv, path)
		})
		return n, true, err
	case reflect.Array:
		n, err := s.sequence(rv, path)
		return n, true, err
	case reflect.Map:
		if rv.IsNil() {
			return ir.Null(), true, nil
		}
		n, err := s.visit(rv, path, func() (*ir.Node, error) {
			return s.mapping(rv, path)
		})
		return n, true, err
	}
	return nil, false, nil
}

func fromFloat(f float64, bits int, path string) (*ir.Node, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, &MarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("%v has no JSON representation", f),
			Err:       ir.ErrNumberRange,
		}
	}
	if bits == 32 {
		// shortest text which reads back as the same float32
		return ir.FromNumber(strconv.FormatFloat(f, 'g', -1, 32))
	}
	return ir.FromFloat(f), nil
}

// visit guards against reference cycles while f serializes rv.
func (s *serializer) visit(rv reflect.Value, path string, f func() (*ir.Node, error)) (*ir.Node, error) {
	key := visitKey{ptr: rv.Pointer(), t: rv.Type()}
	if _, ok := s.visited[key]; ok {
		return nil, &encode.CyclicStructureError{Path: path}
	}
	s.visited[key] = path
	defer delete(s.visited, key)
	return f()
}

func (s *serializer) sequence(rv reflect.Value, path string) (*ir.Node, error) {
	vals := make([]*ir.Node, rv.Len())
	for i := range vals {
		n, err := s.value(rv.Index(i).Interface(), joinIndex(path, i))
		if err != nil {
			return nil, err
		}
		vals[i] = n
	}
	return ir.FromSlice(vals), nil
}

func (s *serializer) mapping(rv reflect.Value, path string) (*ir.Node, error) {
	kvs := make([]ir.KeyVal, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k, err := mapKey(iter.Key(), path)
		if err != nil {
			return nil, err
		}
		n, err := s.value(iter.Value().Interface(), joinField(path, k))
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, ir.KeyVal{Key: k, Val: n})
	}
	sort.SliceStable(kvs, func(i, j int) bool { return kvs[i].Key < kvs[j].Key })
	return ir.FromKeyVals(kvs), nil
}

func mapKey(k reflect.Value, path string) (string, error) {
	switch k.Kind() {
	case reflect.Interface, reflect.Pointer:
		if k.IsNil() {
			return "", &MarshalError{FieldPath: path, Message: "nil map key", Err: ErrIllegalArgument}
		}
	case reflect.String:
		if _, ok := k.Interface().(encoding.TextMarshaler); !ok {
			return k.String(), nil
		}
	}
	ki := k.Interface()
	if tm, ok := ki.(encoding.TextMarshaler); ok {
		d, err := tm.MarshalText()
		if err != nil {
			return "", &MarshalError{FieldPath: path, Message: err.Error(), Err: err}
		}
		return string(d), nil
	}
	return fmt.Sprint(ki), nil
}
