package gomap

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/signadot/jsondoc/element"
	"github.com/signadot/jsondoc/ir"
)

// Params says where each constructor argument is read from: either named
// keys of an object or indices of an array.
type Params struct {
	keys    []string
	indices []int
	array   bool
}

// Keys reads argument i from key keys[i] of an object.
func Keys(keys ...string) Params {
	return Params{keys: keys}
}

// Indices reads argument i from index idx[i] of an array.  With no idx,
// argument i is read from index i.
func Indices(idx ...int) Params {
	return Params{indices: idx, array: true}
}

func (p Params) IsArray() bool { return p.array }
func (p Params) Keys() []string { return p.keys }
func (p Params) Indices() []int { return p.indices }

func (p Params) String() string {
	switch {
	case !p.array:
		return "keys=" + strings.Join(p.keys, ",")
	case p.indices == nil:
		return "array"
	}
	strs := make([]string, len(p.indices))
	for i, idx := range p.indices {
		strs[i] = strconv.Itoa(idx)
	}
	return "indices=" + strings.Join(strs, ",")
}

func (p Params) check(arity int) error {
	if p.array && p.indices == nil {
		return nil
	}
	n := len(p.keys)
	if p.array {
		n = len(p.indices)
	}
	if n != arity {
		return fmt.Errorf("%s names %d parameters but the constructor takes %d", p, n, arity)
	}
	if p.array {
		seen := map[int]bool{}
		for _, idx := range p.indices {
			if idx < 0 {
				return fmt.Errorf("%s: negative index %d", p, idx)
			}
			if seen[idx] {
				return fmt.Errorf("%s: duplicate index %d", p, idx)
			}
			seen[idx] = true
		}
		return nil
	}
	seen := map[string]bool{}
	for _, k := range p.keys {
		if seen[k] {
			return fmt.Errorf("%s: duplicate key %q", p, k)
		}
		seen[k] = true
	}
	return nil
}

// Ctor is a constructor declared for deserialization, created with Ctor1
// through Ctor4.
type Ctor interface {
	// Type is the type the constructor builds.
	Type() reflect.Type
	Params() Params
	Arity() int

	construct(r *Registry, n *ir.Node, path string) (any, error)
}

type ctor struct {
	out    reflect.Type
	params Params
	args   []reflect.Type
	call   func(d *argDecoder) (any, error)

	once sync.Once
	err  error
}

func (c *ctor) Type() reflect.Type { return c.out }
func (c *ctor) Params() Params     { return c.params }
func (c *ctor) Arity() int         { return len(c.args) }

func (c *ctor) construct(r *Registry, n *ir.Node, path string) (any, error) {
	c.once.Do(func() {
		if err := c.params.check(len(c.args)); err != nil {
			c.err = &IllegalArgumentError{Type: c.out, Message: err.Error()}
		}
	})
	if c.err != nil {
		return nil, c.err
	}
	want := ir.ObjectType
	if c.params.array {
		want = ir.ArrayType
	}
	if n.Type != want {
		return nil, &ir.TypeMismatchError{
			Op:       "construct " + c.out.String(),
			Expected: want.String(),
			Got:      n.Type,
			Path:     path,
		}
	}
	d := &argDecoder{
		r:     r,
		path:  path,
		args:  make([]element.Element, len(c.args)),
		paths: make([]string, len(c.args)),
	}
	for i := range c.args {
		switch {
		case !c.params.array:
			k := c.params.keys[i]
			d.args[i] = element.Of(n.Get(k))
			d.paths[i] = joinField(path, k)
		default:
			idx := i
			if c.params.indices != nil {
				idx = c.params.indices[i]
			}
			d.args[i] = element.Of(n.Index(idx))
			d.paths[i] = joinIndex(path, idx)
		}
	}
	return c.call(d)
}

type argDecoder struct {
	r     *Registry
	path  string
	args  []element.Element
	paths []string
}

// fail wraps an error returned by the constructor function itself.
func (d *argDecoder) fail(err error) error {
	return &UnmarshalError{FieldPath: d.path, Message: err.Error(), Err: err}
}

// arg decodes argument i.  A missing argument of a nilable type is its zero
// value.
func arg[A any](d *argDecoder, i int) (A, error) {
	var zero A
	t := reflect.TypeFor[A]()
	if d.args[i].IsEmpty() && nilable(t) {
		return zero, nil
	}
	v, err := d.r.decode(t, d.args[i], d.paths[i])
	if err != nil {
		return zero, err
	}
	res, _ := v.Interface().(A)
	return res, nil
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return true
	}
	return false
}

func newCtor[T any](p Params, args []reflect.Type, call func(d *argDecoder) (T, error)) *ctor {
	return &ctor{
		out:    reflect.TypeFor[T](),
		params: p,
		args:   args,
		call: func(d *argDecoder) (any, error) {
			return call(d)
		},
	}
}

func Ctor1[T, A any](p Params, f func(A) (T, error)) Ctor {
	types := []reflect.Type{reflect.TypeFor[A]()}
	return newCtor(p, types, func(d *argDecoder) (T, error) {
		var zero T
		a, err := arg[A](d, 0)
		if err != nil {
			return zero, err
		}
		res, err := f(a)
		if err != nil {
			return zero, d.fail(err)
		}
		return res, nil
	})
}

func Ctor2[T, A, B any](p Params, f func(A, B) (T, error)) Ctor {
	types := []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B]()}
	return newCtor(p, types, func(d *argDecoder) (T, error) {
		var zero T
		a, err := arg[A](d, 0)
		if err != nil {
			return zero, err
		}
		b, err := arg[B](d, 1)
		if err != nil {
			return zero, err
		}
		res, err := f(a, b)
		if err != nil {
			return zero, d.fail(err)
		}
		return res, nil
	})
}

func Ctor3[T, A, B, C any](p Params, f func(A, B, C) (T, error)) Ctor {
	types := []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]()}
	return newCtor(p, types, func(d *argDecoder) (T, error) {
		var zero T
		a, err := arg[A](d, 0)
		if err != nil {
			return zero, err
		}
		b, err := arg[B](d, 1)
		if err != nil {
			return zero, err
		}
		c, err := arg[C](d, 2)
		if err != nil {
			return zero, err
		}
		res, err := f(a, b, c)
		if err != nil {
			return zero, d.fail(err)
		}
		return res, nil
	})
}

func Ctor4[T, A, B, C, D any](p Params, f func(A, B, C, D) (T, error)) Ctor {
	types := []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D]()}
	return newCtor(p, types, func(d *argDecoder) (T, error) {
		var zero T
		a, err := arg[A](d, 0)
		if err != nil {
			return zero, err
		}
		b, err := arg[B](d, 1)
		if err != nil {
			return zero, err
		}
		c, err := arg[C](d, 2)
		if err != nil {
			return zero, err
		}
		e, err := arg[D](d, 3)
		if err != nil {
			return zero, err
		}
		res, err := f(a, b, c, e)
		if err != nil {
			return zero, d.fail(err)
		}
		return res, nil
	})
}

// Construct runs c on el.  It is the entry point of generated FromJSON
// methods.
func Construct[T any](r *Registry, c Ctor, el element.Element) (T, error) {
	var zero T
	if t := reflect.TypeFor[T](); c.Type() != t {
		return zero, &IllegalArgumentError{Type: t, Message: "constructor builds " + c.Type().String()}
	}
	n, err := present(reflect.TypeFor[T](), el, "")
	if err != nil {
		return zero, err
	}
	v, err := c.construct(r, n, "")
	if err != nil {
		return zero, err
	}
	res, _ := v.(T)
	return res, nil
}
