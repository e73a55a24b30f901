package gomap

import (
	"encoding/json"
	"reflect"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/signadot/jsondoc/debug"
	"github.com/signadot/jsondoc/element"
	"github.com/signadot/jsondoc/ir"
)

type serializeFunc func(any) (any, error)
type deserializeFunc func(element.Element) (any, error)

// Registry holds user serializers, deserializers and declared constructors
// keyed by exact type.  A Registry is safe for concurrent use.
type Registry struct {
	mu            sync.RWMutex
	serializers   map[reflect.Type]serializeFunc
	deserializers map[reflect.Type]deserializeFunc
	ctors         map[reflect.Type]Ctor
}

func NewRegistry() *Registry {
	return &Registry{
		serializers:   map[reflect.Type]serializeFunc{},
		deserializers: map[reflect.Type]deserializeFunc{},
		ctors:         map[reflect.Type]Ctor{},
	}
}

var (
	defaultMu       sync.RWMutex
	defaultRegistry = NewRegistry()
)

// Default returns the process wide registry used when no registry is
// given.
func Default() *Registry {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultRegistry
}

// SetDefault replaces the process wide registry.  A nil r installs a new
// empty registry.
func SetDefault(r *Registry) {
	if r == nil {
		r = NewRegistry()
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultRegistry = r
}

// reserved holds the types with built-in conversions, which cannot be
// overridden.
var reserved = map[reflect.Type]bool{}

func init() {
	for _, v := range []any{
		false, "",
		int(0), int8(0), int16(0), int32(0), int64(0),
		uint(0), uint8(0), uint16(0), uint32(0), uint64(0), uintptr(0),
		float32(0), float64(0),
		(*ir.Node)(nil), ir.Node{},
		element.Element{},
		decimal.Decimal{},
		json.Number(""),
	} {
		reserved[reflect.TypeOf(v)] = true
	}
	reserved[reflect.TypeFor[any]()] = true
}

// IsReserved reports whether t has a built-in conversion.
func IsReserved(t reflect.Type) bool {
	return reserved[t]
}

func checkRegistrable(t reflect.Type, what string) error {
	if reserved[t] {
		return &IllegalArgumentError{Type: t, Message: "cannot register a " + what + " for a built-in type"}
	}
	return nil
}

// RegisterSerializer registers f as the serializer of values of exact type
// T.  f may return any serializable value, including another user type or
// an *ir.Node.  A later registration for the same type replaces an earlier
// one.
func RegisterSerializer[T any](r *Registry, f func(T) (any, error)) error {
	t := reflect.TypeFor[T]()
	if err := checkRegistrable(t, "serializer"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.serializers[t] = func(v any) (any, error) {
		return f(v.(T))
	}
	if debug.Registry() {
		debug.Log("op", "register", "kind", "serializer", "type", t.String())
	}
	return nil
}

// RegisterDeserializer registers f as the deserializer for type T.  A later
// registration for the same type replaces an earlier one.
func RegisterDeserializer[T any](r *Registry, f func(element.Element) (T, error)) error {
	t := reflect.TypeFor[T]()
	if err := checkRegistrable(t, "deserializer"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deserializers[t] = func(el element.Element) (any, error) {
		return f(el)
	}
	if debug.Registry() {
		debug.Log("op", "register", "kind", "deserializer", "type", t.String())
	}
	return nil
}

// DeclareCtor declares c as the constructor used to deserialize T when no
// registered deserializer or FromJSON method applies.  The parameters of c
// are checked against its function the first time it is used.
func DeclareCtor[T any](r *Registry, c Ctor) error {
	t := reflect.TypeFor[T]()
	if err := checkRegistrable(t, "constructor"); err != nil {
		return err
	}
	if c.Type() != t {
		return &IllegalArgumentError{Type: t, Message: "constructor builds " + c.Type().String()}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[t] = c
	if debug.Registry() {
		debug.Log("op", "register", "kind", "ctor", "type", t.String(), "params", c.Params().String())
	}
	return nil
}

func (r *Registry) serializer(t reflect.Type) serializeFunc {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.serializers[t]
}

func (r *Registry) deserializer(t reflect.Type) deserializeFunc {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.deserializers[t]
}

func (r *Registry) ctor(t reflect.Type) Ctor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ctors[t]
}
