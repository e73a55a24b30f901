package element

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/signadot/jsondoc/encode"
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/ir/kpath"
)

type Element struct {
	node    *ir.Node
	present bool
	def     *ir.Node
	gen     func() *ir.Node
	err     error
}

// Of returns a present Element holding node, or an absent Element if node
// is nil.
func Of(node *ir.Node) Element {
	if node == nil {
		return Element{}
	}
	return Element{node: node, present: true}
}

func Absent() Element {
	return Element{}
}

// AbsentWith returns an absent Element whose accessors fall back to def.
func AbsentWith(def *ir.Node) Element {
	return Element{def: def}
}

// AbsentGet returns an absent Element whose accessors fall back to the
// result of gen, called once per accessor call.
func AbsentGet(gen func() *ir.Node) Element {
	return Element{gen: gen}
}

// Errored returns an Element holding err.
func Errored(err error) Element {
	return Element{err: err}
}

func (e Element) Err() error {
	return e.err
}

func (e Element) IsPresent() bool {
	return e.err == nil && e.present
}

func (e Element) IsEmpty() bool {
	return !e.IsPresent()
}

func (e Element) IsNotNull() bool {
	return e.IsPresent() && e.node.Type != ir.NullType
}

// IsNull reports whether e is present and holds null.
func (e Element) IsNull() bool {
	return e.IsPresent() && e.node.Type == ir.NullType
}

// effective is the node accessors operate on: the present node, or the
// default of an absent Element.
func (e Element) effective() *ir.Node {
	switch {
	case e.present:
		return e.node
	case e.def != nil:
		return e.def
	case e.gen != nil:
		return e.gen()
	}
	return nil
}

func (e Element) step(seg *kpath.KPath) Element {
	if e.err != nil {
		return e
	}
	if seg.Index != nil && *seg.Index < 0 {
		return Errored(&ir.IndexError{Index: *seg.Index, Len: e.node.Len()})
	}
	if !e.present {
		return e
	}
	next, err := e.node.Step(seg)
	if err != nil {
		return Errored(err)
	}
	return Of(next)
}

// Get selects key of an object.
func (e Element) Get(key string) Element {
	return e.step(kpath.Field(key))
}

// Index selects element i of an array.  On an object, Index selects the
// key which is the decimal text of i.
func (e Element) Index(i int) Element {
	return e.step(kpath.Idx(i))
}

// GetPath selects along a path such as "a.b[3].c".
func (e Element) GetPath(path string) Element {
	if e.err != nil {
		return e
	}
	kp, err := kpath.Parse(path)
	if err != nil {
		return Errored(err)
	}
	return e.GetKPath(kp)
}

func (e Element) GetKPath(kp *kpath.KPath) Element {
	for ; kp != nil; kp = kp.Next {
		e = e.step(kp)
	}
	return e
}

// Len is the number of members of a present object or array.
func (e Element) Len() int {
	if !e.IsPresent() {
		return 0
	}
	return e.node.Len()
}

// Keys lists the keys of a present object.
func (e Element) Keys() []string {
	if !e.IsPresent() {
		return nil
	}
	return e.node.Keys()
}

// Elements lists the members of a present array as Elements.
func (e Element) Elements() []Element {
	if !e.IsPresent() || e.node.Type != ir.ArrayType {
		return nil
	}
	res := make([]Element, len(e.node.Values))
	for i, v := range e.node.Values {
		res[i] = Of(v)
	}
	return res
}

// value returns the effective node when it is non-null, checking its type.
func (e Element) value(op string, t ir.Type) (*ir.Node, bool, error) {
	if e.err != nil {
		return nil, false, e.err
	}
	n := e.effective()
	if n == nil || n.Type == ir.NullType {
		return nil, false, nil
	}
	if n.Type != t {
		return nil, false, &ir.TypeMismatchError{Op: op, Expected: t.String(), Got: n.Type, Path: n.KPath()}
	}
	return n, true, nil
}

// Node returns the effective node, which is nil when e is absent without a
// default.  ok is false when the effective value is missing or null.
func (e Element) Node() (*ir.Node, bool, error) {
	if e.err != nil {
		return nil, false, e.err
	}
	n := e.effective()
	return n, n != nil && n.Type != ir.NullType, nil
}

// Value returns the effective value as plain Go values, see ir.ToAny.
func (e Element) Value() (any, bool, error) {
	n, ok, err := e.Node()
	if !ok || err != nil {
		return nil, false, err
	}
	return ir.ToAny(n), true, nil
}

func (e Element) AsString() (string, bool, error) {
	n, ok, err := e.value("as string", ir.StringType)
	if !ok {
		return "", false, err
	}
	return n.String, true, nil
}

func (e Element) AsBool() (bool, bool, error) {
	n, ok, err := e.value("as bool", ir.BoolType)
	if !ok {
		return false, false, err
	}
	return n.Bool, true, nil
}

func (e Element) AsInt64() (int64, bool, error) {
	n, ok, err := e.value("as int64", ir.NumberType)
	if !ok {
		return 0, false, err
	}
	i, err := n.AsInt64()
	if err != nil {
		return 0, false, err
	}
	return i, true, nil
}

func (e Element) AsInt() (int, bool, error) {
	i, ok, err := e.AsInt64()
	if !ok {
		return 0, false, err
	}
	if i < math.MinInt || i > math.MaxInt {
		return 0, false, fmt.Errorf("%w: %d overflows int", ir.ErrNumberRange, i)
	}
	return int(i), true, nil
}

func (e Element) AsUint64() (uint64, bool, error) {
	n, ok, err := e.value("as uint64", ir.NumberType)
	if !ok {
		return 0, false, err
	}
	u, err := n.AsUint64()
	if err != nil {
		return 0, false, err
	}
	return u, true, nil
}

func (e Element) AsFloat64() (float64, bool, error) {
	n, ok, err := e.value("as float64", ir.NumberType)
	if !ok {
		return 0, false, err
	}
	f, err := n.AsFloat64()
	if err != nil {
		return 0, false, err
	}
	return f, true, nil
}

func (e Element) AsDecimal() (decimal.Decimal, bool, error) {
	n, ok, err := e.value("as decimal", ir.NumberType)
	if !ok {
		return decimal.Zero, false, err
	}
	d, err := n.Decimal()
	if err != nil {
		return decimal.Zero, false, err
	}
	return d, true, nil
}

// AsObject returns the effective node if it is an object.
func (e Element) AsObject() (*ir.Node, bool, error) {
	return e.value("as object", ir.ObjectType)
}

// AsArray returns the members of the effective node if it is an array.
func (e Element) AsArray() ([]*ir.Node, bool, error) {
	n, ok, err := e.value("as array", ir.ArrayType)
	if !ok {
		return nil, false, err
	}
	return n.Values, true, nil
}

// absent reports whether fallbacks of the Or family apply.
func (e Element) absent() bool {
	return e.err == nil && !e.present
}

// nullish reports whether fallbacks of the NullOr family apply.
func (e Element) nullish() bool {
	return e.absent() || e.IsNull()
}

func (e Element) Or(v *ir.Node) Element {
	if e.absent() {
		return Of(v)
	}
	return e
}

func (e Element) OrElse(other Element) Element {
	if e.absent() {
		return other
	}
	return e
}

func (e Element) OrElseGet(f func() Element) Element {
	if e.absent() {
		return f()
	}
	return e
}

func (e Element) OrGet(f func() *ir.Node) Element {
	if e.absent() {
		return Of(f())
	}
	return e
}

func (e Element) NullOr(v *ir.Node) Element {
	if e.nullish() {
		return Of(v)
	}
	return e
}

func (e Element) NullOrElse(other Element) Element {
	if e.nullish() {
		return other
	}
	return e
}

func (e Element) NullOrElseGet(f func() Element) Element {
	if e.nullish() {
		return f()
	}
	return e
}

func (e Element) NullOrGet(f func() *ir.Node) Element {
	if e.nullish() {
		return Of(f())
	}
	return e
}

func (e Element) String() string {
	switch {
	case e.err != nil:
		return "Error(" + e.err.Error() + ")"
	case e.present:
		return "Present(" + compact(e.node) + ")"
	case e.def != nil:
		return "Absent(default=" + compact(e.def) + ")"
	case e.gen != nil:
		return "Absent(default=<generated>)"
	}
	return "Absent"
}

func compact(n *ir.Node) string {
	s, err := encode.EncodeString(n, encode.Formatted(false))
	if err != nil {
		return strconv.Quote(err.Error())
	}
	return s
}
