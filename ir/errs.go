package ir

import (
	"errors"
	"fmt"

	"github.com/signadot/jsondoc/ir/kpath"
)

var (
	ErrTypeMismatch = errors.New("type mismatch")
	ErrIndex        = kpath.ErrIndex
	ErrNumberRange  = errors.New("number out of range")
	ErrBadPath      = kpath.ErrBadPath
)

// TypeMismatchError is returned when an operation expects one kind of
// node and finds another.
type TypeMismatchError struct {
	Op       string
	Expected string
	Got      Type
	Path     string
}

func (e *TypeMismatchError) Error() string {
	msg := fmt.Sprintf("%s: expected %s, got %s", e.Op, e.Expected, e.Got)
	if e.Path != "" {
		msg += " at " + e.Path
	}
	return msg
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

func mismatch(op, expected string, y *Node) *TypeMismatchError {
	return &TypeMismatchError{Op: op, Expected: expected, Got: y.Type, Path: y.KPath()}
}

// IndexError is returned for negative indices and, where an index must
// address an existing element, for indices out of range.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("negative index %d", e.Index)
	}
	return fmt.Sprintf("index %d out of range (len %d)", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndex }
