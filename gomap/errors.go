package gomap

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrUnsupportedType = errors.New("unsupported type")
	ErrEmptyValue      = errors.New("empty value")
	ErrIllegalArgument = errors.New("illegal argument")
	ErrNoConverge      = errors.New("serialization did not converge")
)

// MarshalError represents an error during serialization
type MarshalError struct {
	FieldPath string // Field path (e.g., "person.address[0].street")
	Message   string
	Err       error
}

func (e *MarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("marshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("marshal error: %s", e.Message)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}

// UnmarshalError represents an error during deserialization
type UnmarshalError struct {
	FieldPath string // Field path (e.g., "person.address[0].street")
	Message   string
	Err       error
}

func (e *UnmarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("unmarshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("unmarshal error: %s", e.Message)
}

func (e *UnmarshalError) Unwrap() error {
	return e.Err
}

// UnsupportedTypeError is returned when no serializer or deserializer
// applies to a type.
type UnsupportedTypeError struct {
	Type      reflect.Type
	Serialize bool
	FieldPath string
}

func (e *UnsupportedTypeError) Error() string {
	var msg string
	if e.Serialize {
		msg = fmt.Sprintf("%s: no serializer known for type %s", ErrUnsupportedType, typeName(e.Type))
	} else {
		msg = fmt.Sprintf("%s: no deserializer known for type %s", ErrUnsupportedType, typeName(e.Type))
	}
	if e.FieldPath != "" {
		msg += " at " + e.FieldPath
	}
	return msg
}

func (e *UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }

// EmptyValueError is returned when deserializing from an absent element.
type EmptyValueError struct {
	Type      reflect.Type
	FieldPath string
}

func (e *EmptyValueError) Error() string {
	msg := fmt.Sprintf("%s: cannot deserialize %s from an absent value", ErrEmptyValue, typeName(e.Type))
	if e.FieldPath != "" {
		msg += " at " + e.FieldPath
	}
	return msg
}

func (e *EmptyValueError) Unwrap() error { return ErrEmptyValue }

// IllegalArgumentError reports misuse of a registry: registering for a
// reserved type, or declaring a constructor whose parameters do not match
// its function.
type IllegalArgumentError struct {
	Type    reflect.Type
	Message string
}

func (e *IllegalArgumentError) Error() string {
	if e.Type != nil {
		return fmt.Sprintf("%s: %s: %s", ErrIllegalArgument, typeName(e.Type), e.Message)
	}
	return fmt.Sprintf("%s: %s", ErrIllegalArgument, e.Message)
}

func (e *IllegalArgumentError) Unwrap() error { return ErrIllegalArgument }

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

func joinField(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func joinIndex(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
