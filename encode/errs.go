package encode

import (
	"errors"
	"fmt"
)

var (
	ErrEncoding = errors.New("encoding error")
	ErrCyclic   = fmt.Errorf("%w: cyclic structure", ErrEncoding)
)

// CyclicStructureError is returned when a container is reached again while
// it is being encoded.  Path locates the repeated occurrence.
type CyclicStructureError struct {
	Path string
}

func (e *CyclicStructureError) Error() string {
	if e.Path == "" {
		return ErrCyclic.Error() + " at the root"
	}
	return fmt.Sprintf("%s at %s", ErrCyclic, e.Path)
}

func (e *CyclicStructureError) Unwrap() error { return ErrCyclic }
