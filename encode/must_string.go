package encode

import (
	"github.com/signadot/jsondoc/ir"
)

// MustString is like EncodeString but panics on error.
func MustString(node *ir.Node, opts ...EncodeOption) string {
	s, err := EncodeString(node, opts...)
	if err != nil {
		panic(err)
	}
	return s
}
