package parse

import (
	"fmt"

	"github.com/signadot/jsondoc/token"
)

var (
	ErrParse = token.ErrSyntax
	ErrDepth = token.ErrDepth
)

func depthErr(max int, p token.Pos) error {
	return token.NewSyntaxErr(fmt.Errorf("%w (%d)", ErrDepth, max), p)
}

func expected(what string, r *token.Reader) error {
	c, err := r.Peek()
	if err != nil {
		return err
	}
	return token.ExpectedErr(what, token.Describe(c), r.Pos())
}
