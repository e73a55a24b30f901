package token

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrSyntax = errors.New("syntax error")

	ErrEOF               = errors.New("reached end of input during parsing")
	ErrBadUTF8           = errors.New("bad utf8")
	ErrUnterminated      = errors.New("unterminated")
	ErrNumberLeadingZero = errors.New("leading zero")
	ErrBadEscape         = errors.New("bad escape")
	ErrBadUnicode        = errors.New("bad unicode")
	ErrUnicodeControl    = errors.New("unicode control")
	ErrNumber            = errors.New("number")
	ErrTrailing          = errors.New("trailing content")
	ErrDepth             = errors.New("maximum nesting depth exceeded")
)

// SyntaxError reports malformed input.  Every SyntaxError matches
// [ErrSyntax] under errors.Is, and also unwraps to the more specific Err.
type SyntaxError struct {
	Err      error
	Pos      Pos
	Expected string
	Found    string
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

func (e *SyntaxError) Error() string {
	switch {
	case e.Expected != "" && e.Found != "":
		return fmt.Sprintf("%s: expected %s, found %s at %s", ErrSyntax, e.Expected, e.Found, e.Pos)
	case e.Expected != "":
		return fmt.Sprintf("%s: expected %s at %s", ErrSyntax, e.Expected, e.Pos)
	}
	return fmt.Sprintf("%s: %s at %s", ErrSyntax, e.Err, e.Pos)
}

func NewSyntaxErr(e error, p Pos) *SyntaxError {
	return &SyntaxError{Err: e, Pos: p}
}

func ExpectedErr(what, found string, p Pos) error {
	return &SyntaxError{
		Err:      fmt.Errorf("expected %s", what),
		Pos:      p,
		Expected: what,
		Found:    found,
	}
}

func UnexpectedErr(what string, p Pos) error {
	return NewSyntaxErr(fmt.Errorf("unexpected %s", what), p)
}

// Describe renders a rune for error messages, with EOF spelled out.
func Describe(r rune) string {
	if r == EOF {
		return "end of input"
	}
	return strconv.QuoteRune(r)
}
