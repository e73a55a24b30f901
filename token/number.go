package token

import (
	"fmt"
	"strings"
)

// ReadNumber consumes a JSON number literal at the cursor and returns its
// text.  isFloat is true when the literal has a fraction or an exponent.
func (r *Reader) ReadNumber() (lit string, isFloat bool, err error) {
	start := r.Pos()
	b := &strings.Builder{}
	c, err := r.Peek()
	if err != nil {
		return "", false, err
	}
	if c == '-' {
		if _, err := r.Advance(); err != nil {
			return "", false, err
		}
		b.WriteByte('-')
	}
	n, err := r.digits(b)
	if err != nil {
		return "", false, err
	}
	if n == 0 {
		c, _ := r.Peek()
		return "", false, numberErr("digit", c, r.Pos())
	}
	lit = b.String()
	if n > 1 && strings.TrimPrefix(lit, "-")[0] == '0' {
		return "", false, NewSyntaxErr(ErrNumberLeadingZero, start)
	}
	if ok, err := r.Consume("."); err != nil {
		return "", false, err
	} else if ok {
		isFloat = true
		b.WriteByte('.')
		n, err := r.digits(b)
		if err != nil {
			return "", false, err
		}
		if n == 0 {
			c, _ := r.Peek()
			return "", false, numberErr("digit after '.'", c, r.Pos())
		}
	}
	c, err = r.Peek()
	if err != nil {
		return "", false, err
	}
	if c == 'e' || c == 'E' {
		isFloat = true
		if _, err := r.Advance(); err != nil {
			return "", false, err
		}
		b.WriteRune(c)
		c, err = r.Peek()
		if err != nil {
			return "", false, err
		}
		if c == '+' || c == '-' {
			if _, err := r.Advance(); err != nil {
				return "", false, err
			}
			b.WriteRune(c)
		}
		n, err := r.digits(b)
		if err != nil {
			return "", false, err
		}
		if n == 0 {
			c, _ := r.Peek()
			return "", false, numberErr("exponent digit", c, r.Pos())
		}
	}
	return b.String(), isFloat, nil
}

func (r *Reader) digits(b *strings.Builder) (int, error) {
	n := 0
	for {
		c, err := r.Peek()
		if err != nil {
			return n, err
		}
		if c < '0' || c > '9' {
			return n, nil
		}
		if _, err := r.Advance(); err != nil {
			return n, err
		}
		b.WriteRune(c)
		n++
	}
}

func numberErr(what string, found rune, p Pos) error {
	return &SyntaxError{
		Err:      fmt.Errorf("%w: expected %s", ErrNumber, what),
		Pos:      p,
		Expected: what,
		Found:    Describe(found),
	}
}
