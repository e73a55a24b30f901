package ir

import (
	"cmp"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// numParts is a finite number in normalized form: its value is
// digits * 10^exp, negated when neg.  digits has no leading or trailing
// zeros; zero is digits "0", exp 0.
// Operations on numParts cost in proportion to the significant digits,
// never to the exponent.
type numParts struct {
	neg    bool
	digits string
	exp    int64
}

func partsOf(d decimal.Decimal) numParts {
	c := d.Coefficient()
	neg := c.Sign() < 0
	s := c.Abs(c).String()
	digits := strings.TrimRight(s, "0")
	if digits == "" {
		return numParts{digits: "0"}
	}
	return numParts{
		neg:    neg,
		digits: digits,
		exp:    int64(d.Exponent()) + int64(len(s)-len(digits)),
	}
}

func (p numParts) isZero() bool { return p.digits == "0" }

func (p numParts) sign() int {
	switch {
	case p.isZero():
		return 0
	case p.neg:
		return -1
	}
	return 1
}

// intDigits is the number of digits before the decimal point of a
// non-zero value; it is zero or negative for values below 1.
func (p numParts) intDigits() int64 {
	return int64(len(p.digits)) + p.exp
}

func (p numParts) integral() bool {
	return p.exp >= 0
}

// decimal rebuilds the value.  Callers bound exp first.
func (p numParts) decimal() decimal.Decimal {
	b, _ := new(big.Int).SetString(p.digits, 10)
	if p.neg {
		b.Neg(b)
	}
	return decimal.NewFromBigInt(b, int32(p.exp))
}

// String renders p in scientific notation, which is valid JSON number
// text: -1.25e7.
func (p numParts) String() string {
	b := &strings.Builder{}
	if p.neg {
		b.WriteByte('-')
	}
	b.WriteString(p.digits[:1])
	if len(p.digits) > 1 {
		b.WriteByte('.')
		b.WriteString(p.digits[1:])
	}
	if e := p.intDigits() - 1; e != 0 && !p.isZero() {
		b.WriteByte('e')
		b.WriteString(strconv.FormatInt(e, 10))
	}
	return b.String()
}

func compareParts(a, b numParts) int {
	sa, sb := a.sign(), b.sign()
	if sa != sb || sa == 0 {
		return cmp.Compare(sa, sb)
	}
	c := cmp.Compare(a.intDigits(), b.intDigits())
	if c == 0 {
		// same leading digit position: digit strings compare as numbers
		c = strings.Compare(a.digits, b.digits)
	}
	return c * sa
}

// parts returns the normalized form of a finite number node.
func (y *Node) parts() (numParts, error) {
	if y.Int64 != nil && y.Number == "" {
		return partsOf(decimal.NewFromInt(*y.Int64)), nil
	}
	d, err := y.Decimal()
	if err != nil {
		return numParts{}, err
	}
	return partsOf(d), nil
}

// CanonicalNumber renders a number node so that numerically equal nodes
// render identically, in scientific notation.
func (y *Node) CanonicalNumber() (string, error) {
	if err := y.expectNumber("canonical number"); err != nil {
		return "", err
	}
	p, err := y.parts()
	if err != nil {
		return "", err
	}
	return p.String(), nil
}
