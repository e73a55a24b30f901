package ir

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/signadot/jsondoc/token"
	"github.com/valyala/fastjson/fastfloat"
)

var (
	minInt64  = decimal.NewFromInt(math.MinInt64)
	maxInt64  = decimal.NewFromInt(math.MaxInt64)
	maxUint64 = decimal.RequireFromString("18446744073709551615")
)

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromUint(v uint64) *Node {
	if v <= math.MaxInt64 {
		return FromInt(int64(v))
	}
	f := float64(v)
	return &Node{
		Type:    NumberType,
		Number:  strconv.FormatUint(v, 10),
		Float64: &f,
	}
}

// FromFloat returns a number node holding f.  Non finite values can be
// held but not encoded.
func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

// FromDecimal returns a number node holding d exactly.
func FromDecimal(d decimal.Decimal) *Node {
	p := partsOf(d)
	res := &Node{Type: NumberType, Number: p.String()}
	if e := d.Exponent(); e >= -maxPlainExp && e <= maxPlainExp {
		res.Number = d.String()
	}
	if i, err := p.int64(); err == nil {
		res.Int64 = &i
		return res
	}
	if f, err := fastfloat.Parse(res.Number); err == nil && !math.IsInf(f, 0) {
		res.Float64 = &f
	}
	return res
}

// maxPlainExp bounds the exponents rendered without scientific notation.
const maxPlainExp = 64

// maxIntDigits is the number of digits of the widest integer type.
const maxIntDigits = 20

// int64 range checks p without building values wider than uint64.
func (p numParts) int64() (int64, error) {
	if err := p.checkInt(); err != nil {
		return 0, err
	}
	d := p.decimal()
	if d.Cmp(minInt64) < 0 || d.Cmp(maxInt64) > 0 {
		return 0, fmt.Errorf("%w: %s overflows int64", ErrNumberRange, p)
	}
	return d.IntPart(), nil
}

func (p numParts) uint64() (uint64, error) {
	if err := p.checkInt(); err != nil {
		return 0, err
	}
	d := p.decimal()
	if d.Sign() < 0 || d.Cmp(maxUint64) > 0 {
		return 0, fmt.Errorf("%w: %s overflows uint64", ErrNumberRange, p)
	}
	return d.BigInt().Uint64(), nil
}

func (p numParts) checkInt() error {
	if !p.integral() {
		return fmt.Errorf("%w: %s is not an integer", ErrNumberRange, p)
	}
	if p.intDigits() > maxIntDigits {
		return fmt.Errorf("%w: %s overflows 64 bits", ErrNumberRange, p)
	}
	return nil
}

// FromNumber returns a number node for the JSON number literal text.
func FromNumber(text string) (*Node, error) {
	r := token.NewStringReader(text)
	lit, isFloat, err := r.ReadNumber()
	if err != nil {
		return nil, err
	}
	if eof, err := r.AtEOF(); err != nil {
		return nil, err
	} else if !eof {
		return nil, token.NewSyntaxErr(token.ErrTrailing, r.Pos())
	}
	return FromLiteral(lit, isFloat), nil
}

// FromLiteral returns a number node for lit, which must be a valid JSON
// number literal as returned by (*token.Reader).ReadNumber.  The literal
// text is kept; Int64 or Float64 are filled in when lit converts without
// overflow.
func FromLiteral(lit string, isFloat bool) *Node {
	res := &Node{Type: NumberType, Number: lit}
	if !isFloat {
		if i, err := fastfloat.ParseInt64(lit); err == nil {
			res.Int64 = &i
			return res
		}
	}
	if f, err := fastfloat.Parse(lit); err == nil && !math.IsInf(f, 0) {
		res.Float64 = &f
	}
	return res
}

func (y *Node) expectNumber(op string) error {
	if y.Type != NumberType {
		return mismatch(op, "Number", y)
	}
	return nil
}

// NumberText renders a number node as JSON number text.
func (y *Node) NumberText() (string, error) {
	if err := y.expectNumber("number text"); err != nil {
		return "", err
	}
	switch {
	case y.Number != "":
		return y.Number, nil
	case y.Int64 != nil:
		return strconv.FormatInt(*y.Int64, 10), nil
	case y.Float64 != nil:
		return formatFloat(*y.Float64)
	}
	return "", fmt.Errorf("%w: number node without value", ErrNumberRange)
}

func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: %v has no JSON representation", ErrNumberRange, f)
	}
	abs := math.Abs(f)
	fmtc := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		fmtc = 'e'
	}
	b := strconv.AppendFloat(nil, f, fmtc, -1, 64)
	if fmtc == 'e' {
		// clean up e-09 to e-9
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return string(b), nil
}

// Decimal returns the exact value of a number node.
func (y *Node) Decimal() (decimal.Decimal, error) {
	if err := y.expectNumber("decimal"); err != nil {
		return decimal.Zero, err
	}
	switch {
	case y.Number != "":
		d, err := decimal.NewFromString(y.Number)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %w", ErrNumberRange, err)
		}
		return d, nil
	case y.Int64 != nil:
		return decimal.NewFromInt(*y.Int64), nil
	case y.Float64 != nil:
		f := *y.Float64
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, fmt.Errorf("%w: %v", ErrNumberRange, f)
		}
		return decimal.NewFromFloat(f), nil
	}
	return decimal.Zero, fmt.Errorf("%w: number node without value", ErrNumberRange)
}

// AsInt64 returns the value of a number node as an int64.  Fractional and
// out of range values are errors, never truncated.
func (y *Node) AsInt64() (int64, error) {
	if err := y.expectNumber("as int64"); err != nil {
		return 0, err
	}
	if y.Int64 != nil {
		return *y.Int64, nil
	}
	p, err := y.parts()
	if err != nil {
		return 0, err
	}
	return p.int64()
}

// AsUint64 is like AsInt64 for uint64.
func (y *Node) AsUint64() (uint64, error) {
	if err := y.expectNumber("as uint64"); err != nil {
		return 0, err
	}
	if y.Int64 != nil {
		if *y.Int64 < 0 {
			return 0, fmt.Errorf("%w: %d is negative", ErrNumberRange, *y.Int64)
		}
		return uint64(*y.Int64), nil
	}
	p, err := y.parts()
	if err != nil {
		return 0, err
	}
	return p.uint64()
}

// AsFloat64 returns the nearest float64 to the value of a number node.
// Values beyond the float64 range are errors.
func (y *Node) AsFloat64() (float64, error) {
	if err := y.expectNumber("as float64"); err != nil {
		return 0, err
	}
	var f float64
	switch {
	case y.Float64 != nil:
		f = *y.Float64
	case y.Int64 != nil:
		return float64(*y.Int64), nil
	case y.Number != "":
		var err error
		f, err = fastfloat.Parse(y.Number)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrNumberRange, y.Number)
		}
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%w: %v is not a finite float64", ErrNumberRange, f)
	}
	return f, nil
}
