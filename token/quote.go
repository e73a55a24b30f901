package token

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// Charset is an output character set.  Characters a Charset cannot
// represent are escaped as \uXXXX when quoting.
type Charset int

const (
	UTF8 Charset = iota
	ASCII
	Latin1
)

func (c Charset) String() string {
	switch c {
	case UTF8:
		return "utf-8"
	case ASCII:
		return "ascii"
	case Latin1:
		return "latin-1"
	}
	return "<unknown charset>"
}

func (c Charset) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Charset) UnmarshalText(d []byte) error {
	switch strings.ToLower(string(d)) {
	case "utf-8", "utf8":
		*c = UTF8
	case "ascii", "us-ascii":
		*c = ASCII
	case "latin-1", "latin1", "iso-8859-1":
		*c = Latin1
	default:
		return fmt.Errorf("unrecognized charset %q", d)
	}
	return nil
}

func (c Charset) Representable(r rune) bool {
	switch c {
	case ASCII:
		return r < utf8.RuneSelf
	case Latin1:
		return r <= unicode.MaxLatin1
	}
	return true
}

const hexDigits = "0123456789abcdef"

// Quote returns v as a double quoted JSON string.
func Quote(v string, cs Charset) string {
	return string(AppendQuote(make([]byte, 0, len(v)+2), v, cs))
}

func AppendQuote(d []byte, v string, cs Charset) []byte {
	d = append(d, '"')
	for _, r := range v {
		switch r {
		case '"':
			d = append(d, '\\', '"')
		case '\\':
			d = append(d, '\\', '\\')
		case '\b':
			d = append(d, '\\', 'b')
		case '\f':
			d = append(d, '\\', 'f')
		case '\n':
			d = append(d, '\\', 'n')
		case '\r':
			d = append(d, '\\', 'r')
		case '\t':
			d = append(d, '\\', 't')
		default:
			switch {
			case unicode.IsControl(r):
				d = appendU(d, r)
			case !cs.Representable(r):
				if r > 0xFFFF {
					r1, r2 := utf16.EncodeRune(r)
					d = appendU(appendU(d, r1), r2)
				} else {
					d = appendU(d, r)
				}
			default:
				d = utf8.AppendRune(d, r)
			}
		}
	}
	return append(d, '"')
}

func appendU(d []byte, r rune) []byte {
	return append(d, '\\', 'u',
		hexDigits[(r>>12)&0xf],
		hexDigits[(r>>8)&0xf],
		hexDigits[(r>>4)&0xf],
		hexDigits[r&0xf])
}

// Unquote decodes a complete double quoted JSON string.
func Unquote(v string) (string, error) {
	r := NewStringReader(v)
	res, err := r.ReadQuoted()
	if err != nil {
		return "", err
	}
	if ok, err := r.AtEOF(); err != nil {
		return "", err
	} else if !ok {
		return "", NewSyntaxErr(ErrTrailing, r.Pos())
	}
	return res, nil
}

// ReadQuoted consumes a double quoted string at the cursor and returns its
// decoded value.  Unpaired surrogate escapes decode to U+FFFD.
func (r *Reader) ReadQuoted() (string, error) {
	start := r.Pos()
	if err := r.Expect('"'); err != nil {
		return "", err
	}
	b := &strings.Builder{}
	for {
		c, err := r.Advance()
		if err != nil {
			return "", err
		}
		switch {
		case c == EOF:
			return "", NewSyntaxErr(fmt.Errorf("%w string", ErrUnterminated), start)
		case c == '"':
			return b.String(), nil
		case c == '\\':
			if err := r.readEscape(b, start); err != nil {
				return "", err
			}
		case c < 0x20:
			return "", NewSyntaxErr(fmt.Errorf("%w %U in string", ErrUnicodeControl, c), r.Pos())
		default:
			b.WriteRune(c)
		}
	}
}

func (r *Reader) readEscape(b *strings.Builder, start Pos) error {
	c, err := r.Advance()
	if err != nil {
		return err
	}
	switch c {
	case '"', '\\', '/':
		b.WriteRune(c)
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case 'u':
		r1, err := r.readHex4()
		if err != nil {
			return err
		}
		if !utf16.IsSurrogate(r1) {
			b.WriteRune(r1)
			return nil
		}
		if r.HasPrefix(`\u`) {
			m := r.Mark()
			if err := r.advanceN(2); err != nil {
				return err
			}
			if r2, err := r.readHex4(); err == nil {
				if d := utf16.DecodeRune(r1, r2); d != unicode.ReplacementChar {
					r.Release(m)
					b.WriteRune(d)
					return nil
				}
			}
			r.Reset(m)
		}
		b.WriteRune(unicode.ReplacementChar)
	case EOF:
		return NewSyntaxErr(fmt.Errorf("%w string", ErrUnterminated), start)
	default:
		return NewSyntaxErr(fmt.Errorf("%w \\%c", ErrBadEscape, c), r.Pos())
	}
	return nil
}

func (r *Reader) readHex4() (rune, error) {
	var v rune
	for range 4 {
		c, err := r.Advance()
		if err != nil {
			return 0, err
		}
		var n rune
		switch {
		case '0' <= c && c <= '9':
			n = c - '0'
		case 'a' <= c && c <= 'f':
			n = c - 'a' + 10
		case 'A' <= c && c <= 'F':
			n = c - 'A' + 10
		default:
			return 0, NewSyntaxErr(ErrBadUnicode, r.Pos())
		}
		v = v<<4 | n
	}
	return v, nil
}
