package token

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// EOF is returned by [Reader.Peek] and [Reader.Advance] at the end of
// input.
const EOF rune = -1

const (
	defaultBufferSize = 4096
	contextRadius     = 10
)

type ReaderOption func(*Reader)

// WithFilename attaches a file name to all positions reported by the
// reader.
func WithFilename(name string) ReaderOption {
	return func(r *Reader) { r.filename = name }
}

// WithBufferSize sets the size of reads from the underlying io.Reader.
func WithBufferSize(n int) ReaderOption {
	return func(r *Reader) {
		if n > 0 {
			r.bufferSize = n
		}
	}
}

// Reader is a single cursor over a character source.
type Reader struct {
	src io.Reader

	buf      []byte
	bufStart int // absolute offset of buf[0]
	i        int // cursor within buf
	eof      bool
	rerr     error
	owned    bool // buf may be compacted in place

	line, col int
	marks     []Mark

	filename   string
	bufferSize int
}

// Mark records a cursor position for [Reader.Reset].  While a mark is
// outstanding the reader retains all input from the mark on.
type Mark struct {
	off, line, col int
}

func NewReader(src io.Reader, opts ...ReaderOption) *Reader {
	r := &Reader{
		src:        src,
		owned:      true,
		line:       1,
		col:        1,
		bufferSize: defaultBufferSize,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// NewBytesReader returns a Reader over d.  d is not modified.
func NewBytesReader(d []byte, opts ...ReaderOption) *Reader {
	r := NewReader(nil, opts...)
	r.buf = d
	r.eof = true
	r.owned = false
	return r
}

func NewStringReader(s string, opts ...ReaderOption) *Reader {
	return NewBytesReader([]byte(s), opts...)
}

// fill tries to make n bytes available after the cursor.  Fewer bytes are
// available only at the end of input.
func (r *Reader) fill(n int) error {
	for len(r.buf)-r.i < n && !r.eof {
		if r.rerr != nil {
			return r.rerr
		}
		r.compact()
		if cap(r.buf)-len(r.buf) < r.bufferSize {
			nb := make([]byte, len(r.buf), len(r.buf)+r.bufferSize)
			copy(nb, r.buf)
			r.buf = nb
		}
		m, err := r.src.Read(r.buf[len(r.buf):cap(r.buf)])
		r.buf = r.buf[:len(r.buf)+m]
		switch {
		case err == io.EOF:
			r.eof = true
		case err != nil:
			r.rerr = fmt.Errorf("read error at offset %d: %w", r.bufStart+len(r.buf), err)
			return r.rerr
		}
	}
	return nil
}

// compact drops consumed input that no mark or error context needs.
func (r *Reader) compact() {
	if !r.owned {
		return
	}
	keep := max(0, r.i-contextRadius)
	if len(r.marks) > 0 {
		keep = min(keep, r.marks[0].off-r.bufStart)
	}
	if keep == 0 {
		return
	}
	n := copy(r.buf, r.buf[keep:])
	r.buf = r.buf[:n]
	r.i -= keep
	r.bufStart += keep
}

func (r *Reader) peek() (rune, int, error) {
	if err := r.fill(1); err != nil {
		return EOF, 0, err
	}
	if r.i >= len(r.buf) {
		return EOF, 0, nil
	}
	if b := r.buf[r.i]; b < utf8.RuneSelf {
		return rune(b), 1, nil
	}
	if err := r.fill(utf8.UTFMax); err != nil {
		return EOF, 0, err
	}
	c, sz := utf8.DecodeRune(r.buf[r.i:])
	if c == utf8.RuneError && sz <= 1 {
		return EOF, 0, NewSyntaxErr(ErrBadUTF8, r.Pos())
	}
	return c, sz, nil
}

// Peek returns the next character without consuming it, or EOF.
func (r *Reader) Peek() (rune, error) {
	c, _, err := r.peek()
	return c, err
}

// Advance consumes and returns the next character, or EOF.
func (r *Reader) Advance() (rune, error) {
	c, sz, err := r.peek()
	if err != nil || c == EOF {
		return c, err
	}
	r.i += sz
	if c == '\n' {
		r.line++
		r.col = 1
	} else {
		r.col++
	}
	return c, nil
}

func (r *Reader) advanceN(n int) error {
	for range n {
		if _, err := r.Advance(); err != nil {
			return err
		}
	}
	return nil
}

// HasPrefix reports whether the unread input starts with lit, without
// consuming anything.
func (r *Reader) HasPrefix(lit string) bool {
	if err := r.fill(len(lit)); err != nil {
		return false
	}
	if len(r.buf)-r.i < len(lit) {
		return false
	}
	return string(r.buf[r.i:r.i+len(lit)]) == lit
}

// Consume consumes lit if the unread input starts with it.
func (r *Reader) Consume(lit string) (bool, error) {
	if !r.HasPrefix(lit) {
		return false, nil
	}
	return true, r.advanceN(utf8.RuneCountInString(lit))
}

// Expect consumes want or fails with a [SyntaxError].
func (r *Reader) Expect(want rune) error {
	c, err := r.Peek()
	if err != nil {
		return err
	}
	if c != want {
		return ExpectedErr(Describe(want), Describe(c), r.Pos())
	}
	_, err = r.Advance()
	return err
}

func (r *Reader) Mark() Mark {
	m := Mark{off: r.bufStart + r.i, line: r.line, col: r.col}
	r.marks = append(r.marks, m)
	return m
}

// Reset moves the cursor back to m and releases it.
func (r *Reader) Reset(m Mark) {
	r.Release(m)
	r.i = m.off - r.bufStart
	r.line, r.col = m.line, m.col
}

// Release forgets m without moving the cursor.
func (r *Reader) Release(m Mark) {
	for j := len(r.marks) - 1; j >= 0; j-- {
		if r.marks[j] == m {
			r.marks = append(r.marks[:j], r.marks[j+1:]...)
			return
		}
	}
}

// Offset is the absolute byte offset of the cursor.
func (r *Reader) Offset() int {
	return r.bufStart + r.i
}

func (r *Reader) Pos() Pos {
	start := max(0, r.i-contextRadius)
	end := min(len(r.buf), r.i+contextRadius)
	var ctx []byte
	if start < end {
		ctx = append([]byte(nil), r.buf[start:end]...)
	}
	return Pos{
		I:        r.bufStart + r.i,
		Line:     r.line,
		Col:      r.col,
		Filename: r.filename,
		Context:  ctx,
	}
}

// AtEOF reports whether all input has been consumed.
func (r *Reader) AtEOF() (bool, error) {
	c, err := r.Peek()
	return c == EOF && err == nil, err
}

// SkipWhitespaceAndComments consumes whitespace and comments until the
// next significant character.  A block comment without its closing `*/`
// and a line comment ending at the end of input instead of a newline are
// syntax errors.  A '/' which does not start a comment is left unread.
func (r *Reader) SkipWhitespaceAndComments() error {
	for {
		c, err := r.Peek()
		if err != nil {
			return err
		}
		switch c {
		case ' ', '\t', '\n', '\r':
			if _, err := r.Advance(); err != nil {
				return err
			}
		case '/':
			skipped, err := r.skipComment()
			if err != nil {
				return err
			}
			if !skipped {
				return nil
			}
		default:
			return nil
		}
	}
}

// SkipWhitespace is SkipWhitespaceAndComments without comments.
func (r *Reader) SkipWhitespace() error {
	for {
		c, err := r.Peek()
		if err != nil {
			return err
		}
		switch c {
		case ' ', '\t', '\n', '\r':
			if _, err := r.Advance(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (r *Reader) skipComment() (bool, error) {
	start := r.Pos()
	switch {
	case r.HasPrefix("//"):
		if err := r.advanceN(2); err != nil {
			return false, err
		}
		for {
			c, err := r.Advance()
			if err != nil {
				return false, err
			}
			switch c {
			case '\n':
				return true, nil
			case EOF:
				return false, NewSyntaxErr(fmt.Errorf("%w line comment", ErrUnterminated), start)
			}
		}
	case r.HasPrefix("/*"):
		if err := r.advanceN(2); err != nil {
			return false, err
		}
		for {
			if r.HasPrefix("*/") {
				return true, r.advanceN(2)
			}
			c, err := r.Advance()
			if err != nil {
				return false, err
			}
			if c == EOF {
				return false, NewSyntaxErr(fmt.Errorf("%w block comment", ErrUnterminated), start)
			}
		}
	}
	return false, nil
}
