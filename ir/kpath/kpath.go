package kpath

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrBadPath = errors.New("malformed path")
	ErrIndex   = errors.New("index error")
)

// KPath is a path as a linked list of segments.  Exactly one of Field and
// Index is set in each segment.  The nil *KPath is the root path.
type KPath struct {
	Field *string
	Index *int
	Next  *KPath
}

// Field returns the single segment path selecting key name.
func Field(name string) *KPath {
	return &KPath{Field: &name}
}

// Idx returns the single segment path selecting index i.
func Idx(i int) *KPath {
	return &KPath{Index: &i}
}

// Parse parses a path.  The empty string is the root path and parses to
// nil.
//
// Examples:
//   - "a.b.c" → 3 key segments
//   - "a[0][1]" → key a, then index 0, index 1
//   - "[0].b" → index 0, key b
//   - "a..b" → error, empty segment
func Parse(path string) (*KPath, error) {
	if path == "" {
		return nil, nil
	}
	s := strings.TrimPrefix(path, "[")
	s = strings.ReplaceAll(s, "]", "")
	toks := strings.FieldsFunc(s, func(r rune) bool { return r == '[' || r == '.' })
	if n := strings.Count(s, "[") + strings.Count(s, ".") + 1; n != len(toks) {
		return nil, fmt.Errorf("%w %q: empty segment", ErrBadPath, path)
	}
	var (
		root *KPath
		last *KPath
	)
	for _, tok := range toks {
		seg, err := parseToken(tok)
		if err != nil {
			return nil, fmt.Errorf("%w in path %q", err, path)
		}
		if root == nil {
			root = seg
		} else {
			last.Next = seg
		}
		last = seg
	}
	return root, nil
}

func parseToken(tok string) (*KPath, error) {
	if !isInteger(tok) {
		return Field(tok), nil
	}
	i, err := strconv.Atoi(tok)
	if err != nil {
		return nil, fmt.Errorf("%w: index %s not representable as int", ErrIndex, tok)
	}
	return Idx(i), nil
}

func isInteger(tok string) bool {
	d := strings.TrimPrefix(tok, "-")
	if d == "" {
		return false
	}
	for i := 0; i < len(d); i++ {
		if d[i] < '0' || d[i] > '9' {
			return false
		}
	}
	return true
}

// MustParse is like Parse but panics on error.
func MustParse(path string) *KPath {
	kp, err := Parse(path)
	if err != nil {
		panic(err)
	}
	return kp
}

// String renders the path, keys joined by '.' and indices as [n].
func (p *KPath) String() string {
	if p == nil {
		return ""
	}
	buf := bytes.NewBuffer(nil)
	for x := p; x != nil; x = x.Next {
		if x.Field != nil && buf.Len() > 0 {
			buf.WriteByte('.')
		}
		buf.WriteString(x.SegmentString())
	}
	return buf.String()
}

// SegmentString renders only the first segment of p.
func (p *KPath) SegmentString() string {
	switch {
	case p == nil:
		return ""
	case p.Field != nil:
		return *p.Field
	case p.Index != nil:
		return "[" + strconv.Itoa(*p.Index) + "]"
	}
	return ""
}

func (p *KPath) IsField() bool { return p != nil && p.Field != nil }
func (p *KPath) IsIndex() bool { return p != nil && p.Index != nil }

// Len is the number of segments.
func (p *KPath) Len() int {
	n := 0
	for x := p; x != nil; x = x.Next {
		n++
	}
	return n
}

func (p *KPath) copySegment() *KPath {
	switch {
	case p.Field != nil:
		return Field(*p.Field)
	case p.Index != nil:
		return Idx(*p.Index)
	}
	return &KPath{}
}

// Clone copies the whole path.
func (p *KPath) Clone() *KPath {
	var root, last *KPath
	for x := p; x != nil; x = x.Next {
		seg := x.copySegment()
		if root == nil {
			root = seg
		} else {
			last.Next = seg
		}
		last = seg
	}
	return root
}

// Segments returns a single segment copy of each segment of p.
func (p *KPath) Segments() []*KPath {
	res := make([]*KPath, 0, p.Len())
	for x := p; x != nil; x = x.Next {
		res = append(res, x.copySegment())
	}
	return res
}

// Append returns a copy of p followed by a copy of q.
func (p *KPath) Append(q *KPath) *KPath {
	res := p.Clone()
	if res == nil {
		return q.Clone()
	}
	last := res
	for last.Next != nil {
		last = last.Next
	}
	last.Next = q.Clone()
	return res
}

// Parent returns a copy of p without its last segment.  The parent of a
// single segment path is the root, nil.
func (p *KPath) Parent() *KPath {
	if p == nil || p.Next == nil {
		return nil
	}
	res := p.copySegment()
	cur := res
	for x := p.Next; x.Next != nil; x = x.Next {
		cur.Next = x.copySegment()
		cur = cur.Next
	}
	return res
}

// Last returns the last segment of p.
func (p *KPath) Last() *KPath {
	if p == nil {
		return nil
	}
	x := p
	for x.Next != nil {
		x = x.Next
	}
	return x
}

// IsPrefixOf reports whether every segment of p matches the corresponding
// leading segment of other.
func (p *KPath) IsPrefixOf(other *KPath) bool {
	a, b := p, other
	for a != nil {
		if b == nil || compareSegment(a, b) != 0 {
			return false
		}
		a, b = a.Next, b.Next
	}
	return true
}

// Compare orders paths segment by segment; indices sort before keys and a
// path sorts before its extensions.
func (p *KPath) Compare(other *KPath) int {
	a, b := p, other
	for a != nil && b != nil {
		if c := compareSegment(a, b); c != 0 {
			return c
		}
		a, b = a.Next, b.Next
	}
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	}
	return 1
}

func compareSegment(a, b *KPath) int {
	switch {
	case a.Index != nil && b.Index != nil:
		return compareInt(*a.Index, *b.Index)
	case a.Field != nil && b.Field != nil:
		return strings.Compare(*a.Field, *b.Field)
	case a.Index != nil:
		return -1
	}
	return 1
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Split splits path into its first segment and the remaining path.
//
// Examples:
//   - Split("a.b.c") → ("a", "b.c")
//   - Split("[0].b") → ("[0]", "b")
//   - Split("a") → ("a", "")
func Split(path string) (string, string, error) {
	kp, err := Parse(path)
	if err != nil || kp == nil {
		return "", "", err
	}
	return kp.SegmentString(), kp.Next.String(), nil
}

// RSplit splits path into its parent path and last segment.
//
// Examples:
//   - RSplit("a.b.c") → ("a.b", "c")
//   - RSplit("a[0]") → ("a", "[0]")
func RSplit(path string) (string, string, error) {
	kp, err := Parse(path)
	if err != nil || kp == nil {
		return "", "", err
	}
	return kp.Parent().String(), kp.Last().SegmentString(), nil
}

// Join joins two paths.
func Join(prefix, suffix string) (string, error) {
	p, err := Parse(prefix)
	if err != nil {
		return "", err
	}
	q, err := Parse(suffix)
	if err != nil {
		return "", err
	}
	return p.Append(q).String(), nil
}

func (p *KPath) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *KPath) UnmarshalText(d []byte) error {
	kp, err := Parse(string(d))
	if err != nil {
		return err
	}
	if kp == nil {
		*p = KPath{}
		return nil
	}
	*p = *kp
	return nil
}
