package token

import (
	"fmt"
	"strconv"
)

// Pos is a position in the input.  Line and Col are 1-based; Col counts
// characters (runes), not bytes.  I is the byte offset.
type Pos struct {
	I    int
	Line int
	Col  int

	Filename string
	Context  []byte // snippet of input around I, for error messages
}

func (p Pos) LineCol() (int, int) {
	return p.Line, p.Col
}

func (p Pos) String() string {
	sample := "?"
	if len(p.Context) > 0 {
		sample = strconv.Quote(string(p.Context))
		sample = sample[1 : len(sample)-1]
	}
	loc := fmt.Sprintf("`...%s...` at offset %d (line=%d, col=%d)", sample, p.I, p.Line, p.Col)
	if p.Filename != "" {
		return p.Filename + ": " + loc
	}
	return loc
}

// Short renders the position as line:col, prefixed with the file name if
// there is one.
func (p Pos) Short() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Col)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}
