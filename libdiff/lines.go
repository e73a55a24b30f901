package libdiff

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Line is one line of a text diff.
type Line struct {
	Op   diffpatch.Operation
	Text string
}

func (l Line) prefix() string {
	switch l.Op {
	case diffpatch.DiffInsert:
		return "+"
	case diffpatch.DiffDelete:
		return "-"
	}
	return " "
}

// Lines diffs two texts line by line.  Each distinct line is mapped to a
// rune and the rune sequences are diffed.
func Lines(from, to string) []Line {
	m := map[string]rune{}
	aLines, bLines := splitLines(from), splitLines(to)
	a, b := lineRunes(m, aLines), lineRunes(m, bLines)
	diffs := diffpatch.New().DiffMainRunes(a, b, false)
	var (
		res    []Line
		ai, bi int
	)
	for _, diff := range diffs {
		for range utf8.RuneCountInString(diff.Text) {
			switch diff.Type {
			case diffpatch.DiffInsert:
				res = append(res, Line{Op: diff.Type, Text: bLines[bi]})
				bi++
			case diffpatch.DiffDelete:
				res = append(res, Line{Op: diff.Type, Text: aLines[ai]})
				ai++
			default:
				res = append(res, Line{Op: diff.Type, Text: aLines[ai]})
				ai++
				bi++
			}
		}
	}
	return res
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func lineRunes(m map[string]rune, lines []string) []rune {
	rs := make([]rune, len(lines))
	for i, l := range lines {
		r, ok := m[l]
		if !ok {
			r = rune(len(m))
			m[l] = r
		}
		rs[i] = r
	}
	return rs
}

// Changed reports whether lines hold any insertion or deletion.
func Changed(lines []Line) bool {
	for _, l := range lines {
		if l.Op != diffpatch.DiffEqual {
			return true
		}
	}
	return false
}

// UnifiedOptions control the rendering of a text diff.
type UnifiedOptions struct {
	FromName string
	ToName   string
	// Context is the number of unchanged lines shown around changes.
	Context int
	Color   bool
}

// Unified writes lines in unified diff format.  Nothing is written when
// the texts are equal.
func Unified(w io.Writer, lines []Line, opts UnifiedOptions) error {
	if !Changed(lines) {
		return nil
	}
	var (
		buf   strings.Builder
		del   = color.New(color.FgRed)
		ins   = color.New(color.FgGreen)
		hunkC = color.New(color.FgCyan)
	)
	for _, c := range []*color.Color{del, ins, hunkC} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	fmt.Fprintf(&buf, "--- %s\n+++ %s\n", opts.FromName, opts.ToName)
	for _, h := range hunks(lines, max(opts.Context, 0)) {
		aLine, bLine := 1, 1
		for _, l := range lines[:h.start] {
			if l.Op != diffpatch.DiffInsert {
				aLine++
			}
			if l.Op != diffpatch.DiffDelete {
				bLine++
			}
		}
		aLen, bLen := 0, 0
		for _, l := range lines[h.start:h.end] {
			if l.Op != diffpatch.DiffInsert {
				aLen++
			}
			if l.Op != diffpatch.DiffDelete {
				bLen++
			}
		}
		buf.WriteString(hunkC.Sprintf("@@ -%d,%d +%d,%d @@", aLine, aLen, bLine, bLen))
		buf.WriteByte('\n')
		for _, l := range lines[h.start:h.end] {
			text := l.prefix() + l.Text
			switch l.Op {
			case diffpatch.DiffDelete:
				text = del.Sprint(text)
			case diffpatch.DiffInsert:
				text = ins.Sprint(text)
			}
			buf.WriteString(text)
			buf.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, buf.String())
	return err
}

type hunk struct {
	start, end int
}

// hunks groups changed lines which are within 2*context lines of each
// other.
func hunks(lines []Line, context int) []hunk {
	var res []hunk
	for i := 0; i < len(lines); i++ {
		if lines[i].Op == diffpatch.DiffEqual {
			continue
		}
		start := max(i-context, 0)
		last := i
		for j := i + 1; j < len(lines) && j <= last+2*context+1; j++ {
			if lines[j].Op != diffpatch.DiffEqual {
				last = j
			}
		}
		end := min(last+context+1, len(lines))
		if n := len(res); n > 0 && res[n-1].end >= start {
			res[n-1].end = end
		} else {
			res = append(res, hunk{start: start, end: end})
		}
		i = last
	}
	return res
}
