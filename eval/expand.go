package eval

import (
	"fmt"
	"strings"

	"github.com/signadot/jsondoc/ir"
)

// Expand evaluates the $[...] references in the string values of doc, in
// place.  A string which is a single reference is replaced by the result
// of the expression, of any type.  References inside longer strings are
// replaced by the text of their result.
func Expand(doc *ir.Node, env Env) error {
	return doc.Visit(func(node *ir.Node, isPost bool) (bool, error) {
		if isPost || node.Type != ir.StringType {
			return true, nil
		}
		if src, ok := wholeRef(node.String); ok {
			repl, err := Eval(src, node, env)
			if err != nil {
				return false, fmt.Errorf("at %q: %w", node.KPath(), err)
			}
			parent, index, field := node.Parent, node.ParentIndex, node.ParentField
			repl.CloneTo(node)
			node.Parent, node.ParentIndex, node.ParentField = parent, index, field
			return false, nil
		}
		s, err := ExpandString(node.String, node, env)
		if err != nil {
			return false, fmt.Errorf("at %q: %w", node.KPath(), err)
		}
		node.String = s
		return true, nil
	})
}

// wholeRef reports whether s is exactly one $[...] reference without
// escapes, returning the expression.
func wholeRef(s string) (string, bool) {
	if !strings.HasPrefix(s, "$[") || !strings.HasSuffix(s, "]") {
		return "", false
	}
	inner := s[2 : len(s)-1]
	if strings.ContainsAny(inner, `]\`) {
		return "", false
	}
	return strings.TrimSpace(inner), true
}

// ExpandString replaces each $[expr] in s by the text of the result of
// expr evaluated at node.  Within an expression a backslash escapes the
// next character, so "\]" is a literal ']'.  An unterminated reference is
// kept as is.
func ExpandString(s string, node *ir.Node, env Env) (string, error) {
	var (
		out  strings.Builder
		expr strings.Builder
		in   = false
		from = 0
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case !in && c == '$' && i+1 < len(s) && s[i+1] == '[':
			in = true
			from = i
			expr.Reset()
			i++
		case !in:
			out.WriteByte(c)
		case c == '\\' && i+1 < len(s):
			i++
			expr.WriteByte(s[i])
		case c == ']':
			in = false
			v, err := EvalAny(strings.TrimSpace(expr.String()), node, env)
			if err != nil {
				return "", err
			}
			t, err := text(v)
			if err != nil {
				return "", err
			}
			out.WriteString(t)
		default:
			expr.WriteByte(c)
		}
	}
	if in {
		out.WriteString(s[from:])
	}
	return out.String(), nil
}
