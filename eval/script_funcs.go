package eval

import (
	"os"

	"github.com/expr-lang/expr"
	"github.com/signadot/jsondoc/element"
	"github.com/signadot/jsondoc/ir"
)

// exprOpts are the functions available to expressions evaluated at node.
// Paths are resolved from the root of the document holding node.
func exprOpts(node *ir.Node) []expr.Option {
	return []expr.Option{
		expr.Function("whereami", func(params ...any) (any, error) {
			return node.KPath(), nil
		},
			new(func() string)),
		expr.Function("getpath", func(params ...any) (any, error) {
			path := params[0].(string)
			v, _, err := element.Of(node.Root()).GetPath(path).Value()
			if err != nil {
				return nil, err
			}
			return v, nil
		},
			new(func(string) any)),
		expr.Function("haspath", func(params ...any) (any, error) {
			path := params[0].(string)
			el := element.Of(node.Root()).GetPath(path)
			if err := el.Err(); err != nil {
				return nil, err
			}
			return el.IsPresent(), nil
		},
			new(func(string) bool)),
		expr.Function("keys", func(params ...any) (any, error) {
			path := params[0].(string)
			el := element.Of(node.Root()).GetPath(path)
			if err := el.Err(); err != nil {
				return nil, err
			}
			return el.Keys(), nil
		},
			new(func(string) []string)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}
