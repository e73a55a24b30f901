package eval

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/signadot/jsondoc/debug"
	"github.com/signadot/jsondoc/encode"
	"github.com/signadot/jsondoc/gomap"
	"github.com/signadot/jsondoc/ir"
)

// Env holds the variables visible to expressions.
type Env map[string]any

// DocVar is the variable holding the evaluated document as plain Go
// values.
const DocVar = "doc"

func (e Env) with(node *ir.Node) map[string]any {
	res := make(map[string]any, len(e)+1)
	for k, v := range e {
		res[k] = v
	}
	if _, ok := res[DocVar]; !ok && node != nil {
		res[DocVar] = ir.ToAny(node.Root())
	}
	return res
}

// EvalAny compiles and runs src with node as the current node.  node may
// be nil, in which case the document functions are unavailable.
func EvalAny(src string, node *ir.Node, env Env) (any, error) {
	var opts []expr.Option
	if node != nil {
		opts = exprOpts(node)
	}
	program, err := expr.Compile(src, opts...)
	if err != nil {
		return nil, fmt.Errorf("error compiling %q: %w", src, err)
	}
	res, err := vm.Run(program, env.with(node))
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", src, err)
	}
	if debug.Eval() {
		debug.Log("op", "eval", "expr", src, "result", fmt.Sprintf("%#v", res))
	}
	return res, nil
}

// Eval is EvalAny with the result converted to a node.
func Eval(src string, node *ir.Node, env Env) (*ir.Node, error) {
	res, err := EvalAny(src, node, env)
	if err != nil {
		return nil, err
	}
	n, err := gomap.ToIR(res)
	if err != nil {
		return nil, fmt.Errorf("could not convert result of %q: %w", src, err)
	}
	return n, nil
}

// text renders an expression result for interpolation in a string.
func text(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	d, err := gomap.ToJSON(v, gomap.EncodeOptions(encode.Formatted(false)))
	if err != nil {
		return "", err
	}
	return string(d), nil
}
