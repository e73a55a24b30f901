package main

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
	"github.com/signadot/jsondoc/eval"
	"github.com/signadot/jsondoc/ir"
)

func evalCmd(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		return err
	}
	env, err := eval.LoadEnv()
	if err != nil {
		return err
	}
	env = env.Merge(eval.Env(cfg.Env))
	if cfg.Expand {
		return eachDoc(cfg.MainConfig, cc, args, func(_ string, doc *ir.Node) error {
			if err := eval.Expand(doc, env); err != nil {
				return err
			}
			return output(cfg.MainConfig, cc, doc)
		})
	}
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: eval requires an expression and at most one file", cli.ErrUsage)
	}
	var doc *ir.Node
	if len(args) == 2 {
		doc, err = getObjFile(cfg.MainConfig, cc, args[1])
		if err != nil {
			return err
		}
	}
	res, err := eval.Eval(args[0], doc, env)
	if err != nil {
		return err
	}
	return output(cfg.MainConfig, cc, res)
}

// envFunc sets the variable at the dotted path key to the YAML value val,
// creating intermediate objects.
func envFunc(env map[string]any, a string) error {
	key, val, ok := strings.Cut(a, "=")
	if !ok {
		return fmt.Errorf("%w: argument %q expected key=val", cli.ErrUsage, a)
	}
	var v any
	err := yaml.Unmarshal([]byte(val), &v)
	if err != nil {
		return err
	}
	parts := strings.Split(key, ".")
	n := len(parts)
	tmpEnv := env
	for i, part := range parts {
		if i == n-1 {
			tmpEnv[part] = v
			break
		}
		next := tmpEnv[part]
		if next == nil {
			next = map[string]any{}
			tmpEnv[part] = next
		}
		nextEnv, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("cannot access %s, list or scalar", strings.Join(parts[:i+1], "."))
		}
		tmpEnv = nextEnv
	}
	return nil
}
