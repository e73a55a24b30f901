package eval

import (
	"fmt"
	"os"

	"github.com/signadot/jsondoc/debug"
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/parse"
)

const (
	EnvEnv = "JSONDOC_ENV"
)

// LoadEnv returns the environment held as a JSON object in $JSONDOC_ENV,
// or nil when the variable is unset.
func LoadEnv() (Env, error) {
	envEnv := os.Getenv(EnvEnv)
	if envEnv == "" {
		return nil, nil
	}
	node, err := parse.ParseString(envEnv)
	if err != nil {
		return nil, fmt.Errorf("error decoding env $%s: %w", EnvEnv, err)
	}
	m, ok := ir.ToAny(node).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("error decoding env $%s: wrong type %s", EnvEnv, node.Type)
	}
	if debug.Eval() {
		debug.Log("op", "load env", "var", EnvEnv, "keys", len(m))
	}
	return Env(m), nil
}

// Merge returns a copy of e with the top level variables of o added,
// replacing those of e.
func (e Env) Merge(o Env) Env {
	res := make(Env, len(e)+len(o))
	for k, v := range e {
		res[k] = v
	}
	for k, v := range o {
		res[k] = v
	}
	return res
}
