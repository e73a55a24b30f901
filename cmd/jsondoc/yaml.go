package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
	"github.com/signadot/jsondoc/gomap"
	"github.com/signadot/jsondoc/ir"
)

func yamlCmd(cfg *YAMLConfig, cc *cli.Context, args []string) error {
	args, err := cfg.YAML.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Reverse {
		for _, file := range inputs(args) {
			if err := fromYAMLFile(cfg, cc, file); err != nil {
				return fmt.Errorf("error processing %s: %w", displayName(file), err)
			}
		}
		return nil
	}
	return eachDoc(cfg.MainConfig, cc, args, func(_ string, doc *ir.Node) error {
		d, err := yaml.Marshal(toYAML(doc))
		if err != nil {
			return err
		}
		_, err = cc.Out.Write(d)
		return err
	})
}

// toYAML converts node to values go-yaml renders in document order.
func toYAML(node *ir.Node) any {
	switch node.Type {
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(node.Values))
		for i, f := range node.Fields {
			res[i] = yaml.MapItem{Key: f.String, Value: toYAML(node.Values[i])}
		}
		return res
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = toYAML(v)
		}
		return res
	case ir.NumberType:
		if u, err := node.AsUint64(); err == nil && u > 1<<63-1 {
			return u
		}
	}
	return ir.ToAny(node)
}

func fromYAMLFile(cfg *YAMLConfig, cc *cli.Context, file string) error {
	d, err := readFile(cc, file)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(d), yaml.UseOrderedMap())
	for {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		node, err := fromYAML(v)
		if err != nil {
			return err
		}
		if err := output(cfg.MainConfig, cc, node); err != nil {
			return err
		}
	}
}

// fromYAML converts decoded YAML to a node, keeping mapping order.
// Mapping keys which are not strings are rendered as text.
func fromYAML(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		kvs := make([]ir.KeyVal, len(x))
		for i, item := range x {
			val, err := fromYAML(item.Value)
			if err != nil {
				return nil, err
			}
			kvs[i] = ir.KeyVal{Key: fmt.Sprint(item.Key), Val: val}
		}
		return ir.FromKeyVals(kvs), nil
	case []any:
		vals := make([]*ir.Node, len(x))
		for i, e := range x {
			val, err := fromYAML(e)
			if err != nil {
				return nil, err
			}
			vals[i] = val
		}
		return ir.FromSlice(vals), nil
	}
	return gomap.ToIR(v)
}
