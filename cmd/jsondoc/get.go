package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"github.com/signadot/jsondoc/element"
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/ir/kpath"
	"github.com/signadot/jsondoc/parse"
)

var errAbsent = errors.New("no value")

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a path", cli.ErrUsage)
	}
	kp, err := kpath.Parse(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	var def *ir.Node
	if cfg.Default != "" {
		def, err = parse.ParseString(cfg.Default, parse.ParseAll())
		if err != nil {
			return fmt.Errorf("%w: bad default: %w", cli.ErrUsage, err)
		}
	}
	return eachDoc(cfg.MainConfig, cc, args[1:], func(_ string, doc *ir.Node) error {
		el := element.Of(doc).GetKPath(kp)
		if def != nil {
			el = el.Or(def)
		}
		node, ok, err := el.Node()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w at %s", errAbsent, kp)
		}
		if cfg.Raw && node.Type == ir.StringType {
			_, err := io.WriteString(cc.Out, node.String+"\n")
			return err
		}
		return output(cfg.MainConfig, cc, node)
	})
}
