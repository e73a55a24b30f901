package main

import (
	"github.com/scott-cotton/cli"
	"github.com/signadot/jsondoc/ir"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	return eachDoc(cfg.MainConfig, cc, args, func(_ string, doc *ir.Node) error {
		return output(cfg.MainConfig, cc, doc)
	})
}
