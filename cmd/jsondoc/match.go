package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/jsondoc"
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/parse"
)

func match(cfg *MatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Command.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: match requires 1 argument, a match document", cli.ErrUsage)
	}
	pattern, err := getMatch(cfg, cc, args[0])
	if err != nil {
		return err
	}
	return eachDoc(cfg.MainConfig, cc, args[1:], func(_ string, doc *ir.Node) error {
		if !jsondoc.Match(doc, pattern) {
			return nil
		}
		if cfg.Trim {
			doc = jsondoc.Trim(pattern, doc)
		}
		return output(cfg.MainConfig, cc, doc)
	})
}

func getMatch(cfg *MatchConfig, cc *cli.Context, arg string) (*ir.Node, error) {
	if cfg.File {
		return getObjFile(cfg.MainConfig, cc, arg)
	}
	res, err := parse.ParseString(arg, cfg.parseOpts("")...)
	if err != nil {
		return nil, fmt.Errorf("error decoding match: %w", err)
	}
	return res, nil
}
