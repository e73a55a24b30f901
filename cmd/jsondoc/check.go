package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/jsondoc/parse"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	failed := 0
	for _, file := range inputs(args) {
		d, err := readFile(cc, file)
		if err != nil {
			return err
		}
		name := displayName(file)
		_, err = parse.Parse(d, cfg.parseOpts(name)...)
		switch {
		case err != nil:
			failed++
			if !cfg.Quiet {
				fmt.Fprintf(cc.Out, "%s\n", err)
			}
		case !cfg.Quiet:
			fmt.Fprintf(cc.Out, "%s: ok\n", name)
		}
	}
	if failed > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
