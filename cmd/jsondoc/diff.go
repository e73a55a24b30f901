package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/jsondoc/libdiff"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	if args[0] == "-" && args[1] == "-" {
		return fmt.Errorf("%w: at most one input may be stdin", cli.ErrUsage)
	}
	a, err := getObjFile(cfg.MainConfig, cc, args[0])
	if err != nil {
		return err
	}
	b, err := getObjFile(cfg.MainConfig, cc, args[1])
	if err != nil {
		return err
	}
	changes := libdiff.Diff(a, b)
	if len(changes) == 0 {
		return nil
	}
	if cfg.JSON {
		if err := output(cfg.MainConfig, cc, libdiff.ToIR(changes)); err != nil {
			return err
		}
		return cli.ExitCodeErr(1)
	}
	for i := range changes {
		if _, err := fmt.Fprintln(cc.Out, changes[i].String()); err != nil {
			return err
		}
	}
	return cli.ExitCodeErr(1)
}
