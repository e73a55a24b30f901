package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/signadot/jsondoc/libdiff"
	"github.com/signadot/jsondoc/parse"
)

func fmtCmd(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Write && len(args) == 0 {
		return fmt.Errorf("%w: -w requires files", cli.ErrUsage)
	}
	for _, file := range inputs(args) {
		if err := fmtFile(cfg, cc, file); err != nil {
			return err
		}
	}
	return nil
}

func fmtFile(cfg *FmtConfig, cc *cli.Context, file string) error {
	d, err := readFile(cc, file)
	if err != nil {
		return err
	}
	name := displayName(file)
	doc, err := parse.Parse(d, cfg.parseOpts(name)...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", name, err)
	}
	if !cfg.Diff && !cfg.Write && !cfg.List {
		return output(cfg.MainConfig, cc, doc)
	}
	tool, err := cfg.tool(nil)
	if err != nil {
		return err
	}
	tool.Colors = nil
	res, err := tool.Print(doc)
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", name, err)
	}
	res += "\n"
	if res == string(d) {
		return nil
	}
	if cfg.List {
		fmt.Fprintln(cc.Out, name)
	}
	if cfg.Diff {
		lines := libdiff.Lines(string(d), res)
		opts := libdiff.UnifiedOptions{
			FromName: name,
			ToName:   name + " (formatted)",
			Context:  cfg.Context,
			Color:    cfg.colorize(cc.Out),
		}
		if err := libdiff.Unified(cc.Out, lines, opts); err != nil {
			return err
		}
	}
	if cfg.Write {
		fi, err := os.Stat(file)
		if err != nil {
			return err
		}
		if err := os.WriteFile(file, []byte(res), fi.Mode().Perm()); err != nil {
			return fmt.Errorf("error writing %s: %w", name, err)
		}
	}
	return nil
}
