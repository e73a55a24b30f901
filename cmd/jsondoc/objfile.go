package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/parse"
)

// inputs are the files named in args, or stdin when there are none.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

func readFile(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

func displayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}

// getObjFile reads and parses the document in path, "-" being stdin.
func getObjFile(cfg *MainConfig, cc *cli.Context, path string) (*ir.Node, error) {
	d, err := readFile(cc, path)
	if err != nil {
		return nil, err
	}
	node, err := parse.Parse(d, cfg.parseOpts(displayName(path))...)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", displayName(path), err)
	}
	return node, nil
}

// eachDoc calls f with the document of each input, separating outputs by
// a newline.
func eachDoc(cfg *MainConfig, cc *cli.Context, args []string, f func(file string, doc *ir.Node) error) error {
	for _, file := range inputs(args) {
		doc, err := getObjFile(cfg, cc, file)
		if err != nil {
			return err
		}
		if err := f(file, doc); err != nil {
			return fmt.Errorf("error processing %s: %w", displayName(file), err)
		}
	}
	return nil
}

func output(cfg *MainConfig, cc *cli.Context, node *ir.Node) error {
	tool, err := cfg.tool(cc.Out)
	if err != nil {
		return err
	}
	if err := tool.PrintTo(cc.Out, node); err != nil {
		return fmt.Errorf("error encoding output: %w", err)
	}
	if _, err := io.WriteString(cc.Out, "\n"); err != nil {
		return err
	}
	return nil
}
