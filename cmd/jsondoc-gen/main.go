package main

import (
	"context"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/signadot/jsondoc/gomap/codegen"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}

func MainCommand() *cli.Command {
	cfg := &Config{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommand("jsondoc-gen").
		WithSynopsis("jsondoc-gen [opts]").
		WithDescription("Generate FromJSON methods from constructors annotated with //jsondoc:ctor directives.").
		WithOpts(sOpts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}

type Config struct {
	OutputFile  string `cli:"name=o desc='output file for generated Go code (default: <package>_jsondoc_gen.go)'"`
	Dir         string `cli:"name=dir desc='directory to scan for Go files (default: current directory)'"`
	Recursive   bool   `cli:"name=recursive desc='scan subdirectories recursively'"`
	NoTypeCheck bool   `cli:"name=no-typecheck desc='skip type checking constructors against the loaded package'"`
}

func run(cfg *Config, cc *cli.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: unexpected arguments %v", cli.ErrUsage, args)
	}
	dir := cfg.Dir
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
	}
	if cfg.OutputFile != "" && cfg.Recursive {
		return fmt.Errorf("%w: cannot specify both -o and -recursive", cli.ErrUsage)
	}

	packages, err := codegen.DiscoverPackages(dir, cfg.Recursive)
	if err != nil {
		return fmt.Errorf("failed to discover packages: %w", err)
	}
	if len(packages) == 0 {
		return fmt.Errorf("no Go packages found in %q", dir)
	}

	config := &codegen.CodegenConfig{OutputFile: cfg.OutputFile}
	if !cfg.NoTypeCheck {
		config.Loader = codegen.NewPackageLoader()
	}
	for _, pkg := range packages {
		ctors, err := codegen.GeneratePackage(pkg, config)
		if err != nil {
			return fmt.Errorf("failed to process package %q: %w", pkg.Path, err)
		}
		if len(ctors) > 0 {
			fmt.Fprintf(cc.Out, "%s: %d constructors\n", pkg.Path, len(ctors))
		}
	}
	return nil
}
