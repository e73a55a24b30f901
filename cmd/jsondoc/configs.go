package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/signadot/jsondoc"
	"github.com/signadot/jsondoc/encode"
	"github.com/signadot/jsondoc/parse"
	"github.com/signadot/jsondoc/token"
)

type MainConfig struct {
	Indent  int  `cli:"name=indent desc='spaces per nesting level'"`
	Compact bool `cli:"name=c aliases=compact desc='output on a single line'"`
	ASCII   bool `cli:"name=a aliases=ascii desc='escape characters outside ASCII'"`
	Latin1  bool `cli:"name=latin1 desc='escape characters outside Latin-1'"`
	Color   bool `cli:"name=color desc='output with color'"`
	Strict  bool `cli:"name=strict desc='reject comments and trailing commas'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) charset() token.Charset {
	switch {
	case cfg.ASCII:
		return token.ASCII
	case cfg.Latin1:
		return token.Latin1
	}
	return token.UTF8
}

func (cfg *MainConfig) parseOpts(file string) []parse.ParseOption {
	res := []parse.ParseOption{parse.ParseAll()}
	if file != "" {
		res = append(res, parse.WithFilename(file))
	}
	if cfg.Strict {
		res = append(res, parse.ParseStrict())
	}
	return res
}

// tool returns the settings for output to w.  Colors are used when asked
// for, or when w is a terminal and -color was not given.
func (cfg *MainConfig) tool(w io.Writer) (*jsondoc.Tool, error) {
	if cfg.Indent < 0 {
		return nil, fmt.Errorf("%w: negative indent %d", cli.ErrUsage, cfg.Indent)
	}
	t := jsondoc.NewTool()
	t.Indent = cfg.Indent
	t.Formatted = !cfg.Compact
	t.Charset = cfg.charset()
	if cfg.colorize(w) {
		t.Colors = encode.NewColors()
	}
	return t, nil
}

func (cfg *MainConfig) colorize(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" && opt.Value != nil {
			return false
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type ViewConfig struct {
	*MainConfig
	View *cli.Command
}

type GetConfig struct {
	*MainConfig
	Default string `cli:"name=d aliases=default desc='JSON value to print when the path is absent'"`
	Raw     bool   `cli:"name=r aliases=raw desc='print strings without quotes'"`

	Get *cli.Command
}

type FmtConfig struct {
	*MainConfig
	Diff    bool `cli:"name=d desc='print a diff of each input against its formatted form'"`
	Write   bool `cli:"name=w desc='write the formatted result back to the file'"`
	List    bool `cli:"name=l desc='list files whose formatting differs'"`
	Context int  `cli:"name=U desc='lines of context in diffs'"`

	Fmt *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q desc='print nothing, only set the exit code'"`

	Check *cli.Command
}

type EvalConfig struct {
	*MainConfig
	Env    map[string]any
	Expand bool `cli:"name=x desc='expand $[expr] references in the documents'"`

	Eval *cli.Command
}

type YAMLConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='convert YAML to JSON'"`

	YAML *cli.Command
}

type MatchConfig struct {
	*cli.Command
	*MainConfig

	Trim bool `cli:"name=trim desc='trim the results to the match'"`
	File bool `cli:"name=f desc='consider match a file path'"`
}

type DiffConfig struct {
	*MainConfig
	JSON bool `cli:"name=j aliases=json desc='output the changes as JSON'"`

	Diff *cli.Command
}
