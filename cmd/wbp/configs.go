package main

import (
	"io"
	"os"

	"github.com/signadot/wbproto/encode"
	"github.com/signadot/wbproto/pipeline"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color  bool   `cli:"name=color desc='encode with color'"`
	Indent int    `cli:"name=indent desc='spaces per nesting level (default from config)'"`
	Config string `cli:"name=config desc='yaml configuration file'"`
	Quiet  bool   `cli:"name=q desc='only log warnings and errors'"`

	Out      string
	CloseOut func() error

	Main *cli.Command

	loaded *pipeline.Config
}

// config loads the pipeline configuration once.
func (cfg *MainConfig) config() (*pipeline.Config, error) {
	if cfg.loaded != nil {
		return cfg.loaded, nil
	}
	c, err := pipeline.LoadConfig(cfg.Config)
	if err != nil {
		return nil, err
	}
	cfg.loaded = c
	return c, nil
}

func (cfg *MainConfig) indent() int {
	if cfg.Indent > 0 {
		return cfg.Indent
	}
	c, err := cfg.config()
	if err != nil {
		theLog.Warn("config", "error", err)
		return 2
	}
	return c.Encode.Indent
}

// useColor reports whether output to w is colorized: always with -color,
// otherwise when w is a terminal and -color was not given explicitly.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name != "color" {
				continue
			}
			if opt.Value != nil {
				return false
			}
			break
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeIndent(cfg.indent()),
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type ViewConfig struct {
	*MainConfig

	NoPrologue bool `cli:"name=np desc='omit the leading comment lines'"`
	View       *cli.Command
}

type SearchConfig struct {
	*MainConfig

	Where string `cli:"name=where desc='expr filter over name, header, content, stage, kind, type, def, use, path, line'"`
	Paths bool   `cli:"name=paths desc='only print paths'"`
	Show  bool   `cli:"name=show desc='print each match'"`

	Search *cli.Command
}

type DumpConfig struct {
	*MainConfig

	Dump *cli.Command
}

type FixConfig struct {
	*MainConfig

	DryRun bool   `cli:"name=n desc='print a diff instead of writing'"`
	Passes string `cli:"name=p desc='comma separated passes to run (default from config)'"`

	Fix *cli.Command
}

type SetConfig struct {
	*MainConfig

	Set *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Context int `cli:"name=U desc='lines of context'"`

	Diff *cli.Command
}

type ValidateConfig struct {
	*MainConfig

	Validate *cli.Command
}

type ConvertConfig struct {
	*MainConfig

	Convert *cli.Command
}
