package main

import (
	"fmt"

	"github.com/signadot/wbproto/encode"
	"github.com/signadot/wbproto/ir"
	"github.com/signadot/wbproto/libdiff"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two files", cli.ErrUsage)
	}
	if cfg.Context < 0 {
		return fmt.Errorf("%w: -U must not be negative", cli.ErrUsage)
	}
	from, err := loadArg(args[0])
	if err != nil {
		return err
	}
	to, err := loadArg(args[1])
	if err != nil {
		return err
	}
	if ir.Equal(from, to) {
		return nil
	}
	opts := []encode.EncodeOption{
		encode.EncodeIndent(cfg.indent()),
		encode.EncodePrologue(false),
	}
	lines := libdiff.Lines(encode.MustString(from, opts...), encode.MustString(to, opts...))
	var colorize func(libdiff.Op, string) string
	if cfg.useColor(cc.Out) {
		colorize = diffColor
	}
	fmt.Fprint(cc.Out, libdiff.Format(args[0], args[1], lines, cfg.Context, colorize))
	return cli.ExitCodeErr(1)
}

var (
	insertColor = color.New(color.FgGreen)
	deleteColor = color.New(color.FgRed)
)

func diffColor(op libdiff.Op, s string) string {
	switch op {
	case libdiff.Insert:
		return insertColor.Sprint(s)
	case libdiff.Delete:
		return deleteColor.Sprint(s)
	}
	return s
}
