package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/signadot/wbproto/encode"
	"github.com/signadot/wbproto/fix"
	"github.com/signadot/wbproto/libdiff"
	"github.com/signadot/wbproto/pipeline"
	"github.com/signadot/wbproto/protofile"

	"github.com/scott-cotton/cli"
)

func fixFile(cfg *FixConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fix.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: fix requires exactly one file", cli.ErrUsage)
	}
	path := args[0]
	pcfg, err := cfg.config()
	if err != nil {
		return err
	}
	passes := pcfg.EnabledPasses()
	if cfg.Passes != "" {
		passes, err = pcfg.SelectPasses(splitList(cfg.Passes))
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	pipeline.SetDir(passes, filepath.Dir(path))
	doc, err := protofile.Load(path)
	if err != nil {
		return err
	}
	plain := []encode.EncodeOption{encode.EncodeIndent(cfg.indent())}
	before := encode.MustString(doc, plain...)
	reports, err := fix.Run(doc, theLog, passes...)
	if err != nil {
		return err
	}
	for _, r := range reports {
		theLog.Info("pass", "file", path, "report", r.String())
	}
	switch {
	case cfg.DryRun:
		after := encode.MustString(doc, plain...)
		lines := libdiff.Lines(before, after)
		var colorize func(libdiff.Op, string) string
		if cfg.useColor(cc.Out) {
			colorize = diffColor
		}
		fmt.Fprint(cc.Out, libdiff.Format(path, path, lines, 3, colorize))
		return nil
	case cfg.Out != "" && cfg.Out != "-":
		return encode.Encode(doc, cc.Out, plain...)
	}
	saved, err := protofile.Save(doc, path, plain...)
	if err != nil {
		return err
	}
	if saved {
		theLog.Info("saved", "file", path, "backup", path+protofile.BackupSuffix)
	}
	return nil
}

func splitList(s string) []string {
	var res []string
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			res = append(res, f)
		}
	}
	return res
}
