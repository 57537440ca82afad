package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/signadot/wbproto/pipeline"

	"github.com/scott-cotton/cli"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: convert requires a robot directory and an output directory", cli.ErrUsage)
	}
	pcfg, err := cfg.config()
	if err != nil {
		return err
	}
	if cfg.Indent > 0 {
		pcfg.Encode.Indent = cfg.Indent
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	res, err := pipeline.New(pcfg, theLog).Run(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	for _, r := range res.Reports {
		fmt.Fprintln(cc.Out, r.String())
	}
	fmt.Fprintln(cc.Out, res.Proto)
	return nil
}
