package main

import (
	"github.com/signadot/wbproto/encode"
	"github.com/signadot/wbproto/ir"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	opts := append(cfg.encOpts(cc.Out), encode.EncodePrologue(!cfg.NoPrologue))
	return eachArg(args, func(_ string, doc *ir.Document) error {
		return encode.Encode(doc, cc.Out, opts...)
	})
}
