package main

import (
	"fmt"
	"io"

	"github.com/signadot/wbproto/encode"
	"github.com/signadot/wbproto/eval"
	"github.com/signadot/wbproto/ir"

	"github.com/scott-cotton/cli"
)

func search(cfg *SearchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Search.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: search requires a query", cli.ErrUsage)
	}
	query := args[0]
	var filter *eval.Filter
	if cfg.Where != "" {
		filter, err = eval.Compile(cfg.Where)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	return eachArg(args[1:], func(arg string, doc *ir.Document) error {
		hs := doc.Search(query)
		if filter != nil {
			hs, err = filter.Select(doc, hs)
			if err != nil {
				return fmt.Errorf("error filtering %s: %w", arg, err)
			}
		}
		return cfg.printMatches(cc.Out, arg, doc, hs)
	})
}

func (cfg *SearchConfig) printMatches(w io.Writer, arg string, doc *ir.Document, hs []ir.Handle) error {
	for _, h := range hs {
		if cfg.Paths {
			fmt.Fprintln(w, doc.Path(h))
			continue
		}
		e := doc.Get(h)
		fmt.Fprintf(w, "%s:%d\t%s\t%s\tstage=%d\n", arg, e.Line, e.Kind, doc.Path(h), e.Stage)
		if !cfg.Show {
			continue
		}
		if err := encode.EncodeEntity(doc, h, w, cfg.encOpts(w)...); err != nil {
			return err
		}
	}
	return nil
}
