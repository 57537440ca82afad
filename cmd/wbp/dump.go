package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/wbproto/ir"

	"github.com/scott-cotton/cli"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	return eachArg(args, func(_ string, doc *ir.Document) error {
		return dumpDoc(cc.Out, doc)
	})
}

func dumpDoc(w io.Writer, doc *ir.Document) error {
	for _, root := range doc.Roots {
		err := doc.Visit(root, func(h ir.Handle, isPost bool) (bool, error) {
			if isPost {
				return true, nil
			}
			fmt.Fprintln(w, dumpLine(doc.Get(h)))
			return true, nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func dumpLine(e *ir.Entity) string {
	text := ""
	switch e.Kind {
	case ir.NodeKind:
		text = e.Header
	case ir.PropertyKind:
		text = e.Content
	}
	name := e.Name
	if name == "" {
		name = "-"
	}
	res := fmt.Sprintf("%s%d %s %s", strings.Repeat(" ", e.Stage), e.Stage, e.Kind, name)
	if text != "" {
		res += " " + strconv.Quote(text)
	}
	return res
}
