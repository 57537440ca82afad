package main

import (
	"fmt"

	"github.com/signadot/wbproto/encode"
	"github.com/signadot/wbproto/ir"
	"github.com/signadot/wbproto/protofile"

	"github.com/scott-cotton/cli"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: set requires a path, a value and a file", cli.ErrUsage)
	}
	path, value, file := args[0], args[1], args[2]
	doc, err := protofile.Load(file)
	if err != nil {
		return err
	}
	if err := setPath(doc, path, value); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	plain := []encode.EncodeOption{encode.EncodeIndent(cfg.indent())}
	if cfg.Out != "" && cfg.Out != "-" {
		return encode.Encode(doc, cc.Out, plain...)
	}
	saved, err := protofile.Save(doc, file, plain...)
	if err != nil {
		return err
	}
	theLog.Info("set", "file", file, "path", path, "saved", saved)
	return nil
}

// setPath sets the content of the property at path, or the header of the
// node at path.
func setPath(doc *ir.Document, path, value string) error {
	h, ok := doc.Lookup(path)
	if !ok {
		return fmt.Errorf("no entity at %s", path)
	}
	switch doc.Get(h).Kind {
	case ir.PropertyKind:
		return doc.SetContent(h, value)
	case ir.NodeKind:
		return doc.SetHeader(h, value)
	}
	return fmt.Errorf("%s is a container", path)
}
