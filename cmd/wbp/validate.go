package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/signadot/wbproto/parse"

	"github.com/scott-cotton/cli"
)

func validate(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	bad := 0
	for _, arg := range args {
		n, err := validateArg(cc.Out, arg)
		if err != nil {
			return err
		}
		bad += n
	}
	if bad != 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// validateArg reports the parse error or structural issues of arg to w
// and returns their number.  Only read errors are returned as errors.
func validateArg(w io.Writer, arg string) (int, error) {
	doc, err := loadArg(arg)
	if err != nil {
		if errors.Is(err, parse.ErrParse) {
			fmt.Fprintln(w, err)
			return 1, nil
		}
		return 0, err
	}
	issues := doc.Check()
	for i := range issues {
		fmt.Fprintf(w, "%s: %s\n", arg, issues[i].String())
	}
	return len(issues), nil
}
