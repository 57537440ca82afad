package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/wbproto/ir"
	"github.com/signadot/wbproto/parse"
)

// readArg reads a file argument, "-" being stdin.
func readArg(arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(arg)
}

func loadArg(arg string) (*ir.Document, error) {
	d, err := readArg(arg)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", arg, err)
	}
	name := arg
	if arg == "-" {
		name = "<stdin>"
	}
	return parse.Parse(d, parse.ParseFilename(name))
}

// eachArg calls f on each parsed file argument, stdin if there are none.
func eachArg(args []string, f func(arg string, doc *ir.Document) error) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		doc, err := loadArg(arg)
		if err != nil {
			return err
		}
		if err := f(arg, doc); err != nil {
			return err
		}
	}
	return nil
}
