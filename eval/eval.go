// Package eval filters document entities with expr-lang expressions.
//
// An expression sees the entity as
//
//	name, header, content, stage, kind, type, def, use, path, line
//
// and may call
//
//	child(name)   content or header of the first child called name
//	has(name)     whether such a child exists
//	whereami()    the path of the entity
//	getenv(name)  an environment variable
//
// It must evaluate to a boolean, e.g.
//
//	type == "RotationalMotor" && float(child("maxTorque")) > 1
package eval

import (
	"fmt"
	"os"

	"github.com/signadot/wbproto/ir"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

type Env struct {
	Name    string `expr:"name"`
	Header  string `expr:"header"`
	Content string `expr:"content"`
	Stage   int    `expr:"stage"`
	Kind    string `expr:"kind"`
	Type    string `expr:"type"`
	Def     string `expr:"def"`
	Use     string `expr:"use"`
	Path    string `expr:"path"`
	Line    int    `expr:"line"`
}

func NewEnv(doc *ir.Document, h ir.Handle) Env {
	e := doc.Get(h)
	return Env{
		Name:    e.Name,
		Header:  e.Header,
		Content: e.Content,
		Stage:   e.Stage,
		Kind:    e.Kind.String(),
		Type:    e.Type(),
		Def:     e.Def(),
		Use:     e.Use(),
		Path:    doc.Path(h),
		Line:    e.Line,
	}
}

// Filter is a compiled boolean expression.  A Filter is not safe for
// concurrent use.
type Filter struct {
	Source string

	prg *vm.Program
	doc *ir.Document
	h   ir.Handle
}

func Compile(src string) (*Filter, error) {
	f := &Filter{Source: src}
	opts := append([]expr.Option{expr.Env(Env{}), expr.AsBool()}, f.exprOpts()...)
	prg, err := expr.Compile(src, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not compile %q: %w", src, err)
	}
	f.prg = prg
	return f, nil
}

func (f *Filter) exprOpts() []expr.Option {
	return []expr.Option{
		expr.Function("child", func(params ...any) (any, error) {
			c, ok := f.doc.Child(f.h, params[0].(string))
			if !ok {
				return "", nil
			}
			e := f.doc.Get(c)
			if e.Kind == ir.NodeKind {
				return e.Header, nil
			}
			return e.Content, nil
		},
			new(func(string) string)),
		expr.Function("has", func(params ...any) (any, error) {
			_, ok := f.doc.Child(f.h, params[0].(string))
			return ok, nil
		},
			new(func(string) bool)),
		expr.Function("whereami", func(params ...any) (any, error) {
			return f.doc.Path(f.h), nil
		},
			new(func() string)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}

// Match evaluates f on the entity h.
func (f *Filter) Match(doc *ir.Document, h ir.Handle) (bool, error) {
	f.doc, f.h = doc, h
	defer func() { f.doc = nil }()
	out, err := expr.Run(f.prg, NewEnv(doc, h))
	if err != nil {
		return false, fmt.Errorf("error evaluating %q at %s: %w", f.Source, doc.Path(h), err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("%q gave %T, not bool", f.Source, out)
	}
	return b, nil
}

// Select returns the handles in hs matching f, in order.
func (f *Filter) Select(doc *ir.Document, hs []ir.Handle) ([]ir.Handle, error) {
	res := make([]ir.Handle, 0, len(hs))
	for _, h := range hs {
		ok, err := f.Match(doc, h)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, h)
		}
	}
	return res, nil
}
