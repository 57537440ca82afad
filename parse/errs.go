package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/wbproto/token"
)

var (
	ErrParse        = errors.New("parse error")
	ErrMissingValue = errors.New("missing value")
	ErrExpected     = errors.New("expected")
	ErrNotNode      = errors.New("array element is not a node")
)

// Error is returned for any malformed input.  It matches ErrParse and the
// underlying cause under errors.Is.
type Error struct {
	Err      error
	Pos      *token.Pos
	Filename string
}

func (e *Error) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

// Line returns the 1-based line of the error, 0 if unknown.
func (e *Error) Line() int {
	if e.Pos == nil {
		return 0
	}
	return e.Pos.Line() + 1
}

// Col returns the 1-based column of the error, 0 if unknown.
func (e *Error) Col() int {
	if e.Pos == nil {
		return 0
	}
	return e.Pos.Col() + 1
}

func (e *Error) Error() string {
	prefix := e.Filename
	if prefix == "" {
		prefix = "<input>"
	}
	if e.Pos == nil {
		return fmt.Sprintf("%s: %s: %v", prefix, ErrParse, e.Err)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %v", prefix, e.Line(), e.Col(), ErrParse, e.Err)
}

func newError(err error, p *token.Pos, o *parseOpts) *Error {
	return &Error{Err: err, Pos: p, Filename: o.filename}
}

// fromTokenErr turns tokenizer and balance errors into *Error.
func fromTokenErr(err error, o *parseOpts) *Error {
	var te *token.TokenizeErr
	if errors.As(err, &te) {
		p := te.Pos
		return newError(te.Err, &p, o)
	}
	var ie *token.ErrImbalancedStructure
	if errors.As(err, &ie) {
		return newError(ie, ie.At(), o)
	}
	return newError(err, nil, o)
}
