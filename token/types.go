package token

import (
	"fmt"
)

type TokenType int

const (
	TIdent TokenType = iota
	TNumber
	TString
	TLCurl
	TRCurl
	TLSquare
	TRSquare
	TComment
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TIdent:   "TIdent",
		TNumber:  "TNumber",
		TString:  "TString",
		TLCurl:   "TLCurl",
		TRCurl:   "TRCurl",
		TLSquare: "TLSquare",
		TRSquare: "TRSquare",
		TComment: "TComment",
	}[t]
}

type Token struct {
	Type  TokenType
	Pos   *Pos
	Bytes []byte
}

// End returns the offset just past the token.
func (t *Token) End() int {
	return t.Pos.I + len(t.Bytes)
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

func (t *Token) String() string {
	return string(t.Bytes)
}

// Is reports whether t is the identifier kw.
func (t *Token) Is(kw string) bool {
	return t.Type == TIdent && string(t.Bytes) == kw
}

// IsValue reports whether t can be part of a scalar field value.
func (t *Token) IsValue() bool {
	switch t.Type {
	case TNumber, TString:
		return true
	case TIdent:
		return IsValueKeyword(t.Bytes)
	}
	return false
}

type TokenizeErr struct {
	Err error
	Pos Pos
}

func (t *TokenizeErr) Unwrap() error {
	return t.Err
}

func NewTokenizeErr(e error, p *Pos) *TokenizeErr {
	return &TokenizeErr{Err: e, Pos: *p}
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}

func UnexpectedErr(what string, p *Pos) error {
	return NewTokenizeErr(fmt.Errorf("%w %s", ErrUnexpected, what), p)
}
