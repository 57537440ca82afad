package token

import (
	"unicode/utf8"
)

// Tokenize appends the tokens of src to dst.  Whitespace and commas
// separate tokens and produce none; comments run from '#' to the end of the
// line and are returned as TComment tokens.
func Tokenize(dst []Token, src []byte) ([]Token, error) {
	posDoc := NewPosDoc(src)
	i := 0
	n := len(src)
	for i < n {
		c := src[i]
		switch c {
		case ' ', '\t', '\r', '\n', ',':
			i++
			continue
		case '#':
			j := i
			for j < n && src[j] != '\n' {
				j++
			}
			dst = append(dst, Token{Type: TComment, Pos: posDoc.Pos(i), Bytes: src[i:j]})
			i = j
			continue
		case '{':
			dst = append(dst, Token{Type: TLCurl, Pos: posDoc.Pos(i), Bytes: src[i : i+1]})
			i++
			continue
		case '}':
			dst = append(dst, Token{Type: TRCurl, Pos: posDoc.Pos(i), Bytes: src[i : i+1]})
			i++
			continue
		case '[':
			dst = append(dst, Token{Type: TLSquare, Pos: posDoc.Pos(i), Bytes: src[i : i+1]})
			i++
			continue
		case ']':
			dst = append(dst, Token{Type: TRSquare, Pos: posDoc.Pos(i), Bytes: src[i : i+1]})
			i++
			continue
		case '"':
			sz, err := getString(src[i:])
			if err != nil {
				return nil, NewTokenizeErr(err, posDoc.Pos(i))
			}
			dst = append(dst, Token{Type: TString, Pos: posDoc.Pos(i), Bytes: src[i : i+sz]})
			i += sz
			continue
		}
		if isNumberStart(src[i:]) {
			sz, err := getSingleLiteral(src[i:])
			if err != nil {
				return nil, NewTokenizeErr(err, posDoc.Pos(i))
			}
			dst = append(dst, Token{Type: TNumber, Pos: posDoc.Pos(i), Bytes: src[i : i+sz]})
			i += sz
			continue
		}
		r, rsz := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && rsz <= 1 {
			return nil, NewTokenizeErr(ErrBadUTF8, posDoc.Pos(i))
		}
		if !isIdentStart(r) {
			return nil, UnexpectedErr(string(r), posDoc.Pos(i))
		}
		sz, err := getSingleLiteral(src[i:])
		if err != nil {
			return nil, NewTokenizeErr(err, posDoc.Pos(i))
		}
		dst = append(dst, Token{Type: TIdent, Pos: posDoc.Pos(i), Bytes: src[i : i+sz]})
		i += sz
	}
	return dst, nil
}

// StripComments returns toks without TComment tokens, together with the
// comments that were removed.
func StripComments(toks []Token) (code, comments []Token) {
	code = make([]Token, 0, len(toks))
	for i := range toks {
		if toks[i].Type == TComment {
			comments = append(comments, toks[i])
			continue
		}
		code = append(code, toks[i])
	}
	return code, comments
}
