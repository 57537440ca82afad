package token

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type tokTest struct {
	in    string
	types []TokenType
	texts []string
}

func TestTokenize(t *testing.T) {
	tts := []tokTest{
		{
			in:    `Solid { name "a" }`,
			types: []TokenType{TIdent, TLCurl, TIdent, TString, TRCurl},
			texts: []string{"Solid", "{", "name", `"a"`, "}"},
		},
		{
			in:    "translation 0, -1.5 .2e3 # c\n",
			types: []TokenType{TIdent, TNumber, TNumber, TNumber, TComment},
			texts: []string{"translation", "0", "-1.5", ".2e3", "# c"},
		},
		{
			in:    `url ["a{b" "c\"]"]`,
			types: []TokenType{TIdent, TLSquare, TString, TString, TRSquare},
			texts: []string{"url", "[", `"a{b"`, `"c\"]"`, "]"},
		},
		{
			in:    "DEF _x-1 Mesh{}",
			types: []TokenType{TIdent, TIdent, TIdent, TLCurl, TRCurl},
			texts: []string{"DEF", "_x-1", "Mesh", "{", "}"},
		},
		{
			in:    "#VRML_SIM R2023b utf8\n\n",
			types: []TokenType{TComment},
			texts: []string{"#VRML_SIM R2023b utf8"},
		},
	}
	for _, tt := range tts {
		toks, err := Tokenize(nil, []byte(tt.in))
		if err != nil {
			t.Errorf("%q: %v", tt.in, err)
			continue
		}
		var types []TokenType
		var texts []string
		for i := range toks {
			types = append(types, toks[i].Type)
			texts = append(texts, toks[i].String())
		}
		if diff := cmp.Diff(tt.types, types); diff != "" {
			t.Errorf("%q: %s", tt.in, diff)
		}
		if diff := cmp.Diff(tt.texts, texts); diff != "" {
			t.Errorf("%q: %s", tt.in, diff)
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	type et struct {
		in   string
		err  error
		line int
	}
	ets := []et{
		{in: "name \"abc", err: ErrUnterminated, line: 0},
		{in: "a\nb \"x\\\"", err: ErrUnterminated, line: 1},
		{in: "a\n\n 'x'", err: ErrUnexpected, line: 2},
		{in: "a \xff", err: ErrBadUTF8, line: 0},
	}
	for _, e := range ets {
		_, err := Tokenize(nil, []byte(e.in))
		if !errors.Is(err, e.err) {
			t.Errorf("%q: got %v want %v", e.in, err, e.err)
			continue
		}
		var te *TokenizeErr
		if !errors.As(err, &te) {
			t.Errorf("%q: %T", e.in, err)
			continue
		}
		if te.Pos.Line() != e.line {
			t.Errorf("%q: line %d want %d", e.in, te.Pos.Line(), e.line)
		}
	}
}

func TestPositions(t *testing.T) {
	toks, err := Tokenize(nil, []byte("a {\n  b 1\n}"))
	if err != nil {
		t.Fatal(err)
	}
	b := toks[2]
	l, c := b.Pos.LineCol()
	if l != 1 || c != 2 {
		t.Errorf("b at %d:%d", l, c)
	}
	if s := b.Pos.String(); !strings.Contains(s, "line=2, col=3") {
		t.Errorf("got %q", s)
	}
}

func TestBalance(t *testing.T) {
	toks, err := Tokenize(nil, []byte("a { b [ c ] d { } }"))
	if err != nil {
		t.Fatal(err)
	}
	m, err := Balance(toks)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{-1, 9, -1, 5, -1, -1, -1, 8, -1, -1}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Error(diff)
	}
	for _, in := range []string{"a {", "a }", "a [ }", "{ ] }"} {
		toks, err := Tokenize(nil, []byte(in))
		if err != nil {
			t.Fatal(err)
		}
		_, err = Balance(toks)
		var ie *ErrImbalancedStructure
		if !errors.As(err, &ie) || !errors.Is(err, ErrDocBalance) {
			t.Errorf("%q: got %v", in, err)
		}
	}
}

func TestStripComments(t *testing.T) {
	toks, err := Tokenize(nil, []byte("# a\nb # c\n"))
	if err != nil {
		t.Fatal(err)
	}
	code, comments := StripComments(toks)
	if len(code) != 1 || len(comments) != 2 {
		t.Errorf("%d code %d comments", len(code), len(comments))
	}
}
