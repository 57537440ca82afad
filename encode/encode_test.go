package encode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/wbproto/ir"
	"github.com/signadot/wbproto/parse"
)

const src = `#VRML_SIM R2023b utf8
Robot { name "r" # the robot
  children [ Solid { name "a"
    boundingObject USE Base } USE Other
  ]
  device [ ]
  point [ 0 0 0,
      1 1 1 ]
}
`

const want = `#VRML_SIM R2023b utf8

Robot {
  name "r"
  children [
    Solid {
      name "a"
      boundingObject USE Base
    }
    USE Other
  ]
  device [
  ]
  point [ 0 0 0,
      1 1 1 ]
}
`

func mustParse(t *testing.T, s string) *ir.Document {
	t.Helper()
	doc, err := parse.ParseString(s)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestEncode(t *testing.T) {
	doc := mustParse(t, src)
	buf := bytes.NewBuffer(nil)
	if err := Encode(doc, buf); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Error(diff)
	}
}

func TestEncodeIdempotent(t *testing.T) {
	once := MustString(mustParse(t, src))
	twice := MustString(mustParse(t, once))
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Error(diff)
	}
}

func TestEncodeIndent(t *testing.T) {
	doc := mustParse(t, "Solid { children [ Shape { } ] }")
	got := MustString(doc, EncodeIndent(4))
	exp := "Solid {\n    children [\n        Shape {\n        }\n    ]\n}"
	if got != exp {
		t.Errorf("got\n%s\nwant\n%s", got, exp)
	}
}

func TestEncodeNoPrologue(t *testing.T) {
	doc := mustParse(t, src)
	got := MustString(doc, EncodePrologue(false))
	if strings.Contains(got, "VRML_SIM") {
		t.Errorf("prologue written:\n%s", got)
	}
}

func TestEncodeEntity(t *testing.T) {
	doc := mustParse(t, src)
	hs := doc.Search("Solid")
	if len(hs) != 1 {
		t.Fatalf("%d matches", len(hs))
	}
	buf := bytes.NewBuffer(nil)
	if err := EncodeEntity(doc, hs[0], buf); err != nil {
		t.Fatal(err)
	}
	exp := "Solid {\n  name \"a\"\n  boundingObject USE Base\n}\n"
	if diff := cmp.Diff(exp, buf.String()); diff != "" {
		t.Error(diff)
	}
	if err := EncodeEntity(doc, ir.Handle(1000), buf); err == nil {
		t.Error("expected error")
	}
}

func TestEncodeColors(t *testing.T) {
	doc := mustParse(t, "Solid { name \"a%b\" }")
	c := &Colors{
		Default: func(s string, _ ...any) string { return "<" + s + ">" },
		Map:     map[Colorable]func(string, ...any) string{},
	}
	got := MustString(doc, EncodeColors(c))
	exp := "<Solid {>\n  <name> <\"a%b\">\n<}>"
	if got != exp {
		t.Errorf("got\n%s\nwant\n%s", got, exp)
	}
	if s := NewColors().Color(ir.PropertyKind, ContentColor, "100%"); !strings.Contains(s, "100%") {
		t.Errorf("escaped content lost: %q", s)
	}
}
