package parse

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/wbproto/encode"
	"github.com/signadot/wbproto/ir"
	"github.com/signadot/wbproto/token"
)

const robotProto = `#VRML_SIM R2023b utf8
# license: Apache 2.0

EXTERNPROTO "webots://projects/objects/Mesh.proto"
IMPORTABLE EXTERNPROTO "Leg.proto"

PROTO Robot [
  field SFVec3f translation 0 0 0 # where
  field SFString name "robot"
]
{
  Robot {
    translation IS translation
    name IS name
    children [
      DEF Body Shape {
        geometry DEF Base Mesh {
          url [
            "meshes/Base.STL"
          ]
        }
      }
      HingeJoint {
        jointParameters HingeJointParameters {
          axis 0 0 1
        }
        device [
          RotationalMotor {
            name "m1"
            maxTorque 5.0
          }
        ]
        endPoint Solid {
          name "LeftLeg_Empty"
          boundingObject USE Base
          physics NULL
          children [ ]
        }
      }
    ]
    boundingObject USE Body
    controller "<extern>"
    supervisor FALSE
  }
}
`

type parseTest struct {
	in string
}

func TestParseOK(t *testing.T) {
	pts := []parseTest{
		{in: ``},
		{in: `# only a comment`},
		{in: `Solid { }`},
		{in: `Solid {}`},
		{in: `DEF A Solid { name "a" }`},
		{in: `Transform { translation 1, 2, 3 rotation 0 1 0 -1.57 }`},
		{in: `Shape { geometry Box { size .1 .1 .1 } }`},
		{in: `Group { children [ USE A USE B ] }`},
		{in: `Group { children [ ] }`},
		{in: `Group { children [] }`},
		{in: `Mesh { url [ "a.stl" "b.stl" ] }`},
		{in: `Solid { name "a { not a brace [" }`},
		{in: `Solid { name "say \"hi\"" }`},
		{in: "Solid { description \"two\nlines\" }"},
		{in: `Solid { physics NULL locked TRUE }`},
		{in: `EXTERNPROTO "a.proto"`},
		{in: robotProto},
	}
	for i := range pts {
		pt := &pts[i]
		doc, err := Parse([]byte(pt.in))
		if err != nil {
			t.Errorf("# doc\n%s\n# error %v", pt.in, err)
			continue
		}
		t.Logf("\n%s\n", encode.MustString(doc))
	}
}

type entry struct {
	Kind    ir.Kind
	Name    string
	Header  string
	Content string
	Stage   int
}

func entries(doc *ir.Document) []entry {
	var res []entry
	for _, h := range doc.Search("") {
		e := doc.Get(h)
		res = append(res, entry{Kind: e.Kind, Name: e.Name, Header: e.Header, Content: e.Content, Stage: e.Stage})
	}
	return res
}

func TestParseEntities(t *testing.T) {
	doc, err := ParseString(`Robot {
  children [
    DEF Body Shape { geometry DEF Base Mesh { url "meshes/Base.STL" } }
    USE Body
  ]
  boundingObject USE Base
  translation IS translation
  rotation 0 1 0 # comment
    1.57
  recognitionColors [ 1 0 0, 0 1 0 ]
  device [ ]
}`)
	if err != nil {
		t.Fatal(err)
	}
	P, N, C := ir.PropertyKind, ir.NodeKind, ir.ContainerKind
	want := []entry{
		{N, "", "Robot {", "", 0},
		{C, "children", "", "", 1},
		{N, "", "DEF Body Shape {", "", 2},
		{N, "geometry", "DEF Base Mesh {", "", 3},
		{P, "url", "", `"meshes/Base.STL"`, 4},
		{N, "", "USE Body", "", 2},
		{N, "boundingObject", "USE Base", "", 1},
		{P, "translation", "", "IS translation", 1},
		{P, "rotation", "", "0 1 0\n    1.57", 1},
		{P, "recognitionColors", "", "[ 1 0 0, 0 1 0 ]", 1},
		{C, "device", "", "", 1},
	}
	if diff := cmp.Diff(want, entries(doc)); diff != "" {
		t.Error(diff)
	}
}

func TestParseProto(t *testing.T) {
	doc, err := ParseString(robotProto, ParseFilename("Robot.proto"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"#VRML_SIM R2023b utf8", "# license: Apache 2.0"}, doc.Prologue); diff != "" {
		t.Error(diff)
	}
	if len(doc.Roots) != 3 {
		t.Fatalf("%d roots", len(doc.Roots))
	}
	ext := doc.Get(doc.Roots[1])
	if ext.Name != "IMPORTABLE EXTERNPROTO" || ext.Content != `"Leg.proto"` {
		t.Errorf("got %q %q", ext.Name, ext.Content)
	}
	proto := doc.Get(doc.Roots[2])
	wantHeader := "PROTO Robot [\n  field SFVec3f translation 0 0 0\n  field SFString name \"robot\"\n]\n{"
	if proto.Header != wantHeader {
		t.Errorf("header %q", proto.Header)
	}
	if proto.Line != 7 || proto.EndLine != 45 {
		t.Errorf("lines %d-%d", proto.Line, proto.EndLine)
	}
	if issues := doc.Check(); len(issues) != 0 {
		t.Errorf("issues %v", issues)
	}
	if doc.Mutated() {
		t.Error("fresh document is mutated")
	}
	motors := doc.Search("RotationalMotor")
	if len(motors) != 1 {
		t.Fatalf("%d motors", len(motors))
	}
	mt, ok := doc.Child(motors[0], "maxTorque")
	if !ok || doc.Get(mt).Stage != 6 || doc.Get(mt).Line != 30 {
		t.Errorf("maxTorque %v %+v", ok, doc.Get(mt))
	}
	noPro, err := ParseString(robotProto, ParsePrologue(false))
	if err != nil {
		t.Fatal(err)
	}
	if len(noPro.Prologue) != 0 {
		t.Error("prologue kept")
	}
}

func TestRoundTrip(t *testing.T) {
	for _, in := range []string{robotProto, `Group { children [ USE A Shape { } ] }`} {
		a, err := ParseString(in)
		if err != nil {
			t.Fatal(err)
		}
		out := encode.MustString(a)
		b, err := ParseString(out)
		if err != nil {
			t.Fatalf("reparse: %v\n%s", err, out)
		}
		if !ir.Equal(a, b) {
			t.Errorf("round trip differs:\n%s", out)
		}
		if diff := cmp.Diff(out, encode.MustString(b)); diff != "" {
			t.Error(diff)
		}
		if a.Count() != b.Count() {
			t.Errorf("count %d != %d", a.Count(), b.Count())
		}
	}
}

func TestSpanContent(t *testing.T) {
	in := "Solid {\n" +
		"  description \"two\nline string   \nend\"\n" +
		"  point [ 1 2 3,   # first\n    4 5 6 ]\n" +
		"}\n"
	doc, err := ParseString(in)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"description": "\"two\nline string   \nend\"",
		"point":       "[ 1 2 3,\n    4 5 6 ]",
	}
	for name, content := range want {
		hs := doc.Search(name)
		if len(hs) != 1 {
			t.Fatalf("%s: %d matches", name, len(hs))
		}
		if got := doc.Get(hs[0]).Content; got != content {
			t.Errorf("%s: got %q want %q", name, got, content)
		}
	}
}

type badTest struct {
	in   string
	line int
	err  error
}

func TestBadParse(t *testing.T) {
	bts := []badTest{
		{in: "Solid {\n  name \"a\"\n", line: 1, err: token.ErrDocBalance},
		{in: "Solid {\n  name \"a\n}\n", line: 2, err: token.ErrUnterminated},
		{in: "Solid {\n  children [\n    Shape { }\n  }\n", line: 4, err: token.ErrDocBalance},
		{in: "Solid { }\n}", line: 2, err: token.ErrDocBalance},
		{in: "Solid {\n  name\n}", line: 2, err: ErrMissingValue},
		{in: "Solid {\n  translation", line: 1, err: token.ErrDocBalance},
		{in: "translation", line: 1, err: ErrMissingValue},
		{in: "Solid {\n  children [ Shape { } name \"x\" ]\n}", line: 2, err: ErrNotNode},
		{in: "Solid {\n  geometry Mesh url\n}", line: 2, err: ErrExpected},
		{in: "Solid {\n  boundingObject USE\n}", line: 2, err: ErrExpected},
		{in: "PROTO Robot {\n}", line: 1, err: ErrExpected},
		{in: "\"x\"", line: 1, err: token.ErrUnexpected},
		{in: "Solid { name @ }", line: 1, err: nil},
	}
	for _, bt := range bts {
		_, err := ParseString(bt.in, ParseFilename("bad.proto"))
		if err == nil {
			t.Errorf("%q: no error", bt.in)
			continue
		}
		var pe *Error
		if !errors.As(err, &pe) {
			t.Errorf("%q: %T is not *Error", bt.in, err)
			continue
		}
		if !errors.Is(err, ErrParse) {
			t.Errorf("%q: %v is not ErrParse", bt.in, err)
		}
		if bt.err != nil && !errors.Is(err, bt.err) {
			t.Errorf("%q: %v is not %v", bt.in, err, bt.err)
		}
		if pe.Line() != bt.line {
			t.Errorf("%q: line %d want %d (%v)", bt.in, pe.Line(), bt.line, err)
		}
	}
}
