package eval

import (
	"testing"

	"github.com/signadot/wbproto/parse"
)

const robot = `Robot {
  children [
    HingeJoint {
      device [
        RotationalMotor { name "m1" maxTorque 5.0 }
        RotationalMotor { name "m2" maxTorque 0.5 }
        PositionSensor { name "s1" }
      ]
      endPoint DEF Leg Solid { name "leg" }
    }
  ]
}`

type filterTest struct {
	src  string
	want []string
}

func TestSelect(t *testing.T) {
	doc, err := parse.ParseString(robot)
	if err != nil {
		t.Fatal(err)
	}
	fts := []filterTest{
		{src: `type == "RotationalMotor" && float(child("maxTorque")) > 1`, want: []string{"$.Robot.children[0].device[0]"}},
		{src: `kind == "Property" && name == "name" && stage > 4`, want: []string{
			"$.Robot.children[0].device[0].name",
			"$.Robot.children[0].device[1].name",
			"$.Robot.children[0].device[2].name",
		}},
		{src: `def == "Leg" && has("name") && whereami() == path`, want: []string{"$.Robot.children[0].endPoint"}},
		{src: `kind == "Container" && line == 4`, want: []string{"$.Robot.children[0].device"}},
		{src: `getenv("WBPROTO_EVAL_TEST") == "x"`, want: nil},
	}
	for _, ft := range fts {
		f, err := Compile(ft.src)
		if err != nil {
			t.Errorf("%s: %v", ft.src, err)
			continue
		}
		hs, err := f.Select(doc, doc.Search(""))
		if err != nil {
			t.Errorf("%s: %v", ft.src, err)
			continue
		}
		var got []string
		for _, h := range hs {
			got = append(got, doc.Path(h))
		}
		if len(got) != len(ft.want) {
			t.Errorf("%s: got %v want %v", ft.src, got, ft.want)
			continue
		}
		for i := range got {
			if got[i] != ft.want[i] {
				t.Errorf("%s: got %v want %v", ft.src, got, ft.want)
				break
			}
		}
	}
}

func TestCompileErrors(t *testing.T) {
	for _, src := range []string{`stage + 1`, `nope == 1`, `name ==`} {
		if _, err := Compile(src); err == nil {
			t.Errorf("%s: no error", src)
		}
	}
}

func TestMatchRuntimeError(t *testing.T) {
	doc, err := parse.ParseString(`Solid { name "x" }`)
	if err != nil {
		t.Fatal(err)
	}
	f, err := Compile(`float(child("name")) > 0`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Match(doc, doc.Roots[0]); err == nil {
		t.Error("expected error")
	}
}
