package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signadot/wbproto/libdiff"
	"github.com/signadot/wbproto/parse"

	"github.com/google/go-cmp/cmp"
)

const robotSrc = `Robot {
  name "r"
  children [
    Solid {
      name "s"
    }
  ]
}
`

func TestDumpDoc(t *testing.T) {
	doc, err := parse.ParseString(robotSrc)
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	if err := dumpDoc(buf, doc); err != nil {
		t.Fatal(err)
	}
	want := []string{
		`0 Node - "Robot {"`,
		` 1 Property name "\"r\""`,
		` 1 Container children`,
		`  2 Node - "Solid {"`,
		`   3 Property name "\"s\""`,
	}
	got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error(diff)
	}
}

func TestSearchPaths(t *testing.T) {
	doc, err := parse.ParseString(robotSrc)
	if err != nil {
		t.Fatal(err)
	}
	cfg := &SearchConfig{MainConfig: &MainConfig{}, Paths: true}
	buf := &bytes.Buffer{}
	if err := cfg.printMatches(buf, "r.proto", doc, doc.Search("name")); err != nil {
		t.Fatal(err)
	}
	want := "$.Robot.name\n$.Robot.children[0].name\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestSearchLines(t *testing.T) {
	doc, err := parse.ParseString(robotSrc)
	if err != nil {
		t.Fatal(err)
	}
	cfg := &SearchConfig{MainConfig: &MainConfig{}}
	buf := &bytes.Buffer{}
	if err := cfg.printMatches(buf, "r.proto", doc, doc.Search("Solid")); err != nil {
		t.Fatal(err)
	}
	want := "r.proto:4\tNode\t$.Robot.children[0]\tstage=2\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" collision, ,motor-torque,")
	want := []string{"collision", "motor-torque"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error(diff)
	}
	if got := splitList(""); len(got) != 0 {
		t.Errorf("got %v", got)
	}
}

func TestValidateArg(t *testing.T) {
	dir := t.TempDir()
	write := func(name, src string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(src), 0644); err != nil {
			t.Fatal(err)
		}
		return p
	}
	type vt struct {
		path string
		n    int
	}
	vts := []vt{
		{write("good.proto", robotSrc), 0},
		{write("bad.proto", "Robot {\n  name\n}\n"), 1},
		{write("dup.proto", "DEF A Solid {\n}\nDEF A Solid {\n}\nUSE B\n"), 2},
	}
	for _, v := range vts {
		buf := &bytes.Buffer{}
		n, err := validateArg(buf, v.path)
		if err != nil {
			t.Errorf("%s: %v", v.path, err)
			continue
		}
		if n != v.n {
			t.Errorf("%s: got %d issues want %d:\n%s", v.path, n, v.n, buf.String())
		}
		if n != 0 && !strings.Contains(buf.String(), filepath.Base(v.path)) {
			t.Errorf("%s: report does not name the file: %q", v.path, buf.String())
		}
	}
	if _, err := validateArg(&bytes.Buffer{}, filepath.Join(dir, "missing.proto")); err == nil {
		t.Error("expected read error")
	}
}

func TestDiffColor(t *testing.T) {
	if got := diffColor(libdiff.Equal, " x"); got != " x" {
		t.Errorf("got %q", got)
	}
	for _, op := range []libdiff.Op{libdiff.Insert, libdiff.Delete} {
		if got := diffColor(op, "x"); !strings.Contains(got, "x") {
			t.Errorf("%v: got %q", op, got)
		}
	}
}

func TestNewLog(t *testing.T) {
	buf := &bytes.Buffer{}
	log := newLog(buf, slog.LevelWarn)
	log.Info("pass", "name", "collision")
	log.Warn("skip", "path", "$.Robot")
	want := "level=WARN msg=skip path=$.Robot\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestSetPath(t *testing.T) {
	doc, err := parse.ParseString(robotSrc)
	if err != nil {
		t.Fatal(err)
	}
	if err := setPath(doc, "$.Robot.children[0].name", `"t"`); err != nil {
		t.Fatal(err)
	}
	if err := setPath(doc, "$.Robot.children[0]", "DEF T Solid {"); err != nil {
		t.Fatal(err)
	}
	h, ok := doc.FindDef("T")
	if !ok {
		t.Fatal("header not set")
	}
	n, _ := doc.Child(h, "name")
	if got := doc.Get(n).Content; got != `"t"` {
		t.Errorf("got %s", got)
	}
	if !doc.Mutated() {
		t.Error("not mutated")
	}
	for _, p := range []string{"$.Robot.children", "$.Robot.nope"} {
		if err := setPath(doc, p, "x"); err == nil {
			t.Errorf("%s: expected error", p)
		}
	}
}
