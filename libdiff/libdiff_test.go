package libdiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLines(t *testing.T) {
	got := Lines("a\nb\nc\n", "a\nx\nc\n")
	want := []Line{{Equal, "a"}, {Delete, "b"}, {Insert, "x"}, {Equal, "c"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error(diff)
	}
	if Changed(Lines("a\n", "a\n")) {
		t.Error("equal text changed")
	}
}

func TestUnified(t *testing.T) {
	from := "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n"
	to := "1\n2\nthree\n4\n5\n6\n7\n8\n9\n10\n11\n"
	got := Unified("a", "b", from, to, 1)
	want := `--- a
+++ b
@@ -2,3 +2,3 @@
 2
-3
+three
 4
@@ -10,1 +10,2 @@
 10
+11
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error(diff)
	}
	if Unified("a", "b", from, from, 3) != "" {
		t.Error("diff of equal text")
	}
}

func TestUnifiedMerge(t *testing.T) {
	from := "a\nb\nc\nd\n"
	to := "A\nb\nc\nD\n"
	got := Unified("x", "y", from, to, 1)
	want := `--- x
+++ y
@@ -1,4 +1,4 @@
-a
+A
 b
 c
-d
+D
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error(diff)
	}
}
