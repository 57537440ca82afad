// Package libdiff computes line diffs of serialized documents.
package libdiff

import (
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

func (o Op) Prefix() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	}
	return " "
}

// Line is one line of a diff, without its newline.
type Line struct {
	Op   Op
	Text string
}

// Lines returns the line diff turning from into to.
func Lines(from, to string) []Line {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)
	var res []Line
	for i := range diffs {
		d := &diffs[i]
		op := Equal
		switch d.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		}
		text := strings.TrimSuffix(d.Text, "\n")
		for _, ln := range strings.Split(text, "\n") {
			res = append(res, Line{Op: op, Text: ln})
		}
	}
	return res
}

// Changed reports whether lines holds any insertion or deletion.
func Changed(lines []Line) bool {
	for i := range lines {
		if lines[i].Op != Equal {
			return true
		}
	}
	return false
}

// Unified returns a unified diff of from and to with ctx lines of
// context, or "" if they are equal.
func Unified(fromName, toName, from, to string, ctx int) string {
	return Format(fromName, toName, Lines(from, to), ctx, nil)
}

// Format renders lines as a unified diff.  If color is not nil it is
// applied to each output line along with its op.
func Format(fromName, toName string, lines []Line, ctx int, color func(Op, string) string) string {
	if !Changed(lines) {
		return ""
	}
	if color == nil {
		color = func(_ Op, s string) string { return s }
	}
	// aPos[i], bPos[i]: lines of from and to before lines[i]
	aPos := make([]int, len(lines)+1)
	bPos := make([]int, len(lines)+1)
	for i, ln := range lines {
		aPos[i+1], bPos[i+1] = aPos[i], bPos[i]
		if ln.Op != Insert {
			aPos[i+1]++
		}
		if ln.Op != Delete {
			bPos[i+1]++
		}
	}
	buf := &strings.Builder{}
	buf.WriteString(color(Delete, "--- "+fromName) + "\n")
	buf.WriteString(color(Insert, "+++ "+toName) + "\n")
	for i := 0; i < len(lines); {
		if lines[i].Op == Equal {
			i++
			continue
		}
		start := max(0, i-ctx)
		end := i
		for j := i; j < len(lines); j++ {
			if lines[j].Op == Equal {
				continue
			}
			if j > end+2*ctx+1 {
				break
			}
			end = j
		}
		end = min(len(lines), end+ctx+1)
		aStart, aCount := aPos[start], aPos[end]-aPos[start]
		bStart, bCount := bPos[start], bPos[end]-bPos[start]
		if aCount > 0 {
			aStart++
		}
		if bCount > 0 {
			bStart++
		}
		fmt.Fprintf(buf, "@@ -%d,%d +%d,%d @@\n", aStart, aCount, bStart, bCount)
		for _, ln := range lines[start:end] {
			buf.WriteString(color(ln.Op, ln.Op.Prefix()+ln.Text) + "\n")
		}
		i = end
	}
	return buf.String()
}
