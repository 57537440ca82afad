package main

import (
	"context"
	"strings"
	"testing"

	"github.com/signadot/wbproto/ir"

	"github.com/google/go-cmp/cmp"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

const robotSrc = `#VRML_SIM R2023b utf8
Robot {
  name "r"
  children [
    DEF LINK Solid {
      name "l"
    }
    USE LINK
  ]
}
`

const uri = "file:///robot.proto"

func newTestServer(t *testing.T, content string) (*Server, *document) {
	t.Helper()
	s := newServer(2, zap.NewNop())
	return s, s.docs.put(uri, content, 1)
}

func TestValidateDocument(t *testing.T) {
	_, doc := newTestServer(t, robotSrc)
	if doc.err != nil {
		t.Fatal(doc.err)
	}
	if diags := validateDocument(doc); len(diags) != 0 {
		t.Errorf("unexpected diagnostics %v", diags)
	}

	_, doc = newTestServer(t, "Robot {\n  name\n}\n")
	diags := validateDocument(doc)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics", len(diags))
	}
	want := protocol.Position{Line: 1, Character: 2}
	if diags[0].Range.Start != want {
		t.Errorf("got %v want %v", diags[0].Range.Start, want)
	}
	if diags[0].Severity != protocol.DiagnosticSeverityError {
		t.Errorf("got severity %v", diags[0].Severity)
	}

	_, doc = newTestServer(t, "USE NOPE\n")
	diags = validateDocument(doc)
	if len(diags) != 1 || diags[0].Severity != protocol.DiagnosticSeverityWarning {
		t.Fatalf("got %v", diags)
	}
	if !strings.Contains(diags[0].Message, "NOPE") {
		t.Errorf("got %q", diags[0].Message)
	}
}

func TestApplyChanges(t *testing.T) {
	insert := func(line, char uint32, text string) protocol.TextDocumentContentChangeEvent {
		pos := protocol.Position{Line: line, Character: char}
		return protocol.TextDocumentContentChangeEvent{
			Range: protocol.Range{Start: pos, End: pos},
			Text:  text,
		}
	}
	type ct struct {
		in      string
		kind    protocol.TextDocumentSyncKind
		changes []protocol.TextDocumentContentChangeEvent
		want    string
	}
	cts := []ct{
		{
			in:   "a\nbc\n",
			kind: protocol.TextDocumentSyncKindIncremental,
			changes: []protocol.TextDocumentContentChangeEvent{{
				Range: protocol.Range{
					Start: protocol.Position{Line: 1, Character: 1},
					End:   protocol.Position{Line: 1, Character: 2},
				},
				Text: "X",
			}},
			want: "a\nbX\n",
		},
		{
			in:      "Solid {\n}\n",
			kind:    protocol.TextDocumentSyncKindIncremental,
			changes: []protocol.TextDocumentContentChangeEvent{insert(0, 0, "#VRML_SIM R2023b utf8\n")},
			want:    "#VRML_SIM R2023b utf8\nSolid {\n}\n",
		},
		{
			in:      "a\nbc\n",
			kind:    protocol.TextDocumentSyncKindFull,
			changes: []protocol.TextDocumentContentChangeEvent{{Text: "whole"}},
			want:    "whole",
		},
	}
	for _, c := range cts {
		if got := applyChanges(c.in, c.kind, c.changes); got != c.want {
			t.Errorf("got %q want %q", got, c.want)
		}
	}
}

func TestDidChangeFullSync(t *testing.T) {
	s, _ := newTestServer(t, "Solid {\n}\n")
	err := s.DidChange(context.Background(), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{{Text: robotSrc}},
	})
	if err != nil {
		t.Fatal(err)
	}
	doc := s.docs.get(uri)
	if doc.content != robotSrc || doc.doc == nil || doc.version != 2 {
		t.Errorf("got %+v", doc)
	}
}

func TestFoldingRanges(t *testing.T) {
	_, doc := newTestServer(t, robotSrc)
	want := []protocol.FoldingRange{
		{StartLine: 1, EndLine: 9},
		{StartLine: 3, EndLine: 8},
		{StartLine: 4, EndLine: 6},
	}
	if diff := cmp.Diff(want, foldingRanges(doc.doc)); diff != "" {
		t.Error(diff)
	}
}

func TestHover(t *testing.T) {
	s, doc := newTestServer(t, robotSrc)
	h := entityAt(doc.doc, 6)
	if got := doc.doc.Path(h); got != "$.Robot.children[0].name" {
		t.Errorf("got %q", got)
	}
	hover, err := s.Hover(context.Background(), &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 2, Character: 3},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if hover == nil {
		t.Fatal("no hover")
	}
	for _, want := range []string{"**Property `name`**", "`\"r\"`", "**Stage:** 1", "`$.Robot.name`"} {
		if !strings.Contains(hover.Contents.Value, want) {
			t.Errorf("hover %q lacks %q", hover.Contents.Value, want)
		}
	}
	if h := entityAt(doc.doc, 20); h != ir.NoHandle {
		t.Errorf("got %d past the end", h)
	}
}

func TestDefinition(t *testing.T) {
	s, _ := newTestServer(t, robotSrc)
	locs, err := s.Definition(context.Background(), &protocol.DefinitionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 7, Character: 6},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(locs) != 1 {
		t.Fatalf("got %v", locs)
	}
	if locs[0].Range.Start.Line != 4 || locs[0].Range.End.Line != 6 {
		t.Errorf("got %v", locs[0].Range)
	}
}

func TestDocumentSymbol(t *testing.T) {
	s, _ := newTestServer(t, robotSrc)
	syms, err := s.DocumentSymbol(context.Background(), &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(syms) != 1 {
		t.Fatalf("got %d symbols", len(syms))
	}
	root := syms[0].(protocol.DocumentSymbol)
	if root.Name != "Robot" || root.Kind != protocol.SymbolKindClass {
		t.Errorf("got %q %v", root.Name, root.Kind)
	}
	var names []string
	for _, c := range root.Children {
		names = append(names, c.Name)
	}
	if diff := cmp.Diff([]string{"name", "children"}, names); diff != "" {
		t.Error(diff)
	}
	link := root.Children[1].Children[0]
	if link.Name != "LINK" || link.Kind != protocol.SymbolKindClass {
		t.Errorf("got %q %v", link.Name, link.Kind)
	}
}

func TestSemanticTokens(t *testing.T) {
	got := semanticTokens("Robot {\n  name \"r\"\n}", 0, 10)
	want := []uint32{
		0, 0, 5, semType, 0,
		0, 6, 1, semOperator, 0,
		1, 2, 4, semProperty, 0,
		0, 5, 3, semString, 0,
		1, 0, 1, semOperator, 0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error(diff)
	}
	got = semanticTokens("Robot {\n  name \"r\"\n}", 1, 1)
	want = []uint32{
		1, 2, 4, semProperty, 0,
		0, 5, 3, semString, 0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error(diff)
	}
}

func TestCompletions(t *testing.T) {
	_, doc := newTestServer(t, robotSrc)
	labels := func(items []protocol.CompletionItem) []string {
		var res []string
		for _, it := range items {
			res = append(res, it.Label)
		}
		return res
	}
	if diff := cmp.Diff([]string{"LINK"}, labels(completions(doc.doc, "    USE "))); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff([]string{"LINK"}, labels(completions(doc.doc, "    USE LI"))); diff != "" {
		t.Error(diff)
	}
	if got := completions(nil, "  "); len(got) != len(completionKeywords) {
		t.Errorf("got %d items", len(got))
	}
}

func TestFormatEdits(t *testing.T) {
	edits := formatEdits("Robot {\nname \"r\"\n}\n", 2, zap.NewNop())
	if len(edits) != 1 {
		t.Fatalf("got %d edits", len(edits))
	}
	if edits[0].Range.End.Line != 3 {
		t.Errorf("got end %v", edits[0].Range.End)
	}
	if !strings.Contains(edits[0].NewText, "  name \"r\"") {
		t.Errorf("got %q", edits[0].NewText)
	}
	if again := formatEdits(edits[0].NewText, 2, zap.NewNop()); len(again) != 0 {
		t.Errorf("formatted text is not stable: %v", again)
	}
	if bad := formatEdits("Robot {", 2, zap.NewNop()); bad != nil {
		t.Errorf("got %v", bad)
	}
}

func TestInitializeCapabilities(t *testing.T) {
	s, _ := newTestServer(t, robotSrc)
	res, err := s.Initialize(context.Background(), &protocol.InitializeParams{})
	if err != nil {
		t.Fatal(err)
	}
	caps := res.Capabilities
	for name, v := range map[string]interface{}{
		"hover":      caps.HoverProvider,
		"definition": caps.DefinitionProvider,
		"symbols":    caps.DocumentSymbolProvider,
		"folding":    caps.FoldingRangeProvider,
		"formatting": caps.DocumentFormattingProvider,
	} {
		if v != true {
			t.Errorf("%s provider %v", name, v)
		}
	}
	sync, ok := caps.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	if !ok {
		t.Fatalf("sync %T", caps.TextDocumentSync)
	}
	if sync.Change != protocol.TextDocumentSyncKindFull {
		t.Errorf("sync kind %v", sync.Change)
	}
}
