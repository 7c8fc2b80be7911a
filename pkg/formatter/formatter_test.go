package formatter_test

import (
	"reflect"
	"testing"

	"github.com/thomasrohde/quill/pkg/ast"
	"github.com/thomasrohde/quill/pkg/compiler"
	"github.com/thomasrohde/quill/pkg/formatter"
	"github.com/thomasrohde/quill/pkg/parser"
	"github.com/thomasrohde/quill/pkg/token"
)

func mustFormat(t *testing.T, source string) string {
	t.Helper()
	ctx := compiler.NewContext(source)
	prog, err := parser.Parse(ctx)
	if err != nil {
		t.Fatalf("unexpected diagnostics: %v", err)
	}
	return formatter.Format(ctx, prog)
}

// shape dumps source with spans cleared, so trees can be compared across
// different layouts of the same program.
func shape(t *testing.T, source string) *ast.DumpNode {
	t.Helper()
	ctx := compiler.NewContext(source)
	prog, err := parser.Parse(ctx)
	if err != nil {
		t.Fatalf("unexpected diagnostics for %q: %v", source, err)
	}
	root := ast.Dump(ctx.Arena(), ctx.Resolve, &prog)
	var clear func(n *ast.DumpNode)
	clear = func(n *ast.DumpNode) {
		n.Span = token.Span{}
		for _, c := range n.Children {
			clear(c)
		}
	}
	clear(root)
	return root
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"empty", "", ""},
		{"integer", "x::007", "x :: 7\n"},
		{"binding", "a :: y:=f()", "a :: y := f()\n"},
		{"several decls", "a :: 1 b :: 2", "a :: 1\nb :: 2\n"},
		{"empty block", "a :: {   }", "a :: {}\n"},
		{
			"function",
			"main :: () -> i32 { x := 1; x }",
			"main :: () -> i32 {\n  x := 1;\n  x\n}\n",
		},
		{
			"if chain",
			"a :: if x { 1 } else if y { 2 } else { 3 }",
			"a :: if x {\n  1\n} else if y {\n  2\n} else {\n  3\n}\n",
		},
		{
			"loops",
			"a :: () { for i : 0..=9 { for { break; } } for ok() { continue } }",
			"a :: () {\n  for i : 0..=9 {\n    for {\n      break;\n    }\n  }\n  for ok() {\n    continue\n  }\n}\n",
		},
		{"exclusive range", "a :: for i:lo..hi{}", "a :: for i : lo..hi {}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustFormat(t, tt.source); got != tt.want {
				t.Errorf("Format mismatch\n got: %q\nwant: %q", got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	sources := []string{
		"x :: 42",
		"main :: () -> i32 {\n  for i : 0..=10 { x := i; if x { break; } else if y() { continue } }\n  0\n}",
		"a :: { { {} } }\nb :: if { 1 } { 2 }\nc :: for c := 1 { }",
		"f :: () { g(); h; 2147483647 }",
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			formatted := mustFormat(t, src)
			if !reflect.DeepEqual(shape(t, src), shape(t, formatted)) {
				t.Errorf("formatting changed the tree:\n%s", formatted)
			}
			if again := mustFormat(t, formatted); again != formatted {
				t.Errorf("formatting is not idempotent:\n%s\n---\n%s", formatted, again)
			}
		})
	}
}
