package ast_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/thomasrohde/quill/pkg/ast"
	"github.com/thomasrohde/quill/pkg/intern"
	"github.com/thomasrohde/quill/pkg/token"
)

func TestNodeKinds(t *testing.T) {
	nodes := []ast.Node{
		&ast.IntegerConstant{Value: 42},
		&ast.IfExpr{},
		&ast.ForExpr{},
		&ast.BreakExpr{},
		&ast.ContinueExpr{},
		&ast.Function{},
		&ast.CompoundExpr{},
		&ast.BindDef{},
		&ast.BindRef{},
		&ast.FnCall{},
		&ast.SemiExpr{},
		&ast.IterativeFor{},
		&ast.ConditionalFor{},
	}

	expected := []string{
		"IntegerConstant", "IfExpr", "ForExpr", "BreakExpr", "ContinueExpr",
		"Function", "CompoundExpr", "BindDef", "BindRef", "FnCall", "SemiExpr",
		"IterativeFor", "ConditionalFor",
	}

	for i, node := range nodes {
		if got := node.Kind(); got != expected[i] {
			t.Errorf("node %d: got Kind() = %q, want %q", i, got, expected[i])
		}
	}
}

func TestArenaHandles(t *testing.T) {
	a := ast.NewArena()
	one := a.AllocExpr(&ast.IntegerConstant{Value: 1})
	list := a.AllocExprs([]ast.Expr{&ast.BreakExpr{}, &ast.ContinueExpr{}})

	if got := a.Expr(one).(*ast.IntegerConstant).Value; got != 1 {
		t.Errorf("Expr(one) = %d", got)
	}
	exprs := a.Exprs(list)
	if len(exprs) != 2 {
		t.Fatalf("len(Exprs) = %d, want 2", len(exprs))
	}
	if exprs[0].Kind() != "BreakExpr" || exprs[1].Kind() != "ContinueExpr" {
		t.Errorf("unexpected list contents: %s, %s", exprs[0].Kind(), exprs[1].Kind())
	}

	empty := a.AllocParams(nil)
	if len(a.Params(empty)) != 0 {
		t.Error("expected empty param list")
	}

	stats := a.Stats()
	if stats.Exprs != 3 || stats.Params != 0 {
		t.Errorf("Stats = %+v", stats)
	}
}

func TestArenaListsAreCapped(t *testing.T) {
	a := ast.NewArena()
	first := a.AllocExprs([]ast.Expr{&ast.BreakExpr{}})
	a.AllocExprs([]ast.Expr{&ast.ContinueExpr{}})

	view := a.Exprs(first)
	_ = append(view, &ast.BreakExpr{})
	if a.Exprs(ast.ExprList{Start: 1, Len: 1})[0].Kind() != "ContinueExpr" {
		t.Error("appending to a list view overwrote the arena")
	}
}

func TestArenaOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for bad handle")
		}
	}()
	ast.NewArena().Expr(3)
}

// buildIf builds `x :: if c {} else if d { 1 } else {}` by hand.
func buildIf(t *testing.T) (*ast.Arena, *intern.Interner, *ast.Program) {
	t.Helper()
	a := ast.NewArena()
	in := intern.New()

	cond := a.AllocExpr(&ast.BindRef{Identifier: in.Intern("c")})
	elseCond := a.AllocExpr(&ast.BindRef{Identifier: in.Intern("d")})
	body := a.AllocExprs([]ast.Expr{&ast.IntegerConstant{Value: 1}})
	branches := a.AllocElseIfBranches([]ast.ElseIfBranch{{
		Cond:       elseCond,
		TrueBranch: ast.CompoundExpr{Exprs: body},
	}})
	ifExpr := a.AllocExpr(&ast.IfExpr{
		Cond:           cond,
		ElseIfBranches: branches,
		FinalBranch:    &ast.CompoundExpr{},
	})
	decls := a.AllocDecls([]ast.Decl{{Identifier: in.Intern("x"), Value: ifExpr}})
	return a, in, &ast.Program{Decls: decls, Span: token.Span{Start: 0, End: 10}}
}

func TestInspect(t *testing.T) {
	a, _, prog := buildIf(t)

	var kinds []string
	a.Inspect(prog, func(n ast.Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	})

	want := "Program Decl IfExpr BindRef CompoundExpr ElseIfBranch BindRef CompoundExpr IntegerConstant CompoundExpr"
	if got := strings.Join(kinds, " "); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}

	count := 0
	a.Inspect(prog, func(n ast.Node) bool {
		count++
		return n.Kind() != "Decl"
	})
	if count != 2 {
		t.Errorf("pruned walk visited %d nodes, want 2", count)
	}
}

func TestDump(t *testing.T) {
	a, in, prog := buildIf(t)

	d := ast.Dump(a, in.Resolve, prog)
	if d.Kind != "Program" || len(d.Children) != 1 {
		t.Fatalf("unexpected root: %+v", d)
	}
	decl := d.Children[0]
	if decl.Name != "x" {
		t.Errorf("decl name = %q", decl.Name)
	}
	ifNode := decl.Children[0]
	if ifNode.Label != "value" || ifNode.Kind != "IfExpr" {
		t.Errorf("if node = %s/%s", ifNode.Label, ifNode.Kind)
	}
	labels := make([]string, len(ifNode.Children))
	for i, c := range ifNode.Children {
		labels[i] = c.Label
	}
	if got := strings.Join(labels, ","); got != "cond,then,elseIf,else" {
		t.Errorf("if children labels = %s", got)
	}

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"kind":"IntegerConstant","value":1`) {
		t.Errorf("JSON missing constant: %s", b)
	}
}

func TestTypeAndRangeNames(t *testing.T) {
	if ast.I32.String() != "i32" || ast.Unit.String() != "unit" {
		t.Error("type names")
	}
	if ast.Inclusive.String() != "inclusive" || ast.Exclusive.String() != "exclusive" {
		t.Error("range names")
	}
}
