// Package formatter implements the quill source code formatter.
package formatter

import (
	"strconv"
	"strings"

	"github.com/thomasrohde/quill/pkg/ast"
	"github.com/thomasrohde/quill/pkg/compiler"
	"github.com/thomasrohde/quill/pkg/intern"
)

const indent = "  "

type printer struct {
	arena   *ast.Arena
	resolve func(sym intern.Symbol) string
}

// Format pretty-prints a parsed program back to canonical source: one
// declaration per line, blocks spread over indented lines.
func Format(ctx *compiler.Context, prog ast.Program) string {
	p := &printer{arena: ctx.Arena(), resolve: ctx.Resolve}

	decls := p.arena.Decls(prog.Decls)
	if len(decls) == 0 {
		return ""
	}

	lines := make([]string, len(decls))
	for i, d := range decls {
		lines[i] = p.resolve(d.Identifier) + " :: " + p.formatExpr(p.arena.Expr(d.Value), 0)
	}
	return strings.Join(lines, "\n") + "\n"
}

func (p *printer) formatExpr(e ast.Expr, depth int) string {
	switch expr := e.(type) {
	case *ast.IntegerConstant:
		return strconv.FormatInt(int64(expr.Value), 10)
	case *ast.BindRef:
		return p.resolve(expr.Identifier)
	case *ast.FnCall:
		return p.resolve(expr.Identifier) + "()"
	case *ast.BindDef:
		return p.resolve(expr.Identifier) + " := " + p.formatRef(expr.Value, depth)
	case *ast.SemiExpr:
		return p.formatRef(expr.Inner, depth) + ";"
	case *ast.BreakExpr:
		return "break"
	case *ast.ContinueExpr:
		return "continue"
	case *ast.CompoundExpr:
		return p.formatBlock(*expr, depth)
	case *ast.Function:
		out := "()"
		if expr.ReturnType == ast.I32 {
			out += " -> i32"
		}
		return out + " " + p.formatBlock(expr.Body, depth)
	case *ast.IfExpr:
		return p.formatIf(expr, depth)
	case *ast.ForExpr:
		return p.formatFor(expr, depth)
	}
	return ""
}

func (p *printer) formatRef(ref ast.ExprRef, depth int) string {
	return p.formatExpr(p.arena.Expr(ref), depth)
}

func (p *printer) formatBlock(block ast.CompoundExpr, depth int) string {
	exprs := p.arena.Exprs(block.Exprs)
	if len(exprs) == 0 {
		return "{}"
	}

	prefix := strings.Repeat(indent, depth+1)
	lines := make([]string, len(exprs))
	for i, e := range exprs {
		lines[i] = prefix + p.formatExpr(e, depth+1)
	}
	return "{\n" + strings.Join(lines, "\n") + "\n" + strings.Repeat(indent, depth) + "}"
}

func (p *printer) formatIf(expr *ast.IfExpr, depth int) string {
	out := "if " + p.formatRef(expr.Cond, depth) + " " + p.formatBlock(expr.TrueBranch, depth)
	for _, branch := range p.arena.ElseIfBranches(expr.ElseIfBranches) {
		out += " else if " + p.formatRef(branch.Cond, depth) + " " + p.formatBlock(branch.TrueBranch, depth)
	}
	if expr.FinalBranch != nil {
		out += " else " + p.formatBlock(*expr.FinalBranch, depth)
	}
	return out
}

func (p *printer) formatFor(expr *ast.ForExpr, depth int) string {
	out := "for "
	switch it := expr.Iteration.(type) {
	case *ast.IterativeFor:
		op := ".."
		if it.Range == ast.Inclusive {
			op = "..="
		}
		out += p.resolve(it.Identifier) + " : " + p.formatRef(it.Start, depth) + op + p.formatRef(it.End, depth) + " "
	case *ast.ConditionalFor:
		out += p.formatRef(it.Cond, depth) + " "
	}
	return out + p.formatBlock(expr.Body, depth)
}
