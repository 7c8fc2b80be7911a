package ast

import (
	"github.com/thomasrohde/quill/pkg/intern"
	"github.com/thomasrohde/quill/pkg/token"
)

// DumpNode is a self-contained, serializable view of one AST node with its
// symbols resolved. Children keep source order.
type DumpNode struct {
	Label      string      `json:"label,omitempty" yaml:"label,omitempty"`
	Kind       string      `json:"kind" yaml:"kind"`
	Name       string      `json:"name,omitempty" yaml:"name,omitempty"`
	Value      *int32      `json:"value,omitempty" yaml:"value,omitempty"`
	Range      string      `json:"range,omitempty" yaml:"range,omitempty"`
	ReturnType string      `json:"returnType,omitempty" yaml:"returnType,omitempty"`
	Span       token.Span  `json:"span" yaml:"span"`
	Children   []*DumpNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// Dump converts the tree rooted at n into DumpNodes, resolving symbols with resolve.
func Dump(a *Arena, resolve func(intern.Symbol) string, n Node) *DumpNode {
	d := &dumper{arena: a, resolve: resolve}
	return d.node("", n)
}

type dumper struct {
	arena   *Arena
	resolve func(intern.Symbol) string
}

func (d *dumper) node(label string, n Node) *DumpNode {
	out := &DumpNode{Label: label, Kind: n.Kind(), Span: n.NodeSpan()}

	switch n := n.(type) {
	case *Program:
		decls := d.arena.Decls(n.Decls)
		for i := range decls {
			out.Children = append(out.Children, d.node("", &decls[i]))
		}
	case *Decl:
		out.Name = d.resolve(n.Identifier)
		out.add(d.expr("value", n.Value))
	case *IntegerConstant:
		v := n.Value
		out.Value = &v
	case *CompoundExpr:
		for _, e := range d.arena.Exprs(n.Exprs) {
			out.add(d.node("", e))
		}
	case *IfExpr:
		out.add(d.expr("cond", n.Cond))
		out.add(d.node("then", &n.TrueBranch))
		branches := d.arena.ElseIfBranches(n.ElseIfBranches)
		for i := range branches {
			out.add(d.node("elseIf", &branches[i]))
		}
		if n.FinalBranch != nil {
			out.add(d.node("else", n.FinalBranch))
		}
	case *ElseIfBranch:
		out.add(d.expr("cond", n.Cond))
		out.add(d.node("then", &n.TrueBranch))
	case *ForExpr:
		if n.Iteration != nil {
			out.add(d.node("iteration", n.Iteration))
		}
		out.add(d.node("body", &n.Body))
	case *IterativeFor:
		out.Name = d.resolve(n.Identifier)
		out.Range = n.Range.String()
		out.add(d.expr("start", n.Start))
		out.add(d.expr("end", n.End))
	case *ConditionalFor:
		out.add(d.expr("cond", n.Cond))
	case *Function:
		out.ReturnType = n.ReturnType.String()
		params := d.arena.Params(n.Params)
		for i := range params {
			out.add(d.node("param", &params[i]))
		}
		out.add(d.node("body", &n.Body))
	case *Param:
		out.Name = d.resolve(n.Identifier)
		out.ReturnType = n.Type.String()
	case *BindDef:
		out.Name = d.resolve(n.Identifier)
		out.add(d.expr("value", n.Value))
	case *BindRef:
		out.Name = d.resolve(n.Identifier)
	case *FnCall:
		out.Name = d.resolve(n.Identifier)
	case *SemiExpr:
		out.add(d.expr("inner", n.Inner))
	}
	return out
}

func (d *dumper) expr(label string, ref ExprRef) *DumpNode {
	return d.node(label, d.arena.Expr(ref))
}

func (n *DumpNode) add(child *DumpNode) {
	n.Children = append(n.Children, child)
}
