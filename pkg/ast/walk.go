package ast

// Children returns the direct children of n in source order.
func (a *Arena) Children(n Node) []Node {
	switch n := n.(type) {
	case *Program:
		decls := a.Decls(n.Decls)
		out := make([]Node, len(decls))
		for i := range decls {
			out[i] = &decls[i]
		}
		return out
	case *Decl:
		return []Node{a.Expr(n.Value)}
	case *CompoundExpr:
		exprs := a.Exprs(n.Exprs)
		out := make([]Node, len(exprs))
		for i, e := range exprs {
			out[i] = e
		}
		return out
	case *IfExpr:
		out := []Node{a.Expr(n.Cond), &n.TrueBranch}
		branches := a.ElseIfBranches(n.ElseIfBranches)
		for i := range branches {
			out = append(out, &branches[i])
		}
		if n.FinalBranch != nil {
			out = append(out, n.FinalBranch)
		}
		return out
	case *ElseIfBranch:
		return []Node{a.Expr(n.Cond), &n.TrueBranch}
	case *ForExpr:
		if n.Iteration == nil {
			return []Node{&n.Body}
		}
		return []Node{n.Iteration, &n.Body}
	case *IterativeFor:
		return []Node{a.Expr(n.Start), a.Expr(n.End)}
	case *ConditionalFor:
		return []Node{a.Expr(n.Cond)}
	case *Function:
		params := a.Params(n.Params)
		out := make([]Node, 0, len(params)+1)
		for i := range params {
			out = append(out, &params[i])
		}
		return append(out, &n.Body)
	case *BindDef:
		return []Node{a.Expr(n.Value)}
	case *SemiExpr:
		return []Node{a.Expr(n.Inner)}
	}
	return nil
}

// Inspect traverses the tree rooted at n depth-first, calling f for each
// node. When f returns false the children of that node are skipped.
func (a *Arena) Inspect(n Node, f func(Node) bool) {
	if !f(n) {
		return
	}
	for _, child := range a.Children(n) {
		a.Inspect(child, f)
	}
}
