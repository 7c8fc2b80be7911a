package ast

import "fmt"

// ExprRef is a handle to a single expression stored in an Arena.
type ExprRef uint32

// ExprList is a contiguous run of expressions in an Arena.
type ExprList struct {
	Start uint32
	Len   uint32
}

// DeclList is a contiguous run of declarations in an Arena.
type DeclList struct {
	Start uint32
	Len   uint32
}

// ElseIfList is a contiguous run of else-if branches in an Arena.
type ElseIfList struct {
	Start uint32
	Len   uint32
}

// ParamList is a contiguous run of parameters in an Arena.
type ParamList struct {
	Start uint32
	Len   uint32
}

// Arena owns every node of one parse. Nodes refer to each other through
// handles, so the whole tree lives exactly as long as the Arena.
// An Arena is not safe for concurrent use.
type Arena struct {
	exprs   []Expr
	decls   []Decl
	elseIfs []ElseIfBranch
	params  []Param
}

// NewArena returns an empty Arena.
func NewArena() *Arena {
	return &Arena{}
}

// AllocExpr stores e and returns its handle.
func (a *Arena) AllocExpr(e Expr) ExprRef {
	if e == nil {
		panic("ast: AllocExpr of nil expression")
	}
	a.exprs = append(a.exprs, e)
	return ExprRef(len(a.exprs) - 1)
}

// AllocExprs copies es into the arena as one contiguous list.
func (a *Arena) AllocExprs(es []Expr) ExprList {
	start := uint32(len(a.exprs))
	for _, e := range es {
		a.AllocExpr(e)
	}
	return ExprList{Start: start, Len: uint32(len(es))}
}

// AllocDecls copies ds into the arena as one contiguous list.
func (a *Arena) AllocDecls(ds []Decl) DeclList {
	start := uint32(len(a.decls))
	a.decls = append(a.decls, ds...)
	return DeclList{Start: start, Len: uint32(len(ds))}
}

// AllocElseIfBranches copies bs into the arena as one contiguous list.
func (a *Arena) AllocElseIfBranches(bs []ElseIfBranch) ElseIfList {
	start := uint32(len(a.elseIfs))
	a.elseIfs = append(a.elseIfs, bs...)
	return ElseIfList{Start: start, Len: uint32(len(bs))}
}

// AllocParams copies ps into the arena as one contiguous list.
func (a *Arena) AllocParams(ps []Param) ParamList {
	start := uint32(len(a.params))
	a.params = append(a.params, ps...)
	return ParamList{Start: start, Len: uint32(len(ps))}
}

// Expr returns the expression behind ref.
func (a *Arena) Expr(ref ExprRef) Expr {
	if int(ref) >= len(a.exprs) {
		panic(fmt.Sprintf("ast: expression handle %d out of range (%d)", ref, len(a.exprs)))
	}
	return a.exprs[ref]
}

// Exprs returns the expressions of l. The result must not be appended to.
func (a *Arena) Exprs(l ExprList) []Expr {
	return window(a.exprs, l.Start, l.Len)
}

// Decls returns the declarations of l.
func (a *Arena) Decls(l DeclList) []Decl {
	return window(a.decls, l.Start, l.Len)
}

// ElseIfBranches returns the branches of l.
func (a *Arena) ElseIfBranches(l ElseIfList) []ElseIfBranch {
	return window(a.elseIfs, l.Start, l.Len)
}

// Params returns the parameters of l.
func (a *Arena) Params(l ParamList) []Param {
	return window(a.params, l.Start, l.Len)
}

// Stats reports how many nodes of each table the arena holds.
type Stats struct {
	Exprs   int `json:"exprs" yaml:"exprs"`
	Decls   int `json:"decls" yaml:"decls"`
	ElseIfs int `json:"elseIfs" yaml:"elseIfs"`
	Params  int `json:"params" yaml:"params"`
}

// Stats returns the current table sizes.
func (a *Arena) Stats() Stats {
	return Stats{
		Exprs:   len(a.exprs),
		Decls:   len(a.decls),
		ElseIfs: len(a.elseIfs),
		Params:  len(a.params),
	}
}

func window[T any](s []T, start, n uint32) []T {
	end := start + n
	if int(end) > len(s) {
		panic(fmt.Sprintf("ast: list [%d,%d) out of range (%d)", start, end, len(s)))
	}
	return s[start:end:end]
}
