// Package ast defines the quill AST node types and the arena that owns them.
package ast

import (
	"github.com/thomasrohde/quill/pkg/intern"
	"github.com/thomasrohde/quill/pkg/token"
)

// Node is the interface implemented by all AST nodes.
type Node interface {
	Kind() string
	NodeSpan() token.Span
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	exprNode() // sealed marker
}

// ForIteration is the header of a for loop. A nil ForIteration is an infinite loop.
type ForIteration interface {
	Node
	forIterationNode() // sealed marker
}

// Type is a syntactic type annotation.
type Type int

const (
	Unit Type = iota
	I32
)

func (t Type) String() string {
	if t == I32 {
		return "i32"
	}
	return "unit"
}

// RangeKind tells whether a range includes its end bound.
type RangeKind int

const (
	Exclusive RangeKind = iota
	Inclusive
)

func (r RangeKind) String() string {
	if r == Inclusive {
		return "inclusive"
	}
	return "exclusive"
}

// --- Program ---

// Program is a parsed source file: a sequence of top-level declarations.
type Program struct {
	Span  token.Span
	Decls DeclList
}

func (n *Program) Kind() string         { return "Program" }
func (n *Program) NodeSpan() token.Span { return n.Span }

// Decl is a top-level `name :: expr` declaration.
type Decl struct {
	Span       token.Span
	Identifier intern.Symbol
	Value      ExprRef
}

func (n *Decl) Kind() string         { return "Decl" }
func (n *Decl) NodeSpan() token.Span { return n.Span }

// --- Expressions ---

type IntegerConstant struct {
	Span  token.Span
	Value int32
}

func (n *IntegerConstant) Kind() string         { return "IntegerConstant" }
func (n *IntegerConstant) NodeSpan() token.Span { return n.Span }
func (n *IntegerConstant) exprNode()            {}

// CompoundExpr is a brace-delimited sequence of expressions.
type CompoundExpr struct {
	Span  token.Span
	Exprs ExprList
}

func (n *CompoundExpr) Kind() string         { return "CompoundExpr" }
func (n *CompoundExpr) NodeSpan() token.Span { return n.Span }
func (n *CompoundExpr) exprNode()            {}

type ElseIfBranch struct {
	Span       token.Span
	Cond       ExprRef
	TrueBranch CompoundExpr
}

func (n *ElseIfBranch) Kind() string         { return "ElseIfBranch" }
func (n *ElseIfBranch) NodeSpan() token.Span { return n.Span }

type IfExpr struct {
	Span           token.Span
	Cond           ExprRef
	TrueBranch     CompoundExpr
	ElseIfBranches ElseIfList
	FinalBranch    *CompoundExpr // nil without a trailing else
}

func (n *IfExpr) Kind() string         { return "IfExpr" }
func (n *IfExpr) NodeSpan() token.Span { return n.Span }
func (n *IfExpr) exprNode()            {}

// IterativeFor is `for i: start..end`.
type IterativeFor struct {
	Span       token.Span
	Identifier intern.Symbol
	Start      ExprRef
	End        ExprRef
	Range      RangeKind
}

func (n *IterativeFor) Kind() string         { return "IterativeFor" }
func (n *IterativeFor) NodeSpan() token.Span { return n.Span }
func (n *IterativeFor) forIterationNode()    {}

// ConditionalFor is `for cond`.
type ConditionalFor struct {
	Span token.Span
	Cond ExprRef
}

func (n *ConditionalFor) Kind() string         { return "ConditionalFor" }
func (n *ConditionalFor) NodeSpan() token.Span { return n.Span }
func (n *ConditionalFor) forIterationNode()    {}

type ForExpr struct {
	Span      token.Span
	Iteration ForIteration
	Body      CompoundExpr
}

func (n *ForExpr) Kind() string         { return "ForExpr" }
func (n *ForExpr) NodeSpan() token.Span { return n.Span }
func (n *ForExpr) exprNode()            {}

type BreakExpr struct {
	Span token.Span
}

func (n *BreakExpr) Kind() string         { return "BreakExpr" }
func (n *BreakExpr) NodeSpan() token.Span { return n.Span }
func (n *BreakExpr) exprNode()            {}

type ContinueExpr struct {
	Span token.Span
}

func (n *ContinueExpr) Kind() string         { return "ContinueExpr" }
func (n *ContinueExpr) NodeSpan() token.Span { return n.Span }
func (n *ContinueExpr) exprNode()            {}

// Param is a function parameter. The grammar has no parameter lists yet, so
// every Function carries an empty ParamList.
type Param struct {
	Span       token.Span
	Identifier intern.Symbol
	Type       Type
}

func (n *Param) Kind() string         { return "Param" }
func (n *Param) NodeSpan() token.Span { return n.Span }

type Function struct {
	Span       token.Span
	ReturnType Type
	Params     ParamList
	Body       CompoundExpr
}

func (n *Function) Kind() string         { return "Function" }
func (n *Function) NodeSpan() token.Span { return n.Span }
func (n *Function) exprNode()            {}

// BindDef is `name := value`.
type BindDef struct {
	Span       token.Span
	Identifier intern.Symbol
	Value      ExprRef
}

func (n *BindDef) Kind() string         { return "BindDef" }
func (n *BindDef) NodeSpan() token.Span { return n.Span }
func (n *BindDef) exprNode()            {}

type BindRef struct {
	Span       token.Span
	Identifier intern.Symbol
}

func (n *BindRef) Kind() string         { return "BindRef" }
func (n *BindRef) NodeSpan() token.Span { return n.Span }
func (n *BindRef) exprNode()            {}

type FnCall struct {
	Span       token.Span
	Identifier intern.Symbol
}

func (n *FnCall) Kind() string         { return "FnCall" }
func (n *FnCall) NodeSpan() token.Span { return n.Span }
func (n *FnCall) exprNode()            {}

// SemiExpr is an expression terminated by `;`; its value is discarded.
type SemiExpr struct {
	Span  token.Span
	Inner ExprRef
}

func (n *SemiExpr) Kind() string         { return "SemiExpr" }
func (n *SemiExpr) NodeSpan() token.Span { return n.Span }
func (n *SemiExpr) exprNode()            {}
