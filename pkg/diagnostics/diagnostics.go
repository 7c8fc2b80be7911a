// Package diagnostics defines quill syntax errors and how they are reported.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/thomasrohde/quill/pkg/token"
)

// Diagnostic code constants.
const (
	EExpectedDecl  = "E_EXPECTED_DECL"
	EExpectedExpr  = "E_EXPECTED_EXPR"
	EExpectedToken = "E_EXPECTED_TOKEN"
	EUnrecognized  = "E_UNRECOGNIZED_CHAR"
	EIntRange      = "E_INT_RANGE"
	EIO            = "E_IO"
	EConfig        = "E_CONFIG"
)

// CompileError is a recoverable syntax error found while scanning or parsing.
type CompileError interface {
	error
	Code() string
	Span() token.Span
	Hint() string
	compileError() // sealed marker
}

// ExpectedDeclaration is reported when a top-level item does not start with an identifier.
type ExpectedDeclaration struct {
	Found token.Token
}

func (e *ExpectedDeclaration) Error() string {
	return fmt.Sprintf("expected a declaration, found %s", e.Found.Kind)
}
func (e *ExpectedDeclaration) Code() string     { return EExpectedDecl }
func (e *ExpectedDeclaration) Span() token.Span { return e.Found.Span }
func (e *ExpectedDeclaration) Hint() string {
	if kw, ok := e.Found.Kind.Keyword(); ok {
		return fmt.Sprintf("'%s' is reserved and cannot name a declaration", kw)
	}
	return "top-level items have the form `name :: expression`"
}
func (e *ExpectedDeclaration) compileError() {}

// ExpectedExpression is reported when no expression can start at a token.
type ExpectedExpression struct {
	Found token.Token
}

func (e *ExpectedExpression) Error() string {
	return fmt.Sprintf("expected an expression, found %s", e.Found.Kind)
}
func (e *ExpectedExpression) Code() string     { return EExpectedExpr }
func (e *ExpectedExpression) Span() token.Span { return e.Found.Span }
func (e *ExpectedExpression) Hint() string     { return "" }
func (e *ExpectedExpression) compileError()    {}

// ExpectedButFound is reported when the grammar requires one specific token.
type ExpectedButFound struct {
	Expected token.Kind
	Found    token.Token
}

func (e *ExpectedButFound) Error() string {
	return fmt.Sprintf("expected %s, found %s", e.Expected, e.Found.Kind)
}
func (e *ExpectedButFound) Code() string     { return EExpectedToken }
func (e *ExpectedButFound) Span() token.Span { return e.Found.Span }
func (e *ExpectedButFound) Hint() string {
	d, ok := e.Expected.Delim()
	if !ok || e.Found.Kind != token.EOF || !e.Expected.IsClosed() {
		return ""
	}
	if d == token.Curly {
		return "this block is never closed"
	}
	return "this parenthesis is never closed"
}
func (e *ExpectedButFound) compileError() {}

// UnrecognizedChar is reported by the scanner for characters outside the lexical grammar.
type UnrecognizedChar struct {
	Char rune
	At   token.Span
}

func (e *UnrecognizedChar) Error() string {
	return fmt.Sprintf("unrecognized character %q", e.Char)
}
func (e *UnrecognizedChar) Code() string     { return EUnrecognized }
func (e *UnrecognizedChar) Span() token.Span { return e.At }
func (e *UnrecognizedChar) Hint() string {
	switch e.Char {
	case '-':
		return "'-' is only valid as part of '->'"
	case '.':
		return "'.' is only valid as part of '..' or '..='"
	}
	return ""
}
func (e *UnrecognizedChar) compileError() {}

// IntegerOutOfRange is reported for literals that do not fit a signed 32-bit integer.
type IntegerOutOfRange struct {
	Text string
	At   token.Span
}

func (e *IntegerOutOfRange) Error() string {
	return fmt.Sprintf("integer literal %s is out of range", e.Text)
}
func (e *IntegerOutOfRange) Code() string     { return EIntRange }
func (e *IntegerOutOfRange) Span() token.Span { return e.At }
func (e *IntegerOutOfRange) Hint() string {
	return "integer literals must not exceed 2147483647"
}
func (e *IntegerOutOfRange) compileError() {}

// Diagnostic aggregates every CompileError of one run. A Diagnostic is only
// produced when at least one error was found.
type Diagnostic struct {
	Errors []CompileError
}

// New returns a Diagnostic holding errs, or nil when errs is empty.
func New(errs []CompileError) *Diagnostic {
	if len(errs) == 0 {
		return nil
	}
	return &Diagnostic{Errors: errs}
}

// Len returns the number of errors.
func (d *Diagnostic) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Errors)
}

// Codes returns the code of every error in order.
func (d *Diagnostic) Codes() []string {
	codes := make([]string, d.Len())
	for i, e := range d.Errors {
		codes[i] = e.Code()
	}
	return codes
}

func (d *Diagnostic) Error() string {
	msgs := make([]string, len(d.Errors))
	for i, e := range d.Errors {
		msgs[i] = fmt.Sprintf("%s: %s", e.Code(), e.Error())
	}
	return strings.Join(msgs, "; ")
}
