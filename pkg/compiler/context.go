// Package compiler holds the per-compilation Context shared by the scanner
// and the parser: the source text, the AST arena and the symbol table.
package compiler

import (
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/thomasrohde/quill/pkg/ast"
	"github.com/thomasrohde/quill/pkg/diagnostics"
	"github.com/thomasrohde/quill/pkg/intern"
	"github.com/thomasrohde/quill/pkg/token"
)

// Context owns everything one compilation produces. Every AST node and
// symbol handed out by a Context is valid for the Context's lifetime.
// A Context must not be shared between concurrent parses.
type Context struct {
	source    string
	filename  string
	sessionID string
	arena     *ast.Arena
	interner  *intern.Interner
	logger    *slog.Logger
}

// Option is a functional option for configuring a Context.
type Option func(*Context)

// WithFilename sets the name used when reporting positions.
func WithFilename(name string) Option {
	return func(c *Context) {
		c.filename = name
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) Option {
	return func(c *Context) {
		c.sessionID = id
	}
}

// NewContext creates a Context for source.
func NewContext(source string, opts ...Option) *Context {
	c := &Context{
		source:   source,
		filename: "<input>",
		arena:    ast.NewArena(),
		interner: intern.New(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sessionID == "" {
		c.sessionID = uuid.NewString()
	}
	c.logger = c.logger.With("session", c.sessionID, "file", c.filename)
	return c
}

// SourceCode returns the complete source text.
func (c *Context) SourceCode() string { return c.source }

// Filename returns the name of the source.
func (c *Context) Filename() string { return c.filename }

// SessionID identifies this compilation in logs.
func (c *Context) SessionID() string { return c.sessionID }

// Logger returns the compilation's logger.
func (c *Context) Logger() *slog.Logger { return c.logger }

// Arena returns the arena owning the AST.
func (c *Context) Arena() *ast.Arena { return c.arena }

// Interner returns the symbol table.
func (c *Context) Interner() *intern.Interner { return c.interner }

// TextSnippet returns the source text covered by span.
func (c *Context) TextSnippet(span token.Span) string {
	return c.source[span.Start:span.End]
}

// Intern returns the symbol for text.
func (c *Context) Intern(text string) intern.Symbol {
	return c.interner.Intern(text)
}

// Resolve returns the text of sym.
func (c *Context) Resolve(sym intern.Symbol) string {
	return c.interner.Resolve(sym)
}

// Position converts a byte offset to a line and column.
func (c *Context) Position(pos token.BytePos) diagnostics.Position {
	return diagnostics.Locate(c.source, pos)
}

// AllocExpr stores e in the arena.
func (c *Context) AllocExpr(e ast.Expr) ast.ExprRef {
	return c.arena.AllocExpr(e)
}

// AllocExprs stores es in the arena as one list.
func (c *Context) AllocExprs(es []ast.Expr) ast.ExprList {
	return c.arena.AllocExprs(es)
}

// AllocDecls stores ds in the arena as one list.
func (c *Context) AllocDecls(ds []ast.Decl) ast.DeclList {
	return c.arena.AllocDecls(ds)
}

// AllocElseIfBranches stores bs in the arena as one list.
func (c *Context) AllocElseIfBranches(bs []ast.ElseIfBranch) ast.ElseIfList {
	return c.arena.AllocElseIfBranches(bs)
}

// AllocParams stores ps in the arena as one list.
func (c *Context) AllocParams(ps []ast.Param) ast.ParamList {
	return c.arena.AllocParams(ps)
}

// Report resolves every error of d against this Context's source.
func (c *Context) Report(d *diagnostics.Diagnostic) []diagnostics.Report {
	return d.Reports(c.filename, c.source)
}
