// Package parser implements the quill recursive-descent parser.
package parser

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/thomasrohde/quill/pkg/ast"
	"github.com/thomasrohde/quill/pkg/compiler"
	"github.com/thomasrohde/quill/pkg/diagnostics"
	"github.com/thomasrohde/quill/pkg/intern"
	"github.com/thomasrohde/quill/pkg/lexer"
	"github.com/thomasrohde/quill/pkg/token"
)

// RecoveryMode selects how the parser continues after a failed declaration.
type RecoveryMode int

const (
	// RecoveryResync skips ahead to the next `name ::` pair.
	RecoveryResync RecoveryMode = iota
	// RecoveryMinimal resumes right after the tokens the failed
	// declaration consumed.
	RecoveryMinimal
)

func (m RecoveryMode) String() string {
	if m == RecoveryMinimal {
		return "minimal"
	}
	return "resync"
}

// ParseRecoveryMode converts a configuration value into a RecoveryMode.
// The empty string selects RecoveryResync.
func ParseRecoveryMode(s string) (RecoveryMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "resync":
		return RecoveryResync, nil
	case "minimal":
		return RecoveryMinimal, nil
	default:
		return RecoveryResync, fmt.Errorf("unknown recovery mode %q (want resync or minimal)", s)
	}
}

// Option is a functional option for configuring a Parser.
type Option func(*Parser)

// WithRecovery sets the recovery mode. The default is RecoveryResync.
func WithRecovery(m RecoveryMode) Option {
	return func(p *Parser) {
		p.recovery = m
	}
}

// WithLogger sets the logger. The default is the Context's logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMaxErrors stops parsing once n errors have been collected.
// Zero means no limit.
func WithMaxErrors(n int) Option {
	return func(p *Parser) {
		p.maxErrors = n
	}
}

// Parser turns a token buffer into a Program. It owns a cursor into the
// buffer; reading past the end yields an EOF token. A Parser is used once.
type Parser struct {
	ctx       *compiler.Context
	tokens    []token.Token
	pos       int
	prev      token.Span
	eof       token.Token
	recovery  RecoveryMode
	maxErrors int
	logger    *slog.Logger

	decls []ast.Decl
	errs  []diagnostics.CompileError
}

// New creates a Parser over tokens scanned from ctx's source.
func New(ctx *compiler.Context, tokens []token.Token, opts ...Option) *Parser {
	p := &Parser{
		ctx:    ctx,
		tokens: tokens,
		eof:    token.EOFAt(token.BytePos(len(ctx.SourceCode()))),
		logger: ctx.Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse scans ctx's source and parses it. Scan errors are returned as the
// Diagnostic without attempting a parse.
func Parse(ctx *compiler.Context, opts ...Option) (ast.Program, error) {
	tokens, errs := lexer.New(ctx).ScanAllTokens()
	if d := diagnostics.New(errs); d != nil {
		return ast.Program{}, d
	}
	return New(ctx, tokens, opts...).ParseProgram()
}

// ParseProgram parses every top-level declaration. The result is either a
// complete Program or a *diagnostics.Diagnostic holding one error per failed
// declaration, never both.
func (p *Parser) ParseProgram() (ast.Program, error) {
	for !p.hasReachedEOF() {
		start := p.pos
		decl, err := p.parseDecl()
		if err != nil {
			p.errs = append(p.errs, err)
			if p.maxErrors > 0 && len(p.errs) >= p.maxErrors {
				p.logger.Debug("error limit reached", "limit", p.maxErrors)
				break
			}
			p.resync(start, err)
			continue
		}
		p.decls = append(p.decls, decl)
	}

	p.logger.Debug("parsed program",
		"decls", len(p.decls),
		"errors", len(p.errs),
		"arena", p.ctx.Arena().Stats(),
	)

	if d := diagnostics.New(p.errs); d != nil {
		return ast.Program{}, d
	}
	return ast.Program{
		Span:  token.Span{Start: 0, End: p.eof.Span.End},
		Decls: p.ctx.AllocDecls(p.decls),
	}, nil
}

// resync repositions the cursor after the declaration starting at token
// index start failed. It scans forward from the token that failed, so names
// bound inside the failed declaration never surface as declarations. The
// cursor always ends up past start.
func (p *Parser) resync(start int, err diagnostics.CompileError) {
	if p.recovery == RecoveryResync {
		p.pos = max(start+1, p.pos-1)
		for !p.hasReachedEOF() && !p.atDeclStart() {
			p.pos++
		}
	}
	p.logger.Debug("recovered from failed declaration",
		"code", err.Code(),
		"span", err.Span().String(),
		"mode", p.recovery.String(),
		"resume", p.pos,
	)
}

func (p *Parser) atDeclStart() bool {
	return p.peek().Kind == token.Identifier && p.lookAhead(1).Kind == token.ColonColon
}

// --- Declarations ---

func (p *Parser) parseDecl() (ast.Decl, diagnostics.CompileError) {
	identTok := p.consume()
	if identTok.Kind != token.Identifier {
		return ast.Decl{}, &diagnostics.ExpectedDeclaration{Found: identTok}
	}
	if _, err := p.expect(token.ColonColon); err != nil {
		return ast.Decl{}, err
	}
	identifier := p.internIdent(identTok)

	value, err := p.parseStatementExpr()
	if err != nil {
		return ast.Decl{}, err
	}

	return ast.Decl{
		Span:       p.spanFrom(identTok),
		Identifier: identifier,
		Value:      p.ctx.AllocExpr(value),
	}, nil
}

// --- Expressions ---

func (p *Parser) parseStatementExpr() (ast.Expr, diagnostics.CompileError) {
	tok := p.consume()

	switch tok.Kind {
	case token.IntegerConstant:
		return p.parseIntegerConstant(tok)
	case token.KwIf:
		return p.parseIfExpr(tok)
	case token.KwFor:
		return p.parseForExpr(tok)
	case token.KwBreak:
		return &ast.BreakExpr{Span: tok.Span}, nil
	case token.KwContinue:
		return &ast.ContinueExpr{Span: tok.Span}, nil
	case token.OpenParen:
		return p.parseFunction(tok)
	case token.OpenCurly:
		body, err := p.parseCompoundExpr(tok)
		if err != nil {
			return nil, err
		}
		return &body, nil
	case token.Identifier:
		return p.parseIdentifierExpr(tok)
	default:
		return nil, &diagnostics.ExpectedExpression{Found: tok}
	}
}

// parseExpr parses a statement expression with an optional trailing `;`.
func (p *Parser) parseExpr() (ast.Expr, diagnostics.CompileError) {
	expr, err := p.parseStatementExpr()
	if err != nil {
		return nil, err
	}

	if p.peek().Kind == token.Semi {
		p.consume()
		return &ast.SemiExpr{
			Span:  expr.NodeSpan().To(p.prev),
			Inner: p.ctx.AllocExpr(expr),
		}, nil
	}
	return expr, nil
}

func (p *Parser) parseIntegerConstant(tok token.Token) (ast.Expr, diagnostics.CompileError) {
	text := p.ctx.TextSnippet(tok.Span)
	value, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return nil, &diagnostics.IntegerOutOfRange{Text: text, At: tok.Span}
	}
	return &ast.IntegerConstant{Span: tok.Span, Value: int32(value)}, nil
}

// parseIdentifierExpr handles `name := value`, `name()` and a bare `name`.
func (p *Parser) parseIdentifierExpr(identTok token.Token) (ast.Expr, diagnostics.CompileError) {
	switch p.peek().Kind {
	case token.ColonEqual:
		p.consume()
		identifier := p.internIdent(identTok)
		value, err := p.parseStatementExpr()
		if err != nil {
			return nil, err
		}
		return &ast.BindDef{
			Span:       p.spanFrom(identTok),
			Identifier: identifier,
			Value:      p.ctx.AllocExpr(value),
		}, nil

	case token.OpenParen:
		p.consume()
		if _, err := p.expect(token.ClosedParen); err != nil {
			return nil, err
		}
		return &ast.FnCall{Span: p.spanFrom(identTok), Identifier: p.internIdent(identTok)}, nil

	default:
		return &ast.BindRef{Span: identTok.Span, Identifier: p.internIdent(identTok)}, nil
	}
}

func (p *Parser) parseIfExpr(ifTok token.Token) (ast.Expr, diagnostics.CompileError) {
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	trueBranch, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elseIfs []ast.ElseIfBranch
	for p.peek().Kind == token.KwElse && p.lookAhead(1).Kind == token.KwIf {
		elseTok := p.consume()
		p.consume()

		branchCond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		branch, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		elseIfs = append(elseIfs, ast.ElseIfBranch{
			Span:       p.spanFrom(elseTok),
			Cond:       p.ctx.AllocExpr(branchCond),
			TrueBranch: branch,
		})
	}

	var finalBranch *ast.CompoundExpr
	if p.peek().Kind == token.KwElse {
		p.consume()
		branch, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		finalBranch = &branch
	}

	return &ast.IfExpr{
		Span:           p.spanFrom(ifTok),
		Cond:           p.ctx.AllocExpr(cond),
		TrueBranch:     trueBranch,
		ElseIfBranches: p.ctx.AllocElseIfBranches(elseIfs),
		FinalBranch:    finalBranch,
	}, nil
}

func (p *Parser) parseForExpr(forTok token.Token) (ast.Expr, diagnostics.CompileError) {
	var iteration ast.ForIteration

	switch {
	case p.peek().Kind == token.Identifier && p.lookAhead(1).Kind == token.Colon:
		it, err := p.parseIterativeFor()
		if err != nil {
			return nil, err
		}
		iteration = it

	case p.peek().Kind != token.OpenCurly:
		startTok := p.peek()
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		iteration = &ast.ConditionalFor{
			Span: p.spanFrom(startTok),
			Cond: p.ctx.AllocExpr(cond),
		}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.ForExpr{
		Span:      p.spanFrom(forTok),
		Iteration: iteration,
		Body:      body,
	}, nil
}

// parseIterativeFor parses `name : start .. end` or `name : start ..= end`.
func (p *Parser) parseIterativeFor() (*ast.IterativeFor, diagnostics.CompileError) {
	identTok := p.consume()
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	identifier := p.internIdent(identTok)

	start, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	var rangeKind ast.RangeKind
	switch rangeTok := p.consume(); rangeTok.Kind {
	case token.PeriodPeriodEqual:
		rangeKind = ast.Inclusive
	case token.PeriodPeriod:
		rangeKind = ast.Exclusive
	default:
		return nil, &diagnostics.ExpectedButFound{Expected: token.PeriodPeriod, Found: rangeTok}
	}

	end, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &ast.IterativeFor{
		Span:       p.spanFrom(identTok),
		Identifier: identifier,
		Start:      p.ctx.AllocExpr(start),
		End:        p.ctx.AllocExpr(end),
		Range:      rangeKind,
	}, nil
}

// parseFunction parses `() { ... }` or `() -> i32 { ... }` after the `(`.
func (p *Parser) parseFunction(openTok token.Token) (ast.Expr, diagnostics.CompileError) {
	if _, err := p.expect(token.ClosedParen); err != nil {
		return nil, err
	}

	returnType := ast.Unit
	if p.peek().Kind == token.DashGreater {
		p.consume()
		if _, err := p.expect(token.KwI32); err != nil {
			return nil, err
		}
		returnType = ast.I32
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.Function{
		Span:       p.spanFrom(openTok),
		ReturnType: returnType,
		Params:     p.ctx.AllocParams(nil),
		Body:       body,
	}, nil
}

// parseBlock expects a `{` and parses the compound expression it opens.
func (p *Parser) parseBlock() (ast.CompoundExpr, diagnostics.CompileError) {
	openTok, err := p.expect(token.OpenCurly)
	if err != nil {
		return ast.CompoundExpr{}, err
	}
	return p.parseCompoundExpr(openTok)
}

// parseCompoundExpr parses the expressions after an already consumed `{`
// up to and including the matching `}`.
func (p *Parser) parseCompoundExpr(openTok token.Token) (ast.CompoundExpr, diagnostics.CompileError) {
	var exprs []ast.Expr
	for k := p.peek().Kind; k != token.ClosedCurly && k != token.EOF; k = p.peek().Kind {
		expr, err := p.parseExpr()
		if err != nil {
			return ast.CompoundExpr{}, err
		}
		exprs = append(exprs, expr)
	}

	if _, err := p.expect(token.ClosedCurly); err != nil {
		return ast.CompoundExpr{}, err
	}

	return ast.CompoundExpr{
		Span:  p.spanFrom(openTok),
		Exprs: p.ctx.AllocExprs(exprs),
	}, nil
}

// --- Cursor ---

func (p *Parser) peek() token.Token {
	return p.lookAhead(0)
}

func (p *Parser) lookAhead(n int) token.Token {
	if idx := p.pos + n; idx < len(p.tokens) {
		return p.tokens[idx]
	}
	return p.eof
}

// consume returns the current token and advances past it. At the end of the
// buffer it keeps returning EOF without moving.
func (p *Parser) consume() token.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
		p.prev = tok.Span
	}
	return tok
}

// expect consumes the current token and fails unless it has the given kind.
func (p *Parser) expect(kind token.Kind) (token.Token, diagnostics.CompileError) {
	tok := p.consume()
	if tok.Kind != kind {
		return tok, &diagnostics.ExpectedButFound{Expected: kind, Found: tok}
	}
	return tok, nil
}

func (p *Parser) hasReachedEOF() bool {
	return p.pos >= len(p.tokens)
}

// spanFrom covers everything from start to the last consumed token.
func (p *Parser) spanFrom(start token.Token) token.Span {
	return start.Span.To(p.prev)
}

func (p *Parser) internIdent(tok token.Token) intern.Symbol {
	return p.ctx.Intern(p.ctx.TextSnippet(tok.Span))
}
