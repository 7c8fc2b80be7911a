package parser

import (
	"testing"

	"github.com/thomasrohde/quill/pkg/compiler"
	"github.com/thomasrohde/quill/pkg/lexer"
)

func newTestParser(t *testing.T, source string, opts ...Option) (*compiler.Context, *Parser) {
	t.Helper()
	ctx := compiler.NewContext(source)
	tokens, err := lexer.Tokenize(ctx)
	if err != nil {
		t.Fatalf("unexpected scan error: %v", err)
	}
	return ctx, New(ctx, tokens, opts...)
}

func declNames(ctx *compiler.Context, p *Parser) []string {
	var names []string
	for _, d := range p.decls {
		names = append(names, ctx.Resolve(d.Identifier))
	}
	return names
}

func TestResyncKeepsGoodDeclarations(t *testing.T) {
	ctx, p := newTestParser(t, "a :: 1\nb :: )\nc :: 3")
	if _, err := p.ParseProgram(); err == nil {
		t.Fatal("expected a diagnostic")
	}
	if got := declNames(ctx, p); len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("kept declarations = %v, want [a c]", got)
	}
}

func TestResyncIgnoresNestedBindings(t *testing.T) {
	ctx, p := newTestParser(t, "a :: 1\nb :: { x :: 1 }\nc :: 3")
	if _, err := p.ParseProgram(); err == nil {
		t.Fatal("expected a diagnostic")
	}
	if len(p.errs) != 1 {
		t.Errorf("expected 1 error, got %d: %v", len(p.errs), p.errs)
	}
	if got := declNames(ctx, p); len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("kept declarations = %v, want [a c]", got)
	}
}

func TestResyncResumesAtFailingToken(t *testing.T) {
	// `b` is the token that failed the `::` check of `a`.
	ctx, p := newTestParser(t, "a b :: 2")
	if _, err := p.ParseProgram(); err == nil {
		t.Fatal("expected a diagnostic")
	}
	if len(p.errs) != 1 {
		t.Errorf("expected 1 error, got %d", len(p.errs))
	}
	if got := declNames(ctx, p); len(got) != 1 || got[0] != "b" {
		t.Errorf("kept declarations = %v, want [b]", got)
	}
}

func TestResyncNeverMovesBackwards(t *testing.T) {
	// The unclosed block consumes `b ::`; resync does not look behind the
	// failure for it.
	ctx, p := newTestParser(t, "a :: { 1\nb :: 2")
	if _, err := p.ParseProgram(); err == nil {
		t.Fatal("expected a diagnostic")
	}
	if len(p.errs) != 1 {
		t.Errorf("expected 1 error, got %d", len(p.errs))
	}
	if got := declNames(ctx, p); len(got) != 0 {
		t.Errorf("kept declarations = %v, want none", got)
	}
}

func TestMinimalLosesSwallowedDeclaration(t *testing.T) {
	ctx, p := newTestParser(t, "a :: { 1\nb :: 2", WithRecovery(RecoveryMinimal))
	if _, err := p.ParseProgram(); err == nil {
		t.Fatal("expected a diagnostic")
	}
	if got := declNames(ctx, p); len(got) != 0 {
		t.Errorf("kept declarations = %v, want none", got)
	}
}

func TestCursorPastEnd(t *testing.T) {
	_, p := newTestParser(t, "x ")
	if tok := p.consume(); tok.Kind.Ident() != "Identifier" {
		t.Fatalf("first token = %s", tok.Kind.Ident())
	}
	for i := 0; i < 3; i++ {
		tok := p.consume()
		if tok.Kind.Ident() != "EOF" || tok.Span.Start != 2 || tok.Span.End != 2 {
			t.Errorf("consume past end = %s %s", tok.Kind.Ident(), tok.Span)
		}
	}
	if p.pos != 1 {
		t.Errorf("cursor moved past the buffer: %d", p.pos)
	}
	if p.lookAhead(5).Kind.Ident() != "EOF" {
		t.Error("lookAhead past the end must return EOF")
	}
}
