package token_test

import (
	"testing"

	"github.com/thomasrohde/quill/pkg/token"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		text string
		want token.Kind
	}{
		{"i32", token.KwI32},
		{"if", token.KwIf},
		{"else", token.KwElse},
		{"for", token.KwFor},
		{"break", token.KwBreak},
		{"continue", token.KwContinue},
		{"if2", token.Identifier},
		{"I32", token.Identifier},
		{"_", token.Identifier},
		{"breaks", token.Identifier},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := token.Lookup(tt.text); got != tt.want {
				t.Errorf("Lookup(%q) = %s, want %s", tt.text, got.Ident(), tt.want.Ident())
			}
		})
	}
}

func TestKeywordKindRoundTrip(t *testing.T) {
	for _, kw := range []token.Keyword{token.I32, token.If, token.Else, token.For, token.Break, token.Continue} {
		kind := token.KeywordKind(kw)
		got, ok := kind.Keyword()
		if !ok || got != kw {
			t.Errorf("KeywordKind(%s).Keyword() = %v, %v", kw, got, ok)
		}
		if token.Lookup(kw.String()) != kind {
			t.Errorf("Lookup(%q) does not match KeywordKind", kw.String())
		}
	}
	if _, ok := token.Identifier.Keyword(); ok {
		t.Error("Identifier should not be a keyword")
	}
}

func TestDelims(t *testing.T) {
	if d, ok := token.OpenParen.Delim(); !ok || d != token.Paren {
		t.Errorf("OpenParen.Delim() = %v, %v", d, ok)
	}
	if d, ok := token.ClosedCurly.Delim(); !ok || d != token.Curly {
		t.Errorf("ClosedCurly.Delim() = %v, %v", d, ok)
	}
	if token.OpenCurly.IsClosed() || !token.ClosedParen.IsClosed() {
		t.Error("closed classification wrong")
	}
	if _, ok := token.Semi.Delim(); ok {
		t.Error("Semi is not a delimiter")
	}
}

func TestKindNames(t *testing.T) {
	if got := token.ColonColon.String(); got != "'::'" {
		t.Errorf("got %q", got)
	}
	if got := token.OpenCurly.Ident(); got != "Open(Curly)" {
		t.Errorf("got %q", got)
	}
	if got := token.EOF.String(); got != "end of file" {
		t.Errorf("got %q", got)
	}
}

func TestSpan(t *testing.T) {
	a := token.Span{Start: 2, End: 4}
	b := token.Span{Start: 6, End: 9}
	if got := a.To(b); got != (token.Span{Start: 2, End: 9}) {
		t.Errorf("To = %v", got)
	}
	if a.Len() != 2 {
		t.Errorf("Len = %d", a.Len())
	}
	if a.String() != "[2,4)" {
		t.Errorf("String = %q", a.String())
	}
	eof := token.EOFAt(10)
	if eof.Kind != token.EOF || eof.Span.Start != 10 || eof.Span.End != 10 {
		t.Errorf("EOFAt = %+v", eof)
	}
}
