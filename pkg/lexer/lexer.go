// Package lexer implements the quill scanner.
package lexer

import (
	"unicode/utf8"

	"github.com/thomasrohde/quill/pkg/compiler"
	"github.com/thomasrohde/quill/pkg/diagnostics"
	"github.com/thomasrohde/quill/pkg/token"
)

// eofChar is returned by peek at the end of input. It is not a valid rune,
// so a NUL byte in the source is scanned like any other character.
const eofChar rune = -1

// Scanner turns the source of a Context into tokens. It moves a single
// cursor forward and never backtracks. A Scanner is used once.
type Scanner struct {
	ctx    *compiler.Context
	source string
	pos    int
	errs   []diagnostics.CompileError
}

// New creates a Scanner over ctx's source.
func New(ctx *compiler.Context) *Scanner {
	return &Scanner{
		ctx:    ctx,
		source: ctx.SourceCode(),
	}
}

// ScanAllTokens scans the whole source. Characters outside the lexical
// grammar are skipped and reported; scanning always reaches the end.
func (s *Scanner) ScanAllTokens() ([]token.Token, []diagnostics.CompileError) {
	var tokens []token.Token
	for {
		tok, ok := s.scanNextToken()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	s.ctx.Logger().Debug("scanned source", "tokens", len(tokens), "errors", len(s.errs))
	return tokens, s.errs
}

// Tokenize scans ctx's source, returning a *diagnostics.Diagnostic when any
// character could not be scanned.
func Tokenize(ctx *compiler.Context) ([]token.Token, error) {
	tokens, errs := New(ctx).ScanAllTokens()
	if d := diagnostics.New(errs); d != nil {
		return tokens, d
	}
	return tokens, nil
}

func (s *Scanner) scanNextToken() (token.Token, bool) {
	for {
		s.skipWhitespace()

		start := token.BytePos(s.pos)
		ch := s.bump()

		var kind token.Kind
		switch {
		case ch == eofChar:
			return token.Token{}, false
		case ch == ';':
			kind = token.Semi
		case ch == ':':
			kind = s.scanColon()
		case ch == '(':
			kind = token.OpenParen
		case ch == ')':
			kind = token.ClosedParen
		case ch == '{':
			kind = token.OpenCurly
		case ch == '}':
			kind = token.ClosedCurly
		case ch == '-' && s.peek() == '>':
			s.bump()
			kind = token.DashGreater
		case ch == '.' && s.peek() == '.':
			s.bump()
			kind = token.PeriodPeriod
			if s.peek() == '=' {
				s.bump()
				kind = token.PeriodPeriodEqual
			}
		case isDigit(ch):
			kind = s.scanIntegerConstant()
		case isAlpha(ch):
			kind = s.scanIdentifier(start)
		default:
			s.errs = append(s.errs, &diagnostics.UnrecognizedChar{
				Char: ch,
				At:   token.Span{Start: start, End: token.BytePos(s.pos)},
			})
			continue
		}

		return token.Token{
			Kind: kind,
			Span: token.Span{Start: start, End: token.BytePos(s.pos)},
		}, true
	}
}

// scanColon applies maximal munch after a ':'.
func (s *Scanner) scanColon() token.Kind {
	switch s.peek() {
	case ':':
		s.bump()
		return token.ColonColon
	case '=':
		s.bump()
		return token.ColonEqual
	}
	return token.Colon
}

func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.peek()) {
		s.bump()
	}
}

func (s *Scanner) scanIntegerConstant() token.Kind {
	for isDigit(s.peek()) {
		s.bump()
	}
	return token.IntegerConstant
}

func (s *Scanner) scanIdentifier(start token.BytePos) token.Kind {
	for isAlphaNumeric(s.peek()) {
		s.bump()
	}
	return token.Lookup(s.source[start:s.pos])
}

func (s *Scanner) peek() rune {
	if s.pos >= len(s.source) {
		return eofChar
	}
	r, _ := utf8.DecodeRuneInString(s.source[s.pos:])
	return r
}

// bump consumes one code point. Invalid UTF-8 advances a single byte.
func (s *Scanner) bump() rune {
	if s.pos >= len(s.source) {
		return eofChar
	}
	r, size := utf8.DecodeRuneInString(s.source[s.pos:])
	s.pos += size
	return r
}

// isWhitespace matches ASCII whitespace: space, tab, line feed, form feed, carriage return.
func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\f' || ch == '\r'
}

func isAlpha(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isAlphaNumeric(ch rune) bool {
	return isAlpha(ch) || isDigit(ch)
}
