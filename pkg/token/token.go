// Package token defines the quill token kinds, source spans and the keyword table.
package token

import "fmt"

// BytePos is a zero-based byte offset into the source text.
type BytePos int

// Span is a half-open byte range [Start, End) in the source text.
type Span struct {
	Start BytePos `json:"start" yaml:"start"`
	End   BytePos `json:"end" yaml:"end"`
}

// Len returns the byte length of the span.
func (s Span) Len() int {
	return int(s.End - s.Start)
}

// To returns the span covering s through end.
func (s Span) To(end Span) Span {
	return Span{Start: s.Start, End: end.End}
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Delim identifies a bracket pair.
type Delim int

const (
	Paren Delim = iota
	Curly
)

// Keyword identifies a reserved word.
type Keyword int

const (
	I32 Keyword = iota
	If
	Else
	For
	Break
	Continue
)

var keywordText = [...]string{
	I32:      "i32",
	If:       "if",
	Else:     "else",
	For:      "for",
	Break:    "break",
	Continue: "continue",
}

func (k Keyword) String() string {
	if int(k) < len(keywordText) {
		return keywordText[k]
	}
	return fmt.Sprintf("keyword(%d)", int(k))
}

// Kind identifies the type of a token.
type Kind int

const (
	// Literals
	UnitConstant Kind = iota
	IntegerConstant

	Identifier

	// Reserved for operator expressions; the scanner never produces these.
	Comma
	Excla
	Star
	Slash
	Plus
	Dash
	Less
	Greater
	LessLess
	GreaterGreater
	LessEqual
	GreaterEqual

	// Punctuation
	Colon             // :
	ColonColon        // ::
	ColonEqual        // :=
	Semi              // ;
	DashGreater       // ->
	PeriodPeriod      // ..
	PeriodPeriodEqual // ..=

	OpenParen   // (
	ClosedParen // )
	OpenCurly   // {
	ClosedCurly // }

	// Keywords
	KwI32
	KwIf
	KwElse
	KwFor
	KwBreak
	KwContinue

	// EOF is the sentinel the parser sees past the end of the token buffer.
	EOF
)

// KeywordKind returns the token kind of keyword k.
func KeywordKind(k Keyword) Kind {
	return KwI32 + Kind(k)
}

// Keyword reports which keyword k is, if any.
func (k Kind) Keyword() (Keyword, bool) {
	if k >= KwI32 && k <= KwContinue {
		return Keyword(k - KwI32), true
	}
	return 0, false
}

// Delim reports the delimiter of an open or closed bracket kind.
func (k Kind) Delim() (Delim, bool) {
	switch k {
	case OpenParen, ClosedParen:
		return Paren, true
	case OpenCurly, ClosedCurly:
		return Curly, true
	}
	return 0, false
}

// IsClosed reports whether k closes a delimited group.
func (k Kind) IsClosed() bool {
	return k == ClosedParen || k == ClosedCurly
}

var kindNames = map[Kind]string{
	UnitConstant:      "unit constant",
	IntegerConstant:   "integer",
	Identifier:        "identifier",
	Comma:             "','",
	Excla:             "'!'",
	Star:              "'*'",
	Slash:             "'/'",
	Plus:              "'+'",
	Dash:              "'-'",
	Less:              "'<'",
	Greater:           "'>'",
	LessLess:          "'<<'",
	GreaterGreater:    "'>>'",
	LessEqual:         "'<='",
	GreaterEqual:      "'>='",
	Colon:             "':'",
	ColonColon:        "'::'",
	ColonEqual:        "':='",
	Semi:              "';'",
	DashGreater:       "'->'",
	PeriodPeriod:      "'..'",
	PeriodPeriodEqual: "'..='",
	OpenParen:         "'('",
	ClosedParen:       "')'",
	OpenCurly:         "'{'",
	ClosedCurly:       "'}'",
	KwI32:             "'i32'",
	KwIf:              "'if'",
	KwElse:            "'else'",
	KwFor:             "'for'",
	KwBreak:           "'break'",
	KwContinue:        "'continue'",
	EOF:               "end of file",
}

// String returns the human-readable name used in diagnostics.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(k))
}

var kindIdents = map[Kind]string{
	UnitConstant:      "UnitConstant",
	IntegerConstant:   "IntegerConstant",
	Identifier:        "Identifier",
	Comma:             "Comma",
	Excla:             "Excla",
	Star:              "Star",
	Slash:             "Slash",
	Plus:              "Plus",
	Dash:              "Dash",
	Less:              "Less",
	Greater:           "Greater",
	LessLess:          "LessLess",
	GreaterGreater:    "GreaterGreater",
	LessEqual:         "LessEqual",
	GreaterEqual:      "GreaterEqual",
	Colon:             "Colon",
	ColonColon:        "ColonColon",
	ColonEqual:        "ColonEqual",
	Semi:              "Semi",
	DashGreater:       "DashGreater",
	PeriodPeriod:      "PeriodPeriod",
	PeriodPeriodEqual: "PeriodPeriodEqual",
	OpenParen:         "Open(Paren)",
	ClosedParen:       "Closed(Paren)",
	OpenCurly:         "Open(Curly)",
	ClosedCurly:       "Closed(Curly)",
	KwI32:             "Keyword(I32)",
	KwIf:              "Keyword(If)",
	KwElse:            "Keyword(Else)",
	KwFor:             "Keyword(For)",
	KwBreak:           "Keyword(Break)",
	KwContinue:        "Keyword(Continue)",
	EOF:               "EOF",
}

// Ident returns the stable identifier of k used in token dumps.
func (k Kind) Ident() string {
	if name, ok := kindIdents[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText encodes the kind by its stable identifier.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.Ident()), nil
}

// Keywords maps reserved words to their token kinds.
var Keywords = func() map[string]Kind {
	m := make(map[string]Kind, len(keywordText))
	for k, text := range keywordText {
		m[text] = KeywordKind(Keyword(k))
	}
	return m
}()

// Lookup returns the keyword kind for text, or Identifier.
func Lookup(text string) Kind {
	if kind, ok := Keywords[text]; ok {
		return kind
	}
	return Identifier
}

// Token is a single scanned token. Tokens are plain values.
type Token struct {
	Kind Kind `json:"kind" yaml:"kind"`
	Span Span `json:"span" yaml:"span"`
}

// EOFAt returns the end-of-stream sentinel positioned at offset end.
func EOFAt(end BytePos) Token {
	return Token{Kind: EOF, Span: Span{Start: end, End: end}}
}
