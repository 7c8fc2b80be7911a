// Package frontend provides the top-level quill front end orchestrator.
package frontend

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thomasrohde/quill/pkg/ast"
	"github.com/thomasrohde/quill/pkg/compiler"
	"github.com/thomasrohde/quill/pkg/diagnostics"
	"github.com/thomasrohde/quill/pkg/formatter"
	"github.com/thomasrohde/quill/pkg/lexer"
	"github.com/thomasrohde/quill/pkg/parser"
	"github.com/thomasrohde/quill/pkg/token"
)

// Output formats accepted by Encode and Dump.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Result holds a successfully parsed program together with the Context that
// owns its nodes and symbols.
type Result struct {
	Context *compiler.Context
	Program ast.Program
}

// Frontend wires the scanner, parser and formatter together.
type Frontend struct {
	logger    *slog.Logger
	recovery  parser.RecoveryMode
	maxErrors int
}

// Option is a functional option for configuring the Frontend.
type Option func(*Frontend)

// WithLogger sets the logger handed to every Context.
func WithLogger(l *slog.Logger) Option {
	return func(f *Frontend) {
		f.logger = l
	}
}

// WithRecovery sets the parser recovery mode.
func WithRecovery(m parser.RecoveryMode) Option {
	return func(f *Frontend) {
		f.recovery = m
	}
}

// WithMaxErrors caps the number of parse errors collected per file.
func WithMaxErrors(n int) Option {
	return func(f *Frontend) {
		f.maxErrors = n
	}
}

// New creates a new Frontend with the given options.
func New(opts ...Option) *Frontend {
	f := &Frontend{recovery: parser.RecoveryResync}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Frontend) newContext(source, filename string) *compiler.Context {
	return compiler.NewContext(source, compiler.WithFilename(filename), compiler.WithLogger(f.logger))
}

// Tokens scans source. The tokens scanned around any bad characters are
// returned together with the error.
func (f *Frontend) Tokens(source, filename string) ([]token.Token, *compiler.Context, error) {
	ctx := f.newContext(source, filename)
	tokens, err := lexer.Tokenize(ctx)
	return tokens, ctx, err
}

// Parse scans and parses source.
func (f *Frontend) Parse(source, filename string) (*Result, error) {
	ctx := f.newContext(source, filename)
	prog, err := parser.Parse(ctx,
		parser.WithRecovery(f.recovery),
		parser.WithMaxErrors(f.maxErrors),
	)
	if err != nil {
		return nil, err
	}
	return &Result{Context: ctx, Program: prog}, nil
}

// Check parses source and returns its diagnostics, or nil when it is clean.
func (f *Frontend) Check(source, filename string) *diagnostics.Diagnostic {
	_, err := f.Parse(source, filename)
	if err == nil {
		return nil
	}
	// parser.Parse fails only with a Diagnostic.
	var d *diagnostics.Diagnostic
	errors.As(err, &d)
	return d
}

// Format parses and formats source.
func (f *Frontend) Format(source, filename string) (string, error) {
	res, err := f.Parse(source, filename)
	if err != nil {
		return "", err
	}
	return formatter.Format(res.Context, res.Program), nil
}

// Dump parses source and encodes its AST in the given format.
func (f *Frontend) Dump(source, filename, format string) ([]byte, error) {
	res, err := f.Parse(source, filename)
	if err != nil {
		return nil, err
	}
	return Encode(res.Tree(), format)
}

// Tree returns the serializable view of the parsed program.
func (r *Result) Tree() *ast.DumpNode {
	return ast.Dump(r.Context.Arena(), r.Context.Resolve, &r.Program)
}

// TokenView is a token with its source text, as printed by dumps.
type TokenView struct {
	Kind token.Kind `json:"kind" yaml:"kind"`
	Span token.Span `json:"span" yaml:"span"`
	Text string     `json:"text" yaml:"text"`
}

// TokenViews pairs every token with the text it covers in ctx's source.
func TokenViews(ctx *compiler.Context, tokens []token.Token) []TokenView {
	views := make([]TokenView, len(tokens))
	for i, tok := range tokens {
		views[i] = TokenView{Kind: tok.Kind, Span: tok.Span, Text: ctx.TextSnippet(tok.Span)}
	}
	return views
}

// Encode serializes v as indented JSON or as YAML. The empty format is JSON.
func Encode(v any, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}
