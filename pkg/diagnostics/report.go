package diagnostics

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/thomasrohde/quill/pkg/token"
)

// Position is a 1-based line and column. Columns count code points.
type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// Locate converts a byte offset in source to a line and column.
func Locate(source string, pos token.BytePos) Position {
	off := int(pos)
	if off > len(source) {
		off = len(source)
	}
	if off < 0 {
		off = 0
	}
	line := 1 + strings.Count(source[:off], "\n")
	lineStart := strings.LastIndexByte(source[:off], '\n') + 1
	return Position{Line: line, Column: 1 + utf8.RuneCountInString(source[lineStart:off])}
}

// Location places a report in a file.
type Location struct {
	File  string        `json:"file" yaml:"file"`
	Start token.BytePos `json:"start" yaml:"start"`
	End   token.BytePos `json:"end" yaml:"end"`
	Line  int           `json:"line" yaml:"line"`
	Col   int           `json:"col" yaml:"col"`
}

// Report is the serializable form of one error, ready for display.
type Report struct {
	Code    string    `json:"code" yaml:"code"`
	Message string    `json:"message" yaml:"message"`
	Span    *Location `json:"span,omitempty" yaml:"span,omitempty"`
	Hint    string    `json:"hint,omitempty" yaml:"hint,omitempty"`
}

// MakeReport creates a Report that is not tied to a CompileError.
func MakeReport(code, message string, span *Location, hint string) Report {
	return Report{
		Code:    code,
		Message: message,
		Span:    span,
		Hint:    hint,
	}
}

// NewReport resolves e against the source it was found in.
func NewReport(e CompileError, file, source string) Report {
	span := e.Span()
	pos := Locate(source, span.Start)
	return MakeReport(e.Code(), e.Error(), &Location{
		File:  file,
		Start: span.Start,
		End:   span.End,
		Line:  pos.Line,
		Col:   pos.Column,
	}, e.Hint())
}

// Reports resolves every error of d.
func (d *Diagnostic) Reports(file, source string) []Report {
	reports := make([]Report, d.Len())
	for i, e := range d.Errors {
		reports[i] = NewReport(e, file, source)
	}
	return reports
}

// FormatReport formats a single report for display.
func FormatReport(r Report, pretty bool) string {
	if !pretty {
		b, _ := json.Marshal(r)
		return string(b)
	}
	loc := "<unknown>"
	if r.Span != nil {
		loc = fmt.Sprintf("%s:%d:%d", r.Span.File, r.Span.Line, r.Span.Col)
	}
	out := fmt.Sprintf("error[%s]: %s\n  --> %s", r.Code, r.Message, loc)
	if r.Hint != "" {
		out += fmt.Sprintf("\n  hint: %s", r.Hint)
	}
	return out
}

// FormatReports formats a slice of reports for display.
func FormatReports(reports []Report, pretty bool) string {
	if !pretty {
		if reports == nil {
			reports = []Report{}
		}
		b, _ := json.Marshal(reports)
		return string(b)
	}
	parts := make([]string, len(reports))
	for i, r := range reports {
		parts[i] = FormatReport(r, true)
	}
	return strings.Join(parts, "\n\n")
}
