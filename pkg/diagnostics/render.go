package diagnostics

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// Colors used by the pretty renderer.
var (
	ColorError = lipgloss.Color("#EF4444") // Red
	ColorHint  = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted = lipgloss.Color("#6B7280") // Gray
)

// Renderer draws reports with a source excerpt and a caret underline.
// Colors are only emitted when the output supports them.
type Renderer struct {
	errorStyle  lipgloss.Style
	arrowStyle  lipgloss.Style
	gutterStyle lipgloss.Style
	caretStyle  lipgloss.Style
	hintStyle   lipgloss.Style
}

// NewRenderer returns a Renderer whose color profile is detected from w.
func NewRenderer(w io.Writer) *Renderer {
	r := lipgloss.NewRenderer(w)
	return &Renderer{
		errorStyle:  r.NewStyle().Foreground(ColorError).Bold(true),
		arrowStyle:  r.NewStyle().Foreground(ColorHint),
		gutterStyle: r.NewStyle().Foreground(ColorMuted),
		caretStyle:  r.NewStyle().Foreground(ColorError).Bold(true),
		hintStyle:   r.NewStyle().Foreground(ColorHint).Italic(true),
	}
}

// Render formats reports found in source.
func (rd *Renderer) Render(source string, reports []Report) string {
	parts := make([]string, len(reports))
	for i, r := range reports {
		parts[i] = rd.render(source, r)
	}
	return strings.Join(parts, "\n\n")
}

func (rd *Renderer) render(source string, r Report) string {
	var b strings.Builder
	b.WriteString(rd.errorStyle.Render(fmt.Sprintf("error[%s]", r.Code)))
	b.WriteString(": " + r.Message)

	if r.Span != nil {
		b.WriteString("\n" + rd.arrowStyle.Render("  -->") +
			fmt.Sprintf(" %s:%d:%d", r.Span.File, r.Span.Line, r.Span.Col))

		if text, ok := sourceLine(source, r.Span.Line); ok {
			num := strconv.Itoa(r.Span.Line)
			pad := strings.Repeat(" ", len(num))
			width := caretWidth(source, text, r.Span)

			b.WriteString("\n" + rd.gutterStyle.Render(pad+" |"))
			b.WriteString("\n" + rd.gutterStyle.Render(num+" |") + " " + text)
			b.WriteString("\n" + rd.gutterStyle.Render(pad+" |") + " " +
				strings.Repeat(" ", r.Span.Col-1) + rd.caretStyle.Render(strings.Repeat("^", width)))
		}
	}

	if r.Hint != "" {
		b.WriteString("\n" + rd.hintStyle.Render("  hint: "+r.Hint))
	}
	return b.String()
}

func sourceLine(source string, line int) (string, bool) {
	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[line-1], "\r"), true
}

// caretWidth underlines the span in code points, clipped to the end of its
// first line.
func caretWidth(source, text string, loc *Location) int {
	remaining := utf8.RuneCountInString(text) - (loc.Col - 1)
	start, end := int(loc.Start), int(loc.End)
	end = min(end, len(source))
	start = min(start, end)
	width := utf8.RuneCountInString(source[start:end])
	if width > remaining {
		width = remaining
	}
	if width < 1 {
		width = 1
	}
	return width
}
