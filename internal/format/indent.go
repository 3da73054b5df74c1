package format

import (
	"strings"

	"github.com/olehluchkiv/partials/internal/syntax"
)

const tabWidth = 4

// reindent shifts the continuation lines of verbatim declaration text by
// delta columns and normalises their line breaks. Text holding a verbatim
// or raw string literal is left alone since its lines are data.
func (f *Formatter) reindent(text string, delta int) string {
	if !strings.Contains(text, "\n") || hasMultiLineLiteral(text) {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if i == 0 || line == "" {
			lines[i] = line
			continue
		}
		body := strings.TrimLeft(line, " \t")
		col := max(columns(line[:len(line)-len(body)])+delta, 0)
		lines[i] = f.pad(col) + body
	}
	return strings.Join(lines, f.opts.NewLine)
}

// pad renders col columns of indentation in the configured style.
func (f *Formatter) pad(col int) string {
	if strings.HasPrefix(f.opts.Indent, "\t") {
		return strings.Repeat("\t", col/tabWidth) + strings.Repeat(" ", col%tabWidth)
	}
	return strings.Repeat(" ", col)
}

func hasMultiLineLiteral(text string) bool {
	return strings.Contains(text, `@"`) || strings.Contains(text, `"""`)
}

// columns is the display width of leading whitespace.
func columns(ws string) int {
	col := 0
	for _, c := range ws {
		if c == '\t' {
			col += tabWidth - col%tabWidth
			continue
		}
		col++
	}
	return col
}

// lastLineWidth is the display width of the text after the last line break.
func lastLineWidth(l syntax.TriviaList) int {
	_, last := splitLines(l)
	return columns(last.String())
}
