package syntax

import (
	"strings"
)

// TriviaKind classifies a piece of non-semantic source text.
type TriviaKind int

const (
	Whitespace TriviaKind = iota
	EndOfLine
	SingleLineComment
	MultiLineComment
	RegionDirective
	EndRegionDirective
	OtherDirective
	SkippedText
)

func (k TriviaKind) String() string {
	switch k {
	case Whitespace:
		return "whitespace"
	case EndOfLine:
		return "end_of_line"
	case SingleLineComment:
		return "single_line_comment"
	case MultiLineComment:
		return "multi_line_comment"
	case RegionDirective:
		return "region"
	case EndRegionDirective:
		return "endregion"
	case OtherDirective:
		return "directive"
	case SkippedText:
		return "skipped"
	default:
		return "unknown"
	}
}

// Trivia is formatting, comment or directive text attached to a node.
type Trivia struct {
	Kind TriviaKind
	Text string
}

// LineFeed returns a "\n" end-of-line trivia.
func LineFeed() Trivia { return Trivia{Kind: EndOfLine, Text: "\n"} }

// Space returns a whitespace trivia of the given text.
func Space(text string) Trivia { return Trivia{Kind: Whitespace, Text: text} }

// IsRegion reports whether t is a #region or #endregion directive.
func (t Trivia) IsRegion() bool {
	return t.Kind == RegionDirective || t.Kind == EndRegionDirective
}

// IsComment reports whether t is a comment.
func (t Trivia) IsComment() bool {
	return t.Kind == SingleLineComment || t.Kind == MultiLineComment
}

// TriviaList is an ordered run of trivia.
type TriviaList []Trivia

func (l TriviaList) String() string {
	var b strings.Builder
	for _, t := range l {
		b.WriteString(t.Text)
	}
	return b.String()
}

// Width is the byte length of the printed list.
func (l TriviaList) Width() int {
	n := 0
	for _, t := range l {
		n += len(t.Text)
	}
	return n
}

// EndsWithNewLine reports whether the last trivia is an end of line.
func (l TriviaList) EndsWithNewLine() bool {
	return len(l) > 0 && l[len(l)-1].Kind == EndOfLine
}

// Count returns the number of trivia matching pred.
func (l TriviaList) Count(pred func(Trivia) bool) int {
	n := 0
	for _, t := range l {
		if pred(t) {
			n++
		}
	}
	return n
}

func (l TriviaList) clone() TriviaList {
	if len(l) == 0 {
		return nil
	}
	out := make(TriviaList, len(l))
	copy(out, l)
	return out
}

// withoutRegions drops every region directive together with the indentation
// in front of it and the line break that ends it.
func (l TriviaList) withoutRegions() TriviaList {
	if l.Count(Trivia.IsRegion) == 0 {
		return l
	}
	out := make(TriviaList, 0, len(l))
	for i := 0; i < len(l); i++ {
		t := l[i]
		if !t.IsRegion() {
			out = append(out, t)
			continue
		}
		if n := len(out); n > 0 && out[n-1].Kind == Whitespace {
			out = out[:n-1]
		}
		if i+1 < len(l) && l[i+1].Kind == EndOfLine {
			i++
		}
	}
	return out
}

// ScanTrivia splits text that holds nothing but trivia into its pieces.
// Text that is not whitespace, a comment or a directive is kept as
// SkippedText so printing stays lossless.
func ScanTrivia(text string) TriviaList {
	var out TriviaList
	lineStart := true
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == '\r' && i+1 < len(text) && text[i+1] == '\n':
			out = append(out, Trivia{Kind: EndOfLine, Text: "\r\n"})
			i += 2
			lineStart = true
		case c == '\n' || c == '\r':
			out = append(out, Trivia{Kind: EndOfLine, Text: text[i : i+1]})
			i++
			lineStart = true
		case isBlank(c):
			j := i
			for j < len(text) && isBlank(text[j]) {
				j++
			}
			out = append(out, Trivia{Kind: Whitespace, Text: text[i:j]})
			i = j
		case strings.HasPrefix(text[i:], "//"):
			j := lineEnd(text, i)
			out = append(out, Trivia{Kind: SingleLineComment, Text: text[i:j]})
			i = j
			lineStart = false
		case strings.HasPrefix(text[i:], "/*"):
			j := len(text)
			if end := strings.Index(text[i+2:], "*/"); end >= 0 {
				j = i + 2 + end + 2
			}
			out = append(out, Trivia{Kind: MultiLineComment, Text: text[i:j]})
			i = j
			lineStart = false
		case c == '#' && lineStart:
			j := lineEnd(text, i)
			out = append(out, Trivia{Kind: directiveKind(text[i:j]), Text: text[i:j]})
			i = j
			lineStart = false
		default:
			j := i
			for j < len(text) && !isBlank(text[j]) && text[j] != '\n' && text[j] != '\r' {
				j++
			}
			out = append(out, Trivia{Kind: SkippedText, Text: text[i:j]})
			i = j
			lineStart = false
		}
	}
	return out
}

func directiveKind(text string) TriviaKind {
	body := strings.TrimLeft(strings.TrimPrefix(text, "#"), " \t")
	switch {
	case strings.HasPrefix(body, "endregion"):
		return EndRegionDirective
	case strings.HasPrefix(body, "region"):
		return RegionDirective
	default:
		return OtherDirective
	}
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\f' || c == '\v'
}

func lineEnd(text string, from int) int {
	if j := strings.IndexAny(text[from:], "\r\n"); j >= 0 {
		return from + j
	}
	return len(text)
}

// isRegionLine reports whether a line of verbatim source is a region directive.
func isRegionLine(line string) bool {
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, "#") {
		return false
	}
	k := directiveKind(s)
	return k == RegionDirective || k == EndRegionDirective
}

// stripRegionLines removes whole #region/#endregion lines from verbatim text.
func stripRegionLines(text string) string {
	if !strings.Contains(text, "#") {
		return text
	}
	lines := strings.SplitAfter(text, "\n")
	var b strings.Builder
	changed := false
	for _, line := range lines {
		if isRegionLine(line) {
			changed = true
			continue
		}
		b.WriteString(line)
	}
	if !changed {
		return text
	}
	return b.String()
}

func countRegionLines(text string) int {
	if !strings.Contains(text, "#") {
		return 0
	}
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if isRegionLine(line) {
			n++
		}
	}
	return n
}
