package format

import "github.com/olehluchkiv/partials/internal/syntax"

// leading lays out trivia that starts at the beginning of a line and runs up
// to a declaration. Comment and directive lines are re-indented, runs of
// blank lines are capped, and the declaration itself lands at indent. Blank
// lines right after an opening brace are dropped.
func (f *Formatter) leading(l syntax.TriviaList, indent string, atOpen bool) syntax.TriviaList {
	full, last := splitLines(l)
	out, pending, seen := f.lines(full, indent, atOpen)
	out = f.blanks(out, pending, atOpen && !seen)
	if content := trimLine(last); len(content) > 0 {
		out = append(out, f.lineIndent(content, indent)...)
		out = append(out, content...)
		return append(out, syntax.Space(" "))
	}
	if indent != "" {
		out = append(out, syntax.Space(indent))
	}
	return out
}

// closing lays out the trivia between the last declaration of a block and
// its closing brace, or the end of the file. Blank lines in front of the
// brace are dropped.
func (f *Formatter) closing(l syntax.TriviaList, inner, brace string, atOpen bool) syntax.TriviaList {
	full, last := splitLines(l)
	out, pending, seen := f.lines(full, inner, atOpen)
	if content := trimLine(last); len(content) > 0 {
		out = f.blanks(out, pending, atOpen && !seen)
		out = append(out, f.lineIndent(content, inner)...)
		out = append(out, content...)
		out = append(out, f.eol())
	}
	if brace != "" {
		out = append(out, syntax.Space(brace))
	}
	return out
}

// trailing keeps what shares the line with a declaration, one space before
// each comment, and ends the line. Trivia past the first line break is
// returned for the next declaration.
func (f *Formatter) trailing(l syntax.TriviaList) (syntax.TriviaList, syntax.TriviaList) {
	var same, rest syntax.TriviaList
	same = l
	for i, t := range l {
		if t.Kind == syntax.EndOfLine {
			same, rest = l[:i], l[i+1:]
			break
		}
	}
	var out syntax.TriviaList
	for _, t := range same {
		if t.Kind == syntax.Whitespace {
			continue
		}
		out = append(out, syntax.Space(" "), t)
	}
	return append(out, f.eol()), rest
}

// lines emits the full lines that carry content, each preceded by its
// capped run of blank lines. Blank lines after the last content line are
// not emitted; their count is returned with whether any content was seen.
func (f *Formatter) lines(full []syntax.TriviaList, indent string, atOpen bool) (syntax.TriviaList, int, bool) {
	var out syntax.TriviaList
	blanks := 0
	seen := false
	for _, line := range full {
		content := trimLine(line)
		if len(content) == 0 {
			blanks++
			continue
		}
		out = f.blanks(out, blanks, atOpen && !seen)
		blanks = 0
		seen = true
		out = append(out, f.lineIndent(content, indent)...)
		out = append(out, content...)
		out = append(out, f.eol())
	}
	return out, blanks, seen
}

func (f *Formatter) blanks(out syntax.TriviaList, n int, suppress bool) syntax.TriviaList {
	if suppress {
		return out
	}
	for range min(n, f.opts.MaxBlankLines) {
		out = append(out, f.eol())
	}
	return out
}

// lineIndent indents a comment or region line. Other directives such as
// #if stay in the first column.
func (f *Formatter) lineIndent(content syntax.TriviaList, indent string) syntax.TriviaList {
	if indent == "" || content[0].Kind == syntax.OtherDirective {
		return nil
	}
	return syntax.TriviaList{syntax.Space(indent)}
}

// splitLines cuts trivia at line breaks. The breaks themselves are dropped;
// the last, unterminated line is returned separately.
func splitLines(l syntax.TriviaList) ([]syntax.TriviaList, syntax.TriviaList) {
	var full []syntax.TriviaList
	var cur syntax.TriviaList
	for _, t := range l {
		if t.Kind == syntax.EndOfLine {
			full = append(full, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	return full, cur
}

// trimLine drops whitespace at both ends of a line.
func trimLine(line syntax.TriviaList) syntax.TriviaList {
	for len(line) > 0 && line[0].Kind == syntax.Whitespace {
		line = line[1:]
	}
	for len(line) > 0 && line[len(line)-1].Kind == syntax.Whitespace {
		line = line[:len(line)-1]
	}
	return line
}
