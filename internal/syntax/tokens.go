package syntax

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Equivalent reports whether a and b are the same kind of node and print to
// the same token stream. Whitespace, comments and directives do not count.
func Equivalent(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a == b {
		return true
	}
	if a.Kind() != b.Kind() {
		return false
	}
	return slices.Equal(Tokens(a), Tokens(b))
}

// Tokens returns the significant tokens of the printed node.
func Tokens(n Node) []string {
	return tokenize(Print(n))
}

func tokenize(src string) []string {
	var out []string
	lineStart := true
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '\n' || c == '\r':
			i++
			lineStart = true
		case isBlank(c):
			i++
		case strings.HasPrefix(src[i:], "//"):
			i = lineEnd(src, i)
		case strings.HasPrefix(src[i:], "/*"):
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				i = len(src)
			} else {
				i += 2 + end + 2
			}
		case c == '#' && lineStart:
			i = lineEnd(src, i)
		case c == '"':
			j := scanQuoted(src, i+1, '"', false)
			out = append(out, src[i:j])
			i = j
			lineStart = false
		case (c == '@' || c == '$') && i+1 < len(src) && src[i+1] == '"':
			j := scanQuoted(src, i+2, '"', c == '@')
			out = append(out, src[i:j])
			i = j
			lineStart = false
		case c == '\'':
			j := scanQuoted(src, i+1, '\'', false)
			out = append(out, src[i:j])
			i = j
			lineStart = false
		default:
			r, size := utf8.DecodeRuneInString(src[i:])
			j := i + size
			if isWordRune(r) {
				for j < len(src) {
					r2, s2 := utf8.DecodeRuneInString(src[j:])
					if !isWordRune(r2) {
						break
					}
					j += s2
				}
			}
			out = append(out, src[i:j])
			i = j
			lineStart = false
		}
	}
	return out
}

// scanQuoted returns the offset just past the closing quote. Verbatim
// strings escape a quote by doubling it instead of with a backslash.
func scanQuoted(src string, from int, quote byte, verbatim bool) int {
	for j := from; j < len(src); j++ {
		switch {
		case !verbatim && src[j] == '\\':
			j++
		case src[j] == quote:
			if verbatim && j+1 < len(src) && src[j+1] == quote {
				j++
				continue
			}
			return j + 1
		case !verbatim && src[j] == '\n':
			return j
		}
	}
	return len(src)
}

func isWordRune(r rune) bool {
	return r == '_' || r == '@' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
