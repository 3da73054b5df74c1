// Package format normalises whitespace after structural edits: Allman
// braces, one indentation unit per nesting level, capped blank lines, every
// declaration on its own line. Comments and directives are kept in place.
// Formatting is idempotent.
package format

import (
	"fmt"
	"strings"

	"github.com/olehluchkiv/partials/internal/syntax"
)

// Options controls formatting.
type Options struct {
	Indent        string // one nesting level; default four spaces
	NewLine       string // default "\n"
	MaxBlankLines int    // blank lines kept between declarations; negative means 0
}

// DefaultOptions returns the usual C# layout.
func DefaultOptions() Options {
	return Options{Indent: "    ", NewLine: "\n", MaxBlankLines: 1}
}

// Formatter reformats syntax trees.
type Formatter struct {
	opts Options
}

// New creates a formatter with the given options. The zero Options means
// DefaultOptions.
func New(opts Options) *Formatter {
	if opts == (Options{}) {
		return &Formatter{opts: DefaultOptions()}
	}
	if opts.Indent == "" {
		opts.Indent = DefaultOptions().Indent
	}
	if opts.NewLine == "" {
		opts.NewLine = DefaultOptions().NewLine
	}
	if opts.MaxBlankLines < 0 {
		opts.MaxBlankLines = 0
	}
	return &Formatter{opts: opts}
}

// Format returns a reformatted copy of n. A node other than a compilation
// unit is laid out as if it started a file.
func (f *Formatter) Format(n syntax.Node) syntax.Node {
	if u, ok := n.(*syntax.CompilationUnit); ok {
		return f.unit(u)
	}
	out, rest := f.node(n, n.LeadingTrivia(), 0, true)
	if len(rest) == 0 {
		return out
	}
	return syntax.WithTrailingTrivia(out, append(out.TrailingTrivia(), f.closing(rest, "", "", false)...))
}

func (f *Formatter) unit(u *syntax.CompilationUnit) *syntax.CompilationUnit {
	members, carry := f.children(u.Members(), 0, nil, true)
	eof := f.closing(append(carry, u.EndOfFileTrivia()...), "", "", len(members) == 0)
	return syntax.NewCompilationUnit(members, eof)
}

// children lays out a sequence of siblings at depth. carry is trivia that
// spilled over from the line that opened the sequence; the trivia that
// spills past the last sibling is returned.
func (f *Formatter) children(nodes []syntax.Node, depth int, carry syntax.TriviaList, atOpen bool) ([]syntax.Node, syntax.TriviaList) {
	out := make([]syntax.Node, len(nodes))
	for i, n := range nodes {
		leading := append(carry, n.LeadingTrivia()...)
		out[i], carry = f.node(n, leading, depth, atOpen && i == 0)
	}
	return out, carry
}

// node formats n given its raw leading trivia and returns the trivia that
// followed its line.
func (f *Formatter) node(n syntax.Node, leading syntax.TriviaList, depth int, atOpen bool) (syntax.Node, syntax.TriviaList) {
	indent := f.indent(depth)
	lead := f.leading(leading, indent, atOpen)
	trail, rest := f.trailing(n.TrailingTrivia())

	switch v := n.(type) {
	case *syntax.CompilationUnit:
		return f.unit(v), nil
	case *syntax.Namespace:
		return f.namespace(v, lead, trail, rest, depth)
	case *syntax.TypeDecl:
		s := v.Syntax()
		s.Leading = lead
		s.Attributes = f.attributes(s.Attributes, indent)
		s.Header = f.header(s.Header, indent)
		open, spill := f.trailing(s.Open)
		s.Open = open
		var carry syntax.TriviaList
		s.Members, carry = f.children(s.Members, depth+1, spill, true)
		s.Close = f.closing(append(carry, s.Close...), f.indent(depth+1), indent, len(s.Members) == 0)
		s.Trailing = trail
		return s.Build(), rest
	case *syntax.Member:
		s := v.Syntax()
		s.Text = f.reindent(s.Text, lastLineWidth(lead)-lastLineWidth(leading))
		s.Leading = lead
		s.Trailing = trail
		return s.Build(), rest
	case *syntax.Directive:
		s := v.Syntax()
		s.Text = f.reindent(s.Text, lastLineWidth(lead)-lastLineWidth(leading))
		s.Leading = lead
		s.Trailing = trail
		return s.Build(), rest
	default:
		panic(fmt.Sprintf("format: unexpected node %T", n))
	}
}

func (f *Formatter) namespace(ns *syntax.Namespace, lead, trail, rest syntax.TriviaList, depth int) (syntax.Node, syntax.TriviaList) {
	indent := f.indent(depth)
	s := ns.Syntax()
	s.Leading = lead
	open, spill := f.trailing(s.Open)
	s.Open = open
	if s.FileScoped {
		// Everything after a file-scoped namespace belongs to it, so what
		// follows the last member is handed on to the end of the file.
		s.Header = strings.TrimRight(s.Header, " \t\r\n")
		var carry syntax.TriviaList
		s.Members, carry = f.children(s.Members, depth, spill, false)
		spillOut := append(carry, s.Close...)
		spillOut = append(spillOut, ns.TrailingTrivia()...)
		s.Close = nil
		s.Trailing = nil
		return s.Build(), spillOut
	}
	s.Header = f.header(s.Header, indent)
	var carry syntax.TriviaList
	s.Members, carry = f.children(s.Members, depth+1, spill, true)
	s.Close = f.closing(append(carry, s.Close...), f.indent(depth+1), indent, len(s.Members) == 0)
	s.Trailing = trail
	return s.Build(), rest
}

func (f *Formatter) indent(depth int) string {
	return strings.Repeat(f.opts.Indent, depth)
}

func (f *Formatter) eol() syntax.Trivia {
	return syntax.Trivia{Kind: syntax.EndOfLine, Text: f.opts.NewLine}
}

// header puts the opening brace of a declaration on its own line.
func (f *Formatter) header(h, indent string) string {
	return strings.TrimRight(h, " \t\r\n") + f.opts.NewLine + indent
}

// attributes places one attribute list per line. Lists that shared a line
// with the declaration keep doing so.
func (f *Formatter) attributes(attrs, indent string) string {
	body := strings.TrimRight(attrs, " \t\r\n")
	if strings.TrimSpace(body) == "" {
		return ""
	}
	var lines []string
	for _, line := range strings.Split(body, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	sep := f.opts.NewLine + indent
	out := strings.Join(lines, sep)
	if strings.Contains(attrs[len(body):], "\n") {
		return out + sep
	}
	return out + " "
}
