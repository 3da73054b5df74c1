// Package syntax is an immutable, persistent syntax tree for C#-style source
// files. Every edit returns a new tree; unchanged subtrees are shared between
// the old and the new value, so a tree can be read from many goroutines.
package syntax

import (
	"fmt"
	"strings"
)

// Kind enumerates the node variants. The set is closed: Node can only be
// implemented inside this package.
type Kind int

const (
	KindCompilationUnit Kind = iota
	KindNamespace
	KindType
	KindMember
	KindDirective
)

func (k Kind) String() string {
	switch k {
	case KindCompilationUnit:
		return "compilation_unit"
	case KindNamespace:
		return "namespace"
	case KindType:
		return "type"
	case KindMember:
		return "member"
	case KindDirective:
		return "directive"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Node is one of *CompilationUnit, *Namespace, *TypeDecl, *Member or *Directive.
type Node interface {
	Kind() Kind
	LeadingTrivia() TriviaList
	TrailingTrivia() TriviaList
	// FullWidth is the printed length including leading and trailing trivia.
	FullWidth() int
	writeTo(b *strings.Builder)
}

// container is implemented by the nodes that own an ordered child list.
type container interface {
	Node
	children() []Node
	withChildren(children []Node) Node
	// childOffset is the distance from the node start to its first child.
	childOffset() int
}

// Span is a half-open byte range in printed source.
type Span struct {
	Start  int
	Length int
}

// End returns the offset just past the span.
func (s Span) End() int { return s.Start + s.Length }

// Print serialises n back to source text.
func Print(n Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	b.Grow(n.FullWidth())
	n.writeTo(&b)
	return b.String()
}

// Children returns the ordered children of n, or nil for leaf kinds.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *CompilationUnit:
		return v.Members()
	case *Namespace:
		return v.Members()
	case *TypeDecl:
		return v.Members()
	case *Member, *Directive:
		return nil
	default:
		panic(fmt.Sprintf("syntax: unexpected node %T", n))
	}
}

// WithLeadingTrivia returns a copy of n with its leading trivia replaced.
// A compilation unit has no leading trivia and is returned as is.
func WithLeadingTrivia(n Node, l TriviaList) Node {
	switch v := n.(type) {
	case *CompilationUnit:
		return v
	case *Namespace:
		s := v.Syntax()
		s.Leading = l
		return s.Build()
	case *TypeDecl:
		return v.WithLeadingTrivia(l...)
	case *Member:
		return v.WithLeadingTrivia(l...)
	case *Directive:
		s := v.Syntax()
		s.Leading = l
		return s.Build()
	default:
		panic(fmt.Sprintf("syntax: unexpected node %T", n))
	}
}

// WithTrailingTrivia returns a copy of n with its trailing trivia replaced.
func WithTrailingTrivia(n Node, l TriviaList) Node {
	switch v := n.(type) {
	case *CompilationUnit:
		return v.WithEndOfFileTrivia(l)
	case *Namespace:
		s := v.Syntax()
		s.Trailing = l
		return s.Build()
	case *TypeDecl:
		return v.WithTrailingTrivia(l...)
	case *Member:
		return v.WithTrailingTrivia(l...)
	case *Directive:
		s := v.Syntax()
		s.Trailing = l
		return s.Build()
	default:
		panic(fmt.Sprintf("syntax: unexpected node %T", n))
	}
}

// SpanAt returns the range of n without its leading and trailing trivia,
// assuming n starts at offset start.
func SpanAt(n Node, start int) Span {
	lead := n.LeadingTrivia().Width()
	trail := n.TrailingTrivia().Width()
	return Span{Start: start + lead, Length: n.FullWidth() - lead - trail}
}

func cloneNodes(nodes []Node) []Node {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]Node, len(nodes))
	copy(out, nodes)
	return out
}

func widthOf(nodes []Node) int {
	n := 0
	for _, c := range nodes {
		n += c.FullWidth()
	}
	return n
}

func writeAll(b *strings.Builder, nodes []Node) {
	for _, c := range nodes {
		c.writeTo(b)
	}
}
