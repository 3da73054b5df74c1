package syntax

import "strings"

// CompilationUnit is the root of a source file.
type CompilationUnit struct {
	members []Node
	eof     TriviaList
	width   int
}

// NewCompilationUnit builds a root from its top-level children and the
// trivia left at the end of the file.
func NewCompilationUnit(members []Node, eof TriviaList) *CompilationUnit {
	u := &CompilationUnit{members: cloneNodes(members), eof: eof.clone()}
	u.width = widthOf(u.members) + u.eof.Width()
	return u
}

func (u *CompilationUnit) Kind() Kind { return KindCompilationUnit }
func (u *CompilationUnit) LeadingTrivia() TriviaList { return nil }
func (u *CompilationUnit) TrailingTrivia() TriviaList { return u.eof.clone() }
func (u *CompilationUnit) FullWidth() int { return u.width }
func (u *CompilationUnit) String() string { return Print(u) }

// Members returns the top-level children in source order.
func (u *CompilationUnit) Members() []Node { return cloneNodes(u.members) }

// EndOfFileTrivia returns the trivia after the last child.
func (u *CompilationUnit) EndOfFileTrivia() TriviaList { return u.eof.clone() }

func (u *CompilationUnit) WithMembers(members []Node) *CompilationUnit {
	return NewCompilationUnit(members, u.eof)
}

func (u *CompilationUnit) WithEndOfFileTrivia(eof TriviaList) *CompilationUnit {
	return NewCompilationUnit(u.members, eof)
}

func (u *CompilationUnit) writeTo(b *strings.Builder) {
	writeAll(b, u.members)
	b.WriteString(u.eof.String())
}

func (u *CompilationUnit) children() []Node { return u.members }
func (u *CompilationUnit) childOffset() int { return 0 }
func (u *CompilationUnit) withChildren(children []Node) Node {
	return u.WithMembers(children)
}
