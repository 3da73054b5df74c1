package syntax

import (
	"slices"
	"strings"
)

// PartialModifier is the modifier shared by every fragment of a split type.
const PartialModifier = "partial"

// TypeDeclSyntax holds the parts of a class, struct, interface or record
// declaration. Attributes is the verbatim attribute section including the
// whitespace that follows it; Header is the verbatim text between the
// identifier and the opening brace (type parameters, base list, constraints).
type TypeDeclSyntax struct {
	Leading    TriviaList
	Attributes string
	Modifiers  []string
	Keyword    string
	Name       string
	Header     string
	Open       TriviaList
	Members    []Node
	Close      TriviaList
	Terminator string
	Trailing   TriviaList
}

// Build returns the immutable node described by s.
func (s TypeDeclSyntax) Build() *TypeDecl {
	t := &TypeDecl{
		leading:    s.Leading.clone(),
		attributes: s.Attributes,
		modifiers:  slices.Clone(s.Modifiers),
		keyword:    s.Keyword,
		name:       s.Name,
		header:     s.Header,
		open:       s.Open.clone(),
		members:    cloneNodes(s.Members),
		close:      s.Close.clone(),
		terminator: s.Terminator,
		trailing:   s.Trailing.clone(),
	}
	if t.keyword == "" {
		t.keyword = "class"
	}
	t.width = len(t.prefix()) + widthOf(t.members) + len(t.suffix())
	return t
}

// TypeDecl is a type declaration with an ordered member list. Members are
// *Member values or nested *TypeDecl values.
type TypeDecl struct {
	leading    TriviaList
	attributes string
	modifiers  []string
	keyword    string
	name       string
	header     string
	open       TriviaList
	members    []Node
	close      TriviaList
	terminator string
	trailing   TriviaList
	width      int
}

// NewTypeDecl builds an empty declaration with the given modifiers, keyword
// and identifier, laid out as
//
//	modifiers keyword name
//	{
//	}
func NewTypeDecl(modifiers []string, keyword, name string) *TypeDecl {
	return TypeDeclSyntax{
		Modifiers: modifiers,
		Keyword:   keyword,
		Name:      name,
		Header:    "\n",
		Open:      TriviaList{LineFeed()},
	}.Build()
}

func (t *TypeDecl) Kind() Kind { return KindType }
func (t *TypeDecl) LeadingTrivia() TriviaList { return t.leading.clone() }
func (t *TypeDecl) TrailingTrivia() TriviaList { return t.trailing.clone() }
func (t *TypeDecl) FullWidth() int { return t.width }
func (t *TypeDecl) String() string { return Print(t) }

// Identifier returns the declared type name.
func (t *TypeDecl) Identifier() string { return t.name }

// Keyword returns the declaration keyword, e.g. "class" or "record struct".
func (t *TypeDecl) Keyword() string { return t.keyword }

// Modifiers returns the modifier keywords in source order.
func (t *TypeDecl) Modifiers() []string { return slices.Clone(t.modifiers) }

// Members returns the member declarations in source order.
func (t *TypeDecl) Members() []Node { return cloneNodes(t.members) }

// MemberCount returns len(t.Members()) without copying.
func (t *TypeDecl) MemberCount() int { return len(t.members) }

// HasModifier reports whether m is among the modifiers.
func (t *TypeDecl) HasModifier(m string) bool { return slices.Contains(t.modifiers, m) }

// IsPartial reports whether the declaration carries the partial modifier.
func (t *TypeDecl) IsPartial() bool { return t.HasModifier(PartialModifier) }

// Syntax returns an editable copy of the parts of t.
func (t *TypeDecl) Syntax() TypeDeclSyntax {
	return TypeDeclSyntax{
		Leading:    t.leading.clone(),
		Attributes: t.attributes,
		Modifiers:  slices.Clone(t.modifiers),
		Keyword:    t.keyword,
		Name:       t.name,
		Header:     t.header,
		Open:       t.open.clone(),
		Members:    cloneNodes(t.members),
		Close:      t.close.clone(),
		Terminator: t.terminator,
		Trailing:   t.trailing.clone(),
	}
}

// WithMembers returns a copy of t holding members instead of its own.
func (t *TypeDecl) WithMembers(members []Node) *TypeDecl {
	s := t.Syntax()
	s.Members = members
	return s.Build()
}

// WithModifier returns t with m appended to the modifiers, or t itself when
// m is already present. Appending keeps "partial" next to the keyword.
func (t *TypeDecl) WithModifier(m string) *TypeDecl {
	if t.HasModifier(m) {
		return t
	}
	s := t.Syntax()
	s.Modifiers = append(s.Modifiers, m)
	return s.Build()
}

func (t *TypeDecl) WithLeadingTrivia(trivia ...Trivia) *TypeDecl {
	s := t.Syntax()
	s.Leading = trivia
	return s.Build()
}

func (t *TypeDecl) WithTrailingTrivia(trivia ...Trivia) *TypeDecl {
	s := t.Syntax()
	s.Trailing = trivia
	return s.Build()
}

// WithoutTrailingTrivia drops everything printed after the closing brace
// and terminator.
func (t *TypeDecl) WithoutTrailingTrivia() *TypeDecl {
	if len(t.trailing) == 0 {
		return t
	}
	return t.WithTrailingTrivia()
}

func (t *TypeDecl) prefix() string {
	var b strings.Builder
	b.WriteString(t.leading.String())
	b.WriteString(t.attributes)
	for _, m := range t.modifiers {
		b.WriteString(m)
		b.WriteByte(' ')
	}
	b.WriteString(t.keyword)
	b.WriteByte(' ')
	b.WriteString(t.name)
	b.WriteString(t.header)
	b.WriteByte('{')
	b.WriteString(t.open.String())
	return b.String()
}

func (t *TypeDecl) suffix() string {
	var b strings.Builder
	b.WriteString(t.close.String())
	b.WriteByte('}')
	b.WriteString(t.terminator)
	b.WriteString(t.trailing.String())
	return b.String()
}

func (t *TypeDecl) writeTo(b *strings.Builder) {
	b.WriteString(t.prefix())
	writeAll(b, t.members)
	b.WriteString(t.suffix())
}

func (t *TypeDecl) children() []Node { return t.members }
func (t *TypeDecl) childOffset() int { return len(t.prefix()) }
func (t *TypeDecl) withChildren(children []Node) Node {
	return t.WithMembers(children)
}
