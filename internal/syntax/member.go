package syntax

import "strings"

// MemberKind classifies a member declaration.
type MemberKind int

const (
	MemberOther MemberKind = iota
	MemberMethod
	MemberConstructor
	MemberDestructor
	MemberField
	MemberProperty
	MemberEvent
	MemberIndexer
	MemberOperator
	MemberEnum
	MemberDelegate
)

func (k MemberKind) String() string {
	switch k {
	case MemberMethod:
		return "method"
	case MemberConstructor:
		return "constructor"
	case MemberDestructor:
		return "destructor"
	case MemberField:
		return "field"
	case MemberProperty:
		return "property"
	case MemberEvent:
		return "event"
	case MemberIndexer:
		return "indexer"
	case MemberOperator:
		return "operator"
	case MemberEnum:
		return "enum"
	case MemberDelegate:
		return "delegate"
	default:
		return "other"
	}
}

// MemberSyntax holds the parts of a member declaration. Text is the verbatim
// declaration from its first token to its last.
type MemberSyntax struct {
	Leading  TriviaList
	Kind     MemberKind
	Name     string
	Text     string
	Trailing TriviaList
}

// Build returns the immutable node described by s.
func (s MemberSyntax) Build() *Member {
	m := &Member{
		leading:  s.Leading.clone(),
		kind:     s.Kind,
		name:     s.Name,
		text:     s.Text,
		trailing: s.Trailing.clone(),
	}
	m.width = m.leading.Width() + len(m.text) + m.trailing.Width()
	return m
}

// Member is a method, field, property or other declaration inside a type.
// Its body is kept verbatim; the engine moves members, it never edits them.
type Member struct {
	leading  TriviaList
	kind     MemberKind
	name     string
	text     string
	trailing TriviaList
	width    int
}

// NewMember builds a member on its own line with no indentation.
func NewMember(kind MemberKind, name, text string) *Member {
	return MemberSyntax{Kind: kind, Name: name, Text: text, Trailing: TriviaList{LineFeed()}}.Build()
}

func (m *Member) Kind() Kind { return KindMember }
func (m *Member) LeadingTrivia() TriviaList { return m.leading.clone() }
func (m *Member) TrailingTrivia() TriviaList { return m.trailing.clone() }
func (m *Member) FullWidth() int { return m.width }
func (m *Member) String() string { return Print(m) }

// MemberKind returns the declaration kind.
func (m *Member) MemberKind() MemberKind { return m.kind }

// Identifier returns the member name, or "" when the kind has none.
func (m *Member) Identifier() string { return m.name }

// Text returns the verbatim declaration without trivia.
func (m *Member) Text() string { return m.text }

// Syntax returns an editable copy of the parts of m.
func (m *Member) Syntax() MemberSyntax {
	return MemberSyntax{
		Leading:  m.leading.clone(),
		Kind:     m.kind,
		Name:     m.name,
		Text:     m.text,
		Trailing: m.trailing.clone(),
	}
}

func (m *Member) WithText(text string) *Member {
	s := m.Syntax()
	s.Text = text
	return s.Build()
}

func (m *Member) WithLeadingTrivia(trivia ...Trivia) *Member {
	s := m.Syntax()
	s.Leading = trivia
	return s.Build()
}

func (m *Member) WithTrailingTrivia(trivia ...Trivia) *Member {
	s := m.Syntax()
	s.Trailing = trivia
	return s.Build()
}

func (m *Member) writeTo(b *strings.Builder) {
	b.WriteString(m.leading.String())
	b.WriteString(m.text)
	b.WriteString(m.trailing.String())
}
