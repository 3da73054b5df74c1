package syntax

import "strings"

// DirectiveKind classifies file scaffolding that is not a declaration.
type DirectiveKind int

const (
	DirectiveOther DirectiveKind = iota
	DirectiveUsing
	DirectiveExternAlias
	DirectiveAttribute
)

// DirectiveSyntax holds the parts of a directive.
type DirectiveSyntax struct {
	Leading  TriviaList
	Kind     DirectiveKind
	Text     string
	Trailing TriviaList
}

// Build returns the immutable node described by s.
func (s DirectiveSyntax) Build() *Directive {
	d := &Directive{
		leading:  s.Leading.clone(),
		kind:     s.Kind,
		text:     s.Text,
		trailing: s.Trailing.clone(),
	}
	d.width = d.leading.Width() + len(d.text) + d.trailing.Width()
	return d
}

// Directive is a using directive, extern alias or assembly attribute. It
// scaffolds a compilation unit and is never treated as a sibling declaration.
type Directive struct {
	leading  TriviaList
	kind     DirectiveKind
	text     string
	trailing TriviaList
	width    int
}

// NewUsing builds "using name;" on its own line.
func NewUsing(name string) *Directive {
	return DirectiveSyntax{Kind: DirectiveUsing, Text: "using " + name + ";", Trailing: TriviaList{LineFeed()}}.Build()
}

func (d *Directive) Kind() Kind { return KindDirective }
func (d *Directive) LeadingTrivia() TriviaList { return d.leading.clone() }
func (d *Directive) TrailingTrivia() TriviaList { return d.trailing.clone() }
func (d *Directive) FullWidth() int { return d.width }
func (d *Directive) String() string { return Print(d) }

func (d *Directive) DirectiveKind() DirectiveKind { return d.kind }
func (d *Directive) Text() string { return d.text }

// Syntax returns an editable copy of the parts of d.
func (d *Directive) Syntax() DirectiveSyntax {
	return DirectiveSyntax{
		Leading:  d.leading.clone(),
		Kind:     d.kind,
		Text:     d.text,
		Trailing: d.trailing.clone(),
	}
}

func (d *Directive) writeTo(b *strings.Builder) {
	b.WriteString(d.leading.String())
	b.WriteString(d.text)
	b.WriteString(d.trailing.String())
}
