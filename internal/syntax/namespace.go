package syntax

import "strings"

// NamespaceSyntax holds the parts of a namespace declaration. Header is the
// verbatim text between the name and the opening brace (or the semicolon of
// a file-scoped namespace).
type NamespaceSyntax struct {
	Leading    TriviaList
	Name       string
	FileScoped bool
	Header     string
	Open       TriviaList
	Members    []Node
	Close      TriviaList
	Trailing   TriviaList
}

// Build returns the immutable node described by s.
func (s NamespaceSyntax) Build() *Namespace {
	n := &Namespace{
		leading:    s.Leading.clone(),
		name:       s.Name,
		fileScoped: s.FileScoped,
		header:     s.Header,
		open:       s.Open.clone(),
		members:    cloneNodes(s.Members),
		close:      s.Close.clone(),
		trailing:   s.Trailing.clone(),
	}
	n.width = len(n.prefix()) + widthOf(n.members) + len(n.suffix())
	return n
}

// Namespace is a block or file-scoped namespace declaration.
type Namespace struct {
	leading    TriviaList
	name       string
	fileScoped bool
	header     string
	open       TriviaList
	members    []Node
	close      TriviaList
	trailing   TriviaList
	width      int
}

// NewNamespace builds a namespace with default layout.
func NewNamespace(name string, fileScoped bool, members []Node) *Namespace {
	s := NamespaceSyntax{Name: name, FileScoped: fileScoped, Members: members, Open: TriviaList{LineFeed()}}
	if !fileScoped {
		s.Header = "\n"
	}
	return s.Build()
}

func (n *Namespace) Kind() Kind { return KindNamespace }
func (n *Namespace) LeadingTrivia() TriviaList { return n.leading.clone() }
func (n *Namespace) TrailingTrivia() TriviaList { return n.trailing.clone() }
func (n *Namespace) FullWidth() int { return n.width }
func (n *Namespace) String() string { return Print(n) }

func (n *Namespace) Name() string { return n.name }
func (n *Namespace) IsFileScoped() bool { return n.fileScoped }
func (n *Namespace) Members() []Node { return cloneNodes(n.members) }
func (n *Namespace) CloseTrivia() TriviaList { return n.close.clone() }

// Syntax returns an editable copy of the parts of n.
func (n *Namespace) Syntax() NamespaceSyntax {
	return NamespaceSyntax{
		Leading:    n.leading.clone(),
		Name:       n.name,
		FileScoped: n.fileScoped,
		Header:     n.header,
		Open:       n.open.clone(),
		Members:    cloneNodes(n.members),
		Close:      n.close.clone(),
		Trailing:   n.trailing.clone(),
	}
}

func (n *Namespace) WithMembers(members []Node) *Namespace {
	s := n.Syntax()
	s.Members = members
	return s.Build()
}

func (n *Namespace) prefix() string {
	var b strings.Builder
	b.WriteString(n.leading.String())
	b.WriteString("namespace ")
	b.WriteString(n.name)
	b.WriteString(n.header)
	if n.fileScoped {
		b.WriteByte(';')
	} else {
		b.WriteByte('{')
	}
	b.WriteString(n.open.String())
	return b.String()
}

func (n *Namespace) suffix() string {
	var b strings.Builder
	b.WriteString(n.close.String())
	if !n.fileScoped {
		b.WriteByte('}')
	}
	b.WriteString(n.trailing.String())
	return b.String()
}

func (n *Namespace) writeTo(b *strings.Builder) {
	b.WriteString(n.prefix())
	writeAll(b, n.members)
	b.WriteString(n.suffix())
}

func (n *Namespace) children() []Node { return n.members }
func (n *Namespace) childOffset() int { return len(n.prefix()) }
func (n *Namespace) withChildren(children []Node) Node {
	return n.WithMembers(children)
}
