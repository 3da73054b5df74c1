package syntax

// method builds an indented one-line method member.
func method(name string) *Member {
	return MemberSyntax{
		Leading:  TriviaList{Space("    ")},
		Kind:     MemberMethod,
		Name:     name,
		Text:     "void " + name + "() { }",
		Trailing: TriviaList{LineFeed()},
	}.Build()
}

// field builds an indented field member.
func field(name string) *Member {
	return MemberSyntax{
		Leading:  TriviaList{Space("    ")},
		Kind:     MemberField,
		Name:     name,
		Text:     "int " + name + ";",
		Trailing: TriviaList{LineFeed()},
	}.Build()
}

// class builds a top-level public class laid out in Allman style.
func class(name string, members ...Node) *TypeDecl {
	return TypeDeclSyntax{
		Modifiers: []string{"public"},
		Keyword:   "class",
		Name:      name,
		Header:    "\n",
		Open:      TriviaList{LineFeed()},
		Members:   members,
		Trailing:  TriviaList{LineFeed()},
	}.Build()
}
