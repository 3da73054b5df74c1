package analyzer

import "github.com/olehluchkiv/partials/internal/syntax"

func makeMember(kind syntax.MemberKind, name, text string) *syntax.Member {
	return syntax.MemberSyntax{
		Leading:  syntax.TriviaList{syntax.Space("    ")},
		Kind:     kind,
		Name:     name,
		Text:     text,
		Trailing: syntax.TriviaList{syntax.LineFeed()},
	}.Build()
}

func makeMethod(name string) *syntax.Member {
	return makeMember(syntax.MemberMethod, name, "void "+name+"() { }")
}

func makeType(name string, partial bool, members ...syntax.Node) *syntax.TypeDecl {
	mods := []string{"public"}
	if partial {
		mods = append(mods, syntax.PartialModifier)
	}
	return syntax.TypeDeclSyntax{
		Modifiers: mods,
		Keyword:   "class",
		Name:      name,
		Header:    "\n",
		Open:      syntax.TriviaList{syntax.LineFeed()},
		Members:   members,
		Trailing:  syntax.TriviaList{syntax.LineFeed()},
	}.Build()
}

// pathOf locates n in root and fails loudly when it is missing.
func pathOf(root, n syntax.Node) syntax.Path {
	p, ok := syntax.PathTo(root, n)
	if !ok {
		panic("node not in tree")
	}
	return p
}
