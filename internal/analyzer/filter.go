package analyzer

import (
	"fmt"

	"github.com/olehluchkiv/partials/internal/syntax"
)

// FilterContainerSiblings returns the members of the scope that directly
// encloses the type at the end of path, filtered by pred. Recognised scopes
// are block and file-scoped namespaces and the compilation unit itself; for
// any other parent, such as an enclosing type, the result is empty. Using
// directives and other scaffolding are never siblings.
func FilterContainerSiblings(path syntax.Path, pred func(syntax.Node) bool) []syntax.Node {
	if _, ok := path.Node().(*syntax.TypeDecl); !ok {
		return nil
	}
	var out []syntax.Node
	for _, n := range scopeMembers(path.Parent()) {
		if n.Kind() == syntax.KindDirective {
			continue
		}
		if pred(n) {
			out = append(out, n)
		}
	}
	return out
}

// CountPartialSiblingsWithSameName counts the partial declarations in the
// enclosing scope named like the type at the end of path. The type counts
// itself when it is partial.
func CountPartialSiblingsWithSameName(path syntax.Path) int {
	t, ok := path.Node().(*syntax.TypeDecl)
	if !ok {
		return 0
	}
	return len(FilterContainerSiblings(path, func(n syntax.Node) bool {
		s, ok := n.(*syntax.TypeDecl)
		return ok && s.IsPartial() && s.Identifier() == t.Identifier()
	}))
}

// HasManyPartialsInSameSource reports whether the type at the end of path is
// partial and shares its scope with another partial fragment of itself.
func HasManyPartialsInSameSource(path syntax.Path) bool {
	t, ok := path.Node().(*syntax.TypeDecl)
	return ok && t.IsPartial() && CountPartialSiblingsWithSameName(path) > 1
}

// CountSiblingsWithSameName is CountPartialSiblingsWithSameName without the
// partial requirement.
func CountSiblingsWithSameName(path syntax.Path) int {
	t, ok := path.Node().(*syntax.TypeDecl)
	if !ok {
		return 0
	}
	return len(FilterContainerSiblings(path, func(n syntax.Node) bool {
		s, ok := n.(*syntax.TypeDecl)
		return ok && s.Identifier() == t.Identifier()
	}))
}

// HasManyInSameSource reports whether another declaration named like the
// type at the end of path shares its scope.
func HasManyInSameSource(path syntax.Path) bool {
	return CountSiblingsWithSameName(path) > 1
}

// scopeMembers returns the children of a recognised container.
func scopeMembers(n syntax.Node) []syntax.Node {
	switch v := n.(type) {
	case nil:
		return nil
	case *syntax.CompilationUnit:
		return v.Members()
	case *syntax.Namespace:
		return v.Members()
	case *syntax.TypeDecl, *syntax.Member, *syntax.Directive:
		return nil
	default:
		panic(fmt.Sprintf("analyzer: unexpected node %T", n))
	}
}
