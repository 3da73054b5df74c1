// Package extract turns one declaration of a compilation unit into a
// standalone compilation unit.
package extract

import (
	"errors"
	"fmt"

	"github.com/olehluchkiv/partials/internal/analyzer"
	"github.com/olehluchkiv/partials/internal/syntax"
)

// ErrTargetMissing is returned when the declaration to extract is not part
// of the root, or did not survive the extraction.
var ErrTargetMissing = errors.New("extraction target missing")

// Formatter reformats a tree after structural edits.
type Formatter interface {
	Format(n syntax.Node) syntax.Node
}

// ExtractAsUnit returns a copy of root in which the type at the end of path
// is the only declaration left. Sibling declarations go together with their
// comments and whitespace, and so does every declaration of an enclosing
// scope that does not lead to the target: other namespaces and the types
// and members beside them. Using directives and the enclosing namespaces
// stay. The result is formatted.
func ExtractAsUnit(root *syntax.CompilationUnit, path syntax.Path, f Formatter) (*syntax.CompilationUnit, error) {
	target, ok := path.Node().(*syntax.TypeDecl)
	if !ok || path.Root() != syntax.Node(root) {
		return nil, fmt.Errorf("extract: %w", ErrTargetMissing)
	}
	if _, found := syntax.PathTo(root, target); !found {
		return nil, fmt.Errorf("extract %s: %w", target.Identifier(), ErrTargetMissing)
	}

	siblings := analyzer.FilterContainerSiblings(path, func(n syntax.Node) bool {
		return n != syntax.Node(target)
	})
	cleaned := syntax.Remove(root, append(siblings, offPath(path)...)...)
	formatted := f.Format(cleaned)
	out, ok := formatted.(*syntax.CompilationUnit)
	if !ok {
		return nil, fmt.Errorf("extract %s: formatter returned %T", target.Identifier(), formatted)
	}
	if !contains(out, target) {
		return nil, fmt.Errorf("extract %s: %w", target.Identifier(), ErrTargetMissing)
	}
	return out, nil
}

// offPath returns the declarations of the namespaces and compilation unit
// on path that are neither directives nor ancestors of its last node.
func offPath(path syntax.Path) []syntax.Node {
	var out []syntax.Node
	for i := 0; i < len(path)-1; i++ {
		switch path[i].(type) {
		case *syntax.CompilationUnit, *syntax.Namespace:
		default:
			continue
		}
		for _, c := range syntax.Children(path[i]) {
			if c != path[i+1] && c.Kind() != syntax.KindDirective {
				out = append(out, c)
			}
		}
	}
	return out
}

// contains reports whether a type with the identifier and tokens of target
// is in root. Formatting rebuilds nodes, so identity cannot be used.
func contains(root syntax.Node, target *syntax.TypeDecl) bool {
	for _, p := range syntax.Types(root) {
		if t := p.Node().(*syntax.TypeDecl); t.Identifier() == target.Identifier() && syntax.Equivalent(t, target) {
			return true
		}
	}
	return false
}
