// Package analyzer classifies type declarations: their size, their partial
// siblings, and the file name they would move to.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/olehluchkiv/partials/internal/syntax"
)

// DeriveExtractionName names the document a partial fragment moves to: the
// type's identifier, a dash, and the identifier of its first method, or
// "Partial" when it has none.
func DeriveExtractionName(t *syntax.TypeDecl) string {
	suffix := "Partial"
	for _, n := range t.Members() {
		if m, ok := n.(*syntax.Member); ok && m.MemberKind() == syntax.MemberMethod {
			suffix = m.Identifier()
			break
		}
	}
	return t.Identifier() + "-" + suffix
}

// Assess summarises the type at the end of path. Types nested in another
// type are reported but never classified against their siblings.
func Assess(path syntax.Path, opts AnalyzeOptions) Assessment {
	t := path.Node().(*syntax.TypeDecl)
	enclosing, _ := path.EnclosingType()
	a := Assessment{
		Name:           t.Identifier(),
		Keyword:        t.Keyword(),
		Members:        t.MemberCount(),
		Partial:        t.IsPartial(),
		Nested:         enclosing != nil,
		TooManyMembers: opts.Split.HasTooManyMembers(t),
		ExtractionName: DeriveExtractionName(t),
	}
	if !a.Nested {
		a.PartialSiblings = CountPartialSiblingsWithSameName(path)
		a.NamedSiblings = CountSiblingsWithSameName(path)
	}
	if off, ok := syntax.Offset(path.Root(), t); ok {
		a.Offset = off + t.LeadingTrivia().Width()
	}
	return a
}

// Analyze assesses every type declaration under root, in source order.
func Analyze(ctx context.Context, root syntax.Node, opts AnalyzeOptions, logger *slog.Logger) (*Result, error) {
	paths := syntax.Types(root)
	result := &Result{Types: make([]Assessment, 0, len(paths))}
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("analyzing types: %w", err)
		}
		a := Assess(p, opts)
		if a.Actionable() {
			logger.Debug("type needs attention",
				"type", a.Name,
				"members", a.Members,
				"partial_siblings", a.PartialSiblings,
				"named_siblings", a.NamedSiblings,
			)
		}
		result.Types = append(result.Types, a)
	}
	logger.Info("types analyzed", "types_count", len(result.Types), "actionable_count", len(result.Actionable()))
	return result, nil
}
