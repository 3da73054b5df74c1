package analyzer

import "github.com/olehluchkiv/partials/internal/split"

// Assessment summarises one type declaration and the refactorings that
// apply to it.
type Assessment struct {
	Name            string
	Keyword         string
	Members         int
	Partial         bool
	Nested          bool // declared inside another type
	TooManyMembers  bool
	PartialSiblings int // same-named partial declarations in the scope, itself included
	NamedSiblings   int // same-named declarations in the scope, itself included
	ExtractionName  string
	Offset          int // start of the declaration in the printed root, after its leading trivia
}

// HasManyPartialsInSameSource reports whether the type is one of several
// partial fragments sharing a scope.
func (a Assessment) HasManyPartialsInSameSource() bool {
	return a.Partial && a.PartialSiblings > 1
}

// HasManyInSameSource reports whether other declarations with the same
// name share the scope, partial or not.
func (a Assessment) HasManyInSameSource() bool {
	return a.NamedSiblings > 1
}

// Actionable reports whether any refactoring is worth offering.
func (a Assessment) Actionable() bool {
	return a.TooManyMembers || a.HasManyPartialsInSameSource() || a.HasManyInSameSource()
}

// Result holds the analysis of one compilation unit.
type Result struct {
	Types []Assessment
}

// Actionable returns the assessments that have something to offer.
func (r *Result) Actionable() []Assessment {
	var out []Assessment
	for _, a := range r.Types {
		if a.Actionable() {
			out = append(out, a)
		}
	}
	return out
}

// AnalyzeOptions controls analysis behavior.
type AnalyzeOptions struct {
	Split split.Options
}
