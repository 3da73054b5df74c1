package syntax

import "fmt"

// StripRegions returns n with every #region and #endregion directive removed
// from it and its descendants, including directives inside verbatim member
// text. Each directive goes together with its indentation and line break.
func StripRegions(n Node) Node {
	switch v := n.(type) {
	case *CompilationUnit:
		return NewCompilationUnit(stripAll(v.members), v.eof.withoutRegions())
	case *Namespace:
		s := v.Syntax()
		s.Leading = s.Leading.withoutRegions()
		s.Header = stripRegionLines(s.Header)
		s.Open = s.Open.withoutRegions()
		s.Members = stripAll(s.Members)
		s.Close = s.Close.withoutRegions()
		s.Trailing = s.Trailing.withoutRegions()
		return s.Build()
	case *TypeDecl:
		return StripTypeRegions(v)
	case *Member:
		s := v.Syntax()
		s.Leading = s.Leading.withoutRegions()
		s.Text = stripRegionLines(s.Text)
		s.Trailing = s.Trailing.withoutRegions()
		return s.Build()
	case *Directive:
		s := v.Syntax()
		s.Leading = s.Leading.withoutRegions()
		s.Trailing = s.Trailing.withoutRegions()
		return s.Build()
	default:
		panic(fmt.Sprintf("syntax: unexpected node %T", n))
	}
}

// StripTypeRegions is StripRegions for a type declaration.
func StripTypeRegions(t *TypeDecl) *TypeDecl {
	if CountRegions(t) == 0 {
		return t
	}
	s := t.Syntax()
	s.Leading = s.Leading.withoutRegions()
	s.Attributes = stripRegionLines(s.Attributes)
	s.Header = stripRegionLines(s.Header)
	s.Open = s.Open.withoutRegions()
	s.Members = stripAll(s.Members)
	s.Close = s.Close.withoutRegions()
	s.Trailing = s.Trailing.withoutRegions()
	return s.Build()
}

func stripAll(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, c := range nodes {
		out[i] = StripRegions(c)
	}
	return out
}

// CountRegions counts the #region and #endregion directives in n and its
// descendants.
func CountRegions(n Node) int {
	count := 0
	Walk(n, func(p Path) bool {
		node := p.Node()
		count += node.LeadingTrivia().Count(Trivia.IsRegion)
		count += node.TrailingTrivia().Count(Trivia.IsRegion)
		switch v := node.(type) {
		case *CompilationUnit:
		case *Namespace:
			count += countRegionLines(v.header)
			count += v.open.Count(Trivia.IsRegion) + v.close.Count(Trivia.IsRegion)
		case *TypeDecl:
			count += countRegionLines(v.attributes) + countRegionLines(v.header)
			count += v.open.Count(Trivia.IsRegion) + v.close.Count(Trivia.IsRegion)
		case *Member:
			count += countRegionLines(v.text)
		case *Directive:
		default:
			panic(fmt.Sprintf("syntax: unexpected node %T", node))
		}
		return true
	})
	return count
}
