package split

import (
	"context"
	"slices"

	"github.com/olehluchkiv/partials/internal/syntax"
)

// SplitAt cuts t in two in front of the first member structurally
// equivalent to pivot. The head keeps the original declaration; the pivot
// and everything after it move into a new partial fragment.
//
// SplitAt never fails. With fewer than two members, a cancelled context, a
// pivot that is missing or is the first member, or any fault while editing,
// it returns t unchanged as the only fragment.
func SplitAt(ctx context.Context, t *syntax.TypeDecl, pivot syntax.Node) (fragments []*syntax.TypeDecl) {
	unchanged := []*syntax.TypeDecl{t}
	if t.MemberCount() <= 1 || ctx.Err() != nil {
		return unchanged
	}
	defer func() {
		if r := recover(); r != nil {
			fragments = unchanged
		}
	}()

	at := slices.IndexFunc(t.Members(), func(m syntax.Node) bool {
		return syntax.Equivalent(m, pivot)
	})
	if at <= 0 {
		return unchanged
	}

	work := syntax.StripTypeRegions(t).WithModifier(syntax.PartialModifier)
	members := work.Members()
	head := work.WithMembers(members[:at]).WithoutTrailingTrivia()
	tail := emptyFragment(work).WithMembers(members[at:])
	return []*syntax.TypeDecl{head, tail}
}
