package split

import (
	"context"
	"fmt"

	"github.com/olehluchkiv/partials/internal/syntax"
)

// Chunker implements the equal-size strategy: members are kept in order and
// cut into consecutive groups of MaxMembers, one partial fragment per group.
type Chunker struct {
	opts Options
}

// NewChunker creates a chunker with the given options.
func NewChunker(opts Options) *Chunker {
	if opts.MaxMembers <= 0 {
		opts.MaxMembers = DefaultOptions().MaxMembers
	}
	return &Chunker{opts: opts}
}

// Split implements Splitter. Region directives are always stripped. A type
// within the threshold comes back as a single cleaned fragment without the
// partial modifier being added.
//
// Cancellation is observed between chunks only. When it fires before the
// last chunk is placed, the work done so far is discarded and the original
// declaration is returned with the context error, so no member is lost.
func (c *Chunker) Split(ctx context.Context, t *syntax.TypeDecl) ([]*syntax.TypeDecl, error) {
	cleaned := syntax.StripTypeRegions(t)
	if !c.opts.HasTooManyMembers(cleaned) {
		return []*syntax.TypeDecl{cleaned}, nil
	}

	partial := cleaned.WithModifier(syntax.PartialModifier)
	chunks := chunkSlice(partial.Members(), c.opts.MaxMembers)
	fragments := make([]*syntax.TypeDecl, 0, len(chunks))
	for i, members := range chunks {
		if err := ctx.Err(); err != nil {
			return []*syntax.TypeDecl{t}, fmt.Errorf("split %s after %d of %d fragments: %w",
				t.Identifier(), i, len(chunks), err)
		}
		if i == 0 {
			fragments = append(fragments, partial.WithMembers(members).WithoutTrailingTrivia())
			continue
		}
		fragments = append(fragments, emptyFragment(partial).WithMembers(members))
	}
	return fragments, nil
}
