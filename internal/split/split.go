// Package split breaks oversized type declarations into partial fragments.
package split

import (
	"context"

	"github.com/olehluchkiv/partials/internal/syntax"
)

// MaxMembersPerFragment is the largest member count a declaration may carry
// before it is considered too big.
const MaxMembersPerFragment = 12

// Splitter breaks a type declaration into partial fragments.
type Splitter interface {
	Split(ctx context.Context, t *syntax.TypeDecl) ([]*syntax.TypeDecl, error)
}

// Options controls splitting behavior.
type Options struct {
	MaxMembers int // members per fragment; default MaxMembersPerFragment
}

// DefaultOptions returns the stock threshold.
func DefaultOptions() Options {
	return Options{MaxMembers: MaxMembersPerFragment}
}

func (o Options) limit() int {
	if o.MaxMembers <= 0 {
		return MaxMembersPerFragment
	}
	return o.MaxMembers
}

// HasTooManyMembers reports whether t exceeds the configured threshold.
func (o Options) HasTooManyMembers(t *syntax.TypeDecl) bool {
	return t.MemberCount() > o.limit()
}

// HasTooManyMembers reports whether t has more than MaxMembersPerFragment
// members.
func HasTooManyMembers(t *syntax.TypeDecl) bool {
	return t.MemberCount() > MaxMembersPerFragment
}

// Split breaks t into fragments of at most MaxMembersPerFragment members.
func Split(ctx context.Context, t *syntax.TypeDecl) ([]*syntax.TypeDecl, error) {
	return NewChunker(DefaultOptions()).Split(ctx, t)
}

// emptyFragment builds a bare declaration with the modifiers, keyword,
// identifier and type parameter list of t, set apart from the previous
// fragment by a blank line.
func emptyFragment(t *syntax.TypeDecl) *syntax.TypeDecl {
	s := syntax.NewTypeDecl(t.Modifiers(), t.Keyword(), t.Identifier()).Syntax()
	if tp := typeParameters(t.Syntax().Header); tp != "" {
		s.Header = tp + s.Header
	}
	s.Leading = syntax.TriviaList{syntax.LineFeed(), syntax.LineFeed()}
	return s.Build()
}

// typeParameters returns the leading "<...>" list of a declaration header.
// Every part of a generic partial type has to repeat it.
func typeParameters(header string) string {
	if len(header) == 0 || header[0] != '<' {
		return ""
	}
	depth := 0
	for i := 0; i < len(header); i++ {
		switch header[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				return header[:i+1]
			}
		}
	}
	return ""
}

// chunkSlice splits a slice into chunks of at most size n.
func chunkSlice[T any](items []T, n int) [][]T {
	var chunks [][]T
	for i := 0; i < len(items); i += n {
		end := i + n
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[i:end])
	}
	return chunks
}
