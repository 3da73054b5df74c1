//go:build !cgo

package parse

import (
	"context"
	"errors"

	"github.com/olehluchkiv/partials/internal/syntax"
)

// ErrNoCGO is returned when parsing is unavailable due to missing CGO.
var ErrNoCGO = errors.New("parsing requires CGO (tree-sitter)")

// Parser is a stub for non-CGO builds.
type Parser struct{}

// New creates a parser.
func New() *Parser {
	return &Parser{}
}

// Parse always fails without CGO.
func (p *Parser) Parse(ctx context.Context, src []byte) (*syntax.CompilationUnit, error) {
	return nil, ErrNoCGO
}
