// Package parse builds syntax trees from C# source with the tree-sitter C#
// grammar.
package parse

import "errors"

// ErrSyntax is returned for source the grammar cannot parse cleanly.
var ErrSyntax = errors.New("syntax error")
