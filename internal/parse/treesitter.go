//go:build cgo

package parse

import (
	"context"
	"fmt"
	"slices"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"github.com/olehluchkiv/partials/internal/syntax"
)

// Parser converts C# source into syntax trees. It is safe for concurrent
// use; every call gets its own tree-sitter parser.
type Parser struct {
	lang *sitter.Language
}

// New creates a parser.
func New() *Parser {
	return &Parser{lang: csharp.GetLanguage()}
}

// Parse parses src. Printing the result reproduces src, except that the
// modifiers and keyword of a type declaration are rejoined with single
// spaces.
func (p *Parser) Parse(ctx context.Context, src []byte) (*syntax.CompilationUnit, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(p.lang)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	root := tree.RootNode()
	if root.HasError() {
		pos := firstError(root).StartPoint()
		return nil, fmt.Errorf("%w at line %d, column %d", ErrSyntax, pos.Row+1, pos.Column+1)
	}
	c := &converter{src: src}
	return c.unit(root)
}

// firstError returns the first error or missing node under n.
func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c.HasError() || c.IsMissing() {
			return firstError(c)
		}
	}
	return n
}

// typeKeywords maps type declaration nodes that carry a body.
var typeKeywords = map[string]bool{
	"class_declaration":         true,
	"struct_declaration":        true,
	"interface_declaration":     true,
	"record_declaration":        true,
	"record_struct_declaration": true,
}

var memberKinds = map[string]syntax.MemberKind{
	"method_declaration":              syntax.MemberMethod,
	"constructor_declaration":         syntax.MemberConstructor,
	"destructor_declaration":          syntax.MemberDestructor,
	"field_declaration":               syntax.MemberField,
	"property_declaration":            syntax.MemberProperty,
	"event_declaration":               syntax.MemberEvent,
	"event_field_declaration":         syntax.MemberEvent,
	"indexer_declaration":             syntax.MemberIndexer,
	"operator_declaration":            syntax.MemberOperator,
	"conversion_operator_declaration": syntax.MemberOperator,
	"enum_declaration":                syntax.MemberEnum,
	"delegate_declaration":            syntax.MemberDelegate,
}

var directiveKinds = map[string]syntax.DirectiveKind{
	"using_directive":        syntax.DirectiveUsing,
	"extern_alias_directive": syntax.DirectiveExternAlias,
	"global_attribute":       syntax.DirectiveAttribute,
	"global_attribute_list":  syntax.DirectiveAttribute,
}

type converter struct {
	src []byte
}

func (c *converter) text(from, to uint32) string {
	return string(c.src[from:to])
}

// structural returns the children of n that become tree nodes. Comments
// and preprocessor lines are left to the gaps between them.
func structural(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		ch := n.NamedChild(i)
		if ch.IsExtra() || ch.Type() == "comment" || strings.HasPrefix(ch.Type(), "preproc") {
			continue
		}
		out = append(out, ch)
	}
	return out
}

func (c *converter) unit(root *sitter.Node) (*syntax.CompilationUnit, error) {
	items := structural(root)
	end := uint32(len(c.src))
	k := slices.IndexFunc(items, func(n *sitter.Node) bool {
		return n.Type() == "file_scoped_namespace_declaration"
	})
	if k < 0 {
		_, nodes, eof, err := c.sequence(items, 0, end, false)
		if err != nil {
			return nil, err
		}
		return syntax.NewCompilationUnit(nodes, eof), nil
	}

	_, nodes, lead, err := c.sequence(items[:k], 0, items[k].StartByte(), false)
	if err != nil {
		return nil, err
	}
	ns, eof, err := c.fileScoped(items[k], items[k+1:])
	if err != nil {
		return nil, err
	}
	nodes = append(nodes, syntax.WithLeadingTrivia(ns, lead))
	return syntax.NewCompilationUnit(nodes, eof), nil
}

// sequence converts items lying in src[from:to]. Trivia up to the first line
// break after an item trails it; the rest leads the next item. With opener
// set, the first line of the gap before the first item belongs to the
// opening token and is returned as open. rest is the trivia after the last
// item's trailing line.
func (c *converter) sequence(items []*sitter.Node, from, to uint32, opener bool) (open syntax.TriviaList, nodes []syntax.Node, rest syntax.TriviaList, err error) {
	var pending syntax.TriviaList
	first := to
	if len(items) > 0 {
		first = items[0].StartByte()
	}
	pending = syntax.ScanTrivia(c.text(from, first))
	if opener {
		open, pending = splitLine(pending)
	}
	for i, it := range items {
		n, derr := c.declaration(it)
		if derr != nil {
			return nil, nil, nil, derr
		}
		next := to
		if i+1 < len(items) {
			next = items[i+1].StartByte()
		}
		trail, after := splitLine(syntax.ScanTrivia(c.text(it.EndByte(), next)))
		n = syntax.WithLeadingTrivia(n, pending)
		n = syntax.WithTrailingTrivia(n, trail)
		nodes = append(nodes, n)
		pending = after
	}
	return open, nodes, pending, nil
}

// splitLine cuts l after its first end of line.
func splitLine(l syntax.TriviaList) (syntax.TriviaList, syntax.TriviaList) {
	for i, t := range l {
		if t.Kind == syntax.EndOfLine {
			return l[:i+1], l[i+1:]
		}
	}
	return l, nil
}

func (c *converter) declaration(n *sitter.Node) (syntax.Node, error) {
	typ := n.Type()
	switch {
	case typ == "namespace_declaration":
		return c.namespace(n)
	case typ == "file_scoped_namespace_declaration":
		return nil, fmt.Errorf("%w: nested file-scoped namespace", ErrSyntax)
	case typeKeywords[typ] && n.ChildByFieldName("body") != nil:
		return c.typeDecl(n)
	}
	if k, ok := directiveKinds[typ]; ok {
		return syntax.DirectiveSyntax{Kind: k, Text: c.text(n.StartByte(), n.EndByte())}.Build(), nil
	}
	return syntax.MemberSyntax{
		Kind: memberKinds[typ],
		Name: c.memberName(n),
		Text: c.text(n.StartByte(), n.EndByte()),
	}.Build(), nil
}

func (c *converter) namespace(n *sitter.Node) (syntax.Node, error) {
	name := n.ChildByFieldName("name")
	body := n.ChildByFieldName("body")
	if name == nil || body == nil {
		return nil, fmt.Errorf("%w: incomplete namespace", ErrSyntax)
	}
	lbrace, rbrace := braces(body)
	open, members, closing, err := c.sequence(structural(body), lbrace, rbrace, true)
	if err != nil {
		return nil, err
	}
	return syntax.NamespaceSyntax{
		Name:    c.text(name.StartByte(), name.EndByte()),
		Header:  c.text(name.EndByte(), body.StartByte()),
		Open:    open,
		Members: members,
		Close:   closing,
	}.Build(), nil
}

// fileScoped converts a file-scoped namespace. Its members are the
// declarations it holds itself followed by the top-level ones after it, to
// the end of the file. The trivia after them is returned for the unit.
func (c *converter) fileScoped(n *sitter.Node, after []*sitter.Node) (syntax.Node, syntax.TriviaList, error) {
	name := n.ChildByFieldName("name")
	var semi *sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		if ch := n.Child(i); ch.Type() == ";" {
			semi = ch
			break
		}
	}
	if name == nil || semi == nil {
		return nil, nil, fmt.Errorf("%w: incomplete namespace", ErrSyntax)
	}
	var items []*sitter.Node
	for _, ch := range structural(n) {
		if ch.StartByte() >= semi.EndByte() {
			items = append(items, ch)
		}
	}
	items = append(items, after...)

	open, members, rest, err := c.sequence(items, semi.EndByte(), uint32(len(c.src)), true)
	if err != nil {
		return nil, nil, err
	}
	ns := syntax.NamespaceSyntax{
		Name:       c.text(name.StartByte(), name.EndByte()),
		FileScoped: true,
		Header:     c.text(name.EndByte(), semi.StartByte()),
		Open:       open,
		Members:    members,
	}.Build()
	return ns, rest, nil
}

func (c *converter) typeDecl(n *sitter.Node) (syntax.Node, error) {
	name := n.ChildByFieldName("name")
	body := n.ChildByFieldName("body")
	if name == nil {
		return nil, fmt.Errorf("%w: type without a name", ErrSyntax)
	}

	// Attributes run up to the first modifier or keyword.
	kwStart := name.StartByte()
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		if ch.Type() == "attribute_list" || ch.IsExtra() || ch.Type() == "comment" {
			continue
		}
		kwStart = ch.StartByte()
		break
	}
	words := strings.Fields(c.text(kwStart, name.StartByte()))
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: type %s without a keyword", ErrSyntax, c.text(name.StartByte(), name.EndByte()))
	}
	kw := len(words) - 1
	if kw > 0 && words[kw-1] == "record" && (words[kw] == "struct" || words[kw] == "class") {
		kw--
	}

	lbrace, rbrace := braces(body)
	open, members, closing, err := c.sequence(structural(body), lbrace, rbrace, true)
	if err != nil {
		return nil, err
	}
	return syntax.TypeDeclSyntax{
		Attributes: c.text(n.StartByte(), kwStart),
		Modifiers:  words[:kw],
		Keyword:    strings.Join(words[kw:], " "),
		Name:       c.text(name.StartByte(), name.EndByte()),
		Header:     c.text(name.EndByte(), body.StartByte()),
		Open:       open,
		Members:    members,
		Close:      closing,
		Terminator: c.text(body.EndByte(), n.EndByte()),
	}.Build(), nil
}

// braces returns the end of the opening brace and the start of the closing
// brace of a declaration list.
func braces(body *sitter.Node) (uint32, uint32) {
	lbrace := body.Child(0)
	rbrace := body.Child(int(body.ChildCount()) - 1)
	return lbrace.EndByte(), rbrace.StartByte()
}

// memberName returns the declared identifier of a member, or "" for members
// without one such as indexers and operators.
func (c *converter) memberName(n *sitter.Node) string {
	if name := n.ChildByFieldName("name"); name != nil {
		return c.text(name.StartByte(), name.EndByte())
	}
	switch n.Type() {
	case "field_declaration", "event_field_declaration":
		if v := findFirst(n, "variable_declarator"); v != nil {
			if name := v.ChildByFieldName("name"); name != nil {
				return c.text(name.StartByte(), name.EndByte())
			}
			if id := findFirst(v, "identifier"); id != nil {
				return c.text(id.StartByte(), id.EndByte())
			}
		}
	}
	return ""
}

// findFirst returns the first descendant of n of the given type, depth first.
func findFirst(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		ch := n.NamedChild(i)
		if ch.Type() == typ {
			return ch
		}
		if found := findFirst(ch, typ); found != nil {
			return found
		}
	}
	return nil
}
