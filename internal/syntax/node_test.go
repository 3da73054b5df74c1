package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrint_TypeDecl(t *testing.T) {
	c := class("Foo", method("A"), field("b"))
	want := "public class Foo\n{\n    void A() { }\n    int b;\n}\n"
	assert.Equal(t, want, Print(c))
	assert.Equal(t, len(want), c.FullWidth())
}

func TestPrint_NamespaceAndUnit(t *testing.T) {
	ns := NewNamespace("App", false, []Node{class("Foo")})
	u := NewCompilationUnit([]Node{NewUsing("System"), ns}, nil)
	want := "using System;\nnamespace App\n{\npublic class Foo\n{\n}\n}"
	assert.Equal(t, want, Print(u))
	assert.Equal(t, len(want), u.FullWidth())
}

func TestPrint_FileScopedNamespace(t *testing.T) {
	ns := NewNamespace("App", true, []Node{class("Foo")})
	assert.Equal(t, "namespace App;\npublic class Foo\n{\n}\n", Print(ns))
}

func TestNewTypeDecl_Empty(t *testing.T) {
	td := NewTypeDecl([]string{"internal", "partial"}, "class", "Bar")
	assert.Equal(t, "internal partial class Bar\n{\n}", Print(td))
	assert.True(t, td.IsPartial())
	assert.Zero(t, td.MemberCount())
}

func TestTypeDecl_WithModifier(t *testing.T) {
	c := class("Foo")
	p := c.WithModifier(PartialModifier)

	assert.Equal(t, []string{"public", "partial"}, p.Modifiers())
	assert.False(t, c.IsPartial(), "original must be untouched")
	assert.Same(t, p, p.WithModifier(PartialModifier), "adding a present modifier is a no-op")
}

func TestTypeDecl_AccessorsReturnCopies(t *testing.T) {
	c := class("Foo", method("A"))
	mods := c.Modifiers()
	mods[0] = "private"
	members := c.Members()
	members[0] = nil

	assert.Equal(t, []string{"public"}, c.Modifiers())
	require.Len(t, c.Members(), 1)
	assert.NotNil(t, c.Members()[0])
}

func TestTypeDecl_WithoutTrailingTrivia(t *testing.T) {
	c := class("Foo")
	bare := c.WithoutTrailingTrivia()
	assert.Empty(t, bare.TrailingTrivia())
	assert.Equal(t, c.FullWidth()-1, bare.FullWidth())
	assert.Same(t, bare, bare.WithoutTrailingTrivia())
}

func TestChildren_LeavesHaveNone(t *testing.T) {
	assert.Nil(t, Children(method("A")))
	assert.Nil(t, Children(NewUsing("System")))
	assert.Len(t, Children(class("Foo", method("A"))), 1)
}

func TestWithLeadingTrivia_AllKinds(t *testing.T) {
	lead := TriviaList{LineFeed(), LineFeed()}
	for _, n := range []Node{class("Foo"), method("A"), NewUsing("System"), NewNamespace("N", false, nil)} {
		got := WithLeadingTrivia(n, lead)
		assert.Equal(t, "\n\n", got.LeadingTrivia().String(), "%s", n.Kind())
		assert.Equal(t, n.Kind(), got.Kind())
	}
}
