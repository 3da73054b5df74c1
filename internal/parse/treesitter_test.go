//go:build cgo

package parse

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/olehluchkiv/partials/internal/syntax"
)

func mustParse(t *testing.T, src string) *syntax.CompilationUnit {
	t.Helper()
	root, err := New().Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	return root
}

func typeNamed(t *testing.T, root syntax.Node, name string) *syntax.TypeDecl {
	t.Helper()
	for _, p := range syntax.Types(root) {
		if td := p.Node().(*syntax.TypeDecl); td.Identifier() == name {
			return td
		}
	}
	t.Fatalf("type %s not found", name)
	return nil
}

func TestParse_RoundTrip(t *testing.T) {
	ar, err := txtar.ParseFile(filepath.Join("testdata", "roundtrip.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, ar.Files)

	for _, f := range ar.Files {
		t.Run(f.Name, func(t *testing.T) {
			root := mustParse(t, string(f.Data))
			assert.Equal(t, string(f.Data), syntax.Print(root))
			assert.Equal(t, len(f.Data), root.FullWidth())
		})
	}
}

func TestParse_CRLF(t *testing.T) {
	src := "namespace App\r\n{\r\n    class A\r\n    {\r\n        void M() { }\r\n    }\r\n}\r\n"
	root := mustParse(t, src)
	assert.Equal(t, src, syntax.Print(root))
}

func TestParse_BlockNamespace(t *testing.T) {
	src := `using System;

namespace Shop.Models
{
    // Order aggregate.
    [Serializable]
    public sealed partial class Order<T> : IEntity where T : class
    {
        private int _id; // identity

        public Order() { }

        public int Id { get; set; }

        public void Add(T item)
        {
        }
    }
}
`
	root := mustParse(t, src)
	members := root.Members()
	require.Len(t, members, 2)
	using, ok := members[0].(*syntax.Directive)
	require.True(t, ok)
	assert.Equal(t, syntax.DirectiveUsing, using.DirectiveKind())
	assert.Equal(t, "using System;", using.Text())

	ns, ok := members[1].(*syntax.Namespace)
	require.True(t, ok)
	assert.Equal(t, "Shop.Models", ns.Name())
	assert.False(t, ns.IsFileScoped())

	order := typeNamed(t, root, "Order")
	assert.Equal(t, []string{"public", "sealed", "partial"}, order.Modifiers())
	assert.Equal(t, "class", order.Keyword())
	assert.True(t, order.IsPartial())
	assert.Equal(t, 1, order.LeadingTrivia().Count(func(tr syntax.Trivia) bool { return tr.IsComment() }))

	var kinds []syntax.MemberKind
	var names []string
	for _, n := range order.Members() {
		m := n.(*syntax.Member)
		kinds = append(kinds, m.MemberKind())
		names = append(names, m.Identifier())
	}
	assert.Equal(t, []syntax.MemberKind{syntax.MemberField, syntax.MemberConstructor, syntax.MemberProperty, syntax.MemberMethod}, kinds)
	assert.Equal(t, []string{"_id", "Order", "Id", "Add"}, names)

	field := order.Members()[0]
	assert.Equal(t, " // identity\n", field.TrailingTrivia().String())
	assert.Equal(t, "\n        ", order.Members()[1].LeadingTrivia().String())
}

func TestParse_FileScopedNamespace(t *testing.T) {
	src := "using System;\n\nnamespace Shop;\n\npublic class A\n{\n}\n\npublic class B\n{\n}\n// end\n"
	root := mustParse(t, src)

	members := root.Members()
	require.Len(t, members, 2)
	ns, ok := members[1].(*syntax.Namespace)
	require.True(t, ok)
	assert.True(t, ns.IsFileScoped())
	assert.Equal(t, "Shop", ns.Name())
	require.Len(t, ns.Members(), 2)
	assert.Equal(t, "// end\n", root.EndOfFileTrivia().String())

	path := syntax.Types(root)[0]
	assert.Equal(t, syntax.Node(ns), path.Parent())
}

func TestParse_NestedAndOddMembers(t *testing.T) {
	src := `class Host
{
    private class Child
    {
        int _x;
    }

    public static Host operator +(Host a, Host b) => a;

    public int this[int i] => i;

    public event System.EventHandler Changed;

    public delegate void Handler();
}
`
	root := mustParse(t, src)
	host := typeNamed(t, root, "Host")
	members := host.Members()
	require.Len(t, members, 5)

	child, ok := members[0].(*syntax.TypeDecl)
	require.True(t, ok)
	assert.Equal(t, "Child", child.Identifier())
	assert.Equal(t, []string{"private"}, child.Modifiers())

	kinds := []syntax.MemberKind{}
	for _, n := range members[1:] {
		kinds = append(kinds, n.(*syntax.Member).MemberKind())
	}
	assert.Equal(t, []syntax.MemberKind{syntax.MemberOperator, syntax.MemberIndexer, syntax.MemberEvent, syntax.MemberDelegate}, kinds)
	assert.Equal(t, "Changed", members[3].(*syntax.Member).Identifier())
	assert.Equal(t, "Handler", members[4].(*syntax.Member).Identifier())
}

func TestParse_Keywords(t *testing.T) {
	src := "public readonly struct P\n{\n}\npublic interface I\n{\n}\npublic record R\n{\n}\n"
	root := mustParse(t, src)
	assert.Equal(t, "struct", typeNamed(t, root, "P").Keyword())
	assert.Equal(t, []string{"public", "readonly"}, typeNamed(t, root, "P").Modifiers())
	assert.Equal(t, "interface", typeNamed(t, root, "I").Keyword())
	assert.Equal(t, "record", typeNamed(t, root, "R").Keyword())
}

func TestParse_BodylessRecordIsMember(t *testing.T) {
	root := mustParse(t, "public record Person(string Name);\n")
	assert.Empty(t, syntax.Types(root))
	m, ok := root.Members()[0].(*syntax.Member)
	require.True(t, ok)
	assert.Equal(t, "Person", m.Identifier())
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := New().Parse(context.Background(), []byte("class A {\n    void M( {\n"))
	require.ErrorIs(t, err, ErrSyntax)
	assert.Contains(t, err.Error(), "line")
}

func TestParse_Empty(t *testing.T) {
	root := mustParse(t, "")
	assert.Empty(t, root.Members())
	assert.Equal(t, "", syntax.Print(root))
}
