package syntax

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleUnit() (*CompilationUnit, *TypeDecl, *Member) {
	b := method("B")
	foo := class("Foo", method("A"), b)
	ns := NewNamespace("App", false, []Node{foo})
	return NewCompilationUnit([]Node{NewUsing("System"), ns}, nil), foo, b
}

func TestFindNode_Member(t *testing.T) {
	root, foo, b := sampleUnit()
	idx := strings.Index(Print(root), "void B")
	require.Positive(t, idx)

	path := FindNode(root, Span{Start: idx + 5, Length: 1})
	assert.Same(t, b, path.Node())
	enclosing, typePath := path.EnclosingType()
	assert.Same(t, foo, enclosing)
	assert.Same(t, foo, typePath.Node())
	assert.Same(t, root, path.Root())
}

func TestFindNode_TypeHeader(t *testing.T) {
	root, foo, _ := sampleUnit()
	idx := strings.Index(Print(root), "class Foo")

	path := FindNode(root, Span{Start: idx, Length: len("class Foo")})
	assert.Same(t, foo, path.Node())
	assert.IsType(t, &Namespace{}, path.Parent())
	enclosing, _ := path.EnclosingType()
	assert.Nil(t, enclosing)
}

func TestFindNode_SpanCrossingMembers(t *testing.T) {
	root, foo, _ := sampleUnit()
	src := Print(root)
	start := strings.Index(src, "void A")
	end := strings.Index(src, "void B") + 2

	path := FindNode(root, Span{Start: start, Length: end - start})
	assert.Same(t, foo, path.Node())
}

func TestFindNode_OutsideEverything(t *testing.T) {
	root, _, _ := sampleUnit()
	path := FindNode(root, Span{Start: root.FullWidth() + 10})
	require.Len(t, path, 1)
	assert.Same(t, root, path.Node())
}

func TestPathTo_AndOffset(t *testing.T) {
	root, foo, b := sampleUnit()

	path, ok := PathTo(root, b)
	require.True(t, ok)
	require.Len(t, path, 4)
	assert.Same(t, foo, path[2])

	off, ok := Offset(root, b)
	require.True(t, ok)
	assert.Equal(t, strings.Index(Print(root), "    void B"), off)

	_, ok = PathTo(root, method("B"))
	assert.False(t, ok)
}

func TestTypes_IncludesNested(t *testing.T) {
	inner := class("Inner")
	outer := class("Outer", method("A"), inner)
	root := NewCompilationUnit([]Node{outer}, nil)

	paths := Types(root)
	require.Len(t, paths, 2)
	assert.Same(t, outer, paths[0].Node())
	assert.Same(t, inner, paths[1].Node())
	enclosing, _ := paths[1].EnclosingType()
	assert.Same(t, outer, enclosing)
}

func TestPath_EmptyAccessors(t *testing.T) {
	var p Path
	assert.Nil(t, p.Node())
	assert.Nil(t, p.Root())
	assert.Nil(t, p.Parent())
}
