package workspace

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehluchkiv/partials/internal/syntax"
)

func appendText(suffix string) Transform {
	return func(root *syntax.CompilationUnit) (*syntax.CompilationUnit, error) {
		return textUnit(syntax.Print(root) + suffix), nil
	}
}

func TestApplySnapshot(t *testing.T) {
	sol, id := newTestSolution("", nil, "A.cs", "class A {}\n")

	next, err := ApplySnapshot(context.Background(), sol, id, appendText("class B {}\n"))
	require.NoError(t, err)

	doc, _ := next.Document(id)
	assert.Equal(t, "class A {}\nclass B {}\n", doc.Text())
	old, _ := sol.Document(id)
	assert.Equal(t, "class A {}\n", old.Text())
}

func TestApplySnapshot_Cancelled(t *testing.T) {
	sol, id := newTestSolution("", nil, "A.cs", "class A {}\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := ApplySnapshot(ctx, sol, id, appendText("x"))
	require.ErrorIs(t, err, context.Canceled)
	assert.Same(t, sol, got)
}

func TestApplySnapshot_CancelledDuringTransform(t *testing.T) {
	sol, id := newTestSolution("", nil, "A.cs", "class A {}\n")
	ctx, cancel := context.WithCancel(context.Background())

	got, err := ApplySnapshot(ctx, sol, id, func(root *syntax.CompilationUnit) (*syntax.CompilationUnit, error) {
		cancel()
		return root, nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Same(t, sol, got)
}

func TestApplySnapshot_TransformError(t *testing.T) {
	sol, id := newTestSolution("", nil, "A.cs", "class A {}\n")
	boom := errors.New("boom")

	got, err := ApplySnapshot(context.Background(), sol, id, func(*syntax.CompilationUnit) (*syntax.CompilationUnit, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Same(t, sol, got)
}

func TestAllocateDerivedDocument(t *testing.T) {
	dir := filepath.Join("/", "src", "App")
	sol, id := newTestSolution(dir, []string{"Models"}, "Order.cs", "class Order {}\n")

	next, newID, err := AllocateDerivedDocument(sol, id, "OrderLine", textUnit("class OrderLine {}\n"))
	require.NoError(t, err)

	doc, ok := next.Document(newID)
	require.True(t, ok)
	assert.Equal(t, "OrderLine.cs", doc.Name())
	assert.Equal(t, []string{"Models"}, doc.Folders())
	assert.Equal(t, filepath.Join(dir, "Models", "OrderLine.cs"), doc.FilePath())
	assert.Equal(t, "class OrderLine {}\n", doc.Text())
	assert.Equal(t, id.ProjectID, newID.ProjectID)

	_, ok = sol.Document(newID)
	assert.False(t, ok)
}

func TestAllocateDerivedDocument_NameCollision(t *testing.T) {
	sol, id := newTestSolution(filepath.Join("/", "src", "App"), nil, "Order.cs", "partial class Order {}\n")

	sol, second, err := AllocateDerivedDocument(sol, id, "Order", textUnit("partial class Order {}\n"))
	require.NoError(t, err)
	sol, third, err := AllocateDerivedDocument(sol, id, "order.cs", textUnit("partial class Order {}\n"))
	require.NoError(t, err)

	d2, _ := sol.Document(second)
	d3, _ := sol.Document(third)
	assert.Equal(t, "Order-2.cs", d2.Name())
	assert.Equal(t, "order-3.cs", d3.Name())
}

func TestAllocateDerivedDocument_NoProjectDir(t *testing.T) {
	sol, id := newTestSolution("", []string{"Models"}, "Order.cs", "")

	next, newID, err := AllocateDerivedDocument(sol, id, "Line", textUnit(""))
	require.NoError(t, err)
	doc, _ := next.Document(newID)
	assert.Equal(t, []string{"Models"}, doc.Folders())
	assert.Empty(t, doc.FilePath())
}

func TestAllocateDerivedDocument_UnknownSource(t *testing.T) {
	sol, _ := newTestSolution("", nil, "Order.cs", "")
	_, _, err := AllocateDerivedDocument(sol, NewDocumentID(NewProjectID()), "X", textUnit(""))
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}
