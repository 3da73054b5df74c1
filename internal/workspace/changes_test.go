package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChanges(t *testing.T) {
	base, id := newTestSolution("", nil, "A.cs", "a\n")
	same, err := base.WithDocumentText(id, "a\n")
	require.NoError(t, err)
	assert.Empty(t, Changes(base, same))

	next, err := base.WithDocumentText(id, "b\n")
	require.NoError(t, err)
	next, added, err := AllocateDerivedDocument(next, id, "B", textUnit("c\n"))
	require.NoError(t, err)

	changes := Changes(base, next)
	require.Len(t, changes, 2)
	assert.Equal(t, ChangeModified, changes[0].Kind)
	assert.Equal(t, "a\n", changes[0].OldText)
	assert.Equal(t, id, changes[0].Document.ID())
	assert.Equal(t, ChangeAdded, changes[1].Kind)
	assert.Equal(t, added, changes[1].Document.ID())
	assert.Empty(t, changes[1].OldText)
}

func TestDiff_Modified(t *testing.T) {
	base, id := newTestSolution("", nil, "A.cs", "a\nb\nc\n")
	next, err := base.WithDocumentText(id, "a\nB\nc\n")
	require.NoError(t, err)

	changes := Changes(base, next)
	require.Len(t, changes, 1)
	assert.Equal(t, "--- a/A.cs\n+++ b/A.cs\n@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n", Diff(changes[0], "A.cs"))
}

func TestDiff_Added(t *testing.T) {
	base, id := newTestSolution("", nil, "A.cs", "")
	next, _, err := AllocateDerivedDocument(base, id, "B", textUnit("x\ny\n"))
	require.NoError(t, err)

	changes := Changes(base, next)
	require.Len(t, changes, 1)
	assert.Equal(t, "--- /dev/null\n+++ b/B.cs\n@@ -0,0 +1,2 @@\n+x\n+y\n", Diff(changes[0], "B.cs"))
}

func TestDiff_SeparateHunks(t *testing.T) {
	old := "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n"
	base, id := newTestSolution("", nil, "A.cs", old)
	next, err := base.WithDocumentText(id, "one\n2\n3\n4\n5\n6\n7\n8\n9\nten\n")
	require.NoError(t, err)

	want := "--- a/A.cs\n+++ b/A.cs\n" +
		"@@ -1,4 +1,4 @@\n-1\n+one\n 2\n 3\n 4\n" +
		"@@ -7,4 +7,4 @@\n 7\n 8\n 9\n-10\n+ten\n"
	assert.Equal(t, want, Diff(Changes(base, next)[0], "A.cs"))
}

func TestDiff_NoTrailingNewLine(t *testing.T) {
	base, id := newTestSolution("", nil, "A.cs", "a")
	next, err := base.WithDocumentText(id, "b")
	require.NoError(t, err)

	assert.Equal(t, "--- a/A.cs\n+++ b/A.cs\n@@ -1,1 +1,1 @@\n-a\n\\ No newline at end of file\n+b\n\\ No newline at end of file\n", Diff(Changes(base, next)[0], "A.cs"))
}

func TestHunks_Merge(t *testing.T) {
	lines := []diffLine{{'-', "a"}, {' ', "b"}, {' ', "c"}, {' ', "d"}, {' ', "e"}, {' ', "f"}, {' ', "g"}, {'+', "h"}}
	assert.Equal(t, [][2]int{{0, 8}}, hunks(lines))
}

func TestChangeKind_String(t *testing.T) {
	assert.Equal(t, "modified", ChangeModified.String())
	assert.Equal(t, "added", ChangeAdded.String())
	assert.Equal(t, "ChangeKind(7)", ChangeKind(7).String())
}
