package resolver

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+ProjectExt), []byte("<Project Sdk=\"Microsoft.NET.Sdk\" />\n"), 0o644))
}

func TestFindProjectRootInTree_AtRoot(t *testing.T) {
	tmp := t.TempDir()
	writeProject(t, tmp, "App")

	got, err := findProjectRootInTree(tmp)
	require.NoError(t, err)
	assert.Equal(t, tmp, got)
}

func TestFindProjectRootInTree_InSubdirectory(t *testing.T) {
	tmp := t.TempDir()
	subdir := filepath.Join(tmp, "src", "App")
	writeProject(t, subdir, "App")

	got, err := findProjectRootInTree(tmp)
	require.NoError(t, err)
	assert.Equal(t, subdir, got)
}

func TestFindProjectRootInTree_NoProject(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "src"), 0o755))

	_, err := findProjectRootInTree(tmp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no .csproj found")
}

func TestFindProjectRootInTree_SkipsHiddenAndBuildDirs(t *testing.T) {
	tmp := t.TempDir()
	for _, skip := range []string{".git", "bin", "obj"} {
		writeProject(t, filepath.Join(tmp, skip), "Fake")
	}
	realDir := filepath.Join(tmp, "real")
	writeProject(t, realDir, "Real")

	got, err := findProjectRootInTree(tmp)
	require.NoError(t, err)
	assert.Equal(t, realDir, got)
}

func TestFindProjectRootInTree_PicksShallowest(t *testing.T) {
	tmp := t.TempDir()
	writeProject(t, filepath.Join(tmp, "a", "b"), "Deep")
	writeProject(t, filepath.Join(tmp, "z"), "Shallow")

	got, err := findProjectRootInTree(tmp)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, "z"), got)
}

func TestFindProjectRootInTree_SameDepthSorted(t *testing.T) {
	tmp := t.TempDir()
	writeProject(t, filepath.Join(tmp, "beta"), "Beta")
	writeProject(t, filepath.Join(tmp, "alpha"), "Alpha")

	got, err := findProjectRootInTree(tmp)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, "alpha"), got)
}

func TestFindProjectRoot_WalksUp(t *testing.T) {
	tmp := t.TempDir()
	writeProject(t, tmp, "App")
	deep := filepath.Join(tmp, "Models", "Orders")
	require.NoError(t, os.MkdirAll(deep, 0o755))

	got, err := FindProjectRoot(deep)
	require.NoError(t, err)
	assert.Equal(t, tmp, got)
}

func TestProjectFile_NameOrder(t *testing.T) {
	tmp := t.TempDir()
	writeProject(t, tmp, "B")
	writeProject(t, tmp, "A")

	got, ok := ProjectFile(tmp)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(tmp, "A.csproj"), got)
}

func TestResolve_FileInsideProject(t *testing.T) {
	tmp := t.TempDir()
	writeProject(t, tmp, "App")
	sub := filepath.Join(tmp, "Models")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	file := filepath.Join(sub, "Order.cs")
	require.NoError(t, os.WriteFile(file, []byte("class Order {}\n"), 0o644))

	dir, cleanup, err := Resolve(context.Background(), file, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer cleanup()
	assert.Equal(t, tmp, dir)
}

func TestResolve_Missing(t *testing.T) {
	_, cleanup, err := Resolve(context.Background(), filepath.Join(t.TempDir(), "nope"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
	cleanup()
}

func TestIsGitHubURL(t *testing.T) {
	assert.True(t, isGitHubURL("https://github.com/acme/shop"))
	assert.False(t, isGitHubURL("github.com/acme/shop"))
	assert.False(t, isGitHubURL("./src"))
}
