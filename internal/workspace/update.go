package workspace

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/olehluchkiv/partials/internal/syntax"
)

// Transform is a pure edit of a document tree.
type Transform func(root *syntax.CompilationUnit) (*syntax.CompilationUnit, error)

// ApplySnapshot runs transform over the tree of document id and returns a
// solution in which the document holds the result and its text. sol itself
// is never modified; on any failure it is returned as is.
func ApplySnapshot(ctx context.Context, sol *Solution, id DocumentID, transform Transform) (*Solution, error) {
	if err := ctx.Err(); err != nil {
		return sol, fmt.Errorf("update %s: %w", id, err)
	}
	root, err := sol.Root(ctx, id)
	if err != nil {
		return sol, err
	}
	newRoot, err := transform(root)
	if err != nil {
		return sol, fmt.Errorf("transform %s: %w", id, err)
	}
	if err := ctx.Err(); err != nil {
		return sol, fmt.Errorf("update %s: %w", id, err)
	}
	return sol.WithDocumentRoot(id, newRoot)
}

// AllocateDerivedDocument adds root as a new document next to document id:
// same project, same folders relative to the project directory. The name
// gets the source extension when it has none, and a numeric suffix when a
// document of that name already sits in those folders.
func AllocateDerivedDocument(sol *Solution, id DocumentID, name string, root *syntax.CompilationUnit) (*Solution, DocumentID, error) {
	src, ok := sol.Document(id)
	if !ok {
		return sol, DocumentID{}, fmt.Errorf("derive from %s: %w", id, ErrDocumentNotFound)
	}
	proj, _ := sol.Project(id.ProjectID)
	folders, ok := relativeFolders(proj.dir, src.filePath)
	if !ok {
		folders = src.Folders()
	}
	return sol.AddDocument(id.ProjectID, DocumentInfo{
		Name:    uniqueName(proj, folders, withSourceExt(name)),
		Folders: folders,
		Root:    root,
	})
}

// uniqueName returns name, or name with "-2", "-3"... before the extension
// when another document in folders already uses it.
func uniqueName(p *Project, folders []string, name string) string {
	taken := func(n string) bool {
		return slices.ContainsFunc(p.docs, func(d *Document) bool {
			return strings.EqualFold(d.name, n) && slices.Equal(d.folders, folders)
		})
	}
	if !taken(name) {
		return name
	}
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 2; ; i++ {
		if n := base + "-" + strconv.Itoa(i) + ext; !taken(n) {
			return n
		}
	}
}
