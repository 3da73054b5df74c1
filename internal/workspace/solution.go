// Package workspace holds the solution model the refactorings edit: projects
// of documents, each document a text snapshot and the tree parsed from it.
// Solutions are immutable values; every edit returns a new one. The
// Workspace type loads a solution from disk and commits edited ones back.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/olehluchkiv/partials/internal/syntax"
)

var (
	// ErrDocumentNotFound is returned for an id that is not in the solution.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrProjectNotFound is returned for an id that is not in the solution.
	ErrProjectNotFound = errors.New("project not found")
	// ErrNoParser is returned when a document has text but no tree and the
	// solution was built without a parser.
	ErrNoParser = errors.New("no parser configured")
)

// SourceExt is the extension given to derived documents.
const SourceExt = ".cs"

// Parser turns document text into a tree.
type Parser interface {
	Parse(ctx context.Context, src []byte) (*syntax.CompilationUnit, error)
}

// Document is one source file: its text and, once known, its tree.
type Document struct {
	id       DocumentID
	name     string
	folders  []string
	filePath string
	text     string
	tree     *tree
}

// tree caches the parse of a document's text. It is shared by the
// solution versions that carry the same text.
type tree struct {
	mu   sync.Mutex
	done bool
	root *syntax.CompilationUnit
	err  error
}

// get parses once. A parse cut short by ctx is not remembered.
func (t *tree) get(ctx context.Context, parse func(context.Context) (*syntax.CompilationUnit, error)) (*syntax.CompilationUnit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return t.root, t.err
	}
	root, err := parse(ctx)
	if err != nil && ctx.Err() != nil {
		return nil, err
	}
	t.root, t.err, t.done = root, err, true
	return root, err
}

func (d *Document) ID() DocumentID { return d.id }
func (d *Document) Name() string { return d.name }
func (d *Document) Folders() []string { return slices.Clone(d.folders) }
func (d *Document) FilePath() string { return d.filePath }
func (d *Document) Text() string { return d.text }

// RelPath is the slash-separated path of d inside its project.
func (d *Document) RelPath() string {
	return path.Join(append(slices.Clone(d.folders), d.name)...)
}

// Project is a named set of documents rooted at a directory.
type Project struct {
	id   ProjectID
	name string
	dir  string
	docs []*Document
}

func (p *Project) ID() ProjectID { return p.id }
func (p *Project) Name() string { return p.name }
func (p *Project) Dir() string { return p.dir }
func (p *Project) Documents() []*Document { return slices.Clone(p.docs) }

// Solution is an immutable snapshot of every project and document.
type Solution struct {
	parser   Parser
	projects []*Project
	version  uint64 // version of the workspace snapshot this one derives from
}

// NewSolution creates an empty solution. parser may be nil when every
// document is added together with its tree.
func NewSolution(parser Parser) *Solution {
	return &Solution{parser: parser}
}

// Projects returns the projects in insertion order.
func (s *Solution) Projects() []*Project { return slices.Clone(s.projects) }

// Project looks a project up by id.
func (s *Solution) Project(id ProjectID) (*Project, bool) {
	i := s.projectIndex(id)
	if i < 0 {
		return nil, false
	}
	return s.projects[i], true
}

// Document looks a document up by id.
func (s *Solution) Document(id DocumentID) (*Document, bool) {
	pi, di := s.documentIndex(id)
	if di < 0 {
		return nil, false
	}
	return s.projects[pi].docs[di], true
}

// Documents returns every document of every project.
func (s *Solution) Documents() []*Document {
	var out []*Document
	for _, p := range s.projects {
		out = append(out, p.docs...)
	}
	return out
}

// DocumentByPath finds the document stored at the given file path.
func (s *Solution) DocumentByPath(path string) (*Document, bool) {
	clean := filepath.Clean(path)
	for _, p := range s.projects {
		for _, d := range p.docs {
			if d.filePath != "" && filepath.Clean(d.filePath) == clean {
				return d, true
			}
		}
	}
	return nil, false
}

// AddProject returns a solution with a new empty project.
func (s *Solution) AddProject(name, dir string) (*Solution, ProjectID) {
	id := NewProjectID()
	out := s.clone()
	out.projects = append(out.projects, &Project{id: id, name: name, dir: dir})
	return out, id
}

// DocumentInfo describes a document to add. Root may be nil, in which case
// the tree is parsed from Text on first use; when set, Text is ignored and
// the printed root becomes the text.
type DocumentInfo struct {
	ID       DocumentID // allocated when zero
	Name     string
	Folders  []string
	FilePath string // derived from the project directory when empty
	Text     string
	Root     *syntax.CompilationUnit
}

// AddDocument returns a solution with a new document in project pid.
func (s *Solution) AddDocument(pid ProjectID, info DocumentInfo) (*Solution, DocumentID, error) {
	pi := s.projectIndex(pid)
	if pi < 0 {
		return s, DocumentID{}, fmt.Errorf("add document %s: %w", info.Name, ErrProjectNotFound)
	}
	id := info.ID
	if id.IsZero() {
		id = NewDocumentID(pid)
	}
	p := s.projects[pi]
	doc := &Document{
		id:       id,
		name:     info.Name,
		folders:  slices.Clone(info.Folders),
		filePath: info.FilePath,
		text:     info.Text,
		tree:     &tree{},
	}
	if doc.filePath == "" && p.dir != "" {
		doc.filePath = filepath.Join(append(append([]string{p.dir}, info.Folders...), info.Name)...)
	}
	if info.Root != nil {
		doc.text = syntax.Print(info.Root)
		doc.tree = parsed(info.Root)
	}

	out := s.clone()
	np := *p
	np.docs = append(slices.Clone(p.docs), doc)
	out.projects[pi] = &np
	return out, id, nil
}

// WithDocumentText returns a solution in which document id holds text. The
// tree is parsed again on demand.
func (s *Solution) WithDocumentText(id DocumentID, text string) (*Solution, error) {
	return s.withDocument(id, func(d *Document) {
		d.text = text
		d.tree = &tree{}
	})
}

// WithDocumentRoot returns a solution in which document id holds root and
// its printed text.
func (s *Solution) WithDocumentRoot(id DocumentID, root *syntax.CompilationUnit) (*Solution, error) {
	return s.withDocument(id, func(d *Document) {
		d.text = syntax.Print(root)
		d.tree = parsed(root)
	})
}

// Root returns the tree of document id, parsing its text on first use.
func (s *Solution) Root(ctx context.Context, id DocumentID) (*syntax.CompilationUnit, error) {
	d, ok := s.Document(id)
	if !ok {
		return nil, fmt.Errorf("root of %s: %w", id, ErrDocumentNotFound)
	}
	root, err := d.tree.get(ctx, func(ctx context.Context) (*syntax.CompilationUnit, error) {
		if s.parser == nil {
			return nil, ErrNoParser
		}
		return s.parser.Parse(ctx, []byte(d.text))
	})
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", d.name, err)
	}
	return root, nil
}

func (s *Solution) withDocument(id DocumentID, edit func(*Document)) (*Solution, error) {
	pi, di := s.documentIndex(id)
	if di < 0 {
		return s, fmt.Errorf("update %s: %w", id, ErrDocumentNotFound)
	}
	p := s.projects[pi]
	nd := *p.docs[di]
	nd.folders = slices.Clone(nd.folders)
	edit(&nd)

	out := s.clone()
	np := *p
	np.docs = slices.Clone(p.docs)
	np.docs[di] = &nd
	out.projects[pi] = &np
	return out, nil
}

func (s *Solution) clone() *Solution {
	out := *s
	out.projects = slices.Clone(s.projects)
	return &out
}

func (s *Solution) projectIndex(id ProjectID) int {
	return slices.IndexFunc(s.projects, func(p *Project) bool { return p.id == id })
}

func (s *Solution) documentIndex(id DocumentID) (int, int) {
	pi := s.projectIndex(id.ProjectID)
	if pi < 0 {
		return -1, -1
	}
	di := slices.IndexFunc(s.projects[pi].docs, func(d *Document) bool { return d.id == id })
	return pi, di
}

// parsed returns a tree cache already holding root.
func parsed(root *syntax.CompilationUnit) *tree {
	return &tree{root: root, done: true}
}

// withSourceExt appends the source extension unless name already has it.
func withSourceExt(name string) string {
	if strings.EqualFold(filepath.Ext(name), SourceExt) {
		return name
	}
	return name + SourceExt
}

// relativeFolders returns the directories between projectDir and the
// directory of filePath.
func relativeFolders(projectDir, filePath string) ([]string, bool) {
	if projectDir == "" || filePath == "" {
		return nil, false
	}
	rel, err := filepath.Rel(projectDir, filepath.Dir(filePath))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, false
	}
	if rel == "." {
		return nil, true
	}
	return strings.Split(filepath.ToSlash(rel), "/"), true
}
