package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/olehluchkiv/partials/internal/resolver"
)

var (
	// ErrStaleSolution is returned by Apply for a solution derived from a
	// snapshot that is no longer current.
	ErrStaleSolution = errors.New("solution is stale")
	// ErrFileExists is returned by Apply when a new document would
	// overwrite a file already on disk.
	ErrFileExists = errors.New("file already exists")
)

// Options controls how a project directory is loaded.
type Options struct {
	// Ignore holds glob patterns, relative to the project directory, of
	// files and directories to leave out. Nil means DefaultIgnore.
	Ignore []string
}

// Workspace owns the current solution of one project directory and
// serializes commits to it.
type Workspace struct {
	mu      sync.Mutex
	current *Solution
	logger  *slog.Logger
}

// Open loads every source file under dir into a one-project solution. Trees
// are parsed lazily with parser.
func Open(ctx context.Context, dir string, opts Options, parser Parser, logger *slog.Logger) (*Workspace, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	ignore := opts.Ignore
	if ignore == nil {
		ignore = DefaultIgnore
	}
	disc, err := newDiscovery(abs, ignore)
	if err != nil {
		return nil, fmt.Errorf("compiling ignore patterns: %w", err)
	}
	files, err := disc.sourceFiles()
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", abs, err)
	}

	name := filepath.Base(abs)
	if proj, ok := resolver.ProjectFile(abs); ok {
		name = strings.TrimSuffix(filepath.Base(proj), resolver.ProjectExt)
	}
	pid := NewProjectID()
	p := &Project{id: pid, name: name, dir: abs}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
		folders, _ := relativeFolders(abs, file)
		p.docs = append(p.docs, &Document{
			id:       NewDocumentID(pid),
			name:     filepath.Base(file),
			folders:  folders,
			filePath: file,
			text:     string(text),
			tree:     &tree{},
		})
	}
	logger.Info("workspace loaded", "project", name, "dir", abs, "documents", len(p.docs))

	return &Workspace{
		current: &Solution{parser: parser, projects: []*Project{p}, version: 1},
		logger:  logger,
	}, nil
}

// CurrentSolution returns the latest committed solution.
func (w *Workspace) CurrentSolution() *Solution {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Apply commits sol: changed documents are rewritten on disk, added ones
// created. sol must derive from the current solution. Files are staged
// next to their targets first so a failed write leaves the tree untouched.
// When moving a staged file into place fails, the files already written
// are restored and the added ones removed before the error is returned.
func (w *Workspace) Apply(ctx context.Context, sol *Solution) ([]Change, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if sol.version != w.current.version {
		return nil, ErrStaleSolution
	}
	changes := Changes(w.current, sol)
	for _, c := range changes {
		if c.Kind != ChangeAdded {
			continue
		}
		if _, err := os.Stat(c.Path()); err == nil {
			return nil, fmt.Errorf("creating %s: %w", c.Path(), ErrFileExists)
		}
	}

	staged := make([]stagedFile, 0, len(changes))
	discard := func() {
		for _, s := range staged {
			_ = os.Remove(s.tmp)
		}
	}
	for _, c := range changes {
		s, err := stage(c)
		if err != nil {
			discard()
			return nil, err
		}
		staged = append(staged, s)
	}
	if err := ctx.Err(); err != nil {
		discard()
		return nil, err
	}
	for i, c := range changes {
		if err := rename(staged[i].tmp, c.Path()); err != nil {
			discard()
			err = fmt.Errorf("writing %s: %w", c.Path(), err)
			if rerr := restore(staged[:i]); rerr != nil {
				w.logger.Error("rollback incomplete", "err", rerr)
				err = errors.Join(err, rerr)
			}
			return nil, err
		}
		w.logger.Debug("document written", "path", c.Path(), "kind", c.Kind)
	}

	next := sol.clone()
	next.version = w.current.version + 1
	w.current = next
	w.logger.Info("solution applied", "changes", len(changes), "version", next.version)
	return changes, nil
}

var rename = os.Rename

// stagedFile is a change written next to its target, with what it replaces.
type stagedFile struct {
	tmp     string
	path    string
	mode    fs.FileMode
	existed bool
	orig    []byte
}

// stage writes the new text of c to a temporary file in its target
// directory. The file gets the mode of the file it replaces, or 0644.
func stage(c Change) (stagedFile, error) {
	s := stagedFile{path: c.Path(), mode: 0o644}
	if s.path == "" {
		return s, fmt.Errorf("document %s has no file path", c.Document.Name())
	}
	if info, err := os.Stat(s.path); err == nil {
		s.existed = true
		s.mode = info.Mode().Perm()
		if s.orig, err = os.ReadFile(s.path); err != nil {
			return s, fmt.Errorf("staging %s: %w", s.path, err)
		}
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return s, fmt.Errorf("creating %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return s, fmt.Errorf("staging %s: %w", s.path, err)
	}
	s.tmp = f.Name()
	if _, err := f.WriteString(c.Document.Text()); err != nil {
		f.Close()
		os.Remove(s.tmp)
		return s, fmt.Errorf("staging %s: %w", s.path, err)
	}
	if err := f.Chmod(s.mode); err != nil {
		f.Close()
		os.Remove(s.tmp)
		return s, fmt.Errorf("staging %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(s.tmp)
		return s, fmt.Errorf("staging %s: %w", s.path, err)
	}
	return s, nil
}

// restore undoes written files: replaced ones get their old content back
// and created ones are removed.
func restore(written []stagedFile) error {
	var errs []error
	for _, s := range written {
		var err error
		if s.existed {
			err = os.WriteFile(s.path, s.orig, s.mode)
		} else {
			err = os.Remove(s.path)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("restoring %s: %w", s.path, err))
		}
	}
	return errors.Join(errs...)
}
