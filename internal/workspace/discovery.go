package workspace

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultIgnore lists the build output directories skipped when loading.
var DefaultIgnore = []string{"bin/**", "obj/**", "**/bin/**", "**/obj/**"}

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// discovery finds the source files of a project directory.
type discovery struct {
	root   string
	ignore []compiledPattern
}

func newDiscovery(root string, ignorePatterns []string) (*discovery, error) {
	d := &discovery{root: root}
	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.ignore = append(d.ignore, compiledPattern{pattern: pattern, glob: g})
	}
	return d, nil
}

// sourceFiles walks the tree and returns the source files in walk order.
func (d *discovery) sourceFiles() ([]string, error) {
	var files []string
	err := filepath.WalkDir(d.root, func(path string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == d.root {
			return nil
		}
		relPath, err := filepath.Rel(d.root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if e.IsDir() {
			if strings.HasPrefix(e.Name(), ".") || d.shouldIgnore(relPath+"/**") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != SourceExt || d.shouldIgnore(relPath) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	return files, err
}

// shouldIgnore checks a slash-separated relative path against the ignore
// patterns. A pattern starting with "**/" also matches at the root.
func (d *discovery) shouldIgnore(relPath string) bool {
	for _, cp := range d.ignore {
		if cp.glob.Match(relPath) {
			return true
		}
	}
	for _, cp := range d.ignore {
		if !strings.HasPrefix(cp.pattern, "**/") {
			continue
		}
		if g, err := glob.Compile(strings.TrimPrefix(cp.pattern, "**/"), '/'); err == nil && g.Match(relPath) {
			return true
		}
	}
	return false
}
