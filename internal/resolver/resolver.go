// Package resolver turns a command-line input into a local project
// directory: the nearest directory holding a C# project file.
package resolver

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
)

// ProjectExt is the extension of the files that mark a project root.
const ProjectExt = ".csproj"

// maxSearchDepth bounds the breadth-first search below a cloned repository.
const maxSearchDepth = 3

// Resolve takes an input (local file, local dir, or GitHub URL) and returns
// the project directory it belongs to, plus a cleanup function. A local
// input with no project file above it resolves to its own directory.
func Resolve(ctx context.Context, input string, logger *slog.Logger) (dir string, cleanup func(), err error) {
	cleanup = func() {} // default no-op

	if isGitHubURL(input) {
		return fetchRepo(ctx, input, logger)
	}

	absPath, err := filepath.Abs(input)
	if err != nil {
		return "", cleanup, fmt.Errorf("resolving path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", cleanup, fmt.Errorf("stat %s: %w", absPath, err)
	}
	if !info.IsDir() {
		absPath = filepath.Dir(absPath)
	}

	projRoot, err := FindProjectRoot(absPath)
	if err != nil {
		logger.Debug("no project file found, using directory", "dir", absPath)
		return absPath, cleanup, nil
	}

	logger.Info("resolved local directory", "input", input, "project_root", projRoot)
	return projRoot, cleanup, nil
}

func isGitHubURL(input string) bool {
	return strings.Contains(input, "github.com") &&
		(strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://"))
}

// cacheDir returns a stable directory for caching a cloned repo.
// Uses ~/.cache/partials/repos/<hash> where hash is derived from the URL.
func cacheDir(url string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}
	h := sha256.Sum256([]byte(url))
	name := fmt.Sprintf("%x", h[:8])
	return filepath.Join(home, ".cache", "partials", "repos", name), nil
}

// fetchRepo either refreshes an existing cached clone or does a fresh clone.
// Returns the project root directory and a no-op cleanup (cache is persistent).
func fetchRepo(ctx context.Context, url string, logger *slog.Logger) (string, func(), error) {
	noop := func() {}

	dir, err := cacheDir(url)
	if err != nil {
		return "", noop, err
	}

	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		return cloneRepo(ctx, url, dir, logger)
	}

	logger.Info("updating cached repository", "url", url, "dir", dir)
	for _, args := range [][]string{
		{"fetch", "--depth=1", "origin"},
		{"reset", "--hard", "origin/HEAD"},
	} {
		cmd := exec.CommandContext(ctx, "git", args...)
		cmd.Dir = dir
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			logger.Warn("git "+args[0]+" failed, will re-clone", "error", err)
			_ = os.RemoveAll(dir)
			return cloneRepo(ctx, url, dir, logger)
		}
	}
	logger.Info("repository updated", "dir", dir)

	projRoot, err := findProjectRootInTree(dir)
	if err != nil {
		return "", noop, fmt.Errorf("no project found in cached repo: %w", err)
	}
	logger.Info("found project root", "project_root", projRoot)
	return projRoot, noop, nil
}

func cloneRepo(ctx context.Context, url, dir string, logger *slog.Logger) (string, func(), error) {
	noop := func() {}

	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return "", noop, fmt.Errorf("creating cache dir: %w", err)
	}

	logger.Info("cloning repository", "url", url, "dest", dir)

	cmd := exec.CommandContext(ctx, "git", "clone", "--depth=1", url, dir)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		_ = os.RemoveAll(dir)
		return "", noop, fmt.Errorf("git clone: %w", err)
	}

	logger.Info("clone complete", "dest", dir)

	// The project file may sit below the repository root.
	projRoot, err := findProjectRootInTree(dir)
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", noop, fmt.Errorf("no project found in cloned repo: %w", err)
	}

	logger.Info("found project root", "project_root", projRoot)
	return projRoot, noop, nil
}

// FindProjectRoot walks up from dir to the first directory that holds a
// project file.
func FindProjectRoot(dir string) (string, error) {
	current := dir
	for {
		if hasProjectFile(current) {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no %s found in %s or any parent directory", ProjectExt, dir)
		}
		current = parent
	}
}

// ProjectFile returns the first project file in dir, in name order.
func ProjectFile(dir string) (string, bool) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+ProjectExt))
	if err != nil || len(matches) == 0 {
		return "", false
	}
	slices.Sort(matches)
	return matches[0], true
}

func hasProjectFile(dir string) bool {
	_, ok := ProjectFile(dir)
	return ok
}

// skipDir reports whether a directory never holds project sources.
func skipDir(name string) bool {
	switch name {
	case "bin", "obj", "node_modules", "packages":
		return true
	}
	return strings.HasPrefix(name, ".")
}

// findProjectRootInTree searches root and its subdirectories breadth-first
// for a project file, returning the shallowest match. Siblings at the same
// depth are visited in name order.
func findProjectRootInTree(root string) (string, error) {
	level := []string{root}
	for depth := 0; depth <= maxSearchDepth && len(level) > 0; depth++ {
		var next []string
		for _, dir := range level {
			if hasProjectFile(dir) {
				return dir, nil
			}
			entries, err := os.ReadDir(dir)
			if err != nil {
				continue
			}
			for _, e := range entries {
				if e.IsDir() && !skipDir(e.Name()) {
					next = append(next, filepath.Join(dir, e.Name()))
				}
			}
		}
		level = next
	}
	return "", fmt.Errorf("no %s found in %s or its subdirectories", ProjectExt, root)
}
