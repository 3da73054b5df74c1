package workspace

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/olehluchkiv/partials/internal/syntax"
)

// echoParser returns a tree that prints back exactly the source it was given.
type echoParser struct {
	calls atomic.Int32
	err   error
}

func (p *echoParser) Parse(ctx context.Context, src []byte) (*syntax.CompilationUnit, error) {
	p.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}
	return textUnit(string(src)), nil
}

func textUnit(text string) *syntax.CompilationUnit {
	return syntax.NewCompilationUnit(nil, syntax.TriviaList{{Kind: syntax.SkippedText, Text: text}})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestSolution returns a solution with one project rooted at dir and one
// document holding text.
func newTestSolution(dir string, folders []string, name, text string) (*Solution, DocumentID) {
	sol, pid := NewSolution(&echoParser{}).AddProject("App", dir)
	sol, id, err := sol.AddDocument(pid, DocumentInfo{Name: name, Folders: folders, Text: text})
	if err != nil {
		panic(err)
	}
	return sol, id
}
