// Package refactor offers the partial-class refactorings for a selection in
// a document and applies them to a solution.
package refactor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/olehluchkiv/partials/internal/analyzer"
	"github.com/olehluchkiv/partials/internal/extract"
	"github.com/olehluchkiv/partials/internal/format"
	"github.com/olehluchkiv/partials/internal/split"
	"github.com/olehluchkiv/partials/internal/syntax"
	"github.com/olehluchkiv/partials/internal/workspace"
)

// Action titles.
const (
	TitleBreak       = "Break into partials"
	TitleMovePartial = "Move partial to new source file"
	TitleMoveType    = "Move type to new source file"
	TitleSplitHere   = "Split here to a partial"
)

// Action is one refactoring offered for a selection.
type Action struct {
	Title string
	// Target names the type the action edits.
	Target string
	apply  func(ctx context.Context) (*workspace.Solution, error)
}

// Apply runs the action against the solution it was offered for and returns
// the edited solution. On failure the original solution is returned along
// with the error.
func (a Action) Apply(ctx context.Context) (*workspace.Solution, error) {
	return a.apply(ctx)
}

// Options configures a Provider.
type Options struct {
	Split  split.Options
	Format format.Options
}

// Provider evaluates selections. It keeps no state between calls.
type Provider struct {
	splitter  *split.Chunker
	opts      split.Options
	formatter extract.Formatter
	logger    *slog.Logger
}

// NewProvider creates a provider.
func NewProvider(opts Options, logger *slog.Logger) *Provider {
	return &Provider{
		splitter:  split.NewChunker(opts.Split),
		opts:      opts.Split,
		formatter: format.New(opts.Format),
		logger:    logger,
	}
}

// Evaluate lists the actions that apply to the selection in document id. A
// selection that is not on a type or inside one yields no actions.
func (p *Provider) Evaluate(ctx context.Context, sol *workspace.Solution, id workspace.DocumentID, sel syntax.Span) ([]Action, error) {
	root, err := sol.Root(ctx, id)
	if err != nil {
		return nil, err
	}
	path := syntax.FindNode(root, sel)
	enclosing, typePath := path.EnclosingType()

	var actions []Action
	if t, ok := path.Node().(*syntax.TypeDecl); ok && enclosing == nil {
		if p.opts.HasTooManyMembers(t) {
			actions = append(actions, p.breakAction(sol, id, t))
		}
		if analyzer.HasManyPartialsInSameSource(path) {
			actions = append(actions, p.moveAction(sol, id, path, TitleMovePartial, analyzer.DeriveExtractionName(t)))
		}
		if analyzer.HasManyInSameSource(path) {
			actions = append(actions, p.moveAction(sol, id, path, TitleMoveType, t.Identifier()))
		}
	} else if enclosing != nil {
		pivot := path[len(typePath)]
		actions = append(actions, p.splitHereAction(sol, id, enclosing, pivot))
	}

	p.logger.Debug("actions evaluated", "start", sel.Start, "length", sel.Length, "node", path.Node().Kind(), "actions_count", len(actions))
	return actions, nil
}

func (p *Provider) breakAction(sol *workspace.Solution, id workspace.DocumentID, t *syntax.TypeDecl) Action {
	return Action{
		Title:  TitleBreak,
		Target: t.Identifier(),
		apply: func(ctx context.Context) (*workspace.Solution, error) {
			fragments, err := p.splitter.Split(ctx, t)
			if err != nil {
				return sol, err
			}
			p.logger.Info("type broken into partials", "type", t.Identifier(), "fragments_count", len(fragments))
			return p.replace(ctx, sol, id, t, fragments)
		},
	}
}

func (p *Provider) splitHereAction(sol *workspace.Solution, id workspace.DocumentID, t *syntax.TypeDecl, pivot syntax.Node) Action {
	return Action{
		Title:  TitleSplitHere,
		Target: t.Identifier(),
		apply: func(ctx context.Context) (*workspace.Solution, error) {
			if err := ctx.Err(); err != nil {
				return sol, fmt.Errorf("split %s: %w", t.Identifier(), err)
			}
			fragments := split.SplitAt(ctx, t, pivot)
			if len(fragments) < 2 {
				p.logger.Debug("split point leaves type unchanged", "type", t.Identifier())
				return sol, nil
			}
			return p.replace(ctx, sol, id, t, fragments)
		},
	}
}

// replace puts the first fragment where t was and the rest right after it.
func (p *Provider) replace(ctx context.Context, sol *workspace.Solution, id workspace.DocumentID, t *syntax.TypeDecl, fragments []*syntax.TypeDecl) (*workspace.Solution, error) {
	nodes := make([]syntax.Node, len(fragments))
	for i, f := range fragments {
		nodes[i] = f
	}
	return workspace.ApplySnapshot(ctx, sol, id, func(root *syntax.CompilationUnit) (*syntax.CompilationUnit, error) {
		edited, err := syntax.Replace(root, t, nodes...)
		if err != nil {
			return nil, err
		}
		return p.format(edited)
	})
}

func (p *Provider) moveAction(sol *workspace.Solution, id workspace.DocumentID, path syntax.Path, title, name string) Action {
	t := path.Node().(*syntax.TypeDecl)
	return Action{
		Title:  title,
		Target: t.Identifier(),
		apply: func(ctx context.Context) (*workspace.Solution, error) {
			root, ok := path.Root().(*syntax.CompilationUnit)
			if !ok {
				return sol, fmt.Errorf("move %s: %w", t.Identifier(), extract.ErrTargetMissing)
			}
			unit, err := extract.ExtractAsUnit(root, path, p.formatter)
			if err != nil {
				return sol, fmt.Errorf("move %s: %w", t.Identifier(), err)
			}
			if err := ctx.Err(); err != nil {
				return sol, fmt.Errorf("move %s: %w", t.Identifier(), err)
			}

			next, err := workspace.ApplySnapshot(ctx, sol, id, func(root *syntax.CompilationUnit) (*syntax.CompilationUnit, error) {
				return p.format(syntax.Remove(root, t))
			})
			if err != nil {
				return sol, err
			}
			if err := ctx.Err(); err != nil {
				return sol, fmt.Errorf("move %s: %w", t.Identifier(), err)
			}

			next, newID, err := workspace.AllocateDerivedDocument(next, id, name, unit)
			if err != nil {
				return sol, err
			}
			doc, _ := next.Document(newID)
			p.logger.Info("type moved", "type", t.Identifier(), "document", doc.Name())
			return next, nil
		},
	}
}

func (p *Provider) format(n syntax.Node) (*syntax.CompilationUnit, error) {
	formatted := p.formatter.Format(n)
	out, ok := formatted.(*syntax.CompilationUnit)
	if !ok {
		return nil, fmt.Errorf("formatting produced %T", formatted)
	}
	return out, nil
}
