package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/olehluchkiv/partials/internal/parse"
	"github.com/olehluchkiv/partials/internal/refactor"
	"github.com/olehluchkiv/partials/internal/resolver"
	"github.com/olehluchkiv/partials/internal/syntax"
	"github.com/olehluchkiv/partials/internal/workspace"
)

// selection holds the flags that place the caret in a document.
type selection struct {
	offset int
	line   int
	column int
	length int
}

func (s *selection) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&s.offset, "offset", -1, "byte offset of the selection")
	cmd.Flags().IntVar(&s.line, "line", 0, "line of the selection (1-based)")
	cmd.Flags().IntVar(&s.column, "column", 1, "byte column of the selection (1-based)")
	cmd.Flags().IntVar(&s.length, "length", 0, "length of the selection in bytes")
	cmd.MarkFlagsMutuallyExclusive("offset", "line")
	cmd.MarkFlagsOneRequired("offset", "line")
}

// span converts the flags to a range of text.
func (s *selection) span(text string) (syntax.Span, error) {
	start := s.offset
	if s.line > 0 {
		off, err := offsetAt(text, s.line, s.column)
		if err != nil {
			return syntax.Span{}, err
		}
		start = off
	}
	if start < 0 || start > len(text) || s.length < 0 || start+s.length > len(text) {
		return syntax.Span{}, fmt.Errorf("selection %d+%d is outside the document (%d bytes)", start, s.length, len(text))
	}
	return syntax.Span{Start: start, Length: s.length}, nil
}

// offsetAt returns the byte offset of a 1-based line and column.
func offsetAt(text string, line, column int) (int, error) {
	if line < 1 || column < 1 {
		return 0, fmt.Errorf("line and column start at 1, got %d:%d", line, column)
	}
	off := 0
	for l := 1; l < line; l++ {
		i := strings.IndexByte(text[off:], '\n')
		if i < 0 {
			return 0, fmt.Errorf("line %d is past the end of the document", line)
		}
		off += i + 1
	}
	end := len(text)
	if i := strings.IndexByte(text[off:], '\n'); i >= 0 {
		end = off + i
	}
	if off+column-1 > end {
		return 0, fmt.Errorf("column %d is past the end of line %d", column, line)
	}
	return off + column - 1, nil
}

// session is a loaded workspace plus the document a command works on.
type session struct {
	ws       *workspace.Workspace
	sol      *workspace.Solution
	doc      *workspace.Document
	provider *refactor.Provider
}

func (a *app) open(ctx context.Context, file string) (*session, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, err
	}
	dir, err := resolver.FindProjectRoot(filepath.Dir(abs))
	if err != nil {
		return nil, err
	}
	if err := a.setup(dir); err != nil {
		return nil, err
	}

	ws, err := workspace.Open(ctx, dir, a.cfg.WorkspaceOptions(), parse.New(), a.logger.With("component", "workspace"))
	if err != nil {
		return nil, err
	}
	sol := ws.CurrentSolution()
	doc, ok := sol.DocumentByPath(abs)
	if !ok {
		return nil, fmt.Errorf("%s is not a source file of the project in %s", file, dir)
	}
	provider := refactor.NewProvider(refactor.Options{
		Split:  a.cfg.SplitOptions(),
		Format: a.cfg.FormatOptions(),
	}, a.logger.With("component", "refactor"))
	return &session{ws: ws, sol: sol, doc: doc, provider: provider}, nil
}

func (s *session) evaluate(ctx context.Context, sel *selection) ([]refactor.Action, error) {
	span, err := sel.span(s.doc.Text())
	if err != nil {
		return nil, err
	}
	return s.provider.Evaluate(ctx, s.sol, s.doc.ID(), span)
}

func newActionsCmd(a *app) *cobra.Command {
	var sel selection
	cmd := &cobra.Command{
		Use:   "actions <file>",
		Short: "List the refactorings available at a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			actions, err := s.evaluate(cmd.Context(), &sel)
			if err != nil {
				return err
			}
			printActions(cmd.OutOrStdout(), actions)
			return nil
		},
	}
	sel.register(cmd)
	return cmd
}

func printActions(w io.Writer, actions []refactor.Action) {
	if len(actions) == 0 {
		fmt.Fprintln(w, "No actions available.")
		return
	}
	for i, act := range actions {
		fmt.Fprintf(w, "%d. %s (%s)\n", i+1, act.Title, act.Target)
	}
}

func newApplyCmd(a *app) *cobra.Command {
	var (
		sel    selection
		choice string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "apply <file>",
		Short: "Apply a refactoring at a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.open(ctx, args[0])
			if err != nil {
				return err
			}
			actions, err := s.evaluate(ctx, &sel)
			if err != nil {
				return err
			}
			act, err := refactor.Select(actions, choice)
			if err != nil {
				return err
			}
			next, err := act.Apply(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", act.Title, err)
			}

			out := cmd.OutOrStdout()
			if dryRun {
				colored := isTerminal(out)
				for _, c := range workspace.Changes(s.sol, next) {
					printDiff(out, workspace.Diff(c, c.Document.RelPath()), colored)
				}
				return nil
			}
			changes, err := s.ws.Apply(ctx, next)
			if err != nil {
				return err
			}
			for _, c := range changes {
				fmt.Fprintf(out, "%s %s\n", c.Kind, c.Document.RelPath())
			}
			return nil
		},
	}
	sel.register(cmd)
	cmd.Flags().StringVar(&choice, "action", "1", "action number or title, as listed by the actions command")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the diff instead of writing files")
	return cmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var (
	addedLine   = color.New(color.FgGreen).SprintFunc()
	removedLine = color.New(color.FgRed).SprintFunc()
	hunkLine    = color.New(color.FgCyan).SprintFunc()
	headerLine  = color.New(color.Bold).SprintFunc()
)

// printDiff writes a unified diff, coloured when colored is set.
func printDiff(w io.Writer, diff string, colored bool) {
	if !colored {
		fmt.Fprint(w, diff)
		return
	}
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			text = headerLine(text)
		case strings.HasPrefix(text, "@@"):
			text = hunkLine(text)
		case strings.HasPrefix(text, "+"):
			text = addedLine(text)
		case strings.HasPrefix(text, "-"):
			text = removedLine(text)
		}
		fmt.Fprintln(w, text)
	}
}
