package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/olehluchkiv/partials/internal/analyzer"
	"github.com/olehluchkiv/partials/internal/parse"
	"github.com/olehluchkiv/partials/internal/resolver"
	"github.com/olehluchkiv/partials/internal/workspace"
)

var errFindings = errors.New("types need attention")

// finding is an actionable type at a position in a document.
type finding struct {
	path string
	line int
	analyzer.Assessment
}

func (f finding) String() string {
	var reasons []string
	if f.TooManyMembers {
		reasons = append(reasons, fmt.Sprintf("has %d members", f.Members))
	}
	if f.HasManyPartialsInSameSource() {
		reasons = append(reasons, fmt.Sprintf("is one of %d partial declarations in this file", f.PartialSiblings))
	} else if f.HasManyInSameSource() {
		reasons = append(reasons, fmt.Sprintf("is declared %d times in this file", f.NamedSiblings))
	}
	return fmt.Sprintf("%s:%d: %s %s %s", f.path, f.line, f.Keyword, f.Name, strings.Join(reasons, " and "))
}

// checkStats counts what a check run looked at.
type checkStats struct {
	documents int
	types     atomic.Int64
	skipped   atomic.Int64
}

func newCheckCmd(a *app) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "check <path-or-url>",
		Short: "Report oversized types and files holding several declarations of a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.setup("."); err != nil {
				return err
			}
			dir, cleanup, err := resolver.Resolve(ctx, args[0], a.logger)
			if err != nil {
				return fmt.Errorf("resolving input: %w", err)
			}
			defer cleanup()

			a.close()
			if err := a.setup(dir); err != nil {
				return err
			}
			ws, err := workspace.Open(ctx, dir, a.cfg.WorkspaceOptions(), parse.New(), a.logger.With("component", "workspace"))
			if err != nil {
				return err
			}

			sol := ws.CurrentSolution()
			stats := &checkStats{documents: len(sol.Documents())}
			progress := func() {}
			if isTerminal(a.stderr) {
				bar := progressbar.NewOptions(stats.documents,
					progressbar.OptionSetWriter(a.stderr),
					progressbar.OptionSetDescription("Checking documents"),
					progressbar.OptionSetWidth(40),
					progressbar.OptionShowCount(),
					progressbar.OptionThrottle(65*time.Millisecond),
					progressbar.OptionClearOnFinish(),
				)
				progress = func() { _ = bar.Add(1) }
			}

			opts := analyzer.AnalyzeOptions{Split: a.cfg.SplitOptions()}
			findings, err := checkDocuments(ctx, sol, opts, a.cfg.Workspace.Workers, stats, progress, a.logger.With("component", "analyzer"))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printFindings(out, findings)
			fmt.Fprintf(out, "%d types in %d documents, %d need attention", stats.types.Load(), stats.documents, len(findings))
			if n := stats.skipped.Load(); n > 0 {
				fmt.Fprintf(out, ", %d documents skipped", n)
			}
			fmt.Fprintln(out)

			if strict && len(findings) > 0 {
				return errFindings
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when any type needs attention")
	return cmd
}

// checkDocuments analyzes every document of sol concurrently and returns the
// actionable top-level types in document order. Documents that fail to parse
// are logged and skipped.
func checkDocuments(ctx context.Context, sol *workspace.Solution, opts analyzer.AnalyzeOptions, workers int, stats *checkStats, progress func(), logger *slog.Logger) ([]finding, error) {
	docs := sol.Documents()
	found := make([][]finding, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, doc := range docs {
		g.Go(func() error {
			defer progress()
			root, err := sol.Root(ctx, doc.ID())
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				stats.skipped.Add(1)
				logger.Warn("skipping document", "document", doc.FilePath(), "error", err)
				return nil
			}
			res, err := analyzer.Analyze(ctx, root, opts, logger.With("document", doc.Name()))
			if err != nil {
				return err
			}
			stats.types.Add(int64(len(res.Types)))
			for _, as := range res.Actionable() {
				if as.Nested {
					continue
				}
				found[i] = append(found[i], finding{
					path:       doc.RelPath(),
					line:       lineOf(doc.Text(), as.Offset),
					Assessment: as,
				})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slices.Concat(found...), nil
}

func printFindings(w io.Writer, findings []finding) {
	for _, f := range findings {
		fmt.Fprintln(w, f)
	}
}

// lineOf returns the 1-based line holding byte offset off.
func lineOf(text string, off int) int {
	off = min(max(off, 0), len(text))
	return strings.Count(text[:off], "\n") + 1
}
