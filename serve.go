package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/olehluchkiv/partials/internal/parse"
	"github.com/olehluchkiv/partials/internal/refactor"
	"github.com/olehluchkiv/partials/internal/resolver"
	"github.com/olehluchkiv/partials/internal/server"
	"github.com/olehluchkiv/partials/internal/workspace"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve [project-dir]",
		Short: "Serve the refactorings of a project over HTTP",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			start := "."
			if len(args) == 1 {
				start = args[0]
			}
			abs, err := filepath.Abs(start)
			if err != nil {
				return err
			}
			dir, err := resolver.FindProjectRoot(abs)
			if err != nil {
				return err
			}
			if err := a.setup(dir); err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			ws, err := workspace.Open(ctx, dir, a.cfg.WorkspaceOptions(), parse.New(), a.logger.With("component", "workspace"))
			if err != nil {
				return err
			}
			provider := refactor.NewProvider(refactor.Options{
				Split:  a.cfg.SplitOptions(),
				Format: a.cfg.FormatOptions(),
			}, a.logger.With("component", "refactor"))
			handlers := server.NewHandlers(ws, provider, a.logger.With("component", "server"))
			return server.Serve(ctx, addr, server.NewRouter(handlers), a.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, localhost:7420)")
	return cmd
}
