package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/olehluchkiv/partials/internal/config"
	"github.com/olehluchkiv/partials/internal/logging"
)

func main() {
	// Setup signal handling with context cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(os.Stderr, "received %s, shutting down\n", sig)
		cancel()
	}()

	a := &app{stdout: os.Stdout, stderr: os.Stderr}
	err := newRootCmd(a).ExecuteContext(ctx)
	a.close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the global flags and what setup derives from them.
type app struct {
	configFile string
	logLevel   string
	logFile    string

	stdout io.Writer
	stderr io.Writer

	cfg     *config.Config
	logger  *slog.Logger
	cleanup func()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "partials",
		Short: "Break oversized C# types into partial declarations",
		Long: `partials finds C# types that have grown too large and splits them into
partial declarations, or moves partial fragments and same-named types into
their own source files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default is <project>/"+config.FileName+")")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "also write logs to this file")

	root.AddCommand(newActionsCmd(a), newApplyCmd(a), newCheckCmd(a), newServeCmd(a))
	return root
}

// setup loads the configuration of the project in dir and configures
// logging. Flags win over the configuration.
func (a *app) setup(dir string) error {
	cfg, err := config.NewLoader(dir, a.configFile).Load()
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFile != "" {
		cfg.Log.File = a.logFile
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}

	logger, cleanup, err := logging.Setup(logging.Options{
		Level:  level,
		File:   cfg.Log.File,
		Format: cfg.Log.Format,
		Writer: a.stderr,
	})
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	a.cfg, a.logger, a.cleanup = cfg, logger, cleanup
	return nil
}

// close releases what setup opened.
func (a *app) close() {
	if a.cleanup != nil {
		a.cleanup()
		a.cleanup = nil
	}
}
