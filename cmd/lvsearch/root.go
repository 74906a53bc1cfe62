package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/katalvlaran/lvsearch/algorithm"
	"github.com/katalvlaran/lvsearch/config"
	"github.com/katalvlaran/lvsearch/internal/ctxlog"
)

// app holds the global flags and the state built from them before any
// subcommand runs.
type app struct {
	configPath string
	logLevel   string
	trace      bool

	cfg config.Config
	tp  *sdktrace.TracerProvider
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "lvsearch",
		Short: "Search grid graphs with best-first, breadth-first and depth-first engines",
		Long: `Search grid graphs loaded from YAML files.

Grid files list rows of cells: S start, G goal, # wall, . cost 1, 2-9 cost.

Examples:
  lvsearch solve maze.yaml
  lvsearch solve maze.yaml --algorithm depthfirst --max-depth 40
  lvsearch compare maze.yaml --metrics`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "",
		"Path to a YAML or JSON config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"Log level: debug, info, warn, error (overrides the config)")
	root.PersistentFlags().BoolVar(&a.trace, "trace", false,
		"Export run spans to stderr")

	root.AddCommand(a.solveCommand(), a.compareCommand())

	return root
}

// setup loads the config and installs the logger and tracer provider.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Observability.LogLevel = a.logLevel
		if err = cfg.Validate(); err != nil {
			return err
		}
	}
	if a.trace {
		cfg.Observability.TracingEnabled = true
	}
	a.cfg = cfg

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()}))
	cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))

	if cfg.Observability.TracingEnabled {
		exp, err := stdouttrace.New(
			stdouttrace.WithWriter(cmd.ErrOrStderr()),
			stdouttrace.WithPrettyPrint(),
		)
		if err != nil {
			return fmt.Errorf("create span exporter: %w", err)
		}
		a.tp = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exp),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
		)
	}

	return nil
}

// options returns the run options derived from the config and the logger of
// ctx, followed by extra.
func (a *app) options(ctx context.Context, extra ...algorithm.Option) []algorithm.Option {
	opts := append(a.cfg.Options(), algorithm.WithLogger(ctxlog.FromContext(ctx)))
	if a.tp != nil {
		opts = append(opts, algorithm.WithTracerProvider(a.tp))
	}

	return append(opts, extra...)
}

// shutdown flushes pending spans.
func (a *app) shutdown(ctx context.Context) {
	if a.tp == nil {
		return
	}
	if err := a.tp.Shutdown(ctx); err != nil {
		ctxlog.FromContext(ctx).Warn("tracer shutdown failed", slog.Any("error", err))
	}
}
