package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvsearch/algorithm"
	"github.com/katalvlaran/lvsearch/gridgraph"
	"github.com/katalvlaran/lvsearch/internal/ctxlog"
	"github.com/katalvlaran/lvsearch/metrics"
)

func (a *app) compareCommand() *cobra.Command {
	var withMetrics bool
	cmd := &cobra.Command{
		Use:   "compare GRID_FILE",
		Short: "Run every algorithm on a grid concurrently and compare them",
		Long: `Run bestfirst, breadthfirst and depthfirst side by side on the same
grid. The runs share one registry: an interrupt (Ctrl-C) cancels all of
them. With --metrics the Prometheus counters of the runs are printed in
text exposition format after the table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCompare(cmd, args[0], withMetrics || a.cfg.Observability.MetricsEnabled)
		},
	}
	cmd.Flags().BoolVar(&withMetrics, "metrics", false, "Print Prometheus metrics of the runs")

	return cmd
}

func (a *app) runCompare(cmd *cobra.Command, path string, withMetrics bool) error {
	ctx := ctxlog.With(cmd.Context(), slog.String("grid", path))
	grid, _, err := gridgraph.Load(path)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	collector := metrics.New(reg)
	runs := algorithm.NewRegistry()
	stop := context.AfterFunc(ctx, runs.CancelAll)
	defer stop()

	results := make([]result, len(strategies))
	g, gctx := errgroup.WithContext(ctx)
	for i, strategy := range strategies {
		g.Go(func() error {
			opts := a.options(gctx, algorithm.WithRegistry(runs), algorithm.WithObserver(collector))
			results[i] = runGrid(gctx, strategy, grid, opts)

			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printTable(out, results)
	if withMetrics {
		fmt.Fprintln(out)
		return writeMetrics(out, reg)
	}

	return nil
}

func printTable(w io.Writer, results []result) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tSTATUS\tCOST\tMOVES\tEXPANSIONS\tELAPSED")
	for _, r := range results {
		cost, moves := "-", "-"
		if r.Found {
			cost, moves = fmt.Sprint(r.Cost), fmt.Sprint(len(r.Path)-1)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			r.Algorithm, r.status(), cost, moves, r.Expansions, r.Elapsed.Round(time.Microsecond))
	}
	_ = tw.Flush()
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}

	return nil
}
