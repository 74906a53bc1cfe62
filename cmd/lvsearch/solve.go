package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvsearch/algorithm"
	"github.com/katalvlaran/lvsearch/bestfirst"
	"github.com/katalvlaran/lvsearch/gridgraph"
	"github.com/katalvlaran/lvsearch/internal/ctxlog"
)

// ErrUnreachable is returned when the goal lies in another component than the start.
var ErrUnreachable = errors.New("lvsearch: goal is not reachable from start")

type solveFlags struct {
	algorithm     string
	maxExpansions int
	maxDepth      int
	quiet         bool
}

func (a *app) solveCommand() *cobra.Command {
	f := &solveFlags{}
	cmd := &cobra.Command{
		Use:   "solve GRID_FILE",
		Short: "Find a path through a grid with one algorithm",
		Long: `Find a path from S to G with one search algorithm and print the
path drawn on the grid with its cost and run statistics.

Algorithms:
  bestfirst     A* with the grid heuristic (cheapest path)
  breadthfirst  fewest moves
  depthfirst    first path found by backtracking`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSolve(cmd, args[0], f)
		},
	}
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", bestfirst.Name,
		"Search algorithm: bestfirst, breadthfirst, depthfirst")
	cmd.Flags().IntVar(&f.maxExpansions, "max-expansions", 0,
		"Stop after this many expansions (0 keeps the config value)")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", -1,
		"Do not generate below this depth (-1 keeps the config value)")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false,
		"Print the summary without the grid")

	return cmd
}

func (a *app) runSolve(cmd *cobra.Command, path string, f *solveFlags) error {
	ctx := ctxlog.With(cmd.Context(), slog.String("grid", path))
	strategy, err := parseStrategy(f.algorithm)
	if err != nil {
		return err
	}
	grid, file, err := gridgraph.Load(path)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Info("grid loaded",
		"name", file.Name, "width", grid.Width, "height", grid.Height)
	if !grid.Reachable() {
		return fmt.Errorf("%s: %w", path, ErrUnreachable)
	}

	var extra []algorithm.Option
	if f.maxExpansions > 0 {
		extra = append(extra, algorithm.WithMaxExpansions(f.maxExpansions))
	}
	if f.maxDepth >= 0 {
		extra = append(extra, algorithm.WithMaxDepth(f.maxDepth))
	}

	res := runGrid(ctx, strategy, grid, a.options(ctx, extra...))
	if res.Err != nil {
		return res.Err
	}
	printResult(cmd.OutOrStdout(), res)
	if res.Found && !f.quiet {
		fmt.Fprint(cmd.OutOrStdout(), grid.Render(res.Path))
	}

	return nil
}

func printResult(w io.Writer, r result) {
	fmt.Fprintf(w, "algorithm:  %s\n", r.Algorithm)
	fmt.Fprintf(w, "status:     %s\n", r.status())
	if r.Found {
		fmt.Fprintf(w, "cost:       %d\n", r.Cost)
		fmt.Fprintf(w, "moves:      %d\n", len(r.Path)-1)
	}
	fmt.Fprintf(w, "expansions: %d\n", r.Expansions)
	fmt.Fprintf(w, "elapsed:    %s\n", r.Elapsed.Round(time.Microsecond))
}
