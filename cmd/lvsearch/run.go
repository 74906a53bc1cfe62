package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/katalvlaran/lvsearch/algorithm"
	"github.com/katalvlaran/lvsearch/bestfirst"
	"github.com/katalvlaran/lvsearch/breadthfirst"
	"github.com/katalvlaran/lvsearch/depthfirst"
	"github.com/katalvlaran/lvsearch/evaluate"
	"github.com/katalvlaran/lvsearch/gridgraph"
	"github.com/katalvlaran/lvsearch/internal/ctxlog"
	"github.com/katalvlaran/lvsearch/searchtree"
)

// strategies lists the engines the CLI can run, in report order.
var strategies = []string{bestfirst.Name, breadthfirst.Name, depthfirst.Name}

// ErrUnknownStrategy is returned for an --algorithm value outside strategies.
var ErrUnknownStrategy = errors.New("lvsearch: unknown algorithm")

// result summarizes one run over a grid.
type result struct {
	Algorithm  string
	Found      bool
	Path       []gridgraph.Cell
	Cost       int
	Expansions int
	Elapsed    time.Duration
	Err        error
}

func (r result) status() string {
	switch {
	case r.Err != nil:
		return "error: " + r.Err.Error()
	case r.Found:
		return "found"
	default:
		return "no path"
	}
}

func parseStrategy(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range strategies {
		if s == name {
			return s, nil
		}
	}

	return "", fmt.Errorf("%w %q (want one of %s)", ErrUnknownStrategy, name, strings.Join(strategies, ", "))
}

// runGrid searches g with the named strategy in graph-search mode and
// reports the best solution of the run. Grids contain cycles, so duplicate
// states are always folded.
func runGrid(ctx context.Context, strategy string, g *gridgraph.Grid, opts []algorithm.Option) result {
	opts = append(opts, algorithm.WithGraphSearch())
	res := result{Algorithm: strategy}
	start := time.Now()

	var (
		path       searchtree.Path[gridgraph.Cell, gridgraph.Move]
		expansions func() int
		err        error
	)
	switch strategy {
	case bestfirst.Name:
		var s *bestfirst.Search[gridgraph.Cell, gridgraph.Move, int]
		if s, err = bestfirst.New(g.Problem(), g.AStar(), opts...); err == nil {
			expansions = s.Expansions
			var sol algorithm.Solution[gridgraph.Cell, gridgraph.Move, int]
			sol, err = s.Call(ctx)
			path = sol.Path
		}
	case breadthfirst.Name:
		var s *breadthfirst.Search[gridgraph.Cell, gridgraph.Move]
		if s, err = breadthfirst.New(g.Problem(), opts...); err == nil {
			expansions = s.Expansions
			var sol algorithm.Solution[gridgraph.Cell, gridgraph.Move, int]
			sol, err = s.Call(ctx)
			path = sol.Path
		}
	case depthfirst.Name:
		var s *depthfirst.Search[gridgraph.Cell, gridgraph.Move]
		if s, err = depthfirst.New(g.Problem(), opts...); err == nil {
			expansions = s.Expansions
			var sol depthfirst.Solution[gridgraph.Cell, gridgraph.Move]
			sol, err = s.Call(ctx)
			path = sol.Path
		}
	default:
		_, err = parseStrategy(strategy)
	}

	res.Elapsed = time.Since(start)
	if expansions != nil {
		res.Expansions = expansions()
	}
	switch {
	case errors.Is(err, algorithm.ErrNoSolution):
	case err != nil:
		res.Err = err
	default:
		res.Found = true
		res.Path = path.States()
		res.Cost = evaluate.PathCost(path, g.StepCost)
	}
	ctxlog.FromContext(ctx).Debug("run done",
		slog.String("algorithm", strategy),
		slog.Bool("found", res.Found),
		slog.Int("expansions", res.Expansions),
		slog.Duration("elapsed", res.Elapsed),
	)

	return res
}
