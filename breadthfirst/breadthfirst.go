package breadthfirst

import (
	"context"
	"errors"

	"github.com/katalvlaran/lvsearch/algorithm"
	"github.com/katalvlaran/lvsearch/bestfirst"
	"github.com/katalvlaran/lvsearch/evaluate"
	"github.com/katalvlaran/lvsearch/graphgen"
	"github.com/katalvlaran/lvsearch/searchtree"
)

// Name is the algorithm name carried by events, logs and spans.
const Name = "breadthfirst"

// Search is a best-first search ordered by depth.
type Search[N comparable, A any] = bestfirst.Search[N, A, int]

// New returns a breadth-first run in state CREATED.
func New[N comparable, A any](problem graphgen.Problem[N, A], opts ...algorithm.Option) (*Search[N, A], error) {
	return bestfirst.NewNamed(Name, problem, evaluate.Depth[N, A](), opts...)
}

// Shortest runs a breadth-first graph search and returns the first goal path
// found, one with the fewest arcs. The run is canceled as soon as the path is
// known. Returns algorithm.ErrNoSolution when no goal is reachable.
func Shortest[N comparable, A any](ctx context.Context, problem graphgen.Problem[N, A], opts ...algorithm.Option) (searchtree.Path[N, A], error) {
	s, err := New(problem, append(opts, algorithm.WithGraphSearch())...)
	if err != nil {
		return searchtree.Path[N, A]{}, err
	}
	defer func() {
		// a canceled run releases its registration on the next pull
		s.Cancel()
		_, _ = s.NextEvent(ctx)
	}()

	sol, err := s.NextSolution(ctx)
	if errors.Is(err, algorithm.ErrNoMoreEvents) {
		return searchtree.Path[N, A]{}, algorithm.ErrNoSolution
	}
	if err != nil {
		return searchtree.Path[N, A]{}, err
	}

	return sol.Path, nil
}
