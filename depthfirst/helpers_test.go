package depthfirst_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/katalvlaran/lvsearch/algorithm"
	"github.com/katalvlaran/lvsearch/graphgen"
)

func quiet(opts ...algorithm.Option) []algorithm.Option {
	base := []algorithm.Option{
		algorithm.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		algorithm.WithRegistry(algorithm.NewRegistry()),
		algorithm.WithPollInterval(5 * time.Millisecond),
	}

	return append(base, opts...)
}

// scenario builds r -> {a, b}, a -> {}, b -> {c}.
func scenario() *graphgen.Explicit[string, string] {
	return graphgen.NewExplicit[string, string]("r").
		AddEdge("r", "a", "r-a").
		AddEdge("r", "b", "r-b").
		AddEdge("b", "c", "b-c")
}

// randomTree returns a tree of n nodes rooted at 0 where the parent of i is
// drawn uniformly from 0..i-1.
func randomTree(seed int64, n int) *graphgen.Explicit[int, int] {
	rng := rand.New(rand.NewSource(seed))
	g := graphgen.NewExplicit[int, int](0)
	for i := 1; i < n; i++ {
		g.AddEdge(rng.Intn(i), i, i)
	}

	return g
}

// describe renders the events relevant to traversal order.
func describe(rec *algorithm.Recorder) []string {
	var out []string
	for _, ev := range rec.Events() {
		switch e := ev.(type) {
		case algorithm.GraphInitialized[string]:
			out = append(out, fmt.Sprintf("GraphInitialized%v", e.Roots))
		case algorithm.NodeAdded[string, string]:
			out = append(out, fmt.Sprintf("NodeAdded(%s,%s)", e.Parent, e.Child))
		case algorithm.NodeExpansionCompleted[string]:
			out = append(out, fmt.Sprintf("NodeExpansionCompleted(%s)", e.Node))
		case algorithm.SolutionCandidateFound[string, string, int]:
			out = append(out, fmt.Sprintf("SolutionCandidateFound%s", e.Solution.Path))
		case algorithm.AlgorithmFinished:
			out = append(out, "AlgorithmFinished")
		}
	}

	return out
}

// eagerGoals is the reference: a recursive depth-first traversal that stops
// at goals and visits successors in generator order.
func eagerGoals[N comparable, A any](g graphgen.GraphGenerator[N, A], goal func(N) bool) []N {
	ctx := context.Background()
	var out []N
	var walk func(N)
	walk = func(s N) {
		if goal(s) {
			out = append(out, s)
			return
		}
		succ, _ := g.Successors(ctx, s)
		for _, sc := range succ {
			walk(sc.State)
		}
	}
	roots, _ := g.Roots(ctx)
	for _, r := range roots {
		walk(r)
	}

	return out
}

func never[N comparable]() graphgen.NodeGoalTester[N] {
	return graphgen.GoalFunc[N](func(N) bool { return false })
}
