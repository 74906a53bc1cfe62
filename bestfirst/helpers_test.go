package bestfirst_test

import (
	"io"
	"log/slog"
	"time"

	"github.com/katalvlaran/lvsearch/algorithm"
	"github.com/katalvlaran/lvsearch/graphgen"
)

// quiet returns options that keep test runs isolated and silent.
func quiet(opts ...algorithm.Option) []algorithm.Option {
	base := []algorithm.Option{
		algorithm.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		algorithm.WithRegistry(algorithm.NewRegistry()),
		algorithm.WithPollInterval(5 * time.Millisecond),
	}

	return append(base, opts...)
}

// twoLevel builds r -> {a, b}, a -> {c, d}, b -> {e}.
func twoLevel() *graphgen.Explicit[string, string] {
	return graphgen.NewExplicit[string, string]("r").
		AddEdge("r", "a", "r-a").
		AddEdge("r", "b", "r-b").
		AddEdge("a", "c", "a-c").
		AddEdge("a", "d", "a-d").
		AddEdge("b", "e", "b-e")
}

// expandedStates returns the nodes of every NodeExpansionCompleted event, in order.
func expandedStates[N comparable](rec *algorithm.Recorder) []N {
	var out []N
	for _, ev := range rec.Events() {
		if e, ok := ev.(algorithm.NodeExpansionCompleted[N]); ok {
			out = append(out, e.Node)
		}
	}

	return out
}

// never is a goal tester that accepts nothing.
func never[N comparable]() graphgen.NodeGoalTester[N] {
	return graphgen.GoalFunc[N](func(N) bool { return false })
}
