package depthfirst_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsearch/algorithm"
	"github.com/katalvlaran/lvsearch/depthfirst"
	"github.com/katalvlaran/lvsearch/graphgen"
)

// randomDecisions walks g from its root picking random successors.
func randomDecisions(t *testing.T, g *graphgen.Explicit[int, int], rng *rand.Rand) ([]int, []int) {
	t.Helper()
	ctx := context.Background()
	states := []int{0}
	var decisions []int
	for {
		succ, err := g.Successors(ctx, states[len(states)-1])
		require.NoError(t, err)
		if len(succ) == 0 || rng.Intn(6) == 0 {
			return decisions, states
		}
		d := rng.Intn(len(succ))
		decisions = append(decisions, d)
		states = append(states, succ[d].State)
	}
}

// norm makes nil and empty decision lists compare equal.
func norm(d []int) []int { return append([]int{}, d...) }

func TestSetCurrentPath_DecisionRoundTrip(t *testing.T) {
	ctx := context.Background()
	for seed := int64(1); seed <= 10; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			g := randomTree(seed, 150)
			rng := rand.New(rand.NewSource(seed))
			s, err := depthfirst.New(graphgen.NewProblem[int, int](g, never[int]()), quiet()...)
			require.NoError(t, err)

			// Seeded before activation.
			decisions, states := randomDecisions(t, g, rng)
			require.NoError(t, s.SetCurrentPathByDecisions(ctx, decisions))
			assert.Equal(t, states, s.CurrentPath().States())
			assert.Equal(t, norm(decisions), norm(s.DecisionIndices()))

			// Active: jump around while the run is in progress.
			for i := 0; i < 5; i++ {
				_, err = s.NextEvent(ctx)
				require.NoError(t, err)
			}
			for i := 0; i < 3; i++ {
				decisions, states = randomDecisions(t, g, rng)
				require.NoError(t, s.SetCurrentPathByDecisions(ctx, decisions))
				assert.Equal(t, states, s.CurrentPath().States())
				assert.Equal(t, norm(decisions), norm(s.DecisionIndices()))

				require.NoError(t, s.SetCurrentPath(ctx, s.CurrentPath().States()))
				assert.Equal(t, norm(decisions), norm(s.DecisionIndices()))

				_, err = s.NextEvent(ctx)
				require.NoError(t, err)
			}

			// Jumps never lead to re-expansion.
			require.NoError(t, algorithm.Drain(ctx, s))
			for st := 0; st < 150; st++ {
				assert.LessOrEqual(t, g.Calls(st), 1, "state %d", st)
			}
		})
	}
}

func TestSetCurrentPath_SeedReplay(t *testing.T) {
	rec := algorithm.NewRecorder()
	s, err := depthfirst.New(
		graphgen.NewProblem[string, string](scenario(), graphgen.GoalSet("c")),
		quiet(algorithm.WithObserver(rec))...,
	)
	require.NoError(t, err)

	require.NoError(t, s.SetCurrentPath(context.Background(), []string{"r", "b", "c"}))
	assert.Equal(t, "[r b c]", s.CurrentPath().String())
	assert.Equal(t, []int{1, 0}, s.DecisionIndices())
	assert.Equal(t, algorithm.Created, s.State())

	require.NoError(t, algorithm.Drain(context.Background(), s))
	assert.Equal(t, []string{
		"GraphInitialized[r]",
		"NodeAdded(r,a)",
		"NodeAdded(r,b)",
		"NodeExpansionCompleted(r)",
		"NodeAdded(b,c)",
		"NodeExpansionCompleted(b)",
		"SolutionCandidateFound[r b c]",
		"AlgorithmFinished",
	}, describe(rec))
}

func TestSetCurrentPath_SeedSkipsIntermediateGoals(t *testing.T) {
	s, err := depthfirst.New(graphgen.NewProblem[string, string](scenario(), graphgen.GoalSet("b")), quiet()...)
	require.NoError(t, err)
	require.NoError(t, s.SetCurrentPath(context.Background(), []string{"r", "b", "c"}))

	sols, err := s.CollectAllSolutions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sols)
}

func TestSetCurrentPath_Jump(t *testing.T) {
	rec := algorithm.NewRecorder()
	g := scenario().AddEdge("a", "a1", "").AddEdge("a", "a2", "")
	s, err := depthfirst.New(
		graphgen.NewProblem[string, string](g, graphgen.GoalSet("a2", "c")),
		quiet(algorithm.WithObserver(rec))...,
	)
	require.NoError(t, err)
	ctx := context.Background()

	// Expand r, then jump straight to b.
	for s.Expansions() < 1 {
		_, err = s.NextEvent(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"r", "a"}, s.CurrentPath().States())
	require.NoError(t, s.SetCurrentPathByDecisions(ctx, []int{1}))
	assert.Equal(t, []string{"r", "b"}, s.CurrentPath().States())

	sols, err := s.CollectAllSolutions(ctx)
	require.NoError(t, err)
	require.Len(t, sols, 1, "a precedes b and is skipped after the jump")
	assert.Equal(t, "[r b c]", sols[0].Path.String())
	assert.Zero(t, g.Calls("a"))
}

func TestSetCurrentPath_Invalid(t *testing.T) {
	cyclic := func() *graphgen.Explicit[string, string] {
		return graphgen.NewExplicit[string, string]("r").
			AddEdge("r", "a", "").
			AddEdge("a", "b", "").
			AddEdge("b", "a", "").
			AddEdge("b", "r", "")
	}
	cases := []struct {
		name   string
		inject func(context.Context, *depthfirst.Search[string, string]) error
	}{
		{"empty", func(ctx context.Context, s *depthfirst.Search[string, string]) error {
			return s.SetCurrentPath(ctx, nil)
		}},
		{"not a root", func(ctx context.Context, s *depthfirst.Search[string, string]) error {
			return s.SetCurrentPath(ctx, []string{"a", "b"})
		}},
		{"not a successor", func(ctx context.Context, s *depthfirst.Search[string, string]) error {
			return s.SetCurrentPath(ctx, []string{"r", "b"})
		}},
		{"repeated state", func(ctx context.Context, s *depthfirst.Search[string, string]) error {
			return s.SetCurrentPath(ctx, []string{"r", "a", "b", "a"})
		}},
		{"root as successor", func(ctx context.Context, s *depthfirst.Search[string, string]) error {
			return s.SetCurrentPath(ctx, []string{"r", "a", "b", "r"})
		}},
		{"decision out of range", func(ctx context.Context, s *depthfirst.Search[string, string]) error {
			return s.SetCurrentPathByDecisions(ctx, []int{0, 1})
		}},
		{"negative decision", func(ctx context.Context, s *depthfirst.Search[string, string]) error {
			return s.SetCurrentPathByDecisions(ctx, []int{-1})
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := depthfirst.New(graphgen.NewProblem[string, string](cyclic(), never[string]()), quiet()...)
			require.NoError(t, err)

			err = tc.inject(context.Background(), s)
			assert.ErrorIs(t, err, algorithm.ErrInvalidPathInjection)
			assert.True(t, s.CurrentPath().IsEmpty(), "run is left untouched")
			assert.Equal(t, algorithm.Created, s.State())
		})
	}
}

func TestSetCurrentPath_AnotherRoute(t *testing.T) {
	// In graph search c hangs below a; reaching it through b is rejected.
	g := graphgen.NewExplicit[string, string]("r").
		AddEdge("r", "a", "").
		AddEdge("r", "b", "").
		AddEdge("a", "c", "").
		AddEdge("b", "c", "")
	s, err := depthfirst.New(graphgen.NewProblem[string, string](g, never[string]()), quiet(algorithm.WithGraphSearch())...)
	require.NoError(t, err)
	ctx := context.Background()
	for s.Expansions() < 2 {
		_, err = s.NextEvent(ctx)
		require.NoError(t, err)
	}

	err = s.SetCurrentPath(ctx, []string{"r", "b", "c"})
	assert.ErrorIs(t, err, algorithm.ErrInvalidPathInjection)
	assert.Equal(t, []string{"r", "a", "c"}, s.CurrentPath().States())
}

func TestSetCurrentPath_AfterTermination(t *testing.T) {
	s, err := depthfirst.New(graphgen.NewProblem[string, string](scenario(), never[string]()), quiet()...)
	require.NoError(t, err)
	require.NoError(t, algorithm.Drain(context.Background(), s))

	err = s.SetCurrentPath(context.Background(), []string{"r"})
	assert.ErrorIs(t, err, algorithm.ErrInvalidState)
	assert.True(t, s.CurrentPath().IsEmpty())
	assert.Nil(t, s.DecisionIndices())
}
