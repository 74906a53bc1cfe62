package graphgen

import (
	"context"

	"github.com/katalvlaran/lvsearch/searchtree"
)

// RootFunc adapts a function to RootGenerator.
type RootFunc[N comparable] func(ctx context.Context) ([]N, error)

// Roots calls f.
func (f RootFunc[N]) Roots(ctx context.Context) ([]N, error) { return f(ctx) }

// SingleRoot returns a RootGenerator yielding exactly root.
func SingleRoot[N comparable](root N) RootGenerator[N] {
	return RootFunc[N](func(context.Context) ([]N, error) { return []N{root}, nil })
}

// MultiRoot returns a RootGenerator yielding roots in order.
// An empty roots list yields ErrNoRoots when asked.
func MultiRoot[N comparable](roots ...N) RootGenerator[N] {
	cp := make([]N, len(roots))
	copy(cp, roots)

	return RootFunc[N](func(context.Context) ([]N, error) {
		if len(cp) == 0 {
			return nil, ErrNoRoots
		}
		out := make([]N, len(cp))
		copy(out, cp)

		return out, nil
	})
}

// SuccessorFunc adapts a function to SuccessorGenerator.
type SuccessorFunc[N comparable, A any] func(ctx context.Context, state N) ([]Successor[N, A], error)

// Successors calls f.
func (f SuccessorFunc[N, A]) Successors(ctx context.Context, state N) ([]Successor[N, A], error) {
	return f(ctx, state)
}

type composed[N comparable, A any] struct {
	RootGenerator[N]
	SuccessorGenerator[N, A]
}

// Compose bundles a root and a successor generator into a GraphGenerator.
func Compose[N comparable, A any](roots RootGenerator[N], succ SuccessorGenerator[N, A]) GraphGenerator[N, A] {
	return composed[N, A]{RootGenerator: roots, SuccessorGenerator: succ}
}

// GoalFunc adapts a predicate on states to NodeGoalTester.
type GoalFunc[N comparable] func(state N) bool

// IsGoal calls f.
func (f GoalFunc[N]) IsGoal(state N) bool { return f(state) }

// PathGoalFunc adapts a predicate on paths to PathGoalTester.
type PathGoalFunc[N comparable, A any] func(path searchtree.Path[N, A]) bool

// IsGoalPath calls f.
func (f PathGoalFunc[N, A]) IsGoalPath(path searchtree.Path[N, A]) bool { return f(path) }

// GoalSet returns a NodeGoalTester accepting exactly the given states.
func GoalSet[N comparable](goals ...N) NodeGoalTester[N] {
	set := make(map[N]struct{}, len(goals))
	for _, g := range goals {
		set[g] = struct{}{}
	}

	return GoalFunc[N](func(state N) bool {
		_, ok := set[state]

		return ok
	})
}
