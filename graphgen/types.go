package graphgen

import (
	"context"
	"errors"

	"github.com/katalvlaran/lvsearch/searchtree"
)

// Sentinel errors for problem definitions.
var (
	// ErrNilGraph is returned when a Problem has no graph generator.
	ErrNilGraph = errors.New("graphgen: graph generator is nil")

	// ErrNoGoalTester is returned when a Problem has neither goal tester.
	ErrNoGoalTester = errors.New("graphgen: no goal tester configured")

	// ErrAmbiguousGoalTester is returned when both goal testers are set.
	ErrAmbiguousGoalTester = errors.New("graphgen: both node and path goal testers configured")

	// ErrNoRoots is returned by root generators that have nothing to offer.
	ErrNoRoots = errors.New("graphgen: root generator returned no roots")
)

// Successor describes one outgoing edge produced by expansion: the target
// state, the arc label, and an optional free-form node-type tag.
type Successor[N comparable, A any] struct {
	State N
	Arc   A
	Tag   string
}

// RootGenerator yields the start state(s) of a run, in exploration order.
type RootGenerator[N comparable] interface {
	Roots(ctx context.Context) ([]N, error)
}

// SuccessorGenerator expands a state into its ordered successors.
type SuccessorGenerator[N comparable, A any] interface {
	Successors(ctx context.Context, state N) ([]Successor[N, A], error)
}

// GraphGenerator bundles root and successor generation.
type GraphGenerator[N comparable, A any] interface {
	RootGenerator[N]
	SuccessorGenerator[N, A]
}

// NodeGoalTester decides goal status from the state alone.
type NodeGoalTester[N comparable] interface {
	IsGoal(state N) bool
}

// PathGoalTester decides goal status from the root-to-node path, for problems
// where the route taken matters.
type PathGoalTester[N comparable, A any] interface {
	IsGoalPath(path searchtree.Path[N, A]) bool
}

// Problem is the input of every search engine: a graph and exactly one goal tester.
type Problem[N comparable, A any] struct {
	Graph    GraphGenerator[N, A]
	NodeGoal NodeGoalTester[N]
	PathGoal PathGoalTester[N, A]
}

// NewProblem builds a Problem with a node-based goal tester.
func NewProblem[N comparable, A any](g GraphGenerator[N, A], goal NodeGoalTester[N]) Problem[N, A] {
	return Problem[N, A]{Graph: g, NodeGoal: goal}
}

// NewPathProblem builds a Problem with a path-based goal tester.
func NewPathProblem[N comparable, A any](g GraphGenerator[N, A], goal PathGoalTester[N, A]) Problem[N, A] {
	return Problem[N, A]{Graph: g, PathGoal: goal}
}

// Validate checks that the problem is complete and unambiguous.
func (p Problem[N, A]) Validate() error {
	if p.Graph == nil {
		return ErrNilGraph
	}
	switch {
	case p.NodeGoal == nil && p.PathGoal == nil:
		return ErrNoGoalTester
	case p.NodeGoal != nil && p.PathGoal != nil:
		return ErrAmbiguousGoalTester
	}

	return nil
}

// IsGoal applies the configured goal tester. path is only invoked for
// path-based testers, so node-based problems never pay for path reconstruction.
func (p Problem[N, A]) IsGoal(state N, path func() searchtree.Path[N, A]) bool {
	if p.NodeGoal != nil {
		return p.NodeGoal.IsGoal(state)
	}

	return p.PathGoal.IsGoalPath(path())
}
