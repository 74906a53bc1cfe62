package evaluate

import (
	"cmp"
	"context"

	"github.com/katalvlaran/lvsearch/searchtree"
)

// Number is the set of numeric types usable as A* costs.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// PathEvaluator computes the f-value of a path.
type PathEvaluator[N comparable, A any, V cmp.Ordered] interface {
	Evaluate(ctx context.Context, path searchtree.Path[N, A]) (V, error)
}

// Func adapts a function to PathEvaluator.
type Func[N comparable, A any, V cmp.Ordered] func(ctx context.Context, path searchtree.Path[N, A]) (V, error)

// Evaluate calls f.
func (f Func[N, A, V]) Evaluate(ctx context.Context, path searchtree.Path[N, A]) (V, error) {
	return f(ctx, path)
}

// NodeEvaluator scores a single state.
type NodeEvaluator[N comparable, V cmp.Ordered] func(state N) (V, error)

// FromNode lifts a NodeEvaluator to a PathEvaluator over the path head.
func FromNode[N comparable, A any, V cmp.Ordered](fn NodeEvaluator[N, V]) PathEvaluator[N, A, V] {
	return Func[N, A, V](func(_ context.Context, path searchtree.Path[N, A]) (V, error) {
		var zero V
		if path.IsEmpty() {
			return zero, searchtree.ErrEmptyPath
		}

		return fn(path.Head())
	})
}

// Depth scores a path by its number of edges.
func Depth[N comparable, A any]() PathEvaluator[N, A, int] {
	return Func[N, A, int](func(_ context.Context, path searchtree.Path[N, A]) (int, error) {
		if path.IsEmpty() {
			return 0, searchtree.ErrEmptyPath
		}

		return path.Len() - 1, nil
	})
}

// Constant scores every path with v.
func Constant[N comparable, A any, V cmp.Ordered](v V) PathEvaluator[N, A, V] {
	return Func[N, A, V](func(context.Context, searchtree.Path[N, A]) (V, error) { return v, nil })
}

// CostFunc returns the cost of the edge from → to labelled arc.
type CostFunc[N comparable, A any, V Number] func(from, to N, arc A) V

// Heuristic estimates the remaining cost from state to the nearest goal.
type Heuristic[N comparable, V Number] func(state N) V

// AStar scores a path with g + h, where g sums cost over the path's edges and
// h estimates the remaining cost from the head. With a consistent heuristic
// the resulting f-values never decrease along a path.
func AStar[N comparable, A any, V Number](cost CostFunc[N, A, V], h Heuristic[N, V]) PathEvaluator[N, A, V] {
	return Func[N, A, V](func(_ context.Context, path searchtree.Path[N, A]) (V, error) {
		var g V
		if path.IsEmpty() {
			return g, searchtree.ErrEmptyPath
		}
		for i := 1; i < path.Len(); i++ {
			g += cost(path.Step(i-1).State, path.Step(i).State, path.Step(i).Arc)
		}
		if h == nil {
			return g, nil
		}

		return g + h(path.Head()), nil
	})
}

// PathCost returns the summed edge cost of path, the g-part of AStar.
func PathCost[N comparable, A any, V Number](path searchtree.Path[N, A], cost CostFunc[N, A, V]) V {
	var g V
	for i := 1; i < path.Len(); i++ {
		g += cost(path.Step(i-1).State, path.Step(i).State, path.Step(i).Arc)
	}

	return g
}
