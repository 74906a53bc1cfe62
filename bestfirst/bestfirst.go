package bestfirst

import (
	"cmp"
	"container/heap"
	"context"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/lvsearch/algorithm"
	"github.com/katalvlaran/lvsearch/evaluate"
	"github.com/katalvlaran/lvsearch/graphgen"
	"github.com/katalvlaran/lvsearch/searchtree"
)

// Search is one best-first run. It is created in state CREATED and driven by
// repeated NextEvent calls. A Search is not safe for concurrent use, except
// for Cancel, State and ID.
type Search[N comparable, A any, V cmp.Ordered] struct {
	*algorithm.Base

	problem graphgen.Problem[N, A]
	eval    evaluate.PathEvaluator[N, A, V]

	tree     *searchtree.Tree[N, A, V]
	open     openSet[V]
	inOpen   map[searchtree.Handle]*openItem[V]
	expanded map[searchtree.Handle]bool
	seq      uint64

	solutions    []algorithm.Solution[N, A, V]
	evalFailures []error
}

// New validates problem and eval and returns a run in state CREATED.
func New[N comparable, A any, V cmp.Ordered](
	problem graphgen.Problem[N, A],
	eval evaluate.PathEvaluator[N, A, V],
	opts ...algorithm.Option,
) (*Search[N, A, V], error) {
	return NewNamed(Name, problem, eval, opts...)
}

// NewNamed is New with a custom algorithm name, for strategies built on top
// of best-first search.
func NewNamed[N comparable, A any, V cmp.Ordered](
	name string,
	problem graphgen.Problem[N, A],
	eval evaluate.PathEvaluator[N, A, V],
	opts ...algorithm.Option,
) (*Search[N, A, V], error) {
	// 1. Validate inputs
	if err := problem.Validate(); err != nil {
		return nil, fmt.Errorf("bestfirst: %w", err)
	}
	if eval == nil {
		return nil, ErrNilEvaluator
	}

	// 2. Build the run
	return &Search[N, A, V]{
		Base:     algorithm.NewBase(name, opts...),
		problem:  problem,
		eval:     eval,
		tree:     searchtree.NewTree[N, A, V](),
		open:     make(openSet[V], 0, 64),
		inOpen:   make(map[searchtree.Handle]*openItem[V]),
		expanded: make(map[searchtree.Handle]bool),
	}, nil
}

// NextEvent returns the next event of the run. After the run terminated and
// every event was delivered it returns algorithm.ErrNoMoreEvents.
func (s *Search[N, A, V]) NextEvent(ctx context.Context) (algorithm.Event, error) {
	return s.Next(ctx, s.step)
}

// NextSolution pulls events until the next solution is found.
// Returns algorithm.ErrNoMoreEvents once the run is exhausted.
func (s *Search[N, A, V]) NextSolution(ctx context.Context) (algorithm.Solution[N, A, V], error) {
	for {
		ev, err := s.NextEvent(ctx)
		if err != nil {
			return algorithm.Solution[N, A, V]{}, err
		}
		if sol, ok := ev.(algorithm.SolutionCandidateFound[N, A, V]); ok {
			return sol.Solution, nil
		}
	}
}

// Call drains the run and returns the best solution: the one with the
// smallest label, the earliest among equals. Unscored solutions are only
// returned when no scored solution exists. Returns algorithm.ErrNoSolution
// when the run found nothing.
func (s *Search[N, A, V]) Call(ctx context.Context) (algorithm.Solution[N, A, V], error) {
	if err := algorithm.Drain(ctx, s); err != nil {
		return algorithm.Solution[N, A, V]{}, err
	}
	best, ok := algorithm.Best(s.solutions)
	if !ok {
		return best, algorithm.ErrNoSolution
	}

	return best, nil
}

// CollectAllSolutions drains the run and returns every solution in discovery order.
func (s *Search[N, A, V]) CollectAllSolutions(ctx context.Context) ([]algorithm.Solution[N, A, V], error) {
	if err := algorithm.Drain(ctx, s); err != nil {
		return nil, err
	}

	return s.Solutions(), nil
}

// Solutions returns the solutions found so far.
func (s *Search[N, A, V]) Solutions() []algorithm.Solution[N, A, V] {
	out := make([]algorithm.Solution[N, A, V], len(s.solutions))
	copy(out, s.solutions)

	return out
}

// EvalFailures returns the evaluation errors of dropped nodes; each wraps
// algorithm.ErrEvaluationFailed.
func (s *Search[N, A, V]) EvalFailures() []error {
	out := make([]error, len(s.evalFailures))
	copy(out, s.evalFailures)

	return out
}

// OpenLen returns the number of nodes waiting for expansion.
func (s *Search[N, A, V]) OpenLen() int { return s.open.Len() }

// Node returns a copy of the search node wrapping state.
func (s *Search[N, A, V]) Node(state N) (searchtree.Node[N, A, V], bool) {
	h, ok := s.tree.Lookup(state)
	if !ok {
		return searchtree.Node[N, A, V]{}, false
	}

	return *s.tree.Node(h), true
}

// step performs one unit of work: initialization or one node expansion.
func (s *Search[N, A, V]) step(ctx context.Context) error {
	if s.State() == algorithm.Created {
		return s.initialize(ctx)
	}

	// 1. Exhaustion and budget
	if s.open.Len() == 0 {
		s.Finish(true)
		return nil
	}
	if s.BudgetExhausted() {
		s.Logger().Info("expansion budget exhausted", slog.Int("open", s.open.Len()))
		s.Finish(false)
		return nil
	}

	// 2. Pop the minimum node
	item := heap.Pop(&s.open).(*openItem[V])
	delete(s.inOpen, item.node)

	// 3. Mark it expanded; a second expansion means the tree is broken
	if s.expanded[item.node] {
		return s.Invariant("node %v selected for expansion twice", s.tree.State(item.node))
	}
	s.expanded[item.node] = true

	// 4. Expand
	return s.expand(ctx, item.node)
}

// initialize activates the run, materializes the roots and seeds the open set.
func (s *Search[N, A, V]) initialize(ctx context.Context) error {
	if err := s.Activate(ctx); err != nil {
		return err
	}

	roots, err := algorithm.CallBounded(ctx, s.Base, "roots", s.problem.Graph.Roots)
	if err != nil {
		return algorithm.GenerationError(err, "root generation")
	}
	if len(roots) == 0 {
		return fmt.Errorf("%w: %w", algorithm.ErrGenerationFailed, graphgen.ErrNoRoots)
	}

	handles := make([]searchtree.Handle, 0, len(roots))
	accepted := make([]N, 0, len(roots))
	for _, r := range roots {
		h, err := s.tree.AddRoot(r)
		if err != nil {
			if s.Options().GraphSearch {
				continue
			}
			return fmt.Errorf("%w: %w", algorithm.ErrGenerationFailed, err)
		}
		handles = append(handles, h)
		accepted = append(accepted, r)
	}
	s.Emit(algorithm.GraphInitialized[N]{EventMeta: s.NewMeta(), Roots: accepted})

	var zero V
	for _, h := range handles {
		if s.problem.IsGoal(s.tree.State(h), func() searchtree.Path[N, A] { return s.tree.Path(h) }) {
			s.solve(h, zero, false)
			continue
		}
		s.push(h, zero, false)
	}

	return nil
}

// expand generates the successors of h and decides the fate of each child.
func (s *Search[N, A, V]) expand(ctx context.Context, h searchtree.Handle) error {
	state := s.tree.State(h)
	s.RecordExpansion()

	var succ []graphgen.Successor[N, A]
	if !s.Options().DepthExhausted(s.tree.Node(h).Depth) {
		var err error
		succ, err = algorithm.CallBounded(ctx, s.Base, "expand",
			func(ctx context.Context) ([]graphgen.Successor[N, A], error) {
				return s.problem.Graph.Successors(ctx, state)
			})
		if err != nil {
			return algorithm.GenerationError(err, fmt.Sprintf("successors of %v", state))
		}
	}

	for _, sc := range succ {
		if err := s.addSuccessor(ctx, h, sc); err != nil {
			return err
		}
	}

	s.tree.SetType(h, searchtree.Closed)
	s.Emit(algorithm.NodeTypeSwitch[N]{EventMeta: s.NewMeta(), Node: state, Type: searchtree.Closed})
	s.Emit(algorithm.NodeExpansionCompleted[N]{EventMeta: s.NewMeta(), Node: state})
	s.Logger().Debug("node expanded",
		slog.Any("node", state),
		slog.Int("successors", len(succ)),
		slog.Int("open", s.open.Len()),
	)

	return nil
}

// addSuccessor inserts one child of parent: goal children become solutions,
// scored children enter the open set, failed evaluations drop the child.
func (s *Search[N, A, V]) addSuccessor(ctx context.Context, parent searchtree.Handle, sc graphgen.Successor[N, A]) error {
	// 1. Duplicates
	if existing, ok := s.tree.Lookup(sc.State); ok {
		if !s.Options().GraphSearch {
			return s.Invariant("state %v generated twice in tree search", sc.State)
		}
		return s.relax(ctx, parent, existing, sc)
	}

	// 2. New child
	child, err := s.tree.AddChild(parent, sc.State, sc.Arc)
	if err != nil {
		return s.Invariant("adding child %v: %v", sc.State, err)
	}
	s.Emit(algorithm.NodeAdded[N, A]{
		EventMeta: s.NewMeta(),
		Parent:    s.tree.State(parent),
		Child:     sc.State,
		Arc:       sc.Arc,
		Tag:       sc.Tag,
		Type:      searchtree.Open,
	})

	// 3. Goal test and evaluation
	path := s.tree.Path(child)
	goal := s.problem.IsGoal(sc.State, func() searchtree.Path[N, A] { return path })
	label, err := s.eval.Evaluate(ctx, path)
	if err != nil {
		if algorithm.IsAbort(err) {
			return algorithm.GenerationError(err, fmt.Sprintf("evaluation of %v", sc.State))
		}
		if goal {
			var zero V
			s.solve(child, zero, false)
			return nil
		}
		s.discard(child, err)
		return nil
	}
	s.tree.SetLabel(child, label)

	if goal {
		s.solve(child, label, true)
		return nil
	}
	s.push(child, label, true)

	return nil
}

// relax handles a duplicate in graph search: an open node reached more
// cheaply is re-parented, anything else is ignored.
func (s *Search[N, A, V]) relax(ctx context.Context, parent, existing searchtree.Handle, sc graphgen.Successor[N, A]) error {
	item, open := s.inOpen[existing]
	if !open || s.tree.Node(existing).IsRoot() {
		return nil
	}

	path := s.tree.Path(parent).Extend(sc.State, sc.Arc)
	label, err := s.eval.Evaluate(ctx, path)
	if err != nil {
		if algorithm.IsAbort(err) {
			return algorithm.GenerationError(err, fmt.Sprintf("evaluation of %v", sc.State))
		}
		s.Logger().Debug("ignoring unscorable alternative route", slog.Any("node", sc.State), slog.Any("error", err))
		return nil
	}
	if item.labeled && !cmp.Less(label, item.label) {
		return nil
	}

	if err = s.tree.Reparent(existing, parent, sc.Arc); err != nil {
		return s.Invariant("reparenting %v: %v", sc.State, err)
	}
	s.tree.SetLabel(existing, label)
	item.label = label
	item.labeled = true
	heap.Fix(&s.open, item.index)

	return nil
}

func (s *Search[N, A, V]) push(h searchtree.Handle, label V, labeled bool) {
	item := &openItem[V]{node: h, label: label, labeled: labeled, seq: s.seq}
	s.seq++
	heap.Push(&s.open, item)
	s.inOpen[h] = item
}

func (s *Search[N, A, V]) solve(h searchtree.Handle, label V, scored bool) {
	n := s.tree.Node(h)
	n.Goal = true
	n.Type = searchtree.Solution
	sol := algorithm.Solution[N, A, V]{Path: s.tree.Path(h), Score: label, Scored: scored}
	s.solutions = append(s.solutions, sol)

	s.Emit(algorithm.NodeTypeSwitch[N]{EventMeta: s.NewMeta(), Node: n.State, Type: searchtree.Solution})
	s.Emit(algorithm.SolutionCandidateFound[N, A, V]{EventMeta: s.NewMeta(), Solution: sol})
	s.Logger().Debug("solution found", slog.String("path", sol.Path.String()), slog.Any("score", label))
}

func (s *Search[N, A, V]) discard(h searchtree.Handle, cause error) {
	state := s.tree.State(h)
	evalErr := &algorithm.EvalError{Node: state, Err: cause}
	s.evalFailures = append(s.evalFailures, evalErr)
	s.Logger().Warn("dropping node after evaluation failure", slog.Any("node", state), slog.Any("error", cause))

	s.tree.SetType(h, searchtree.Closed)
	s.Emit(algorithm.NodeTypeSwitch[N]{EventMeta: s.NewMeta(), Node: state, Type: searchtree.Closed})
	s.Emit(algorithm.NodeRemoved[N]{EventMeta: s.NewMeta(), Node: state})
}

var _ algorithm.EventSource = (*Search[int, int, int])(nil)
