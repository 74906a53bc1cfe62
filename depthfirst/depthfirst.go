package depthfirst

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/lvsearch/algorithm"
	"github.com/katalvlaran/lvsearch/graphgen"
	"github.com/katalvlaran/lvsearch/searchtree"
)

// Solution is a goal path found by depth-first search. Its Score is the
// depth of the goal, so Call prefers shallow solutions.
type Solution[N comparable, A any] = algorithm.Solution[N, A, int]

// Search is one depth-first run. It is not safe for concurrent use, except
// for Cancel, State and ID.
type Search[N comparable, A any] struct {
	*algorithm.Base

	problem graphgen.Problem[N, A]
	tree    *searchtree.Tree[N, A, struct{}]
	roots   []searchtree.Handle
	cache   map[searchtree.Handle][]searchtree.Handle
	path    []frame
	// trueLeaf is set when the head was a goal or a dead end and the next
	// step must backtrack.
	trueLeaf bool

	// seeding state, only used before activation
	pendingRoots []N
	seed         []N
	pregen       map[N][]graphgen.Successor[N, A]

	solutions []Solution[N, A]
}

// New validates problem and returns a run in state CREATED.
func New[N comparable, A any](problem graphgen.Problem[N, A], opts ...algorithm.Option) (*Search[N, A], error) {
	if err := problem.Validate(); err != nil {
		return nil, fmt.Errorf("depthfirst: %w", err)
	}

	return &Search[N, A]{
		Base:    algorithm.NewBase(Name, opts...),
		problem: problem,
		tree:    searchtree.NewTree[N, A, struct{}](),
		cache:   make(map[searchtree.Handle][]searchtree.Handle),
	}, nil
}

// NextEvent returns the next event of the run. After the run terminated and
// every event was delivered it returns algorithm.ErrNoMoreEvents.
func (s *Search[N, A]) NextEvent(ctx context.Context) (algorithm.Event, error) {
	return s.Next(ctx, s.step)
}

// NextSolution pulls events until the next solution is found.
// Returns algorithm.ErrNoMoreEvents once the run is exhausted.
func (s *Search[N, A]) NextSolution(ctx context.Context) (Solution[N, A], error) {
	for {
		ev, err := s.NextEvent(ctx)
		if err != nil {
			return Solution[N, A]{}, err
		}
		if sol, ok := ev.(algorithm.SolutionCandidateFound[N, A, int]); ok {
			return sol.Solution, nil
		}
	}
}

// Call drains the run and returns the shallowest solution, the first found
// among equals. Returns algorithm.ErrNoSolution when the run found nothing.
func (s *Search[N, A]) Call(ctx context.Context) (Solution[N, A], error) {
	if err := algorithm.Drain(ctx, s); err != nil {
		return Solution[N, A]{}, err
	}
	best, ok := algorithm.Best(s.solutions)
	if !ok {
		return best, algorithm.ErrNoSolution
	}

	return best, nil
}

// CollectAllSolutions drains the run and returns every solution in discovery order.
func (s *Search[N, A]) CollectAllSolutions(ctx context.Context) ([]Solution[N, A], error) {
	if err := algorithm.Drain(ctx, s); err != nil {
		return nil, err
	}

	return s.Solutions(), nil
}

// Solutions returns the solutions found so far.
func (s *Search[N, A]) Solutions() []Solution[N, A] {
	out := make([]Solution[N, A], len(s.solutions))
	copy(out, s.solutions)

	return out
}

// CurrentPath returns the path from the current root to the head. Before
// activation it returns the seeded path, if any; once the run is over it is
// empty.
func (s *Search[N, A]) CurrentPath() searchtree.Path[N, A] {
	if s.State() == algorithm.Created {
		return s.seedPath()
	}
	if len(s.path) == 0 {
		return searchtree.Path[N, A]{}
	}

	return s.tree.Path(s.path[len(s.path)-1].node)
}

// DecisionIndices returns, for every edge of the current path, the index of
// the chosen successor in its parent's successor list.
func (s *Search[N, A]) DecisionIndices() []int {
	if s.State() == algorithm.Created {
		return s.seedDecisions()
	}
	if len(s.path) == 0 {
		return nil
	}
	out := make([]int, 0, len(s.path)-1)
	for _, f := range s.path[1:] {
		out = append(out, f.choice)
	}

	return out
}

// step performs one unit of work: initialization, backtracking or a visit.
func (s *Search[N, A]) step(ctx context.Context) error {
	if s.State() == algorithm.Created {
		return s.initialize(ctx)
	}
	if s.trueLeaf && !s.backtrack() {
		s.Finish(true)
		return nil
	}

	return s.visit(ctx)
}

// initialize activates the run, materializes the roots and establishes the
// first path, replaying a seeded path if one was set.
func (s *Search[N, A]) initialize(ctx context.Context) error {
	if err := s.Activate(ctx); err != nil {
		return err
	}

	// 1. Roots, reusing those fetched while validating a seed
	roots := s.pendingRoots
	if roots == nil {
		var err error
		roots, err = algorithm.CallBounded(ctx, s.Base, "roots", s.problem.Graph.Roots)
		if err != nil {
			return algorithm.GenerationError(err, "root generation")
		}
	}
	s.pendingRoots = nil
	if len(roots) == 0 {
		return fmt.Errorf("%w: %w", algorithm.ErrGenerationFailed, graphgen.ErrNoRoots)
	}

	accepted := make([]N, 0, len(roots))
	for _, r := range roots {
		h, err := s.tree.AddRoot(r)
		if err != nil {
			if s.Options().GraphSearch {
				continue
			}
			return fmt.Errorf("%w: %w", algorithm.ErrGenerationFailed, err)
		}
		s.roots = append(s.roots, h)
		accepted = append(accepted, r)
	}
	s.Emit(algorithm.GraphInitialized[N]{EventMeta: s.NewMeta(), Roots: accepted})

	// 2. Seeded path or the first root
	if s.seed != nil {
		seed, pregen := s.seed, s.pregen
		s.seed, s.pregen = nil, nil
		return s.follow(seed, pregen)
	}
	s.path = []frame{{node: s.roots[0], choice: 0}}

	return nil
}

// visit tests the head for goal status and expands it otherwise.
func (s *Search[N, A]) visit(ctx context.Context) error {
	h := s.path[len(s.path)-1].node
	node := *s.tree.Node(h)

	// 1. After a jump the head may already be known: walk the cached subtree
	// again without regenerating or reporting anything twice.
	if node.Type == searchtree.Solution {
		s.trueLeaf = true
		return nil
	}
	if kids, expanded := s.cache[h]; expanded {
		if len(kids) == 0 {
			s.trueLeaf = true
			return nil
		}
		s.path = append(s.path, frame{node: kids[0], choice: 0})
		return nil
	}

	// 2. Goal test
	if s.problem.IsGoal(node.State, func() searchtree.Path[N, A] { return s.tree.Path(h) }) {
		s.solve(h)
		s.trueLeaf = true
		return nil
	}

	// 3. Budget
	if s.BudgetExhausted() {
		s.Logger().Info("expansion budget exhausted", slog.Int("depth", node.Depth))
		s.Finish(false)
		return nil
	}

	// 4. Generate and cache the successors
	s.RecordExpansion()
	var succ []graphgen.Successor[N, A]
	if !s.Options().DepthExhausted(node.Depth) {
		var err error
		succ, err = algorithm.CallBounded(ctx, s.Base, "expand",
			func(ctx context.Context) ([]graphgen.Successor[N, A], error) {
				return s.problem.Graph.Successors(ctx, node.State)
			})
		if err != nil {
			return algorithm.GenerationError(err, fmt.Sprintf("successors of %v", node.State))
		}
	}
	children, err := s.materialize(h, succ)
	if err != nil {
		return err
	}
	s.Logger().Debug("node expanded",
		slog.Any("node", node.State),
		slog.Int("successors", len(children)),
		slog.Int("depth", node.Depth),
	)

	// 5. Dead end, or descend into the first successor
	if len(children) == 0 {
		s.tree.SetType(h, searchtree.DeadEnd)
		s.Emit(algorithm.NodeTypeSwitch[N]{EventMeta: s.NewMeta(), Node: node.State, Type: searchtree.DeadEnd})
		s.Emit(algorithm.NodeExpansionCompleted[N]{EventMeta: s.NewMeta(), Node: node.State})
		s.trueLeaf = true
		return nil
	}
	s.path = append(s.path, frame{node: children[0], choice: 0})
	s.Emit(algorithm.NodeExpansionCompleted[N]{EventMeta: s.NewMeta(), Node: node.State})

	return nil
}

// materialize adds the successors of h to the tree in order, emits NodeAdded
// for each and caches the resulting handles.
func (s *Search[N, A]) materialize(h searchtree.Handle, succ []graphgen.Successor[N, A]) ([]searchtree.Handle, error) {
	parent := s.tree.State(h)
	children := make([]searchtree.Handle, 0, len(succ))
	for _, sc := range succ {
		if _, dup := s.tree.Lookup(sc.State); dup {
			if s.Options().GraphSearch {
				continue
			}
			return nil, s.Invariant("state %v generated twice in tree search", sc.State)
		}
		c, err := s.tree.AddChild(h, sc.State, sc.Arc)
		if err != nil {
			return nil, s.Invariant("adding child %v: %v", sc.State, err)
		}
		s.Emit(algorithm.NodeAdded[N, A]{
			EventMeta: s.NewMeta(),
			Parent:    parent,
			Child:     sc.State,
			Arc:       sc.Arc,
			Tag:       sc.Tag,
			Type:      searchtree.Open,
		})
		children = append(children, c)
	}
	s.cache[h] = children

	return children, nil
}

// backtrack pops nodes until an ancestor has an untried successor and
// descends into it. It reports false when every root is exhausted.
func (s *Search[N, A]) backtrack() bool {
	for len(s.path) > 0 {
		top := s.path[len(s.path)-1]
		s.path = s.path[:len(s.path)-1]
		s.close(top.node)

		siblings := s.roots
		if len(s.path) > 0 {
			siblings = s.cache[s.path[len(s.path)-1].node]
		}
		if next := top.choice + 1; next < len(siblings) {
			s.path = append(s.path, frame{node: siblings[next], choice: next})
			s.trueLeaf = false
			return true
		}
	}
	s.trueLeaf = false

	return false
}

// close marks a popped node as closed unless it is a solution.
func (s *Search[N, A]) close(h searchtree.Handle) {
	n := s.tree.Node(h)
	if n.Type == searchtree.Solution || n.Type == searchtree.Closed {
		return
	}
	s.tree.SetType(h, searchtree.Closed)
	s.Emit(algorithm.NodeTypeSwitch[N]{EventMeta: s.NewMeta(), Node: n.State, Type: searchtree.Closed})
}

func (s *Search[N, A]) solve(h searchtree.Handle) {
	n := s.tree.Node(h)
	n.Goal = true
	n.Type = searchtree.Solution
	sol := Solution[N, A]{Path: s.tree.Path(h), Score: n.Depth, Scored: true}
	s.solutions = append(s.solutions, sol)

	s.Emit(algorithm.NodeTypeSwitch[N]{EventMeta: s.NewMeta(), Node: n.State, Type: searchtree.Solution})
	s.Emit(algorithm.SolutionCandidateFound[N, A, int]{EventMeta: s.NewMeta(), Solution: sol})
	s.Logger().Debug("solution found", slog.String("path", sol.Path.String()))
}

var _ algorithm.EventSource = (*Search[int, int])(nil)
