package depthfirst

import (
	"context"
	"fmt"
	"slices"

	"github.com/katalvlaran/lvsearch/algorithm"
	"github.com/katalvlaran/lvsearch/graphgen"
	"github.com/katalvlaran/lvsearch/searchtree"
)

// SetCurrentPath moves the search to the path visiting states in order,
// starting at a root. Every state must be a successor of its predecessor.
//
// Before the first NextEvent the path seeds the run. On an active run the
// search jumps to the path and continues depth-first below its head; nodes
// expanded earlier are walked again from the successor cache without new
// events. Siblings ordered before a chosen successor are not explored, and
// nodes of the previous path that are not on the new one stay open.
//
// Errors:
//   - algorithm.ErrInvalidState         the run is over.
//   - algorithm.ErrInvalidPathInjection states do not form a successor chain.
//   - generation errors from validating uncached nodes.
func (s *Search[N, A]) SetCurrentPath(ctx context.Context, states []N) error {
	if err := s.checkInjectable(); err != nil {
		return err
	}
	pregen := make(map[N][]graphgen.Successor[N, A])
	if err := s.validate(ctx, states, pregen); err != nil {
		return err
	}

	return s.commit(states, pregen)
}

// SetCurrentPathByDecisions moves the search to the path obtained by picking,
// from the current root (the first root before activation), successor
// decisions[i] at depth i. It is the inverse of DecisionIndices.
func (s *Search[N, A]) SetCurrentPathByDecisions(ctx context.Context, decisions []int) error {
	if err := s.checkInjectable(); err != nil {
		return err
	}

	// 1. Starting root
	roots, err := s.rootStates(ctx)
	if err != nil {
		return err
	}
	var root N
	switch {
	case s.State() == algorithm.Active && len(s.path) > 0:
		root = s.tree.State(s.path[0].node)
	case s.State() == algorithm.Created && s.seed != nil:
		root = s.seed[0]
	default:
		root = roots[0]
	}

	// 2. Resolve every decision against the successor lists
	pregen := make(map[N][]graphgen.Successor[N, A])
	states := append(make([]N, 0, len(decisions)+1), root)
	cur := root
	for depth, d := range decisions {
		kids, err := s.childStates(ctx, cur, pregen)
		if err != nil {
			return err
		}
		if d < 0 || d >= len(kids) {
			return fmt.Errorf("%w: decision %d at depth %d out of range [0,%d) for %v",
				algorithm.ErrInvalidPathInjection, d, depth, len(kids), cur)
		}
		cur = kids[d]
		states = append(states, cur)
	}

	// 3. Same checks as an explicit path
	if err = s.validate(ctx, states, pregen); err != nil {
		return err
	}

	return s.commit(states, pregen)
}

func (s *Search[N, A]) checkInjectable() error {
	if st := s.State(); st.Done() {
		return fmt.Errorf("%w: cannot set the path of a %s run", algorithm.ErrInvalidState, st)
	}

	return nil
}

// rootStates returns the root states, generating them once before activation.
func (s *Search[N, A]) rootStates(ctx context.Context) ([]N, error) {
	if s.State() != algorithm.Created {
		out := make([]N, len(s.roots))
		for i, h := range s.roots {
			out[i] = s.tree.State(h)
		}
		return out, nil
	}
	if s.pendingRoots == nil {
		roots, err := algorithm.CallBounded(ctx, s.Base, "roots", s.problem.Graph.Roots)
		if err != nil {
			return nil, algorithm.GenerationError(err, "root generation")
		}
		if len(roots) == 0 {
			return nil, fmt.Errorf("%w: %w", algorithm.ErrGenerationFailed, graphgen.ErrNoRoots)
		}
		s.pendingRoots = roots
	}

	return s.pendingRoots, nil
}

// childStates returns the successor states of state, from the cache when it
// was expanded and from the generator otherwise. Generated lists are kept in
// pregen so that commit does not call the generator again.
func (s *Search[N, A]) childStates(ctx context.Context, state N, pregen map[N][]graphgen.Successor[N, A]) ([]N, error) {
	if h, ok := s.tree.Lookup(state); ok {
		if kids, cached := s.cache[h]; cached {
			out := make([]N, len(kids))
			for i, k := range kids {
				out[i] = s.tree.State(k)
			}
			return out, nil
		}
	}
	succ, ok := pregen[state]
	if !ok {
		var err error
		succ, err = algorithm.CallBounded(ctx, s.Base, "inject",
			func(ctx context.Context) ([]graphgen.Successor[N, A], error) {
				return s.problem.Graph.Successors(ctx, state)
			})
		if err != nil {
			return nil, algorithm.GenerationError(err, fmt.Sprintf("successors of %v", state))
		}
		pregen[state] = succ
	}
	out := make([]N, len(succ))
	for i, sc := range succ {
		out[i] = sc.State
	}

	return out, nil
}

// validate checks that states is a successor chain from a root that can be
// grafted onto the current tree. It does not modify the run.
func (s *Search[N, A]) validate(ctx context.Context, states []N, pregen map[N][]graphgen.Successor[N, A]) error {
	if len(states) == 0 {
		return fmt.Errorf("%w: empty path", algorithm.ErrInvalidPathInjection)
	}
	roots, err := s.rootStates(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(roots, states[0]) {
		return fmt.Errorf("%w: %v is not a root", algorithm.ErrInvalidPathInjection, states[0])
	}

	seen := map[N]bool{states[0]: true}
	for i := 1; i < len(states); i++ {
		prev, cur := states[i-1], states[i]
		if seen[cur] {
			return fmt.Errorf("%w: %v appears twice", algorithm.ErrInvalidPathInjection, cur)
		}
		seen[cur] = true

		kids, err := s.childStates(ctx, prev, pregen)
		if err != nil {
			return err
		}
		if !slices.Contains(kids, cur) {
			return fmt.Errorf("%w: %v is not a successor of %v", algorithm.ErrInvalidPathInjection, cur, prev)
		}
		if slices.Contains(roots, cur) {
			return fmt.Errorf("%w: root %v cannot follow %v", algorithm.ErrInvalidPathInjection, cur, prev)
		}
		// a state already in the tree must hang below prev
		if h, ok := s.tree.Lookup(cur); ok {
			ph, known := s.tree.Lookup(prev)
			if !known || s.tree.Node(h).Parent != ph {
				return fmt.Errorf("%w: %v was already reached by another route",
					algorithm.ErrInvalidPathInjection, cur)
			}
		}
	}

	return nil
}

// commit stores a validated path as the seed or jumps to it.
func (s *Search[N, A]) commit(states []N, pregen map[N][]graphgen.Successor[N, A]) error {
	if s.State() == algorithm.Created {
		s.seed = slices.Clone(states)
		s.pregen = pregen
		return nil
	}

	return s.follow(states, pregen)
}

// follow makes states the current path, expanding the nodes along it that
// were never expanded.
func (s *Search[N, A]) follow(states []N, pregen map[N][]graphgen.Successor[N, A]) error {
	idx := slices.IndexFunc(s.roots, func(h searchtree.Handle) bool { return s.tree.State(h) == states[0] })
	if idx < 0 {
		return s.Invariant("injected root %v is not in the tree", states[0])
	}
	frames := []frame{{node: s.roots[idx], choice: idx}}

	for i := 1; i < len(states); i++ {
		parent := frames[i-1].node
		kids, cached := s.cache[parent]
		if !cached {
			var err error
			s.RecordExpansion()
			if kids, err = s.materialize(parent, pregen[states[i-1]]); err != nil {
				return err
			}
			s.Emit(algorithm.NodeExpansionCompleted[N]{EventMeta: s.NewMeta(), Node: states[i-1]})
		}
		choice := slices.IndexFunc(kids, func(h searchtree.Handle) bool { return s.tree.State(h) == states[i] })
		if choice < 0 {
			return s.Invariant("injected state %v missing below %v", states[i], states[i-1])
		}
		frames = append(frames, frame{node: kids[choice], choice: choice})
	}

	s.path = frames
	s.trueLeaf = false

	return nil
}

// seedPath rebuilds the seeded path from the validation results.
func (s *Search[N, A]) seedPath() searchtree.Path[N, A] {
	if len(s.seed) == 0 {
		return searchtree.Path[N, A]{}
	}
	p := searchtree.NewPath[N, A](s.seed[0])
	for i := 1; i < len(s.seed); i++ {
		for _, sc := range s.pregen[s.seed[i-1]] {
			if sc.State == s.seed[i] {
				p = p.Extend(sc.State, sc.Arc)
				break
			}
		}
	}

	return p
}

// seedDecisions returns the decision indices of the seeded path.
func (s *Search[N, A]) seedDecisions() []int {
	if len(s.seed) == 0 {
		return nil
	}
	out := make([]int, 0, len(s.seed)-1)
	for i := 1; i < len(s.seed); i++ {
		out = append(out, slices.IndexFunc(s.pregen[s.seed[i-1]], func(sc graphgen.Successor[N, A]) bool {
			return sc.State == s.seed[i]
		}))
	}

	return out
}
