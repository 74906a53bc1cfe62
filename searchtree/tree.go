package searchtree

import "fmt"

// Tree is an arena of search nodes indexed by Handle and by state.
//
// A Tree is owned by exactly one search run and is not safe for concurrent use.
type Tree[N comparable, A any, V any] struct {
	nodes []Node[N, A, V]
	index map[N]Handle
	roots []Handle
}

// NewTree returns an empty tree.
func NewTree[N comparable, A any, V any]() *Tree[N, A, V] {
	return &Tree[N, A, V]{
		nodes: make([]Node[N, A, V], 0, 64),
		index: make(map[N]Handle, 64),
	}
}

// Len returns the number of nodes ever added.
func (t *Tree[N, A, V]) Len() int { return len(t.nodes) }

// Roots returns the root handles in insertion order.
func (t *Tree[N, A, V]) Roots() []Handle {
	out := make([]Handle, len(t.roots))
	copy(out, t.roots)

	return out
}

// AddRoot inserts a root node for state.
// Returns ErrDuplicateState if the state is already in the tree.
func (t *Tree[N, A, V]) AddRoot(state N) (Handle, error) {
	if _, ok := t.index[state]; ok {
		return NoHandle, fmt.Errorf("%w: %v", ErrDuplicateState, state)
	}
	h := Handle(len(t.nodes))
	t.nodes = append(t.nodes, Node[N, A, V]{State: state, Parent: NoHandle, Type: Open})
	t.index[state] = h
	t.roots = append(t.roots, h)

	return h, nil
}

// AddChild inserts a child of parent reached through arc.
// Returns ErrUnknownHandle for a bad parent and ErrDuplicateState if the
// state is already in the tree.
func (t *Tree[N, A, V]) AddChild(parent Handle, state N, arc A) (Handle, error) {
	if !t.valid(parent) {
		return NoHandle, fmt.Errorf("%w: %d", ErrUnknownHandle, parent)
	}
	if _, ok := t.index[state]; ok {
		return NoHandle, fmt.Errorf("%w: %v", ErrDuplicateState, state)
	}
	h := Handle(len(t.nodes))
	t.nodes = append(t.nodes, Node[N, A, V]{
		State:  state,
		Arc:    arc,
		Parent: parent,
		Depth:  t.nodes[parent].Depth + 1,
		Type:   Open,
	})
	t.index[state] = h

	return h, nil
}

// Reparent moves h under a new parent reached through arc. It is used by
// graph search when a cheaper route to an open node is found. The caller must
// not create a cycle; Reparent refuses to make a node its own ancestor.
func (t *Tree[N, A, V]) Reparent(h, parent Handle, arc A) error {
	if !t.valid(h) || !t.valid(parent) {
		return fmt.Errorf("%w: %d -> %d", ErrUnknownHandle, h, parent)
	}
	for at := parent; at != NoHandle; at = t.nodes[at].Parent {
		if at == h {
			return fmt.Errorf("searchtree: reparenting %d under %d creates a cycle", h, parent)
		}
	}
	n := &t.nodes[h]
	n.Parent = parent
	n.Arc = arc
	n.Depth = t.nodes[parent].Depth + 1

	return nil
}

// Node returns a pointer to the node addressed by h, or nil for an unknown handle.
// The pointer is valid until the next insertion.
func (t *Tree[N, A, V]) Node(h Handle) *Node[N, A, V] {
	if !t.valid(h) {
		return nil
	}

	return &t.nodes[h]
}

// State returns the state held by h. It panics on an unknown handle.
func (t *Tree[N, A, V]) State(h Handle) N { return t.nodes[h].State }

// Lookup returns the handle of the node wrapping state.
func (t *Tree[N, A, V]) Lookup(state N) (Handle, bool) {
	h, ok := t.index[state]

	return h, ok
}

// SetLabel stores an evaluation label on h.
func (t *Tree[N, A, V]) SetLabel(h Handle, label V) {
	n := &t.nodes[h]
	n.Label = label
	n.Labeled = true
}

// SetType updates the structural role of h.
func (t *Tree[N, A, V]) SetType(h Handle, typ NodeType) { t.nodes[h].Type = typ }

// Path reconstructs the root-to-h path by following parent handles.
func (t *Tree[N, A, V]) Path(h Handle) Path[N, A] {
	if !t.valid(h) {
		return Path[N, A]{}
	}
	steps := make([]Step[N, A], 0, t.nodes[h].Depth+1)
	for at := h; at != NoHandle; at = t.nodes[at].Parent {
		n := &t.nodes[at]
		steps = append(steps, Step[N, A]{State: n.State, Arc: n.Arc, HasArc: n.Parent != NoHandle})
	}
	// reverse to root → h
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}

	return Path[N, A]{steps: steps}
}

func (t *Tree[N, A, V]) valid(h Handle) bool { return h >= 0 && int(h) < len(t.nodes) }
