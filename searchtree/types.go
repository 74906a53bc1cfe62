package searchtree

import "errors"

// Sentinel errors for tree and path operations.
var (
	// ErrDuplicateState is returned when a node for the same state already exists.
	ErrDuplicateState = errors.New("searchtree: state already present in tree")

	// ErrUnknownHandle is returned for handles outside the arena.
	ErrUnknownHandle = errors.New("searchtree: unknown node handle")

	// ErrEmptyPath is returned by operations that need a non-empty path.
	ErrEmptyPath = errors.New("searchtree: path is empty")
)

// Handle addresses a node inside a Tree. Handles are stable for the lifetime
// of the tree: nodes are never moved or freed.
type Handle int

// NoHandle is the parent handle of root nodes.
const NoHandle Handle = -1

// NodeType is the structural role of a node, as reported in node events.
type NodeType int

const (
	// Open marks a discovered node that has not been expanded yet.
	Open NodeType = iota
	// Closed marks a node that was expanded or will never be expanded.
	Closed
	// Solution marks a goal node.
	Solution
	// DeadEnd marks an expanded node without successors.
	DeadEnd
)

// String returns the lower-case name of the node type.
func (t NodeType) String() string {
	switch t {
	case Open:
		return "open"
	case Closed:
		return "closed"
	case Solution:
		return "solution"
	case DeadEnd:
		return "dead_end"
	default:
		return "unknown"
	}
}

// Node is a search-tree node. N is the domain state, A the arc label of the
// edge from the parent, V the evaluation label type.
type Node[N comparable, A any, V any] struct {
	// State is the wrapped domain state.
	State N

	// Arc is the label of the incoming edge; zero for roots.
	Arc A

	// Parent is the handle of the parent node, NoHandle for roots.
	Parent Handle

	// Depth is the number of edges between the node and its root.
	Depth int

	// Label is the evaluation label; meaningful only when Labeled is true.
	Label   V
	Labeled bool

	// Goal reports whether a goal test succeeded on this node.
	Goal bool

	// Type is the current structural role of the node.
	Type NodeType
}

// IsRoot reports whether the node has no parent.
func (n *Node[N, A, V]) IsRoot() bool { return n.Parent == NoHandle }
