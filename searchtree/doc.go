// Package searchtree implements the search-tree model shared by the search
// engines of github.com/katalvlaran/lvsearch.
//
// What:
//
//   - Tree: an arena of search nodes addressed by stable Handle values.
//     Each node wraps one domain state, its incoming arc label, a parent
//     handle, an optional evaluation label and a NodeType.
//   - Path: an immutable root-to-head sequence of (state, arc) steps,
//     reconstructed from a Tree by chasing parent handles.
//
// Why:
//
//   - Parent links are indices, never pointers, so a tree of any size holds
//     no ownership cycles and paths are rebuilt on demand instead of copied
//     around with every node.
//   - The tree indexes nodes by state, which lets engines enforce "one search
//     node per domain state" for the lifetime of a run.
//
// Complexity:
//
//   - AddRoot / AddChild / Lookup: O(1) amortized.
//   - Path(h):                    O(depth(h)).
//
// Errors:
//
//   - ErrDuplicateState   a node for the state already exists in the tree.
//   - ErrUnknownHandle    the handle does not address a node of this tree.
//   - ErrEmptyPath        an operation needs at least one step.
package searchtree
