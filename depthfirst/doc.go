// Package depthfirst implements a stepwise depth-first search over an
// implicit graph described by a graphgen.Problem.
//
// The engine keeps an explicit current path, a stack of nodes from a root to
// the head, together with the ordered successor list of every expanded node.
// Each NextEvent call does at most one of:
//
//   - backtrack: after a goal or a dead end, pop nodes until an ancestor has
//     an untried successor and descend into it; terminate when every root is
//     exhausted.
//   - visit: test the head for goal status; if it is not a goal, generate and
//     cache its successors, emit NodeAdded for each and descend into the first.
//
// The order in which goals are reported equals that of an eager recursive
// depth-first traversal visiting successors in generator order.
//
// Path injection:
//
//   - SetCurrentPath and SetCurrentPathByDecisions move the search to a given
//     path. The path is validated against the roots and the successor
//     generator before anything is modified; an invalid path returns
//     algorithm.ErrInvalidPathInjection and leaves the run untouched.
//   - Before the first NextEvent the path is a seed: it is replayed after
//     GraphInitialized as NodeAdded / NodeExpansionCompleted events, without
//     goal tests on the intermediate nodes.
//   - DecisionIndices is the inverse of SetCurrentPathByDecisions.
//
// Options:
//
//   - algorithm.WithMaxDepth(d)      nodes at depth d are treated as dead ends.
//   - algorithm.WithGraphSearch()    successors already in the tree are skipped.
//   - algorithm.WithMaxExpansions(n) stops after n expansions.
//
// Complexity:
//
//   - Time:   O(V + E) generator calls for a full traversal.
//   - Memory: O(V) for the tree and successor cache.
package depthfirst
