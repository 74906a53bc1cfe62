// Package breadthfirst provides a stepwise breadth-first search over an
// implicit graph.
//
// What
//
//   - Nodes are expanded in non-decreasing depth (arc count) from the roots,
//     and in generation order within one depth.
//   - The engine is a bestfirst.Search ordered by evaluate.Depth, so it shares
//     the event protocol, cancellation and error behavior of best-first search.
//   - Shortest returns the first goal path, which has the fewest arcs.
//
// Determinism
//
//	Successors are enqueued in the order the generator returns them and ties
//	on depth are broken FIFO, so the expansion order is fully reproducible.
//
// Complexity
//
//   - Time:   O(V + E) generator results, plus O(log V) per heap operation.
//   - Memory: O(V) for the tree and the open set.
package breadthfirst
