// Package bestfirst implements a stepwise best-first search over an implicit
// graph described by a graphgen.Problem.
//
// What:
//
//   - Nodes are ordered in an open set by the f-value computed by an
//     evaluate.PathEvaluator. Roots carry no label and come first.
//   - Each step pops the minimum node, generates its successors, tests every
//     child for goal status and evaluates it. Goal children become solutions;
//     the search keeps going, so a run enumerates solutions in discovery order.
//   - Children whose evaluation fails are dropped (NodeRemoved) and the run
//     continues; interruption or timeout errors from an evaluator stop it.
//   - Ties on equal labels are broken FIFO by insertion order.
//
// Tree vs graph search:
//
//   - By default the engine assumes a tree: a successor whose state is already
//     in the search tree is an invariant violation.
//   - With algorithm.WithGraphSearch duplicates are folded: a cheaper route to
//     an open node re-parents it, any other duplicate is ignored. Expanded
//     nodes are never reopened.
//
// With evaluate.Depth the engine is breadth-first, with evaluate.AStar it is
// A*. Expansion labels are non-decreasing whenever the evaluator is
// monotone along paths.
//
// Complexity:
//
//   - Time:   O(E·(log V + c_eval + d)) where d is the path depth rebuilt per child.
//   - Memory: O(V) for the tree, open set and expanded set.
//
// Errors:
//
//   - ErrNilEvaluator                   evaluator is nil.
//   - graphgen.ErrNilGraph, ...         problem validation errors.
//   - algorithm.ErrGenerationFailed     root or successor generation failed.
//   - algorithm.ErrInvariantViolation   duplicate state in tree mode, node expanded twice.
//   - algorithm.ErrCanceled, ErrInterrupted, ErrTimeout.
package bestfirst
