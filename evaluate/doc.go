// Package evaluate defines path evaluators: functions that score a
// root-to-node path with a totally ordered value (the f-value) used by
// best-first search to order its open set.
//
// Evaluators must be deterministic for a fixed path. An evaluator signals a
// local scoring failure by returning an error; the engine then drops the node
// and keeps searching. Errors wrapping context.Canceled, context.DeadlineExceeded
// or the algorithm package's interruption errors stop the whole run instead.
//
// Provided evaluators:
//
//   - Func       adapts a function.
//   - FromNode   scores a path by its head state only.
//   - Depth      the number of edges on the path (breadth-first order).
//   - Constant   the same value for every path (FIFO order).
//   - AStar      path cost plus a heuristic estimate of the remaining cost.
package evaluate
