// Package graphgen defines the collaborator contracts through which the
// search engines of github.com/katalvlaran/lvsearch see an implicit graph.
//
// A graph is never materialized: engines ask a RootGenerator for the start
// states once per run and a SuccessorGenerator for the successors of each
// state they decide to expand. A GoalTester decides which nodes are
// solutions, either from the state alone (NodeGoalTester) or from the whole
// root-to-node path (PathGoalTester).
//
// Contracts:
//
//   - Roots is called at most once per run and must return at least one state.
//   - Successors must be a pure function of its state. The returned order is
//     significant: it is the default exploration order. An empty slice marks
//     a dead end. Errors are propagated to the caller of the engine; a
//     generator that watches its context may return ctx.Err() when the engine
//     stops waiting for it.
//   - Goal testers must be deterministic.
//
// Adapters:
//
//   - SingleRoot, MultiRoot, RootFunc    build RootGenerators.
//   - SuccessorFunc                      builds a SuccessorGenerator from a function.
//   - Compose                            bundles both into a GraphGenerator.
//   - GoalFunc, PathGoalFunc             build goal testers from functions.
//   - Explicit                           an adjacency-list graph for small, fully known graphs.
package graphgen
