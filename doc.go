// Package lvsearch is a toolkit for searching graphs that are never built
// up front: states and their successors are produced on demand by
// user-supplied generators, and the search engines grow a search tree one
// expansion at a time.
//
// 🚀 What is in lvsearch?
//
//	• Pull-driven engines: every NextEvent call advances a run by one
//	  observable event (node added, type switch, solution found...)
//	• Best-first search with any totally ordered evaluator (A*, greedy,
//	  uniform cost) and breadth-first search on top of it
//	• Depth-first search with backtracking, path inspection and path injection
//	• Cooperative cancellation: Cancel, context deadlines and per-call
//	  generator timeouts, with a registry of active runs
//	• slog logging, OpenTelemetry spans and Prometheus metrics per run
//
// Layout:
//
//	algorithm/    — run lifecycle, options, events, errors, registry
//	searchtree/   — arena of search nodes, handles and paths
//	graphgen/     — generator and goal-test interfaces, explicit graphs
//	evaluate/     — path evaluators: depth, constant, A*
//	bestfirst/    — best-first engine over an ordered open set
//	breadthfirst/ — best-first ordered by depth, Shortest helper
//	depthfirst/   — depth-first engine, path injection
//	gridgraph/    — 2-D grid problems loaded from YAML
//	metrics/      — Prometheus observer for runs
//	config/       — YAML/env configuration mapped to run options
//	cmd/lvsearch  — CLI: solve and compare grid problems
//
// Quick ASCII example:
//
//	    S → a → G
//	    ↓       ↑
//	    b ──────┘
//
// A best-first run over this graph with unit costs reports the nodes it
// adds, closes and solves as separate events, and finally both S-a-G and
// S-b-G as solution candidates.
//
//	go get github.com/katalvlaran/lvsearch
package lvsearch
