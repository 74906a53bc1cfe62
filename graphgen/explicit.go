package graphgen

import (
	"context"
	"fmt"
	"sync"
)

// Explicit is a fully known graph stored as ordered adjacency lists. It is the
// simplest GraphGenerator: handy for tests, examples and small inputs that
// are already materialized.
//
// Explicit is safe for concurrent reads once built; Calls is guarded so that
// tests can count generator invocations.
type Explicit[N comparable, A any] struct {
	roots []N
	adj   map[N][]Successor[N, A]

	mu    sync.Mutex
	calls map[N]int
}

// NewExplicit returns an empty graph with the given roots.
func NewExplicit[N comparable, A any](roots ...N) *Explicit[N, A] {
	return &Explicit[N, A]{
		roots: roots,
		adj:   make(map[N][]Successor[N, A]),
		calls: make(map[N]int),
	}
}

// AddEdge appends to → from's successor list, labelled arc. Order of calls is
// the successor order.
func (g *Explicit[N, A]) AddEdge(from, to N, arc A) *Explicit[N, A] {
	g.adj[from] = append(g.adj[from], Successor[N, A]{State: to, Arc: arc})
	if _, ok := g.adj[to]; !ok {
		g.adj[to] = nil
	}

	return g
}

// AddTaggedEdge is AddEdge with a node-type tag on the successor.
func (g *Explicit[N, A]) AddTaggedEdge(from, to N, arc A, tag string) *Explicit[N, A] {
	g.adj[from] = append(g.adj[from], Successor[N, A]{State: to, Arc: arc, Tag: tag})
	if _, ok := g.adj[to]; !ok {
		g.adj[to] = nil
	}

	return g
}

// Roots returns a copy of the configured roots.
func (g *Explicit[N, A]) Roots(context.Context) ([]N, error) {
	if len(g.roots) == 0 {
		return nil, ErrNoRoots
	}
	out := make([]N, len(g.roots))
	copy(out, g.roots)

	return out, nil
}

// Successors returns a copy of the adjacency list of state.
// Unknown states are dead ends.
func (g *Explicit[N, A]) Successors(_ context.Context, state N) ([]Successor[N, A], error) {
	g.mu.Lock()
	g.calls[state]++
	g.mu.Unlock()

	list := g.adj[state]
	out := make([]Successor[N, A], len(list))
	copy(out, list)

	return out, nil
}

// Calls returns how many times Successors was invoked for state.
func (g *Explicit[N, A]) Calls(state N) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.calls[state]
}

// TotalCalls returns the number of Successors invocations across all states.
func (g *Explicit[N, A]) TotalCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	total := 0
	for _, c := range g.calls {
		total += c
	}

	return total
}

// States returns every state mentioned in the graph, in no particular order.
func (g *Explicit[N, A]) States() []N {
	out := make([]N, 0, len(g.adj))
	for s := range g.adj {
		out = append(out, s)
	}

	return out
}

// String summarizes the graph size.
func (g *Explicit[N, A]) String() string {
	edges := 0
	for _, l := range g.adj {
		edges += len(l)
	}

	return fmt.Sprintf("graphgen.Explicit{roots: %d, states: %d, edges: %d}", len(g.roots), len(g.adj), edges)
}
