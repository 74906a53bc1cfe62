package gridgraph_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvsearch/bestfirst"
	"github.com/katalvlaran/lvsearch/gridgraph"
)

// randomGrid returns an n×n grid with about 20% walls and costs in [1,4].
func randomGrid(n int) [][]int {
	rng := rand.New(rand.NewSource(42))
	grid := make([][]int, n)
	for y := range grid {
		grid[y] = make([]int, n)
		for x := range grid[y] {
			if rng.Intn(5) == 0 {
				continue
			}
			grid[y][x] = 1 + rng.Intn(4)
		}
	}
	grid[0][0], grid[n-1][n-1] = 1, 1

	return grid
}

// BenchmarkConnectedComponents measures labelling a 300×300 grid.
func BenchmarkConnectedComponents(b *testing.B) {
	g, err := gridgraph.NewGrid(randomGrid(300), gridgraph.Cell{}, gridgraph.Cell{X: 299, Y: 299}, gridgraph.DefaultOptions())
	if err != nil {
		b.Fatalf("setup NewGrid failed: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.ConnectedComponents()
	}
}

// BenchmarkAStar measures a corner-to-corner A* search on a 100×100 grid.
func BenchmarkAStar(b *testing.B) {
	g, err := gridgraph.NewGrid(randomGrid(100), gridgraph.Cell{}, gridgraph.Cell{X: 99, Y: 99}, gridgraph.DefaultOptions())
	if err != nil {
		b.Fatalf("setup NewGrid failed: %v", err)
	}
	if !g.Reachable() {
		b.Skip("goal is walled off")
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, err := bestfirst.New(g.Problem(), g.AStar(), quiet()...)
		if err != nil {
			b.Fatal(err)
		}
		if _, err = s.Call(context.Background()); err != nil {
			b.Fatal(err)
		}
	}
}
