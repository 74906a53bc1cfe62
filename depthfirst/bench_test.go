package depthfirst_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/lvsearch/algorithm"
	"github.com/katalvlaran/lvsearch/depthfirst"
	"github.com/katalvlaran/lvsearch/graphgen"
)

// BenchmarkSearch_RandomTree drains a random tree of 2000 nodes.
func BenchmarkSearch_RandomTree(b *testing.B) {
	problem := graphgen.NewProblem[int, int](randomTree(7, 2000), never[int]())

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s, err := depthfirst.New(problem, quiet()...)
		if err != nil {
			b.Fatal(err)
		}
		if err = algorithm.Drain(context.Background(), s); err != nil {
			b.Fatal(err)
		}
	}
}
