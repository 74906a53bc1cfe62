package gridgraph_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsearch/algorithm"
	"github.com/katalvlaran/lvsearch/bestfirst"
	"github.com/katalvlaran/lvsearch/breadthfirst"
	"github.com/katalvlaran/lvsearch/gridgraph"
)

func quiet() []algorithm.Option {
	return []algorithm.Option{
		algorithm.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		algorithm.WithRegistry(algorithm.NewRegistry()),
		algorithm.WithGraphSearch(),
	}
}

// TestNewGrid_Errors verifies that NewGrid rejects bad shapes and endpoints.
func TestNewGrid_Errors(t *testing.T) {
	open := [][]int{{1, 1}, {0, 1}}
	cases := []struct {
		name        string
		grid        [][]int
		start, goal gridgraph.Cell
		err         error
	}{
		{"EmptyRows", [][]int{}, gridgraph.Cell{}, gridgraph.Cell{}, gridgraph.ErrEmptyGrid},
		{"EmptyCols", [][]int{{}}, gridgraph.Cell{}, gridgraph.Cell{}, gridgraph.ErrEmptyGrid},
		{"NonRectangular", [][]int{{1, 2}, {3}}, gridgraph.Cell{}, gridgraph.Cell{}, gridgraph.ErrNonRectangular},
		{"StartOutside", open, gridgraph.Cell{X: 2}, gridgraph.Cell{X: 1}, gridgraph.ErrOutOfBounds},
		{"GoalOnWall", open, gridgraph.Cell{}, gridgraph.Cell{Y: 1}, gridgraph.ErrWall},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gridgraph.NewGrid(tc.grid, tc.start, tc.goal, gridgraph.DefaultOptions())
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestGrid_Successors(t *testing.T) {
	values := [][]int{
		{1, 1, 1},
		{1, 5, 0},
		{1, 1, 1},
	}
	center := gridgraph.Cell{X: 1, Y: 1}
	ctx := context.Background()

	g4, err := gridgraph.NewGrid(values, center, gridgraph.Cell{X: 2, Y: 2}, gridgraph.DefaultOptions())
	require.NoError(t, err)
	succ, err := g4.Successors(ctx, center)
	require.NoError(t, err)
	var moves []string
	for _, sc := range succ {
		moves = append(moves, sc.Arc.String())
		assert.Empty(t, sc.Tag)
	}
	assert.Equal(t, []string{"N", "S", "W"}, moves, "east is a wall")

	opts := gridgraph.DefaultOptions()
	opts.Conn = gridgraph.Conn8
	g8, err := gridgraph.NewGrid(values, center, gridgraph.Cell{X: 2, Y: 2}, opts)
	require.NoError(t, err)
	succ, err = g8.Successors(ctx, center)
	require.NoError(t, err)
	moves = moves[:0]
	for _, sc := range succ {
		moves = append(moves, sc.Arc.String())
		assert.Equal(t, sc.Arc.Diagonal(), sc.Tag == "diagonal")
	}
	assert.Equal(t, []string{"N", "NE", "SE", "S", "SW", "W", "NW"}, moves)

	_, err = g8.Successors(ctx, gridgraph.Cell{X: 2, Y: 1})
	assert.ErrorIs(t, err, gridgraph.ErrWall)

	assert.Equal(t, 5, g4.StepCost(gridgraph.Cell{}, center, gridgraph.Move{}))
	assert.Equal(t, 4, g4.Manhattan()(gridgraph.Cell{}))
	assert.Equal(t, 2, g8.Chebyshev()(gridgraph.Cell{}))
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		rows []string
		err  error
	}{
		{"Empty", nil, gridgraph.ErrEmptyGrid},
		{"BadCell", []string{"S?G"}, gridgraph.ErrBadCell},
		{"NoStart", []string{"..G"}, gridgraph.ErrNoStart},
		{"NoGoal", []string{"S.."}, gridgraph.ErrNoGoal},
		{"Ragged", []string{"S..", "G."}, gridgraph.ErrNonRectangular},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gridgraph.Parse(tc.rows, gridgraph.Conn4)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestLoad_Maze(t *testing.T) {
	g, f, err := gridgraph.Load(filepath.Join("testdata", "maze.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "small maze", f.Name)
	assert.Equal(t, 10, g.Width)
	assert.Equal(t, 5, g.Height)
	assert.Equal(t, gridgraph.Cell{X: 0, Y: 0}, g.Start)
	assert.Equal(t, gridgraph.Cell{X: 9, Y: 4}, g.Goal)
	assert.True(t, g.Reachable())

	_, _, err = gridgraph.Load(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)
}

func TestGrid_AStarOnMaze(t *testing.T) {
	for _, tc := range []struct {
		name string
		conn gridgraph.Connectivity
		cost int
	}{
		{"Conn4", gridgraph.Conn4, 27},
		{"Conn8", gridgraph.Conn8, 19},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g, _, err := gridgraph.Load(filepath.Join("testdata", "maze.yaml"))
			require.NoError(t, err)
			g, err = gridgraph.Parse(renderRows(g), tc.conn)
			require.NoError(t, err)

			s, err := bestfirst.New(g.Problem(), g.AStar(), quiet()...)
			require.NoError(t, err)
			best, err := s.Call(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.cost, best.Score)
			assert.Equal(t, g.Start, best.Path.Root())
			assert.Equal(t, g.Goal, best.Path.Head())

			// breadth-first agrees on unit-cost grids
			p, err := breadthfirst.Shortest(context.Background(), g.Problem(), quiet()...)
			require.NoError(t, err)
			assert.Equal(t, tc.cost, p.Len()-1)
		})
	}
}

func TestGrid_ConnectedComponents(t *testing.T) {
	g, err := gridgraph.Parse([]string{
		"S.#..",
		"..#.G",
		"###..",
		"1.#..",
	}, gridgraph.Conn4)
	require.NoError(t, err)

	labels, count := g.ConnectedComponents()
	assert.Equal(t, 3, count)
	assert.Equal(t, 0, labels[gridgraph.Cell{X: 0, Y: 0}])
	assert.Equal(t, 1, labels[gridgraph.Cell{X: 4, Y: 1}])
	assert.Equal(t, 2, labels[gridgraph.Cell{X: 0, Y: 3}])
	_, wall := labels[gridgraph.Cell{X: 2, Y: 0}]
	assert.False(t, wall)
	assert.False(t, g.Reachable())
}

func TestGrid_Render(t *testing.T) {
	g, err := gridgraph.Parse([]string{"S3.", "#.G"}, gridgraph.Conn4)
	require.NoError(t, err)
	out := g.Render([]gridgraph.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}})
	assert.Equal(t, "S**\n#.G\n", out)
	assert.Equal(t, "S3.\n#.G\n", g.Render(nil))
}

// renderRows turns a grid back into text rows.
func renderRows(g *gridgraph.Grid) []string {
	var rows []string
	line := ""
	for _, ch := range g.Render(nil) {
		if ch == '\n' {
			rows = append(rows, line)
			line = ""
			continue
		}
		line += string(ch)
	}

	return rows
}
