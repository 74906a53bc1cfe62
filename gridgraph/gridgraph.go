package gridgraph

import (
	"context"
	"fmt"
	"strings"

	"github.com/katalvlaran/lvsearch/evaluate"
	"github.com/katalvlaran/lvsearch/graphgen"
)

// Grid is an immutable 2D cost grid with a start and a goal cell.
// It implements graphgen.GraphGenerator[Cell, Move].
type Grid struct {
	Width, Height int
	Start, Goal   Cell

	values  [][]int
	opts    Options
	moves   []Move
	minCost int
}

// NewGrid constructs a Grid from a non-empty, rectangular 2D slice.
// It deep-copies the input. start and goal must be passable cells.
// Complexity: O(W×H) time and memory.
func NewGrid(values [][]int, start, goal Cell, opts Options) (*Grid, error) {
	// 1. Validate shape
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(values), len(values[0])
	for _, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}

	// 2. Deep copy and find the cheapest passable cost
	g := &Grid{Width: w, Height: h, Start: start, Goal: goal, opts: opts, values: make([][]int, h)}
	for y := 0; y < h; y++ {
		g.values[y] = make([]int, w)
		copy(g.values[y], values[y])
		for _, v := range values[y] {
			if v >= opts.MinPassable && (g.minCost == 0 || v < g.minCost) {
				g.minCost = v
			}
		}
	}
	g.moves = moves4
	if opts.Conn == Conn8 {
		g.moves = moves8
	}

	// 3. Validate endpoints
	for _, c := range []Cell{start, goal} {
		if !g.InBounds(c) {
			return nil, fmt.Errorf("%w: %v", ErrOutOfBounds, c)
		}
		if !g.Passable(c) {
			return nil, fmt.Errorf("%w: %v", ErrWall, c)
		}
	}

	return g, nil
}

// InBounds reports whether c lies within the grid boundaries.
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Passable reports whether c is inside the grid and not a wall.
func (g *Grid) Passable(c Cell) bool {
	return g.InBounds(c) && g.values[c.Y][c.X] >= g.opts.MinPassable
}

// Value returns the raw value of c; c must be in bounds.
func (g *Grid) Value(c Cell) int { return g.values[c.Y][c.X] }

// Roots returns the start cell.
func (g *Grid) Roots(context.Context) ([]Cell, error) {
	return []Cell{g.Start}, nil
}

// Successors returns the passable neighbors of c in compass order, starting
// north and turning clockwise. Diagonal moves are tagged "diagonal".
func (g *Grid) Successors(_ context.Context, c Cell) ([]graphgen.Successor[Cell, Move], error) {
	if !g.Passable(c) {
		return nil, fmt.Errorf("%w: %v", ErrWall, c)
	}
	out := make([]graphgen.Successor[Cell, Move], 0, len(g.moves))
	for _, m := range g.moves {
		n := Cell{X: c.X + m.DX, Y: c.Y + m.DY}
		if !g.Passable(n) {
			continue
		}
		sc := graphgen.Successor[Cell, Move]{State: n, Arc: m}
		if m.Diagonal() {
			sc.Tag = "diagonal"
		}
		out = append(out, sc)
	}

	return out, nil
}

// StepCost is the cost of entering to: its cell value.
func (g *Grid) StepCost(_, to Cell, _ Move) int { return g.values[to.Y][to.X] }

// Manhattan returns an admissible Conn4 heuristic towards the goal.
func (g *Grid) Manhattan() evaluate.Heuristic[Cell, int] {
	return func(c Cell) int {
		return g.minCost * (abs(c.X-g.Goal.X) + abs(c.Y-g.Goal.Y))
	}
}

// Chebyshev returns an admissible Conn8 heuristic towards the goal.
func (g *Grid) Chebyshev() evaluate.Heuristic[Cell, int] {
	return func(c Cell) int {
		return g.minCost * max(abs(c.X-g.Goal.X), abs(c.Y-g.Goal.Y))
	}
}

// Heuristic returns the admissible heuristic matching the grid's connectivity.
func (g *Grid) Heuristic() evaluate.Heuristic[Cell, int] {
	if g.opts.Conn == Conn8 {
		return g.Chebyshev()
	}

	return g.Manhattan()
}

// Problem returns the search problem of reaching Goal from Start.
func (g *Grid) Problem() graphgen.Problem[Cell, Move] {
	return graphgen.NewProblem[Cell, Move](g, graphgen.GoalSet(g.Goal))
}

// AStar returns the A* evaluator for this grid.
func (g *Grid) AStar() evaluate.PathEvaluator[Cell, Move, int] {
	return evaluate.AStar[Cell, Move, int](g.StepCost, g.Heuristic())
}

// Render draws the grid as text, marking cells of path with '*'.
func (g *Grid) Render(path []Cell) string {
	on := make(map[Cell]bool, len(path))
	for _, c := range path {
		on[c] = true
	}
	var b strings.Builder
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := Cell{X: x, Y: y}
			switch {
			case c == g.Start:
				b.WriteByte('S')
			case c == g.Goal:
				b.WriteByte('G')
			case !g.Passable(c):
				b.WriteByte('#')
			case on[c]:
				b.WriteByte('*')
			case g.values[y][x] == 1:
				b.WriteByte('.')
			default:
				b.WriteString(fmt.Sprint(min(g.values[y][x], 9)))
			}
		}
		b.WriteByte('\n')
	}

	return b.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
