// Package gridgraph exposes a 2D grid of weighted cells as an implicit graph
// for the search engines.
//
// What:
//
//   - Grid wraps a rectangular [][]int of cell costs. Cells with a value below
//     Options.MinPassable are walls; any other value is the cost of entering
//     the cell.
//   - Grid implements graphgen.GraphGenerator over Cell states and Move arcs
//     with four- or eight-connectivity (Conn4 or Conn8).
//   - Problem pairs the grid with its goal cell; StepCost, Manhattan and
//     Chebyshev plug into evaluate.AStar.
//   - ConnectedComponents labels the regions of passable cells, so that an
//     unreachable goal can be reported without searching.
//   - Parse and Load read grids drawn as text ('S' start, 'G' goal, '#' wall,
//     '.' or a digit 1-9 for a passable cell of that cost), the latter from a
//     YAML file.
//
// Complexity:
//
//   - Successors:          O(d) per call (d = 4 or 8).
//   - ConnectedComponents: O(W×H×d), Memory: O(W×H).
//
// Errors:
//
//   - ErrEmptyGrid: input grid has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrOutOfBounds, ErrWall: invalid start or goal.
//   - ErrBadCell, ErrNoStart, ErrNoGoal: malformed text grid.
package gridgraph
