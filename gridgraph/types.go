package gridgraph

import (
	"errors"
	"fmt"
)

// Sentinel errors for gridgraph operations.
var (
	// ErrEmptyGrid indicates input grid has no rows or no columns.
	ErrEmptyGrid = errors.New("gridgraph: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	// ErrOutOfBounds indicates a cell outside the grid.
	ErrOutOfBounds = errors.New("gridgraph: cell out of bounds")
	// ErrWall indicates a start or goal placed on a wall.
	ErrWall = errors.New("gridgraph: cell is a wall")
	// ErrBadCell indicates an unknown character in a text grid.
	ErrBadCell = errors.New("gridgraph: unknown cell character")
	// ErrNoStart indicates a text grid without 'S'.
	ErrNoStart = errors.New("gridgraph: grid has no start cell")
	// ErrNoGoal indicates a text grid without 'G'.
	ErrNoGoal = errors.New("gridgraph: grid has no goal cell")
)

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

// Cell is a grid coordinate; it is the search state.
type Cell struct {
	X, Y int
}

// String formats the cell as "(x,y)".
func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Move is the offset between neighboring cells; it is the search arc.
type Move struct {
	DX, DY int
}

// Diagonal reports whether the move changes both coordinates.
func (m Move) Diagonal() bool { return m.DX != 0 && m.DY != 0 }

// String returns the compass name of the move, y growing southwards.
func (m Move) String() string {
	var s string
	switch m.DY {
	case -1:
		s = "N"
	case 1:
		s = "S"
	}
	switch m.DX {
	case -1:
		s += "W"
	case 1:
		s += "E"
	}
	if s == "" {
		return "-"
	}

	return s
}

// Options contains tunable parameters for a grid.
type Options struct {
	// MinPassable is the minimum cell value that can be entered.
	MinPassable int
	// Conn chooses 4- or 8-directional connectivity.
	Conn Connectivity
}

// DefaultOptions returns Options with MinPassable=1 (values ≤0 are walls) and Conn=Conn4.
func DefaultOptions() Options {
	return Options{
		MinPassable: 1,
		Conn:        Conn4,
	}
}

var (
	moves4 = []Move{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	moves8 = []Move{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
)
