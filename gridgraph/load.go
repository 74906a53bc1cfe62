package gridgraph

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the YAML layout read by Load.
//
//	name: small maze
//	connectivity: 8
//	rows:
//	  - "S..#"
//	  - ".#.G"
type File struct {
	Name         string   `yaml:"name"`
	Connectivity int      `yaml:"connectivity"`
	Rows         []string `yaml:"rows"`
}

// Parse builds a grid from text rows: 'S' start, 'G' goal, '#' wall, '.' a
// cell of cost 1 and '1'-'9' a cell of that cost. Start and goal cost 1.
func Parse(rows []string, conn Connectivity) (*Grid, error) {
	var (
		start, goal       Cell
		hasStart, hasGoal bool
	)
	values := make([][]int, len(rows))
	for y, row := range rows {
		row = strings.TrimRight(row, "\r")
		values[y] = make([]int, len(row))
		for x, ch := range []byte(row) {
			switch {
			case ch == 'S':
				start, hasStart = Cell{X: x, Y: y}, true
				values[y][x] = 1
			case ch == 'G':
				goal, hasGoal = Cell{X: x, Y: y}, true
				values[y][x] = 1
			case ch == '#':
				values[y][x] = 0
			case ch == '.':
				values[y][x] = 1
			case ch >= '1' && ch <= '9':
				values[y][x] = int(ch - '0')
			default:
				return nil, fmt.Errorf("%w: %q at (%d,%d)", ErrBadCell, ch, x, y)
			}
		}
	}
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	if !hasStart {
		return nil, ErrNoStart
	}
	if !hasGoal {
		return nil, ErrNoGoal
	}

	opts := DefaultOptions()
	opts.Conn = conn

	return NewGrid(values, start, goal, opts)
}

// Load reads a grid from a YAML file in the File layout. Connectivity 8
// selects Conn8; anything else selects Conn4.
func Load(path string) (*Grid, *File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("gridgraph: read %s: %w", path, err)
	}
	var f File
	if err = yaml.Unmarshal(raw, &f); err != nil {
		return nil, nil, fmt.Errorf("gridgraph: parse %s: %w", path, err)
	}
	conn := Conn4
	if f.Connectivity == 8 {
		conn = Conn8
	}
	g, err := Parse(f.Rows, conn)
	if err != nil {
		return nil, nil, fmt.Errorf("gridgraph: %s: %w", path, err)
	}

	return g, &f, nil
}
