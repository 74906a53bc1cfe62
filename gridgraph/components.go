package gridgraph

// ConnectedComponents labels the regions of passable cells according to the
// grid connectivity. The result maps every passable cell to its component
// index; walls are absent. Components are numbered in row-major order of
// their first cell.
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H) for the labels and the queue.
func (g *Grid) ConnectedComponents() (labels map[Cell]int, count int) {
	labels = make(map[Cell]int, g.Width*g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c0 := Cell{X: x, Y: y}
			if !g.Passable(c0) {
				continue // wall
			}
			if _, seen := labels[c0]; seen {
				continue
			}
			// BFS to collect component
			labels[c0] = count
			queue := []Cell{c0}
			for qi := 0; qi < len(queue); qi++ {
				u := queue[qi]
				for _, m := range g.moves {
					v := Cell{X: u.X + m.DX, Y: u.Y + m.DY}
					if !g.Passable(v) {
						continue
					}
					if _, seen := labels[v]; !seen {
						labels[v] = count
						queue = append(queue, v)
					}
				}
			}
			count++
		}
	}

	return labels, count
}

// Reachable reports whether Goal lies in the same component as Start.
func (g *Grid) Reachable() bool {
	labels, _ := g.ConnectedComponents()

	return labels[g.Start] == labels[g.Goal]
}
