package engine

// Reachable returns every cell the vehicle can reach from start by any
// command sequence. Turns are free, so this is a four-neighbour flood fill
// over the wrapped grid that never enters an obstacle. start is wrapped
// first; a blocked start reaches nothing.
func Reachable(grid Grid, start Position) map[Position]bool {
	start = grid.Wrap(start)
	visited := make(map[Position]bool)
	if grid.IsBlocked(start) {
		return visited
	}

	queue := []Position{start}
	visited[start] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, h := range []Heading{North, East, South, West} {
			next := grid.Wrap(current.Shift(h.Delta()))
			if visited[next] || grid.IsBlocked(next) {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}

	return visited
}
