package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidGridSize is returned when a grid dimension is not positive
var ErrInvalidGridSize = errors.New("grid dimensions must be positive")

// Grid is the immutable traversable space of a mission
type Grid struct {
	width     int
	height    int
	obstacles []Position
	blocked   map[Position]struct{}
}

// NewGrid creates a grid of the given size. Obstacles are stored as given;
// they are not wrapped.
func NewGrid(width, height int, obstacles []Position) (Grid, error) {
	if width <= 0 || height <= 0 {
		return Grid{}, fmt.Errorf("%w: got %dx%d", ErrInvalidGridSize, width, height)
	}

	g := Grid{
		width:     width,
		height:    height,
		obstacles: make([]Position, len(obstacles)),
		blocked:   make(map[Position]struct{}, len(obstacles)),
	}
	copy(g.obstacles, obstacles)
	for _, o := range obstacles {
		g.blocked[o] = struct{}{}
	}
	return g, nil
}

// Width returns the number of columns
func (g Grid) Width() int {
	return g.width
}

// Height returns the number of rows
func (g Grid) Height() int {
	return g.height
}

// Obstacles returns a copy of the obstacle list in construction order
func (g Grid) Obstacles() []Position {
	out := make([]Position, len(g.obstacles))
	copy(out, g.obstacles)
	return out
}

// Wrap normalizes p into [0,width) x [0,height) using floored modulo
func (g Grid) Wrap(p Position) Position {
	return Position{
		X: floorMod(p.X, g.width),
		Y: floorMod(p.Y, g.height),
	}
}

// IsBlocked reports whether p matches a stored obstacle exactly
func (g Grid) IsBlocked(p Position) bool {
	_, ok := g.blocked[p]
	return ok
}

// Contains reports whether p already lies inside the grid bounds
func (g Grid) Contains(p Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

func floorMod(value, limit int) int {
	return ((value % limit) + limit) % limit
}
