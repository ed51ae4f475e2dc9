package engine

import "fmt"

// TurnRight returns the vehicle rotated clockwise
func (v Vehicle) TurnRight() Vehicle {
	return Vehicle{Position: v.Position, Heading: v.Heading.TurnRight()}
}

// TurnLeft returns the vehicle rotated counter-clockwise
func (v Vehicle) TurnLeft() Vehicle {
	return Vehicle{Position: v.Position, Heading: v.Heading.TurnLeft()}
}

// MoveForward steps one cell along the heading. When the wrapped target is
// blocked it returns the unchanged vehicle and false.
func (v Vehicle) MoveForward(grid Grid) (Vehicle, bool) {
	return v.step(grid, v.Heading.Delta())
}

// MoveBackward steps one cell against the heading without turning.
func (v Vehicle) MoveBackward(grid Grid) (Vehicle, bool) {
	return v.step(grid, v.Heading.Opposite().Delta())
}

// Execute applies a single command
func (v Vehicle) Execute(grid Grid, cmd Command) (Vehicle, bool) {
	switch cmd {
	case TurnLeft:
		return v.TurnLeft(), true
	case TurnRight:
		return v.TurnRight(), true
	case MoveForward:
		return v.MoveForward(grid)
	case MoveBackward:
		return v.MoveBackward(grid)
	}
	panic(fmt.Sprintf("engine: invalid command %d", int(cmd)))
}

func (v Vehicle) step(grid Grid, delta Position) (Vehicle, bool) {
	candidate := grid.Wrap(v.Position.Shift(delta))
	if grid.IsBlocked(candidate) {
		return v, false
	}
	return Vehicle{Position: candidate, Heading: v.Heading}, true
}
