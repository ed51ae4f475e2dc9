// Package engine provides the core mission logic for the rover simulator.
//
// The engine package implements:
//   - Toroidal grid arithmetic and obstacle lookup
//   - Vehicle turns and moves, one pure transition per command
//   - The short-circuiting command interpreter
//
// Core Types:
//
// Grid describes the traversable space and owns the wrap-around
// normalization. Vehicle is an immutable pose (position plus heading).
// Outcome is the terminal result of a command sequence: either the sequence
// completed, or an obstacle stopped the vehicle early.
//
// Usage:
//
//	grid, err := engine.NewGrid(5, 4, []engine.Position{{X: 2, Y: 0}})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	rover := engine.Vehicle{Position: engine.Position{X: 0, Y: 0}, Heading: engine.North}
//	outcome := engine.ExecuteAll(grid, rover, []engine.Command{engine.TurnRight, engine.MoveForward})
//
// Movement Rules:
//
// North increases y, East increases x. Leaving one edge of the grid re-enters
// at the opposite edge. A move whose wrapped target is an obstacle fails and
// the vehicle keeps its pose; the interpreter then skips every remaining
// command. Nothing in this package performs I/O or keeps shared state.
package engine
