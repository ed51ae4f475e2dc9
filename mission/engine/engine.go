package engine

// ExecuteAll folds commands over the vehicle from left to right and stops at
// the first blocked move. An empty list completes with the initial vehicle.
func ExecuteAll(grid Grid, vehicle Vehicle, commands []Command) Outcome {
	current := vehicle
	for _, cmd := range commands {
		next, ok := current.Execute(grid, cmd)
		if !ok {
			return Outcome{Kind: ObstacleHit, Vehicle: current}
		}
		current = next
	}
	return Outcome{Kind: Completed, Vehicle: current}
}

// Trace behaves like ExecuteAll and also returns one Step per evaluated
// command. When blocked, the last step is the blocking command.
func Trace(grid Grid, vehicle Vehicle, commands []Command) (Outcome, []Step) {
	steps := make([]Step, 0, len(commands))
	current := vehicle

	for i, cmd := range commands {
		next, ok := current.Execute(grid, cmd)
		steps = append(steps, Step{
			Index:   i,
			Command: cmd,
			From:    current,
			To:      next,
			Blocked: !ok,
		})
		if !ok {
			return Outcome{Kind: ObstacleHit, Vehicle: current}, steps
		}
		current = next
	}

	return Outcome{Kind: Completed, Vehicle: current}, steps
}
