package service

import (
	"context"

	"github.com/wricardo/rover-mission/mission/engine"
)

// RunMission acquires grid, vehicle and commands in that order and runs them
// through the interpreter. The first collaborator failure is returned as is.
func RunMission(ctx context.Context, source Source, channel Channel) (engine.Outcome, error) {
	grid, vehicle, commands, err := acquire(ctx, source, channel)
	if err != nil {
		return engine.Outcome{}, err
	}
	return engine.ExecuteAll(grid, vehicle, commands), nil
}

// RunApp runs a mission and makes exactly one Reporter call. The acquisition
// error, if any, is returned after it has been reported.
func RunApp(ctx context.Context, source Source, channel Channel, reporter Reporter) error {
	outcome, err := RunMission(ctx, source, channel)
	if err != nil {
		reporter.ReportError(ctx, err.Error())
		return err
	}

	if outcome.Blocked() {
		reporter.ReportObstacle(ctx, outcome.Vehicle)
	} else {
		reporter.ReportCompleted(ctx, outcome.Vehicle)
	}
	return nil
}

func acquire(ctx context.Context, source Source, channel Channel) (engine.Grid, engine.Vehicle, []engine.Command, error) {
	grid, err := source.ReadGrid(ctx)
	if err != nil {
		return engine.Grid{}, engine.Vehicle{}, nil, err
	}
	vehicle, err := source.ReadVehicle(ctx)
	if err != nil {
		return engine.Grid{}, engine.Vehicle{}, nil, err
	}
	commands, err := channel.ReceiveCommands(ctx)
	if err != nil {
		return engine.Grid{}, engine.Vehicle{}, nil, err
	}
	return grid, vehicle, commands, nil
}
