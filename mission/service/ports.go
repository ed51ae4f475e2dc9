package service

import (
	"context"

	"github.com/wricardo/rover-mission/mission/engine"
)

// Source produces the validated grid and starting vehicle of a mission
type Source interface {
	ReadGrid(ctx context.Context) (engine.Grid, error)
	ReadVehicle(ctx context.Context) (engine.Vehicle, error)
}

// Channel produces the validated command sequence of a mission
type Channel interface {
	ReceiveCommands(ctx context.Context) ([]engine.Command, error)
}

// Reporter accepts the single terminal signal of a mission run
type Reporter interface {
	ReportCompleted(ctx context.Context, vehicle engine.Vehicle)
	ReportObstacle(ctx context.Context, vehicle engine.Vehicle)
	ReportError(ctx context.Context, reason string)
}

// ScenarioStore handles named scenario loading
type ScenarioStore interface {
	LoadScenario(name string) (*Scenario, error)
	ListScenarios() ([]*ScenarioInfo, error)
	SaveScenario(name string, scenario *Scenario) error
}
