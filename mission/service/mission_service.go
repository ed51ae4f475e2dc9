package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wricardo/rover-mission/mission/codec"
	"github.com/wricardo/rover-mission/mission/engine"
)

// MissionService defines all mission operations exposed to transports
type MissionService interface {
	// Missions
	Run(ctx context.Context, req MissionRequest) (*MissionResult, error)
	RunScenario(ctx context.Context, name, commands string) (*MissionResult, error)

	// Scenarios
	ListScenarios(ctx context.Context) ([]*ScenarioInfo, error)
	LoadScenario(ctx context.Context, name string) (*Scenario, error)
	SaveScenario(ctx context.Context, name string, scenario *Scenario) error
}

// missionServiceImpl implements the MissionService interface
type missionServiceImpl struct {
	scenarios ScenarioStore
}

// NewMissionService creates a new mission service instance
func NewMissionService(scenarios ScenarioStore) MissionService {
	return &missionServiceImpl{scenarios: scenarios}
}

// Run executes an ad-hoc mission described by text fields
func (s *missionServiceImpl) Run(ctx context.Context, req MissionRequest) (*MissionResult, error) {
	src := &TextSource{
		Size:      req.Size,
		Obstacles: req.Obstacles,
		Position:  req.Position,
		Heading:   req.Heading,
		Commands:  req.Commands,
	}
	return s.execute(ctx, AdhocTopic, "", src, src)
}

// RunScenario executes a stored scenario, optionally with replacement commands
func (s *missionServiceImpl) RunScenario(ctx context.Context, name, commands string) (*MissionResult, error) {
	scenario, err := s.scenarios.LoadScenario(name)
	if err != nil {
		if errors.Is(err, ErrScenarioNotFound) {
			return nil, s.notFound(name)
		}
		return nil, fmt.Errorf("failed to load scenario %s: %w", name, err)
	}

	src := scenario.TextSource(commands)
	return s.execute(ctx, name, name, src, src)
}

// ListScenarios returns every stored scenario
func (s *missionServiceImpl) ListScenarios(ctx context.Context) ([]*ScenarioInfo, error) {
	return s.scenarios.ListScenarios()
}

// LoadScenario returns a stored scenario by name
func (s *missionServiceImpl) LoadScenario(ctx context.Context, name string) (*Scenario, error) {
	scenario, err := s.scenarios.LoadScenario(name)
	if err != nil {
		if errors.Is(err, ErrScenarioNotFound) {
			return nil, s.notFound(name)
		}
		return nil, err
	}
	return scenario, nil
}

// SaveScenario stores a scenario under name
func (s *missionServiceImpl) SaveScenario(ctx context.Context, name string, scenario *Scenario) error {
	if scenario == nil {
		return fmt.Errorf("%w: scenario cannot be nil", ErrInvalidScenario)
	}
	return s.scenarios.SaveScenario(name, scenario)
}

// notFound wraps ErrScenarioNotFound with the available identifiers
func (s *missionServiceImpl) notFound(name string) error {
	available, err := s.scenarios.ListScenarios()
	if err != nil || len(available) == 0 {
		return fmt.Errorf("%w: %s", ErrScenarioNotFound, name)
	}
	ids := make([]string, 0, len(available))
	for _, info := range available {
		ids = append(ids, info.ScenarioID)
	}
	return fmt.Errorf("%w: %s. Available scenarios: %v", ErrScenarioNotFound, name, ids)
}

func (s *missionServiceImpl) execute(ctx context.Context, topic, scenario string, source Source, channel Channel) (*MissionResult, error) {
	grid, vehicle, commands, err := acquire(ctx, source, channel)
	if err != nil {
		return nil, err
	}

	outcome, steps := engine.Trace(grid, vehicle, commands)

	result := &MissionResult{
		ID:                uuid.NewString(),
		Topic:             topic,
		Scenario:          scenario,
		Outcome:           outcome,
		Result:            codec.RenderOutcome(outcome),
		Commands:          codec.RenderCommands(commands),
		RequestedCommands: len(commands),
		CommandsExecuted:  len(steps),
		Start:             vehicle,
		Grid: GridInfo{
			Width:     grid.Width(),
			Height:    grid.Height(),
			Obstacles: grid.Obstacles(),
		},
		Steps:      steps,
		FinishedAt: time.Now(),
	}
	if outcome.Blocked() {
		// The blocking command was evaluated but did not move the vehicle
		result.CommandsExecuted = len(steps) - 1
		result.StoppedOnCommand = len(steps)
	}

	return result, nil
}
