package config

import (
	"fmt"
	"strings"

	"github.com/wricardo/rover-mission/mission/codec"
	"github.com/wricardo/rover-mission/mission/service"
)

// MaxGridSize bounds each dimension of a stored scenario's grid. Tools that
// draw or flood-fill a scenario do work proportional to its cell count.
const MaxGridSize = 500

// ValidateScenario checks required fields and runs every text field through
// the codec. Errors wrap service.ErrInvalidScenario and keep the codec error.
func ValidateScenario(scenario *service.Scenario) error {
	if scenario == nil {
		return fmt.Errorf("%w: scenario cannot be nil", service.ErrInvalidScenario)
	}
	if strings.TrimSpace(scenario.Name) == "" {
		return fmt.Errorf("%w: name is required", service.ErrInvalidScenario)
	}

	grid, err := codec.ParseGrid(scenario.Size, strings.Join(scenario.Obstacles, " "))
	if err != nil {
		return fmt.Errorf("%w: %w", service.ErrInvalidScenario, err)
	}
	if grid.Width() > MaxGridSize || grid.Height() > MaxGridSize {
		return fmt.Errorf("%w: %w: dimensions must be at most %d, got %dx%d",
			service.ErrInvalidScenario, codec.ErrInvalidGrid, MaxGridSize, grid.Width(), grid.Height())
	}
	if _, err := codec.ParseVehicle(scenario.Position, scenario.Heading); err != nil {
		return fmt.Errorf("%w: %w", service.ErrInvalidScenario, err)
	}
	if _, err := codec.ParseCommands(scenario.Commands); err != nil {
		return fmt.Errorf("%w: %w", service.ErrInvalidScenario, err)
	}

	return nil
}
