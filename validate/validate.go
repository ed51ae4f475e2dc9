// Command validate checks every scenario file (.json, .yaml, .yml, .hcl) in a
// directory, "configs" by default. It checks:
//   - The file decodes in its format
//   - Required fields and every text field parse (size, obstacles, position,
//     heading, commands)
//   - The rover starts inside the grid and not on an obstacle
//   - Connectivity: which free cells the rover can reach from its start
//   - The outcome of the stored commands, if any
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/rover-mission/mission/codec"
	"github.com/wricardo/rover-mission/mission/config"
	"github.com/wricardo/rover-mission/mission/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Messages holds informational lines; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File     string
	Valid    bool
	Messages []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...interface{}) {
	r.Messages = append(r.Messages, "✓ "+fmt.Sprintf(format, args...))
}

// validateScenario loads and validates a single scenario file
func validateScenario(filePath string) ValidationResult {
	result := ValidationResult{
		File:     filepath.Base(filePath),
		Valid:    true,
		Messages: []string{},
	}

	scenario, format, err := config.ReadScenarioFile(filePath)
	if err != nil {
		result.fail("Failed to decode: %v", err)
		return result
	}

	if err := config.ValidateScenario(scenario); err != nil {
		var parseErr *codec.ParseError
		if errors.As(err, &parseErr) {
			result.fail("%s (token %q)", parseErr.Error(), parseErr.Token)
		} else {
			result.fail("%v", err)
		}
		return result
	}

	src := scenario.TextSource("")
	grid, _ := codec.ParseGrid(src.Size, src.Obstacles)
	vehicle, _ := codec.ParseVehicle(src.Position, src.Heading)

	if !grid.Contains(vehicle.Position) {
		result.fail("Start position %d,%d is outside the %dx%d grid", vehicle.Position.X, vehicle.Position.Y, grid.Width(), grid.Height())
	}
	if grid.IsBlocked(vehicle.Position) {
		result.fail("Start position %d,%d is an obstacle", vehicle.Position.X, vehicle.Position.Y)
	}
	if outside := obstaclesOutside(grid); len(outside) > 0 {
		result.fail("Obstacles outside the grid can never be hit: %s", strings.Join(outside, " "))
	}
	if !result.Valid {
		return result
	}

	reachability := validateConnectivity(grid, vehicle.Position)
	result.Messages = append(result.Messages, reachability.Messages...)

	result.info("Name: %s (%s)", scenario.Name, format)
	result.info("Grid: %dx%d, %d obstacles", grid.Width(), grid.Height(), len(grid.Obstacles()))
	result.info("Rover: %s", codec.RenderVehicle(vehicle))

	if scenario.Commands != "" {
		commands, _ := codec.ParseCommands(scenario.Commands)
		outcome := engine.ExecuteAll(grid, vehicle, commands)
		result.info("Commands %s -> %s", scenario.Commands, codec.RenderOutcome(outcome))
	}

	return result
}

// obstaclesOutside lists obstacles that no wrapped position can equal
func obstaclesOutside(grid engine.Grid) []string {
	var outside []string
	for _, o := range grid.Obstacles() {
		if !grid.Contains(o) {
			outside = append(outside, fmt.Sprintf("%d,%d", o.X, o.Y))
		}
	}
	return outside
}

// validateConnectivity reports how many free cells are reachable from the
// start. Unreachable cells are informational, not errors.
func validateConnectivity(grid engine.Grid, start engine.Position) ValidationResult {
	result := ValidationResult{Valid: true, Messages: []string{}}

	free := grid.Width()*grid.Height() - len(uniqueObstacles(grid))
	reach := engine.Reachable(grid, start)

	if len(reach) == free {
		result.info("Connectivity: all %d free cells reachable", free)
		return result
	}

	result.info("Connectivity: %d/%d free cells reachable", len(reach), free)
	shown := 0
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			p := engine.Position{X: x, Y: y}
			if reach[p] || grid.IsBlocked(p) {
				continue
			}
			if shown < 5 {
				result.Messages = append(result.Messages, fmt.Sprintf("⚠ Unreachable: %d,%d", x, y))
			}
			shown++
		}
	}
	if shown > 5 {
		result.Messages = append(result.Messages, fmt.Sprintf("⚠ ... and %d more", shown-5))
	}
	return result
}

// uniqueObstacles counts distinct in-grid obstacle cells
func uniqueObstacles(grid engine.Grid) map[engine.Position]bool {
	cells := make(map[engine.Position]bool)
	for _, o := range grid.Obstacles() {
		if grid.Contains(o) {
			cells[o] = true
		}
	}
	return cells
}

// validateDir validates every scenario file in dir
func validateDir(dir string) ([]ValidationResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var results []ValidationResult
	for _, entry := range entries {
		if entry.IsDir() || !config.IsScenarioFile(entry.Name()) {
			continue
		}
		results = append(results, validateScenario(filepath.Join(dir, entry.Name())))
	}
	return results, nil
}

// main validates the directory given as first argument and exits non-zero
// if any scenario is invalid.
func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	results, err := validateDir(configDir)
	if err != nil {
		fmt.Printf("Error finding scenario files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, result := range results {
		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Messages {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, msg := range result.Messages {
				if !strings.HasPrefix(msg, "✓") {
					fmt.Println("  ❌ " + msg)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Printf("✅ All %d scenarios are valid!\n", len(results))
	} else {
		fmt.Println("❌ Some scenarios have errors")
		os.Exit(1)
	}
}

