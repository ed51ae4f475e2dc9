// Command analyze prints quick, human-readable heuristics about the scenarios
// in a configs directory: grid dimensions, obstacle density, how much of the
// grid the rover can reach, a map, and a step trace of the stored commands.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/wricardo/rover-mission/mission/codec"
	"github.com/wricardo/rover-mission/mission/config"
	"github.com/wricardo/rover-mission/mission/engine"
	"github.com/wricardo/rover-mission/mission/service"
)

// Map legend
const (
	cellFree        = '.'
	cellObstacle    = '#'
	cellUnreachable = '~'
	cellPath        = '*'
)

var roverGlyphs = map[engine.Heading]rune{
	engine.North: '^',
	engine.East:  '>',
	engine.South: 'v',
	engine.West:  '<',
}

func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	manager, err := config.NewManager(configDir)
	if err != nil {
		fmt.Printf("Error opening configs: %v\n", err)
		os.Exit(1)
	}

	scenarios, err := manager.ListScenarios()
	if err != nil {
		fmt.Printf("Error listing scenarios: %v\n", err)
		os.Exit(1)
	}

	for _, info := range scenarios {
		fmt.Printf("\n=== Analyzing %s ===\n", info.Filename)
		scenario, err := manager.LoadScenario(info.ScenarioID)
		if err != nil {
			fmt.Printf("Error loading scenario: %v\n", err)
			continue
		}
		if err := analyzeScenario(os.Stdout, scenario); err != nil {
			fmt.Printf("Error analyzing scenario: %v\n", err)
		}
	}
}

// analyzeScenario writes the report for one scenario. The scenario is
// validated first, which also bounds the grid size.
func analyzeScenario(w io.Writer, scenario *service.Scenario) error {
	if err := config.ValidateScenario(scenario); err != nil {
		return err
	}

	src := scenario.TextSource("")
	grid, err := codec.ParseGrid(src.Size, src.Obstacles)
	if err != nil {
		return err
	}
	vehicle, err := codec.ParseVehicle(src.Position, src.Heading)
	if err != nil {
		return err
	}

	cells := grid.Width() * grid.Height()
	blocked := blockedCells(grid)
	free := cells - len(blocked)

	fmt.Fprintf(w, "Name: %s\n", scenario.Name)
	fmt.Fprintf(w, "Grid Size: %d x %d\n", grid.Width(), grid.Height())
	fmt.Fprintf(w, "Obstacles: %d (%.1f%% of cells)\n", len(blocked), percent(len(blocked), cells))
	fmt.Fprintf(w, "Start: %s\n", codec.RenderVehicle(vehicle))

	reach := engine.Reachable(grid, vehicle.Position)
	if len(reach) == free {
		fmt.Fprintf(w, "✅ All %d free cells are reachable from the start\n", free)
	} else {
		fmt.Fprintf(w, "⚠️  WARNING: only %d of %d free cells (%.1f%%) are reachable from the start\n",
			len(reach), free, percent(len(reach), free))
	}

	var steps []engine.Step
	final := vehicle
	if scenario.Commands != "" {
		commands, err := codec.ParseCommands(scenario.Commands)
		if err != nil {
			return err
		}
		var outcome engine.Outcome
		outcome, steps = engine.Trace(grid, vehicle, commands)
		final = outcome.Vehicle
		fmt.Fprintf(w, "Commands: %s -> %s\n", scenario.Commands, codec.RenderOutcome(outcome))
	}

	fmt.Fprintln(w)
	fmt.Fprint(w, renderMap(grid, reach, steps, final))

	for _, s := range steps {
		line := fmt.Sprintf("  %d. %s %s -> %s", s.Index+1, s.Command, codec.RenderVehicle(s.From), codec.RenderVehicle(s.To))
		if s.Blocked {
			line += " (blocked)"
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

// renderMap draws the grid north-up. Cells the trace passed through are
// marked with the path glyph and the rover is drawn at its final pose.
func renderMap(grid engine.Grid, reach map[engine.Position]bool, steps []engine.Step, final engine.Vehicle) string {
	path := make(map[engine.Position]bool)
	for _, s := range steps {
		path[s.From.Position] = true
		if !s.Blocked {
			path[s.To.Position] = true
		}
	}

	var out []rune
	for y := grid.Height() - 1; y >= 0; y-- {
		for x := 0; x < grid.Width(); x++ {
			p := engine.Position{X: x, Y: y}
			switch {
			case p == final.Position:
				out = append(out, roverGlyphs[final.Heading])
			case grid.IsBlocked(p):
				out = append(out, cellObstacle)
			case path[p]:
				out = append(out, cellPath)
			case !reach[p]:
				out = append(out, cellUnreachable)
			default:
				out = append(out, cellFree)
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}

// blockedCells returns the distinct obstacle cells inside the grid, sorted
func blockedCells(grid engine.Grid) []engine.Position {
	seen := make(map[engine.Position]bool)
	var cells []engine.Position
	for _, o := range grid.Obstacles() {
		if grid.Contains(o) && !seen[o] {
			seen[o] = true
			cells = append(cells, o)
		}
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) * 100 / float64(whole)
}
