// Package config provides scenario management for rover missions.
//
// The config package handles:
//   - Loading named scenarios from JSON, YAML and HCL files
//   - Scenario validation through the text codec
//   - Default scenario management
//   - Scenario discovery, listing and saving
//
// Scenario Format:
//
// Scenarios are stored in the configs directory, one per file. The file name
// without extension is the scenario identifier. Each scenario defines a grid
// size ("5x4"), obstacle coordinates ("2,0"), a starting position ("0,0"),
// a heading (N, E, S or W) and optionally a command string ("RBBLBRF").
//
//	{
//	  "name": "Kata",
//	  "size": "5x4",
//	  "obstacles": ["2,0", "0,3", "3,2"],
//	  "position": "0,0",
//	  "heading": "N",
//	  "commands": "RBBLBRF"
//	}
//
// The same fields are accepted as YAML keys or HCL attributes.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	scenario, err := manager.LoadScenario("default")
//	scenarios, err := manager.ListScenarios()
package config
