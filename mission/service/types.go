package service

import (
	"errors"
	"strings"
	"time"

	"github.com/wricardo/rover-mission/mission/engine"
)

var (
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrInvalidScenario  = errors.New("invalid scenario")
)

// AdhocTopic is the broadcast topic of missions that are not tied to a scenario
const AdhocTopic = "adhoc"

// Scenario is a named, stored mission description
type Scenario struct {
	Name        string   `json:"name" yaml:"name" hcl:"name"`
	Description string   `json:"description" yaml:"description" hcl:"description,optional"`
	Size        string   `json:"size" yaml:"size" hcl:"size"`
	Obstacles   []string `json:"obstacles" yaml:"obstacles" hcl:"obstacles,optional"`
	Position    string   `json:"position" yaml:"position" hcl:"position"`
	Heading     string   `json:"heading" yaml:"heading" hcl:"heading"`
	Commands    string   `json:"commands,omitempty" yaml:"commands,omitempty" hcl:"commands,optional"`
}

// TextSource returns a source for the scenario. A non-empty commands string
// replaces the scenario's own commands.
func (s *Scenario) TextSource(commands string) *TextSource {
	if commands == "" {
		commands = s.Commands
	}
	return &TextSource{
		Size:      s.Size,
		Obstacles: strings.Join(s.Obstacles, " "),
		Position:  s.Position,
		Heading:   s.Heading,
		Commands:  commands,
	}
}

// ScenarioInfo provides summary information about a stored scenario
type ScenarioInfo struct {
	Filename    string `json:"filename"`
	ScenarioID  string `json:"scenario_id"` // The identifier to use for runs
	Name        string `json:"name"`        // Display name
	Description string `json:"description"`
	Size        string `json:"size"`
	Obstacles   int    `json:"obstacles"`
	Format      string `json:"format"` // json, yaml or hcl
}

// MissionRequest carries a mission in its text formats
type MissionRequest struct {
	Size      string `json:"size"`
	Obstacles string `json:"obstacles"`
	Position  string `json:"position"`
	Heading   string `json:"heading"`
	Commands  string `json:"commands"`
}

// GridInfo summarizes the grid a mission ran on
type GridInfo struct {
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Obstacles []engine.Position `json:"obstacles"`
}

// MissionResult contains the result of one mission run
type MissionResult struct {
	ID       string `json:"id"`
	Topic    string `json:"topic"`
	Scenario string `json:"scenario,omitempty"`

	Outcome engine.Outcome `json:"outcome"`
	Result  string         `json:"result"` // Rendered text form, e.g. "O:1:0:E"

	Commands          string `json:"commands"`
	RequestedCommands int    `json:"requested_commands"`
	CommandsExecuted  int    `json:"commands_executed"`
	StoppedOnCommand  int    `json:"stopped_on_command,omitempty"` // 1-based index of the blocked command

	Start engine.Vehicle `json:"start"`
	Grid  GridInfo       `json:"grid"`
	Steps []engine.Step  `json:"steps,omitempty"`

	FinishedAt time.Time `json:"finished_at"`
}
