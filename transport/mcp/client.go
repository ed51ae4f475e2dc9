package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/rover-mission/mission/codec"
	"github.com/wricardo/rover-mission/mission/engine"
	"github.com/wricardo/rover-mission/mission/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Rover Mission",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Rover Mission - MCP Interface

This is a thin client that proxies all requests to the REST API server.

A rover moves on a wrap-around grid with obstacles. Send it a command string
and get back where it stopped.

AVAILABLE TOOLS:
- run_mission: Run an ad-hoc mission from grid, rover and commands
- run_scenario: Run a stored scenario, optionally with other commands
- list_scenarios: List stored scenarios
- get_scenario: Show a stored scenario with a map
- mission_instructions: Formats, rules and examples`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "run_mission",
		Description: "Run a rover mission described in text formats",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"size": map[string]interface{}{
					"type":        "string",
					"description": "Grid size as WIDTHxHEIGHT, e.g. 5x4",
				},
				"obstacles": map[string]interface{}{
					"type":        "string",
					"description": "Space separated x,y obstacle coordinates, e.g. \"2,0 0,3\"",
				},
				"position": map[string]interface{}{
					"type":        "string",
					"description": "Starting position as x,y",
				},
				"heading": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"N", "E", "S", "W"},
					"description": "Starting heading",
				},
				"commands": map[string]interface{}{
					"type":        "string",
					"description": "Command string of F, B, L, R",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of what this mission is meant to achieve",
				},
			},
			Required: []string{"size", "position", "heading", "commands"},
		},
	}, c.handleRunMission)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "run_scenario",
		Description: "Run a stored scenario",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"scenario_id": map[string]interface{}{
					"type":        "string",
					"description": "Scenario identifier from list_scenarios",
				},
				"commands": map[string]interface{}{
					"type":        "string",
					"description": "Replacement command string (optional)",
				},
			},
			Required: []string{"scenario_id"},
		},
	}, c.handleRunScenario)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_scenarios",
		Description: "List stored scenarios",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListScenarios)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_scenario",
		Description: "Get a stored scenario with an ASCII map of its grid",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"scenario_id": map[string]interface{}{
					"type":        "string",
					"description": "Scenario identifier",
				},
			},
			Required: []string{"scenario_id"},
		},
	}, c.handleGetScenario)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "mission_instructions",
		Description: "Get the rules and text formats of rover missions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleMissionInstructions)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// apiCall makes an HTTP request to the REST API
func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	endpoint := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, endpoint, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func (c *Client) handleRunMission(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	req := service.MissionRequest{}
	req.Size, _ = args["size"].(string)
	req.Obstacles, _ = args["obstacles"].(string)
	req.Position, _ = args["position"].(string)
	req.Heading, _ = args["heading"].(string)
	req.Commands, _ = args["commands"].(string)

	var result service.MissionResult
	if err := c.apiCall("POST", "/api/missions", req, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMissionResult(&result)), nil
}

func (c *Client) handleRunScenario(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	id, _ := args["scenario_id"].(string)
	if id == "" {
		return mcp.NewToolResultError("scenario_id is required"), nil
	}

	body := map[string]string{}
	if commands, _ := args["commands"].(string); commands != "" {
		body["commands"] = commands
	}

	var result service.MissionResult
	if err := c.apiCall("POST", "/api/scenarios/"+url.PathEscape(id)+"/run", body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMissionResult(&result)), nil
}

func (c *Client) handleListScenarios(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var infos []*service.ScenarioInfo
	if err := c.apiCall("GET", "/api/scenarios", nil, &infos); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatScenarioList(infos)), nil
}

func (c *Client) handleGetScenario(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	id, _ := args["scenario_id"].(string)
	if id == "" {
		return mcp.NewToolResultError("scenario_id is required"), nil
	}

	var scenario service.Scenario
	if err := c.apiCall("GET", "/api/scenarios/"+url.PathEscape(id), nil, &scenario); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatScenario(id, &scenario)), nil
}

func (c *Client) handleMissionInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `Rover Mission - Complete Instructions

THE GRID:
The grid is WIDTH columns by HEIGHT rows. x grows to the East, y grows to the
North. Coordinates wrap: leaving one edge re-enters on the opposite edge, so
on a 5x4 grid moving East from 4,y lands on 0,y.

OBSTACLES:
An obstacle occupies one cell. A move that would land on an obstacle is
refused, the rover stays where it was and the mission stops there. Commands
after the blocked one are ignored.

COMMANDS:
- F: move one cell forward along the heading
- B: move one cell backward (opposite the heading), heading unchanged
- L: turn 90 degrees left in place
- R: turn 90 degrees right in place
Commands are case-insensitive. Any other character rejects the whole string.

TEXT FORMATS:
- size: "5x4"
- obstacles: "2,0 0,3 3,2"
- position: "0,0"
- heading: N, E, S or W

RESULTS:
- "4:3:E" - every command ran, rover at 4,3 facing East
- "O:1:0:E" - stopped before an obstacle, rover at 1,0 facing East
A stop before an obstacle is a normal result, not an error.

EXAMPLE:
size 5x4, obstacles "2,0 0,3 3,2", position 0,0, heading N
- commands RBBLBRF -> 4:3:E
- commands RFF -> O:1:0:E

TIPS:
- Use get_scenario to see the map before planning a route
- Use the step list in each result to see where a mission stopped
`

func formatMissionResult(result *service.MissionResult) string {
	var b strings.Builder

	if result.Outcome.Blocked() {
		fmt.Fprintf(&b, "⚠ Obstacle detected: %s\n", result.Result)
		fmt.Fprintf(&b, "Stopped on command %d of %d\n", result.StoppedOnCommand, result.RequestedCommands)
	} else {
		fmt.Fprintf(&b, "✓ Sequence completed: %s\n", result.Result)
		fmt.Fprintf(&b, "Executed %d commands\n", result.CommandsExecuted)
	}

	if result.Scenario != "" {
		fmt.Fprintf(&b, "Scenario: %s\n", result.Scenario)
	}
	fmt.Fprintf(&b, "Start: %s\n", codec.RenderVehicle(result.Start))
	fmt.Fprintf(&b, "Grid: %dx%d with %d obstacles\n", result.Grid.Width, result.Grid.Height, len(result.Grid.Obstacles))

	if len(result.Steps) > 0 {
		b.WriteString("\nSteps:\n")
		for _, step := range result.Steps {
			b.WriteString(formatStepLine(step))
		}
	}

	return b.String()
}

func formatStepLine(step engine.Step) string {
	if step.Blocked {
		return fmt.Sprintf("  %d. %s %s -> blocked\n", step.Index+1, step.Command, codec.RenderVehicle(step.From))
	}
	return fmt.Sprintf("  %d. %s %s -> %s\n", step.Index+1, step.Command, codec.RenderVehicle(step.From), codec.RenderVehicle(step.To))
}

func formatScenarioList(infos []*service.ScenarioInfo) string {
	if len(infos) == 0 {
		return "No scenarios available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Available scenarios (%d):\n", len(infos))
	for _, info := range infos {
		fmt.Fprintf(&b, "- %s: %s (%s, %d obstacles, %s)\n", info.ScenarioID, info.Name, info.Size, info.Obstacles, info.Format)
		if info.Description != "" {
			fmt.Fprintf(&b, "  %s\n", info.Description)
		}
	}
	return b.String()
}

func formatScenario(id string, scenario *service.Scenario) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scenario %s: %s\n", id, scenario.Name)
	if scenario.Description != "" {
		fmt.Fprintf(&b, "%s\n", scenario.Description)
	}
	fmt.Fprintf(&b, "Size: %s\n", scenario.Size)
	fmt.Fprintf(&b, "Obstacles: %s\n", strings.Join(scenario.Obstacles, " "))
	fmt.Fprintf(&b, "Rover: %s %s\n", scenario.Position, scenario.Heading)
	if scenario.Commands != "" {
		fmt.Fprintf(&b, "Commands: %s\n", scenario.Commands)
	}

	src := scenario.TextSource("")
	grid, err := src.ReadGrid(context.Background())
	if err != nil {
		return b.String()
	}
	vehicle, err := src.ReadVehicle(context.Background())
	if err != nil {
		return b.String()
	}

	if grid.Width() > maxMapWidth || grid.Height() > maxMapHeight {
		fmt.Fprintf(&b, "\nMap omitted: grids larger than %dx%d are not drawn\n", maxMapWidth, maxMapHeight)
		return b.String()
	}
	b.WriteString("\nMap (north up, # obstacle, rover as heading arrow):\n")
	b.WriteString(formatMap(grid, vehicle))
	return b.String()
}

// Largest grid drawn by formatScenario
const (
	maxMapWidth  = 80
	maxMapHeight = 40
)

var headingArrows = map[engine.Heading]string{
	engine.North: "^",
	engine.East:  ">",
	engine.South: "v",
	engine.West:  "<",
}

// formatMap draws the grid with the highest row first
func formatMap(grid engine.Grid, vehicle engine.Vehicle) string {
	var b strings.Builder
	for y := grid.Height() - 1; y >= 0; y-- {
		for x := 0; x < grid.Width(); x++ {
			p := engine.Position{X: x, Y: y}
			switch {
			case p == vehicle.Position:
				b.WriteString(headingArrows[vehicle.Heading])
			case grid.IsBlocked(p):
				b.WriteString("#")
			default:
				b.WriteString(".")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
