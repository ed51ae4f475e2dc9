// Package api provides HTTP REST API handlers for rover missions.
//
// The api package implements:
//   - Ad-hoc mission execution from text fields
//   - Scenario listing, retrieval, creation and execution
//   - WebSocket subscription to mission results
//
// Endpoints:
//
// Missions:
//   - POST /api/missions - Run a mission described in its text formats
//
// Scenarios:
//   - GET /api/scenarios - List stored scenarios
//   - POST /api/scenarios - Store a scenario
//   - GET /api/scenarios/{name} - Get a stored scenario
//   - POST /api/scenarios/{name}/run - Run a stored scenario
//
// Other:
//   - GET /api/health - Liveness check
//   - GET /ws?topic=<scenario|adhoc|*> - Subscribe to mission results
//
// Request/Response Format:
//
// Missions are sent as JSON text fields:
//
//	{
//	  "size": "5x4",
//	  "obstacles": "2,0 0,3 3,2",
//	  "position": "0,0",
//	  "heading": "N",
//	  "commands": "RBBLBRF"
//	}
//
// A scenario run accepts an optional body {"commands": "RFF"} that replaces
// the stored commands.
//
// The response is a MissionResult: the outcome, the rendered result ("4:3:E"
// or "O:1:0:E"), one step per evaluated command, and the 1-based index of the
// command that was blocked, if any.
//
// Error Handling:
//
// Errors are returned as JSON. Malformed input is a 400 and names the kind
// and the offending token; an unknown scenario is a 404:
//
//	{
//	  "error": "invalid command: unknown command: X",
//	  "kind": "invalid command",
//	  "token": "X"
//	}
//
// Stopping before an obstacle is a normal 200 result, not an error.
package api
