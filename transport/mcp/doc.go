// Package mcp provides a Model Context Protocol server for rover missions.
//
// The server is a thin client of the REST API: every tool call becomes one
// HTTP request and the JSON response is formatted as text for the agent.
//
// MCP Tools:
//   - run_mission: Run an ad-hoc mission from its text fields
//   - run_scenario: Run a stored scenario, optionally with replacement commands
//   - list_scenarios: List stored scenarios
//   - get_scenario: Show a scenario with an ASCII map
//   - mission_instructions: Rules and text formats
//
// Transport Modes:
//   - Stdio: server.ServeStdio(client.GetMCPServer())
//   - HTTP: POST JSON-RPC messages to /mcp on the API server
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal(err)
//	}
package mcp
