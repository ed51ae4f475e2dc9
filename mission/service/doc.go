// Package service provides the mission orchestration layer for the rover
// simulator.
//
// The service package implements:
//   - The collaborator contracts a mission needs (Source, Channel, Reporter)
//   - RunMission and RunApp, which compose acquisition, interpretation and
//     reporting into one run
//   - MissionService, the ctx-aware API used by the HTTP, WebSocket and MCP
//     transports
//
// Core Interfaces:
//
// Source produces a validated Grid and Vehicle. Channel produces a validated
// command list. Reporter receives exactly one terminal signal per run.
// ScenarioStore loads and saves named scenarios; it is implemented by the
// config package.
//
// Usage:
//
//	src := &service.TextSource{
//		Size:      "5x4",
//		Obstacles: "2,0 0,3 3,2",
//		Position:  "0,0",
//		Heading:   "N",
//		Commands:  "RBBLBRF",
//	}
//	err := service.RunApp(ctx, src, src, reporter)
//
// Errors:
//
// Collaborator failures are returned untouched so callers can still match
// codec.ErrInvalidGrid and friends with errors.Is. An obstacle stop is not an
// error; it is reported through Reporter.ReportObstacle.
package service
