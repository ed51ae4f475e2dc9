package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/wricardo/rover-mission/mission/codec"
	"github.com/wricardo/rover-mission/mission/engine"
)

// stubSource returns fixed values or a fixed failure
type stubSource struct {
	grid       engine.Grid
	vehicle    engine.Vehicle
	gridErr    error
	vehicleErr error
	calls      []string
}

func (s *stubSource) ReadGrid(ctx context.Context) (engine.Grid, error) {
	s.calls = append(s.calls, "grid")
	return s.grid, s.gridErr
}

func (s *stubSource) ReadVehicle(ctx context.Context) (engine.Vehicle, error) {
	s.calls = append(s.calls, "vehicle")
	return s.vehicle, s.vehicleErr
}

type stubChannel struct {
	commands []engine.Command
	err      error
	called   bool
}

func (c *stubChannel) ReceiveCommands(ctx context.Context) ([]engine.Command, error) {
	c.called = true
	return c.commands, c.err
}

// spyReporter records every call it receives
type spyReporter struct {
	calls  int
	output string
}

func (r *spyReporter) ReportCompleted(ctx context.Context, v engine.Vehicle) {
	r.calls++
	r.output = "COMPLETED: " + codec.RenderVehicle(v)
}

func (r *spyReporter) ReportObstacle(ctx context.Context, v engine.Vehicle) {
	r.calls++
	r.output = "OBSTACLE: " + codec.RenderVehicle(v)
}

func (r *spyReporter) ReportError(ctx context.Context, reason string) {
	r.calls++
	r.output = "ERROR: " + reason
}

func createTestSource(t *testing.T) *stubSource {
	t.Helper()
	grid, err := engine.NewGrid(5, 4, []engine.Position{{X: 2, Y: 0}, {X: 0, Y: 3}, {X: 3, Y: 2}})
	if err != nil {
		t.Fatalf("Failed to create grid: %v", err)
	}
	return &stubSource{
		grid:    grid,
		vehicle: engine.Vehicle{Position: engine.Position{X: 0, Y: 0}, Heading: engine.North},
	}
}

func mustCommands(t *testing.T, text string) []engine.Command {
	t.Helper()
	cmds, err := codec.ParseCommands(text)
	if err != nil {
		t.Fatalf("Failed to parse commands %q: %v", text, err)
	}
	return cmds
}

func TestRunApp_GoToOppositeAngle(t *testing.T) {
	reporter := &spyReporter{}
	err := RunApp(context.Background(), createTestSource(t), &stubChannel{commands: mustCommands(t, "RBBLBRF")}, reporter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reporter.output != "COMPLETED: 4:3:E" {
		t.Errorf("expected COMPLETED: 4:3:E, got %q", reporter.output)
	}
	if reporter.calls != 1 {
		t.Errorf("expected exactly one report, got %d", reporter.calls)
	}
}

func TestRunApp_HitObstacle(t *testing.T) {
	reporter := &spyReporter{}
	err := RunApp(context.Background(), createTestSource(t), &stubChannel{commands: mustCommands(t, "RFF")}, reporter)
	if err != nil {
		t.Fatalf("obstacle must not be an error, got %v", err)
	}
	if reporter.output != "OBSTACLE: 1:0:E" {
		t.Errorf("expected OBSTACLE: 1:0:E, got %q", reporter.output)
	}
	if reporter.calls != 1 {
		t.Errorf("expected exactly one report, got %d", reporter.calls)
	}
}

func TestRunApp_AcquisitionErrors(t *testing.T) {
	gridErr := &codec.ParseError{Kind: codec.InvalidGrid, Reason: "invalid size: 0x4", Token: "0x4"}
	vehicleErr := &codec.ParseError{Kind: codec.InvalidVehicle, Reason: "invalid position: 20", Token: "20"}
	commandErr := fmt.Errorf("console closed")

	tests := []struct {
		name          string
		gridErr       error
		vehicleErr    error
		channelErr    error
		expected      error
		expectChannel bool
	}{
		{"grid fails first", gridErr, vehicleErr, nil, gridErr, false},
		{"vehicle fails", nil, vehicleErr, nil, vehicleErr, false},
		{"channel fails", nil, nil, commandErr, commandErr, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			src := createTestSource(t)
			src.gridErr = test.gridErr
			src.vehicleErr = test.vehicleErr
			ch := &stubChannel{err: test.channelErr}
			reporter := &spyReporter{}

			err := RunApp(context.Background(), src, ch, reporter)
			if err != test.expected {
				t.Errorf("expected error to propagate untranslated, got %v", err)
			}
			if reporter.calls != 1 {
				t.Errorf("expected exactly one report, got %d", reporter.calls)
			}
			if !strings.HasPrefix(reporter.output, "ERROR: ") || !strings.Contains(reporter.output, test.expected.Error()) {
				t.Errorf("unexpected report %q", reporter.output)
			}
			if ch.called != test.expectChannel {
				t.Errorf("expected channel called=%v, got %v", test.expectChannel, ch.called)
			}
		})
	}
}

func TestRunMission_AcquisitionOrder(t *testing.T) {
	src := createTestSource(t)
	_, err := RunMission(context.Background(), src, &stubChannel{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(src.calls, ",") != "grid,vehicle" {
		t.Errorf("expected grid then vehicle, got %v", src.calls)
	}
}

func TestRunMission_TextSource(t *testing.T) {
	tests := []struct {
		name     string
		src      *TextSource
		expected string
		sentinel error
	}{
		{
			name:     "completed",
			src:      &TextSource{Size: "5x4", Obstacles: "2,0 0,3 3,2", Position: "0,0", Heading: "N", Commands: "RBBLBRF"},
			expected: "4:3:E",
		},
		{
			name:     "obstacle",
			src:      &TextSource{Size: "5x4", Obstacles: "2,0 0,3 3,2", Position: "0,0", Heading: "N", Commands: "RFF"},
			expected: "O:1:0:E",
		},
		{
			name:     "invalid grid",
			src:      &TextSource{Size: "0x4", Obstacles: "", Position: "0,0", Heading: "N", Commands: "F"},
			sentinel: codec.ErrInvalidGrid,
		},
		{
			name:     "invalid vehicle",
			src:      &TextSource{Size: "5x4", Position: "20", Heading: "N", Commands: "F"},
			sentinel: codec.ErrInvalidVehicle,
		},
		{
			name:     "invalid command",
			src:      &TextSource{Size: "5x4", Position: "0,0", Heading: "N", Commands: "BFXLR"},
			sentinel: codec.ErrInvalidCommand,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			outcome, err := RunMission(context.Background(), test.src, test.src)
			if test.sentinel != nil {
				if !errors.Is(err, test.sentinel) {
					t.Errorf("expected %v, got %v", test.sentinel, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := codec.RenderOutcome(outcome); got != test.expected {
				t.Errorf("expected %s, got %s", test.expected, got)
			}
		})
	}
}
