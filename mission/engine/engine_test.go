package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var (
	R = TurnRight
	L = TurnLeft
	F = MoveForward
	B = MoveBackward
)

func TestExecuteAll_Scenarios(t *testing.T) {
	grid := createTestGrid(t)
	start := Vehicle{Position: Position{X: 0, Y: 0}, Heading: North}

	tests := []struct {
		name     string
		commands []Command
		expected Outcome
	}{
		{
			name:     "go to opposite angle",
			commands: []Command{R, B, B, L, B, R, F},
			expected: Outcome{Kind: Completed, Vehicle: Vehicle{Position{4, 3}, East}},
		},
		{
			name:     "hit obstacle during commands execution",
			commands: []Command{R, F, F},
			expected: Outcome{Kind: ObstacleHit, Vehicle: Vehicle{Position{1, 0}, East}},
		},
		{
			name:     "empty command list",
			commands: nil,
			expected: Outcome{Kind: Completed, Vehicle: start},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ExecuteAll(grid, start, test.commands)
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Errorf("ExecuteAll mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExecuteAll_ShortCircuit(t *testing.T) {
	grid := createTestGrid(t)
	start := Vehicle{Position: Position{X: 0, Y: 0}, Heading: North}
	blocked := ExecuteAll(grid, start, []Command{R, F, F})

	suffixes := [][]Command{
		{L, L, F, F, F},
		{B, B, B},
		{R, R, R, R, F},
	}
	for _, suffix := range suffixes {
		cmds := append([]Command{R, F, F}, suffix...)
		got := ExecuteAll(grid, start, cmds)
		if got != blocked {
			t.Errorf("suffix %v changed the blocked outcome: expected %v, got %v", suffix, blocked, got)
		}
	}
}

func TestExecuteAll_Repeatable(t *testing.T) {
	grid := createTestGrid(t)
	start := Vehicle{Position: Position{X: 0, Y: 0}, Heading: North}
	cmds := []Command{R, B, B, L, B, R, F}

	first := ExecuteAll(grid, start, cmds)
	for i := 0; i < 10; i++ {
		if got := ExecuteAll(grid, start, cmds); got != first {
			t.Fatalf("run %d: expected %v, got %v", i, first, got)
		}
	}
}

func TestTrace(t *testing.T) {
	grid := createTestGrid(t)
	start := Vehicle{Position: Position{X: 0, Y: 0}, Heading: North}

	t.Run("blocked sequence stops at blocking step", func(t *testing.T) {
		outcome, steps := Trace(grid, start, []Command{R, F, F, L, F})
		if outcome != ExecuteAll(grid, start, []Command{R, F, F, L, F}) {
			t.Errorf("Trace outcome differs from ExecuteAll: %v", outcome)
		}

		expected := []Step{
			{Index: 0, Command: R, From: start, To: Vehicle{Position{0, 0}, East}},
			{Index: 1, Command: F, From: Vehicle{Position{0, 0}, East}, To: Vehicle{Position{1, 0}, East}},
			{Index: 2, Command: F, From: Vehicle{Position{1, 0}, East}, To: Vehicle{Position{1, 0}, East}, Blocked: true},
		}
		if diff := cmp.Diff(expected, steps); diff != "" {
			t.Errorf("Trace steps mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("completed sequence records every command", func(t *testing.T) {
		cmds := []Command{R, B, B, L, B, R, F}
		outcome, steps := Trace(grid, start, cmds)
		if outcome.Blocked() {
			t.Fatal("expected completed outcome")
		}
		if len(steps) != len(cmds) {
			t.Fatalf("expected %d steps, got %d", len(cmds), len(steps))
		}
		if steps[len(steps)-1].To != outcome.Vehicle {
			t.Errorf("last step ends at %v, outcome is %v", steps[len(steps)-1].To, outcome.Vehicle)
		}
	})
}
