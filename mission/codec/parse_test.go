package codec

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/wricardo/rover-mission/mission/engine"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		input    string
		expected engine.Position
		wantErr  bool
	}{
		{"2,0", engine.Position{X: 2, Y: 0}, false},
		{" 3 , 4 ", engine.Position{X: 3, Y: 4}, false},
		{"-1,7", engine.Position{X: -1, Y: 7}, false},
		{"20", engine.Position{}, true},
		{"1,2,3", engine.Position{}, true},
		{"a,b", engine.Position{}, true},
		{"", engine.Position{}, true},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got, err := ParsePosition(test.input)
			if test.wantErr {
				if !errors.Is(err, ErrInvalidVehicle) {
					t.Errorf("expected ErrInvalidVehicle, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != test.expected {
				t.Errorf("expected %v, got %v", test.expected, got)
			}
		})
	}
}

func TestParseHeading(t *testing.T) {
	valid := map[string]engine.Heading{
		"N": engine.North, "n": engine.North,
		"E": engine.East, "e": engine.East,
		"S": engine.South, "s": engine.South,
		"W": engine.West, "w": engine.West,
		" N ": engine.North,
	}
	for input, expected := range valid {
		got, err := ParseHeading(input)
		if err != nil {
			t.Errorf("ParseHeading(%q): unexpected error %v", input, err)
			continue
		}
		if got != expected {
			t.Errorf("ParseHeading(%q): expected %s, got %s", input, expected, got)
		}
	}

	for _, input := range []string{"X", "", "NE", "north"} {
		_, err := ParseHeading(input)
		if !errors.Is(err, ErrInvalidVehicle) {
			t.Errorf("ParseHeading(%q): expected ErrInvalidVehicle, got %v", input, err)
		}
	}
}

func TestParseHeading_RoundTrip(t *testing.T) {
	for _, h := range []engine.Heading{engine.North, engine.East, engine.South, engine.West} {
		got, err := ParseHeading(h.String())
		if err != nil {
			t.Fatalf("ParseHeading(%s): %v", h, err)
		}
		if got != h {
			t.Errorf("expected %s, got %s", h, got)
		}
	}
}

func TestParseSize(t *testing.T) {
	w, h, err := ParseSize("5x4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != 5 || h != 4 {
		t.Errorf("expected 5x4, got %dx%d", w, h)
	}

	if _, _, err := ParseSize("7X3"); err != nil {
		t.Errorf("expected upper-case separator to be accepted, got %v", err)
	}

	for _, input := range []string{"0x4", "5x0", "-5x4", "54", "5x4x3", "axb"} {
		_, _, err := ParseSize(input)
		if !errors.Is(err, ErrInvalidGrid) {
			t.Errorf("ParseSize(%q): expected ErrInvalidGrid, got %v", input, err)
		}
	}
}

func TestParseObstacles(t *testing.T) {
	t.Run("valid list", func(t *testing.T) {
		got, err := ParseObstacles("2,0 0,3 3,2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected := []engine.Position{{X: 2, Y: 0}, {X: 0, Y: 3}, {X: 3, Y: 2}}
		if diff := cmp.Diff(expected, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("blank means none", func(t *testing.T) {
		got, err := ParseObstacles("   ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no obstacles, got %v", got)
		}
	})

	t.Run("one bad token fails all", func(t *testing.T) {
		got, err := ParseObstacles("2,0 oops 3,2")
		if got != nil {
			t.Errorf("expected no partial result, got %v", got)
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("expected *ParseError, got %v", err)
		}
		if perr.Kind != InvalidGrid || perr.Token != "oops" {
			t.Errorf("expected InvalidGrid on token oops, got %v %q", perr.Kind, perr.Token)
		}
	})
}

func TestParseGrid(t *testing.T) {
	grid, err := ParseGrid("5x4", "2,0 0,3 3,2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grid.Width() != 5 || grid.Height() != 4 {
		t.Errorf("expected 5x4, got %dx%d", grid.Width(), grid.Height())
	}
	if !grid.IsBlocked(engine.Position{X: 3, Y: 2}) {
		t.Error("expected (3,2) to be blocked")
	}

	_, err = ParseGrid("0x4", "")
	if !errors.Is(err, ErrInvalidGrid) {
		t.Errorf("expected ErrInvalidGrid for 0x4, got %v", err)
	}
}

func TestParseVehicle(t *testing.T) {
	v, err := ParseVehicle("0,0", "N")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != (engine.Vehicle{Position: engine.Position{}, Heading: engine.North}) {
		t.Errorf("unexpected vehicle %v", v)
	}

	_, err = ParseVehicle("20", "N")
	if !errors.Is(err, ErrInvalidVehicle) {
		t.Errorf("expected ErrInvalidVehicle, got %v", err)
	}
	if errors.Is(err, ErrInvalidGrid) {
		t.Error("vehicle error should not match ErrInvalidGrid")
	}
}

func TestParseCommands(t *testing.T) {
	got, err := ParseCommands("BFLRbflr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []engine.Command{
		engine.MoveBackward, engine.MoveForward, engine.TurnLeft, engine.TurnRight,
		engine.MoveBackward, engine.MoveForward, engine.TurnLeft, engine.TurnRight,
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	empty, err := ParseCommands("")
	if err != nil || len(empty) != 0 {
		t.Errorf("expected empty command list, got %v %v", empty, err)
	}
}

func TestParseCommands_FirstErrorWins(t *testing.T) {
	_, err := ParseCommands("BFXLRY")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Kind != InvalidCommand {
		t.Errorf("expected InvalidCommand, got %v", perr.Kind)
	}
	if perr.Token != "X" {
		t.Errorf("expected offending token X, got %q", perr.Token)
	}
	if !strings.Contains(err.Error(), "X") {
		t.Errorf("expected error message to reference X, got %q", err.Error())
	}
	if !errors.Is(err, ErrInvalidCommand) {
		t.Error("expected errors.Is to match ErrInvalidCommand")
	}
}
