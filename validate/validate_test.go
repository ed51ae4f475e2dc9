package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/rover-mission/mission/codec"
	"github.com/wricardo/rover-mission/mission/engine"
)

func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func hasMessage(messages []string, fragment string) bool {
	for _, m := range messages {
		if strings.Contains(m, fragment) {
			return true
		}
	}
	return false
}

func TestValidateScenario_ValidScenario(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "kata.json", `{
		"name": "Kata",
		"size": "5x4",
		"obstacles": ["2,0", "0,3", "3,2"],
		"position": "0,0",
		"heading": "N",
		"commands": "RBBLBRF"
	}`)

	result := validateScenario(path)

	if !result.Valid {
		t.Fatalf("Expected valid scenario, got errors: %v", result.Messages)
	}
	if result.File != "kata.json" {
		t.Errorf("Expected file kata.json, got %s", result.File)
	}
	for _, want := range []string{
		"all 17 free cells reachable",
		"Grid: 5x4, 3 obstacles",
		"Rover: 0:0:N",
		"RBBLBRF -> 4:3:E",
	} {
		if !hasMessage(result.Messages, want) {
			t.Errorf("Expected message containing %q in %v", want, result.Messages)
		}
	}
}

func TestValidateScenario_Formats(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "blocked.yaml",
			content: `name: Blocked
size: 5x4
obstacles: ["2,0"]
position: "0,0"
heading: N
commands: RFF
`,
		},
		{
			name: "hcl",
			file: "blocked.hcl",
			content: `name      = "Blocked"
size      = "5x4"
obstacles = ["2,0"]
position  = "0,0"
heading   = "N"
commands  = "RFF"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateScenario(writeScenario(t, dir, tt.file, tt.content))
			if !result.Valid {
				t.Fatalf("Expected valid scenario, got errors: %v", result.Messages)
			}
			if !hasMessage(result.Messages, "RFF -> O:1:0:E") {
				t.Errorf("Expected blocked outcome in %v", result.Messages)
			}
		})
	}
}

func TestValidateScenario_Invalid(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "malformed json",
			content: `{"name": "Broken"`,
			want:    "Failed to decode",
		},
		{
			name:    "bad size",
			content: `{"name": "Bad", "size": "5by4", "position": "0,0", "heading": "N"}`,
			want:    "5by4",
		},
		{
			name:    "bad heading",
			content: `{"name": "Bad", "size": "5x4", "position": "0,0", "heading": "Q"}`,
			want:    `"Q"`,
		},
		{
			name:    "bad commands",
			content: `{"name": "Bad", "size": "5x4", "position": "0,0", "heading": "N", "commands": "FFX"}`,
			want:    "invalid command",
		},
		{
			name:    "oversized grid",
			content: `{"name": "Bad", "size": "2000000000x2000000000", "position": "0,0", "heading": "N"}`,
			want:    "at most 500",
		},
		{
			name:    "start outside grid",
			content: `{"name": "Bad", "size": "5x4", "position": "7,1", "heading": "N"}`,
			want:    "outside the 5x4 grid",
		},
		{
			name:    "start on obstacle",
			content: `{"name": "Bad", "size": "5x4", "obstacles": ["1,1"], "position": "1,1", "heading": "N"}`,
			want:    "is an obstacle",
		},
		{
			name:    "obstacle outside grid",
			content: `{"name": "Bad", "size": "5x4", "obstacles": ["9,9"], "position": "0,0", "heading": "N"}`,
			want:    "9,9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, dir, strings.ReplaceAll(tt.name, " ", "_")+".json", tt.content)
			result := validateScenario(path)

			if result.Valid {
				t.Fatal("Expected invalid scenario")
			}
			if !hasMessage(result.Messages, tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, result.Messages)
			}
		})
	}
}

func TestValidateScenario_MissingFile(t *testing.T) {
	result := validateScenario(filepath.Join(t.TempDir(), "missing.json"))

	if result.Valid {
		t.Error("Expected missing file to be invalid")
	}
	if len(result.Messages) == 0 {
		t.Error("Expected an error message for missing file")
	}
}

func TestValidateConnectivity(t *testing.T) {
	tests := []struct {
		name      string
		size      string
		obstacles string
		start     engine.Position
		want      []string
	}{
		{
			name:  "open grid",
			size:  "3x2",
			start: engine.Position{X: 0, Y: 0},
			want:  []string{"all 6 free cells reachable"},
		},
		{
			name:      "enclosed start",
			size:      "5x5",
			obstacles: "2,1 1,2 3,2 2,3",
			start:     engine.Position{X: 2, Y: 2},
			want:      []string{"1/21 free cells reachable", "⚠ Unreachable: 0,0", "⚠ ... and 15 more"},
		},
		{
			name:      "wrap keeps edge cells connected",
			size:      "3x3",
			obstacles: "1,0 1,1 1,2",
			start:     engine.Position{X: 0, Y: 0},
			want:      []string{"all 6 free cells reachable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := codec.ParseGrid(tt.size, tt.obstacles)
			if err != nil {
				t.Fatalf("ParseGrid: %v", err)
			}

			result := validateConnectivity(grid, tt.start)
			if !result.Valid {
				t.Errorf("Connectivity issues should never invalidate a scenario")
			}
			for _, want := range tt.want {
				if !hasMessage(result.Messages, want) {
					t.Errorf("Expected message containing %q in %v", want, result.Messages)
				}
			}
		})
	}
}

func TestValidateDir(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "a.json", `{"name": "A", "size": "2x2", "position": "0,0", "heading": "N"}`)
	writeScenario(t, dir, "b.yaml", "name: B\nsize: 2x2\nposition: \"9,9\"\nheading: N\n")
	writeScenario(t, dir, "notes.txt", "not a scenario")
	if err := os.Mkdir(filepath.Join(dir, "nested.json"), 0755); err != nil {
		t.Fatal(err)
	}

	results, err := validateDir(dir)
	if err != nil {
		t.Fatalf("validateDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].File != "a.json" || !results[0].Valid {
		t.Errorf("Expected a.json valid, got %+v", results[0])
	}
	if results[1].File != "b.yaml" || results[1].Valid {
		t.Errorf("Expected b.yaml invalid, got %+v", results[1])
	}

	if _, err := validateDir(filepath.Join(dir, "missing")); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestValidateDir_ShippedScenarios(t *testing.T) {
	results, err := validateDir(filepath.Join("..", "configs"))
	if err != nil {
		t.Fatalf("validateDir: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("Expected shipped scenarios")
	}
	for _, r := range results {
		if !r.Valid {
			t.Errorf("%s: %v", r.File, r.Messages)
		}
	}
}
