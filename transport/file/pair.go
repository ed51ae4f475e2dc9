package file

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/wricardo/rover-mission/mission/codec"
	"github.com/wricardo/rover-mission/mission/engine"
)

// ErrMissingLine is returned when a pair file has fewer than two lines
var ErrMissingLine = errors.New("missing line")

// PairSource reads the grid and the vehicle from two text files. Each file
// holds two lines: size and obstacles, position and heading.
type PairSource struct {
	GridPath    string
	VehiclePath string
}

// NewPairSource creates a source over the two files
func NewPairSource(gridPath, vehiclePath string) *PairSource {
	return &PairSource{GridPath: gridPath, VehiclePath: vehiclePath}
}

// ReadGrid parses the grid file
func (s *PairSource) ReadGrid(ctx context.Context) (engine.Grid, error) {
	size, obstacles, err := readPair(s.GridPath)
	if err != nil {
		return engine.Grid{}, err
	}
	return codec.ParseGrid(size, obstacles)
}

// ReadVehicle parses the vehicle file
func (s *PairSource) ReadVehicle(ctx context.Context) (engine.Vehicle, error) {
	position, heading, err := readPair(s.VehiclePath)
	if err != nil {
		return engine.Vehicle{}, err
	}
	return codec.ParseVehicle(position, heading)
}

// readPair returns the first two lines of a file
func readPair(path string) (string, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for len(lines) < 2 && scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(lines) < 2 {
		return "", "", fmt.Errorf("%w in %s: expected 2 lines, got %d", ErrMissingLine, path, len(lines))
	}

	return lines[0], lines[1], nil
}
