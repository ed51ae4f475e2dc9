// Package codec converts between the mission text formats and engine values.
//
// Grid input is a size token ("5x4") and a space-separated obstacle list
// ("2,0 0,3"). Vehicle input is a position ("0,0") and a heading letter.
// Commands are a string of F, B, L and R. Every parse failure is a
// *ParseError; lists fail on their first bad token.
package codec

import (
	"errors"
	"strconv"
	"strings"

	"github.com/wricardo/rover-mission/mission/engine"
)

var errBadPair = errors.New("expected two integers")

// parsePair splits input on sep into exactly two trimmed integers
func parsePair(sep, input string) (int, int, error) {
	parts := strings.Split(input, sep)
	if len(parts) != 2 {
		return 0, 0, errBadPair
	}
	first, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	second, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return first, second, nil
}

// ParsePosition parses a vehicle position such as "2,0"
func ParsePosition(input string) (engine.Position, error) {
	x, y, err := parsePair(",", input)
	if err != nil {
		return engine.Position{}, newParseError(InvalidVehicle, "invalid position", input)
	}
	return engine.Position{X: x, Y: y}, nil
}

// ParseHeading parses a case-insensitive N, E, S or W
func ParseHeading(input string) (engine.Heading, error) {
	switch strings.ToUpper(strings.TrimSpace(input)) {
	case "N":
		return engine.North, nil
	case "E":
		return engine.East, nil
	case "S":
		return engine.South, nil
	case "W":
		return engine.West, nil
	}
	return 0, newParseError(InvalidVehicle, "invalid heading", input)
}

// ParseVehicle combines a position token and a heading token
func ParseVehicle(position, heading string) (engine.Vehicle, error) {
	pos, err := ParsePosition(position)
	if err != nil {
		return engine.Vehicle{}, err
	}
	h, err := ParseHeading(heading)
	if err != nil {
		return engine.Vehicle{}, err
	}
	return engine.Vehicle{Position: pos, Heading: h}, nil
}

// ParseSize parses "WxH" into two positive integers
func ParseSize(input string) (width, height int, err error) {
	width, height, err = parsePair("x", strings.ToLower(input))
	if err != nil || width <= 0 || height <= 0 {
		return 0, 0, newParseError(InvalidGrid, "invalid size", input)
	}
	return width, height, nil
}

// ParseObstacle parses a single "x,y" obstacle token
func ParseObstacle(input string) (engine.Position, error) {
	x, y, err := parsePair(",", input)
	if err != nil {
		return engine.Position{}, newParseError(InvalidGrid, "invalid obstacle", input)
	}
	return engine.Position{X: x, Y: y}, nil
}

// ParseObstacles parses a whitespace-separated obstacle list. The first bad
// token fails the whole list. Blank input means no obstacles.
func ParseObstacles(input string) ([]engine.Position, error) {
	tokens := strings.Fields(input)
	obstacles := make([]engine.Position, 0, len(tokens))
	for _, token := range tokens {
		o, err := ParseObstacle(token)
		if err != nil {
			return nil, err
		}
		obstacles = append(obstacles, o)
	}
	return obstacles, nil
}

// ParseGrid combines a size token and an obstacle list
func ParseGrid(size, obstacles string) (engine.Grid, error) {
	width, height, err := ParseSize(size)
	if err != nil {
		return engine.Grid{}, err
	}
	list, err := ParseObstacles(obstacles)
	if err != nil {
		return engine.Grid{}, err
	}
	grid, err := engine.NewGrid(width, height, list)
	if err != nil {
		return engine.Grid{}, newParseError(InvalidGrid, "invalid size", size)
	}
	return grid, nil
}

// ParseCommand maps a case-insensitive F, B, L or R
func ParseCommand(input rune) (engine.Command, error) {
	switch input {
	case 'F', 'f':
		return engine.MoveForward, nil
	case 'B', 'b':
		return engine.MoveBackward, nil
	case 'L', 'l':
		return engine.TurnLeft, nil
	case 'R', 'r':
		return engine.TurnRight, nil
	}
	return 0, newParseError(InvalidCommand, "unknown command", string(input))
}

// ParseCommands maps every character and stops at the first invalid one
func ParseCommands(input string) ([]engine.Command, error) {
	commands := make([]engine.Command, 0, len(input))
	for _, r := range input {
		cmd, err := ParseCommand(r)
		if err != nil {
			return nil, err
		}
		commands = append(commands, cmd)
	}
	return commands, nil
}
