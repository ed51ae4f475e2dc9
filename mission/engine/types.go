package engine

import (
	"fmt"
	"strings"
)

// Position represents x,y coordinates
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Shift returns the position displaced by delta
func (p Position) Shift(delta Position) Position {
	return Position{X: p.X + delta.X, Y: p.Y + delta.Y}
}

// Heading is one of the four cardinal orientations, ordered clockwise
type Heading int

const (
	North Heading = iota
	East
	South
	West
)

// String returns the single-letter heading code
func (h Heading) String() string {
	switch h {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	}
	return fmt.Sprintf("Heading(%d)", int(h))
}

// MarshalText encodes the heading as its letter code
func (h Heading) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText decodes a letter code produced by MarshalText
func (h *Heading) UnmarshalText(text []byte) error {
	code := strings.ToUpper(string(text))
	for _, candidate := range []Heading{North, East, South, West} {
		if candidate.String() == code {
			*h = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown heading %q", text)
}

// TurnRight rotates clockwise
func (h Heading) TurnRight() Heading {
	switch h {
	case North:
		return East
	case East:
		return South
	case South:
		return West
	case West:
		return North
	}
	panic(invalidHeading(h))
}

// TurnLeft rotates counter-clockwise
func (h Heading) TurnLeft() Heading {
	switch h {
	case North:
		return West
	case West:
		return South
	case South:
		return East
	case East:
		return North
	}
	panic(invalidHeading(h))
}

// Opposite returns the heading rotated by half a turn
func (h Heading) Opposite() Heading {
	switch h {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	panic(invalidHeading(h))
}

// Delta returns the unit displacement of one forward step
func (h Heading) Delta() Position {
	switch h {
	case North:
		return Position{X: 0, Y: 1}
	case South:
		return Position{X: 0, Y: -1}
	case East:
		return Position{X: 1, Y: 0}
	case West:
		return Position{X: -1, Y: 0}
	}
	panic(invalidHeading(h))
}

// invalidHeading describes a Heading outside the four declared constants.
// Only a raw integer conversion can produce one.
func invalidHeading(h Heading) string {
	return fmt.Sprintf("engine: invalid heading %d", int(h))
}

// Command is one of the four instructions a vehicle understands
type Command int

const (
	TurnLeft Command = iota
	TurnRight
	MoveForward
	MoveBackward
)

// String returns the single-letter command code
func (c Command) String() string {
	switch c {
	case TurnLeft:
		return "L"
	case TurnRight:
		return "R"
	case MoveForward:
		return "F"
	case MoveBackward:
		return "B"
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// MarshalText encodes the command as its letter code
func (c Command) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a letter code produced by MarshalText
func (c *Command) UnmarshalText(text []byte) error {
	code := strings.ToUpper(string(text))
	for _, candidate := range []Command{TurnLeft, TurnRight, MoveForward, MoveBackward} {
		if candidate.String() == code {
			*c = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown command %q", text)
}

// Vehicle is an immutable pose. Transitions return a new value.
type Vehicle struct {
	Position Position `json:"position"`
	Heading  Heading  `json:"heading"`
}

// OutcomeKind distinguishes a finished sequence from an obstacle stop
type OutcomeKind int

const (
	Completed OutcomeKind = iota
	ObstacleHit
)

// String returns the status label used in JSON payloads
func (k OutcomeKind) String() string {
	if k == ObstacleHit {
		return "obstacle"
	}
	return "completed"
}

// MarshalText encodes the kind as its status label
func (k OutcomeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a status label
func (k *OutcomeKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "completed":
		*k = Completed
	case "obstacle":
		*k = ObstacleHit
	default:
		return fmt.Errorf("unknown outcome status %q", text)
	}
	return nil
}

// Outcome is the terminal result of one mission
type Outcome struct {
	Kind    OutcomeKind `json:"status"`
	Vehicle Vehicle     `json:"vehicle"`
}

// Blocked reports whether an obstacle stopped the sequence
func (o Outcome) Blocked() bool {
	return o.Kind == ObstacleHit
}

// Step records one evaluated command
type Step struct {
	Index   int     `json:"idx"`
	Command Command `json:"command"`
	From    Vehicle `json:"from"`
	To      Vehicle `json:"to"`
	Blocked bool    `json:"blocked,omitempty"`
}
