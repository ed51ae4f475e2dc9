package codec

import "errors"

// Sentinels matched by errors.Is against any *ParseError of the same kind
var (
	ErrInvalidGrid    = errors.New("invalid grid")
	ErrInvalidVehicle = errors.New("invalid vehicle")
	ErrInvalidCommand = errors.New("invalid command")
)

// ErrorKind tags which part of the mission input was malformed
type ErrorKind int

const (
	InvalidGrid ErrorKind = iota
	InvalidVehicle
	InvalidCommand
)

func (k ErrorKind) sentinel() error {
	switch k {
	case InvalidVehicle:
		return ErrInvalidVehicle
	case InvalidCommand:
		return ErrInvalidCommand
	default:
		return ErrInvalidGrid
	}
}

// String returns the human readable kind
func (k ErrorKind) String() string {
	return k.sentinel().Error()
}

// ParseError describes a malformed token in mission input
type ParseError struct {
	Kind   ErrorKind
	Reason string
	Token  string
}

// Error renders "kind: reason"
func (e *ParseError) Error() string {
	return e.Kind.String() + ": " + e.Reason
}

// Is lets errors.Is match the sentinel of the same kind
func (e *ParseError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func newParseError(kind ErrorKind, what, token string) *ParseError {
	return &ParseError{
		Kind:   kind,
		Reason: what + ": " + token,
		Token:  token,
	}
}
