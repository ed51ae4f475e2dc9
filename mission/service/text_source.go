package service

import (
	"context"

	"github.com/wricardo/rover-mission/mission/codec"
	"github.com/wricardo/rover-mission/mission/engine"
)

// TextSource serves a mission from raw text fields. It satisfies both Source
// and Channel.
type TextSource struct {
	Size      string
	Obstacles string
	Position  string
	Heading   string
	Commands  string
}

// ReadGrid parses Size and Obstacles
func (s *TextSource) ReadGrid(ctx context.Context) (engine.Grid, error) {
	return codec.ParseGrid(s.Size, s.Obstacles)
}

// ReadVehicle parses Position and Heading
func (s *TextSource) ReadVehicle(ctx context.Context) (engine.Vehicle, error) {
	return codec.ParseVehicle(s.Position, s.Heading)
}

// ReceiveCommands parses Commands
func (s *TextSource) ReceiveCommands(ctx context.Context) ([]engine.Command, error) {
	return codec.ParseCommands(s.Commands)
}
