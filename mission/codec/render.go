package codec

import (
	"fmt"
	"strings"

	"github.com/wricardo/rover-mission/mission/engine"
)

// obstaclePrefix marks a rendered outcome that stopped on an obstacle
const obstaclePrefix = "O:"

// RenderVehicle renders "x:y:H"
func RenderVehicle(v engine.Vehicle) string {
	return fmt.Sprintf("%d:%d:%s", v.Position.X, v.Position.Y, v.Heading)
}

// RenderOutcome renders "x:y:H" on completion and "O:x:y:H" on an obstacle stop
func RenderOutcome(o engine.Outcome) string {
	if o.Blocked() {
		return obstaclePrefix + RenderVehicle(o.Vehicle)
	}
	return RenderVehicle(o.Vehicle)
}

// RenderCommands renders commands back to their letter string
func RenderCommands(commands []engine.Command) string {
	var b strings.Builder
	for _, c := range commands {
		b.WriteString(c.String())
	}
	return b.String()
}

// ParseOutcome reads a rendered outcome back
func ParseOutcome(input string) (engine.Outcome, error) {
	kind := engine.Completed
	body := strings.TrimSpace(input)
	if strings.HasPrefix(body, obstaclePrefix) {
		kind = engine.ObstacleHit
		body = strings.TrimPrefix(body, obstaclePrefix)
	}

	parts := strings.Split(body, ":")
	if len(parts) != 3 {
		return engine.Outcome{}, newParseError(InvalidVehicle, "invalid outcome", input)
	}
	v, err := ParseVehicle(parts[0]+","+parts[1], parts[2])
	if err != nil {
		return engine.Outcome{}, err
	}
	return engine.Outcome{Kind: kind, Vehicle: v}, nil
}
