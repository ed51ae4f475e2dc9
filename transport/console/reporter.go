package console

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"github.com/mattn/go-isatty"

	"github.com/wricardo/rover-mission/mission/codec"
	"github.com/wricardo/rover-mission/mission/engine"
)

// Reporter prints the mission report as a single line
type Reporter struct {
	out   io.Writer
	plain bool
}

// NewReporter creates a reporter writing to out. Colour is used only when
// out is a terminal.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out, plain: !isTerminal(out)}
}

// NewPlainReporter creates a reporter that never colours its output
func NewPlainReporter(out io.Writer) *Reporter {
	return &Reporter{out: out, plain: true}
}

// ReportCompleted prints the final pose, e.g. "[OK] 4:3:E", in green
func (r *Reporter) ReportCompleted(ctx context.Context, vehicle engine.Vehicle) {
	r.println(color.Green, "[OK] "+codec.RenderVehicle(vehicle))
}

// ReportObstacle prints the pose before the blocked move, e.g. "[OK] O:1:0:E", in yellow
func (r *Reporter) ReportObstacle(ctx context.Context, vehicle engine.Vehicle) {
	r.println(color.Yellow, "[OK] "+codec.RenderOutcome(engine.Outcome{Kind: engine.ObstacleHit, Vehicle: vehicle}))
}

// ReportError prints "[ERROR] " followed by the reason, in red
func (r *Reporter) ReportError(ctx context.Context, reason string) {
	r.println(color.Red, "[ERROR] "+reason)
}

func (r *Reporter) println(c color.Color, line string) {
	if r.plain {
		fmt.Fprintln(r.out, line)
		return
	}
	fmt.Fprintln(r.out, c.Sprint(line))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
