package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wricardo/rover-mission/mission/codec"
	"github.com/wricardo/rover-mission/mission/engine"
)

// Prompt is written before the command line is read
const Prompt = "Waiting commands..."

// ErrNoInput is returned when the input closes before a line is read
var ErrNoInput = errors.New("no commands received")

// Channel reads one line of commands from an input stream
type Channel struct {
	in     *bufio.Reader
	prompt io.Writer
}

// NewChannel creates a channel reading from in. The prompt goes to prompt
// unless it is nil.
func NewChannel(in io.Reader, prompt io.Writer) *Channel {
	return &Channel{
		in:     bufio.NewReader(in),
		prompt: prompt,
	}
}

// ReceiveCommands prints the prompt, reads a single line and parses it. A
// final line without newline is accepted.
func (c *Channel) ReceiveCommands(ctx context.Context) ([]engine.Command, error) {
	if c.prompt != nil {
		fmt.Fprintln(c.prompt, Prompt)
	}

	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read commands: %w", err)
		}
		if line == "" {
			return nil, ErrNoInput
		}
	}

	return codec.ParseCommands(strings.TrimSpace(line))
}
