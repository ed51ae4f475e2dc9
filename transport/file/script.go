package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/wricardo/rover-mission/mission/codec"
	"github.com/wricardo/rover-mission/mission/engine"
	"github.com/wricardo/rover-mission/mission/service"
)

// ErrInvalidScript is returned when a script does not follow the grammar
var ErrInvalidScript = errors.New("invalid mission script")

// Script is the parsed form of a mission script. Clauses may share a line,
// but the word lists of obstacles and commands end at the end of their line.
type Script struct {
	Grid      string          `parser:"Newline? 'grid' @Word"`
	Obstacles []string        `parser:"(Newline? 'obstacles' @Word*)?"`
	Rover     *ScriptRover    `parser:"Newline? @@"`
	Commands  *ScriptCommands `parser:"(Newline? @@)? Newline?"`
}

// ScriptRover is the starting pose of a script, position then heading
type ScriptRover struct {
	Position string `parser:"'rover' @Word"`
	Heading  string `parser:"@Word"`
}

// ScriptCommands may span several words on one line; they are concatenated
type ScriptCommands struct {
	Words []string `parser:"'commands' @Word*"`
}

// Newline swallows runs of line breaks together with blank and comment-only
// lines, so clauses see at most one separator.
var scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Newline", Pattern: `(?:[ \t]*(?:#[^\n]*)?\r?\n)+`},
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Keyword", Pattern: `\b(grid|obstacles|rover|commands)\b`},
	{Name: "Word", Pattern: `[^\s#]+`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
})

var scriptParser = participle.MustBuild[Script](
	participle.Lexer(scriptLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.UseLookahead(2),
)

// ParseScript parses script text. filename is only used in error positions.
func ParseScript(filename, text string) (*Script, error) {
	script, err := scriptParser.ParseString(filename, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	return script, nil
}

// HasCommands reports whether the script carries a commands clause
func (s *Script) HasCommands() bool {
	return s.Commands != nil
}

// TextSource returns the script's fields in their text form
func (s *Script) TextSource() *service.TextSource {
	src := &service.TextSource{
		Size:      s.Grid,
		Obstacles: strings.Join(s.Obstacles, " "),
		Position:  s.Rover.Position,
		Heading:   s.Rover.Heading,
	}
	if s.Commands != nil {
		src.Commands = strings.Join(s.Commands.Words, "")
	}
	return src
}

// ScriptSource serves a mission from a script file. The file is read on the
// first call, so read and syntax failures surface through the mission run.
// When the script has no commands clause, commands come from Fallback.
type ScriptSource struct {
	Path     string
	Fallback service.Channel

	once   sync.Once
	script *Script
	err    error
}

// NewScriptSource creates a source over the script at path
func NewScriptSource(path string, fallback service.Channel) *ScriptSource {
	return &ScriptSource{Path: path, Fallback: fallback}
}

func (s *ScriptSource) load() (*Script, error) {
	s.once.Do(func() {
		data, err := os.ReadFile(s.Path)
		if err != nil {
			s.err = fmt.Errorf("failed to read script: %w", err)
			return
		}
		s.script, s.err = ParseScript(s.Path, string(data))
	})
	return s.script, s.err
}

// ReadGrid parses the grid and obstacles clauses
func (s *ScriptSource) ReadGrid(ctx context.Context) (engine.Grid, error) {
	script, err := s.load()
	if err != nil {
		return engine.Grid{}, err
	}
	return script.TextSource().ReadGrid(ctx)
}

// ReadVehicle parses the rover clause
func (s *ScriptSource) ReadVehicle(ctx context.Context) (engine.Vehicle, error) {
	script, err := s.load()
	if err != nil {
		return engine.Vehicle{}, err
	}
	return script.TextSource().ReadVehicle(ctx)
}

// ReceiveCommands parses the commands clause or defers to Fallback
func (s *ScriptSource) ReceiveCommands(ctx context.Context) ([]engine.Command, error) {
	script, err := s.load()
	if err != nil {
		return nil, err
	}
	if script.HasCommands() {
		return codec.ParseCommands(script.TextSource().Commands)
	}
	if s.Fallback == nil {
		return nil, fmt.Errorf("%w: no commands clause", ErrInvalidScript)
	}
	return s.Fallback.ReceiveCommands(ctx)
}
