package repl

import (
	"fmt"
	"strings"

	"github.com/soypete/programs-mcp/pkg/tools"
)

// CommandType represents different types of commands
type CommandType int

const (
	CommandTypeUnknown CommandType = iota
	CommandTypeREPL                // REPL-specific commands (/help, /quit, etc.)
	CommandTypeTool                // tool invocations: <tool> key=value ...
)

// Command represents a parsed command
type Command struct {
	Type CommandType
	Name string
	Args map[string]interface{}
	Raw  string
	Err  error
}

// ParseCommand parses user input into a Command
func ParseCommand(input string) *Command {
	input = strings.TrimSpace(input)
	if input == "" {
		return &Command{Type: CommandTypeUnknown, Raw: input}
	}

	words, err := splitWords(input)
	if err != nil {
		return &Command{Type: CommandTypeUnknown, Raw: input, Err: err}
	}

	if strings.HasPrefix(words[0], "/") {
		return &Command{
			Type: CommandTypeREPL,
			Name: strings.TrimPrefix(words[0], "/"),
			Args: positional(words[1:]),
			Raw:  input,
		}
	}

	args, err := tools.ParseArgs(words[1:])
	return &Command{
		Type: CommandTypeTool,
		Name: words[0],
		Args: args,
		Raw:  input,
		Err:  err,
	}
}

func positional(words []string) map[string]interface{} {
	result := make(map[string]interface{}, len(words))
	for i, w := range words {
		result[fmt.Sprintf("arg%d", i)] = w
	}
	return result
}

// splitWords splits on whitespace. Single or double quotes group words, so
// city="New Delhi" is one word with the quotes removed.
func splitWords(input string) ([]string, error) {
	var (
		words   []string
		current strings.Builder
		quote   rune
		inWord  bool
	)

	for _, r := range input {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			current.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				words = append(words, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if inWord {
		words = append(words, current.String())
	}
	return words, nil
}

// GetREPLHelp returns help text for REPL commands
func GetREPLHelp() string {
	return `
programs-mcp - interactive shell for the program tools

REPL Commands:
  /help, /h, /?        Show this help message
  /quit, /exit, /q     Exit the REPL
  /tools               List available tools
  /describe <tool>     Show a tool's arguments
  /clear, /cls         Clear the screen

Tool calls:
  <tool> key=value ...
  Quote values with spaces: city="New Delhi"

Examples:
  > search_programs_by_location country=India city=Chennai limit=5
  > search_programs_by_interest interest="hatha yoga" country=""
  > filter_programs online=true language=tamil
`
}
