package repl

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
)

const prompt = "programs> "

// LineReader is the part of readline the REPL loop needs
type LineReader interface {
	Readline() (string, error)
	Close() error
}

// NewInputHandler creates a readline instance with history and tab
// completion for the given tool names
func NewInputHandler(toolNames []string) (*readline.Instance, error) {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem("/help"),
		readline.PcItem("/quit"),
		readline.PcItem("/tools"),
		readline.PcItem("/clear"),
	}
	describe := make([]readline.PrefixCompleterInterface, 0, len(toolNames))
	for _, name := range toolNames {
		items = append(items, readline.PcItem(name))
		describe = append(describe, readline.PcItem(name))
	}
	items = append(items, readline.PcItem("/describe", describe...))

	config := &readline.Config{
		Prompt:                 prompt,
		HistoryFile:            getHistoryFilePath(),
		HistoryLimit:           1000,
		DisableAutoSaveHistory: false,
		AutoComplete:           readline.NewPrefixCompleter(items...),
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
	}

	rl, err := readline.NewEx(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return rl, nil
}

// getHistoryFilePath returns the path to the history file
func getHistoryFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "programs_mcp_history")
	}

	return filepath.Join(homeDir, ".programs_mcp_history")
}
