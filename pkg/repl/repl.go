package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/chzyer/readline"

	"github.com/soypete/programs-mcp/pkg/tools"
)

// REPL is an interactive shell that calls registry tools
type REPL struct {
	registry *tools.ToolRegistry
	input    LineReader
	out      io.Writer
}

// NewREPL creates a REPL reading from a readline terminal
func NewREPL(registry *tools.ToolRegistry, out io.Writer) (*REPL, error) {
	input, err := NewInputHandler(registry.ListNames())
	if err != nil {
		return nil, fmt.Errorf("failed to create input handler: %w", err)
	}
	return NewWithReader(registry, input, out), nil
}

// NewWithReader creates a REPL over any line source
func NewWithReader(registry *tools.ToolRegistry, input LineReader, out io.Writer) *REPL {
	return &REPL{
		registry: registry,
		input:    input,
		out:      out,
	}
}

// Run starts the REPL loop. It returns on EOF, /quit or ctx cancellation.
func (r *REPL) Run(ctx context.Context) error {
	defer r.input.Close()

	fmt.Fprintf(r.out, "programs-mcp shell: %d tools. Type /help for commands.\n", r.registry.Count())

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := r.input.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				// Ctrl+C - just show new prompt
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "Goodbye!")
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		if err := r.handleCommand(ctx, ParseCommand(line)); err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "Goodbye!")
				return nil
			}
			fmt.Fprintf(r.out, "Error: %v\n", err)
		}
	}
}

// handleCommand handles a parsed command
func (r *REPL) handleCommand(ctx context.Context, cmd *Command) error {
	if cmd.Err != nil {
		return cmd.Err
	}

	switch cmd.Type {
	case CommandTypeREPL:
		return r.handleREPLCommand(cmd)
	case CommandTypeTool:
		return r.callTool(ctx, cmd)
	default:
		return nil
	}
}

// handleREPLCommand handles REPL-specific commands
func (r *REPL) handleREPLCommand(cmd *Command) error {
	switch cmd.Name {
	case "help", "h", "?":
		fmt.Fprint(r.out, GetREPLHelp())
	case "quit", "exit", "q":
		return io.EOF
	case "tools":
		r.printTools()
	case "describe":
		name, _ := cmd.Args["arg0"].(string)
		return r.describe(name)
	case "clear", "cls":
		fmt.Fprint(r.out, "\033[H\033[2J")
	default:
		fmt.Fprintf(r.out, "Unknown REPL command: /%s\nType /help for available commands\n", cmd.Name)
	}
	return nil
}

func (r *REPL) callTool(ctx context.Context, cmd *Command) error {
	if _, ok := r.registry.Get(cmd.Name); !ok {
		return fmt.Errorf("unknown tool %q (try /tools)", cmd.Name)
	}

	result, err := r.registry.Execute(ctx, cmd.Name, cmd.Args)
	if err != nil {
		return err
	}

	fmt.Fprintln(r.out, result.Output)
	return nil
}

func (r *REPL) printTools() {
	for _, tool := range r.registry.List() {
		fmt.Fprintf(r.out, "  %-30s %s\n", tool.Name(), firstSentence(tool.Description()))
	}
}

func (r *REPL) describe(name string) error {
	if name == "" {
		return errors.New("usage: /describe <tool>")
	}
	tool, ok := r.registry.Get(name)
	if !ok {
		return fmt.Errorf("unknown tool %q (try /tools)", name)
	}

	fmt.Fprintf(r.out, "%s\n  %s\n", tool.Name(), tool.Description())

	schema := tools.InputSchema(tool)
	required := make(map[string]bool, len(schema.Required))
	for _, req := range schema.Required {
		required[req] = true
	}

	keys := make([]string, 0, len(schema.Properties))
	for key := range schema.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	if len(keys) == 0 {
		fmt.Fprintln(r.out, "  (no arguments)")
	}
	for _, key := range keys {
		prop := schema.Properties[key]
		marker := ""
		if required[key] {
			marker = " (required)"
		}
		fmt.Fprintf(r.out, "  %s: %s%s  %s\n", key, prop.Type, marker, prop.Description)
	}

	ext, ok := tool.(tools.ExtendedTool)
	if !ok {
		return nil
	}
	meta := ext.Metadata()
	if meta == nil {
		return nil
	}
	if meta.UsageHint != "" {
		fmt.Fprintf(r.out, "\n  Hint: %s\n", meta.UsageHint)
	}
	if len(meta.Examples) > 0 {
		fmt.Fprintln(r.out, "\n  Examples:")
		for _, ex := range meta.Examples {
			fmt.Fprintf(r.out, "    # %s\n    %s\n", ex.Description, formatExample(tool.Name(), ex))
		}
	}
	return nil
}

// formatExample renders an example as a line the shell accepts
func formatExample(name string, ex tools.ToolExample) string {
	keys := make([]string, 0, len(ex.Input))
	for key := range ex.Input {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := []string{name}
	for _, key := range keys {
		value := fmt.Sprint(ex.Input[key])
		if value == "" || strings.ContainsAny(value, " \t'") {
			value = `"` + value + `"`
		}
		parts = append(parts, key+"="+value)
	}
	return strings.Join(parts, " ")
}

func firstSentence(s string) string {
	if i := strings.Index(s, ". "); i >= 0 {
		return s[:i+1]
	}
	return s
}
