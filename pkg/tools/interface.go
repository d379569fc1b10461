package tools

import "context"

// Tool represents an executable tool
type Tool interface {
	// Name returns the tool name
	Name() string

	// Description returns the tool description
	Description() string

	// Execute executes the tool with given arguments
	Execute(ctx context.Context, args map[string]interface{}) (*Result, error)
}

// ExtendedTool is a Tool that also describes its input
type ExtendedTool interface {
	Tool

	// Metadata returns the tool's schema and usage hints
	Metadata() *ToolMetadata
}

// Result represents a tool execution result. Output always carries the
// text shown to the caller, including for failures.
type Result struct {
	Success bool                   `json:"success"`
	Output  string                 `json:"output"`
	Error   string                 `json:"error,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// ErrorResult creates an error result with the given message
func ErrorResult(msg string) *Result {
	return &Result{
		Success: false,
		Error:   msg,
		Output:  msg,
	}
}

// TextResult creates a successful result carrying text
func TextResult(text string) *Result {
	return &Result{
		Success: true,
		Output:  text,
	}
}
