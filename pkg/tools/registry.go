package tools

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/soypete/programs-mcp/pkg/logging"
	"github.com/soypete/programs-mcp/pkg/metrics"
)

// ToolRegistry provides centralized tool management. Tools are listed in
// registration order so clients see a stable tool list.
type ToolRegistry struct {
	mu     sync.RWMutex
	tools  map[string]Tool
	order  []string
	logger *slog.Logger
}

// NewToolRegistry creates a new empty tool registry
func NewToolRegistry(logger *slog.Logger) *ToolRegistry {
	if logger == nil {
		logger = logging.Discard()
	}
	return &ToolRegistry{
		tools:  make(map[string]Tool),
		logger: logger,
	}
}

// Register adds a tool to the registry
func (r *ToolRegistry) Register(tool Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := tool.Name()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %q already registered", name)
	}

	r.tools[name] = tool
	r.order = append(r.order, name)
	return nil
}

// Get retrieves a tool by name
func (r *ToolRegistry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, exists := r.tools[name]
	return tool, exists
}

// List returns all registered tools in registration order
func (r *ToolRegistry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name])
	}
	return tools
}

// ListNames returns the names of all registered tools in registration order
func (r *ToolRegistry) ListNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// Count returns the number of registered tools
func (r *ToolRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tools)
}

// Execute runs the named tool. Every call gets an id for log correlation and
// is counted by tool and outcome. A tool that returns an error is reported as
// a failed result, so callers always get a Result back.
func (r *ToolRegistry) Execute(ctx context.Context, name string, args map[string]interface{}) (*Result, error) {
	tool, ok := r.Get(name)
	if !ok {
		metrics.ToolCallsTotal.WithLabelValues(name, "unknown").Inc()
		return nil, fmt.Errorf("tool not found: %s", name)
	}

	if args == nil {
		args = map[string]interface{}{}
	}

	callID := uuid.New().String()
	logger := r.logger.With("tool", name, "call_id", callID)
	logger.Info("tool call started")

	start := time.Now()
	result, err := tool.Execute(ctx, args)
	if err != nil {
		result = ErrorResult(fmt.Sprintf("Error: %v", err))
	}
	if result == nil {
		result = ErrorResult("Error: tool returned no result")
	}

	status := "ok"
	if !result.Success {
		status = "error"
	}
	metrics.ToolCallsTotal.WithLabelValues(name, status).Inc()
	logger.Info("tool call finished", "status", status, "duration", time.Since(start))

	return result, nil
}
