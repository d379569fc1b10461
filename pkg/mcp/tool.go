package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/soypete/programs-mcp/pkg/tools"
)

// NewMCPServer builds an mcp-go server exposing every tool in registry.
// Calls go through registry.Execute so they are logged and counted the
// same way as stdio calls.
func NewMCPServer(registry *tools.ToolRegistry, logger *slog.Logger) (*server.MCPServer, error) {
	srv := server.NewMCPServer(ServerName, ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(ServerInstructions),
	)

	for _, tool := range registry.List() {
		schema, err := json.Marshal(tools.InputSchema(tool))
		if err != nil {
			return nil, fmt.Errorf("failed to encode schema for %s: %w", tool.Name(), err)
		}

		srv.AddTool(
			mcp.NewToolWithRawSchema(tool.Name(), tool.Description(), schema),
			toolHandler(registry, tool.Name()),
		)
	}

	if logger != nil {
		logger.Debug("mcp tools registered", "count", registry.Count())
	}
	return srv, nil
}

// toolHandler adapts a registry tool to an mcp-go handler
func toolHandler(registry *tools.ToolRegistry, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := registry.Execute(ctx, name, req.GetArguments())
		if err != nil {
			return nil, err
		}
		if !result.Success {
			return mcp.NewToolResultError(result.Output), nil
		}
		return mcp.NewToolResultText(result.Output), nil
	}
}
