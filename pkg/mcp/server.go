package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/soypete/programs-mcp/pkg/logging"
	"github.com/soypete/programs-mcp/pkg/tools"
)

const (
	// ServerName is reported to clients during initialize
	ServerName = "Isha Programs MCP"

	// ProtocolVersion is the MCP revision spoken over stdio
	ProtocolVersion = "2024-11-05"

	maxLineSize = 4 * 1024 * 1024
)

// ServerVersion is reported to clients during initialize. Set at build time.
var ServerVersion = "1.0.0"

// ServerInstructions tells clients when to route a request to this server
const ServerInstructions = `This MCP server provides comprehensive search and discovery for Isha Foundation programs worldwide.

USE THIS SERVER when users:
- Want to find yoga, meditation, or spiritual programs by location (country/city)
- Search for specific program types: Inner Engineering, Surya Shakti, Surya Kriya, Angamardana, Bhuta Shuddhi, Yogasanas, Bhava Spandana, Shoonya Meditation, Samyama, Guru Pooja, 21 Day Sadhana, Samyama Sadhana, Sunetra Eye Care, Yoga Chikitsa, Ayur Sampoorna, Joint Disorders Program, Pancha Karma, Ayur Rasayana, Diabetes Management, Yoga Marga, etc.
- Look for programs nearby using GPS coordinates
- Need details about program schedules, fees, languages, or registration
- Filter programs by criteria (online/offline, with Sadhguru, specific language)
- Ask about available countries or cities offering programs

DO NOT use this server for:
- Quotes or spiritual wisdom (use Quotes MCP instead)
- Calendar events or auspicious dates (use Calendar MCP instead)
- General spiritual questions not related to program registration

The server connects to Isha Foundation's official programs API and provides real-time information about upcoming programs globally.`

// JSON-RPC error codes
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Server implements the MCP server protocol over line-delimited stdio
type Server struct {
	registry *tools.ToolRegistry
	stdin    io.Reader
	stdout   io.Writer
	logger   *slog.Logger

	writeMu sync.Mutex
}

// Request represents an MCP request. A request without an id is a
// notification and gets no reply.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response represents an MCP response
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error represents an MCP error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type callParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// NewServer creates a stdio MCP server that serves the tools in registry
func NewServer(registry *tools.ToolRegistry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{
		registry: registry,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		logger:   logger,
	}
}

// SetIO replaces the server's input and output streams
func (s *Server) SetIO(in io.Reader, out io.Writer) {
	s.stdin = in
	s.stdout = out
}

// Run reads one request per line until input ends or ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	s.logger.Info("mcp server listening on stdio", "tools", s.registry.Count())

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var req Request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			s.logger.Warn("invalid request", "error", err)
			s.sendError(nil, CodeParseError, "Parse error")
			continue
		}

		s.handleRequest(ctx, &req)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest handles an MCP request
func (s *Server) handleRequest(ctx context.Context, req *Request) {
	if req.Method == "" {
		s.sendError(req.ID, CodeInvalidRequest, "Invalid request: missing method")
		return
	}

	if len(req.ID) == 0 {
		s.logger.Debug("notification", "method", req.Method)
		return
	}

	switch req.Method {
	case "initialize":
		s.handleInitialize(req)
	case "ping":
		s.sendResponse(req.ID, map[string]interface{}{})
	case "tools/list":
		s.handleToolsList(req)
	case "tools/call":
		s.handleToolCall(ctx, req)
	default:
		s.sendError(req.ID, CodeMethodNotFound, "Method not found")
	}
}

// handleInitialize handles the initialize request
func (s *Server) handleInitialize(req *Request) {
	result := map[string]interface{}{
		"protocolVersion": ProtocolVersion,
		"serverInfo": map[string]interface{}{
			"name":    ServerName,
			"version": ServerVersion,
		},
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"instructions": ServerInstructions,
	}

	s.sendResponse(req.ID, result)
}

// handleToolsList handles the tools/list request
func (s *Server) handleToolsList(req *Request) {
	registered := s.registry.List()
	toolsList := make([]map[string]interface{}, 0, len(registered))

	for _, tool := range registered {
		toolsList = append(toolsList, map[string]interface{}{
			"name":        tool.Name(),
			"description": tool.Description(),
			"inputSchema": tools.InputSchema(tool),
		})
	}

	s.sendResponse(req.ID, map[string]interface{}{
		"tools": toolsList,
	})
}

// handleToolCall handles the tools/call request
func (s *Server) handleToolCall(ctx context.Context, req *Request) {
	var params callParams
	if len(req.Params) == 0 || json.Unmarshal(req.Params, &params) != nil {
		s.sendError(req.ID, CodeInvalidParams, "Invalid params")
		return
	}
	if params.Name == "" {
		s.sendError(req.ID, CodeInvalidParams, "Invalid params: missing 'name'")
		return
	}

	if _, ok := s.registry.Get(params.Name); !ok {
		s.sendError(req.ID, CodeInvalidParams, fmt.Sprintf("Tool not found: %s", params.Name))
		return
	}

	result, err := s.registry.Execute(ctx, params.Name, params.Arguments)
	if err != nil {
		s.sendError(req.ID, CodeInternalError, fmt.Sprintf("Tool execution error: %s", err))
		return
	}

	s.sendResponse(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": result.Output,
			},
		},
		"isError": !result.Success,
	})
}

// sendResponse sends a success response
func (s *Server) sendResponse(id json.RawMessage, result interface{}) {
	s.write(Response{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

// sendError sends an error response
func (s *Server) sendError(id json.RawMessage, code int, message string) {
	s.write(Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

func (s *Server) write(resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("failed to encode response", "error", err)
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, err := fmt.Fprintln(s.stdout, string(data)); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}
