// Package mcp serves registered tools over newline-delimited JSON-RPC,
// the stdio transport of the Model Context Protocol.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"tagnav/internal/logging"
)

const ProtocolVersion = "2024-11-05"

// ToolHandler handles one tools/call invocation.
type ToolHandler func(ctx context.Context, args map[string]any) (*ToolsCallResult, error)

// Server dispatches JSON-RPC requests to registered tools.
type Server struct {
	name     string
	version  string
	tools    []Tool
	handlers map[string]ToolHandler
	logger   *slog.Logger
}

// NewServer creates a server that logs through logger. A nil logger uses
// the environment-configured default.
func NewServer(name, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Default("mcp")
	}
	return &Server{
		name:     name,
		version:  version,
		tools:    []Tool{},
		handlers: make(map[string]ToolHandler),
		logger:   logger,
	}
}

// RegisterTool adds a tool. Registering a name twice replaces the handler.
func (s *Server) RegisterTool(tool Tool, handler ToolHandler) {
	if _, exists := s.handlers[tool.Name]; !exists {
		s.tools = append(s.tools, tool)
	}
	s.handlers[tool.Name] = handler
}

// Tools returns the registered tool descriptions in registration order.
func (s *Server) Tools() []Tool {
	return s.tools
}

// Run serves stdin/stdout until EOF or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads one request per line from r and writes responses to w.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			if resp := s.handleLine(ctx, line); resp != nil {
				if werr := writeResponse(w, resp); werr != nil {
					s.logger.Error("error writing response", "error", werr)
				}
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
	}
}

func (s *Server) handleLine(ctx context.Context, line []byte) *Response {
	trimmed := line
	for len(trimmed) > 0 && (trimmed[len(trimmed)-1] == '\n' || trimmed[len(trimmed)-1] == '\r') {
		trimmed = trimmed[:len(trimmed)-1]
	}
	if len(trimmed) == 0 {
		return nil
	}
	return s.handleMessage(ctx, trimmed)
}

func (s *Server) handleMessage(ctx context.Context, data []byte) *Response {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		s.logger.Error("parse error", "error", err)
		return &Response{
			JSONRPC: "2.0",
			Error:   &Error{Code: ParseError, Message: "Parse error", Data: err.Error()},
		}
	}
	if req.Method == "" {
		return errorResponse(req.ID, InvalidRequest, "Invalid request: missing method")
	}

	s.logger.Debug("received request", "method", req.Method, "id", req.ID)

	switch req.Method {
	case "initialize":
		return s.handleInitialize(&req)
	case "initialized", "notifications/initialized":
		return nil
	case "tools/list":
		return &Response{JSONRPC: "2.0", ID: req.ID, Result: ToolsListResult{Tools: s.tools}}
	case "tools/call":
		return s.handleToolsCall(ctx, &req)
	case "ping":
		return &Response{JSONRPC: "2.0", ID: req.ID, Result: map[string]any{}}
	default:
		return errorResponse(req.ID, MethodNotFound, fmt.Sprintf("Method not found: %s", req.Method))
	}
}

func (s *Server) handleInitialize(req *Request) *Response {
	result := InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities: ServerCapabilities{
			Tools: &ToolsCapability{ListChanged: false},
		},
		ServerInfo: ServerInfo{Name: s.name, Version: s.version},
	}
	return &Response{JSONRPC: "2.0", ID: req.ID, Result: result}
}

func (s *Server) handleToolsCall(ctx context.Context, req *Request) *Response {
	paramsBytes, err := json.Marshal(req.Params)
	if err != nil {
		return errorResponse(req.ID, InvalidParams, "Invalid params")
	}

	var params ToolsCallParams
	if err := json.Unmarshal(paramsBytes, &params); err != nil {
		return errorResponse(req.ID, InvalidParams, "Invalid params")
	}

	handler, ok := s.handlers[params.Name]
	if !ok {
		return errorResponse(req.ID, MethodNotFound, fmt.Sprintf("Tool not found: %s", params.Name))
	}

	result, err := handler(ctx, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result: &ToolsCallResult{
				Content: []Content{{Type: "text", Text: err.Error()}},
				IsError: true,
			},
		}
	}

	return &Response{JSONRPC: "2.0", ID: req.ID, Result: result}
}

func errorResponse(id any, code int, message string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &Error{Code: code, Message: message},
	}
}

func writeResponse(w io.Writer, resp *Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
