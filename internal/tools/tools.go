// Package tools registers tagnav's MCP tools.
package tools

import (
	"encoding/json"

	"tagnav/internal/config"
	"tagnav/internal/mcp"
	"tagnav/internal/source"
	"tagnav/internal/tags"
)

// Deps is what the tools query. Database.Path, when relative, is taken
// as-is, so callers resolve it first.
type Deps struct {
	Host      source.Host
	Collector *tags.Collector
	Encoding  string
	Database  config.DatabaseConfig
}

// RegisterAll registers all available tools on the MCP server
func RegisterAll(server *mcp.Server, deps Deps) {
	RegisterTagTools(server, deps)
	RegisterSnapshotTools(server, deps.Database)
}

func jsonResult(v any) (*mcp.ToolsCallResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.TextResult(string(data)), nil
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func boolArg(args map[string]any, key string) bool {
	b, _ := args[key].(bool)
	return b
}

// intArg reads a JSON number, returning def when absent or not positive.
func intArg(args map[string]any, key string, def int) int {
	if f, ok := args[key].(float64); ok && f > 0 {
		return int(f)
	}
	return def
}
