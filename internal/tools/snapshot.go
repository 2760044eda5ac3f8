package tools

import (
	"context"
	"fmt"

	"tagnav/internal/config"
	"tagnav/internal/mcp"
	"tagnav/internal/store"
	"tagnav/internal/tags"
)

// FindTagResult is the find_tag payload.
type FindTagResult struct {
	Available  bool             `json:"available"`
	Candidates []tags.Candidate `json:"candidates"`
	Error      string           `json:"error,omitempty"`
}

// RegisterSnapshotTools registers the tools that read an exported snapshot.
func RegisterSnapshotTools(server *mcp.Server, dbConfig config.DatabaseConfig) {
	tool := mcp.Tool{
		Name:        "find_tag",
		Description: "Look up a tag by exact name in the snapshot written by `tagnav export`.",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.Property{
				"name": {
					Type:        "string",
					Description: "Tag name to look up",
				},
				"kind": {
					Type:        "string",
					Description: "Filter by tag kind",
				},
				"limit": {
					Type:        "number",
					Description: "Maximum number of results (default: 50)",
				},
			},
			Required: []string{"name"},
		},
	}

	handler := func(ctx context.Context, args map[string]any) (*mcp.ToolsCallResult, error) {
		name := stringArg(args, "name")
		if name == "" {
			return nil, fmt.Errorf("name is required")
		}

		s, err := store.OpenExisting(ctx, dbConfig.ToDBConfig())
		if err != nil {
			return jsonResult(FindTagResult{Candidates: []tags.Candidate{}, Error: err.Error()})
		}
		defer s.Close()

		found, err := s.FindByName(ctx, name, stringArg(args, "kind"), intArg(args, "limit", 50))
		if err != nil {
			return nil, fmt.Errorf("searching snapshot: %w", err)
		}
		if found == nil {
			found = []tags.Candidate{}
		}
		return jsonResult(FindTagResult{Available: true, Candidates: found})
	}

	server.RegisterTool(tool, handler)
}
