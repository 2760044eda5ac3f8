package tools

import (
	"context"

	"tagnav/internal/mcp"
	"tagnav/internal/source"
	"tagnav/internal/tags"
)

// ListTagsResult is the list_tags payload.
type ListTagsResult struct {
	Candidates []tags.Candidate `json:"candidates"`
	Total      int              `json:"total"`
}

// TagFilesResult is the tag_files payload.
type TagFilesResult struct {
	Files []string `json:"files"`
}

// RegisterTagTools registers the tools that read tags files directly.
func RegisterTagTools(server *mcp.Server, deps Deps) {
	registerListTags(server, deps)
	registerTagFiles(server, deps)
}

func selectArgs(args map[string]any) []string {
	if boolArg(args, "include") {
		return []string{source.IncludeArg}
	}
	return nil
}

func registerListTags(server *mcp.Server, deps Deps) {
	tool := mcp.Tool{
		Name:        "list_tags",
		Description: "Read the configured ctags files and return every tag sorted by name. Optionally filter by exact name or kind.",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.Property{
				"include": {
					Type:        "boolean",
					Description: "Read tags files under the include paths instead of the project tags",
				},
				"encoding": {
					Type:        "string",
					Description: "Text encoding of the tags files (default: configured encoding)",
				},
				"name": {
					Type:        "string",
					Description: "Only return tags with exactly this name",
				},
				"kind": {
					Type:        "string",
					Description: "Only return tags of this kind (e.g. f, v, c)",
				},
				"limit": {
					Type:        "number",
					Description: "Maximum number of results (default: all)",
				},
			},
		},
	}

	handler := func(ctx context.Context, args map[string]any) (*mcp.ToolsCallResult, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		encoding := stringArg(args, "encoding")
		if encoding == "" {
			encoding = deps.Encoding
		}

		candidates := source.Query(deps.Host, deps.Collector, encoding, selectArgs(args))
		candidates = filterCandidates(candidates, stringArg(args, "name"), stringArg(args, "kind"))

		result := ListTagsResult{Candidates: candidates, Total: len(candidates)}
		if limit := intArg(args, "limit", 0); limit > 0 && len(candidates) > limit {
			result.Candidates = candidates[:limit]
		}
		return jsonResult(result)
	}

	server.RegisterTool(tool, handler)
}

func registerTagFiles(server *mcp.Server, deps Deps) {
	tool := mcp.Tool{
		Name:        "tag_files",
		Description: "List the tags files a list_tags call would read.",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.Property{
				"include": {
					Type:        "boolean",
					Description: "List tags files under the include paths instead of the project tags",
				},
			},
		},
	}

	handler := func(ctx context.Context, args map[string]any) (*mcp.ToolsCallResult, error) {
		files := source.Select(deps.Host, selectArgs(args))
		if files == nil {
			files = []string{}
		}
		return jsonResult(TagFilesResult{Files: files})
	}

	server.RegisterTool(tool, handler)
}

func filterCandidates(candidates []tags.Candidate, name, kind string) []tags.Candidate {
	if name == "" && kind == "" {
		return candidates
	}
	out := make([]tags.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if name != "" && c.Word != name {
			continue
		}
		if kind != "" && c.Kind != kind {
			continue
		}
		out = append(out, c)
	}
	return out
}
