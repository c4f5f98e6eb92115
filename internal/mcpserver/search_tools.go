package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mrkplt/shared-project-context-sub000/internal/search"
	"github.com/mrkplt/shared-project-context-sub000/pkg/types"
)

func searchContextTool() mcp.Tool {
	return mcp.NewTool("search_context",
		mcp.WithDescription("Full-text search across stored context documents. Returns ranked hits as project/type/name headers followed by a content snippet."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("FTS5 match query, e.g. a word or quoted phrase."),
		),
		mcp.WithString("project_name",
			mcp.Description("Restrict hits to one project."),
		),
		mcp.WithString("context_type",
			mcp.Description("Restrict hits to one context type."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of hits (default 10)."),
		),
	)
}

func (s *Server) handleSearchContext(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if s.index == nil {
		return s.fail("search_context", errors.New("search index is not available"))
	}

	results, err := s.index.Search(query, search.Options{
		Project:     req.GetString("project_name", ""),
		ContextType: req.GetString("context_type", ""),
		Limit:       req.GetInt("limit", 0),
	})
	if err != nil {
		return s.fail("search_context", err)
	}

	return s.result("search_context", types.SuccessResponse(formatHits(results)...))
}

// formatHits renders one data line per hit: a location header with the
// normalized score, then the snippet.
func formatHits(results []search.Result) []string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, fmt.Sprintf("%s/%s/%s (score %.2f)\n%s",
			r.Project, r.ContextType, r.Name, r.Score, r.Snippet))
	}
	return lines
}
