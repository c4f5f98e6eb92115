package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mrkplt/shared-project-context-sub000/pkg/types"
)

func getTemplateTool() mcp.Tool {
	return mcp.NewTool("get_template",
		mcp.WithDescription("Fetch the markdown template for a context type. Built-in templates are copied into the project on first use, so the project copy can be customized afterwards."),
		mcp.WithString("project_name",
			mcp.Required(),
			mcp.Description("Project whose template to fetch."),
		),
		mcp.WithString("context_type",
			mcp.Required(),
			mcp.Description("Configured context type whose template to fetch."),
		),
	)
}

func (s *Server) handleGetTemplate(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, err := req.RequireString("project_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	contextType, err := req.RequireString("context_type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text, err := s.factory.Engine().Template(project, contextType)
	if err != nil {
		return s.fail("get_template", err)
	}
	return s.result("get_template", types.SuccessResponse(text))
}
