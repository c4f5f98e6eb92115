package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mrkplt/shared-project-context-sub000/pkg/types"
)

func listProjectsTool() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithDescription("List the names of all projects that have stored context."),
	)
}

func (s *Server) handleListProjects(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := s.factory.Engine().ListProjects()
	if err != nil {
		return s.fail("list_projects", err)
	}
	return s.result("list_projects", types.SuccessResponse(projects...))
}

func initProjectTool() mcp.Tool {
	return mcp.NewTool("init_project",
		mcp.WithDescription("Create a new project with the default context type configuration. Fails if the project already exists."),
		mcp.WithString("project_name",
			mcp.Required(),
			mcp.Description("Name of the project to create."),
		),
	)
}

func (s *Server) handleInitProject(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, err := req.RequireString("project_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.factory.Engine().InitProject(project); err != nil {
		return s.fail("init_project", err)
	}
	return s.result("init_project", types.SuccessResponse(project))
}

func listContextTypesTool() mcp.Tool {
	return mcp.NewTool("list_context_types",
		mcp.WithDescription("List the context types configured for a project, including base types, templates, and validation settings."),
		mcp.WithString("project_name",
			mcp.Required(),
			mcp.Description("Project whose configuration to return."),
		),
	)
}

func (s *Server) handleListContextTypes(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, err := req.RequireString("project_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cfg, err := s.factory.Engine().Config(project)
	if err != nil {
		return s.fail("list_context_types", err)
	}

	names := make([]string, 0, len(cfg.ContextTypes))
	for _, tc := range cfg.ContextTypes {
		names = append(names, tc.Name)
	}
	return s.result("list_context_types", types.OperationResponse{
		Success: true,
		Data:    names,
		Config:  &cfg,
	})
}
