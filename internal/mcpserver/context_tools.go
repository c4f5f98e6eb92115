package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mrkplt/shared-project-context-sub000/internal/validation"
	"github.com/mrkplt/shared-project-context-sub000/pkg/types"
)

func getContextTool() mcp.Tool {
	return mcp.NewTool("get_context",
		mcp.WithDescription("Read stored context. Single-document types return their document, collections return the named document, logs return all entries newest first (or one entry when context_name is given)."),
		mcp.WithString("project_name",
			mcp.Required(),
			mcp.Description("Project to read from."),
		),
		mcp.WithString("context_type",
			mcp.Required(),
			mcp.Description("Configured context type to read."),
		),
		mcp.WithString("context_name",
			mcp.Description("Document name. Required for collections, optional for logs, ignored for single documents."),
		),
	)
}

func (s *Server) handleGetContext(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, err := req.RequireString("project_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	contextType, err := req.RequireString("context_type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	b, err := s.factory.For(project, contextType)
	if err != nil {
		return s.fail("get_context", err)
	}
	content, err := b.Read(req.GetString("context_name", ""))
	if err != nil {
		return s.fail("get_context", err)
	}
	return s.result("get_context", types.SuccessResponse(content))
}

func updateContextTool() mcp.Tool {
	return mcp.NewTool("update_context",
		mcp.WithDescription("Write context content. Validated types are checked against their template first; invalid content is rejected with structure errors and correction guidance, and nothing is written."),
		mcp.WithString("project_name",
			mcp.Required(),
			mcp.Description("Project to write into."),
		),
		mcp.WithString("context_type",
			mcp.Required(),
			mcp.Description("Configured context type to write."),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Markdown content to store."),
		),
		mcp.WithString("context_name",
			mcp.Description("Document name. Required for collections, ignored for single documents and logs."),
		),
	)
}

func (s *Server) handleUpdateContext(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, err := req.RequireString("project_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	contextType, err := req.RequireString("context_type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	contextName := req.GetString("context_name", "")

	b, err := s.factory.For(project, contextType)
	if err != nil {
		return s.fail("update_context", err)
	}

	result, err := b.Validate(content)
	if err != nil {
		return s.fail("update_context", err)
	}

	key := validation.TrackerKey(project, contextType, contextName)
	if !result.IsValid {
		result.CorrectionGuidance = s.tracker.Record(key, false)
		return s.result("update_context", types.OperationResponse{
			Success:    false,
			Errors:     result.Errors,
			Validation: &result,
		})
	}
	s.tracker.Record(key, true)

	id, err := b.Update(contextName, content)
	if err != nil {
		return s.fail("update_context", err)
	}
	return s.result("update_context", types.OperationResponse{
		Success:    true,
		Data:       []string{id},
		Validation: &result,
	})
}

func clearContextTool() mcp.Tool {
	return mcp.NewTool("clear_context",
		mcp.WithDescription("Archive stored context instead of deleting it. Collections require a context_name; logs archive every entry unless one is named. Archived documents move under the project's archive directory."),
		mcp.WithString("project_name",
			mcp.Required(),
			mcp.Description("Project to clear in."),
		),
		mcp.WithString("context_type",
			mcp.Required(),
			mcp.Description("Configured context type to clear."),
		),
		mcp.WithString("context_name",
			mcp.Description("Document name. Required for collections, optional for logs, ignored for single documents."),
		),
	)
}

func (s *Server) handleClearContext(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, err := req.RequireString("project_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	contextType, err := req.RequireString("context_type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	b, err := s.factory.For(project, contextType)
	if err != nil {
		return s.fail("clear_context", err)
	}
	archived, err := b.Reset(req.GetString("context_name", ""))
	if err != nil {
		return s.fail("clear_context", err)
	}
	return s.result("clear_context", types.SuccessResponse(archived...))
}

func listContextNamesTool() mcp.Tool {
	return mcp.NewTool("list_context_names",
		mcp.WithDescription("List stored document names for a context type. Collections list their entries; single-document and log types report the type name itself."),
		mcp.WithString("project_name",
			mcp.Required(),
			mcp.Description("Project to inspect."),
		),
		mcp.WithString("context_type",
			mcp.Required(),
			mcp.Description("Configured context type to list."),
		),
	)
}

func (s *Server) handleListContextNames(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, err := req.RequireString("project_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	contextType, err := req.RequireString("context_type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	names, err := s.factory.Engine().ListAll(project, contextType)
	if err != nil {
		return s.fail("list_context_names", err)
	}
	return s.result("list_context_names", types.SuccessResponse(names...))
}
