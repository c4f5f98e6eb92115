// Package mcpserver exposes the context store over the Model Context
// Protocol. Every tool handler calls the core and serializes the uniform
// result contract as JSON text content, so protocol clients see the same
// envelope the CLI prints. Domain failures ride inside the envelope with
// success=false; only malformed requests become protocol-level tool errors.
package mcpserver

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mrkplt/shared-project-context-sub000/internal/contexts"
	"github.com/mrkplt/shared-project-context-sub000/internal/search"
	"github.com/mrkplt/shared-project-context-sub000/internal/validation"
	"github.com/mrkplt/shared-project-context-sub000/pkg/types"
)

// Server holds the tool handlers and their dependencies. The search index
// may be nil, in which case search_context reports itself unavailable and
// everything else works normally.
type Server struct {
	factory *contexts.Factory
	index   *search.Index
	tracker *validation.Tracker
	logger  *slog.Logger
	mcp     *server.MCPServer
}

// New builds the MCP server and registers every tool.
func New(factory *contexts.Factory, index *search.Index, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		factory: factory,
		index:   index,
		tracker: validation.NewTracker(),
		logger:  logger,
	}

	m := server.NewMCPServer(
		"shared-project-context",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)
	s.register(m)
	s.mcp = m
	return s
}

// Serve runs the server over stdio until the client disconnects. Logging
// must already be pointed at stderr: stdout belongs to the transport.
func (s *Server) Serve() error {
	s.logger.Info("mcp server listening", "transport", "stdio")
	return server.ServeStdio(s.mcp)
}

func (s *Server) register(m *server.MCPServer) {
	m.AddTool(listProjectsTool(), s.handleListProjects)
	m.AddTool(initProjectTool(), s.handleInitProject)
	m.AddTool(listContextTypesTool(), s.handleListContextTypes)
	m.AddTool(getContextTool(), s.handleGetContext)
	m.AddTool(updateContextTool(), s.handleUpdateContext)
	m.AddTool(clearContextTool(), s.handleClearContext)
	m.AddTool(listContextNamesTool(), s.handleListContextNames)
	m.AddTool(getTemplateTool(), s.handleGetTemplate)
	m.AddTool(searchContextTool(), s.handleSearchContext)
}

// result serializes a response envelope into text content.
func (s *Server) result(tool string, resp types.OperationResponse) (*mcp.CallToolResult, error) {
	if !resp.Success {
		s.logger.Debug("tool returned failure", "tool", tool, "errors", resp.Errors)
	}
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// fail wraps a domain error into a failed envelope.
func (s *Server) fail(tool string, err error) (*mcp.CallToolResult, error) {
	return s.result(tool, types.ErrorResponse(err))
}

func serverInstructions() string {
	return `This server persists project context as markdown documents so work can
continue across sessions.

Context lives in named projects. Each project configures context types of
three shapes: single documents (one replaceable document per type),
collections (named documents under one type), and logs (append-only
timestamped entries).

Typical workflow:
1. list_projects to see what exists; init_project to start a new one.
2. list_context_types to learn a project's types and which are validated.
3. get_context to read, update_context to write, clear_context to archive.
   Collections need a context_name; logs accept one to address a single
   entry. Cleared content is archived, never deleted.
4. For templated types, call get_template first and follow its heading
   structure. If update_context reports validation errors, fix the listed
   headings and follow the correctionGuidance.
5. search_context finds stored content by full-text query across projects.

Every tool returns a JSON envelope: {success, data?, errors?, config?,
validation?}. Check success before trusting data.`
}
