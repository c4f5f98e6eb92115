package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrkplt/shared-project-context-sub000/internal/contexts"
	"github.com/mrkplt/shared-project-context-sub000/internal/paths"
	"github.com/mrkplt/shared-project-context-sub000/internal/persistence"
	"github.com/mrkplt/shared-project-context-sub000/internal/search"
	"github.com/mrkplt/shared-project-context-sub000/pkg/types"
)

type toolHandler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	root := t.TempDir()

	ix, err := search.Open(paths.NewLayout(root).IndexFile())
	require.NoError(t, err)
	t.Cleanup(func() { ix.Close() })

	engine := persistence.New(root, persistence.WithIndexer(ix))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(contexts.NewFactory(engine, nil), ix, "test", logger)
}

// seedValidatedProject configures a project with a validated templated
// document type alongside the usual freeform types.
func seedValidatedProject(t *testing.T, s *Server, project string) {
	t.Helper()
	cfg := types.ProjectConfig{ContextTypes: []types.TypeConfig{
		{Name: "general", BaseType: types.FreeformCollection},
		{Name: "mental-model", BaseType: types.TemplatedDocument, Template: "mental-model", Validation: true},
		{Name: "worklog", BaseType: types.FreeformLog},
	}}
	data, err := json.MarshalIndent(cfg, "", "  ")
	require.NoError(t, err)
	layout := s.factory.Engine().Layout()
	require.NoError(t, os.MkdirAll(layout.ProjectDir(project), 0o755))
	require.NoError(t, os.WriteFile(layout.ProjectConfigFile(project), data, 0o644))
}

// call invokes a handler and decodes its envelope.
func call(t *testing.T, handler toolHandler, args map[string]any) types.OperationResponse {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.NotEmpty(t, res.Content)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "tool results are text content")

	var resp types.OperationResponse
	require.NoError(t, json.Unmarshal([]byte(text.Text), &resp))
	return resp
}

func TestInitAndListProjects(t *testing.T) {
	s := newTestServer(t)

	resp := call(t, s.handleListProjects, nil)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Data)

	resp = call(t, s.handleInitProject, map[string]any{"project_name": "demo"})
	assert.True(t, resp.Success)

	resp = call(t, s.handleInitProject, map[string]any{"project_name": "demo"})
	assert.False(t, resp.Success)
	require.NotEmpty(t, resp.Errors)
	assert.Contains(t, resp.Errors[0], "already exists")

	resp = call(t, s.handleListProjects, nil)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"demo"}, resp.Data)
}

func TestListContextTypes(t *testing.T) {
	s := newTestServer(t)

	resp := call(t, s.handleListContextTypes, map[string]any{"project_name": "demo"})
	require.True(t, resp.Success)
	assert.Equal(t, []string{"general"}, resp.Data)
	require.NotNil(t, resp.Config)
	require.Len(t, resp.Config.ContextTypes, 1)
	assert.Equal(t, types.FreeformCollection, resp.Config.ContextTypes[0].BaseType)
}

func TestContextRoundTrip(t *testing.T) {
	s := newTestServer(t)

	resp := call(t, s.handleUpdateContext, map[string]any{
		"project_name": "demo",
		"context_type": "general",
		"context_name": "alpha",
		"content":      "alpha body",
	})
	require.True(t, resp.Success)
	assert.Equal(t, []string{"alpha"}, resp.Data)

	resp = call(t, s.handleGetContext, map[string]any{
		"project_name": "demo",
		"context_type": "general",
		"context_name": "alpha",
	})
	require.True(t, resp.Success)
	assert.Equal(t, []string{"alpha body"}, resp.Data)

	resp = call(t, s.handleListContextNames, map[string]any{
		"project_name": "demo",
		"context_type": "general",
	})
	require.True(t, resp.Success)
	assert.Equal(t, []string{"alpha"}, resp.Data)

	resp = call(t, s.handleClearContext, map[string]any{
		"project_name": "demo",
		"context_type": "general",
		"context_name": "alpha",
	})
	require.True(t, resp.Success)
	assert.Equal(t, []string{"alpha"}, resp.Data)

	resp = call(t, s.handleGetContext, map[string]any{
		"project_name": "demo",
		"context_type": "general",
		"context_name": "alpha",
	})
	assert.False(t, resp.Success)
	assert.Equal(t, []string{"alpha.md: context does not exist"}, resp.Errors)
}

func TestUpdateContextValidationGate(t *testing.T) {
	s := newTestServer(t)
	seedValidatedProject(t, s, "demo")

	invalid := map[string]any{
		"project_name": "demo",
		"context_type": "mental-model",
		"content":      "# Mental Model\n\nno required sections\n",
	}

	resp := call(t, s.handleUpdateContext, invalid)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Errors)
	require.NotNil(t, resp.Validation)
	assert.False(t, resp.Validation.IsValid)
	assert.Contains(t, resp.Validation.CorrectionGuidance, "Fix the listed structure errors")

	// Nothing was written.
	read := call(t, s.handleGetContext, map[string]any{
		"project_name": "demo",
		"context_type": "mental-model",
	})
	assert.False(t, read.Success)

	// Consecutive failures escalate the guidance.
	resp = call(t, s.handleUpdateContext, invalid)
	require.NotNil(t, resp.Validation)
	assert.Contains(t, resp.Validation.CorrectionGuidance, "get_template")

	valid := map[string]any{
		"project_name": "demo",
		"context_type": "mental-model",
		"content": "# Mental Model\n\n## Purpose\n\np\n\n## Architecture\n\na\n\n" +
			"## Key Decisions\n\nk\n\n## Constraints\n\nc\n\n## Open Questions\n\nq\n",
	}
	resp = call(t, s.handleUpdateContext, valid)
	require.True(t, resp.Success)
	require.NotNil(t, resp.Validation)
	assert.True(t, resp.Validation.IsValid)

	read = call(t, s.handleGetContext, map[string]any{
		"project_name": "demo",
		"context_type": "mental-model",
	})
	require.True(t, read.Success)
	assert.Contains(t, read.Data[0], "## Purpose")
}

func TestGetTemplate(t *testing.T) {
	s := newTestServer(t)
	seedValidatedProject(t, s, "demo")

	resp := call(t, s.handleGetTemplate, map[string]any{
		"project_name": "demo",
		"context_type": "mental-model",
	})
	require.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Contains(t, resp.Data[0], "# Mental Model")

	// The builtin was copied into the project on first use.
	assert.FileExists(t, s.factory.Engine().Layout().TemplateFile("demo", "mental-model"))
}

func TestSearchContext(t *testing.T) {
	s := newTestServer(t)

	call(t, s.handleUpdateContext, map[string]any{
		"project_name": "demo",
		"context_type": "general",
		"context_name": "auth",
		"content":      "login uses refresh tokens",
	})

	resp := call(t, s.handleSearchContext, map[string]any{"query": "tokens"})
	require.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Contains(t, resp.Data[0], "demo/general/auth")
	assert.Contains(t, resp.Data[0], "refresh tokens")

	t.Run("index disabled", func(t *testing.T) {
		disabled := New(s.factory, nil, "test", slog.New(slog.NewTextHandler(io.Discard, nil)))
		resp := call(t, disabled.handleSearchContext, map[string]any{"query": "tokens"})
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Errors[0], "not available")
	})
}

func TestMissingRequiredArgument(t *testing.T) {
	s := newTestServer(t)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{}
	res, err := s.handleInitProject(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.IsError, "missing required arguments are protocol-level errors")
}
