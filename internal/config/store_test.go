package config

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrkplt/shared-project-context-sub000/internal/paths"
	"github.com/mrkplt/shared-project-context-sub000/pkg/types"
)

func newTestStore(t *testing.T) (*Store, paths.Layout) {
	t.Helper()
	layout := paths.NewLayout(t.TempDir())
	return NewStore(layout), layout
}

func TestGet_CreatesDefaultConfig(t *testing.T) {
	store, layout := newTestStore(t)

	cfg, err := store.Get("demo")
	require.NoError(t, err)
	require.Len(t, cfg.ContextTypes, 1)
	assert.Equal(t, "general", cfg.ContextTypes[0].Name)
	assert.Equal(t, types.FreeformCollection, cfg.ContextTypes[0].BaseType)
	assert.False(t, cfg.ContextTypes[0].Validation)

	// The default is persisted immediately as pretty-printed JSON.
	data, err := os.ReadFile(layout.ProjectConfigFile("demo"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"contextTypes\"")

	var onDisk types.ProjectConfig
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, cfg, onDisk)
}

func TestGet_LoadsExistingConfig(t *testing.T) {
	store, layout := newTestStore(t)

	cfg := types.ProjectConfig{ContextTypes: []types.TypeConfig{
		{BaseType: types.FreeformDocument, Name: "notes"},
		{BaseType: types.TemplatedLog, Name: "worklog", Template: "session-summary", Validation: true},
	}}
	writeConfig(t, layout, "demo", cfg)

	got, err := store.Get("demo")
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestGet_CachesSuccessfulLoads(t *testing.T) {
	store, layout := newTestStore(t)

	cfg := types.ProjectConfig{ContextTypes: []types.TypeConfig{
		{BaseType: types.FreeformDocument, Name: "notes"},
	}}
	writeConfig(t, layout, "demo", cfg)

	first, err := store.Get("demo")
	require.NoError(t, err)

	// An external edit is not observed: the cached config wins.
	edited := types.ProjectConfig{ContextTypes: []types.TypeConfig{
		{BaseType: types.FreeformLog, Name: "events"},
	}}
	writeConfig(t, layout, "demo", edited)

	second, err := store.Get("demo")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// A fresh store sees the edit.
	fresh := NewStore(layout)
	got, err := fresh.Get("demo")
	require.NoError(t, err)
	assert.Equal(t, edited, got)
}

func TestGet_ParseFailureNotCached(t *testing.T) {
	store, layout := newTestStore(t)

	require.NoError(t, os.MkdirAll(layout.ProjectDir("demo"), 0o755))
	require.NoError(t, os.WriteFile(layout.ProjectConfigFile("demo"), []byte("{not json"), 0o644))

	_, err := store.Get("demo")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrConfigParse)

	// Fixing the file is observed on the next call because the failure
	// was not cached.
	cfg := types.ProjectConfig{ContextTypes: []types.TypeConfig{
		{BaseType: types.FreeformCollection, Name: "general"},
	}}
	writeConfig(t, layout, "demo", cfg)

	got, err := store.Get("demo")
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestGet_ReadFailure(t *testing.T) {
	store, layout := newTestStore(t)

	// A directory where the config file should be is a read error, not a
	// parse error, and must not trigger default creation.
	require.NoError(t, os.MkdirAll(layout.ProjectConfigFile("demo"), 0o755))

	_, err := store.Get("demo")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrConfigRead)
}

func TestGet_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  types.ProjectConfig
	}{
		{"unknown base type", types.ProjectConfig{ContextTypes: []types.TypeConfig{
			{BaseType: "mystery", Name: "notes"},
		}}},
		{"duplicate names", types.ProjectConfig{ContextTypes: []types.TypeConfig{
			{BaseType: types.FreeformDocument, Name: "notes"},
			{BaseType: types.FreeformLog, Name: "notes"},
		}}},
		{"reserved name", types.ProjectConfig{ContextTypes: []types.TypeConfig{
			{BaseType: types.FreeformCollection, Name: "archive"},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, layout := newTestStore(t)
			writeConfig(t, layout, "demo", tt.cfg)

			_, err := store.Get("demo")
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrConfigParse)
		})
	}
}

func TestGet_RejectsInvalidProjectName(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get("../escape")
	assert.ErrorIs(t, err, types.ErrInvalidName)

	_, err = store.Get("")
	assert.ErrorIs(t, err, types.ErrInvalidName)
}

// writeConfig marshals cfg to the project's config path, creating the
// project directory as needed.
func writeConfig(t *testing.T, layout paths.Layout, project string, cfg types.ProjectConfig) {
	t.Helper()
	require.NoError(t, os.MkdirAll(layout.ProjectDir(project), 0o755))
	data, err := json.MarshalIndent(cfg, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(layout.ProjectConfigFile(project), data, 0o644))
}
