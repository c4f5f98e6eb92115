package contexts

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrkplt/shared-project-context-sub000/internal/persistence"
	"github.com/mrkplt/shared-project-context-sub000/pkg/types"
)

// fixedClock advances one millisecond per call so generated log
// identifiers are deterministic and distinct.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(time.Millisecond)
	return t
}

func newTestFactory(t *testing.T) *Factory {
	t.Helper()
	engine := persistence.New(t.TempDir(), persistence.WithClock(&fixedClock{
		now: time.Date(2026, 8, 23, 14, 5, 9, 123_000_000, time.UTC),
	}))
	return NewFactory(engine, nil)
}

// seedProject writes a configuration exercising every base type.
func seedProject(t *testing.T, f *Factory, project string) {
	t.Helper()
	cfg := types.ProjectConfig{ContextTypes: []types.TypeConfig{
		{Name: "general", BaseType: types.FreeformCollection},
		{Name: "decisions", BaseType: types.TemplatedCollection, Template: "default"},
		{Name: "notes", BaseType: types.FreeformDocument},
		{Name: "mental-model", BaseType: types.TemplatedDocument, Template: "mental-model", Validation: true},
		{Name: "worklog", BaseType: types.FreeformLog},
		{Name: "audit", BaseType: types.TemplatedLog, Template: "session-summary"},
		{Name: "broken", BaseType: types.FreeformDocument, Validation: true},
	}}
	data, err := json.MarshalIndent(cfg, "", "  ")
	require.NoError(t, err)
	layout := f.Engine().Layout()
	require.NoError(t, os.MkdirAll(layout.ProjectDir(project), 0o755))
	require.NoError(t, os.WriteFile(layout.ProjectConfigFile(project), data, 0o644))
}

func TestFactoryDispatch(t *testing.T) {
	f := newTestFactory(t)
	seedProject(t, f, "demo")

	tests := []struct {
		typeName string
		want     string
	}{
		{"notes", "document"},
		{"mental-model", "document"},
		{"general", "collection"},
		{"decisions", "collection"},
		{"worklog", "log"},
		{"audit", "log"},
	}
	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			b, err := f.For("demo", tt.typeName)
			require.NoError(t, err)
			switch tt.want {
			case "document":
				assert.IsType(t, &documentBehavior{}, b)
			case "collection":
				assert.IsType(t, &collectionBehavior{}, b)
			case "log":
				assert.IsType(t, &logBehavior{}, b)
			}
		})
	}
}

func TestFactoryUnknownType(t *testing.T) {
	f := newTestFactory(t)
	seedProject(t, f, "demo")

	_, err := f.For("demo", "nonsense")
	assert.ErrorIs(t, err, types.ErrUnknownContextType)
}

func TestFactoryDefaultProject(t *testing.T) {
	f := newTestFactory(t)

	// An unseeded project gets the default configuration: a single
	// freeform collection named "general".
	b, err := f.For("fresh", "general")
	require.NoError(t, err)
	assert.IsType(t, &collectionBehavior{}, b)

	_, err = f.For("fresh", "notes")
	assert.ErrorIs(t, err, types.ErrUnknownContextType)
}

func TestFactoryConfigFailure(t *testing.T) {
	f := newTestFactory(t)
	layout := f.Engine().Layout()
	require.NoError(t, os.MkdirAll(layout.ProjectDir("demo"), 0o755))
	require.NoError(t, os.WriteFile(layout.ProjectConfigFile("demo"), []byte("{nope"), 0o644))

	_, err := f.For("demo", "general")
	assert.ErrorIs(t, err, types.ErrConfigParse)
}
