package contexts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrkplt/shared-project-context-sub000/pkg/types"
)

func TestDocumentLifecycle(t *testing.T) {
	f := newTestFactory(t)
	seedProject(t, f, "p")
	b, err := f.For("p", "notes")
	require.NoError(t, err)

	_, err = b.Update("", "")
	assert.ErrorIs(t, err, types.ErrContentRequired)

	id, err := b.Update("", "hello")
	require.NoError(t, err)
	assert.Equal(t, "notes", id)

	got, err := b.Read("")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	// A second update replaces the old value entirely.
	_, err = b.Update("any-name-is-ignored", "world")
	require.NoError(t, err)
	got, err = b.Read("name-ignored-here-too")
	require.NoError(t, err)
	assert.Equal(t, "world", got)

	archived, err := b.Reset("")
	require.NoError(t, err)
	assert.Equal(t, []string{"notes"}, archived)

	_, err = b.Read("")
	assert.ErrorIs(t, err, types.ErrContextNotFound)

	// Resetting again succeeds with nothing archived.
	archived, err = b.Reset("")
	require.NoError(t, err)
	assert.Empty(t, archived)
}

func TestTemplatedDocumentArchivesOnUpdate(t *testing.T) {
	f := newTestFactory(t)
	seedProject(t, f, "p")
	b, err := f.For("p", "mental-model")
	require.NoError(t, err)

	_, err = b.Update("", "first revision")
	require.NoError(t, err)
	_, err = b.Update("", "second revision")
	require.NoError(t, err)

	got, err := b.Read("")
	require.NoError(t, err)
	assert.Equal(t, "second revision", got)

	// The first revision was archived, not lost.
	typeArchive := filepath.Join(f.Engine().Layout().ProjectDir("p"), "archive", "mental-model")
	buckets, err := os.ReadDir(typeArchive)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	data, err := os.ReadFile(filepath.Join(typeArchive, buckets[0].Name(), "mental-model.md"))
	require.NoError(t, err)
	assert.Equal(t, "first revision", string(data))
}

func TestFreeformDocumentDoesNotArchiveOnUpdate(t *testing.T) {
	f := newTestFactory(t)
	seedProject(t, f, "p")
	b, err := f.For("p", "notes")
	require.NoError(t, err)

	_, err = b.Update("", "first")
	require.NoError(t, err)
	_, err = b.Update("", "second")
	require.NoError(t, err)

	assert.NoDirExists(t, filepath.Join(f.Engine().Layout().ProjectDir("p"), "archive"))
}
