package types

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBaseType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    BaseType
		wantErr bool
	}{
		{name: "templated document", input: "templated-document", want: TemplatedDocument},
		{name: "freeform document", input: "freeform-document", want: FreeformDocument},
		{name: "templated collection", input: "templated-collection", want: TemplatedCollection},
		{name: "freeform collection", input: "freeform-collection", want: FreeformCollection},
		{name: "templated log", input: "templated-log", want: TemplatedLog},
		{name: "freeform log", input: "freeform-log", want: FreeformLog},
		{name: "unknown value", input: "persistent", wantErr: true},
		{name: "empty value", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBaseType(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnknownBaseType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBaseTypeVariantPredicates(t *testing.T) {
	tests := []struct {
		base      BaseType
		templated bool
		document  bool
		coll      bool
		log       bool
	}{
		{TemplatedDocument, true, true, false, false},
		{FreeformDocument, false, true, false, false},
		{TemplatedCollection, true, false, true, false},
		{FreeformCollection, false, false, true, false},
		{TemplatedLog, true, false, false, true},
		{FreeformLog, false, false, false, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.base), func(t *testing.T) {
			assert.True(t, tt.base.Valid())
			assert.Equal(t, tt.templated, tt.base.IsTemplated())
			assert.Equal(t, tt.document, tt.base.IsDocument())
			assert.Equal(t, tt.coll, tt.base.IsCollection())
			assert.Equal(t, tt.log, tt.base.IsLog())
		})
	}
}

func TestTypeConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  TypeConfig
		wantErr error
	}{
		{
			name:   "valid freeform collection",
			config: TypeConfig{BaseType: FreeformCollection, Name: "general"},
		},
		{
			name:   "valid templated document with template",
			config: TypeConfig{BaseType: TemplatedDocument, Name: "mental-model", Template: "mental-model", Validation: true},
		},
		{
			name:    "empty name",
			config:  TypeConfig{BaseType: FreeformCollection, Name: ""},
			wantErr: ErrInvalidName,
		},
		{
			name:    "name with path separator",
			config:  TypeConfig{BaseType: FreeformCollection, Name: "a/b"},
			wantErr: ErrInvalidName,
		},
		{
			name:    "unknown base type",
			config:  TypeConfig{BaseType: "persistent", Name: "notes"},
			wantErr: ErrUnknownBaseType,
		},
		{
			name:    "template name with traversal",
			config:  TypeConfig{BaseType: TemplatedDocument, Name: "notes", Template: "../evil"},
			wantErr: ErrInvalidName,
		},
		{
			// The validation/template invariant is reported by the
			// validate operation, not at load time.
			name:   "validation without template loads",
			config: TypeConfig{BaseType: TemplatedDocument, Name: "notes", Validation: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestProjectConfigValidate(t *testing.T) {
	t.Run("rejects duplicate type names", func(t *testing.T) {
		cfg := ProjectConfig{ContextTypes: []TypeConfig{
			{BaseType: FreeformCollection, Name: "general"},
			{BaseType: FreeformLog, Name: "general"},
		}}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("default config is valid", func(t *testing.T) {
		cfg := DefaultProjectConfig()
		require.NoError(t, cfg.Validate())
		require.Len(t, cfg.ContextTypes, 1)
		assert.Equal(t, "general", cfg.ContextTypes[0].Name)
		assert.Equal(t, FreeformCollection, cfg.ContextTypes[0].BaseType)
		assert.False(t, cfg.ContextTypes[0].Validation)
	})
}

func TestProjectConfigFindType(t *testing.T) {
	cfg := ProjectConfig{ContextTypes: []TypeConfig{
		{BaseType: FreeformCollection, Name: "general"},
		{BaseType: TemplatedLog, Name: "worklog", Template: "session-summary"},
	}}

	tc, ok := cfg.FindType("worklog")
	require.True(t, ok)
	assert.Equal(t, TemplatedLog, tc.BaseType)
	assert.Equal(t, "session-summary", tc.Template)

	_, ok = cfg.FindType("missing")
	assert.False(t, ok)
}

func TestValidateName(t *testing.T) {
	valid := []string{"general", "mental-model", "notes_2026", "a", "v1.2-notes", "A9"}
	for _, name := range valid {
		t.Run("valid "+name, func(t *testing.T) {
			assert.NoError(t, ValidateName(name))
		})
	}

	invalid := []string{"", ".hidden", "a/b", "a\\b", "..", "-lead", "_lead", "has space", strings.Repeat("x", 129)}
	for _, name := range invalid {
		t.Run("invalid "+name, func(t *testing.T) {
			err := ValidateName(name)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidName))
		})
	}
}
