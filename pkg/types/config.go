package types

import (
	"fmt"
	"regexp"
)

// BaseType determines how a context type resolves document identity and how
// writes behave: single documents are replaced in place, collection entries
// are keyed by caller-supplied names, and log entries accumulate under
// generated timestamped names. The templated variants additionally carry a
// structural template that content can be validated against.
type BaseType string

// The closed set of base types. Config entries carrying any other value are
// rejected at load time, so behavior dispatch is total over these constants.
const (
	TemplatedDocument   BaseType = "templated-document"
	FreeformDocument    BaseType = "freeform-document"
	TemplatedCollection BaseType = "templated-collection"
	FreeformCollection  BaseType = "freeform-collection"
	TemplatedLog        BaseType = "templated-log"
	FreeformLog         BaseType = "freeform-log"
)

// validBaseTypes is the set of recognized base type values.
var validBaseTypes = map[BaseType]bool{
	TemplatedDocument:   true,
	FreeformDocument:    true,
	TemplatedCollection: true,
	FreeformCollection:  true,
	TemplatedLog:        true,
	FreeformLog:         true,
}

// ParseBaseType converts a config string into a BaseType.
// Returns ErrUnknownBaseType for values outside the closed set.
func ParseBaseType(s string) (BaseType, error) {
	b := BaseType(s)
	if !validBaseTypes[b] {
		return "", fmt.Errorf("%w: %q", ErrUnknownBaseType, s)
	}
	return b, nil
}

// Valid reports whether b is one of the recognized base types.
func (b BaseType) Valid() bool { return validBaseTypes[b] }

// IsTemplated reports whether b is one of the templated variants.
func (b BaseType) IsTemplated() bool {
	return b == TemplatedDocument || b == TemplatedCollection || b == TemplatedLog
}

// IsDocument reports whether b holds exactly one replaceable document.
func (b BaseType) IsDocument() bool {
	return b == TemplatedDocument || b == FreeformDocument
}

// IsCollection reports whether b holds a named set of documents.
func (b BaseType) IsCollection() bool {
	return b == TemplatedCollection || b == FreeformCollection
}

// IsLog reports whether b forms an append-only chronological log.
func (b BaseType) IsLog() bool {
	return b == TemplatedLog || b == FreeformLog
}

// TypeConfig describes one configured context type within a project.
type TypeConfig struct {
	// BaseType selects identity resolution and overwrite semantics.
	BaseType BaseType `json:"baseType"`

	// Name identifies the type; unique within a project. It doubles as the
	// storage directory name and, for document and log types, the document
	// identifier stem.
	Name string `json:"name"`

	// Description is free text shown to protocol clients.
	Description string `json:"description,omitempty"`

	// Template names the template used for structural validation. When
	// empty, template lookups fall back to Name, but validation (if
	// enabled) requires an explicit value.
	Template string `json:"template,omitempty"`

	// Validation enables structural validation of written content against
	// the template. True with an empty Template is a reportable
	// configuration error, never treated as "valid".
	Validation bool `json:"validation,omitempty"`
}

// Validate checks that the TypeConfig is well-formed: a valid name and a
// recognized base type. The validation/template invariant is deliberately
// not checked here; it surfaces when the type's validate operation runs,
// so one misconfigured type cannot block access to the rest of the project.
func (tc TypeConfig) Validate() error {
	if err := ValidateName(tc.Name); err != nil {
		return fmt.Errorf("context type name: %w", err)
	}
	if _, err := ParseBaseType(string(tc.BaseType)); err != nil {
		return err
	}
	if tc.Template != "" {
		if err := ValidateName(tc.Template); err != nil {
			return fmt.Errorf("template name: %w", err)
		}
	}
	return nil
}

// ProjectConfig is the per-project type configuration, persisted as
// pretty-printed JSON in the project's project-config.json.
type ProjectConfig struct {
	ContextTypes []TypeConfig `json:"contextTypes"`
}

// DefaultProjectConfig returns the configuration written when a project has
// no config file: a single freeform collection named "general" with
// validation disabled.
func DefaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		ContextTypes: []TypeConfig{
			{
				BaseType:    FreeformCollection,
				Name:        "general",
				Description: "General purpose project context.",
			},
		},
	}
}

// FindType returns the TypeConfig with the given name.
// The second return is false when no such type is configured.
func (pc ProjectConfig) FindType(name string) (TypeConfig, bool) {
	for _, tc := range pc.ContextTypes {
		if tc.Name == name {
			return tc, true
		}
	}
	return TypeConfig{}, false
}

// Validate checks every configured type and rejects duplicate names.
func (pc ProjectConfig) Validate() error {
	seen := make(map[string]bool, len(pc.ContextTypes))
	for _, tc := range pc.ContextTypes {
		if err := tc.Validate(); err != nil {
			return err
		}
		if seen[tc.Name] {
			return fmt.Errorf("duplicate context type %q", tc.Name)
		}
		seen[tc.Name] = true
	}
	return nil
}

// namePattern constrains project, context type, context, and template names:
// they become path segments on disk, so path separators, leading dots, and
// empty strings are all rejected.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// maxNameLength keeps resolved filenames comfortably inside common
// filesystem limits once the ".md" extension is appended.
const maxNameLength = 128

// ValidateName checks a caller-supplied name against the naming rules shared
// by projects, context types, context names, and templates.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: %q exceeds %d characters", ErrInvalidName, name, maxNameLength)
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
