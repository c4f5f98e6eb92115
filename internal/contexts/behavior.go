// Package contexts implements the per-base-type behavior contract: every
// context type supports update, read, reset, and validate, but the name
// rules and result shaping differ between single documents, collections,
// and logs. Behaviors hold no mutable state; they bind a project and a
// type configuration to the persistence engine at construction time.
//
// The package is named contexts (not context) so files using the standard
// context package never shadow it.
package contexts

import (
	"fmt"

	"github.com/mrkplt/shared-project-context-sub000/internal/persistence"
	"github.com/mrkplt/shared-project-context-sub000/internal/validation"
	"github.com/mrkplt/shared-project-context-sub000/pkg/types"
)

// Behavior is the four-operation contract shared by every context type.
type Behavior interface {
	// Update stores non-empty content under the type's name rule and
	// returns the resolved document identifier.
	Update(contextName, content string) (string, error)

	// Read returns stored content. Document types ignore the name,
	// collections require one, and logs treat an empty name as "all
	// entries" joined newest first.
	Read(contextName string) (string, error)

	// Reset archives documents per the type's name rule and returns the
	// archived identifiers. Resetting what does not exist is a success.
	Reset(contextName string) ([]string, error)

	// Validate checks content against the type's template. The result is
	// always valid when validation is disabled; validation enabled without
	// a configured template is an explicit failure, never a silent pass.
	Validate(content string) (types.ValidationResult, error)
}

// behavior carries what every variant needs. Validate is shared: the
// validation contract does not depend on the base type.
type behavior struct {
	project   string
	typeCfg   types.TypeConfig
	engine    *persistence.Engine
	validator *validation.Validator
}

func (b *behavior) Validate(content string) (types.ValidationResult, error) {
	if !b.typeCfg.Validation {
		return types.ValidationResult{IsValid: true}, nil
	}
	if b.typeCfg.Template == "" {
		return types.ValidationResult{
			IsValid: false,
			Errors:  []string{types.ErrValidationNoTemplate.Error()},
		}, nil
	}
	if content == "" {
		return types.ValidationResult{
			IsValid: false,
			Errors:  []string{"Content is empty"},
		}, nil
	}

	templateText, err := b.engine.Template(b.project, b.typeCfg.Name)
	if err != nil {
		return types.ValidationResult{}, fmt.Errorf("loading validation template: %w", err)
	}
	return b.validator.Validate(content, templateText), nil
}

func (b *behavior) requireContent(content string) error {
	if content == "" {
		return types.ErrContentRequired
	}
	return nil
}
