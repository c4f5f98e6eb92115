package contexts

import (
	"fmt"

	"github.com/mrkplt/shared-project-context-sub000/internal/persistence"
	"github.com/mrkplt/shared-project-context-sub000/internal/validation"
	"github.com/mrkplt/shared-project-context-sub000/pkg/types"
)

// Factory builds the behavior for a configured context type. Dispatch is
// total over the closed base-type set; an unrecognized base type can only
// appear through a config that bypassed validation, and is reported as an
// error value like every other failure rather than a panic.
type Factory struct {
	engine    *persistence.Engine
	validator *validation.Validator
}

// NewFactory creates a Factory over the engine. A nil validator is
// replaced with a default one.
func NewFactory(engine *persistence.Engine, validator *validation.Validator) *Factory {
	if validator == nil {
		validator = validation.NewValidator()
	}
	return &Factory{engine: engine, validator: validator}
}

// Engine returns the persistence engine the factory dispatches onto.
func (f *Factory) Engine() *persistence.Engine { return f.engine }

// For returns the behavior serving typeName within project. Unknown type
// names fail with ErrUnknownContextType.
func (f *Factory) For(project, typeName string) (Behavior, error) {
	cfg, err := f.engine.Config(project)
	if err != nil {
		return nil, err
	}
	tc, ok := cfg.FindType(typeName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownContextType, typeName)
	}

	b := behavior{project: project, typeCfg: tc, engine: f.engine, validator: f.validator}
	switch {
	case tc.BaseType.IsDocument():
		return &documentBehavior{b}, nil
	case tc.BaseType.IsCollection():
		return &collectionBehavior{b}, nil
	case tc.BaseType.IsLog():
		return &logBehavior{b}, nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownBaseType, string(tc.BaseType))
	}
}
