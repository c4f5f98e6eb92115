// Package template resolves the template text for a context type.
//
// Resolution prefers a project-local template file. When none exists, the
// matching built-in default is copied into the project's templates directory
// and returned, so every later lookup hits the project-local copy and
// projects can edit their templates without affecting the shipped defaults.
package template

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mrkplt/shared-project-context-sub000/internal/paths"
	"github.com/mrkplt/shared-project-context-sub000/pkg/types"
)

//go:embed builtin/*.md
var builtinFS embed.FS

const builtinDir = "builtin"

// Resolver locates template text for context types.
type Resolver struct {
	layout paths.Layout
}

// NewResolver creates a Resolver over the given layout.
func NewResolver(layout paths.Layout) *Resolver {
	return &Resolver{layout: layout}
}

// Resolve returns the template text for templateName within project.
//
// A project-local template wins. Otherwise the built-in default with the
// same name is copied into the project and returned; the copy means a
// project's templates are self-contained after first use. When neither
// exists the lookup fails with ErrTemplateNotFound.
func (r *Resolver) Resolve(project, templateName string) (string, error) {
	if err := types.ValidateName(project); err != nil {
		return "", err
	}
	if err := types.ValidateName(templateName); err != nil {
		return "", fmt.Errorf("template name: %w", err)
	}

	local := r.layout.TemplateFile(project, templateName)
	data, err := os.ReadFile(local)
	if err == nil {
		return string(data), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("reading template %s: %w", templateName, err)
	}

	builtin, err := builtinFS.ReadFile(builtinDir + "/" + templateName + paths.DocExt)
	if err != nil {
		return "", fmt.Errorf("%w: %q has no project template and no built-in default", types.ErrTemplateNotFound, templateName)
	}

	if err := r.copyIntoProject(local, builtin); err != nil {
		return "", err
	}
	return string(builtin), nil
}

// copyIntoProject writes the built-in template to the project-local path,
// creating the templates directory on the way.
func (r *Resolver) copyIntoProject(local string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		return fmt.Errorf("creating templates directory: %w", err)
	}
	if err := os.WriteFile(local, content, 0o644); err != nil {
		return fmt.Errorf("copying built-in template: %w", err)
	}
	return nil
}

// BuiltinNames returns the names of the shipped default templates, sorted.
func BuiltinNames() []string {
	entries, err := builtinFS.ReadDir(builtinDir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), paths.DocExt))
	}
	sort.Strings(names)
	return names
}
