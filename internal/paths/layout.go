package paths

import "path/filepath"

// Names fixed by the on-disk convention.
const (
	projectsDirName   = "projects"
	archiveDirName    = "archive"
	templatesDirName  = "templates"
	projectConfigName = "project-config.json"
	indexFileName     = "context-index.db"

	// DocExt is the extension carried by every stored context document
	// and template. Identifiers exclude it.
	DocExt = ".md"
)

// Layout computes on-disk locations inside a context root. The convention:
//
//	{root}/projects/{project}/project-config.json
//	{root}/projects/{project}/{contextType}/{identifier}.md
//	{root}/projects/{project}/archive/{contextType}/{batch}/{identifier}.md
//	{root}/projects/{project}/templates/{templateName}.md
//	{root}/context-index.db
//
// Layout is pure path arithmetic; it never touches the filesystem.
type Layout struct {
	root string
}

// NewLayout creates a Layout rooted at root.
func NewLayout(root string) Layout {
	return Layout{root: root}
}

// Root returns the context root directory.
func (l Layout) Root() string { return l.root }

// ProjectsDir returns the directory holding all project directories.
func (l Layout) ProjectsDir() string {
	return filepath.Join(l.root, projectsDirName)
}

// ProjectDir returns a project's top-level directory.
func (l Layout) ProjectDir(project string) string {
	return filepath.Join(l.root, projectsDirName, project)
}

// ProjectConfigFile returns the path of a project's configuration file.
func (l Layout) ProjectConfigFile(project string) string {
	return filepath.Join(l.ProjectDir(project), projectConfigName)
}

// ContextTypeDir returns the directory holding a context type's documents.
func (l Layout) ContextTypeDir(project, contextType string) string {
	return filepath.Join(l.ProjectDir(project), contextType)
}

// ContextFile returns the path of one stored document.
func (l Layout) ContextFile(project, contextType, identifier string) string {
	return filepath.Join(l.ContextTypeDir(project, contextType), identifier+DocExt)
}

// ArchiveDir returns the archive bucket for one clear call.
func (l Layout) ArchiveDir(project, contextType, batchID string) string {
	return filepath.Join(l.ProjectDir(project), archiveDirName, contextType, batchID)
}

// TemplatesDir returns the directory holding a project's template copies.
func (l Layout) TemplatesDir(project string) string {
	return filepath.Join(l.ProjectDir(project), templatesDirName)
}

// TemplateFile returns the path of a project-local template.
func (l Layout) TemplateFile(project, templateName string) string {
	return filepath.Join(l.TemplatesDir(project), templateName+DocExt)
}

// IndexFile returns the path of the full-text search index database. The
// index lives beside the projects tree, not inside it: it is derived data,
// rebuildable from the stored documents.
func (l Layout) IndexFile() string {
	return filepath.Join(l.root, indexFileName)
}

// ReservedTypeName reports whether name collides with a directory or file
// the layout claims inside every project directory. Context types with
// these names could shadow the archive tree, the template store, or the
// project configuration file.
func ReservedTypeName(name string) bool {
	switch name {
	case archiveDirName, templatesDirName, projectConfigName:
		return true
	}
	return false
}
