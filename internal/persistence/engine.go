// Package persistence performs the directory and file operations behind
// every context operation: writing documents, batch reads, archive-based
// clearing, listing, and template resolution. It owns the on-disk layout
// and delegates all naming decisions to the identity resolver, so no
// base-type branching happens here beyond what identity resolution returns.
package persistence

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mrkplt/shared-project-context-sub000/internal/config"
	"github.com/mrkplt/shared-project-context-sub000/internal/identity"
	"github.com/mrkplt/shared-project-context-sub000/internal/paths"
	"github.com/mrkplt/shared-project-context-sub000/internal/template"
	"github.com/mrkplt/shared-project-context-sub000/pkg/types"
)

// Indexer receives best-effort notifications about stored documents so a
// search index can shadow the context tree. Index failures never fail the
// triggering operation; the engine logs them and moves on.
type Indexer interface {
	IndexDocument(project, contextType, name, content string) error
	RemoveDocument(project, contextType, name string) error
}

// Document is one stored context document: its identifier (extension
// stripped) and its content.
type Document struct {
	Name    string
	Content string
}

// Engine reads and writes context documents under a single root directory.
// An Engine is safe for concurrent use; the filesystem is the only shared
// state, and no locks are taken, so concurrent writes to the same identity
// race with last-write-wins semantics.
type Engine struct {
	layout    paths.Layout
	configs   *config.Store
	templates *template.Resolver
	ids       *identity.Resolver
	index     Indexer
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock injects the clock used for log identifiers and archive batch
// names. Tests use a fixed clock for deterministic names.
func WithClock(clock identity.Clock) Option {
	return func(e *Engine) { e.ids = identity.NewResolver(clock) }
}

// WithIndexer attaches a search indexer. A nil indexer disables indexing.
func WithIndexer(ix Indexer) Option {
	return func(e *Engine) { e.index = ix }
}

// WithLogger replaces the default slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New creates an Engine rooted at root.
func New(root string, opts ...Option) *Engine {
	layout := paths.NewLayout(root)
	e := &Engine{
		layout:    layout,
		configs:   config.NewStore(layout),
		templates: template.NewResolver(layout),
		ids:       identity.NewResolver(nil),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Layout exposes the engine's path layout.
func (e *Engine) Layout() paths.Layout { return e.layout }

// Config returns the project's configuration, creating the default when
// the project has none.
func (e *Engine) Config(project string) (types.ProjectConfig, error) {
	return e.configs.Get(project)
}

// typeConfig looks up typeName in the project's configuration.
func (e *Engine) typeConfig(project, typeName string) (types.TypeConfig, error) {
	cfg, err := e.configs.Get(project)
	if err != nil {
		return types.TypeConfig{}, err
	}
	tc, ok := cfg.FindType(typeName)
	if !ok {
		return types.TypeConfig{}, fmt.Errorf("%w: %q", types.ErrUnknownContextType, typeName)
	}
	return tc, nil
}

// WriteContext stores content under the identity resolved for the type:
// document types overwrite their single document, collection entries
// overwrite the named document, and log types always create a new
// timestamped document. The resolved identifier is returned.
func (e *Engine) WriteContext(project, typeName, contextName, content string) (string, error) {
	tc, err := e.typeConfig(project, typeName)
	if err != nil {
		return "", err
	}

	id, err := e.ids.ForWrite(tc.BaseType, tc.Name, contextName)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.layout.ContextTypeDir(project, tc.Name), 0o755); err != nil {
		return "", fmt.Errorf("creating context directory: %w", err)
	}
	if err := os.WriteFile(e.layout.ContextFile(project, tc.Name, id), []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing context: %w", err)
	}

	e.indexWrite(project, tc.Name, id, content)
	return id, nil
}

// GetContext reads documents for the type. With contextNames, one identity
// is resolved per name and all are read concurrently; the call fails as a
// whole when any single read fails, aggregating one error line per failing
// identifier. Without contextNames every stored document is returned
// (newest first for log types, empty slice when none exist) and the type's
// directory is created as a side effect if absent.
func (e *Engine) GetContext(project, typeName string, contextNames []string) ([]Document, error) {
	tc, err := e.typeConfig(project, typeName)
	if err != nil {
		return nil, err
	}

	ids, err := e.ids.ForNames(tc.BaseType, tc.Name, contextNames)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		if err := os.MkdirAll(e.layout.ContextTypeDir(project, tc.Name), 0o755); err != nil {
			return nil, fmt.Errorf("creating context directory: %w", err)
		}
		if ids, err = e.storedIdentifiers(project, tc); err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, nil
		}
	}

	return e.readAll(project, tc.Name, ids)
}

// readAll reads the given identifiers concurrently, preserving request
// order in both results and aggregated errors.
func (e *Engine) readAll(project, typeName string, ids []string) ([]Document, error) {
	docs := make([]Document, len(ids))
	failures := make([]error, len(ids))

	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			data, err := os.ReadFile(e.layout.ContextFile(project, typeName, id))
			switch {
			case errors.Is(err, fs.ErrNotExist):
				failures[i] = fmt.Errorf("%s%s: %w", id, paths.DocExt, types.ErrContextNotFound)
			case err != nil:
				failures[i] = fmt.Errorf("%s%s: %w", id, paths.DocExt, err)
			default:
				docs[i] = Document{Name: id, Content: string(data)}
			}
			return failures[i]
		})
	}
	if err := g.Wait(); err != nil {
		var all []error
		for _, f := range failures {
			if f != nil {
				all = append(all, f)
			}
		}
		return nil, errors.Join(all...)
	}
	return docs, nil
}

// ClearContext moves documents into a fresh archive bucket instead of
// deleting them. The same name-resolution rule as GetContext applies, but
// missing documents are silently skipped: clearing is idempotent and never
// fails merely because a target does not exist. One archive bucket is
// created per call, so repeated clears land in distinct buckets. The moved
// identifiers are returned, alongside any aggregated move failures.
func (e *Engine) ClearContext(project, typeName string, contextNames []string) ([]string, error) {
	tc, err := e.typeConfig(project, typeName)
	if err != nil {
		return nil, err
	}

	ids, err := e.ids.ForNames(tc.BaseType, tc.Name, contextNames)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		if ids, err = e.storedIdentifiers(project, tc); err != nil {
			return nil, err
		}
	}

	archiveDir := e.layout.ArchiveDir(project, tc.Name, e.ids.NewArchiveBatchID())
	archiveDirReady := false

	var moved []string
	var failures []error
	for _, id := range ids {
		src := e.layout.ContextFile(project, tc.Name, id)
		if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if !archiveDirReady {
			if err := os.MkdirAll(archiveDir, 0o755); err != nil {
				return moved, fmt.Errorf("%w: creating archive bucket: %v", types.ErrArchive, err)
			}
			archiveDirReady = true
		}
		if err := os.Rename(src, filepath.Join(archiveDir, id+paths.DocExt)); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			failures = append(failures, fmt.Errorf("%s%s: %w: %v", id, paths.DocExt, types.ErrArchive, err))
			continue
		}
		moved = append(moved, id)
		e.indexRemove(project, tc.Name, id)
	}

	if len(failures) > 0 {
		return moved, errors.Join(failures...)
	}
	return moved, nil
}

// ListAll returns the stored names for a collection type (extension
// stripped, sorted). Document and log types always report the single
// constant [typeName]: log entries are never enumerated individually
// outside of read and clear.
func (e *Engine) ListAll(project, typeName string) ([]string, error) {
	tc, err := e.typeConfig(project, typeName)
	if err != nil {
		return nil, err
	}

	if !tc.BaseType.IsCollection() {
		return []string{tc.Name}, nil
	}

	ids, err := e.storedIdentifiers(project, tc)
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}

// Template resolves the template text for the type, falling back to the
// type's own name when the configuration names no template.
func (e *Engine) Template(project, typeName string) (string, error) {
	tc, err := e.typeConfig(project, typeName)
	if err != nil {
		return "", err
	}

	name := tc.Template
	if name == "" {
		name = tc.Name
	}
	return e.templates.Resolve(project, name)
}

// InitProject creates the project directory and its default configuration.
// A project that already exists is an explicit, retry-safe failure: under
// concurrent calls with the same name at most one succeeds.
func (e *Engine) InitProject(project string) error {
	if err := types.ValidateName(project); err != nil {
		return err
	}
	if err := os.MkdirAll(e.layout.ProjectsDir(), 0o755); err != nil {
		return fmt.Errorf("creating projects directory: %w", err)
	}
	if err := os.Mkdir(e.layout.ProjectDir(project), 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %q", types.ErrProjectExists, project)
		}
		return fmt.Errorf("creating project directory: %w", err)
	}
	if _, err := e.configs.Get(project); err != nil {
		return err
	}

	e.logger.Info("project initialized", "project", project)
	return nil
}

// ListProjects returns the names of all projects, sorted. A root with no
// projects directory yields an empty list, not an error.
func (e *Engine) ListProjects() ([]string, error) {
	entries, err := os.ReadDir(e.layout.ProjectsDir())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	var projects []string
	for _, entry := range entries {
		if entry.IsDir() {
			projects = append(projects, entry.Name())
		}
	}
	sort.Strings(projects)
	return projects, nil
}

// storedIdentifiers lists the identifiers stored for the type, sorted
// descending so log entries come newest first. A missing type directory
// yields an empty list. Log types only match identifiers carrying the
// type's prefix; foreign files in the directory are ignored.
func (e *Engine) storedIdentifiers(project string, tc types.TypeConfig) ([]string, error) {
	entries, err := os.ReadDir(e.layout.ContextTypeDir(project, tc.Name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing context documents: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, paths.DocExt) {
			continue
		}
		id := strings.TrimSuffix(name, paths.DocExt)
		if tc.BaseType.IsLog() && !strings.HasPrefix(id, identity.LogPrefix(tc.Name)) {
			continue
		}
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	return ids, nil
}

func (e *Engine) indexWrite(project, typeName, id, content string) {
	if e.index == nil {
		return
	}
	if err := e.index.IndexDocument(project, typeName, id, content); err != nil {
		e.logger.Warn("context index update failed",
			"project", project, "context_type", typeName, "name", id, "error", err)
	}
}

func (e *Engine) indexRemove(project, typeName, id string) {
	if e.index == nil {
		return
	}
	if err := e.index.RemoveDocument(project, typeName, id); err != nil {
		e.logger.Warn("context index prune failed",
			"project", project, "context_type", typeName, "name", id, "error", err)
	}
}
