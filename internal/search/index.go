// Package search maintains a SQLite FTS5 index shadowing the stored
// context documents. The index is advisory: the persistence engine upserts
// on write and prunes on clear with best-effort semantics, and the whole
// database can be rebuilt from the documents at any time. It lives in a
// single file next to the projects directory.
package search

import (
	"crypto/sha256"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mrkplt/shared-project-context-sub000/internal/persistence"
)

// Result is one search hit, ranked by normalized BM25 score.
type Result struct {
	Project     string  `json:"project"`
	ContextType string  `json:"contextType"`
	Name        string  `json:"name"`
	Score       float64 `json:"score"`
	Snippet     string  `json:"snippet"`
}

// Options filter and bound a search.
type Options struct {
	Project     string
	ContextType string
	Limit       int
}

const (
	defaultLimit  = 10
	snippetMaxLen = 700
)

// Index is the FTS5-backed document index. Safe for concurrent use.
type Index struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (or creates) the index database at path and ensures the
// schema exists.
func Open(path string) (*Index, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	ix := &Index{db: db}
	if err := ix.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	slog.Debug("context index opened", "path", path)
	return ix, nil
}

func (ix *Index) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS docs (
			id TEXT PRIMARY KEY,
			project TEXT NOT NULL,
			context_type TEXT NOT NULL,
			name TEXT NOT NULL,
			hash TEXT NOT NULL,
			content TEXT NOT NULL,
			updated_at INTEGER NOT NULL DEFAULT (strftime('%s','now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_docs_project ON docs(project)`,
		`CREATE INDEX IF NOT EXISTS idx_docs_type ON docs(project, context_type)`,
		`CREATE VIRTUAL TABLE IF NOT EXISTS docs_fts USING fts5(
			content,
			id UNINDEXED,
			project UNINDEXED,
			context_type UNINDEXED,
			name UNINDEXED,
			tokenize='porter unicode61'
		)`,
	}

	for _, stmt := range stmts {
		if _, err := ix.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:min(len(stmt), 60)], err)
		}
	}
	return nil
}

// IndexDocument inserts or replaces a document and its FTS entry. Content
// whose hash matches the stored row is skipped, so rewrites of identical
// content cost one lookup.
func (ix *Index) IndexDocument(project, contextType, name, content string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	id := docID(project, contextType, name)
	hash := contentHash(content)

	var stored string
	if err := ix.db.QueryRow("SELECT hash FROM docs WHERE id = ?", id).Scan(&stored); err == nil && stored == hash {
		return nil
	}

	tx, err := ix.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	tx.Exec("DELETE FROM docs_fts WHERE id = ?", id)

	_, err = tx.Exec(`INSERT OR REPLACE INTO docs (id, project, context_type, name, hash, content, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, strftime('%s','now'))`,
		id, project, contextType, name, hash, content)
	if err != nil {
		return fmt.Errorf("upsert doc: %w", err)
	}

	_, err = tx.Exec(`INSERT INTO docs_fts (content, id, project, context_type, name)
		VALUES (?, ?, ?, ?, ?)`,
		content, id, project, contextType, name)
	if err != nil {
		return fmt.Errorf("insert fts: %w", err)
	}

	return tx.Commit()
}

// RemoveDocument deletes a document and its FTS entry. Removing what is
// not indexed is a no-op.
func (ix *Index) RemoveDocument(project, contextType, name string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	id := docID(project, contextType, name)

	tx, err := ix.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	tx.Exec("DELETE FROM docs_fts WHERE id = ?", id)
	tx.Exec("DELETE FROM docs WHERE id = ?", id)

	return tx.Commit()
}

// Search runs an FTS5 match query, best hits first. The BM25 rank is
// normalized to a (0,1] score with 1/(1+abs(rank)).
func (ix *Index) Search(query string, opts Options) ([]Result, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	where := ""
	args := []any{query}
	if opts.Project != "" {
		where += " AND project = ?"
		args = append(args, opts.Project)
	}
	if opts.ContextType != "" {
		where += " AND context_type = ?"
		args = append(args, opts.ContextType)
	}
	args = append(args, limit)

	stmt := fmt.Sprintf(`SELECT project, context_type, name, content,
		1.0 / (1.0 + abs(rank)) as score
		FROM docs_fts
		WHERE docs_fts MATCH ?%s
		ORDER BY rank
		LIMIT ?`, where)

	rows, err := ix.db.Query(stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("fts query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var content string
		if err := rows.Scan(&r.Project, &r.ContextType, &r.Name, &content, &r.Score); err != nil {
			continue
		}
		r.Snippet = truncateSnippet(content, snippetMaxLen)
		results = append(results, r)
	}
	return results, rows.Err()
}

// Rebuild wipes the index and re-indexes every document the engine can
// enumerate. Projects or types that fail to load are skipped with a
// warning so one broken config cannot block the rest.
func (ix *Index) Rebuild(engine *persistence.Engine) error {
	projects, err := engine.ListProjects()
	if err != nil {
		return err
	}

	ix.mu.Lock()
	_, err = ix.db.Exec("DELETE FROM docs_fts")
	if err == nil {
		_, err = ix.db.Exec("DELETE FROM docs")
	}
	ix.mu.Unlock()
	if err != nil {
		return fmt.Errorf("clearing index: %w", err)
	}

	for _, project := range projects {
		cfg, err := engine.Config(project)
		if err != nil {
			slog.Warn("reindex skipping project", "project", project, "error", err)
			continue
		}
		for _, tc := range cfg.ContextTypes {
			docs, err := engine.GetContext(project, tc.Name, nil)
			if err != nil {
				slog.Warn("reindex skipping context type",
					"project", project, "context_type", tc.Name, "error", err)
				continue
			}
			for _, doc := range docs {
				if err := ix.IndexDocument(project, tc.Name, doc.Name, doc.Content); err != nil {
					return fmt.Errorf("indexing %s/%s/%s: %w", project, tc.Name, doc.Name, err)
				}
			}
		}
	}
	return nil
}

// DocumentCount returns the number of indexed documents.
func (ix *Index) DocumentCount() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var count int
	ix.db.QueryRow("SELECT COUNT(*) FROM docs").Scan(&count)
	return count
}

// Close closes the index database.
func (ix *Index) Close() error {
	return ix.db.Close()
}

func docID(project, contextType, name string) string {
	return project + "/" + contextType + "/" + name
}

// contentHash returns a short hash used for change detection.
func contentHash(content string) string {
	h := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x", h[:16])
}

func truncateSnippet(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
