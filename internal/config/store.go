// Package config loads, creates, and caches per-project context type
// configuration.
//
// Each project carries one project-config.json under its directory. A
// project with no config file gets the default configuration written on
// first access. Successful loads are cached for the life of the Store;
// parse failures are never cached, so a corrected file is picked up on the
// next call without restarting the process.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/mrkplt/shared-project-context-sub000/internal/paths"
	"github.com/mrkplt/shared-project-context-sub000/pkg/types"
)

// Store loads and caches project configurations.
type Store struct {
	layout paths.Layout

	mu    sync.Mutex
	cache map[string]types.ProjectConfig
}

// NewStore creates a Store over the given layout.
func NewStore(layout paths.Layout) *Store {
	return &Store{
		layout: layout,
		cache:  make(map[string]types.ProjectConfig),
	}
}

// Get returns the project's configuration, creating and persisting the
// default configuration when the project has no config file yet. Loads are
// cached per project; external edits to the file are not observed unless a
// prior call failed to parse it.
func (s *Store) Get(project string) (types.ProjectConfig, error) {
	if err := types.ValidateName(project); err != nil {
		return types.ProjectConfig{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cfg, ok := s.cache[project]; ok {
		return cfg, nil
	}

	cfg, err := s.load(project)
	if err != nil {
		return types.ProjectConfig{}, err
	}

	s.cache[project] = cfg
	return cfg, nil
}

// load reads the config file from disk, writing the default configuration
// when no file exists. The caller must hold s.mu.
func (s *Store) load(project string) (types.ProjectConfig, error) {
	path := s.layout.ProjectConfigFile(project)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s.writeDefault(project)
	}
	if err != nil {
		return types.ProjectConfig{}, fmt.Errorf("%w: %v", types.ErrConfigRead, err)
	}

	var cfg types.ProjectConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return types.ProjectConfig{}, fmt.Errorf("%w: %v", types.ErrConfigParse, err)
	}
	if err := validate(cfg); err != nil {
		return types.ProjectConfig{}, fmt.Errorf("%w: %v", types.ErrConfigParse, err)
	}

	return cfg, nil
}

// writeDefault persists the default configuration for a project that has
// none, creating the project directory as needed.
func (s *Store) writeDefault(project string) (types.ProjectConfig, error) {
	cfg := types.DefaultProjectConfig()

	if err := os.MkdirAll(s.layout.ProjectDir(project), 0o755); err != nil {
		return types.ProjectConfig{}, fmt.Errorf("%w: %v", types.ErrConfigRead, err)
	}
	if err := writeConfigFile(s.layout.ProjectConfigFile(project), cfg); err != nil {
		return types.ProjectConfig{}, fmt.Errorf("%w: %v", types.ErrConfigRead, err)
	}

	return cfg, nil
}

// validate extends the shape checks in types.ProjectConfig.Validate with
// the layout rule that a context type may not claim a name the project
// directory reserves for the archive tree, templates, or the config file.
func validate(cfg types.ProjectConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	for _, tc := range cfg.ContextTypes {
		if paths.ReservedTypeName(tc.Name) {
			return fmt.Errorf("context type name %q is reserved", tc.Name)
		}
	}
	return nil
}

// writeConfigFile marshals cfg as pretty-printed JSON and writes it.
func writeConfigFile(path string, cfg types.ProjectConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
