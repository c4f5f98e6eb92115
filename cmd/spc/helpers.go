// Shared helpers for spc CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrkplt/shared-project-context-sub000/internal/contexts"
	"github.com/mrkplt/shared-project-context-sub000/internal/paths"
	"github.com/mrkplt/shared-project-context-sub000/internal/persistence"
	"github.com/mrkplt/shared-project-context-sub000/internal/search"
	"github.com/mrkplt/shared-project-context-sub000/pkg/types"
)

// newEngine builds a persistence engine rooted at the resolved context
// root, without a search index. Read-only commands use this.
func newEngine() (*persistence.Engine, error) {
	root, err := resolveRoot()
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	return persistence.New(root), nil
}

// newEngineFactory builds a factory without a search index for commands
// that never write.
func newEngineFactory() (*contexts.Factory, error) {
	engine, err := newEngine()
	if err != nil {
		return nil, err
	}
	return contexts.NewFactory(engine, nil), nil
}

// newFactory builds the behavior factory with the search index attached.
// The caller must Close the returned index when it is non-nil. An index
// that fails to open disables search but never blocks the command.
func newFactory() (*contexts.Factory, *search.Index, error) {
	root, err := resolveRoot()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve root: %w", err)
	}

	var opts []persistence.Option
	ix, err := search.Open(paths.NewLayout(root).IndexFile())
	if err != nil {
		slog.Warn("search index unavailable", "error", err)
		ix = nil
	} else {
		opts = append(opts, persistence.WithIndexer(ix))
	}

	engine := persistence.New(root, opts...)
	return contexts.NewFactory(engine, nil), ix, nil
}

// printData renders a successful result: a pretty JSON envelope with
// --json, otherwise one line per data entry.
func printData(cmd *cobra.Command, data ...string) error {
	if flagJSON {
		out, err := json.MarshalIndent(types.SuccessResponse(data...), "", "  ")
		if err != nil {
			return fmt.Errorf("marshal response: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}
	for _, line := range data {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}

// readContent returns update content from --file when given, stdin
// otherwise.
func readContent(cmd *cobra.Command, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read content file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
