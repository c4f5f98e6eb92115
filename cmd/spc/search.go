// Search command queries the full-text context index.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrkplt/shared-project-context-sub000/internal/paths"
	"github.com/mrkplt/shared-project-context-sub000/internal/persistence"
	"github.com/mrkplt/shared-project-context-sub000/internal/search"
)

var (
	flagSearchProject string
	flagSearchType    string
	flagSearchLimit   int
	flagSearchRebuild bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search across stored context",
	Long: `Search runs an FTS5 query over every indexed document and prints the
best matches with a short snippet. The index is advisory and can be
rebuilt from the markdown files at any time with --reindex.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&flagSearchProject, "project", "", "only match documents in this project")
	searchCmd.Flags().StringVar(&flagSearchType, "type", "", "only match documents of this context type")
	searchCmd.Flags().IntVar(&flagSearchLimit, "limit", 0, "maximum number of hits (default 10)")
	searchCmd.Flags().BoolVar(&flagSearchRebuild, "reindex", false, "rebuild the index from stored documents before searching")
}

func runSearch(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}
	ix, err := search.Open(paths.NewLayout(root).IndexFile())
	if err != nil {
		return fmt.Errorf("open context index: %w", err)
	}
	defer ix.Close()

	if flagSearchRebuild {
		engine := persistence.New(root, persistence.WithIndexer(ix))
		if err := ix.Rebuild(engine); err != nil {
			return fmt.Errorf("rebuild context index: %w", err)
		}
	}

	hits, err := ix.Search(args[0], search.Options{
		Project:     flagSearchProject,
		ContextType: flagSearchType,
		Limit:       flagSearchLimit,
	})
	if err != nil {
		return err
	}

	if flagJSON {
		out, err := json.MarshalIndent(hits, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal hits: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}
	if len(hits) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matches.")
		return nil
	}
	for i, hit := range hits {
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s/%s/%s (score %.2f)\n%s\n",
			hit.Project, hit.ContextType, hit.Name, hit.Score, hit.Snippet)
	}
	return nil
}
