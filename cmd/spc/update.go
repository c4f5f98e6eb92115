// Update command writes context content.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var flagUpdateFile string

var updateCmd = &cobra.Command{
	Use:   "update <project> <context-type> [name]",
	Short: "Write context content from a file or stdin",
	Long: `Update stores content under a context type: single documents are
replaced, collection entries are written under the given name, and logs
get a new timestamped entry. Validated types are checked against their
template first; invalid content is rejected and nothing is written.

Examples:
  spc update my-service mental-model -f model.md
  cat notes.md | spc update my-service general auth-notes`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVarP(&flagUpdateFile, "file", "f", "", "read content from file instead of stdin")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	content, err := readContent(cmd, flagUpdateFile)
	if err != nil {
		return err
	}

	factory, ix, err := newFactory()
	if err != nil {
		return err
	}
	if ix != nil {
		defer ix.Close()
	}

	b, err := factory.For(args[0], args[1])
	if err != nil {
		return err
	}

	result, err := b.Validate(content)
	if err != nil {
		return err
	}
	if !result.IsValid {
		return fmt.Errorf("validation failed:\n%s", strings.Join(result.Errors, "\n"))
	}

	name := ""
	if len(args) == 3 {
		name = args[2]
	}
	id, err := b.Update(name, content)
	if err != nil {
		return err
	}

	if flagJSON {
		return printData(cmd, id)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Updated", id)
	return nil
}
