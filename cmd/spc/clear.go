// Clear command archives stored context.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear <project> <context-type> [name]",
	Short: "Archive stored context",
	Long: `Clear moves documents into the project's archive directory instead
of deleting them. Collections require a name; logs archive every entry
unless one is named. Clearing what does not exist succeeds quietly.

Examples:
  spc clear my-service worklog
  spc clear my-service general auth-notes`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runClear,
}

func runClear(cmd *cobra.Command, args []string) error {
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

	name := ""
	if len(args) == 3 {
		name = args[2]
	}
	archived, err := b.Reset(name)
	if err != nil {
		return err
	}

	if flagJSON {
		return printData(cmd, archived...)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Archived %d document(s)\n", len(archived))
	for _, id := range archived {
		fmt.Fprintln(cmd.OutOrStdout(), " ", id)
	}
	return nil
}
