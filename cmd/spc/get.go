// Get command reads stored context.
package main

import (
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <project> <context-type> [name]",
	Short: "Read stored context",
	Long: `Get prints the stored content for a context type. Single-document
types print their document, collections print the named document, and
logs print every entry newest first (or a single entry when a name is
given).

Examples:
  spc get my-service mental-model
  spc get my-service general auth-notes
  spc get my-service worklog`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	factory, err := newEngineFactory()
	if err != nil {
		return err
	}

	name := ""
	if len(args) == 3 {
		name = args[2]
	}

	b, err := factory.For(args[0], args[1])
	if err != nil {
		return err
	}
	content, err := b.Read(name)
	if err != nil {
		return err
	}
	return printData(cmd, content)
}
