// Names command lists stored document names for a context type.
package main

import (
	"github.com/spf13/cobra"
)

var namesCmd = &cobra.Command{
	Use:   "names <project> <context-type>",
	Short: "List stored document names for a context type",
	Long: `Names lists what a context type holds: collections list their entry
names, single-document and log types report the type name itself.`,
	Args: cobra.ExactArgs(2),
	RunE: runNames,
}

func runNames(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	names, err := engine.ListAll(args[0], args[1])
	if err != nil {
		return err
	}
	return printData(cmd, names...)
}
