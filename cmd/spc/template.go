// Template command prints the markdown template for a context type.
package main

import (
	"github.com/spf13/cobra"
)

var templateCmd = &cobra.Command{
	Use:   "template <project> <context-type>",
	Short: "Print the markdown template for a context type",
	Long: `Template resolves the template for a context type. A project-local
template wins over the built-in of the same name; untemplated types
report that no template is available.`,
	Args: cobra.ExactArgs(2),
	RunE: runTemplate,
}

func runTemplate(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	text, err := engine.Template(args[0], args[1])
	if err != nil {
		return err
	}
	return printData(cmd, text)
}
