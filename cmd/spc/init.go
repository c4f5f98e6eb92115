// Init command creates a new project.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init <project>",
	Short: "Create a project with the default configuration",
	Long: `Init creates the project directory and writes its default
project-config.json: a single freeform collection named "general".
Initializing an existing project fails.

Example:
  spc init my-service`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	if err := engine.InitProject(args[0]); err != nil {
		return err
	}

	if flagJSON {
		return printData(cmd, args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Initialized project", args[0])
	return nil
}
