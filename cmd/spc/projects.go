// Projects command lists all projects.
package main

import (
	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List all projects",
	Args:  cobra.NoArgs,
	RunE:  runProjects,
}

func runProjects(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	projects, err := engine.ListProjects()
	if err != nil {
		return err
	}
	return printData(cmd, projects...)
}
