// Serve command runs the MCP stdio server.
package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mrkplt/shared-project-context-sub000/internal/mcpserver"
	"github.com/mrkplt/shared-project-context-sub000/pkg/spc"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the context store over MCP stdio",
	Long: `Serve runs the Model Context Protocol server on standard input and
output. Point an MCP client at this command to give agents persistent
project context. All logging goes to stderr.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	factory, ix, err := newFactory()
	if err != nil {
		return err
	}
	if ix != nil {
		defer ix.Close()
	}

	srv := mcpserver.New(factory, ix, spc.Version, slog.Default())
	return srv.Serve()
}
