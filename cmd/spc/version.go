// Version command for the spc CLI.
package main

import (
	"fmt"

	"github.com/mrkplt/shared-project-context-sub000/pkg/spc"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the spc version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("spc", spc.Version)
	},
}
