// Types command lists a project's configured context types.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrkplt/shared-project-context-sub000/pkg/types"
)

var typesCmd = &cobra.Command{
	Use:   "types <project>",
	Short: "List a project's context types",
	Long: `Types prints each configured context type with its base type, and
marks templated and validated types. With --json the full project
configuration is included in the envelope.`,
	Args: cobra.ExactArgs(1),
	RunE: runTypes,
}

func runTypes(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	cfg, err := engine.Config(args[0])
	if err != nil {
		return err
	}

	if flagJSON {
		out, err := json.MarshalIndent(types.OperationResponse{Success: true, Config: &cfg}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal response: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	for _, tc := range cfg.ContextTypes {
		line := fmt.Sprintf("%s\t%s", tc.Name, tc.BaseType)
		if tc.Template != "" {
			line += "\ttemplate=" + tc.Template
		}
		if tc.Validation {
			line += "\tvalidated"
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
