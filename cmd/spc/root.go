// Root command for the spc CLI.
package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrkplt/shared-project-context-sub000/internal/paths"
	"github.com/mrkplt/shared-project-context-sub000/pkg/spc"
)

// Global flag values.
var (
	flagConfigDir string
	flagRoot      string
	flagJSON      bool
	flagLogLevel  string
)

// Values loaded from config.yaml. Set by PersistentPreRunE so all
// subcommands can use them.
var (
	configRootDir  string
	configLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "spc",
	Short: "spc stores shared project context for coding agents",
	Long: `spc persists project context as markdown documents grouped into
configurable context types: single documents, named collections, and
append-only logs. Clearing archives instead of deleting, templated types
validate their structure, and everything is reachable both from this CLI
and over MCP stdio (spc serve).`,
	Version: spc.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Version needs no config and must not write a default file.
		if cmd.Name() == "version" {
			return nil
		}

		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configRootDir = cfg.GetString(cfgKeyRoot)
		configLogLevel = cfg.GetString(cfgKeyLogLevel)
		setupLogging()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "", "context root directory (default: platform data dir)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(namesCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(searchCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > SPC_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveRoot returns the context root following the precedence:
// --root flag > config.yaml root > SPC_ROOT env > platform default.
func resolveRoot() (string, error) {
	return paths.ResolveRootDir(flagRoot, configRootDir)
}

// setupLogging points slog at stderr. Stdout stays clean for command
// output and, under serve, for the MCP transport.
func setupLogging() {
	level := flagLogLevel
	if level == "" {
		level = configLogLevel
	}

	var lv slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lv = slog.LevelDebug
	case "warn":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv})))
}
