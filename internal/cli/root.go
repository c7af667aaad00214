package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/stride/internal/config"
	"github.com/rshade/stride/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the stride CLI.
// It resolves the project directory, loads configuration, wires up logging
// and tracing, and registers every subcommand.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "stride",
		Short:   "Distance, duration and pace calculator for runners",
		Long:    "stride: parse, convert and combine distances, durations and paces",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			projectFlag, _ := cmd.Flags().GetString("project-dir")
			cwd, err := os.Getwd()
			if err != nil {
				cwd = ""
			}
			config.SetResolvedProjectDir(config.ResolveProjectDir(projectFlag, cwd))
			config.ReloadGlobalConfig()

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().
		StringP("output", "o", "", "output format: table, json or ndjson (default from config)")
	cmd.PersistentFlags().
		String("project-dir", "", "project directory holding a .stride overlay (overrides STRIDE_PROJECT_DIR)")
	cmd.PersistentFlags().Bool("plain", false, "disable styled table output")
	cmd.PersistentFlags().Bool("no-color", false, "disable colors")

	cmd.AddCommand(
		NewParseCmd(), NewValueCmd(), NewConvertCmd(), NewAtCmd(),
		NewSuggestCmd(), NewComplimentCmd(),
		NewOptionsCmd(), NewSearchCmd(),
		NewCalcCmd(), NewBatchCmd(),
		NewReplCmd(), NewInteractiveCmd(),
		newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Read a measurement
  stride parse "26.2 miles"

  # Convert a pace
  stride convert "8:00 min/mile" min/km

  # How long does 10 km take at 5:00 min/km?
  stride at "10 km" "5:00 min/km"

  # One-line expressions
  stride calc "5 kph for 3 hours to mile"

  # Evaluate a file of expressions as JSON
  stride batch runs.txt --output json

  # Start the line editor
  stride repl

  # Set configuration values
  stride config set output.precision 3`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
