package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/stride/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration: the global file at
~/.stride/config.yaml, the project file if any, and environment overrides.

This includes:
- Config version against the supported range
- Output format and precision
- Search result limit and match mode
- Entry options that contradict each other
- Batch size and concurrency
- Logging level and format`,
		Example: `  # Validate current configuration
  stride config validate

  # Validate and show detailed information
  stride config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("✅ Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	if projectDir := config.GetResolvedProjectDir(); projectDir != "" {
		cmd.Printf("  Project directory: %s\n", projectDir)
	}
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Output precision: %d\n", cfg.Output.Precision)
	cmd.Printf("  Search: %s match, up to %d results\n", cfg.Search.Match, cfg.Search.MaxResults)
	cmd.Printf("  Entry: allow values %t, require values %t\n", cfg.Entry.AllowValues, cfg.Entry.RequireValues)
	cmd.Printf("  Batch: size %d, concurrency %d\n", cfg.Batch.Size, cfg.Batch.Concurrency)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	}
}
