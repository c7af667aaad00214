package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/stride/internal/config"
)

// ErrConfigExists is returned by config init when the file is already there.
var ErrConfigExists = config.ErrConfigExists

// NewConfigInitCmd creates the config init command for initializing configuration.
// When a project directory is resolved (without --global), it creates a
// project-local .stride/ directory with config.yaml and .gitignore. Otherwise,
// it creates the global ~/.stride/config.yaml.
func NewConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

When a project directory is set (--project-dir, STRIDE_PROJECT_DIR, or a
.stride directory in an ancestor), creates $PROJECT/.stride/config.yaml with a
.gitignore that keeps the REPL history out of version control.
Use --global to initialize the global configuration instead.`,
		Example: `  # Create project-local configuration
  stride config init --project-dir .

  # Create global configuration
  stride config init --global

  # Create configuration, overwriting existing
  stride config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectDir := config.GetResolvedProjectDir()

			if projectDir != "" && !global {
				return initProjectConfig(cmd, projectDir, force)
			}

			return initGlobalConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "initialize the global configuration even inside a project")

	return cmd
}

// initProjectConfig creates projectDir/config.yaml and its .gitignore.
func initProjectConfig(cmd *cobra.Command, projectDir string, force bool) error {
	res, err := config.InitProject(projectDir, force)
	if err != nil {
		return err
	}

	cmd.Printf("Configuration initialized at %s\n", res.ConfigPath)
	if res.GitignoreCreated {
		cmd.Printf("Created .gitignore to keep local history out of version control\n")
	}
	return nil
}

// initGlobalConfig creates global config at ~/.stride/config.yaml.
func initGlobalConfig(cmd *cobra.Command, force bool) error {
	res, err := config.InitGlobal(force)
	if err != nil {
		return err
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", res.ConfigPath)
	return nil
}
