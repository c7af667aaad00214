package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/stride/internal/config"
)

// NewConfigSetCmd creates the config set command.
func NewConfigSetCmd() *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: `Sets one dotted key and saves the file. Inside a project the project
file is written unless --global is given. The result must validate before it
is saved. Run "stride config list" to see every key.`,
		Example: `  stride config set output.precision 3
  stride config set search.match substring
  stride config set output.default_format json --global`,
		Args: cobra.ExactArgs(2), //nolint:mnd // KEY and VALUE.
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return config.Keys(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeConfigSet(cmd, args[0], args[1], global)
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "write the global configuration even inside a project")
	return cmd
}

// loadTargetConfig returns the configuration stored in the file config
// commands write: the project file when a project is resolved and global is
// false, the global file otherwise. Environment overrides are not applied so
// they are never persisted.
func loadTargetConfig(global bool) (*config.Config, error) {
	var path string
	if projectDir := config.GetResolvedProjectDir(); projectDir != "" && !global {
		path = filepath.Join(projectDir, "config.yaml")
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.yaml")
	}

	cfg := config.Default()
	cfg.SetConfigPath(path)
	if err := cfg.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return cfg, nil
}

func executeConfigSet(cmd *cobra.Command, key, value string, global bool) error {
	cfg, err := loadTargetConfig(global)
	if err != nil {
		return err
	}

	if err = cfg.Set(key, value); err != nil {
		return err
	}
	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("not saved: %w", err)
	}
	if err = cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	logger.Debug().Ctx(cmd.Context()).Str("key", key).Str("path", cfg.ConfigPath()).Msg("config value set")
	cmd.Printf("Set %s = %s in %s\n", key, value, cfg.ConfigPath())
	return nil
}
