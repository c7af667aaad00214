package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/stride/internal/config"
)

// NewConfigGetCmd creates the config get command.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Show a configuration value",
		Long: `Shows the effective value of a dotted key after the project file and
environment overrides are applied. A section name such as "search" shows the
whole section.`,
		Example: `  stride config get output.precision
  stride config get search`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return config.Keys(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeConfigGet(cmd, args[0])
		},
	}
}

func executeConfigGet(cmd *cobra.Command, key string) error {
	opts, err := resolveRenderOptions(cmd)
	if err != nil {
		return err
	}

	value, err := config.GetGlobalConfig().Get(key)
	if err != nil {
		return err
	}

	switch opts.format {
	case outputFormatJSON, outputFormatNDJSON:
		return renderJSONValue(cmd.OutOrStdout(), opts.format, value)
	default:
		return writeConfigValue(cmd, value)
	}
}

// writeConfigValue prints scalars bare and sections as YAML.
func writeConfigValue(cmd *cobra.Command, value interface{}) error {
	switch v := value.(type) {
	case string, int, bool:
		_, err := fmt.Fprintln(cmd.OutOrStdout(), v)
		return err
	default:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshalling value: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
}
