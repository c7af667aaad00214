package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/stride/internal/config"
)

// NewConfigListCmd creates the config list command.
func NewConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every configuration key with its effective value",
		Example: `  stride config list
  stride config list --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeConfigList(cmd)
		},
	}
}

func executeConfigList(cmd *cobra.Command) error {
	opts, err := resolveRenderOptions(cmd)
	if err != nil {
		return err
	}

	values := config.GetGlobalConfig().List()

	switch opts.format {
	case outputFormatJSON, outputFormatNDJSON:
		return renderJSONValue(cmd.OutOrStdout(), opts.format, values)
	default:
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
		fmt.Fprintln(tw, "KEY\tVALUE")
		for _, key := range config.Keys() {
			value := fmt.Sprint(values[key])
			if value == "" {
				value = noValue
			}
			fmt.Fprintf(tw, "%s\t%s\n", key, value)
		}
		return tw.Flush()
	}
}
