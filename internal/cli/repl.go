package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/stride/internal/autocomplete"
	"github.com/rshade/stride/internal/config"
	"github.com/rshade/stride/internal/repl"
	"github.com/rshade/stride/internal/tui"
	"github.com/rshade/stride/pkg/version"
)

// NewReplCmd creates the repl command.
func NewReplCmd() *cobra.Command {
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive expression shell",
		Long: `Starts a line editor that evaluates one calc expression per line.
Tab completes the unit being typed, history is kept in the configuration
directory, and ':help' lists the session commands.`,
		Example: `  stride repl
  stride repl --no-history`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeRepl(cmd, noHistory)
		},
	}

	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not read or write the history file")
	return cmd
}

func executeRepl(cmd *cobra.Command, noHistory bool) error {
	opts, err := resolveRenderOptions(cmd)
	if err != nil {
		return err
	}

	searchCfg := config.GetSearchConfig()
	cfg := repl.Config{
		Precision: opts.precision,
		Search: autocomplete.SearchOptions{
			Mode:  autocomplete.ParseMatchMode(searchCfg.Match),
			Limit: searchCfg.MaxResults,
		},
		Styled:  opts.styled && tui.IsInputTTY(),
		Version: version.GetVersion(),
	}

	if !noHistory {
		if err = config.EnsureConfigDir(); err != nil {
			logger.Warn().Ctx(cmd.Context()).Err(err).Msg("history disabled: no config directory")
		} else if cfg.HistoryFile, err = config.GetHistoryFile(); err != nil {
			logger.Warn().Ctx(cmd.Context()).Err(err).Msg("history disabled")
			cfg.HistoryFile = ""
		}
	}

	logger.Debug().Ctx(cmd.Context()).Str("history", cfg.HistoryFile).Msg("starting repl")
	return repl.Start(cmd.Context(), cmd.OutOrStdout(), cfg)
}
