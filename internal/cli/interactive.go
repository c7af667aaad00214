package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/rshade/stride/internal/autocomplete"
	"github.com/rshade/stride/internal/config"
	"github.com/rshade/stride/internal/tui"
)

// ErrNotTerminal is returned by interactive commands run without a terminal.
var ErrNotTerminal = errors.New("interactive mode needs a terminal on stdin and stdout")

// NewInteractiveCmd creates the interactive command.
func NewInteractiveCmd() *cobra.Command {
	var kinds []string

	cmd := &cobra.Command{
		Use:     "interactive [TEXT...]",
		Aliases: []string{"i"},
		Short:   "Type a measurement with live unit completion",
		Long: `Opens a terminal UI with a text field and a dropdown of matching units.
Tab completes the highlighted unit, Enter accepts a text that parses and Esc
quits. Once the text parses, its quick conversions and the kinds it combines
with are shown. The accepted measurement is printed on exit.`,
		Example: `  stride interactive
  stride interactive "8:00 min/" --kind pace`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeInteractive(cmd, joinArgs(args), kinds)
		},
	}

	cmd.Flags().StringSliceVar(&kinds, "kind", nil, "restrict to a kind: distance, duration or pace (repeatable)")
	return cmd
}

func executeInteractive(cmd *cobra.Command, initial string, kinds []string) error {
	if !tui.IsInputTTY() || !tui.IsTTY() {
		return ErrNotTerminal
	}

	opts, err := resolveRenderOptions(cmd)
	if err != nil {
		return err
	}
	restrict, err := kindTemplates(kinds)
	if err != nil {
		return err
	}

	searchCfg := config.GetSearchConfig()
	entryCfg := config.GetEntryConfig()

	var options []string
	if len(restrict) > 0 {
		options = autocomplete.UnitOptions(restrict...)
	}

	accepted, err := tui.RunEntry(cmd.Context(), tui.EntryConfig{
		Options: options,
		Search: autocomplete.SearchOptions{
			Mode:  autocomplete.ParseMatchMode(searchCfg.Match),
			Limit: searchCfg.MaxResults,
		},
		Entry: autocomplete.EntryOptions{
			AllowValues:   entryCfg.AllowValues,
			RequireValues: entryCfg.RequireValues,
		},
		Precision: opts.precision,
		Initial:   initial,
	})
	if err != nil {
		return err
	}
	if accepted == nil {
		logger.Debug().Ctx(cmd.Context()).Msg("entry cancelled")
		return nil
	}

	return renderMeasurements(cmd.OutOrStdout(), opts, "Accepted", accepted)
}
