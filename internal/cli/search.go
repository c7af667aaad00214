package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/stride/internal/autocomplete"
	"github.com/rshade/stride/internal/config"
	"github.com/rshade/stride/internal/metric"
)

// kindTemplates turns --kind names into unit-only measurements restricting
// the option list.
func kindTemplates(names []string) ([]metric.Measurement, error) {
	templates := make([]metric.Measurement, 0, len(names))
	for _, name := range names {
		kind, ok := metric.ParseKind(strings.ToLower(strings.TrimSpace(name)))
		if !ok {
			return nil, fmt.Errorf("unknown kind %q (want distance, duration or pace)", name)
		}
		templates = append(templates, kindTemplate(kind))
	}
	return templates, nil
}

func kindTemplate(kind metric.Kind) metric.Measurement {
	switch kind {
	case metric.KindDistance:
		return metric.NewDistance(nil, metric.Meter)
	case metric.KindDuration:
		return metric.NewDuration(nil, metric.Minute)
	case metric.KindPace:
		return metric.NewPace(
			metric.NewDuration(nil, metric.Minute),
			metric.SeparatorSlash,
			metric.NewDistance(nil, metric.Kilometer),
		)
	case metric.KindInvalid:
		return metric.Invalid{Reason: "no kind"}
	default:
		return metric.Invalid{Reason: "no kind"}
	}
}

// NewOptionsCmd creates the options command.
func NewOptionsCmd() *cobra.Command {
	var (
		kinds   []string
		forText string
	)

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List the unit names the matcher offers",
		Long: `Lists every unit name, singular and plural, for the requested kinds.
Without --kind every kind is listed. With --for only the names agreeing in
number with that measurement are listed.`,
		Example: `  stride options --kind distance
  stride options --kind duration --kind pace
  stride options --for "1 mile"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeOptions(cmd, kinds, forText)
		},
	}

	cmd.Flags().StringSliceVar(&kinds, "kind", nil, "restrict to a kind: distance, duration or pace (repeatable)")
	cmd.Flags().StringVar(&forText, "for", "", "list names agreeing in number with this measurement")
	cmd.MarkFlagsMutuallyExclusive("kind", "for")
	return cmd
}

func executeOptions(cmd *cobra.Command, kinds []string, forText string) error {
	opts, err := resolveRenderOptions(cmd)
	if err != nil {
		return err
	}

	var options []string
	if forText != "" {
		options = autocomplete.OptionsFor(metric.Parse(forText))
	} else {
		restrict, kindErr := kindTemplates(kinds)
		if kindErr != nil {
			return kindErr
		}
		options = autocomplete.UnitOptions(restrict...)
	}
	return renderStrings(cmd.OutOrStdout(), opts, options)
}

// searchParams holds the search command flags.
type searchParams struct {
	kinds []string
	match string
	limit int
}

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	var params searchParams

	cmd := &cobra.Command{
		Use:   "search TEXT...",
		Short: "Complete a partially typed measurement",
		Long: `Matches the unit part of the text against the unit catalog and prints
each match with the value part re-attached. When the text is already one of
the matches and parses, the parsed measurements are shown as selected.`,
		Example: `  stride search "5 mi"
  stride search "8:00 min/" --kind pace
  stride search "ile" --match substring --limit 5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeSearch(cmd, strings.Join(args, " "), params)
		},
	}

	cmd.Flags().StringSliceVar(&params.kinds, "kind", nil, "restrict to a kind: distance, duration or pace (repeatable)")
	cmd.Flags().StringVar(&params.match, "match", "", "prefix or substring (default from config)")
	cmd.Flags().IntVar(&params.limit, "limit", 0, "maximum results, at most 50 (default from config)")
	return cmd
}

// searchView is the serialised search result.
type searchView struct {
	Query      string            `json:"query"`
	Results    []string          `json:"results"`
	Selected   []MeasurementView `json:"selected,omitempty"`
	DidYouMean string            `json:"did_you_mean,omitempty"`
}

func executeSearch(cmd *cobra.Command, text string, params searchParams) error {
	opts, err := resolveRenderOptions(cmd)
	if err != nil {
		return err
	}

	restrict, err := kindTemplates(params.kinds)
	if err != nil {
		return err
	}

	searchCfg := config.GetSearchConfig()
	match := searchCfg.Match
	if params.match != "" {
		match = params.match
	}
	limit := searchCfg.MaxResults
	if params.limit > 0 {
		limit = params.limit
	}

	options := autocomplete.UnitOptions(restrict...)
	result := autocomplete.SearchWith(text, options, autocomplete.SearchOptions{
		Mode:  autocomplete.ParseMatchMode(match),
		Limit: limit,
	})

	view := searchView{
		Query:    text,
		Results:  result.Results,
		Selected: newMeasurementViews(result.Selected, opts.precision),
	}
	if view.Results == nil {
		view.Results = []string{}
	}
	if len(result.Results) == 0 {
		view.DidYouMean = autocomplete.DidYouMean(autocomplete.UnitText(text), options)
	}

	logger.Debug().
		Ctx(cmd.Context()).
		Str("query", text).
		Str("match", match).
		Int("results", len(result.Results)).
		Msg("search")

	switch opts.format {
	case outputFormatJSON, outputFormatNDJSON:
		return renderJSONValue(cmd.OutOrStdout(), opts.format, view)
	default:
		return renderSearchTable(cmd.OutOrStdout(), opts, view, result.Selected)
	}
}

func renderSearchTable(w io.Writer, opts renderOptions, view searchView, selected []metric.Measurement) error {
	if len(view.Results) == 0 {
		fmt.Fprintf(w, "No units match %q\n", view.Query)
		if view.DidYouMean != "" {
			fmt.Fprintf(w, "Did you mean %q?\n", view.DidYouMean)
		}
		return nil
	}

	if err := renderStrings(w, opts, view.Results); err != nil {
		return err
	}
	if len(selected) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	return renderMeasurements(w, opts, "Selected", selected)
}
