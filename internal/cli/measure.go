package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/stride/internal/engine"
	"github.com/rshade/stride/internal/metric"
)

// joinArgs rebuilds free text split by the shell.
func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// NewParseCmd creates the parse command.
func NewParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse TEXT...",
		Short: "Show every measurement a text can mean",
		Long: `Parses free text into measurements. A valid pace is shown alone;
otherwise each distance and duration reading is listed, so "5 m" shows both
5 meters and 5 minutes.`,
		Example: `  stride parse "26.2 miles"
  stride parse 1:30:00 hours
  stride parse "5 m" --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeParse(cmd, joinArgs(args))
		},
	}
}

func executeParse(cmd *cobra.Command, text string) error {
	opts, err := resolveRenderOptions(cmd)
	if err != nil {
		return err
	}

	ms, parseErr := metric.ParseMeasurements(text)
	if parseErr != nil {
		var inv metric.Invalid
		if errors.As(parseErr, &inv) {
			ms = []metric.Measurement{inv}
		}
	}

	logger.Debug().Ctx(cmd.Context()).Str("text", text).Int("readings", len(ms)).Msg("parsed")

	if err = renderMeasurements(cmd.OutOrStdout(), opts, "Parsed "+text, ms); err != nil {
		return err
	}
	return parseErr
}

// NewValueCmd creates the value command.
func NewValueCmd() *cobra.Command {
	var hms bool

	cmd := &cobra.Command{
		Use:   "value TEXT...",
		Short: "Extract the numeric value of a text",
		Long: `Extracts the number from free text. Qualifier words multiply it:
"2 half marathons" is 1 and "quarter" alone is 0.25. With --hms the text is
read as mm:ss or hh:mm:ss and converted to seconds.`,
		Example: `  stride value "2 half marathons"
  stride value --hms 1:02:03`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeValue(cmd, joinArgs(args), hms)
		},
	}

	cmd.Flags().BoolVar(&hms, "hms", false, "read the text as a clock time and return seconds")
	return cmd
}

// valueView is the serialised result of the value command.
type valueView struct {
	Input string   `json:"input"`
	Value *float64 `json:"value"`
}

func executeValue(cmd *cobra.Command, text string, hms bool) error {
	opts, err := resolveRenderOptions(cmd)
	if err != nil {
		return err
	}

	view := valueView{Input: text}
	if hms {
		view.Value = metric.ParseHMS(text)
	} else {
		view.Value = metric.ParseValue(text)
	}

	switch opts.format {
	case outputFormatJSON, outputFormatNDJSON:
		if err = renderJSONValue(cmd.OutOrStdout(), opts.format, view); err != nil {
			return err
		}
	default:
		out := noValue
		if view.Value != nil {
			out = metric.FormatFloat(*view.Value, opts.precision)
		}
		if _, err = fmt.Fprintln(cmd.OutOrStdout(), out); err != nil {
			return err
		}
	}

	if view.Value == nil {
		return fmt.Errorf("no value in %q", text)
	}
	return nil
}

// NewConvertCmd creates the convert command.
func NewConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert TEXT UNIT",
		Short: "Convert a measurement to another unit",
		Long: `Converts a measurement to a unit of the same kind. Paces convert
between distance-first and duration-first forms, so "8:00 min/mile" converts
to "mph".`,
		Example: `  stride convert "10 km" miles
  stride convert "8:00 min/mile" min/km
  stride convert "12 kph" "minute per mile"`,
		Args: cobra.ExactArgs(2), //nolint:mnd // TEXT and UNIT.
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeConvert(cmd, args[0], args[1])
		},
	}
}

func executeConvert(cmd *cobra.Command, text, unit string) error {
	opts, err := resolveRenderOptions(cmd)
	if err != nil {
		return err
	}

	ms, err := metric.ParseMeasurements(text)
	if err != nil {
		return fmt.Errorf("reading %q: %w", text, err)
	}

	var result metric.Measurement
	for _, m := range ms {
		converted := engine.Convert(m, unit)
		if converted.IsValid() {
			result = converted
			break
		}
		if result == nil {
			result = converted
		}
	}

	if err = renderMeasurements(cmd.OutOrStdout(), opts, text+" in "+unit, []metric.Measurement{result}); err != nil {
		return err
	}
	return invalidError(result)
}

// NewAtCmd creates the at command, also available as "for".
func NewAtCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "at LEFT RIGHT",
		Aliases: []string{"for"},
		Short:   "Combine two measurements into the third kind",
		Long: `Combines two measurements of different kinds:

  distance at pace     -> duration
  duration at pace     -> distance
  distance for duration -> pace

Two measurements of the same kind cannot be combined.`,
		Example: `  stride at "10 km" "5:00 min/km"
  stride for "13.1 miles" 1:45:00
  stride at "2 hours" "8 mph"`,
		Args: cobra.ExactArgs(2), //nolint:mnd // LEFT and RIGHT.
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeAt(cmd, args[0], args[1])
		},
	}
}

func executeAt(cmd *cobra.Command, left, right string) error {
	opts, err := resolveRenderOptions(cmd)
	if err != nil {
		return err
	}

	lefts, err := metric.ParseMeasurements(left)
	if err != nil {
		return fmt.Errorf("reading %q: %w", left, err)
	}
	rights, err := metric.ParseMeasurements(right)
	if err != nil {
		return fmt.Errorf("reading %q: %w", right, err)
	}

	result := engine.Resolve(lefts, "", rights)

	logger.Debug().
		Ctx(cmd.Context()).
		Str("left", left).
		Str("right", right).
		Str("result", result.String()).
		Msg("combined")

	if err = renderMeasurements(cmd.OutOrStdout(), opts, left+" "+cmd.CalledAs()+" "+right, []metric.Measurement{result}); err != nil {
		return err
	}
	return invalidError(result)
}

// NewSuggestCmd creates the suggest command.
func NewSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest TEXT...",
		Short: "Show common conversions of a measurement",
		Example: `  stride suggest "5 km"
  stride suggest "7:30 min/mile"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeSuggest(cmd, joinArgs(args))
		},
	}
}

func executeSuggest(cmd *cobra.Command, text string) error {
	opts, err := resolveRenderOptions(cmd)
	if err != nil {
		return err
	}

	ms, err := metric.ParseMeasurements(text)
	if err != nil {
		return fmt.Errorf("reading %q: %w", text, err)
	}

	var suggestions []metric.Measurement
	for _, m := range ms {
		suggestions = append(suggestions, engine.Suggest(cmd.Context(), m)...)
	}
	return renderMeasurements(cmd.OutOrStdout(), opts, "Conversions of "+text, suggestions)
}

// NewComplimentCmd creates the compliment command.
func NewComplimentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compliment TEXT...",
		Short: "Show the kinds a measurement combines with",
		Long: `Lists unit-only templates of the two kinds that combine with the
measurement through "at": a distance combines with a duration or a pace.`,
		Example: `  stride compliment "10 km"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeCompliment(cmd, joinArgs(args))
		},
	}
}

func executeCompliment(cmd *cobra.Command, text string) error {
	opts, err := resolveRenderOptions(cmd)
	if err != nil {
		return err
	}

	m := metric.Parse(text)
	if !m.IsValid() {
		return fmt.Errorf("reading %q: %w", text, invalidError(m))
	}
	return renderMeasurements(cmd.OutOrStdout(), opts, "Combines with", engine.Compliment(m))
}
