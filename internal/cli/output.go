package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/stride/internal/config"
	"github.com/rshade/stride/internal/metric"
	"github.com/rshade/stride/internal/tui"
)

// Output formats.
const (
	outputFormatTable  = config.FormatTable
	outputFormatJSON   = config.FormatJSON
	outputFormatNDJSON = config.FormatNDJSON
)

// tabPadding is the minimum column padding for tabwriter output.
const tabPadding = 2

// noValue is shown in table cells that have nothing to show.
const noValue = "-"

// MeasurementView is the serialised form of a measurement.
type MeasurementView struct {
	Kind   string   `json:"kind"`
	Value  *float64 `json:"value"`
	Unit   string   `json:"unit,omitempty"`
	Text   string   `json:"text"`
	Reason string   `json:"reason,omitempty"`
}

// newMeasurementView builds the view of m with text rounded to precision.
func newMeasurementView(m metric.Measurement, precision int) MeasurementView {
	view := MeasurementView{
		Kind:  m.Kind().String(),
		Value: m.Amount(),
		Unit:  metric.DisplayUnit(m),
		Text:  metric.FormatMeasurement(m, precision),
	}
	if !m.IsValid() {
		view.Reason = m.String()
	}
	return view
}

func newMeasurementViews(ms []metric.Measurement, precision int) []MeasurementView {
	views := make([]MeasurementView, 0, len(ms))
	for _, m := range ms {
		views = append(views, newMeasurementView(m, precision))
	}
	return views
}

// renderOptions carries what every renderer needs from flags and config.
type renderOptions struct {
	format    string
	precision int
	styled    bool
}

// resolveRenderOptions reads --output, --plain and --no-color and falls back
// to the configured default format.
func resolveRenderOptions(cmd *cobra.Command) (renderOptions, error) {
	format, _ := cmd.Flags().GetString("output")
	if format == "" {
		format = config.GetDefaultOutputFormat()
	}
	format = strings.ToLower(format)

	switch format {
	case outputFormatTable, outputFormatJSON, outputFormatNDJSON:
	default:
		return renderOptions{}, fmt.Errorf("unsupported output format %q (want table, json or ndjson)", format)
	}

	plain, _ := cmd.Flags().GetBool("plain")
	noColor, _ := cmd.Flags().GetBool("no-color")

	return renderOptions{
		format:    format,
		precision: config.GetOutputPrecision(),
		styled:    writesToStdout(cmd) && tui.DetectOutputMode(false, noColor, plain) != tui.OutputModePlain,
	}, nil
}

// writesToStdout reports whether command output goes to the process stdout.
func writesToStdout(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && f == os.Stdout
}

// renderMeasurements writes ms in the selected format. title heads styled
// output only.
func renderMeasurements(w io.Writer, opts renderOptions, title string, ms []metric.Measurement) error {
	switch opts.format {
	case outputFormatJSON:
		return renderMeasurementsJSON(w, newMeasurementViews(ms, opts.precision))
	case outputFormatNDJSON:
		return renderMeasurementsNDJSON(w, newMeasurementViews(ms, opts.precision))
	default:
		if opts.styled {
			_, err := fmt.Fprintln(w, tui.RenderMeasurements(title, ms, opts.precision, tui.TerminalWidth()))
			return err
		}
		return renderMeasurementsTable(w, newMeasurementViews(ms, opts.precision))
	}
}

func renderMeasurementsTable(w io.Writer, views []MeasurementView) error {
	if len(views) == 0 {
		_, err := fmt.Fprintln(w, "No measurements")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "KIND\tVALUE\tUNIT\tNOTES")
	for _, v := range views {
		value := noValue
		if v.Value != nil && v.Reason == "" {
			value, _, _ = strings.Cut(v.Text, " ")
		} else if v.Value != nil {
			value = metric.FormatValue(*v.Value)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.Kind, value, orNoValue(v.Unit), orNoValue(v.Reason))
	}
	return tw.Flush()
}

func orNoValue(s string) string {
	if s == "" {
		return noValue
	}
	return s
}

func renderMeasurementsJSON(w io.Writer, views []MeasurementView) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(views); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func renderMeasurementsNDJSON(w io.Writer, views []MeasurementView) error {
	encoder := json.NewEncoder(w)
	for _, v := range views {
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("encoding NDJSON: %w", err)
		}
	}
	return nil
}

// renderStrings writes a list of plain strings, one per line for table
// output or as a JSON array.
func renderStrings(w io.Writer, opts renderOptions, items []string) error {
	switch opts.format {
	case outputFormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if items == nil {
			items = []string{}
		}
		return encoder.Encode(items)
	case outputFormatNDJSON:
		encoder := json.NewEncoder(w)
		for _, item := range items {
			if err := encoder.Encode(item); err != nil {
				return fmt.Errorf("encoding NDJSON: %w", err)
			}
		}
		return nil
	default:
		for _, item := range items {
			if _, err := fmt.Fprintln(w, item); err != nil {
				return err
			}
		}
		return nil
	}
}

// invalidError turns an Invalid result into a command error after it has
// been rendered.
func invalidError(m metric.Measurement) error {
	if inv, ok := m.(metric.Invalid); ok {
		return inv
	}
	return nil
}

// renderJSONValue encodes a single value, indented for json and compact for
// ndjson.
func renderJSONValue(w io.Writer, format string, v any) error {
	encoder := json.NewEncoder(w)
	if format == outputFormatJSON {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
