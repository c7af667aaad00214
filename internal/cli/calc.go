package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/stride/internal/config"
	"github.com/rshade/stride/internal/engine"
	"github.com/rshade/stride/internal/engine/batch"
	"github.com/rshade/stride/internal/metric"
)

// NewCalcCmd creates the calc command.
func NewCalcCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calc EXPRESSION...",
		Short: "Evaluate a one-line expression",
		Long: `Evaluates an expression of the form

  <measurement> [to <unit>] [(at|for) <measurement>]

The two optional clauses may come in either order.`,
		Example: `  stride calc 10 km at 5:00 min/km
  stride calc "5 kph for 3 hours to mile"
  stride calc "marathon to km"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeCalc(cmd, joinArgs(args))
		},
	}
}

// calcView is the serialised result of one expression.
type calcView struct {
	Line       int              `json:"line,omitempty"`
	Input      string           `json:"input"`
	Expression string           `json:"expression,omitempty"`
	Result     *MeasurementView `json:"result,omitempty"`
	Error      string           `json:"error,omitempty"`
}

// newCalcView evaluates text and builds its view. A syntax error leaves
// Result empty; an invalid result keeps both the result and the error.
func newCalcView(ctx context.Context, line int, text string, precision int) calcView {
	res, err := engine.Evaluate(ctx, text)
	return calcViewOf(line, text, res, err, precision)
}

func calcViewOf(line int, text string, res engine.Result, err error, precision int) calcView {
	view := calcView{Line: line, Input: text}
	if res.Expression.From != "" {
		view.Expression = res.Expression.String()
	}
	if res.Value != nil {
		mv := newMeasurementView(res.Value, precision)
		view.Result = &mv
	}
	if err != nil {
		view.Error = err.Error()
	}
	return view
}

func executeCalc(cmd *cobra.Command, text string) error {
	opts, err := resolveRenderOptions(cmd)
	if err != nil {
		return err
	}

	res, evalErr := engine.Evaluate(cmd.Context(), text)
	if res.Value == nil {
		return evalErr
	}

	switch opts.format {
	case outputFormatJSON, outputFormatNDJSON:
		view := calcViewOf(0, text, res, evalErr, opts.precision)
		if err = renderJSONValue(cmd.OutOrStdout(), opts.format, view); err != nil {
			return err
		}
	default:
		if err = renderMeasurements(cmd.OutOrStdout(), opts, res.Expression.String(), []metric.Measurement{res.Value}); err != nil {
			return err
		}
	}
	return evalErr
}

// batchParams holds the batch command flags.
type batchParams struct {
	batchSize   int
	concurrency int
}

// ErrBatchFailures reports that some expressions in a batch did not evaluate.
var ErrBatchFailures = errors.New("some expressions failed")

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	var params batchParams

	cmd := &cobra.Command{
		Use:   "batch [FILE|-]",
		Short: "Evaluate one expression per line",
		Long: `Evaluates every non-empty line of FILE (or standard input for "-" or no
argument) as a calc expression. Lines starting with '#' are comments.
Expressions are evaluated concurrently in batches; results keep the input
order.`,
		Example: `  stride batch splits.txt
  printf '10 km at 5:00 min/km\nmarathon to km\n' | stride batch --output ndjson`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := "-"
			if len(args) == 1 {
				source = args[0]
			}
			return executeBatch(cmd, source, params)
		},
	}

	cmd.Flags().IntVar(&params.batchSize, "batch-size", 0, "expressions per batch (default from config)")
	cmd.Flags().IntVar(&params.concurrency, "concurrency", 0, "batches evaluated at once (default from config)")
	return cmd
}

// batchLine is one expression with its 1-based line number.
type batchLine struct {
	number int
	text   string
}

func readBatchLines(r io.Reader) ([]batchLine, error) {
	var lines []batchLine
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, batchLine{number: n, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading expressions: %w", err)
	}
	return lines, nil
}

func openBatchSource(cmd *cobra.Command, source string) (io.ReadCloser, error) {
	if source == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", source, err)
	}
	return f, nil
}

func executeBatch(cmd *cobra.Command, source string, params batchParams) error {
	ctx := cmd.Context()

	opts, err := resolveRenderOptions(cmd)
	if err != nil {
		return err
	}

	r, err := openBatchSource(cmd, source)
	if err != nil {
		return err
	}
	defer r.Close()

	lines, err := readBatchLines(r)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return renderBatch(cmd.OutOrStdout(), opts, nil)
	}

	batchCfg := config.GetBatchConfig()
	size := batchCfg.Size
	if params.batchSize > 0 {
		size = params.batchSize
	}
	concurrency := batchCfg.Concurrency
	if params.concurrency > 0 {
		concurrency = params.concurrency
	}

	processor, err := batch.NewProcessor[batchLine, calcView](size, concurrency)
	if err != nil {
		return err
	}
	processor.WithProgressCallback(func(p *batch.Progress) {
		snap := p.Snapshot()
		logger.Debug().
			Ctx(ctx).
			Int("processed", snap.ProcessedItems).
			Int("total", snap.TotalItems).
			Float64("percent", snap.PercentComplete).
			Msg("batch progress")
	})

	views, err := processor.Map(ctx, lines, func(ctx context.Context, line batchLine, _ int) (calcView, error) {
		return newCalcView(ctx, line.number, line.text, opts.precision), nil
	})
	if err != nil {
		return fmt.Errorf("evaluating %s: %w", source, err)
	}

	if err = renderBatch(cmd.OutOrStdout(), opts, views); err != nil {
		return err
	}

	failed := 0
	for _, v := range views {
		if v.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrBatchFailures, failed, len(views))
	}
	return nil
}

func renderBatch(w io.Writer, opts renderOptions, views []calcView) error {
	switch opts.format {
	case outputFormatJSON:
		if views == nil {
			views = []calcView{}
		}
		return renderJSONValue(w, opts.format, views)
	case outputFormatNDJSON:
		for _, v := range views {
			if err := renderJSONValue(w, opts.format, v); err != nil {
				return err
			}
		}
		return nil
	default:
		return renderBatchTable(w, views)
	}
}

func renderBatchTable(w io.Writer, views []calcView) error {
	if len(views) == 0 {
		_, err := fmt.Fprintln(w, "No expressions")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "LINE\tEXPRESSION\tRESULT")
	for _, v := range views {
		result := noValue
		switch {
		case v.Error != "":
			result = "error: " + v.Error
		case v.Result != nil:
			result = v.Result.Text
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", v.Line, v.Input, result)
	}
	return tw.Flush()
}
