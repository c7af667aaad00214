// Package repl is the interactive line editor for stride expressions.
//
// Each line is evaluated as a calc expression. Tab completes the unit of the
// clause being typed from the unit catalog, history persists between runs,
// and lines starting with ':' are session commands.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/rshade/stride/internal/autocomplete"
	"github.com/rshade/stride/internal/engine"
	"github.com/rshade/stride/internal/logging"
	"github.com/rshade/stride/internal/metric"
	"github.com/rshade/stride/internal/tui"
)

// Prompt is shown before every line.
const Prompt = "stride> "

const maxPrecision = 10

//nolint:gochecknoglobals // Compiled once.
var clauseKeyword = regexp.MustCompile(`(?i)\b(?:to|at|for)\s+`)

// ErrQuit is returned by Handle when the session should end.
var ErrQuit = errors.New("quit")

// LineReader reads edited lines. *liner.State implements it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// Config configures a Session.
type Config struct {
	// HistoryFile persists history between runs. Empty disables it.
	HistoryFile string
	Precision   int
	Search      autocomplete.SearchOptions
	// Styled renders results with lipgloss.
	Styled  bool
	Version string
}

// Session holds the state of one REPL run.
type Session struct {
	out     io.Writer
	cfg     Config
	options []string
	last    metric.Measurement
}

// NewSession creates a session writing to out.
func NewSession(out io.Writer, cfg Config) *Session {
	return &Session{
		out:     out,
		cfg:     cfg,
		options: autocomplete.UnitOptions(),
	}
}

// Last returns the most recent valid result, or nil.
func (s *Session) Last() metric.Measurement {
	return s.last
}

// Precision returns the number of decimals results are shown with.
func (s *Session) Precision() int {
	return s.cfg.Precision
}

// Complete returns completions for line: the unit of the clause being
// typed is matched against the catalog and the rest of the line is kept.
func (s *Session) Complete(line string) []string {
	head, tail := splitClause(line)
	if strings.TrimSpace(tail) == "" || strings.HasPrefix(strings.TrimSpace(line), ":") {
		return nil
	}

	result := autocomplete.SearchWith(tail, s.options, s.cfg.Search)
	completions := make([]string, 0, len(result.Results))
	for _, r := range result.Results {
		completions = append(completions, head+r)
	}
	return completions
}

// splitClause separates the last clause of an expression from everything
// before it.
func splitClause(line string) (string, string) {
	matches := clauseKeyword.FindAllStringIndex(line, -1)
	if len(matches) == 0 {
		return "", line
	}
	end := matches[len(matches)-1][1]
	return line[:end], line[end:]
}

// Handle evaluates one line. It returns ErrQuit for exit and quit.
func (s *Session) Handle(ctx context.Context, line string) error {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return nil
	case trimmed == "exit" || trimmed == "quit":
		return ErrQuit
	case strings.HasPrefix(trimmed, ":"):
		s.handleCommand(ctx, trimmed)
		return nil
	}

	res, err := engine.Evaluate(ctx, trimmed)

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "repl").
		Str("input", trimmed).
		AnErr("error", err).
		Msg("line evaluated")

	if res.Value == nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		s.printHint(res)
		return nil
	}
	if !res.Value.IsValid() {
		fmt.Fprintf(s.out, "error: %s\n", res.Value)
		return nil
	}

	s.last = res.Value
	fmt.Fprintln(s.out, s.render(res.Value))
	return nil
}

// printHint suggests a catalog unit for an unknown unit in the from clause.
func (s *Session) printHint(res engine.Result) {
	if len(res.From) > 0 || res.Expression.From == "" {
		return
	}
	unit := strings.TrimSpace(autocomplete.UnitText(res.Expression.From))
	if guess := autocomplete.DidYouMean(unit, s.options); guess != "" {
		fmt.Fprintf(s.out, "  did you mean %q?\n", guess)
	}
}

func (s *Session) render(m metric.Measurement) string {
	if s.cfg.Styled {
		return tui.RenderMeasurementLine(m, s.cfg.Precision)
	}
	return metric.FormatMeasurement(m, s.cfg.Precision)
}

func (s *Session) renderAll(ms []metric.Measurement) {
	if len(ms) == 0 {
		fmt.Fprintln(s.out, "(none)")
		return
	}
	for _, m := range ms {
		fmt.Fprintln(s.out, "  "+s.render(m))
	}
}

func (s *Session) handleCommand(ctx context.Context, line string) {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	switch name {
	case ":help", ":h", ":?":
		s.printHelp()
	case ":suggest", ":s":
		if s.last == nil {
			fmt.Fprintln(s.out, "no result yet")
			return
		}
		s.renderAll(engine.Suggest(ctx, s.last))
	case ":compliment", ":c":
		if s.last == nil {
			fmt.Fprintln(s.out, "no result yet")
			return
		}
		s.renderAll(engine.Compliment(s.last))
	case ":options", ":o":
		s.printOptions(args)
	case ":precision", ":p":
		s.setPrecision(args)
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type :help for commands)\n", name)
	}
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.out, "Expressions:")
	fmt.Fprintln(s.out, "  <measurement> [to <unit>] [(at|for) <measurement>]")
	fmt.Fprintln(s.out, "  e.g. 10 km at 5:00 min/km, marathon to miles, 5 kph for 3 hours to mile")
	fmt.Fprintln(s.out, "")
	fmt.Fprintln(s.out, "Commands:")
	fmt.Fprintln(s.out, "  :help, :h        Show this help")
	fmt.Fprintln(s.out, "  :suggest, :s     Common conversions of the last result")
	fmt.Fprintln(s.out, "  :compliment, :c  Kinds the last result combines with")
	fmt.Fprintln(s.out, "  :options KIND    Unit names for distance, duration or pace")
	fmt.Fprintln(s.out, "  :precision N     Show N decimals")
	fmt.Fprintln(s.out, "  exit, quit       Leave")
}

func (s *Session) printOptions(args []string) {
	var restrict []metric.Measurement
	for _, arg := range args {
		kind, ok := metric.ParseKind(strings.ToLower(arg))
		if !ok {
			fmt.Fprintf(s.out, "unknown kind %q\n", arg)
			return
		}
		switch kind {
		case metric.KindDistance:
			restrict = append(restrict, metric.NewDistance(nil, metric.Meter))
		case metric.KindDuration:
			restrict = append(restrict, metric.NewDuration(nil, metric.Minute))
		case metric.KindPace:
			restrict = append(restrict, metric.Parse("min/km"))
		case metric.KindInvalid:
		}
	}
	fmt.Fprintln(s.out, strings.Join(autocomplete.UnitOptions(restrict...), ", "))
}

func (s *Session) setPrecision(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(s.out, "precision is %d\n", s.cfg.Precision)
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 || n > maxPrecision {
		fmt.Fprintf(s.out, "precision must be a number from 0 to %d\n", maxPrecision)
		return
	}
	s.cfg.Precision = n
	fmt.Fprintf(s.out, "precision set to %d\n", n)
}

// Loop reads and handles lines until EOF, exit or quit. Ctrl+C clears the
// current line.
func (s *Session) Loop(ctx context.Context, r LineReader) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		input, err := r.Prompt(Prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(s.out, "^C")
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out, "\nGoodbye!")
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		if strings.TrimSpace(input) != "" {
			r.AppendHistory(input)
		}
		if err = s.Handle(ctx, input); errors.Is(err, ErrQuit) {
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		}
	}
}

// Start runs a session on the terminal with line editing, tab completion
// and persistent history.
func Start(ctx context.Context, out io.Writer, cfg Config) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)

	session := NewSession(out, cfg)
	line.SetCompleter(session.Complete)

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			_, _ = line.ReadHistory(f)
			_ = f.Close()
		}
		defer saveHistory(ctx, line, cfg.HistoryFile)
	}

	fmt.Fprintf(out, "stride %s\n", cfg.Version)
	fmt.Fprintln(out, "Type 'exit' or Ctrl+D to quit, ':help' for commands")
	fmt.Fprintln(out, "Use Tab for completion, ↑↓ for history")
	fmt.Fprintln(out)

	return session.Loop(ctx, line)
}

func saveHistory(ctx context.Context, line *liner.State, path string) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		logging.FromContext(ctx).Warn().Ctx(ctx).Err(err).Str("path", path).Msg("could not save history")
		return
	}
	defer f.Close()

	if _, err = line.WriteHistory(f); err != nil {
		logging.FromContext(ctx).Warn().Ctx(ctx).Err(err).Str("path", path).Msg("could not save history")
	}
}
