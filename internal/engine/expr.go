package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rshade/stride/internal/logging"
	"github.com/rshade/stride/internal/metric"
)

// Expression keywords.
const (
	KeywordTo  = "to"
	KeywordAt  = "at"
	KeywordFor = "for"
)

// Expression parsing errors.
var (
	ErrEmptyExpression = errors.New("expression is empty")
	ErrMissingClause   = errors.New("keyword is missing its measurement")
	ErrDuplicateClause = errors.New("keyword used more than once")
)

// Expression is one line of the form
//
//	<from> [to <unit>] [(at|for) <measurement>]
//
// with the two optional clauses in either order, for example
// "10 km at 5:00 min/km" or "5 kph for 3 hours to mile".
type Expression struct {
	From   string `json:"from"`
	To     string `json:"to,omitempty"`
	With   string `json:"with,omitempty"`
	Joiner string `json:"joiner,omitempty"`
}

// String renders the expression in canonical clause order.
func (e Expression) String() string {
	var sb strings.Builder
	sb.WriteString(e.From)
	if e.To != "" {
		sb.WriteString(" " + KeywordTo + " " + e.To)
	}
	if e.With != "" {
		joiner := e.Joiner
		if joiner == "" {
			joiner = KeywordAt
		}
		sb.WriteString(" " + joiner + " " + e.With)
	}
	return sb.String()
}

// ParseExpression splits text into its clauses. Keywords are matched as
// whole words, case-insensitively.
func ParseExpression(text string) (Expression, error) {
	var (
		expr    Expression
		from    []string
		to      []string
		with    []string
		current = &from
		seen    = make(map[string]bool)
	)

	for _, word := range strings.Fields(text) {
		keyword := strings.ToLower(word)
		switch keyword {
		case KeywordTo, KeywordAt, KeywordFor:
			clause := keyword
			if keyword == KeywordFor {
				clause = KeywordAt
			}
			if seen[clause] {
				return Expression{}, fmt.Errorf("%w: %q", ErrDuplicateClause, keyword)
			}
			seen[clause] = true

			if keyword == KeywordTo {
				current = &to
			} else {
				expr.Joiner = keyword
				current = &with
			}
		default:
			*current = append(*current, word)
		}
	}

	expr.From = strings.Join(from, " ")
	expr.To = strings.Join(to, " ")
	expr.With = strings.Join(with, " ")

	switch {
	case expr.From == "":
		return Expression{}, ErrEmptyExpression
	case seen[KeywordTo] && expr.To == "":
		return Expression{}, fmt.Errorf("%w: %q", ErrMissingClause, KeywordTo)
	case seen[KeywordAt] && expr.With == "":
		return Expression{}, fmt.Errorf("%w: %q", ErrMissingClause, expr.Joiner)
	}
	return expr, nil
}

// Result is the outcome of evaluating an Expression.
type Result struct {
	Expression Expression
	From       []metric.Measurement
	With       []metric.Measurement
	Value      metric.Measurement
}

// Evaluate parses and resolves one expression. The returned error is either
// a syntax error or a metric.Invalid explaining why no value resulted.
//
// When the from measurement cannot be converted to the requested unit but
// the derived value can ("5 kph for 3 hours to mile"), the derived value is
// converted instead.
func Evaluate(ctx context.Context, text string) (Result, error) {
	log := logging.FromContext(ctx)

	expr, err := ParseExpression(text)
	if err != nil {
		return Result{}, err
	}
	res := Result{Expression: expr}

	res.From, err = metric.ParseMeasurements(expr.From)
	if err != nil {
		return res, fmt.Errorf("reading %q: %w", expr.From, err)
	}
	if expr.With != "" {
		res.With, err = metric.ParseMeasurements(expr.With)
		if err != nil {
			return res, fmt.Errorf("reading %q: %w", expr.With, err)
		}
	}

	value := Resolve(res.From, expr.To, res.With)
	if expr.To != "" && len(res.With) > 0 && value.IsValid() {
		if converted := value.ToUnit(expr.To); converted.IsValid() {
			value = converted
		}
	}
	res.Value = value

	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("expression", expr.String()).
		Str("kind", value.Kind().String()).
		Str("result", value.String()).
		Msg("expression evaluated")

	if inv, ok := value.(metric.Invalid); ok {
		return res, inv
	}
	return res, nil
}
