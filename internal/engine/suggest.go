package engine

import (
	"context"
	"slices"
	"sync"

	"github.com/rshade/stride/internal/logging"
	"github.com/rshade/stride/internal/metric"
)

// suggestionGroups are sets of units a runner commonly converts between.
// Paces are written with '/'.
//
//nolint:gochecknoglobals // Immutable suggestion table.
var suggestionGroups = [][]string{
	{"mile/hour", "kilometer/hour", "minute/mile", "minute/kilometer"},

	{"kilometer", "mile"},
	{"kilometer", "meter"},
	{"mile", "feet"},

	{"hour", "minute", "second", "day"},
}

// canonicalGroups holds suggestionGroups keyed by canonical unit name, so
// "feet" is matched as "foot".
//
//nolint:gochecknoglobals // Built once on first use and never mutated.
var canonicalGroups = sync.OnceValue(func() [][]string {
	groups := make([][]string, len(suggestionGroups))
	for i, group := range suggestionGroups {
		for _, unit := range group {
			groups[i] = append(groups[i], canonicalUnit(metric.Parse(unit)))
		}
	}
	return groups
})

// canonicalUnit names the unit of m the way suggestion groups do.
func canonicalUnit(m metric.Measurement) string {
	switch v := m.(type) {
	case metric.Distance, metric.Duration:
		return v.UnitName()
	case metric.Pace:
		return v.SlashUnitName()
	default:
		return ""
	}
}

// Suggest returns quick conversions of m: for every suggestion group holding
// m's unit, m converted to each other unit of the group. Conversions that
// fail are dropped.
func Suggest(ctx context.Context, m metric.Measurement) []metric.Measurement {
	log := logging.FromContext(ctx)

	unit := canonicalUnit(m)
	if unit == "" {
		return nil
	}

	var suggestions []metric.Measurement
	for _, group := range canonicalGroups() {
		if !slices.Contains(group, unit) {
			continue
		}
		for _, target := range group {
			if target == unit {
				continue
			}
			converted := m.ToUnit(target)
			if !converted.IsValid() {
				log.Debug().
					Ctx(ctx).
					Str("component", "engine").
					Str("unit", unit).
					Str("target", target).
					Str("reason", converted.String()).
					Msg("dropping invalid suggestion")
				continue
			}
			suggestions = append(suggestions, converted)
		}
	}
	return suggestions
}
