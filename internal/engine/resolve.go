package engine

import (
	"strings"

	"github.com/rshade/stride/internal/metric"
)

// Convert converts m to the unit named by target.
func Convert(m metric.Measurement, target string) metric.Measurement {
	if m == nil {
		return metric.Invalid{Reason: "missing measurement", Cause: metric.ErrInvalidMeasurement}
	}
	return m.ToUnit(target)
}

// Resolve runs the conversion-entry flow over every reading of the input.
//
// When from holds exactly one reading and to names a unit, that reading is
// converted first; a failed conversion falls back to the raw reading. Each
// candidate is then combined with every value of with through ForOrAt and
// the first valid result wins. Without with values the candidate itself is
// the result. When nothing is valid the first failure is returned.
func Resolve(from []metric.Measurement, to string, with []metric.Measurement) metric.Measurement {
	if len(from) == 0 {
		return metric.Invalid{Reason: "nothing to convert", Cause: metric.ErrInvalidMeasurement}
	}

	candidates := from
	var conversionFailure metric.Measurement
	if len(from) == 1 && strings.TrimSpace(to) != "" {
		converted := Convert(from[0], to)
		if converted.IsValid() {
			candidates = []metric.Measurement{converted}
		} else {
			conversionFailure = converted
		}
	}

	if len(with) == 0 {
		if conversionFailure != nil {
			return conversionFailure
		}
		return candidates[0]
	}

	var firstFailure metric.Measurement
	for _, candidate := range candidates {
		for _, other := range with {
			result := ForOrAt(candidate, other)
			if result.IsValid() {
				return result
			}
			if firstFailure == nil {
				firstFailure = result
			}
		}
	}
	return firstFailure
}
