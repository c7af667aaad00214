// Package engine derives new measurements from the ones a runner enters.
//
// ForOrAt combines two measurements dimensionally (distance is pace times
// time), Suggest offers quick conversions, and Resolve and Evaluate drive
// the convert-then-combine flow used by the command line, the REPL and
// batch input.
package engine

import (
	"fmt"

	"github.com/rshade/stride/internal/metric"
)

// ForOrAt produces the effort implied by doing left for, or at, right.
//
//	15 minutes for 3 miles   = 5 minutes per mile
//	15 km in 5 hours         = 3 km/hour
//	5 hours at 3 km/hour     = 15 km
//	15 km at 3 km/hour       = 5 hours
//
// Combining two measurements of the same kind is undefined and yields an
// Invalid. When either input is invalid, left is returned unchanged so its
// diagnostic survives.
func ForOrAt(left, right metric.Measurement) metric.Measurement {
	if left == nil || right == nil {
		return metric.Invalid{Reason: "missing measurement", Cause: metric.ErrInvalidMeasurement}
	}
	if !left.IsValid() || !right.IsValid() {
		return left
	}

	switch l := left.(type) {
	case metric.Duration:
		switch r := right.(type) {
		case metric.Distance:
			return metric.NewPace(l, metric.SeparatorPer, r)
		case metric.Pace:
			return r.Times(l)
		}
	case metric.Distance:
		switch r := right.(type) {
		case metric.Duration:
			return metric.NewPace(l, metric.SeparatorSlash, r)
		case metric.Pace:
			return r.Times(l)
		}
	case metric.Pace:
		switch r := right.(type) {
		case metric.Duration:
			return l.Times(r)
		case metric.Distance:
			return l.Times(r)
		}
	}

	return metric.Invalid{
		Unit:   left.UnitName(),
		Reason: fmt.Sprintf("cannot combine a %s with a %s", left.Kind(), right.Kind()),
		Cause:  metric.ErrIncompatible,
	}
}

// Compliment returns unit-only templates of the two kinds that combine with
// m through ForOrAt. It returns nil for an invalid measurement.
func Compliment(m metric.Measurement) []metric.Measurement {
	duration := metric.NewDuration(nil, metric.Minute)
	distance := metric.NewDistance(nil, metric.Meter)
	pace := metric.NewPace(duration, metric.SeparatorSlash, distance)

	switch m.(type) {
	case metric.Distance:
		return []metric.Measurement{duration, pace}
	case metric.Duration:
		return []metric.Measurement{distance, pace}
	case metric.Pace:
		return []metric.Measurement{duration, distance}
	default:
		return nil
	}
}
