// Package metric models runner's measurements: distances, durations and the
// paces derived from them.
//
// A Measurement is one of Distance, Duration, Pace or Invalid. Values are
// immutable and every parse or conversion returns a fresh value. Failures are
// values too: an Invalid carries the reason a text or conversion could not be
// understood, and also satisfies the error interface.
//
// A nil value marks a unit-only template ("miles" with no number). Templates
// convert and combine like ordinary values and propagate the missing value.
package metric

import "fmt"

// Kind is the coarse category of a Measurement.
type Kind int

const (
	// KindInvalid marks a measurement that could not be understood.
	KindInvalid Kind = iota
	// KindDistance marks a Distance.
	KindDistance
	// KindDuration marks a Duration.
	KindDuration
	// KindPace marks a Pace.
	KindPace
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindDistance:
		return "distance"
	case KindDuration:
		return "duration"
	case KindPace:
		return "pace"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind resolves a kind name as printed by Kind.String.
func ParseKind(name string) (Kind, bool) {
	switch name {
	case "distance":
		return KindDistance, true
	case "duration":
		return KindDuration, true
	case "pace":
		return KindPace, true
	default:
		return KindInvalid, false
	}
}

// Measurement is the closed set of measurement values.
// It is implemented only by Distance, Duration, Pace and Invalid.
type Measurement interface {
	fmt.Stringer

	// Kind reports which variant the measurement is.
	Kind() Kind

	// Amount returns the numeric value, or nil for a unit-only template.
	Amount() *float64

	// UnitName returns the unit as text, or "" when there is none.
	UnitName() string

	// IsValid reports whether the measurement is anything but Invalid.
	IsValid() bool

	// IsPlural reports whether the unit should be displayed in plural form.
	IsPlural() bool

	// ToUnit converts the measurement to the unit named by target.
	ToUnit(target string) Measurement

	measurement()
}

// Side is a measurement that may appear on either side of a Pace.
// It is implemented only by Distance and Duration.
type Side interface {
	Measurement
	side()
}

// Float returns a pointer to v, for building measurement values.
func Float(v float64) *float64 {
	return &v
}

// MustValid returns m when it is valid and panics otherwise.
// Use it only where an invalid measurement is a programming error.
func MustValid(m Measurement) Measurement {
	if m == nil || !m.IsValid() {
		panic(fmt.Sprintf("metric: measurement must be valid, got %v", m))
	}
	return m
}

// isPlural treats every value but exactly one, including a missing value, as plural.
func isPlural(value *float64) bool {
	return value == nil || *value != 1
}

// formatMeasurement renders "<value> <unit>", or just the unit for a template.
func formatMeasurement(value *float64, unit string) string {
	if value == nil {
		return unit
	}
	return FormatValue(*value) + " " + unit
}

// scale multiplies a possibly missing value.
func scale(value *float64, factor float64) *float64 {
	if value == nil {
		return nil
	}
	return Float(*value * factor)
}
