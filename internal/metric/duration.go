package metric

import "fmt"

// DurationUnit is a canonical duration unit name.
type DurationUnit string

// Canonical duration units.
const (
	Second DurationUnit = "second"
	Minute DurationUnit = "minute"
	Hour   DurationUnit = "hour"
	Day    DurationUnit = "day"
	Week   DurationUnit = "week"
	Month  DurationUnit = "month"
)

// Durations lists the canonical duration units in catalog order.
//
//nolint:gochecknoglobals // Immutable unit catalog.
var Durations = []DurationUnit{Second, Minute, Hour, Day, Week, Month}

// seconds returns the number of seconds in one unit.
func (u DurationUnit) seconds() (float64, bool) {
	switch u {
	case Second:
		return SecondsPerSecond, true
	case Minute:
		return SecondsPerMinute, true
	case Hour:
		return SecondsPerHour, true
	case Day:
		return SecondsPerDay, true
	case Week:
		return SecondsPerWeek, true
	case Month:
		return SecondsPerMonth, true
	default:
		return 0, false
	}
}

// Duration is a span of time in one of the canonical duration units.
type Duration struct {
	Value *float64     `json:"value"`
	Unit  DurationUnit `json:"unit"`
}

// NewDuration builds a Duration. A nil value makes a unit-only template.
func NewDuration(value *float64, unit DurationUnit) Duration {
	return Duration{Value: value, Unit: unit}
}

func (Duration) measurement() {}
func (Duration) side()        {}

// Kind returns KindDuration.
func (d Duration) Kind() Kind { return KindDuration }

// Amount returns the duration value.
func (d Duration) Amount() *float64 { return d.Value }

// UnitName returns the canonical unit name.
func (d Duration) UnitName() string { return string(d.Unit) }

// IsValid always returns true.
func (d Duration) IsValid() bool { return true }

// IsPlural reports whether the value is anything but exactly one.
func (d Duration) IsPlural() bool { return isPlural(d.Value) }

// String renders the duration as "<value> <unit>" with the unit pluralized as needed.
func (d Duration) String() string {
	unit := string(d.Unit)
	if d.IsPlural() {
		unit = PluralizeDuration(unit)
	}
	return formatMeasurement(d.Value, unit)
}

// WithValue returns a copy of d holding value.
func (d Duration) WithValue(value *float64) Duration {
	return Duration{Value: value, Unit: d.Unit}
}

// Seconds returns the duration in seconds, or nil for a template.
func (d Duration) Seconds() *float64 {
	factor, ok := d.Unit.seconds()
	if !ok {
		return nil
	}
	return scale(d.Value, factor)
}

// In converts d to unit through seconds. Conversion between two catalog
// units never fails; a template stays a template.
func (d Duration) In(unit DurationUnit) Duration {
	seconds := d.Seconds()
	factor, ok := unit.seconds()
	if seconds == nil || !ok {
		return Duration{Value: nil, Unit: unit}
	}
	return Duration{Value: Float(*seconds / factor), Unit: unit}
}

// ToUnit converts d to the duration unit named by target. The target may be
// any recognised spelling ("min", "hours") but must not carry a value.
func (d Duration) ToUnit(target string) Measurement {
	parsed := ParseDuration(target)
	to, ok := parsed.(Duration)
	if !ok {
		return Invalid{
			Value:  d.Value,
			Reason: fmt.Sprintf("cannot convert a duration to %q", target),
			Cause:  ErrIncompatible,
		}
	}
	if to.Value != nil {
		return Invalid{
			Value:  d.Value,
			Reason: fmt.Sprintf("cannot convert a duration to a value (%q)", target),
			Cause:  ErrValueTarget,
		}
	}
	return d.In(to.Unit)
}
