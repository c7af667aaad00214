package metric

import "fmt"

// DistanceUnit is a canonical distance unit name.
type DistanceUnit string

// Canonical distance units.
const (
	Foot      DistanceUnit = "foot"
	Mile      DistanceUnit = "mile"
	Meter     DistanceUnit = "meter"
	Kilometer DistanceUnit = "kilometer"
	Marathon  DistanceUnit = "marathon"
	Century   DistanceUnit = "century"
)

// Distances lists the canonical distance units in catalog order.
//
//nolint:gochecknoglobals // Immutable unit catalog.
var Distances = []DistanceUnit{Foot, Mile, Meter, Kilometer, Marathon, Century}

// meters returns the number of meters in one unit.
func (u DistanceUnit) meters() (float64, bool) {
	switch u {
	case Foot:
		return MetersPerFoot, true
	case Mile:
		return MetersPerMile, true
	case Meter:
		return MetersPerMeter, true
	case Kilometer:
		return MetersPerKilometer, true
	case Marathon:
		return MetersPerMarathon, true
	case Century:
		return MetersPerCentury, true
	default:
		return 0, false
	}
}

// Distance is a length in one of the canonical distance units.
type Distance struct {
	Value *float64     `json:"value"`
	Unit  DistanceUnit `json:"unit"`
}

// NewDistance builds a Distance. A nil value makes a unit-only template.
func NewDistance(value *float64, unit DistanceUnit) Distance {
	return Distance{Value: value, Unit: unit}
}

func (Distance) measurement() {}
func (Distance) side()        {}

// Kind returns KindDistance.
func (d Distance) Kind() Kind { return KindDistance }

// Amount returns the distance value.
func (d Distance) Amount() *float64 { return d.Value }

// UnitName returns the canonical unit name.
func (d Distance) UnitName() string { return string(d.Unit) }

// IsValid always returns true.
func (d Distance) IsValid() bool { return true }

// IsPlural reports whether the value is anything but exactly one.
func (d Distance) IsPlural() bool { return isPlural(d.Value) }

// String renders the distance as "<value> <unit>" with the unit pluralized as needed.
func (d Distance) String() string {
	unit := string(d.Unit)
	if d.IsPlural() {
		unit = PluralizeDistance(unit)
	}
	return formatMeasurement(d.Value, unit)
}

// WithValue returns a copy of d holding value.
func (d Distance) WithValue(value *float64) Distance {
	return Distance{Value: value, Unit: d.Unit}
}

// Meters returns the distance in meters, or nil for a template.
func (d Distance) Meters() *float64 {
	factor, ok := d.Unit.meters()
	if !ok {
		return nil
	}
	return scale(d.Value, factor)
}

// In converts d to unit through meters. Conversion between two catalog
// units never fails; a template stays a template.
func (d Distance) In(unit DistanceUnit) Distance {
	meters := d.Meters()
	factor, ok := unit.meters()
	if meters == nil || !ok {
		return Distance{Value: nil, Unit: unit}
	}
	return Distance{Value: Float(*meters / factor), Unit: unit}
}

// ToUnit converts d to the distance unit named by target. The target may be
// any recognised spelling ("mi", "miles", "feet") but must not carry a value.
func (d Distance) ToUnit(target string) Measurement {
	parsed := ParseDistance(target)
	to, ok := parsed.(Distance)
	if !ok {
		return Invalid{
			Value:  d.Value,
			Reason: fmt.Sprintf("cannot convert a distance to %q", target),
			Cause:  ErrIncompatible,
		}
	}
	if to.Value != nil {
		return Invalid{
			Value:  d.Value,
			Reason: fmt.Sprintf("cannot convert a distance to a value (%q)", target),
			Cause:  ErrValueTarget,
		}
	}
	return d.In(to.Unit)
}
