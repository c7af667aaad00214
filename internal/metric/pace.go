package metric

import "fmt"

// Separator joins the two sides of a pace.
type Separator string

// Pace separators.
const (
	SeparatorSlash Separator = "/"
	SeparatorPer   Separator = " per "
)

// Separators lists the pace separators in catalog order.
//
//nolint:gochecknoglobals // Immutable separator list.
var Separators = []Separator{SeparatorSlash, SeparatorPer}

// Pace is the ratio of one side to the other, for example minutes per mile
// or kilometers per hour. The two sides are always of different kinds.
type Pace struct {
	Left  Side      `json:"left"`
	Sep   Separator `json:"separator"`
	Right Side      `json:"right"`

	// Compact holds the short name ("kph", "mpw") when the pace was written
	// in that form. It replaces the derived unit name when set.
	Compact string `json:"compact,omitempty"`
}

// NewPace builds a Pace from its two sides.
func NewPace(left Side, sep Separator, right Side) Pace {
	return Pace{Left: left, Sep: sep, Right: right}
}

func (Pace) measurement() {}

// Kind returns KindPace.
func (p Pace) Kind() Kind { return KindPace }

// Amount returns left over right. It is nil when the left value is missing
// and equals the left value when only the right value is missing.
func (p Pace) Amount() *float64 {
	return ratio(p.Left.Amount(), p.Right.Amount())
}

// UnitName returns the compact name when present, otherwise
// "<left unit><separator><right unit>".
func (p Pace) UnitName() string {
	if p.Compact != "" {
		return p.Compact
	}
	return p.Left.UnitName() + string(p.Sep) + p.Right.UnitName()
}

// SlashUnitName returns "<left unit>/<right unit>" regardless of how the
// pace was written.
func (p Pace) SlashUnitName() string {
	return p.Left.UnitName() + string(SeparatorSlash) + p.Right.UnitName()
}

// IsValid always returns true.
func (p Pace) IsValid() bool { return true }

// IsPlural reports whether the pace value is anything but exactly one.
func (p Pace) IsPlural() bool { return isPlural(p.Amount()) }

// String renders the pace with its left unit pluralized as needed.
func (p Pace) String() string {
	if p.Compact != "" {
		return formatMeasurement(p.Amount(), p.Compact)
	}
	left := p.Left.UnitName()
	if p.IsPlural() {
		left = pluralizeSide(p.Left, left)
	}
	return formatMeasurement(p.Amount(), left+string(p.Sep)+p.Right.UnitName())
}

// ToUnit converts the pace to the pace unit named by target, such as
// "minute/mile" or "kph". The target must be a unit-only pace. When target
// puts the kinds the other way round, the pace is inverted first.
func (p Pace) ToUnit(target string) Measurement {
	parsed := ParsePace(target)
	to, ok := parsed.(Pace)
	if !ok {
		return Invalid{
			Value:  p.Amount(),
			Reason: fmt.Sprintf("cannot convert a pace to %q", target),
			Left:   p.Left,
			Right:  p.Right,
			Cause:  ErrIncompatible,
		}
	}
	if to.Amount() != nil {
		return Invalid{
			Value:  p.Amount(),
			Reason: fmt.Sprintf("cannot convert a pace to a value (%q)", target),
			Left:   p.Left,
			Right:  p.Right,
			Cause:  ErrValueTarget,
		}
	}

	value := p.Amount()
	if value == nil {
		return to
	}

	left, right := p.Left, p.Right
	numerator, denominator := *value, 1.0
	if left.Kind() != to.Left.Kind() {
		left, right = right, left
		numerator, denominator = denominator, numerator
	}

	convertedLeft, okLeft := convertSide(withAmount(left, Float(numerator)), to.Left)
	convertedRight, okRight := convertSide(withAmount(right, Float(denominator)), to.Right)
	if !okLeft || !okRight {
		return Invalid{
			Value:  value,
			Reason: fmt.Sprintf("cannot convert %s to %s", p.UnitName(), to.UnitName()),
			Left:   p.Left,
			Right:  p.Right,
			Cause:  ErrIncompatible,
		}
	}

	return Pace{
		Left:    withAmount(to.Left, ratio(convertedLeft.Amount(), convertedRight.Amount())),
		Sep:     to.Sep,
		Right:   to.Right,
		Compact: to.Compact,
	}
}

// Times combines the pace with a distance or duration. An input of the
// right side's kind yields the left kind (5 kph for 3 hours is 15 km); an
// input of the left side's kind yields the right kind (15 km at 5 kph is
// 3 hours). Missing values propagate as a template of the resulting unit.
func (p Pace) Times(s Side) Measurement {
	value := p.Amount()
	switch s.Kind() {
	case p.Right.Kind():
		in, _ := convertSide(s, p.Right)
		if value == nil || in.Amount() == nil {
			return withAmount(p.Left, nil)
		}
		return withAmount(p.Left, Float(*value*(*in.Amount())))
	case p.Left.Kind():
		in, _ := convertSide(s, p.Left)
		if value == nil || in.Amount() == nil {
			return withAmount(p.Right, nil)
		}
		return withAmount(p.Right, Float(*in.Amount() / *value))
	default:
		return Invalid{
			Value:  value,
			Reason: fmt.Sprintf("cannot combine %s with %s", p.UnitName(), s.UnitName()),
			Cause:  ErrIncompatible,
		}
	}
}

// ratio divides left by right with template propagation.
func ratio(left, right *float64) *float64 {
	if left == nil {
		return nil
	}
	if right == nil {
		return Float(*left)
	}
	return Float(*left / *right)
}

// withAmount returns a copy of s holding value.
func withAmount(s Side, value *float64) Side {
	switch v := s.(type) {
	case Distance:
		return v.WithValue(value)
	case Duration:
		return v.WithValue(value)
	default:
		return s
	}
}

// convertSide converts s into the unit of target. It fails when the two
// sides are of different kinds.
func convertSide(s, target Side) (Side, bool) {
	switch from := s.(type) {
	case Distance:
		to, ok := target.(Distance)
		if !ok {
			return s, false
		}
		return from.In(to.Unit), true
	case Duration:
		to, ok := target.(Duration)
		if !ok {
			return s, false
		}
		return from.In(to.Unit), true
	default:
		return s, false
	}
}

// pluralizeSide pluralizes a unit name according to the kind of s.
func pluralizeSide(s Side, unit string) string {
	switch s.(type) {
	case Distance:
		return PluralizeDistance(unit)
	case Duration:
		return PluralizeDuration(unit)
	default:
		return unit
	}
}
