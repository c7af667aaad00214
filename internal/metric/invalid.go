package metric

import (
	"fmt"
	"strconv"
)

// Invalid is a measurement that could not be understood or produced.
//
// It keeps whatever could be recovered (the parsed value, the unit when one
// side of a pace was known) and a human-readable reason. Invalid also
// implements error so parse failures can travel as errors; its Cause is one
// of the package sentinels and works with errors.Is.
type Invalid struct {
	Value  *float64 `json:"value"`
	Unit   string   `json:"unit,omitempty"`
	Reason string   `json:"reason,omitempty"`

	// Left and Right keep the two candidate sides of a pace that failed to
	// resolve, for diagnostics.
	Left  Measurement `json:"-"`
	Right Measurement `json:"-"`

	Cause error `json:"-"`
}

func (Invalid) measurement() {}

// Kind returns KindInvalid.
func (i Invalid) Kind() Kind { return KindInvalid }

// Amount returns the recovered value, if any.
func (i Invalid) Amount() *float64 { return i.Value }

// UnitName returns the recovered unit, if any.
func (i Invalid) UnitName() string { return i.Unit }

// IsValid always returns false.
func (i Invalid) IsValid() bool { return false }

// IsPlural reports whether the recovered value is anything but exactly one.
func (i Invalid) IsPlural() bool { return isPlural(i.Value) }

// ToUnit always returns an Invalid: invalid measurements never convert.
func (i Invalid) ToUnit(string) Measurement {
	if i.Cause == nil {
		i.Cause = ErrInvalidMeasurement
	}
	return i
}

// String describes the failure.
func (i Invalid) String() string {
	if i.Reason != "" {
		if i.Left != nil && i.Right != nil {
			return fmt.Sprintf("%s (%s | %s)", i.Reason, describeSide(i.Left), describeSide(i.Right))
		}
		return i.Reason
	}
	return fmt.Sprintf("invalid measurement with value %s and unit %q", formatOptional(i.Value), i.Unit)
}

// Error implements error.
func (i Invalid) Error() string {
	return i.String()
}

// Unwrap returns the sentinel cause.
func (i Invalid) Unwrap() error {
	return i.Cause
}

// describeSide renders one side of a failed pace without recursing into reasons.
func describeSide(m Measurement) string {
	if inv, ok := m.(Invalid); ok {
		return "? " + formatOptional(inv.Value)
	}
	return m.String()
}

func formatOptional(value *float64) string {
	if value == nil {
		return "none"
	}
	return strconv.FormatFloat(*value, 'g', -1, 64)
}
