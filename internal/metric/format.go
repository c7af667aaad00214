package metric

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// Uses English locale for consistent thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// Round rounds f to precision decimal places, halves away from zero.
func Round(f float64, precision int) float64 {
	const base = 10
	multiplier := math.Pow(base, float64(precision))
	return math.Round(f*multiplier) / multiplier
}

// FormatFloat formats a float with the specified precision and thousand
// separators, dropping trailing zeros.
// Example: FormatFloat(1234.5, 2) returns "1,234.5".
func FormatFloat(f float64, precision int) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if precision < 0 {
		precision = 0
	}

	rounded := Round(f, precision)
	sign := ""
	if rounded < 0 {
		sign = "-"
	}
	rounded = math.Abs(rounded)

	formatted := strconv.FormatFloat(rounded, 'f', precision, 64)
	intPart, fracPart, _ := strings.Cut(formatted, ".")
	fracPart = strings.TrimRight(fracPart, "0")

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err == nil {
		intPart = printer.Sprintf("%d", n)
	}
	if fracPart == "" {
		return sign + intPart
	}
	return sign + intPart + "." + fracPart
}

// FormatValue formats a measurement value for display.
// Example: FormatValue(0.91440001) returns "0.91".
func FormatValue(f float64) string {
	return FormatFloat(f, DisplayPrecision)
}

// DisplayUnit returns the unit of m as its String form shows it, pluralized
// to agree with the value. Invalid measurements return their recovered unit.
func DisplayUnit(m Measurement) string {
	if m == nil {
		return ""
	}
	if !m.IsValid() || m.Amount() == nil {
		if inv, ok := m.(Invalid); ok {
			return inv.Unit
		}
		return m.String()
	}
	_, unit, _ := strings.Cut(m.String(), " ")
	return unit
}

// FormatMeasurement renders m as "<value> <unit>" with the value rounded to
// precision places. The unit agrees in number with the rounded value, so
// 1.001 miles at two places is "1 mile". Invalid measurements render their
// reason.
func FormatMeasurement(m Measurement, precision int) string {
	if m == nil {
		return ""
	}
	amount := m.Amount()
	if !m.IsValid() || amount == nil {
		return m.String()
	}

	unit := DisplayUnit(m)
	if Round(*amount, max(precision, 0)) == 1 {
		unit = m.UnitName()
	}
	return FormatFloat(*amount, precision) + " " + unit
}
