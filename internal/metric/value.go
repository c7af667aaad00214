package metric

import (
	"regexp"
	"strconv"
	"strings"
)

//nolint:gochecknoglobals // Compiled once, read-only.
var (
	nonValueChars = regexp.MustCompile(`[^\d.]+`)
	nonHMSChars   = regexp.MustCompile(`[^0-9.:]+`)
	qualifierWord = regexp.MustCompile(`\b(full|half|quarter)\b`)
)

// qualifier returns the multiplier of the first qualifier word in text.
func qualifier(text string) (float64, bool) {
	match := qualifierWord.FindStringSubmatch(strings.ToLower(text))
	if match == nil {
		return 0, false
	}
	switch match[1] {
	case "full":
		return FullMultiplier, true
	case "half":
		return HalfMultiplier, true
	default:
		return QuarterMultiplier, true
	}
}

// ParseValue extracts the numeric value from free text such as "foo123 bar"
// or "2 half marathons". Only digits and '.' are kept. A qualifier word
// (full, half, quarter) multiplies the number, or stands for the value on
// its own. It returns nil when there is nothing numeric or the digits do not
// form a number ("123.4.5").
func ParseValue(text string) *float64 {
	multiplier, qualified := qualifier(text)

	digits := nonValueChars.ReplaceAllString(text, "")
	if digits == "" {
		if qualified {
			return Float(multiplier)
		}
		return nil
	}

	value, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return nil
	}
	if qualified {
		value *= multiplier
	}
	return Float(value)
}

// ParseHMS parses "mm:ss" or "hh:mm:ss" into seconds. Characters other than
// digits, '.' and ':' are ignored. It returns nil for any other shape.
func ParseHMS(text string) *float64 {
	parts := strings.Split(nonHMSChars.ReplaceAllString(text, ""), ":")

	const (
		minutesSeconds      = 2
		hoursMinutesSeconds = 3
	)
	if len(parts) != minutesSeconds && len(parts) != hoursMinutesSeconds {
		return nil
	}

	var total float64
	for _, part := range parts {
		n, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil
		}
		total = total*SecondsPerMinute + n
	}
	return Float(total)
}
