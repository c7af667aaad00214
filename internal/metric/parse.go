package metric

import (
	"fmt"
	"regexp"
	"strings"
)

// distanceMatcher pairs a unit with its suffix pattern.
type distanceMatcher struct {
	unit    DistanceUnit
	pattern *regexp.Regexp
}

// durationMatcher pairs a unit with its whole-text pattern.
type durationMatcher struct {
	unit    DurationUnit
	pattern *regexp.Regexp
}

//nolint:gochecknoglobals // Compiled once, read-only.
var (
	slashSpacing = regexp.MustCompile(`\s*/\s*`)
	compactPace  = regexp.MustCompile(`^([^a-z]*)([km])p([whdms])$`)

	// Suffix matching order matters: "km" must win over "m".
	distanceMatchers = buildDistanceMatchers(Mile, Kilometer, Meter, Foot, Marathon, Century)
	durationMatchers = buildDurationMatchers(Durations...)
)

func buildDistanceMatchers(units ...DistanceUnit) []distanceMatcher {
	matchers := make([]distanceMatcher, 0, len(units))
	for _, unit := range units {
		pattern := `(?:^|[^a-z])(?:` + strings.Join(distanceAbbreviations[unit], "|") + `)$`
		matchers = append(matchers, distanceMatcher{unit: unit, pattern: regexp.MustCompile(pattern)})
	}
	return matchers
}

func buildDurationMatchers(units ...DurationUnit) []durationMatcher {
	matchers := make([]durationMatcher, 0, len(units))
	for _, unit := range units {
		pattern := `^[^a-z]*(?:` + strings.Join(durationAbbreviations[unit], "|") + `)s?$`
		matchers = append(matchers, durationMatcher{unit: unit, pattern: regexp.MustCompile(pattern)})
	}
	return matchers
}

// Normalize lower-cases and trims text and removes whitespace around '/'.
func Normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	return slashSpacing.ReplaceAllString(text, "/")
}

// separatorOf returns the pace separator used in text, preferring '/'.
func separatorOf(text string) (Separator, bool) {
	switch {
	case strings.Contains(text, string(SeparatorSlash)):
		return SeparatorSlash, true
	case strings.Contains(text, string(SeparatorPer)):
		return SeparatorPer, true
	default:
		return "", false
	}
}

// unitPart removes qualifier words so they never hide the unit.
func unitPart(text string) string {
	return strings.TrimSpace(qualifierWord.ReplaceAllString(text, ""))
}

func distanceUnitOf(text string) (DistanceUnit, bool) {
	text = DepluralizeDistance(unitPart(text))
	for _, m := range distanceMatchers {
		if m.pattern.MatchString(text) {
			return m.unit, true
		}
	}
	return "", false
}

func durationUnitOf(text string) (DurationUnit, bool) {
	text = unitPart(text)
	for _, m := range durationMatchers {
		if m.pattern.MatchString(text) {
			return m.unit, true
		}
	}
	return "", false
}

// ParseDistance parses free text such as "3.1 miles", "10 km" or
// "half marathon" as a Distance. Text without a number yields a unit-only
// template; text without a recognised unit yields an Invalid that keeps the
// number.
func ParseDistance(text string) Measurement {
	t := Normalize(text)
	value := ParseValue(t)
	if _, ok := separatorOf(t); ok {
		return unknownUnit(value, "distance", text)
	}
	unit, ok := distanceUnitOf(t)
	if !ok {
		return unknownUnit(value, "distance", text)
	}
	return Distance{Value: value, Unit: unit}
}

// ParseDuration parses free text such as "5 min", "2 hours" or
// "1:30:00 hours" as a Duration. A value written with ':' is read as
// mm:ss or hh:mm:ss and expressed in the matched unit.
func ParseDuration(text string) Measurement {
	t := Normalize(text)
	if _, ok := separatorOf(t); ok {
		return unknownUnit(ParseValue(t), "duration", text)
	}

	unit, ok := durationUnitOf(t)
	var value *float64
	switch {
	case !strings.Contains(t, ":"):
		value = ParseValue(t)
	case ok:
		seconds := ParseHMS(t)
		if seconds != nil {
			value = Duration{Value: seconds, Unit: Second}.In(unit).Value
		}
	}
	if !ok {
		return unknownUnit(value, "duration", text)
	}
	return Duration{Value: value, Unit: unit}
}

func unknownUnit(value *float64, kind, text string) Invalid {
	return Invalid{
		Value:  value,
		Reason: fmt.Sprintf("couldn't understand %q as a %s", strings.TrimSpace(text), kind),
		Cause:  ErrUnknownUnit,
	}
}

// ParseCompactPace parses the compact form "<value> {k|m}p{w|d|h|m|s}",
// such as "5 kph" or "20 mpw".
func ParseCompactPace(text string) (Pace, bool) {
	match := compactPace.FindStringSubmatch(Normalize(text))
	if match == nil {
		return Pace{}, false
	}

	var distance DistanceUnit
	for _, d := range compactDistances {
		if d.letter == match[2] {
			distance = d.unit
		}
	}
	var duration DurationUnit
	for _, d := range compactDurations {
		if d.letter == match[3] {
			duration = d.unit
		}
	}

	return Pace{
		Left:    Distance{Value: ParseValue(match[1]), Unit: distance},
		Sep:     SeparatorSlash,
		Right:   Duration{Value: nil, Unit: duration},
		Compact: match[2] + "p" + match[3],
	}, true
}

// sideKinds records which kinds one side of a pace could be.
type sideKinds struct {
	distance Measurement
	duration Measurement
}

func parseSide(text string) sideKinds {
	return sideKinds{distance: ParseDistance(text), duration: ParseDuration(text)}
}

func (s sideKinds) isDistance() bool { return s.distance.IsValid() }
func (s sideKinds) isDuration() bool { return s.duration.IsValid() }
func (s sideKinds) isNone() bool     { return !s.isDistance() && !s.isDuration() }
func (s sideKinds) isEither() bool   { return s.isDistance() && s.isDuration() }

// diagnostic picks the candidate shown for a side that is part of an
// invalid pace: the distance reading, else the duration reading, else the
// failed distance reading that still carries the number.
func (s sideKinds) diagnostic() Measurement {
	if s.isDistance() || !s.isDuration() {
		return s.distance
	}
	return s.duration
}

// ParsePace parses free text such as "5 min/km", "12 km per hour" or
// "5 kph" as a Pace. Both sides are read as distance and as duration; the
// pace is valid only when one side is a distance and the other a duration.
// A side that could be either takes the kind the other side is not.
func ParsePace(text string) Measurement {
	if p, ok := ParseCompactPace(text); ok {
		return p
	}

	t := Normalize(text)
	sep, ok := separatorOf(t)
	if !ok {
		return Invalid{
			Value:  ParseValue(t),
			Reason: fmt.Sprintf("no '/' or 'per' in %q", strings.TrimSpace(text)),
			Cause:  ErrMissingSeparator,
		}
	}

	parts := strings.Split(t, string(sep))
	left, right := parseSide(parts[0]), parseSide(parts[1])

	switch {
	case left.isNone() || right.isNone():
		return invalidPace(left.diagnostic(), right.diagnostic(), unknownSides(left, right), ErrUnknownUnit)
	case left.isEither() && right.isEither():
		return invalidPace(left.distance, right.distance, "both sides could be a distance", ErrAmbiguousPace)
	}

	leftKind, rightKind := left.kind(), right.kind()
	if left.isEither() {
		leftKind = opposite(rightKind)
	}
	if right.isEither() {
		rightKind = opposite(leftKind)
	}
	if leftKind == rightKind {
		reason := "both sides could be a " + leftKind.String()
		return invalidPace(left.as(leftKind), right.as(rightKind), reason, ErrAmbiguousPace)
	}

	leftSide, _ := left.as(leftKind).(Side)
	rightSide, _ := right.as(rightKind).(Side)
	return NewPace(leftSide, sep, rightSide)
}

// kind returns the only kind a side can be; callers rule out either and none.
func (s sideKinds) kind() Kind {
	if s.isDistance() {
		return KindDistance
	}
	return KindDuration
}

func (s sideKinds) as(kind Kind) Measurement {
	if kind == KindDistance {
		return s.distance
	}
	return s.duration
}

func opposite(kind Kind) Kind {
	if kind == KindDistance {
		return KindDuration
	}
	return KindDistance
}

func unknownSides(left, right sideKinds) string {
	switch {
	case left.isNone() && right.isNone():
		return "couldn't understand the left or right units"
	case left.isNone():
		return "couldn't understand the left unit"
	default:
		return "couldn't understand the right unit"
	}
}

func invalidPace(left, right Measurement, reason string, cause error) Invalid {
	return Invalid{
		Value:  ratio(left.Amount(), right.Amount()),
		Reason: reason,
		Left:   left,
		Right:  right,
		Cause:  cause,
	}
}

// ParseMeasurements reads text as every measurement it could mean.
//
// A valid pace is returned alone. Otherwise the distance and duration
// readings that succeed are returned in that order, so "5 m" yields both
// 5 meters and 5 minutes. When nothing matches, the returned error is an
// Invalid describing the failure.
func ParseMeasurements(text string) ([]Measurement, error) {
	t := Normalize(text)

	_, hasSeparator := separatorOf(t)
	pace := ParsePace(t)
	if pace.IsValid() {
		return []Measurement{pace}, nil
	}
	if hasSeparator {
		return nil, toInvalid(pace)
	}

	var found []Measurement
	for _, m := range []Measurement{ParseDistance(t), ParseDuration(t)} {
		if m.IsValid() {
			found = append(found, m)
		}
	}
	if len(found) == 0 {
		return nil, Invalid{
			Value:  ParseValue(t),
			Reason: fmt.Sprintf("couldn't understand %q", strings.TrimSpace(text)),
			Cause:  ErrUnknownUnit,
		}
	}
	return found, nil
}

// Parse returns the first reading of text, or the Invalid explaining why
// there is none.
func Parse(text string) Measurement {
	found, err := ParseMeasurements(text)
	if err != nil {
		return toInvalid(err)
	}
	return found[0]
}

func toInvalid(v any) Invalid {
	switch inv := v.(type) {
	case Invalid:
		return inv
	case error:
		return Invalid{Reason: inv.Error(), Cause: inv}
	default:
		return Invalid{Cause: ErrInvalidMeasurement}
	}
}
