package metric

// Distance factors convert one unit into meters, the distance base unit.
const (
	// MetersPerFoot is the international foot.
	MetersPerFoot = 0.3048

	// MetersPerMile is the international statute mile.
	MetersPerMile = 1609.344

	// MetersPerMeter is the identity conversion for meters.
	MetersPerMeter = 1.0

	// MetersPerKilometer converts kilometers to meters.
	MetersPerKilometer = 1000.0

	// MetersPerMarathon is the official marathon distance.
	MetersPerMarathon = 42195.0

	// MetersPerCentury is a 100 mile cycling century, rounded to the meter.
	MetersPerCentury = 160934.0
)

// Duration factors convert one unit into seconds, the duration base unit.
const (
	// SecondsPerSecond is the identity conversion for seconds.
	SecondsPerSecond = 1.0

	// SecondsPerMinute converts minutes to seconds.
	SecondsPerMinute = 60.0

	// SecondsPerHour converts hours to seconds.
	SecondsPerHour = 60 * SecondsPerMinute

	// SecondsPerDay converts days to seconds.
	SecondsPerDay = 24 * SecondsPerHour

	// SecondsPerWeek converts weeks to seconds.
	SecondsPerWeek = 7 * SecondsPerDay

	// SecondsPerMonth is 30.5 weeks worth of days. The constant is kept
	// as-is for compatibility with values users already rely on.
	SecondsPerMonth = SecondsPerWeek * 30.5
)

// Qualifier multipliers recognised by ParseValue.
const (
	// FullMultiplier scales "full" (as in "full marathon").
	FullMultiplier = 1.0

	// HalfMultiplier scales "half" (as in "half marathon").
	HalfMultiplier = 0.5

	// QuarterMultiplier scales "quarter" (as in "quarter mile").
	QuarterMultiplier = 0.25
)

// DisplayPrecision is the number of decimal places used when formatting values.
const DisplayPrecision = 2
