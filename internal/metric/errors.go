package metric

// constError is an immutable error type for sentinel errors.
// It implements the error interface and provides compile-time safety.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel causes carried by Invalid measurements.
// They can be compared with errors.Is() against an Invalid returned as an error.
var (
	// ErrUnknownUnit indicates text whose unit matches no catalog entry.
	ErrUnknownUnit = constError("unknown unit")

	// ErrMissingSeparator indicates pace text without '/' or ' per '.
	ErrMissingSeparator = constError("missing pace separator")

	// ErrAmbiguousPace indicates a pace whose two sides resolve to the same kind.
	ErrAmbiguousPace = constError("ambiguous pace")

	// ErrIncompatible indicates a conversion or derivation between kinds
	// that cannot be combined.
	ErrIncompatible = constError("incompatible measurements")

	// ErrValueTarget indicates a conversion target that carries a value
	// instead of being a unit-only template.
	ErrValueTarget = constError("conversion target must not have a value")

	// ErrInvalidMeasurement indicates an operation on an already invalid measurement.
	ErrInvalidMeasurement = constError("invalid measurement")
)
