package metric

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMeasurements(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Measurement
	}{
		{
			name: "ambiguous unit yields distance then duration",
			text: "5 m",
			want: []Measurement{NewDistance(Float(5), Meter), NewDuration(Float(5), Minute)},
		},
		{
			name: "distance only",
			text: "3 miles",
			want: []Measurement{NewDistance(Float(3), Mile)},
		},
		{
			name: "upper case",
			text: "10 MILES",
			want: []Measurement{NewDistance(Float(10), Mile)},
		},
		{
			name: "duration only",
			text: "2 hours",
			want: []Measurement{NewDuration(Float(2), Hour)},
		},
		{
			name: "qualified distance",
			text: "half marathon",
			want: []Measurement{NewDistance(Float(0.5), Marathon)},
		},
		{
			name: "template",
			text: "feet",
			want: []Measurement{NewDistance(nil, Foot)},
		},
		{
			name: "pace",
			text: "5 min/km",
			want: []Measurement{NewPace(NewDuration(Float(5), Minute), SeparatorSlash, NewDistance(nil, Kilometer))},
		},
		{
			name: "compact pace",
			text: "5 kph",
			want: []Measurement{Pace{
				Left:    NewDistance(Float(5), Kilometer),
				Sep:     SeparatorSlash,
				Right:   NewDuration(nil, Hour),
				Compact: "kph",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMeasurements(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMeasurements_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		cause     error
		wantValue *float64
	}{
		{name: "unknown right side", text: "min/foo", cause: ErrUnknownUnit},
		{name: "two distances", text: "mile/mile", cause: ErrAmbiguousPace},
		{name: "two durations", text: "min/min", cause: ErrAmbiguousPace},
		{name: "unknown word", text: "banana", cause: ErrUnknownUnit},
		{name: "number with unknown unit keeps value", text: "12 bananas", cause: ErrUnknownUnit, wantValue: Float(12)},
		{name: "bare number", text: "42", cause: ErrUnknownUnit, wantValue: Float(42)},
		{name: "empty", text: "", cause: ErrUnknownUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMeasurements(tt.text)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, tt.cause), "got %v", err)

			var inv Invalid
			require.True(t, errors.As(err, &inv))
			assert.False(t, inv.IsValid())
			if tt.wantValue != nil {
				require.NotNil(t, inv.Value)
				assert.InDelta(t, *tt.wantValue, *inv.Value, 1e-9)
			}
		})
	}
}

func TestParse(t *testing.T) {
	assert.Equal(t, NewDistance(Float(5), Meter), Parse("5 m"))

	got := Parse("banana")
	assert.False(t, got.IsValid())
	assert.Equal(t, KindInvalid, got.Kind())
}

func TestParseDistance(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantUnit DistanceUnit
	}{
		{name: "mi", text: "3 mi", wantUnit: Mile},
		{name: "km wins over m", text: "3 km", wantUnit: Kilometer},
		{name: "kilometers", text: "3 kilometers", wantUnit: Kilometer},
		{name: "meters", text: "400 meters", wantUnit: Meter},
		{name: "feet", text: "3 feet", wantUnit: Foot},
		{name: "ft", text: "3 ft", wantUnit: Foot},
		{name: "marathons", text: "2 marathons", wantUnit: Marathon},
		{name: "centuries", text: "2 centuries", wantUnit: Century},
		{name: "no space", text: "5km", wantUnit: Kilometer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := ParseDistance(tt.text).(Distance)
			require.True(t, ok)
			assert.Equal(t, tt.wantUnit, d.Unit)
		})
	}
}

func TestParseDistance_RejectsEmbeddedUnits(t *testing.T) {
	for _, text := range []string{"5 min", "5 kpm", "5 min/km", "3 hours"} {
		t.Run(text, func(t *testing.T) {
			assert.False(t, ParseDistance(text).IsValid())
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "5 min/km", Normalize("  5 MIN / km "))
	assert.Equal(t, "12 km per hour", Normalize("12 km per hour"))
}
