package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/stride/internal/metric"
)

func readings(t *testing.T, text string) []metric.Measurement {
	t.Helper()
	found, err := metric.ParseMeasurements(text)
	require.NoError(t, err)
	return found
}

func TestConvert(t *testing.T) {
	got := Convert(mustParse(t, "3 ft"), "meter")
	require.True(t, got.IsValid())
	assert.InDelta(t, 0.9144, *got.Amount(), 1e-9)

	assert.False(t, Convert(nil, "meter").IsValid())
	assert.False(t, Convert(mustParse(t, "3 ft"), "hour").IsValid())
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		from      string
		to        string
		with      string
		wantKind  metric.Kind
		wantUnit  string
		wantValue float64
	}{
		{name: "convert only", from: "10 km", to: "mile", wantKind: metric.KindDistance, wantUnit: "mile", wantValue: 6.213712},
		{name: "nothing to do", from: "10 km", wantKind: metric.KindDistance, wantUnit: "kilometer", wantValue: 10},
		{name: "convert then combine", from: "10 km", to: "mile", with: "8 min/mile", wantKind: metric.KindDuration, wantUnit: "minute", wantValue: 49.709695},
		{name: "failed conversion falls back to raw", from: "5 kph", to: "mile", with: "3 hours", wantKind: metric.KindDistance, wantUnit: "kilometer", wantValue: 15},
		{name: "first valid reading wins", from: "5 m", with: "1 km", wantKind: metric.KindPace, wantUnit: "minute per kilometer", wantValue: 5},
		{name: "ambiguous from skips conversion", from: "5 m", to: "foot", wantKind: metric.KindDistance, wantUnit: "meter", wantValue: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var with []metric.Measurement
			if tt.with != "" {
				with = readings(t, tt.with)
			}
			got := Resolve(readings(t, tt.from), tt.to, with)
			require.True(t, got.IsValid(), got.String())
			assert.Equal(t, tt.wantKind, got.Kind())
			assert.Equal(t, tt.wantUnit, got.UnitName())
			assert.InDelta(t, tt.wantValue, *got.Amount(), 1e-5)
		})
	}
}

func TestResolve_Failures(t *testing.T) {
	got := Resolve(nil, "mile", nil)
	assert.False(t, got.IsValid())

	got = Resolve(readings(t, "10 km"), "hour", nil)
	assert.True(t, errors.Is(got.(metric.Invalid), metric.ErrIncompatible))

	got = Resolve(readings(t, "1 km"), "", readings(t, "2 km"))
	assert.True(t, errors.Is(got.(metric.Invalid), metric.ErrIncompatible))
}
