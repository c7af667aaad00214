package autocomplete

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/stride/internal/metric"
)

func TestUnitOptions(t *testing.T) {
	distances := metric.Options(metric.KindDistance)
	durations := metric.Options(metric.KindDuration)

	t.Run("no restriction offers every kind", func(t *testing.T) {
		all := UnitOptions()
		require.Greater(t, len(all), len(distances)+len(durations))
		assert.Equal(t, distances, all[:len(distances)])
		assert.Equal(t, durations, all[len(distances):len(distances)+len(durations)])
		assert.Contains(t, all, "min/km")
	})

	t.Run("restricted to present kinds in first-seen order", func(t *testing.T) {
		got := UnitOptions(
			metric.NewDuration(metric.Float(5), metric.Minute),
			metric.NewDistance(metric.Float(1), metric.Mile),
			metric.NewDuration(nil, metric.Hour),
		)
		assert.Equal(t, append(append([]string{}, durations...), distances...), got)
	})

	t.Run("invalid restriction offers every kind", func(t *testing.T) {
		got := UnitOptions(
			metric.NewDistance(metric.Float(1), metric.Mile),
			metric.Invalid{Reason: "nope"},
		)
		assert.Equal(t, UnitOptions(), got)
	})

	t.Run("no duplicates", func(t *testing.T) {
		seen := map[string]bool{}
		for _, o := range UnitOptions() {
			assert.False(t, seen[o], "duplicate option %q", o)
			seen[o] = true
		}
	})
}

func TestOptionsFor(t *testing.T) {
	tests := []struct {
		name string
		m    metric.Measurement
		want []string
	}{
		{
			name: "one mile is singular",
			m:    metric.NewDistance(metric.Float(1), metric.Mile),
			want: []string{"foot", "mile", "meter", "kilometer", "marathon", "century"},
		},
		{
			name: "five miles is plural",
			m:    metric.NewDistance(metric.Float(5), metric.Mile),
			want: []string{"feet", "miles", "meters", "kilometers", "marathons", "centuries"},
		},
		{
			name: "unit only durations are plural",
			m:    metric.NewDuration(nil, metric.Hour),
			want: []string{"seconds", "minutes", "hours", "days", "weeks", "months"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OptionsFor(tt.m))
		})
	}

	t.Run("pace", func(t *testing.T) {
		one := OptionsFor(metric.Parse("1 min/km"))
		assert.Equal(t, metric.Paces(), one)

		many := OptionsFor(metric.Parse("5 minute/km"))
		assert.Contains(t, many, "minutes/km")
		assert.NotContains(t, many, "minute/km")
		assert.Contains(t, many, "kph")
	})

	t.Run("invalid offers every kind", func(t *testing.T) {
		got := OptionsFor(metric.Invalid{Reason: "nope"})
		assert.Contains(t, got, "miles")
		assert.Contains(t, got, "hours")
		assert.Contains(t, got, "minutes/km")
	})
}

func TestUnitText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5 miles", "miles"},
		{"5.5mi", "mi"},
		{"1:30 hours", "hours"},
		{"half marathon", "marathon"},
		{"2 Quarter marathons", "marathons"},
		{"quarterly", "quarterly"},
		{"min/km", "min/km"},
		{"5 min/km", "min/km"},
		{"42", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, UnitText(tt.in))
		})
	}
}

func TestFilter(t *testing.T) {
	options := []string{"mile", "miles", "minute", "kilometer", "Meter"}

	assert.Equal(t, []string{"mile", "miles", "minute"}, Filter("mi", options, MatchPrefix))
	assert.Equal(t, []string{"mile", "miles"}, Filter("MIL", options, MatchPrefix))
	assert.Equal(t, []string{"kilometer", "Meter"}, Filter("meter", options, MatchSubstring))
	assert.Equal(t, options, Filter("", options, MatchPrefix))
	assert.Empty(t, Filter("parsec", options, MatchSubstring))

	t.Run("idempotent", func(t *testing.T) {
		all := UnitOptions()
		for _, mode := range []MatchMode{MatchPrefix, MatchSubstring} {
			once := Filter("m", all, mode)
			assert.Equal(t, once, Filter("m", once, mode))
		}
	})
}

func TestParseMatchMode(t *testing.T) {
	assert.Equal(t, MatchSubstring, ParseMatchMode(" Substring "))
	assert.Equal(t, MatchPrefix, ParseMatchMode("prefix"))
	assert.Equal(t, MatchPrefix, ParseMatchMode(""))
}

func TestSearch(t *testing.T) {
	options := UnitOptions()

	t.Run("prefix re-attached", func(t *testing.T) {
		got := Search("5 mi", options)
		require.NotEmpty(t, got.Results)
		assert.Equal(t, []string{"5 mile", "5 miles", "5 minute", "5 minutes"}, got.Results[:4])
		assert.Nil(t, got.Selected)
	})

	t.Run("capped", func(t *testing.T) {
		got := Search("", options)
		assert.Len(t, got.Results, MaxResults)

		got = Search("5 ", options)
		assert.Len(t, got.Results, MaxResults)
	})

	t.Run("exact match selects", func(t *testing.T) {
		got := Search("5 Miles", options)
		require.Len(t, got.Selected, 1)
		d, ok := got.Selected[0].(metric.Distance)
		require.True(t, ok)
		assert.Equal(t, metric.Mile, d.Unit)
		assert.InDelta(t, 5, *d.Value, 1e-9)
	})

	t.Run("qualifier prefix", func(t *testing.T) {
		got := Search("half marathon", options)
		assert.Equal(t, "half marathon", got.Results[0])
		require.Len(t, got.Selected, 1)
		assert.InDelta(t, 0.5, *got.Selected[0].Amount(), 1e-9)
	})

	t.Run("trailing whitespace after a unit", func(t *testing.T) {
		got := Search("5 miles ", options)
		require.NotEmpty(t, got.Results)
		assert.Equal(t, "5 miles", got.Results[0])
		require.Len(t, got.Selected, 1)
		assert.InDelta(t, 5, *got.Selected[0].Amount(), 1e-9)

		got = Search("5 min/km ", options)
		assert.Contains(t, got.Results, "5 min/km")
		require.Len(t, got.Selected, 1)
		assert.Equal(t, metric.KindPace, got.Selected[0].Kind())
	})

	t.Run("trailing whitespace after a value is kept", func(t *testing.T) {
		got := Search("5   ", options)
		require.NotEmpty(t, got.Results)
		assert.Equal(t, "5   mile", got.Results[0])
	})

	t.Run("no match is not an error", func(t *testing.T) {
		got := Search("5 parsecs", options)
		assert.Empty(t, got.Results)
		assert.Nil(t, got.Selected)
	})

	t.Run("restricted options", func(t *testing.T) {
		got := Search("3 m", UnitOptions(metric.NewDuration(nil, metric.Hour)))
		assert.Equal(t, []string{"3 minute", "3 minutes", "3 month", "3 months"}, got.Results)
	})
}

func TestSearchWith(t *testing.T) {
	options := UnitOptions()

	got := SearchWith("5 ile", options, SearchOptions{Mode: MatchSubstring, Limit: 3})
	assert.Equal(t, []string{"5 mile", "5 miles", "5 mile/second"}, got.Results)

	got = SearchWith("", options, SearchOptions{Limit: 500})
	assert.Len(t, got.Results, MaxResults)
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts EntryOptions
		want string
	}{
		{"leading garbage", "  --5 miles", EntryOptions{AllowValues: true}, "5 miles"},
		{"untouched", "5 miles", EntryOptions{AllowValues: true}, "5 miles"},
		{"values stripped", "5 miles", EntryOptions{}, "miles"},
		{"value required", "miles", EntryOptions{AllowValues: true, RequireValues: true}, "1 miles"},
		{"value present", "3 miles", EntryOptions{AllowValues: true, RequireValues: true}, "3 miles"},
		{"nothing to require for", "", EntryOptions{AllowValues: true, RequireValues: true}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sanitize(tt.in, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Sanitize("5 miles", EntryOptions{RequireValues: true})
	assert.ErrorIs(t, err, ErrEntryOptions)
}

func TestDidYouMean(t *testing.T) {
	options := UnitOptions()

	assert.Equal(t, "mile", DidYouMean("mlie", options))
	assert.Equal(t, "minute", DidYouMean("MINUTS", options))
	assert.Equal(t, "", DidYouMean("parsec", []string{"mile", "meter"}))
	assert.Equal(t, "", DidYouMean("  ", options))
}
