package cli_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/stride/internal/cli"
	"github.com/rshade/stride/internal/metric"
)

func decodeMeasurements(t *testing.T, out string) []cli.MeasurementView {
	t.Helper()
	var views []cli.MeasurementView
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	return views
}

func TestParseCmd(t *testing.T) {
	setupCLITest(t)

	t.Run("table", func(t *testing.T) {
		out, _, err := runCLI(t, nil, "parse", "26.2", "miles")
		require.NoError(t, err)
		assert.Contains(t, out, "KIND")
		assert.Contains(t, out, "distance")
		assert.Contains(t, out, "26.2")
		assert.Contains(t, out, "miles")
	})

	t.Run("ambiguous json", func(t *testing.T) {
		out, _, err := runCLI(t, nil, "parse", "5 m", "--output", "json")
		require.NoError(t, err)

		views := decodeMeasurements(t, out)
		require.Len(t, views, 2)
		assert.Equal(t, "distance", views[0].Kind)
		assert.Equal(t, "meters", views[0].Unit)
		assert.Equal(t, "duration", views[1].Kind)
		assert.Equal(t, "minutes", views[1].Unit)
	})

	t.Run("invalid is rendered then returned", func(t *testing.T) {
		out, _, err := runCLI(t, nil, "parse", "banana", "-o", "ndjson")
		require.Error(t, err)

		var view cli.MeasurementView
		require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &view))
		assert.Equal(t, "invalid", view.Kind)
		assert.NotEmpty(t, view.Reason)
	})
}

func TestValueCmd(t *testing.T) {
	setupCLITest(t)

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{name: "qualifier", args: []string{"value", "2", "half", "marathons"}, want: "1\n"},
		{name: "quarter", args: []string{"value", "quarter"}, want: "0.25\n"},
		{name: "clock time", args: []string{"value", "--hms", "1:02:03"}, want: "3,723\n"},
		{name: "no number", args: []string{"value", "miles"}, want: "-\n", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, nil, tt.args...)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, out)
		})
	}

	t.Run("json", func(t *testing.T) {
		out, _, err := runCLI(t, nil, "value", "--hms", "1:02:03", "-o", "json")
		require.NoError(t, err)
		assert.JSONEq(t, `{"input":"1:02:03","value":3723}`, out)
	})
}

func TestConvertCmd(t *testing.T) {
	setupCLITest(t)

	t.Run("distance", func(t *testing.T) {
		out, _, err := runCLI(t, nil, "convert", "10 km", "mile", "-o", "json")
		require.NoError(t, err)

		views := decodeMeasurements(t, out)
		require.Len(t, views, 1)
		require.NotNil(t, views[0].Value)
		assert.InDelta(t, 6.213712, *views[0].Value, 1e-5)
		assert.Equal(t, "miles", views[0].Unit)
	})

	t.Run("ambiguous input picks the reading that converts", func(t *testing.T) {
		out, _, err := runCLI(t, nil, "convert", "30 m", "hour", "-o", "json")
		require.NoError(t, err)

		views := decodeMeasurements(t, out)
		require.Len(t, views, 1)
		assert.Equal(t, "duration", views[0].Kind)
		assert.InDelta(t, 0.5, *views[0].Value, 1e-9)
	})

	t.Run("incompatible", func(t *testing.T) {
		out, _, err := runCLI(t, nil, "convert", "10 km", "hours")
		require.Error(t, err)
		assert.Contains(t, out, "invalid")
	})

	t.Run("unreadable", func(t *testing.T) {
		_, _, err := runCLI(t, nil, "convert", "banana", "miles")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `reading "banana"`)
	})
}

func TestAtCmd(t *testing.T) {
	setupCLITest(t)

	t.Run("race time", func(t *testing.T) {
		out, _, err := runCLI(t, nil, "at", "10 km", "5:00 min/km", "-o", "json")
		require.NoError(t, err)

		views := decodeMeasurements(t, out)
		require.Len(t, views, 1)
		assert.Equal(t, "duration", views[0].Kind)
		assert.InDelta(t, 50, *views[0].Value, 1e-9)
	})

	t.Run("for alias", func(t *testing.T) {
		out, _, err := runCLI(t, nil, "for", "26.2 miles", "4 hours")
		require.NoError(t, err)
		assert.Contains(t, out, "pace")
		assert.Contains(t, out, "6.55")
	})

	t.Run("same kind is rendered invalid", func(t *testing.T) {
		out, _, err := runCLI(t, nil, "at", "1 km", "500 meters", "-o", "json")
		require.Error(t, err)
		assert.ErrorIs(t, err, metric.ErrIncompatible)

		views := decodeMeasurements(t, out)
		require.Len(t, views, 1)
		assert.Equal(t, "invalid", views[0].Kind)
	})
}

func TestSuggestAndComplimentCmds(t *testing.T) {
	setupCLITest(t)

	out, _, err := runCLI(t, nil, "suggest", "5 km", "-o", "json")
	require.NoError(t, err)
	views := decodeMeasurements(t, out)
	require.NotEmpty(t, views)
	for _, v := range views {
		assert.Equal(t, "distance", v.Kind)
	}

	out, _, err = runCLI(t, nil, "compliment", "10 km", "-o", "json")
	require.NoError(t, err)
	views = decodeMeasurements(t, out)
	kinds := make([]string, 0, len(views))
	for _, v := range views {
		kinds = append(kinds, v.Kind)
		assert.Nil(t, v.Value)
	}
	assert.ElementsMatch(t, []string{metric.KindDuration.String(), metric.KindPace.String()}, kinds)

	_, _, err = runCLI(t, nil, "compliment", "banana")
	assert.Error(t, err)
}

func TestOutputFormatRejected(t *testing.T) {
	setupCLITest(t)

	_, _, err := runCLI(t, nil, "parse", "5 km", "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}
