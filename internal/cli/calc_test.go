package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/stride/internal/cli"
	"github.com/rshade/stride/internal/engine"
)

// calcResult mirrors the JSON written by calc and batch.
type calcResult struct {
	Line       int                  `json:"line"`
	Input      string               `json:"input"`
	Expression string               `json:"expression"`
	Result     *cli.MeasurementView `json:"result"`
	Error      string               `json:"error"`
}

func TestCalcCmd(t *testing.T) {
	setupCLITest(t)

	t.Run("race time", func(t *testing.T) {
		out, _, err := runCLI(t, nil, "calc", "10", "km", "at", "5:00", "min/km", "-o", "json")
		require.NoError(t, err)

		var res calcResult
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.Equal(t, "10 km at 5:00 min/km", res.Input)
		require.NotNil(t, res.Result)
		assert.Equal(t, "duration", res.Result.Kind)
		assert.InDelta(t, 50, *res.Result.Value, 1e-9)
		assert.Empty(t, res.Error)
	})

	t.Run("table", func(t *testing.T) {
		out, _, err := runCLI(t, nil, "calc", "10 km to mile")
		require.NoError(t, err)
		assert.Contains(t, out, "6.21")
		assert.Contains(t, out, "miles")
	})

	t.Run("syntax error", func(t *testing.T) {
		out, _, err := runCLI(t, nil, "calc", "10 km to")
		require.ErrorIs(t, err, engine.ErrMissingClause)
		assert.Empty(t, out)
	})

	t.Run("invalid result is rendered", func(t *testing.T) {
		out, _, err := runCLI(t, nil, "calc", "10 km at 3 miles", "-o", "json")
		require.Error(t, err)

		var res calcResult
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		require.NotNil(t, res.Result)
		assert.Equal(t, "invalid", res.Result.Kind)
		assert.NotEmpty(t, res.Error)
	})
}

func TestBatchCmd(t *testing.T) {
	setupCLITest(t)

	input := "10 km to mile\n# comment\n\n5 kph for 3 hours to mile\n"

	t.Run("stdin ndjson keeps order", func(t *testing.T) {
		out, _, err := runCLI(t, strings.NewReader(input), "batch", "-o", "ndjson", "--batch-size", "1")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 2)

		var first, second calcResult
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
		assert.Equal(t, 1, first.Line)
		assert.InDelta(t, 6.213712, *first.Result.Value, 1e-5)
		assert.Equal(t, 4, second.Line)
		assert.InDelta(t, 9.320568, *second.Result.Value, 1e-5)
	})

	t.Run("file json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "runs.txt")
		require.NoError(t, os.WriteFile(path, []byte(input), 0o600))

		out, _, err := runCLI(t, nil, "batch", path, "-o", "json")
		require.NoError(t, err)

		var results []calcResult
		require.NoError(t, json.Unmarshal([]byte(out), &results))
		require.Len(t, results, 2)
		assert.Equal(t, "5 kph for 3 hours to mile", results[1].Input)
	})

	t.Run("failures rendered then reported", func(t *testing.T) {
		out, _, err := runCLI(t, strings.NewReader("10 km to mile\n10 parsecs\n"), "batch")
		require.ErrorIs(t, err, cli.ErrBatchFailures)
		assert.Contains(t, err.Error(), "1 of 2")
		assert.Contains(t, out, "LINE")
		assert.Contains(t, out, "error:")
	})

	t.Run("empty input", func(t *testing.T) {
		out, _, err := runCLI(t, strings.NewReader("# nothing\n"), "batch", "-o", "json")
		require.NoError(t, err)
		assert.JSONEq(t, "[]", out)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := runCLI(t, nil, "batch", filepath.Join(t.TempDir(), "nope.txt"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "opening")
	})

	t.Run("invalid batch size", func(t *testing.T) {
		_, _, err := runCLI(t, strings.NewReader(input), "batch", "--batch-size", "100000")
		assert.Error(t, err)
	})
}
