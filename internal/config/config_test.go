package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.Equal(t, MaxSearchResults, cfg.Search.MaxResults)
	assert.Equal(t, MatchPrefix, cfg.Search.Match)
	assert.True(t, cfg.Entry.AllowValues)
	assert.False(t, cfg.Entry.RequireValues)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"empty version allowed", func(c *Config) { c.Version = "" }, ""},
		{"minor bump allowed", func(c *Config) { c.Version = "1.4.2" }, ""},
		{"major bump rejected", func(c *Config) { c.Version = "2.0.0" }, "not supported"},
		{"garbage version", func(c *Config) { c.Version = "one" }, "invalid semver"},
		{"bad format", func(c *Config) { c.Output.DefaultFormat = "xml" }, "invalid output format"},
		{"ndjson format", func(c *Config) { c.Output.DefaultFormat = FormatNDJSON }, ""},
		{"negative precision", func(c *Config) { c.Output.Precision = -1 }, "precision"},
		{"too many results", func(c *Config) { c.Search.MaxResults = 51 }, "max_results"},
		{"zero results", func(c *Config) { c.Search.MaxResults = 0 }, "max_results"},
		{"bad match", func(c *Config) { c.Search.Match = "fuzzy" }, "invalid search match"},
		{"require without allow", func(c *Config) {
			c.Entry.AllowValues = false
			c.Entry.RequireValues = true
		}, "require_values"},
		{"batch too big", func(c *Config) { c.Batch.Size = 5000 }, "batch size"},
		{"no concurrency", func(c *Config) { c.Batch.Concurrency = 0 }, "batch concurrency"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "invalid log level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, cfg.Set("output.precision", "3"))
		require.NoError(t, cfg.Set("search.match", "SUBSTRING"))
		require.NoError(t, cfg.Set("entry.require_values", "true"))
		require.NoError(t, cfg.Set("logging.file", "/tmp/Stride.log"))

		v, err := cfg.Get("output.precision")
		require.NoError(t, err)
		assert.Equal(t, 3, v)

		v, err = cfg.Get("search.match")
		require.NoError(t, err)
		assert.Equal(t, "substring", v)

		v, err = cfg.Get("entry.require_values")
		require.NoError(t, err)
		assert.Equal(t, true, v)

		v, err = cfg.Get("logging.file")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/Stride.log", v)
	})

	t.Run("get section", func(t *testing.T) {
		v, err := cfg.Get("batch")
		require.NoError(t, err)
		section, ok := v.(BatchConfig)
		require.True(t, ok)
		assert.Equal(t, cfg.Batch, section)
	})

	t.Run("invalid number", func(t *testing.T) {
		err := cfg.Set("batch.size", "lots")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be a number")
	})

	t.Run("invalid bool", func(t *testing.T) {
		err := cfg.Set("entry.allow_values", "maybe")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be true or false")
	})

	t.Run("unknown key", func(t *testing.T) {
		assert.ErrorIs(t, cfg.Set("cost.budget", "1"), ErrUnknownKey)
		_, err := cfg.Get("nope")
		assert.ErrorIs(t, err, ErrUnknownKey)
	})
}

func TestConfig_List(t *testing.T) {
	list := Default().List()
	assert.Len(t, list, len(Keys()))
	assert.Equal(t, "table", list["output.default_format"])
	assert.Equal(t, 50, list["search.max_results"])
}

func TestConfig_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.SetConfigPath(path)
	cfg.Search.MaxResults = 12
	cfg.Batch.Concurrency = 9
	require.NoError(t, cfg.Save())
	assert.Equal(t, path, cfg.ConfigPath())

	loaded := Default()
	loaded.SetConfigPath(path)
	require.NoError(t, loaded.Load())
	assert.Equal(t, 12, loaded.Search.MaxResults)
	assert.Equal(t, 9, loaded.Batch.Concurrency)
	assert.Equal(t, cfg.Output, loaded.Output)
}

func TestConfig_SaveWithoutPath(t *testing.T) {
	assert.Error(t, Default().Save())
	assert.Error(t, Default().Load())
}

func TestNew_ReadsFileAndEnv(t *testing.T) {
	home := stubHome(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(`
output:
  precision: 5
logging:
  level: warn
`), 0o600))

	cfg := New()
	assert.Equal(t, filepath.Join(home, "config.yaml"), cfg.ConfigPath())
	assert.Equal(t, 5, cfg.Output.Precision)
	assert.Equal(t, "table", cfg.Output.DefaultFormat, "unset keys keep defaults")
	assert.Equal(t, "warn", cfg.Logging.Level)

	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvOutputFormat, "json")
	t.Setenv(EnvLogFormat, "json")
	cfg = New()
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.Equal(t, "json", cfg.Logging.Format)
}
