// Package config loads, validates and persists stride's YAML configuration.
//
// The global file lives at $STRIDE_HOME/config.yaml (default ~/.stride).
// A project may carry its own .stride/config.yaml whose top-level sections
// replace the global ones (see ShallowMergeYAML). Environment variables are
// applied last.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/stride/internal/engine/batch"
)

// Version handling.
const (
	// CurrentVersion is written into new configuration files.
	CurrentVersion = "1.0.0"

	// SupportedVersions is the semver constraint a file's version must meet.
	SupportedVersions = "^1.0.0"
)

// Output formats.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// Search match modes.
const (
	MatchPrefix    = "prefix"
	MatchSubstring = "substring"
)

// Limits.
const (
	// MaxSearchResults caps how many options a search may return.
	MaxSearchResults = 50

	// MaxPrecision is the largest number of decimals output may request.
	MaxPrecision = 10

	// MaxConcurrency bounds batch.concurrency.
	MaxConcurrency = 64
)

const (
	configFileName = "config.yaml"
	outputTypeFile = "file"
)

// Environment variables read by the configuration layer.
const (
	EnvHome         = "STRIDE_HOME"
	EnvProjectDir   = "STRIDE_PROJECT_DIR"
	EnvOutputFormat = "STRIDE_OUTPUT_FORMAT"
	EnvLogLevel     = "STRIDE_LOG_LEVEL"
	EnvLogFormat    = "STRIDE_LOG_FORMAT"
)

// ErrUnknownKey is returned by Get and Set for keys that name no setting.
var ErrUnknownKey = errors.New("unknown configuration key")

// Config is the full stride configuration.
type Config struct {
	Version string        `yaml:"version"`
	Output  OutputConfig  `yaml:"output"`
	Search  SearchConfig  `yaml:"search"`
	Entry   EntryConfig   `yaml:"entry"`
	Batch   BatchConfig   `yaml:"batch"`
	Logging LoggingConfig `yaml:"logging"`

	configPath string
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Precision     int    `yaml:"precision"`
}

// SearchConfig controls unit autocomplete.
type SearchConfig struct {
	MaxResults int    `yaml:"max_results"`
	Match      string `yaml:"match"`
}

// EntryConfig controls how free-text entry is sanitized.
type EntryConfig struct {
	AllowValues   bool `yaml:"allow_values"`
	RequireValues bool `yaml:"require_values"`
}

// BatchConfig controls the batch command.
type BatchConfig struct {
	Size        int `yaml:"size"`
	Concurrency int `yaml:"concurrency"`
}

// LoggingConfig controls diagnostic logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns a Config holding built-in defaults only. It reads no
// files and no environment.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Precision:     2,
		},
		Search: SearchConfig{
			MaxResults: MaxSearchResults,
			Match:      MatchPrefix,
		},
		Entry: EntryConfig{
			AllowValues: true,
		},
		Batch: BatchConfig{
			Size:        batch.DefaultBatchSize,
			Concurrency: batch.DefaultConcurrency,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// New returns the configuration from the global config file, falling back to
// defaults for anything the file does not set, with environment overrides
// applied. A missing or unreadable file yields defaults.
func New() *Config {
	cfg := Default()

	if dir, err := GetConfigDir(); err == nil {
		cfg.configPath = filepath.Join(dir, configFileName)
		_ = cfg.Load()
	}

	cfg.applyEnvOverrides()
	return cfg
}

// ConfigPath returns the file Save writes to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file Load and Save use.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Load reads the config file over the current values.
func (c *Config) Load() error {
	if c.configPath == "" {
		return errors.New("no configuration path set")
	}

	data, err := os.ReadFile(c.configPath)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", c.configPath, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", c.configPath, err)
	}
	return nil
}

// Save writes the configuration as YAML, creating its directory as needed.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("no configuration path set")
	}

	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", c.configPath, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvOutputFormat); v != "" {
		c.Output.DefaultFormat = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = strings.ToLower(v)
	}
}

// Validate reports the first setting that is out of range.
func (c *Config) Validate() error {
	if err := c.validateVersion(); err != nil {
		return err
	}

	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON, FormatNDJSON:
	default:
		return fmt.Errorf("invalid output format %q: must be one of table, json, ndjson", c.Output.DefaultFormat)
	}
	if c.Output.Precision < 0 || c.Output.Precision > MaxPrecision {
		return fmt.Errorf("output precision must be between 0 and %d, got %d", MaxPrecision, c.Output.Precision)
	}

	if c.Search.MaxResults < 1 || c.Search.MaxResults > MaxSearchResults {
		return fmt.Errorf("search max_results must be between 1 and %d, got %d",
			MaxSearchResults, c.Search.MaxResults)
	}
	switch c.Search.Match {
	case MatchPrefix, MatchSubstring:
	default:
		return fmt.Errorf("invalid search match %q: must be prefix or substring", c.Search.Match)
	}

	if !c.Entry.AllowValues && c.Entry.RequireValues {
		return errors.New("entry require_values needs allow_values")
	}

	if c.Batch.Size < batch.MinBatchSize || c.Batch.Size > batch.MaxBatchSize {
		return fmt.Errorf("batch size must be between %d and %d, got %d",
			batch.MinBatchSize, batch.MaxBatchSize, c.Batch.Size)
	}
	if c.Batch.Concurrency < 1 || c.Batch.Concurrency > MaxConcurrency {
		return fmt.Errorf("batch concurrency must be between 1 and %d, got %d", MaxConcurrency, c.Batch.Concurrency)
	}

	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be console or json", c.Logging.Format)
	}

	return nil
}

func (c *Config) validateVersion() error {
	if c.Version == "" {
		return nil
	}

	v, err := semver.NewVersion(c.Version)
	if err != nil {
		return fmt.Errorf("config version %q has invalid semver format: %w", c.Version, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return fmt.Errorf("parsing version constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("config version %s is not supported (want %s)", c.Version, SupportedVersions)
	}
	return nil
}

// Keys lists every settable key in display order.
func Keys() []string {
	return []string{
		"version",
		"output.default_format",
		"output.precision",
		"search.max_results",
		"search.match",
		"entry.allow_values",
		"entry.require_values",
		"batch.size",
		"batch.concurrency",
		"logging.level",
		"logging.format",
		"logging.file",
	}
}

// Get returns the value at a dotted key. A section name returns the whole
// section struct.
func (c *Config) Get(key string) (interface{}, error) {
	switch strings.ToLower(key) {
	case "version":
		return c.Version, nil
	case "output":
		return c.Output, nil
	case "output.default_format":
		return c.Output.DefaultFormat, nil
	case "output.precision":
		return c.Output.Precision, nil
	case "search":
		return c.Search, nil
	case "search.max_results":
		return c.Search.MaxResults, nil
	case "search.match":
		return c.Search.Match, nil
	case "entry":
		return c.Entry, nil
	case "entry.allow_values":
		return c.Entry.AllowValues, nil
	case "entry.require_values":
		return c.Entry.RequireValues, nil
	case "batch":
		return c.Batch, nil
	case "batch.size":
		return c.Batch.Size, nil
	case "batch.concurrency":
		return c.Batch.Concurrency, nil
	case "logging":
		return c.Logging, nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.format":
		return c.Logging.Format, nil
	case "logging.file":
		return c.Logging.File, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Set parses value for the dotted key and stores it. It does not validate
// ranges; call Validate afterwards.
func (c *Config) Set(key, value string) error {
	switch strings.ToLower(key) {
	case "version":
		c.Version = value
	case "output.default_format":
		c.Output.DefaultFormat = strings.ToLower(value)
	case "output.precision":
		return setInt(&c.Output.Precision, key, value)
	case "search.max_results":
		return setInt(&c.Search.MaxResults, key, value)
	case "search.match":
		c.Search.Match = strings.ToLower(value)
	case "entry.allow_values":
		return setBool(&c.Entry.AllowValues, key, value)
	case "entry.require_values":
		return setBool(&c.Entry.RequireValues, key, value)
	case "batch.size":
		return setInt(&c.Batch.Size, key, value)
	case "batch.concurrency":
		return setInt(&c.Batch.Concurrency, key, value)
	case "logging.level":
		c.Logging.Level = strings.ToLower(value)
	case "logging.format":
		c.Logging.Format = strings.ToLower(value)
	case "logging.file":
		c.Logging.File = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// List returns every key from Keys with its current value.
func (c *Config) List() map[string]interface{} {
	out := make(map[string]interface{}, len(Keys()))
	for _, key := range Keys() {
		v, _ := c.Get(key)
		out[key] = v
	}
	return out
}

func setInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%s must be a number: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%s must be true or false: %w", key, err)
	}
	*dst = b
	return nil
}
