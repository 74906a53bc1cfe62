package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvsearch/algorithm"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "LVSEARCH_"

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds the settings of a search run and of its observability.
//
// Thread Safety: safe to read concurrently, not safe to modify after creation.
type Config struct {
	// Search contains the engine parameters.
	Search SearchConfig `json:"search" yaml:"search"`

	// Observability contains logging, tracing and metrics settings.
	Observability ObservabilityConfig `json:"observability" yaml:"observability"`
}

// SearchConfig mirrors algorithm.Options.
type SearchConfig struct {
	Timeout          time.Duration `json:"timeout" yaml:"timeout"`
	GeneratorTimeout time.Duration `json:"generator_timeout" yaml:"generator_timeout"`
	PollInterval     time.Duration `json:"poll_interval" yaml:"poll_interval"`
	MaxExpansions    int           `json:"max_expansions" yaml:"max_expansions"`
	MaxDepth         int           `json:"max_depth" yaml:"max_depth"`
	StrictInvariants bool          `json:"strict_invariants" yaml:"strict_invariants"`
	GraphSearch      bool          `json:"graph_search" yaml:"graph_search"`
}

// ObservabilityConfig contains observability settings.
type ObservabilityConfig struct {
	LogLevel       string `json:"log_level" yaml:"log_level"`
	TracingEnabled bool   `json:"tracing_enabled" yaml:"tracing_enabled"`
	MetricsEnabled bool   `json:"metrics_enabled" yaml:"metrics_enabled"`
}

// Default returns the configuration matching algorithm.DefaultOptions, with
// info logging and tracing and metrics disabled.
func Default() Config {
	return Config{
		Search: SearchConfig{
			PollInterval: algorithm.DefaultPollInterval,
			MaxDepth:     -1,
		},
		Observability: ObservabilityConfig{
			LogLevel: "info",
		},
	}
}

// Load loads configuration with priority: env > file > defaults.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	if err := loadEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	// YAML first, then JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return fmt.Errorf("parse (tried YAML and JSON): YAML error: %v, JSON error: %w", err, jsonErr)
		}
	}

	return nil
}

// loadEnv applies LVSEARCH_* overrides. Unlike the file, a malformed
// variable is an error rather than silently ignored.
func loadEnv(cfg *Config) error {
	durations := map[string]*time.Duration{
		"TIMEOUT":           &cfg.Search.Timeout,
		"GENERATOR_TIMEOUT": &cfg.Search.GeneratorTimeout,
		"POLL_INTERVAL":     &cfg.Search.PollInterval,
	}
	for name, dst := range durations {
		if v, ok := lookup(name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return envError(name, err)
			}
			*dst = d
		}
	}

	ints := map[string]*int{
		"MAX_EXPANSIONS": &cfg.Search.MaxExpansions,
		"MAX_DEPTH":      &cfg.Search.MaxDepth,
	}
	for name, dst := range ints {
		if v, ok := lookup(name); ok {
			i, err := strconv.Atoi(v)
			if err != nil {
				return envError(name, err)
			}
			*dst = i
		}
	}

	bools := map[string]*bool{
		"STRICT_INVARIANTS": &cfg.Search.StrictInvariants,
		"GRAPH_SEARCH":      &cfg.Search.GraphSearch,
		"TRACING_ENABLED":   &cfg.Observability.TracingEnabled,
		"METRICS_ENABLED":   &cfg.Observability.MetricsEnabled,
	}
	for name, dst := range bools {
		if v, ok := lookup(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return envError(name, err)
			}
			*dst = b
		}
	}

	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.Observability.LogLevel = v
	}

	return nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}

	return strings.TrimSpace(v), true
}

func envError(name string, err error) error {
	return fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err)
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	s := c.Search
	switch {
	case s.Timeout < 0:
		return fmt.Errorf("%w: timeout must be >= 0", ErrInvalid)
	case s.GeneratorTimeout < 0:
		return fmt.Errorf("%w: generator_timeout must be >= 0", ErrInvalid)
	case s.PollInterval <= 0:
		return fmt.Errorf("%w: poll_interval must be > 0", ErrInvalid)
	case s.MaxExpansions < 0:
		return fmt.Errorf("%w: max_expansions must be >= 0", ErrInvalid)
	case s.MaxDepth < -1:
		return fmt.Errorf("%w: max_depth must be >= -1", ErrInvalid)
	}
	if _, err := ParseLevel(c.Observability.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return nil
}

// Options converts the search settings into algorithm options. Logger,
// tracer, registry and observers are left to the caller.
func (c Config) Options() []algorithm.Option {
	s := c.Search
	opts := []algorithm.Option{
		algorithm.WithTimeout(s.Timeout),
		algorithm.WithGeneratorTimeout(s.GeneratorTimeout),
		algorithm.WithPollInterval(s.PollInterval),
		algorithm.WithMaxExpansions(s.MaxExpansions),
		algorithm.WithMaxDepth(s.MaxDepth),
		algorithm.WithStrictInvariants(s.StrictInvariants),
	}
	if s.GraphSearch {
		opts = append(opts, algorithm.WithGraphSearch())
	}

	return opts
}

// Level returns the configured slog level, or slog.LevelInfo if the level
// does not parse.
func (c Config) Level() slog.Level {
	l, err := ParseLevel(c.Observability.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}

	return l
}

// ParseLevel parses "debug", "info", "warn" or "error" (any case). An empty
// string is info.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level %q: %w", s, err)
	}

	return l, nil
}
