package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsearch/algorithm"
	"github.com/katalvlaran/lvsearch/config"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

// applied builds Options the way an engine does.
func applied(cfg config.Config) algorithm.Options {
	o := algorithm.DefaultOptions()
	for _, opt := range cfg.Options() {
		opt(&o)
	}

	return o
}

func TestDefault_MatchesAlgorithmDefaults(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	o := applied(cfg)
	d := algorithm.DefaultOptions()
	assert.Equal(t, d.Timeout, o.Timeout)
	assert.Equal(t, d.GeneratorTimeout, o.GeneratorTimeout)
	assert.Equal(t, d.PollInterval, o.PollInterval)
	assert.Equal(t, d.MaxExpansions, o.MaxExpansions)
	assert.Equal(t, d.MaxDepth, o.MaxDepth)
	assert.False(t, o.GraphSearch)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	cfg, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "lvsearch.yaml", `
search:
  timeout: 2s
  generator_timeout: 250ms
  max_expansions: 1000
  graph_search: true
observability:
  log_level: debug
  metrics_enabled: true
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Search.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Search.GeneratorTimeout)
	assert.Equal(t, 1000, cfg.Search.MaxExpansions)
	assert.True(t, cfg.Search.GraphSearch)
	assert.True(t, cfg.Observability.MetricsEnabled)
	assert.Equal(t, slog.LevelDebug, cfg.Level())

	// unset keys keep their defaults
	assert.Equal(t, algorithm.DefaultPollInterval, cfg.Search.PollInterval)
	assert.Equal(t, -1, cfg.Search.MaxDepth)

	o := applied(cfg)
	assert.Equal(t, 2*time.Second, o.Timeout)
	assert.Equal(t, 1000, o.MaxExpansions)
	assert.True(t, o.GraphSearch)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "lvsearch.json", `{"search": {"max_depth": 4, "strict_invariants": true}}`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Search.MaxDepth)
	assert.True(t, cfg.Search.StrictInvariants)
}

func TestLoad_Malformed(t *testing.T) {
	path := writeFile(t, "bad.yaml", "search: [1, 2\n")
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "lvsearch.yaml", "search:\n  max_expansions: 10\n  timeout: 1s\n")
	t.Setenv("LVSEARCH_MAX_EXPANSIONS", "20")
	t.Setenv("LVSEARCH_POLL_INTERVAL", "5ms")
	t.Setenv("LVSEARCH_GRAPH_SEARCH", "true")
	t.Setenv("LVSEARCH_LOG_LEVEL", "WARN")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Search.MaxExpansions)
	assert.Equal(t, time.Second, cfg.Search.Timeout)
	assert.Equal(t, 5*time.Millisecond, cfg.Search.PollInterval)
	assert.True(t, cfg.Search.GraphSearch)
	assert.Equal(t, slog.LevelWarn, cfg.Level())
}

func TestLoad_BadEnv(t *testing.T) {
	cases := map[string]string{
		"LVSEARCH_TIMEOUT":        "soon",
		"LVSEARCH_MAX_DEPTH":      "deep",
		"LVSEARCH_TRACING_ENABLED": "maybe",
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(name, value)
			_, err := config.Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*config.Config)
	}{
		{"NegativeTimeout", func(c *config.Config) { c.Search.Timeout = -time.Second }},
		{"NegativeGeneratorTimeout", func(c *config.Config) { c.Search.GeneratorTimeout = -time.Second }},
		{"ZeroPollInterval", func(c *config.Config) { c.Search.PollInterval = 0 }},
		{"NegativeExpansions", func(c *config.Config) { c.Search.MaxExpansions = -1 }},
		{"DepthBelowUnlimited", func(c *config.Config) { c.Search.MaxDepth = -2 }},
		{"UnknownLevel", func(c *config.Config) { c.Observability.LogLevel = "loud" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
		})
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"Info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"ERROR": slog.LevelError,
	} {
		got, err := config.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := config.ParseLevel("verbose")
	assert.Error(t, err)
}
