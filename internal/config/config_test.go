package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circulens/circulens/internal/lca"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "standard", cfg.Scoring.Policy)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":9090"
logging:
  level: debug
scoring:
  policy: quick-compare
artifacts:
  treeModel: /opt/models/tree.json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/opt/models/tree.json", cfg.Artifacts.TreeModel)

	// Unset fields keep their defaults.
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)

	policy, err := cfg.ScoringPolicy()
	require.NoError(t, err)
	assert.Equal(t, "quick-compare", policy.Name)
}

func TestLoad_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")

	t.Run("default location falls back to defaults", func(t *testing.T) {
		cfg, err := Load(missing, false)
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Server.Addr)
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := Load(missing, true)
		assert.Error(t, err)
	})
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o600))

	_, err := Load(path, true)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg := New()
	env := map[string]string{
		EnvLogLevel:   "trace",
		EnvListenAddr: ":7777",
	}
	cfg.applyEnv(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})

	assert.Equal(t, "trace", cfg.Logging.Level)
	assert.Equal(t, ":7777", cfg.Server.Addr)
	assert.Equal(t, "console", cfg.Logging.Format, "unset vars leave defaults")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty addr", mutate: func(c *Config) { c.Server.Addr = "" }},
		{name: "zero read timeout", mutate: func(c *Config) { c.Server.ReadTimeout = 0 }},
		{name: "negative request size", mutate: func(c *Config) { c.Server.MaxRequestBytes = -1 }},
		{name: "unknown policy", mutate: func(c *Config) { c.Scoring.Policy = "bespoke" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestScoringPolicy_Custom(t *testing.T) {
	t.Run("valid custom weights", func(t *testing.T) {
		cfg := New()
		cfg.Scoring.Policy = "custom"
		cfg.Scoring.Custom = &lca.ScoringPolicy{
			RecycledWeight: 0.5,
			ReuseWeight:    0.25,
			RecoveryWeight: 0.25,
		}

		policy, err := cfg.ScoringPolicy()
		require.NoError(t, err)
		assert.Equal(t, "custom", policy.Name)
		assert.InDelta(t, 0.5, policy.RecycledWeight, 1e-9)
	})

	t.Run("custom without weights", func(t *testing.T) {
		cfg := New()
		cfg.Scoring.Policy = "custom"
		_, err := cfg.ScoringPolicy()
		assert.Error(t, err)
	})

	t.Run("custom weights must sum to one", func(t *testing.T) {
		cfg := New()
		cfg.Scoring.Policy = "custom"
		cfg.Scoring.Custom = &lca.ScoringPolicy{RecycledWeight: 0.5}
		_, err := cfg.ScoringPolicy()
		assert.Error(t, err)
	})
}
