// Package config loads and validates the application configuration:
// defaults first, then an optional YAML file overlay, then environment
// variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/circulens/circulens/internal/lca"
)

// Environment variable overrides, applied after the file overlay.
const (
	EnvLogLevel   = "CIRCULENS_LOG_LEVEL"
	EnvLogFormat  = "CIRCULENS_LOG_FORMAT"
	EnvListenAddr = "CIRCULENS_LISTEN_ADDR"
)

// Server holds HTTP server settings.
type Server struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	MaxRequestBytes int64         `yaml:"maxRequestBytes"`
}

// Logging holds logger settings.
type Logging struct {
	// Level is a zerolog level name.
	Level string `yaml:"level"`

	// Format is "console" or "json".
	Format string `yaml:"format"`
}

// Scoring selects the circularity weighting policy.
type Scoring struct {
	// Policy names a built-in policy ("standard", "quick-compare") or
	// "custom" to use the Custom weights.
	Policy string `yaml:"policy"`

	// Custom holds explicit weights, consulted only when Policy is
	// "custom".
	Custom *lca.ScoringPolicy `yaml:"custom"`
}

// Artifacts holds optional override paths for the static artifacts. Empty
// paths keep the embedded defaults.
type Artifacts struct {
	FactorDataset string `yaml:"factorDataset"`
	EnergyModel   string `yaml:"energyModel"`
	TreeModel     string `yaml:"treeModel"`
}

// Config is the full application configuration.
type Config struct {
	Server    Server    `yaml:"server"`
	Logging   Logging   `yaml:"logging"`
	Scoring   Scoring   `yaml:"scoring"`
	Artifacts Artifacts `yaml:"artifacts"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		Server: Server{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxRequestBytes: 1 << 20, // 1 MiB: requests are small JSON documents
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
		Scoring: Scoring{
			Policy: "standard",
		},
	}
}

// Load builds a Config from defaults, an optional YAML file, and the
// environment. A missing file at the default location is not an error; a
// path the caller named explicitly must exist.
func Load(path string, explicit bool) (*Config, error) {
	cfg := New()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, unmarshalErr)
			}
		case os.IsNotExist(err) && !explicit:
			// Defaults stand.
		default:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv applies environment overrides using the given lookup, injectable
// for tests.
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookup(EnvListenAddr); ok && v != "" {
		c.Server.Addr = v
	}
}

// Validate checks the configuration invariants.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	if c.Server.MaxRequestBytes <= 0 {
		return fmt.Errorf("server.maxRequestBytes must be > 0, got %d", c.Server.MaxRequestBytes)
	}
	for name, d := range map[string]time.Duration{
		"server.readTimeout":     c.Server.ReadTimeout,
		"server.writeTimeout":    c.Server.WriteTimeout,
		"server.shutdownTimeout": c.Server.ShutdownTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be > 0, got %s", name, d)
		}
	}

	_, err := c.ScoringPolicy()
	return err
}

// ScoringPolicy resolves the configured circularity weighting policy.
func (c *Config) ScoringPolicy() (lca.ScoringPolicy, error) {
	switch c.Scoring.Policy {
	case "", "standard":
		return lca.StandardPolicy(), nil
	case "quick-compare":
		return lca.QuickComparePolicy(), nil
	case "custom":
		if c.Scoring.Custom == nil {
			return lca.ScoringPolicy{}, errors.New(`scoring.policy "custom" requires scoring.custom weights`)
		}
		policy := *c.Scoring.Custom
		if policy.Name == "" {
			policy.Name = "custom"
		}
		if err := policy.Validate(); err != nil {
			return lca.ScoringPolicy{}, err
		}
		return policy, nil
	default:
		return lca.ScoringPolicy{}, fmt.Errorf("unknown scoring policy %q", c.Scoring.Policy)
	}
}
