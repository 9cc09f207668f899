package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/RowanDark/cryptokit/internal/env"
)

// Config captures the cryptokit configuration resolved from defaults,
// optional files and environment overrides.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Analysis AnalysisConfig `yaml:"analysis"`
	// RecipesDir holds saved pipeline recipes. Empty keeps recipes in memory.
	RecipesDir string `yaml:"recipes_dir"`
	// AuditLog is the JSON-lines audit file. Empty disables file output.
	AuditLog string `yaml:"audit_log"`
	// MetricsAddr is the listen address for the metrics endpoint.
	MetricsAddr string `yaml:"metrics_addr"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// FetchConfig controls the challenge data client.
type FetchConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// AnalysisConfig holds the defaults used by the key recovery engine.
type AnalysisConfig struct {
	MinKeyLength int    `yaml:"min_key_length"`
	MaxKeyLength int    `yaml:"max_key_length"`
	Method       string `yaml:"method"`
	Keyspace     string `yaml:"keyspace"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Fetch: FetchConfig{
			BaseURL: "https://cryptopals.com/static/challenge-data",
			Timeout: 30 * time.Second,
		},
		Analysis: AnalysisConfig{
			MinKeyLength: 2,
			MaxKeyLength: 40,
			Method:       "english",
			Keyspace:     "bytes",
		},
		MetricsAddr: "127.0.0.1:9464",
	}
}

// Load resolves the configuration using defaults, configuration files and
// environment overrides. Files are applied in this order, later files
// overriding earlier ones:
//  1. ~/.cryptokit/config.yaml
//  2. ./cryptokit.yml
//
// Environment variables prefixed with CRYPTOKIT_ have the highest precedence.
func Load() (Config, error) {
	cfg := Default()

	if err := loadHomeConfig(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadLocalConfig(&cfg); err != nil {
		return Config{}, err
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that no component could use.
func (c Config) Validate() error {
	if c.Analysis.MinKeyLength < 1 {
		return fmt.Errorf("analysis.min_key_length must be at least 1, got %d", c.Analysis.MinKeyLength)
	}
	if c.Analysis.MaxKeyLength < c.Analysis.MinKeyLength {
		return fmt.Errorf("analysis.max_key_length %d is below min_key_length %d", c.Analysis.MaxKeyLength, c.Analysis.MinKeyLength)
	}
	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("fetch.timeout must not be negative")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

func loadHomeConfig(cfg *Config) error {
	home, err := os.UserHomeDir()
	if err != nil {
		// No home directory is not fatal; the defaults stand.
		return nil
	}
	return loadFile(cfg, filepath.Join(home, ".cryptokit", "config.yaml"))
}

func loadLocalConfig(cfg *Config) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determine working directory: %w", err)
	}
	return loadFile(cfg, filepath.Join(wd, "cryptokit.yml"))
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := applyFileConfig(cfg, data); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// fileConfig mirrors Config with pointer fields so a file only overrides the
// keys it actually sets.
type fileConfig struct {
	Log *struct {
		Level  *string `yaml:"level"`
		Format *string `yaml:"format"`
	} `yaml:"log"`
	Fetch *struct {
		BaseURL *string `yaml:"base_url"`
		Timeout *string `yaml:"timeout"`
	} `yaml:"fetch"`
	Analysis *struct {
		MinKeyLength *int    `yaml:"min_key_length"`
		MaxKeyLength *int    `yaml:"max_key_length"`
		Method       *string `yaml:"method"`
		Keyspace     *string `yaml:"keyspace"`
	} `yaml:"analysis"`
	RecipesDir  *string `yaml:"recipes_dir"`
	AuditLog    *string `yaml:"audit_log"`
	MetricsAddr *string `yaml:"metrics_addr"`
}

func applyFileConfig(cfg *Config, data []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}

	if fc.Log != nil {
		setString(&cfg.Log.Level, fc.Log.Level)
		setString(&cfg.Log.Format, fc.Log.Format)
	}
	if fc.Fetch != nil {
		setString(&cfg.Fetch.BaseURL, fc.Fetch.BaseURL)
		if fc.Fetch.Timeout != nil {
			d, err := time.ParseDuration(*fc.Fetch.Timeout)
			if err != nil {
				return fmt.Errorf("fetch.timeout: %w", err)
			}
			cfg.Fetch.Timeout = d
		}
	}
	if fc.Analysis != nil {
		if fc.Analysis.MinKeyLength != nil {
			cfg.Analysis.MinKeyLength = *fc.Analysis.MinKeyLength
		}
		if fc.Analysis.MaxKeyLength != nil {
			cfg.Analysis.MaxKeyLength = *fc.Analysis.MaxKeyLength
		}
		setString(&cfg.Analysis.Method, fc.Analysis.Method)
		setString(&cfg.Analysis.Keyspace, fc.Analysis.Keyspace)
	}
	setString(&cfg.RecipesDir, fc.RecipesDir)
	setString(&cfg.AuditLog, fc.AuditLog)
	setString(&cfg.MetricsAddr, fc.MetricsAddr)
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func applyEnvOverrides(cfg *Config) error {
	for name, dst := range map[string]*string{
		"LOG_LEVEL":    &cfg.Log.Level,
		"LOG_FORMAT":   &cfg.Log.Format,
		"BASE_URL":     &cfg.Fetch.BaseURL,
		"METHOD":       &cfg.Analysis.Method,
		"KEYSPACE":     &cfg.Analysis.Keyspace,
		"RECIPES_DIR":  &cfg.RecipesDir,
		"AUDIT_LOG":    &cfg.AuditLog,
		"METRICS_ADDR": &cfg.MetricsAddr,
	} {
		if v, ok := env.Get(name); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	for name, dst := range map[string]*int{
		"MIN_KEY_LENGTH": &cfg.Analysis.MinKeyLength,
		"MAX_KEY_LENGTH": &cfg.Analysis.MaxKeyLength,
	} {
		v, ok := env.Get(name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", env.Prefix, name, err)
		}
		*dst = n
	}

	if v, ok := env.Get("FETCH_TIMEOUT"); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sFETCH_TIMEOUT: %w", env.Prefix, err)
		}
		cfg.Fetch.Timeout = d
	}
	return nil
}
