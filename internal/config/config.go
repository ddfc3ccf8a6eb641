// Package config provides environment-variable-first configuration loading
// with optional YAML file fallback for the mailprep pipeline.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the complete application configuration.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Features FeaturesConfig `yaml:"features"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// InputConfig locates the raw email archive.
type InputConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // maildir, mbox, or empty to detect
}

// PipelineConfig holds text normalization settings.
type PipelineConfig struct {
	Workers  int      `yaml:"workers"`
	Stages   []string `yaml:"stages"`
	StemMode string   `yaml:"stem_mode"`
}

// FeaturesConfig holds the TF-IDF vocabulary bounds.
type FeaturesConfig struct {
	MaxFeatures int     `yaml:"max_features"`
	MaxDF       float64 `yaml:"max_df"`
	MinDF       int     `yaml:"min_df"`
}

// OutputConfig holds report file paths. Empty paths disable the report.
type OutputConfig struct {
	Records    string `yaml:"records"`
	Vocabulary string `yaml:"vocabulary"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load loads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.applyEnvVars()
	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file as the base layer,
// then overrides with environment variables.
func LoadFromFile(path string) (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment variables always override YAML values
	cfg.applyEnvVars()

	return cfg, nil
}

// Validate reports settings that can never produce a run.
// Out-of-range document frequency bounds are not errors; fitting clamps them.
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return fmt.Errorf("input path is required")
	}
	switch strings.ToLower(c.Input.Format) {
	case "", "maildir", "mbox":
	default:
		return fmt.Errorf("unknown input format %q", c.Input.Format)
	}
	if c.Pipeline.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Pipeline.Workers)
	}
	return nil
}

// applyDefaults sets sensible default values for all configuration fields.
func (c *Config) applyDefaults() {
	c.Pipeline.Workers = 4
	c.Pipeline.Stages = []string{"strip", "stem"}
	c.Pipeline.StemMode = "token"
	c.Features.MaxFeatures = 10000
	c.Features.MaxDF = 0.95
	c.Features.MinDF = 2
	c.Logging.Level = "info"
}

// applyEnvVars overrides configuration with environment variable values.
// Only non-empty environment variables override existing values.
func (c *Config) applyEnvVars() {
	if v := os.Getenv("MAILPREP_INPUT"); v != "" {
		c.Input.Path = v
	}
	if v := os.Getenv("MAILPREP_FORMAT"); v != "" {
		c.Input.Format = strings.ToLower(v)
	}

	if v := os.Getenv("MAILPREP_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Pipeline.Workers = n
		}
	}
	if v := os.Getenv("MAILPREP_STAGES"); v != "" {
		c.Pipeline.Stages = strings.Split(v, ",")
	}
	if v := os.Getenv("MAILPREP_STEM_MODE"); v != "" {
		c.Pipeline.StemMode = v
	}

	if v := os.Getenv("MAILPREP_MAX_FEATURES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Features.MaxFeatures = n
		}
	}
	if v := os.Getenv("MAILPREP_MAX_DF"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Features.MaxDF = f
		}
	}
	if v := os.Getenv("MAILPREP_MIN_DF"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Features.MinDF = n
		}
	}

	if v := os.Getenv("MAILPREP_RECORDS"); v != "" {
		c.Output.Records = v
	}
	if v := os.Getenv("MAILPREP_VOCABULARY"); v != "" {
		c.Output.Vocabulary = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}
