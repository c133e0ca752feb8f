/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rohankumardubey/xviz/errors"
)

// Config is the replay tool configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Export  ExportConfig  `yaml:"export"`
	Metrics MetricsConfig `yaml:"metrics"`
	Session SessionConfig `yaml:"session"`
}

// LogConfig selects the zerolog level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error (default: info)
	Format string `yaml:"format"` // console or json (default: console)
}

// ExportConfig configures the DynamoDB snapshot sink.
type ExportConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Table     string `yaml:"table"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Endpoint  string `yaml:"endpoint"` // e.g. DynamoDB Local
}

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	Namespace string `yaml:"namespace"` // default: xviz
}

// SessionConfig controls replay behavior.
type SessionConfig struct {
	// ExportEveryFrame writes a snapshot after each frame instead of once at
	// the end of the feed.
	ExportEveryFrame bool `yaml:"exportEveryFrame"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log:     LogConfig{Level: "info", Format: "console"},
		Export:  ExportConfig{Region: "us-east-1"},
		Metrics: MetricsConfig{Namespace: "xviz"},
	}
}

// Load reads the YAML file at path over the defaults, then applies a .env
// file from the working directory and environment overrides. An empty path
// skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	override := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	override(&c.Log.Level, "XVIZ_LOG_LEVEL")
	override(&c.Log.Format, "XVIZ_LOG_FORMAT")
	override(&c.Export.Table, "XVIZ_EXPORT_TABLE")
	override(&c.Export.Region, "AWS_REGION")
	override(&c.Export.AccessKey, "AWS_ACCESS_KEY")
	override(&c.Export.SecretKey, "AWS_SECRET_KEY")
	override(&c.Export.Endpoint, "XVIZ_DDB_ENDPOINT")
	override(&c.Metrics.Namespace, "XVIZ_METRICS_NAMESPACE")

	c.Log.Level = strings.ToLower(c.Log.Level)
	c.Log.Format = strings.ToLower(c.Log.Format)
}

// Validate checks if the config is valid
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return errors.NewValidationError("log.level", fmt.Sprintf("unknown level %q", c.Log.Level))
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return errors.NewValidationError("log.format", fmt.Sprintf("unknown format %q", c.Log.Format))
	}

	if c.Export.Enabled {
		if c.Export.Table == "" {
			return errors.NewValidationError("export.table", "required when export is enabled")
		}
		if c.Export.Region == "" {
			return errors.NewValidationError("export.region", "required when export is enabled")
		}
		if (c.Export.AccessKey == "") != (c.Export.SecretKey == "") {
			return errors.NewValidationError("export.accessKey", "access key and secret key must be set together")
		}
	}

	if c.Metrics.Namespace == "" {
		return errors.NewValidationError("metrics.namespace", "must not be empty")
	}
	return nil
}
