// Package rptconfig provides configuration for cmd/swmminspect.
//
// Configuration follows a two-tier precedence chain, narrower than
// systems with an additional database-backed config tier since this
// tool has no database of its own:
//  1. An optional YAML file (highest priority)
//  2. Environment variables, falling back to built-in defaults (lowest
//     priority)
package rptconfig

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

// Config holds all configuration values for the swmmout tools.
type Config struct {
	// ListenAddr is the HTTP listen address for cmd/swmminspect.
	// Environment: SWMMOUT_LISTEN_ADDR. Default: ":8745".
	ListenAddr string `yaml:"listen_addr"`

	// DataPath is the path of the results file cmd/swmminspect opens
	// and serves.
	// Environment: SWMMOUT_DATA_PATH. Default: ".".
	DataPath string `yaml:"data_path"`

	// AuditDBPath is a SQLite path for a history.Log audit log.
	// cmd/swmmdump takes its audit path from its own -audit-db flag and
	// does not read this field.
	// Environment: SWMMOUT_AUDIT_DB. Default: "./swmmout-history.db".
	AuditDBPath string `yaml:"audit_db"`

	// BearerTokenHash is the bcrypt hash of the token cmd/swmminspect
	// requires on every request. Environment: SWMMOUT_TOKEN_HASH.
	// Empty disables authentication (suitable for local, trusted use).
	BearerTokenHash string `yaml:"bearer_token_hash"`

	// LogLevel is the minimum rlog level. Environment: SWMMOUT_LOG_LEVEL.
	LogLevel string `yaml:"log_level"`

	// HTTPReadTimeout bounds how long cmd/swmminspect waits to read a
	// request. Environment: SWMMOUT_HTTP_READ_TIMEOUT (seconds).
	HTTPReadTimeout time.Duration `yaml:"-"`

	// HTTPWriteTimeout bounds how long cmd/swmminspect takes to write a
	// response. Environment: SWMMOUT_HTTP_WRITE_TIMEOUT (seconds).
	HTTPWriteTimeout time.Duration `yaml:"-"`
}

// Load builds a Config from defaults, the environment, and an optional
// YAML file, in that increasing order of priority. yamlPath may be
// empty, in which case the YAML tier is skipped.
func Load(yamlPath string) (*Config, error) {
	cfg := &Config{
		ListenAddr:       getEnv("SWMMOUT_LISTEN_ADDR", ":8745"),
		DataPath:         getEnv("SWMMOUT_DATA_PATH", "."),
		AuditDBPath:      getEnv("SWMMOUT_AUDIT_DB", "./swmmout-history.db"),
		BearerTokenHash:  getEnv("SWMMOUT_TOKEN_HASH", ""),
		LogLevel:         getEnv("SWMMOUT_LOG_LEVEL", "info"),
		HTTPReadTimeout:  getEnvDuration("SWMMOUT_HTTP_READ_TIMEOUT", 15),
		HTTPWriteTimeout: getEnvDuration("SWMMOUT_HTTP_WRITE_TIMEOUT", 15),
	}

	if yamlPath != "" {
		if err := cfg.mergeYAMLFile(yamlPath); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// mergeYAMLFile overlays values present in a YAML file on top of the
// environment-derived defaults. A missing file is not an error; the
// environment tier stands on its own for tools run without one.
func (c *Config) mergeYAMLFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return err
	}

	if overlay.ListenAddr != "" {
		c.ListenAddr = overlay.ListenAddr
	}
	if overlay.DataPath != "" {
		c.DataPath = overlay.DataPath
	}
	if overlay.AuditDBPath != "" {
		c.AuditDBPath = overlay.AuditDBPath
	}
	if overlay.BearerTokenHash != "" {
		c.BearerTokenHash = overlay.BearerTokenHash
	}
	if overlay.LogLevel != "" {
		c.LogLevel = overlay.LogLevel
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultSeconds int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return time.Duration(intValue) * time.Second
		}
	}
	return time.Duration(defaultSeconds) * time.Second
}
