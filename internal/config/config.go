// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for ladder-export.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags (applied by the CLI)
//  2. Environment variables
//  3. A sibling "local" file, e.g. .ladder-export.local.yaml
//  4. The configuration file
//  5. Built-in defaults
//
// Without an explicit path the following locations are searched and the
// first one found is used:
//   - .ladder-export.yaml (current directory)
//   - .ladder-export.yml (current directory)
//   - ~/.ladder-export/config.yaml
//   - ~/.ladder-export/config.yml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from configPath, or from the standard
// locations when configPath is empty. Finding no file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	path := configPath
	if path == "" {
		path = findConfigFile()
	}

	if path != "" {
		if err := loadConfigFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		if err := mergeLocalOverride(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Output.Dir = expandPath(cfg.Output.Dir)
	cfg.Riot.APIKeyFile = expandPath(cfg.Riot.APIKeyFile)

	return cfg, nil
}

func findConfigFile() string {
	home, _ := os.UserHomeDir()
	candidates := []string{
		".ladder-export.yaml",
		".ladder-export.yml",
		filepath.Join(home, ".ladder-export", "config.yaml"),
		filepath.Join(home, ".ladder-export", "config.yml"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadConfigFile reads and parses a YAML config file on top of cfg
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// localPath returns the override path for a config file:
// config.yaml -> config.local.yaml
func localPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}

// mergeLocalOverride merges <name>.local.<ext> over cfg when it exists.
// Only non-zero values in the local file take effect.
func mergeLocalOverride(path string, cfg *Config) error {
	local := localPath(path)
	data, err := os.ReadFile(local)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", local, err)
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", local, err)
	}

	if err := mergo.Merge(cfg, override, mergo.WithOverride); err != nil {
		return fmt.Errorf("failed to merge config file %s: %w", local, err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("RIOT_API_BASE_URL"); v != "" {
		cfg.Riot.BaseURL = v
	}
	if v := os.Getenv("RIOT_API_KEY_FILE"); v != "" {
		cfg.Riot.APIKeyFile = v
	}
	if v := os.Getenv("LADDER_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("LADDER_OUTPUT_FORMAT"); v != "" {
		cfg.Output.Format = v
	}
	if v := os.Getenv("LADDER_RATE_LIMIT"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid LADDER_RATE_LIMIT %q: %w", v, err)
		}
		cfg.RateLimit.RequestsPerSecond = rps
	}
	if v := os.Getenv("LADDER_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LADDER_MAX_RETRIES %q: %w", v, err)
		}
		cfg.Retry.MaxRetries = n
	}
	if v := os.Getenv("LADDER_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	return nil
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}

// Validate checks that the configuration is usable. It should be called
// after flags have been applied.
func (c *Config) Validate() error {
	if c.Riot.BaseURL == "" {
		return fmt.Errorf("riot base URL cannot be empty")
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got: %s", c.HTTP.Timeout)
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("requests per second cannot be negative, got: %g", c.RateLimit.RequestsPerSecond)
	}
	if c.RateLimit.RequestsPerSecond > 0 && c.RateLimit.Burst < 1 {
		return fmt.Errorf("rate limit burst must be at least 1, got: %d", c.RateLimit.Burst)
	}
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative, got: %d", c.Retry.MaxRetries)
	}
	if c.Retry.MaxRetries > 0 && c.Retry.BackoffMultiplier < 1 {
		return fmt.Errorf("backoff multiplier must be at least 1, got: %g", c.Retry.BackoffMultiplier)
	}
	switch c.Output.Format {
	case "csv", "ndjson":
	default:
		return fmt.Errorf("unsupported output format %q (want csv or ndjson)", c.Output.Format)
	}
	if c.Output.Prefix == "" {
		return fmt.Errorf("output prefix cannot be empty")
	}
	if c.Output.TimestampLayout == "" {
		return fmt.Errorf("output timestamp layout cannot be empty")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q (want text or json)", c.Log.Format)
	}
	return nil
}
