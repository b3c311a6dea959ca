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

// Package config types define the configuration structures used throughout
// ladder-export. Values come from YAML files, environment variables and
// command-line flags, in that order of increasing precedence.
package config

import (
	"strings"
	"time"
)

// Config represents the complete configuration for ladder-export.
type Config struct {
	Riot      RiotConfig      `yaml:"riot"`
	HTTP      HTTPConfig      `yaml:"http"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Retry     RetryConfig     `yaml:"retry"`
	Output    OutputConfig    `yaml:"output"`
	Log       LogConfig       `yaml:"log"`
}

// RiotConfig locates the LEAGUE-v4 API and its credential.
// BaseURL may contain a {region} placeholder, replaced per run.
type RiotConfig struct {
	BaseURL    string `yaml:"base_url"`
	APIKeyFile string `yaml:"api_key_file"`
}

// HTTPConfig controls individual requests.
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// RateLimitConfig throttles requests on the client side. A zero
// RequestsPerSecond disables throttling.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// RetryConfig controls retries of throttled or network-failed requests.
// MaxRetries of zero, the default, means a failed fetch aborts the run
// immediately.
type RetryConfig struct {
	MaxRetries        int           `yaml:"max_retries"`
	InitialBackoff    time.Duration `yaml:"initial_backoff"`
	MaxBackoff        time.Duration `yaml:"max_backoff"`
	BackoffMultiplier float64       `yaml:"backoff_multiplier"`
}

// OutputConfig controls the artifact written after a successful run.
type OutputConfig struct {
	Prefix          string `yaml:"prefix"`
	Format          string `yaml:"format"`
	Dir             string `yaml:"dir"`
	TimestampLayout string `yaml:"timestamp_layout"`
	Metadata        bool   `yaml:"metadata"`
}

// LogConfig selects the log handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
// The rate limit matches the per-second allowance of a development key.
func DefaultConfig() *Config {
	return &Config{
		Riot: RiotConfig{
			BaseURL:    "https://{region}.api.riotgames.com/lol/league/v4",
			APIKeyFile: "api_key.txt",
		},
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "ladder-export",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 20,
			Burst:             20,
		},
		Retry: RetryConfig{
			MaxRetries:        0,
			InitialBackoff:    time.Second,
			MaxBackoff:        30 * time.Second,
			BackoffMultiplier: 2.0,
		},
		Output: OutputConfig{
			Prefix:          "league_data",
			Format:          "csv",
			Dir:             ".",
			TimestampLayout: "2006-01-02_15-04",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// RegionBaseURL returns the API base URL for region.
func (c *Config) RegionBaseURL(region string) string {
	return strings.ReplaceAll(c.Riot.BaseURL, "{region}", region)
}
