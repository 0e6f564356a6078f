// Package config handles configuration for the CLI client: defaults,
// optional JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the StepTrack CLI.
//
// Fields:
//   - ServerAddr: base URL of the backend HTTP API.
//   - DatabasePath: path of the local SQLite cache file.
//   - RequestTimeout: per-request timeout for API calls.
//   - AutoFlushInterval: how often the automatic counter flushes
//     accumulated steps to the server.
type Config struct {
	ServerAddr        string
	DatabasePath      string
	RequestTimeout    time.Duration
	AutoFlushInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://localhost:8080"
	c.DatabasePath = "steptrack.db"
	c.RequestTimeout = 3 * time.Second
	c.AutoFlushInterval = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
