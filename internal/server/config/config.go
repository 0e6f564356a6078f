// Package config handles configuration for the server component,
// including defaults, .env/environment overlay, JSON overlay, and
// command-line flags.
package config

import "time"

// DefaultSecretKey is the placeholder signing key from LoadDefaults. The
// server treats it as "not configured" and generates a random key instead
// of signing tokens with a publicly known value.
const DefaultSecretKey = "your-secret-key"

// Config holds runtime settings for the StepTrack server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory mock
//     backend seeded with demo data.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test
//     defaults in prod.
//   - AccessTokenValidityDuration: access token lifetime.
//   - SnapshotPath: file the mock ledger snapshots to after every append.
//   - BackupInterval: period of the S3 ledger export; used only when
//     S3Bucket is non-empty.
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint:
//     S3-compatible object storage settings for ledger backups.
type Config struct {
	EndpointAddr                string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	SnapshotPath                string
	BackupInterval              time.Duration
	S3RootUser                  string
	S3RootPassword              string
	S3Bucket                    string
	S3Region                    string
	S3BaseEndpoint              string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DatabaseDSN = ""
	c.SecretKey = DefaultSecretKey
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.SnapshotPath = "stepdata.json"
	c.BackupInterval = 10 * time.Minute
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment (including an optional .env file), an optional JSON
// file, and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
