package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first when present; real environment
// variables win over .env entries, which is godotenv's default behavior.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("ACCESS_TOKEN_VALIDITY_MINUTES"); ok {
		if m, err := strconv.Atoi(v); err == nil {
			config.AccessTokenValidityDuration = time.Duration(m) * time.Minute
		}
	}
	if v, ok := os.LookupEnv("SNAPSHOT_PATH"); ok {
		config.SnapshotPath = v
	}
	if v, ok := os.LookupEnv("BACKUP_INTERVAL_MINUTES"); ok {
		if m, err := strconv.Atoi(v); err == nil {
			config.BackupInterval = time.Duration(m) * time.Minute
		}
	}
	if v, ok := os.LookupEnv("S3_ROOT_USER"); ok {
		config.S3RootUser = v
	}
	if v, ok := os.LookupEnv("S3_ROOT_PASSWORD"); ok {
		config.S3RootPassword = v
	}
	if v, ok := os.LookupEnv("S3_BUCKET"); ok {
		config.S3Bucket = v
	}
	if v, ok := os.LookupEnv("S3_REGION"); ok {
		config.S3Region = v
	}
	if v, ok := os.LookupEnv("S3_BASE_ENDPOINT"); ok {
		config.S3BaseEndpoint = v
	}
}
