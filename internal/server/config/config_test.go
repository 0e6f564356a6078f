package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, c.EndpointAddr, ":8080")
	assert.Equal(t, c.DatabaseDSN, "")
	assert.Equal(t, c.SecretKey, "your-secret-key")
	assert.Equal(t, c.AccessTokenValidityDuration, 24*time.Hour)
	assert.Equal(t, c.SnapshotPath, "stepdata.json")
	assert.Equal(t, c.BackupInterval, 10*time.Minute)
	assert.Equal(t, c.S3RootUser, "admin")
	assert.Equal(t, c.S3RootPassword, "secretpassword")
	assert.Equal(t, c.S3Bucket, "")
	assert.Equal(t, c.S3Region, "us-east-1")
	assert.Equal(t, c.S3BaseEndpoint, "http://127.0.0.1:9000/")
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("ADDRESS", ":9090")
	t.Setenv("SECRET_KEY", "env-secret")
	t.Setenv("ACCESS_TOKEN_VALIDITY_MINUTES", "90")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, ":9090", c.EndpointAddr)
	assert.Equal(t, "env-secret", c.SecretKey)
	assert.Equal(t, 90*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, "stepdata.json", c.SnapshotPath, "untouched fields keep defaults")
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Equal(t, c.EndpointAddr, ":8080")
	assert.Equal(t, c.SecretKey, "your-secret-key")
	assert.Equal(t, c.AccessTokenValidityDuration, 24*time.Hour)
}
