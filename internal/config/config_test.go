package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadIndexerConfigDefaults(t *testing.T) {
	// Point at an empty directory so no config file or env files are found.
	dir := t.TempDir()
	cfg, err := LoadIndexerConfig(filepath.Join(dir, "missing.yaml"), dir)
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	assert.Equal(t, "BLOCKS", cfg.NATS.StreamName)
	assert.Equal(t, "blocks.decoded", cfg.NATS.Subject)
	assert.Equal(t, "discovery-indexer", cfg.NATS.ConsumerName)
	assert.Equal(t, 10, cfg.NATS.MaxReconnects)
	assert.Equal(t, 2*time.Second, cfg.NATS.ReconnectWait)
	assert.Equal(t, 30*time.Second, cfg.NATS.AckWait)
	assert.Equal(t, 3, cfg.NATS.MaxDeliver)
	assert.Equal(t, int64(42), cfg.Pipeline.AdvisoryLockKey)
	assert.Equal(t, 9090, cfg.Pipeline.MetricsPort)
}

func TestLoadIndexerConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(`
debug: true
database:
  host: db.internal
  port: 5433
  user: indexer
  password: secret
  dbname: discovery
nats:
  url: nats://nats.internal:4222
pipeline:
  verifier_wallet: "0xcccccccccccccccccccccccccccccccccccccccc"
  advisory_lock_key: 7
`), 0o600))

	cfg, err := LoadIndexerConfig(configFile, dir)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "nats://nats.internal:4222", cfg.NATS.URL)
	assert.Equal(t, "0xcccccccccccccccccccccccccccccccccccccccc", cfg.Pipeline.VerifierWallet)
	assert.Equal(t, int64(7), cfg.Pipeline.AdvisoryLockKey)

	// File values merge over defaults.
	assert.Equal(t, "BLOCKS", cfg.NATS.StreamName)
}

func TestLoadIndexerConfigFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("OPENAUDIO_DATABASE_HOST", "env-db")
	t.Setenv("OPENAUDIO_DATABASE_PASSWORD", "env-secret")
	t.Setenv("OPENAUDIO_NATS_CONSUMER_NAME", "env-consumer")
	t.Setenv("OPENAUDIO_PIPELINE_METRICS_PORT", "9999")

	cfg, err := LoadIndexerConfig(filepath.Join(dir, "missing.yaml"), dir)
	require.NoError(t, err)

	assert.Equal(t, "env-db", cfg.Database.Host)
	assert.Equal(t, "env-secret", cfg.Database.Password)
	assert.Equal(t, "env-consumer", cfg.NATS.ConsumerName)
	assert.Equal(t, 9999, cfg.Pipeline.MetricsPort)
}

func TestLoadIndexerConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(
		"OPENAUDIO_DATABASE_USER=file-user\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte(
		"OPENAUDIO_DATABASE_USER=local-user\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("OPENAUDIO_DATABASE_USER") })

	cfg, err := LoadIndexerConfig(filepath.Join(dir, "missing.yaml"), dir)
	require.NoError(t, err)

	// .env.local overrides .env.
	assert.Equal(t, "local-user", cfg.Database.User)
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "indexer",
		Password: "secret",
		DBName:   "discovery",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=indexer password=secret dbname=discovery sslmode=disable",
		cfg.DSN())
}
