package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"PREPIQ_DB", "PREPIQ_BACKEND", "PREPIQ_REDIS_ADDR", "PREPIQ_REDIS_PREFIX", "PREPIQ_LOG_MODE", "PREPIQ_SEED"} {
		t.Setenv(k, "")
	}
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "prod", cfg.LogMode, "debug lines stay off by default")
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PREPIQ_DB", "/tmp/p.db")
	t.Setenv("PREPIQ_BACKEND", "redis")
	t.Setenv("PREPIQ_REDIS_ADDR", "cache:6380")
	t.Setenv("PREPIQ_REDIS_PREFIX", "test:")
	t.Setenv("PREPIQ_LOG_MODE", "dev")
	t.Setenv("PREPIQ_SEED", "42")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/p.db", cfg.DBPath)
	assert.Equal(t, BackendRedis, cfg.Backend)
	assert.Equal(t, "cache:6380", cfg.RedisAddr)
	assert.Equal(t, "test:", cfg.RedisPrefix)
	assert.Equal(t, "dev", cfg.LogMode)
	assert.Equal(t, uint64(42), cfg.Seed)
}

func TestFromEnv_BadSeed(t *testing.T) {
	t.Setenv("PREPIQ_SEED", "-1")
	_, err := FromEnv()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "mongo"
	assert.Error(t, cfg.Validate())

	cfg.Backend = BackendRedis
	cfg.RedisAddr = ""
	assert.Error(t, cfg.Validate())
}
