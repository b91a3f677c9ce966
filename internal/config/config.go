package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Backend selects where performance documents are persisted.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
)

// Config holds runtime configuration.
type Config struct {
	// DBPath is the SQLite file. Empty means the default XDG location.
	DBPath string

	// Backend stores performance documents. Questions always live in SQLite.
	Backend Backend

	RedisAddr   string
	RedisPrefix string

	// LogMode is "dev" (debug, console) or "prod" (info, JSON).
	LogMode string

	// Seed drives shuffling in the sampler. 0 means "pick one at random".
	Seed uint64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend:   BackendSQLite,
		RedisAddr: "localhost:6379",
		LogMode:   "prod",
	}
}

// Load reads a .env file if present, then builds a Config from environment
// variables, falling back to defaults for unset values.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	if p := os.Getenv("PREPIQ_DB"); p != "" {
		cfg.DBPath = p
	}
	if b := os.Getenv("PREPIQ_BACKEND"); b != "" {
		cfg.Backend = Backend(b)
	}
	if a := os.Getenv("PREPIQ_REDIS_ADDR"); a != "" {
		cfg.RedisAddr = a
	}
	if p := os.Getenv("PREPIQ_REDIS_PREFIX"); p != "" {
		cfg.RedisPrefix = p
	}
	if m := os.Getenv("PREPIQ_LOG_MODE"); m != "" {
		cfg.LogMode = m
	}
	if s := os.Getenv("PREPIQ_SEED"); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("PREPIQ_SEED=%q is not a valid seed: %w", s, err)
		}
		cfg.Seed = seed
	}

	return cfg, cfg.Validate()
}

// Validate checks that the selected backend is usable.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite:
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("PREPIQ_REDIS_ADDR is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown storage backend: %q", c.Backend)
	}
	return nil
}
