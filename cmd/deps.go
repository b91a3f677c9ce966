package cmd

import (
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/abhisek/prepiq/internal/attempts"
	"github.com/abhisek/prepiq/internal/config"
	"github.com/abhisek/prepiq/internal/logger"
	"github.com/abhisek/prepiq/internal/performance"
	"github.com/abhisek/prepiq/internal/store"
)

// deps holds everything a command needs. Call close when done.
type deps struct {
	cfg       config.Config
	log       *logger.Logger
	store     *store.Store
	redis     *goredis.Client
	questions *store.QuestionRepo
	attempts  *attempts.Store
	agg       *performance.Aggregator
	userID    string
}

// loadConfig reads .env and environment, then applies command-line overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if b, _ := cmd.Flags().GetString("backend"); b != "" {
		cfg.Backend = config.Backend(b)
	}
	if m, _ := cmd.Flags().GetString("log-mode"); m != "" {
		cfg.LogMode = m
	}
	return cfg, cfg.Validate()
}

// resolveDBPath returns the configured database path, or the default XDG
// path, making sure its directory exists.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openDeps opens the SQLite store, the configured performance backend and
// the services built on them.
func openDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	d := &deps{
		cfg:       cfg,
		log:       log,
		store:     st,
		questions: st.QuestionRepo(),
	}
	d.userID, _ = cmd.Flags().GetString("user")

	docs := st.DocumentRepo()
	if cfg.Backend == config.BackendRedis {
		rdb, err := store.DialRedis(cmd.Context(), cfg.RedisAddr)
		if err != nil {
			d.close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		d.redis = rdb
		docs = store.NewRedisDocumentRepo(rdb, cfg.RedisPrefix)
	}
	log.Debug("dependencies ready", "db", dbPath, "backend", cfg.Backend)

	d.attempts = attempts.New(docs,
		attempts.WithResolver(d.questions),
		attempts.WithLogger(log.With("component", "attempts")),
	)
	d.agg = performance.NewAggregator(d.attempts)
	return d, nil
}

func (d *deps) close() {
	if d.redis != nil {
		_ = d.redis.Close()
	}
	if d.store != nil {
		_ = d.store.Close()
	}
	d.log.Sync()
}
