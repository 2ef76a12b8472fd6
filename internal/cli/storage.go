package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"shieldhero-quiz/internal/app"
	"shieldhero-quiz/internal/config"
	"shieldhero-quiz/internal/infra/file"
	"shieldhero-quiz/internal/infra/memory"
	redisstore "shieldhero-quiz/internal/infra/redis"
)

// environment is what every subcommand needs before doing its work.
type environment struct {
	cfg   config.Config
	log   *zap.Logger
	store app.Store
	close func()
}

func loadEnvironment(ctx context.Context, configPath, storageOverride string, withLog func(config.Config) (*zap.Logger, error)) (*environment, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}
	if storageOverride != "" {
		cfg.Storage.Backend = storageOverride
	}

	log := zap.NewNop()
	if withLog != nil {
		if log, err = withLog(cfg); err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
	}

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	return &environment{
		cfg:   cfg,
		log:   log,
		store: store,
		close: func() {
			closeStore()
			_ = log.Sync()
		},
	}, nil
}

// openStore picks the backend named in config. An unreachable redis degrades
// to an in-memory store so the quiz stays playable.
func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (app.Store, func(), error) {
	switch strings.ToLower(cfg.Storage.Backend) {
	case config.BackendMemory:
		return memory.NewKVStore(), func() {}, nil
	case config.BackendFile, "":
		store := file.NewKVStore(cfg.StorePath())
		log.Debug("using file storage", zap.String("path", store.Path()))
		return store, func() {}, nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
		kv := redisstore.NewKVStore(client, cfg.Storage.Redis.Prefix, 0)
		if err := kv.Ping(ctx); err != nil {
			log.Warn("redis unreachable, preferences will not persist", zap.Error(err))
			_ = client.Close()
			return memory.NewKVStore(), func() {}, nil
		}
		return memory.NewCachedStore(kv, cfg.CacheTTL()), func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
