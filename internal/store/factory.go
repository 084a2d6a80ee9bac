package store

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"wordisland/internal/config"
	"wordisland/internal/database"
)

const (
	EngineSQL    = "sql"
	EngineRedis  = "redis"
	EngineMemory = "memory"
)

// Open builds the Store selected by cfg.StoreEngine. For the SQL engine the
// database is opened and migrated.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.StoreEngine)) {
	case "", EngineSQL:
		db, err := database.InitializeWithConfig(cfg)
		if err != nil {
			return nil, err
		}
		applied, err := db.RunMigrations(cfg.MigrationsPath)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		for _, name := range applied {
			logger.Info("migration completed", zap.String("file", name))
		}
		logger.Info("database connection established", zap.String("type", cfg.DatabaseType))
		return NewSQLStore(db), nil
	case EngineRedis:
		st, err := NewRedisStore(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("redis store connected", zap.String("addr", cfg.RedisAddr))
		return st, nil
	case EngineMemory:
		logger.Warn("using in-memory store, progress will not survive a restart")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store engine: %s", cfg.StoreEngine)
	}
}
