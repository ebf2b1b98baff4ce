package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/sant0-9/hookline/internal/config"
)

// FromConfig opens the configured database and, when redis is configured
// and reachable, wraps it in a CachedStore.
func FromConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dsn := cfg.Database.DSN
	if dsn == "" && (cfg.Database.Driver == "" || cfg.Database.Driver == DriverSQLite) {
		path, err := config.DefaultDatabasePath()
		if err != nil {
			return nil, err
		}
		dsn = path
	}

	db, err := Open(cfg.Database.Driver, dsn)
	if err != nil {
		return nil, err
	}
	logger.Debug("database opened", zap.String("driver", db.driver))

	if cfg.Redis == nil || cfg.Redis.Addr == "" {
		return db, nil
	}
	rdb, err := NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable, running without cache", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		return db, nil
	}
	return NewCachedStore(db, rdb, cfg.Redis.TTL, logger), nil
}
