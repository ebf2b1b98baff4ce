package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sant0-9/hookline/internal/config"
	"github.com/sant0-9/hookline/internal/script"
)

const (
	cacheKeyPrefix  = "hookline:project:"
	defaultCacheTTL = 30 * time.Minute
)

// NewRedisClient connects to redis and pings it once.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

// CachedStore puts a redis read-through cache in front of project loads.
// Redis failures are logged and the inner store answers instead.
type CachedStore struct {
	Store

	rdb    *redis.Client
	ttl    time.Duration
	group  singleflight.Group
	logger *zap.Logger
}

func NewCachedStore(inner Store, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedStore {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedStore{
		Store:  inner,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

func cacheKey(id string) string {
	return cacheKeyPrefix + id
}

func (c *CachedStore) Load(ctx context.Context, id string) (*script.ProjectState, error) {
	key := cacheKey(id)

	if p, ok := c.cached(ctx, key); ok {
		return p, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Another caller may have filled the key while we waited.
		if p, ok := c.cached(ctx, key); ok {
			return p, nil
		}
		p, err := c.Store.Load(ctx, id)
		if err != nil {
			return nil, err
		}
		c.fill(ctx, key, p)
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	// Callers mutate what they load; never hand out the shared value.
	return v.(*script.ProjectState).Clone(), nil
}

func (c *CachedStore) cached(ctx context.Context, key string) (*script.ProjectState, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var p script.ProjectState
	if err := json.Unmarshal(data, &p); err != nil {
		c.logger.Warn("cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &p, true
}

func (c *CachedStore) fill(ctx context.Context, key string, p *script.ProjectState) {
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *CachedStore) invalidate(ctx context.Context, id string) {
	if err := c.rdb.Del(ctx, cacheKey(id)).Err(); err != nil {
		c.logger.Warn("cache invalidate failed", zap.String("key", cacheKey(id)), zap.Error(err))
	}
}

func (c *CachedStore) Save(ctx context.Context, p *script.ProjectState) error {
	if err := c.Store.Save(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx, p.ID)
	return nil
}

func (c *CachedStore) Delete(ctx context.Context, id string) error {
	if err := c.Store.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *CachedStore) DeleteConversation(ctx context.Context, id string) error {
	conv, err := c.Store.GetConversation(ctx, id)
	if err != nil {
		return err
	}
	if err := c.Store.DeleteConversation(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, conv.ProjectID)
	return nil
}

// Close closes the inner store and the redis client.
func (c *CachedStore) Close() error {
	return errors.Join(c.Store.Close(), c.rdb.Close())
}
