package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SearchCache holds recent external-search outcomes in Redis so repeated
// discovery queries do not burn API quota. A nil *SearchCache is valid and
// disables caching entirely; the record store itself is never cached.
type SearchCache struct {
	client *redis.Client
	logger *zap.Logger
}

type CacheConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewSearchCache(cfg CacheConfig, logger *zap.Logger) (*SearchCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	logger.Info("Redis connected",
		zap.String("addr", cfg.Addr),
		zap.Int("db", cfg.DB),
	)
	return &SearchCache{client: client, logger: logger}, nil
}

func (c *SearchCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Get unmarshals a cached value into dest. A miss, a nil cache, or any Redis
// error reports (false) and the caller falls through to the live call.
func (c *SearchCache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}
	value, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.logger.Warn("Cache get failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal([]byte(value), dest); err != nil {
		c.logger.Warn("Cache unmarshal failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Set stores a value with a TTL. Failures are logged and ignored.
func (c *SearchCache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("Cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Warn("Cache set failed", zap.String("key", key), zap.Error(err))
	}
}
