package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"papertrade/internal/logger"
	"papertrade/internal/metrics"
)

const cacheKeyPrefix = "quote:"

// Cache stores quotes for a short time. A miss returns (nil, nil).
type Cache interface {
	Get(ctx context.Context, symbol string) (*Quote, error)
	Set(ctx context.Context, q *Quote, ttl time.Duration) error
}

// RedisCache is a Cache backed by Redis, storing quotes as JSON.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the Redis instance at redisURL and pings it.
func NewRedisCache(ctx context.Context, redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.MaxRetries = 2
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 2 * time.Second
	opt.WriteTimeout = 2 * time.Second

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Get(ctx context.Context, symbol string) (*Quote, error) {
	val, err := c.client.Get(ctx, cacheKeyPrefix+symbol).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}

	var q Quote
	if err := json.Unmarshal(val, &q); err != nil {
		return nil, fmt.Errorf("decoding cached quote: %w", err)
	}
	return &q, nil
}

func (c *RedisCache) Set(ctx context.Context, q *Quote, ttl time.Duration) error {
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encoding quote: %w", err)
	}
	if err := c.client.Set(ctx, cacheKeyPrefix+q.Symbol, data, ttl).Err(); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// CachedProvider serves quotes from a Cache and falls through to the wrapped
// Provider on a miss. Cache failures are logged and never fail a lookup.
type CachedProvider struct {
	next  Provider
	cache Cache
	ttl   time.Duration
}

// NewCachedProvider wraps next with cache using the given entry lifetime.
func NewCachedProvider(next Provider, cache Cache, ttl time.Duration) *CachedProvider {
	return &CachedProvider{next: next, cache: cache, ttl: ttl}
}

func (p *CachedProvider) Lookup(ctx context.Context, symbol string) (*Quote, error) {
	symbol = NormalizeSymbol(symbol)
	log := logger.Get()

	cached, err := p.cache.Get(ctx, symbol)
	if err != nil {
		log.Warnw("Quote cache read failed", "symbol", symbol, "error", err)
	}
	if cached != nil {
		metrics.RecordCacheHit()
		return cached, nil
	}
	metrics.RecordCacheMiss()

	q, err := p.next.Lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if err := p.cache.Set(ctx, q, p.ttl); err != nil {
		log.Warnw("Quote cache write failed", "symbol", symbol, "error", err)
	}
	return q, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrSymbolNotFound)
}
