// Package cache puts a Redis read-through cache in front of a product catalog.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"loan-schedule/internal/domain/product"
	"loan-schedule/internal/infrastructure/monitoring"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "loan-schedule:product:"
	activeListKey = "loan-schedule:products:active"
	defaultTTL    = 5 * time.Minute
	resultHit     = "hit"
	resultMiss    = "miss"
	resultError   = "error"
)

// RedisClient is the subset of *redis.Client the cache uses.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// ProductRepository caches FindByKey and ListActive. Misses and Redis failures
// fall through to the wrapped repository; ListAll is never cached.
type ProductRepository struct {
	next   product.Repository
	client RedisClient
	ttl    time.Duration
	logger *slog.Logger
}

var _ product.Repository = (*ProductRepository)(nil)

func NewProductRepository(next product.Repository, client RedisClient, ttl time.Duration, logger *slog.Logger) *ProductRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &ProductRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "ProductCache"),
	}
}

func (c *ProductRepository) FindByKey(ctx context.Context, key string) (*product.LoanProduct, error) {
	var cached product.LoanProduct
	if c.load(ctx, keyPrefix+key, &cached) {
		return &cached, nil
	}

	p, err := c.next.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	c.store(ctx, keyPrefix+key, p)
	return p, nil
}

func (c *ProductRepository) ListActive(ctx context.Context) ([]product.LoanProduct, error) {
	var cached []product.LoanProduct
	if c.load(ctx, activeListKey, &cached) {
		return cached, nil
	}

	products, err := c.next.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, activeListKey, products)
	return products, nil
}

func (c *ProductRepository) ListAll(ctx context.Context) ([]product.LoanProduct, error) {
	return c.next.ListAll(ctx)
}

func (c *ProductRepository) load(ctx context.Context, key string, dest any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			monitoring.RecordCacheLookup(resultMiss)
			return false
		}
		monitoring.RecordCacheLookup(resultError)
		c.logger.WarnContext(ctx, "Redis GET failed, falling back to catalog", "key", key, "error", err)
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		monitoring.RecordCacheLookup(resultError)
		c.logger.WarnContext(ctx, "Discarding undecodable cache entry", "key", key, "error", err)
		return false
	}
	monitoring.RecordCacheLookup(resultHit)
	return true
}

func (c *ProductRepository) store(ctx context.Context, key string, value any) {
	body, err := json.Marshal(value)
	if err != nil {
		c.logger.WarnContext(ctx, "Failed to encode cache entry", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, body, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "Redis SET failed", "key", key, "error", err)
	}
}
