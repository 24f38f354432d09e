package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"cayley/internal/groups/metrics"
	"cayley/internal/groups/models"
	id "cayley/pkg/domain"
	"cayley/pkg/platform/circuit"
)

const groupKeyPrefix = "cayley:group:"

// RedisCache is a read-through cache for FindByID in front of a Backend.
// Groups are immutable, so entries never need invalidation; the TTL only
// bounds memory. Cache failures degrade to the backend and are never
// returned to callers.
type RedisCache struct {
	next    Backend
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  *slog.Logger
	breaker *circuit.Breaker
}

// NewRedisCache wraps next. metrics and logger may be nil. A nil breaker
// gets the circuit package defaults.
func NewRedisCache(next Backend, client *redis.Client, ttl time.Duration, m *metrics.Metrics, logger *slog.Logger, breaker *circuit.Breaker) *RedisCache {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if breaker == nil {
		breaker = circuit.New("group-cache")
	}
	return &RedisCache{next: next, client: client, ttl: ttl, metrics: m, logger: logger, breaker: breaker}
}

// List passes through; listings are not cached.
func (c *RedisCache) List(ctx context.Context) ([]*models.Group, error) {
	return c.next.List(ctx)
}

// FindByName passes through.
func (c *RedisCache) FindByName(ctx context.Context, name string) (*models.Group, error) {
	return c.next.FindByName(ctx, name)
}

// Create writes to the backend, then warms the cache.
func (c *RedisCache) Create(ctx context.Context, g *models.Group) error {
	if err := c.next.Create(ctx, g); err != nil {
		return err
	}
	c.store(ctx, g)
	return nil
}

// FindByID serves from Redis when possible. While the breaker is open Redis
// is bypassed entirely.
func (c *RedisCache) FindByID(ctx context.Context, groupID id.GroupID) (*models.Group, error) {
	if !c.breaker.Allow() {
		c.metrics.RecordCacheBypass()
		return c.next.FindByID(ctx, groupID)
	}

	start := time.Now()
	raw, err := c.client.Get(ctx, cacheKey(groupID)).Bytes()
	switch {
	case err == nil:
		c.succeeded(ctx)
		var g models.Group
		if jerr := json.Unmarshal(raw, &g); jerr == nil {
			c.metrics.RecordCacheHit(time.Since(start))
			return &g, nil
		}
		c.metrics.RecordCacheError(time.Since(start))
		c.logger.WarnContext(ctx, "discarding undecodable cache entry", "group_id", groupID.String())
	case errors.Is(err, redis.Nil):
		c.succeeded(ctx)
		c.metrics.RecordCacheMiss(time.Since(start))
	default:
		c.failed(ctx, err)
		c.metrics.RecordCacheError(time.Since(start))
		c.logger.WarnContext(ctx, "group cache read failed", "group_id", groupID.String(), "error", err)
	}

	g, err := c.next.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, g)
	return g, nil
}

func (c *RedisCache) store(ctx context.Context, g *models.Group) {
	if !c.breaker.Allow() {
		return
	}
	payload, err := json.Marshal(g)
	if err != nil {
		c.logger.WarnContext(ctx, "group cache encode failed", "group_id", g.ID.String(), "error", err)
		return
	}
	if err := c.client.Set(ctx, cacheKey(g.ID), payload, c.ttl).Err(); err != nil {
		c.failed(ctx, err)
		c.logger.WarnContext(ctx, "group cache write failed", "group_id", g.ID.String(), "error", fmt.Errorf("set: %w", err))
		return
	}
	c.succeeded(ctx)
}

func (c *RedisCache) succeeded(ctx context.Context) {
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "group cache circuit closed", "breaker", c.breaker.Name())
	}
}

func (c *RedisCache) failed(ctx context.Context, err error) {
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.logger.WarnContext(ctx, "group cache circuit opened", "breaker", c.breaker.Name(), "error", err)
	}
}

func cacheKey(groupID id.GroupID) string {
	return groupKeyPrefix + groupID.String()
}
