package identtype

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"clinid/internal/identifier/models"
	id "clinid/pkg/domain"
)

// RedisCache is a read-through decorator over another Store. Type
// configurations change rarely and are read on every validation, so a
// short TTL cache in front of Postgres keeps the hot path off the
// database. The catalog is the only thing cached; uniqueness answers
// never are.
type RedisCache struct {
	inner  Store
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisCache wraps inner with a Redis read-through cache.
func NewRedisCache(inner Store, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *RedisCache {
	return &RedisCache{inner: inner, client: client, ttl: ttl, logger: logger}
}

func cacheKey(typeID id.IdentifierTypeID) string {
	return "identtype:" + typeID.String()
}

// Create writes through to the inner store. No cache entry is written;
// the next FindByID fills it.
func (c *RedisCache) Create(ctx context.Context, typ *models.IdentifierType) error {
	if err := c.inner.Create(ctx, typ); err != nil {
		return err
	}
	// Drop any stale entry for this ID from a prior incarnation.
	if err := c.client.Del(ctx, cacheKey(typ.ID)).Err(); err != nil {
		c.logger.WarnContext(ctx, "failed to invalidate identifier type cache", "error", err)
	}
	return nil
}

func (c *RedisCache) FindByID(ctx context.Context, typeID id.IdentifierTypeID) (*models.IdentifierType, error) {
	key := cacheKey(typeID)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var typ models.IdentifierType
		if err := json.Unmarshal(payload, &typ); err == nil {
			return &typ, nil
		}
		c.logger.WarnContext(ctx, "corrupt identifier type cache entry", "key", key)
	} else if !errors.Is(err, redis.Nil) {
		// Redis being down degrades to the inner store, it never fails
		// a validation.
		c.logger.WarnContext(ctx, "identifier type cache read failed", "error", err)
	}

	typ, err := c.inner.FindByID(ctx, typeID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(typ); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "identifier type cache write failed", "error", err)
		}
	}
	return typ, nil
}

// List always hits the inner store; it is an admin operation, not the
// validation hot path.
func (c *RedisCache) List(ctx context.Context) ([]*models.IdentifierType, error) {
	return c.inner.List(ctx)
}

var (
	_ Store = (*RedisCache)(nil)
	_ Store = (*InMemory)(nil)
	_ Store = (*Postgres)(nil)
)
