// Package cache provides a Redis read-through layer in front of the route store.
// Routes are immutable once written, so entries are stored without expiry.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/roadbook/internal/models"
	"github.com/UnknownOlympus/roadbook/internal/repository"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "route:"

// Client is the subset of *redis.Client used by the cache.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RouteCache decorates a route store with Redis. Redis failures are logged and
// the call falls through to the store, so the cache never fails a lookup.
type RouteCache struct {
	client Client
	next   repository.Interface
	log    *slog.Logger
}

// NewRouteCache wraps next with a Redis read-through cache.
func NewRouteCache(client Client, next repository.Interface, log *slog.Logger) *RouteCache {
	return &RouteCache{client: client, next: next, log: log}
}

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// FindRoute serves from Redis when possible, otherwise from the store, and
// populates Redis on a store hit.
func (c *RouteCache) FindRoute(ctx context.Context, key models.RouteKey) (*models.Route, error) {
	cacheKey := keyPrefix + key.String()

	data, err := c.client.Get(ctx, cacheKey).Bytes()
	switch {
	case err == nil:
		var route models.Route
		if errUnmarshal := json.Unmarshal(data, &route); errUnmarshal == nil {
			c.log.DebugContext(ctx, "Cache hit", "key", cacheKey)
			return &route, nil
		}
		c.log.WarnContext(ctx, "Discarding unreadable cache entry", "key", cacheKey)
	case errors.Is(err, redis.Nil):
	default:
		c.log.WarnContext(ctx, "Failed to get from cache", "key", cacheKey, "error", err)
	}

	route, err := c.next.FindRoute(ctx, key)
	if err != nil {
		return nil, err
	}

	c.store(ctx, cacheKey, route)

	return route, nil
}

// InsertRoute writes through to the store and caches the stored route.
func (c *RouteCache) InsertRoute(ctx context.Context, route *models.Route) error {
	if err := c.next.InsertRoute(ctx, route); err != nil {
		return err
	}

	c.store(ctx, keyPrefix+route.Key().String(), route)

	return nil
}

func (c *RouteCache) store(ctx context.Context, cacheKey string, route *models.Route) {
	data, err := json.Marshal(route)
	if err != nil {
		c.log.WarnContext(ctx, "Failed to encode route for cache", "key", cacheKey, "error", err)
		return
	}

	if err = c.client.Set(ctx, cacheKey, data, 0).Err(); err != nil {
		c.log.WarnContext(ctx, "Failed to set cache", "key", cacheKey, "error", err)
		return
	}

	c.log.DebugContext(ctx, "Cache set", "key", cacheKey)
}
