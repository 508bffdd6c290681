package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/metrics"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix  = "listing:"
	defaultTTL = 10 * time.Minute
)

// ListingCache is a read-through cache for single listings in front of a
// ListingsPort. Every other operation goes straight to the wrapped port.
// A cache outage degrades to uncached reads instead of failing the call.
type ListingCache struct {
	domain.ListingsPort
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.MetricsManager
	logger  *logger.Logger
}

var _ domain.ListingsPort = (*ListingCache)(nil)

// NewRedisClient connects to redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}

func NewListingCache(inner domain.ListingsPort, client *redis.Client, ttl time.Duration, mm *metrics.MetricsManager, log *logger.Logger) *ListingCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &ListingCache{
		ListingsPort: inner,
		client:       client,
		ttl:          ttl,
		metrics:      mm,
		logger:       log.Named("ListingCache"),
	}
}

func (c *ListingCache) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	listing, err := c.get(ctx, id)
	switch {
	case err == nil:
		c.metrics.CacheLookup("hit")
		return listing, nil
	case errors.Is(err, redis.Nil):
		c.metrics.CacheLookup("miss")
	default:
		c.metrics.CacheLookup("error")
		c.logger.Warn("Listing cache read failed, falling back to store", zap.String("listing_id", id), zap.Error(err))
	}

	listing, err = c.ListingsPort.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, listing)
	return listing, nil
}

// UpdateListing drops the cached copy once the store has accepted the change.
func (c *ListingCache) UpdateListing(ctx context.Context, id string, params domain.UpdateListingParams) (*domain.Listing, error) {
	listing, err := c.ListingsPort.UpdateListing(ctx, id, params)
	if err != nil {
		return nil, err
	}
	if err := c.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		c.logger.Warn("Failed to invalidate cached listing", zap.String("listing_id", id), zap.Error(err))
	}
	return listing, nil
}

func (c *ListingCache) get(ctx context.Context, id string) (*domain.Listing, error) {
	data, err := c.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		return nil, err
	}
	var listing domain.Listing
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, fmt.Errorf("decode cached listing %s: %w", id, err)
	}
	return &listing, nil
}

func (c *ListingCache) set(ctx context.Context, listing *domain.Listing) {
	data, err := json.Marshal(listing)
	if err != nil {
		c.logger.Warn("Failed to encode listing for cache", zap.String("listing_id", listing.ID), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, keyPrefix+listing.ID, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to cache listing", zap.String("listing_id", listing.ID), zap.Error(err))
	}
}
