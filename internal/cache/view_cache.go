package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Sethuso/product-management-system/internal/models"
)

// ViewCache stores enriched composite product views in Redis with a short
// TTL. It is strictly best-effort: cache failures are logged and the
// caller re-aggregates from the owning services.
type ViewCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewViewCache creates a new ViewCache.
func NewViewCache(redis *RedisClient, ttl time.Duration) *ViewCache {
	return &ViewCache{redis: redis, ttl: ttl}
}

func (c *ViewCache) key(productID int64) string {
	return fmt.Sprintf("product:view:%d", productID)
}

// Get returns a cached view, or nil when absent or on any cache failure.
func (c *ViewCache) Get(ctx context.Context, productID int64) *models.CompositeProductView {
	raw, err := c.redis.Get(ctx, c.key(productID))
	if err != nil {
		if !IsMiss(err) {
			log.Warn().Err(err).Int64("product_id", productID).Msg("view cache read failed")
		}
		return nil
	}

	var view models.CompositeProductView
	if err := json.Unmarshal([]byte(raw), &view); err != nil {
		log.Warn().Err(err).Int64("product_id", productID).Msg("view cache entry malformed")
		return nil
	}
	return &view
}

// Set stores a view for the configured TTL.
func (c *ViewCache) Set(ctx context.Context, view *models.CompositeProductView) {
	raw, err := json.Marshal(view)
	if err != nil {
		log.Warn().Err(err).Int64("product_id", view.ProductID).Msg("failed to marshal view for cache")
		return
	}
	if err := c.redis.Set(ctx, c.key(view.ProductID), string(raw), c.ttl); err != nil {
		log.Warn().Err(err).Int64("product_id", view.ProductID).Msg("view cache write failed")
	}
}
