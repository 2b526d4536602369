package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Sethuso/product-management-system/internal/service"
)

// CacheWarmWorker periodically pre-builds composite views for a fixed list
// of popular categories so the redis view cache stays hot.
type CacheWarmWorker struct {
	productService *service.ProductService
	categories     []string
	interval       time.Duration
}

// NewCacheWarmWorker constructs a CacheWarmWorker.
func NewCacheWarmWorker(productService *service.ProductService, categories []string, interval time.Duration) *CacheWarmWorker {
	return &CacheWarmWorker{
		productService: productService,
		categories:     categories,
		interval:       interval,
	}
}

// Start begins the periodic warm loop and listens for context cancellation.
func (w *CacheWarmWorker) Start(ctx context.Context) {
	if len(w.categories) == 0 {
		log.Info().Msg("Cache warm worker disabled: no categories configured")
		return
	}

	log.Info().Dur("interval", w.interval).Strs("categories", w.categories).Msg("Starting cache warm worker")

	// Run immediately on start
	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Cache warm worker stopped")
			return
		}
	}
}

func (w *CacheWarmWorker) run(ctx context.Context) {
	start := time.Now()
	for _, category := range w.categories {
		if err := w.productService.WarmCategory(ctx, category); err != nil {
			log.Error().Err(err).Str("category", category).Msg("Failed to warm category views")
		}
	}
	log.Info().Dur("duration", time.Since(start)).Msg("Cache warm pass completed")
}
