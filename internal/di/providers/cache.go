package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/cocktailapp/cocktail-server/internal/cache"
	"github.com/cocktailapp/cocktail-server/internal/config"
	"github.com/cocktailapp/cocktail-server/internal/logger"
	"github.com/cocktailapp/cocktail-server/internal/metrics"
)

// CacheHandle wraps the catalog cache with shutdown capability.
type CacheHandle struct {
	cache.Cache
}

// Shutdown implements do.Shutdownable.
func (h *CacheHandle) Shutdown() error {
	return h.Close()
}

// ProvideCache provides the Redis catalog cache, or a noop cache when REDIS_URL is unset.
// An unreachable Redis is not fatal: the server runs uncached.
func ProvideCache(i do.Injector) (*CacheHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Cache.RedisURL == "" {
		log.Info("Catalog cache disabled")
		return &CacheHandle{Cache: cache.Noop{}}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	r, err := cache.NewRedis(ctx, cfg.Cache.RedisURL, cfg.Cache.TTL)
	if err != nil {
		log.Warn("Redis unavailable, catalog cache disabled", "error", err)
		return &CacheHandle{Cache: cache.Noop{}}, nil
	}

	log.Info("Catalog cache connected", "ttl", cfg.Cache.TTL)
	return &CacheHandle{Cache: r}, nil
}

// ProvideMetrics provides the Prometheus collectors.
func ProvideMetrics(i do.Injector) (*metrics.Metrics, error) {
	return metrics.New(), nil
}
