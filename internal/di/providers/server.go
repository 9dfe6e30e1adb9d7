package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/cocktailapp/cocktail-server/internal/api"
	"github.com/cocktailapp/cocktail-server/internal/config"
	"github.com/cocktailapp/cocktail-server/internal/logger"
	"github.com/cocktailapp/cocktail-server/internal/metrics"
	"github.com/cocktailapp/cocktail-server/internal/ratelimit"
	"github.com/cocktailapp/cocktail-server/internal/service"
)

// RateLimiterHandle wraps the /auth rate limiter so its cleanup goroutine stops on shutdown.
type RateLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *RateLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideAuthRateLimiter provides the per-IP limiter for /auth routes.
func ProvideAuthRateLimiter(i do.Injector) (*RateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return &RateLimiterHandle{KeyedRateLimiter: ratelimit.PerMinute(cfg.Server.AuthRateLimit)}, nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server and starts it in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	limiter := do.MustInvoke[*RateLimiterHandle](i)

	services := &api.Services{
		Accounts:  do.MustInvoke[*service.AccountService](i),
		Inventory: do.MustInvoke[*service.InventoryService](i),
		Cocktails: do.MustInvoke[*service.CocktailService](i),
		Comments:  do.MustInvoke[*service.CommentService](i),
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = do.MustInvoke[*metrics.Metrics](i)
	}

	handler := api.NewServer(storeHandle.Store, services, m, limiter.KeyedRateLimiter, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
