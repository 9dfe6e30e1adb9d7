// Package di provides dependency injection configuration for the cocktail server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/cocktailapp/cocktail-server/internal/auth"
	"github.com/cocktailapp/cocktail-server/internal/config"
	"github.com/cocktailapp/cocktail-server/internal/di/providers"
	"github.com/cocktailapp/cocktail-server/internal/logger"
	"github.com/cocktailapp/cocktail-server/internal/metrics"
	"github.com/cocktailapp/cocktail-server/internal/service"
)

// NewContainer creates and configures the DI container for the HTTP server.
// Configuration comes from flags, the environment and .env.
func NewContainer() *do.RootScope {
	injector := do.New()

	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	provideCore(injector)

	// Server
	do.Provide(injector, providers.ProvideAuthRateLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// NewContainerWithConfig creates a container around an already loaded configuration
// and logger, without the HTTP server. Used by the admin CLI.
func NewContainerWithConfig(cfg *config.Config, log *logger.Logger) *do.RootScope {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, log)
	provideCore(injector)

	return injector
}

func provideCore(injector do.Injector) {
	do.Provide(injector, providers.ProvideMetrics)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideCache)

	// Auth layer
	do.Provide(injector, providers.ProvideAuthKey)
	do.Provide(injector, providers.ProvideTokenIssuer)

	// Business services
	do.Provide(injector, providers.ProvideAccountService)
	do.Provide(injector, providers.ProvideInventoryService)
	do.Provide(injector, providers.ProvideCocktailService)
	do.Provide(injector, providers.ProvideCommentService)
}

// Bootstrap initializes all services and starts the HTTP server.
// This triggers lazy initialization so configuration and connection errors surface at startup.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*metrics.Metrics](injector)

	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*providers.CacheHandle](injector)
	if _, err := do.Invoke[auth.TokenIssuer](injector); err != nil {
		return err
	}

	// Business services
	_ = do.MustInvoke[*service.AccountService](injector)
	_ = do.MustInvoke[*service.InventoryService](injector)
	_ = do.MustInvoke[*service.CocktailService](injector)
	_ = do.MustInvoke[*service.CommentService](injector)

	// Server
	_ = do.MustInvoke[*providers.RateLimiterHandle](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
