package providers

import (
	"github.com/samber/do/v2"

	"github.com/cocktailapp/cocktail-server/internal/auth"
	"github.com/cocktailapp/cocktail-server/internal/logger"
	"github.com/cocktailapp/cocktail-server/internal/metrics"
	"github.com/cocktailapp/cocktail-server/internal/service"
)

// ProvideAccountService provides the account and authentication service.
func ProvideAccountService(i do.Injector) (*service.AccountService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	issuer := do.MustInvoke[auth.TokenIssuer](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAccountService(storeHandle.Store, issuer, m, log.Logger), nil
}

// ProvideInventoryService provides the inventory service.
func ProvideInventoryService(i do.Injector) (*service.InventoryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewInventoryService(storeHandle.Store, log.Logger), nil
}

// ProvideCocktailService provides the cocktail service.
func ProvideCocktailService(i do.Injector) (*service.CocktailService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	cacheHandle := do.MustInvoke[*CacheHandle](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCocktailService(storeHandle.Store, cacheHandle.Cache, m, log.Logger), nil
}

// ProvideCommentService provides the comment service.
func ProvideCommentService(i do.Injector) (*service.CommentService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCommentService(storeHandle.Store, log.Logger), nil
}
