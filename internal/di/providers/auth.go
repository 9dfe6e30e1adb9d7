package providers

import (
	"github.com/samber/do/v2"

	"github.com/cocktailapp/cocktail-server/internal/auth"
	"github.com/cocktailapp/cocktail-server/internal/config"
	"github.com/cocktailapp/cocktail-server/internal/logger"
)

// AuthKey wraps the PASETO key bytes.
type AuthKey []byte

// ProvideAuthKey loads or generates the PASETO key under the data path.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	key, err := auth.LoadOrGenerateKey(cfg.App.DataPath)
	if err != nil {
		return nil, err
	}

	// Update config with the loaded key
	cfg.Auth.AccessTokenKey = key

	log.Info("Authentication key loaded",
		"access_token_duration", cfg.Auth.AccessTokenDuration,
	)

	return AuthKey(key), nil
}

// ProvideTokenIssuer provides the configured token issuer: PASETO v4.local or HS256 JWT.
func ProvideTokenIssuer(i do.Injector) (auth.TokenIssuer, error) {
	cfg := do.MustInvoke[*config.Config](i)

	if cfg.Auth.TokenFormat == config.TokenFormatJWT {
		return auth.NewJWTIssuer(cfg.Auth.SecretKey, cfg.Auth.AccessTokenDuration)
	}

	key := do.MustInvoke[AuthKey](i)
	return auth.NewPasetoIssuer(key, cfg.Auth.AccessTokenDuration)
}
