package providers

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/do/v2"

	"github.com/cocktailapp/cocktail-server/internal/config"
	"github.com/cocktailapp/cocktail-server/internal/logger"
	"github.com/cocktailapp/cocktail-server/internal/store/sqldb"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqldb.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore opens the configured database and applies the schema.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dialect, err := sqldb.ParseDialect(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}

	dsn := cfg.Database.URL
	if dialect == sqldb.SQLite {
		if err := os.MkdirAll(cfg.App.DataPath, 0o750); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		dsn = cfg.SQLitePath()
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db, err := sqldb.Open(ctx, dialect, dsn, log.Logger)
	if err != nil {
		return nil, err
	}

	if dialect == sqldb.SQLite {
		log.Info("Database initialized", "path", dsn)
	} else {
		log.Info("Database initialized", "driver", cfg.Database.Driver)
	}

	return &StoreHandle{Store: db}, nil
}
