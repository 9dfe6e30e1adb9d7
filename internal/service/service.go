// Package service holds the business rules layered over the store: accounts and tokens,
// inventories, cocktail matching and search, and comments.
package service

import (
	"context"
	"errors"
	"io"
	"log/slog"

	domainerrors "github.com/cocktailapp/cocktail-server/internal/errors"
	"github.com/cocktailapp/cocktail-server/internal/store"
	"github.com/cocktailapp/cocktail-server/internal/validation"
)

// validate is a shared validator instance for request validation.
var validate = validation.New()

// Messages shared by several services.
const (
	msgInternal         = "Une erreur interne est survenue, veuillez réessayer plus tard"
	msgCocktailNotFound = "Le cocktail demandé n'existe pas"
)

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}

// storageFailure logs an unexpected store error with the request id carried by ctx
// and hides it behind a generic INTERNAL error.
func storageFailure(ctx context.Context, logger *slog.Logger, op string, err error) error {
	logger.ErrorContext(ctx, "storage failure", "op", op, "error", err)
	return domainerrors.Internal(msgInternal).WithCause(err)
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

func isAlreadyExists(err error) bool {
	return errors.Is(err, store.ErrAlreadyExists)
}

func isInvalidInput(err error) bool {
	return errors.Is(err, store.ErrInvalidInput)
}
