package sqldb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cocktailapp/cocktail-server/internal/domain"
	"github.com/cocktailapp/cocktail-server/internal/store"
)

func TestPostgresIntegration(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping postgres integration test")
	}

	ctx := context.Background()
	s, err := Open(ctx, Postgres, dsn, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer s.Close()

	suffix := fmt.Sprintf("%d", time.Now().UnixNano())
	cocktail := &domain.CocktailDetail{
		Cocktail: domain.Cocktail{Name: "PG Sour " + suffix, Category: "Cocktail", Alcohol: domain.Alcoholic, Glass: "Coupe"},
		Measures: []domain.Measure{
			{Ingredient: "PG Whiskey " + suffix, Quantity: "5 cl"},
			{Ingredient: "PG Lemon " + suffix, Quantity: "2 cl"},
		},
	}
	require.NoError(t, s.SeedCocktail(ctx, cocktail))

	u := domain.NewUser("pg-"+suffix, 30, domain.LocaleGER, time.Now())
	u.PasswordHash = "x"
	require.NoError(t, s.CreateUser(ctx, u))
	defer s.DeleteUser(ctx, u.ID) //nolint:errcheck // best-effort cleanup

	dup := domain.NewUser("PG-"+suffix, 30, domain.LocaleGER, time.Now())
	dup.PasswordHash = "x"
	assert.ErrorIs(t, s.CreateUser(ctx, dup), store.ErrAlreadyExists)

	holdIngredients(t, s, u.ID, "pg whiskey "+suffix)

	partial, err := s.PartialCocktails(ctx, u.ID, 1, store.DefaultPage())
	require.NoError(t, err)
	found := false
	for _, p := range partial {
		if p.ID == cocktail.ID {
			found = true
			assert.Equal(t, 1, p.Missing)
		}
	}
	assert.True(t, found)

	res, err := s.SearchCocktails(ctx, domain.CocktailFilter{Name: "pg sour " + suffix, Ingredients: []string{"PG Lemon " + suffix}}, store.DefaultPage())
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, cocktail.ID, res.Items[0].ID)
}
