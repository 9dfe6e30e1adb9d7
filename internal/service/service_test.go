package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cocktailapp/cocktail-server/internal/auth"
	"github.com/cocktailapp/cocktail-server/internal/domain"
	domainerrors "github.com/cocktailapp/cocktail-server/internal/errors"
	"github.com/cocktailapp/cocktail-server/internal/logger"
	"github.com/cocktailapp/cocktail-server/internal/metrics"
	"github.com/cocktailapp/cocktail-server/internal/store/sqldb"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type testEnv struct {
	store     *sqldb.Store
	issuer    auth.TokenIssuer
	accounts  *AccountService
	inventory *InventoryService
	cocktails *CocktailService
	comments  *CommentService
	catalog   map[string]*domain.CocktailDetail
}

// setupTest creates every service over a temporary SQLite store seeded with a small catalog.
func setupTest(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	s, err := sqldb.Open(ctx, sqldb.SQLite, filepath.Join(t.TempDir(), "test.db"), testLogger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	issuer, err := auth.NewJWTIssuer("sssecretkey", time.Hour)
	require.NoError(t, err)

	m := metrics.New()
	env := &testEnv{
		store:     s,
		issuer:    issuer,
		accounts:  NewAccountService(s, issuer, m, testLogger),
		inventory: NewInventoryService(s, testLogger),
		cocktails: NewCocktailService(s, nil, m, testLogger),
		comments:  NewCommentService(s, testLogger),
		catalog:   map[string]*domain.CocktailDetail{},
	}

	recipes := []struct {
		name, category, glass string
		alcohol               domain.Alcohol
		ingredients           []string
	}{
		{"Mojito", "Cocktail", "Highball glass", domain.Alcoholic, []string{"Light rum", "Mint", "Lime", "Sugar", "Soda water"}},
		{"Virgin Mojito", "Cocktail", "Highball glass", domain.NonAlcoholic, []string{"Mint", "Lime", "Sugar", "Soda water"}},
		{"Gin Tonic", "Ordinary Drink", "Highball glass", domain.Alcoholic, []string{"Gin", "Tonic water"}},
		{"Punch", "Punch / Party Drink", "Punch bowl", domain.OptionalAlcohol, []string{"Light rum", "Orange juice", "Pineapple juice"}},
		{"Lemonade", "Soft Drink", "Collins glass", domain.NonAlcoholic, []string{"Lime", "Sugar", "Water"}},
	}
	for _, r := range recipes {
		d := &domain.CocktailDetail{
			Cocktail: domain.Cocktail{
				Name: r.name, Category: r.category, Glass: r.glass, Alcohol: r.alcohol,
				Instructions: domain.Instructions{ENG: "Mix " + r.name, FRA: "Mélanger " + r.name},
			},
		}
		for _, ing := range r.ingredients {
			d.Measures = append(d.Measures, domain.Measure{Ingredient: ing, Quantity: "2 cl"})
		}
		require.NoError(t, s.SeedCocktail(ctx, d))
		env.catalog[r.name] = d
	}

	return env
}

// register creates an account through the service and returns it.
func (e *testEnv) register(t *testing.T, pseudo string, age int) *domain.User {
	t.Helper()
	res, err := e.accounts.Register(context.Background(), RegisterRequest{
		Pseudo: pseudo, Password: "Abc12345!", Age: age, Langue: "FRA",
	})
	require.NoError(t, err)
	return res.User
}

func (e *testEnv) hold(t *testing.T, userID int64, names ...string) {
	t.Helper()
	for _, n := range names {
		_, _, err := e.inventory.Add(context.Background(), userID, n)
		require.NoError(t, err)
	}
}

func TestStorageFailure_LogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Format: "json", Level: slog.LevelInfo, Writer: &buf})
	ctx := logger.ContextWithRequestID(context.Background(), "req-9")

	err := storageFailure(ctx, log.Logger, "list inventory", errors.New("disk I/O error"))

	var domainErr *domainerrors.Error
	require.True(t, domainerrors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeInternal, domainErr.Code)
	assert.NotContains(t, domainErr.Message, "disk")
	assert.Contains(t, buf.String(), `"request_id":"req-9"`)
	assert.Contains(t, buf.String(), `"op":"list inventory"`)
}
